package interfaces

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateReferral = errors.New("referral already exists for reference and context")
)
