package services

import (
	"errors"

	"referralbridge/internal/repositories/interfaces"
)

var (
	ErrInvalidRate       = errors.New("rate must be a non-negative number")
	ErrInvalidExportName = errors.New("invalid export name")
)

func isNotFound(err error) bool {
	return errors.Is(err, interfaces.ErrNotFound)
}
