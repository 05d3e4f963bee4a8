package interfaces

import (
	"context"
)

type CouponRepository interface {
	// GetAffiliateForCode returns the attached affiliate id, or "" when the
	// code carries none.
	GetAffiliateForCode(ctx context.Context, code string) (string, error)
	SetAffiliateForCode(ctx context.Context, code string, affiliateID string) error
}
