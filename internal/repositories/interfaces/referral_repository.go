package interfaces

import (
	"context"

	"referralbridge/internal/models"
	"referralbridge/internal/utils"
)

type ReferralRepository interface {
	// Create stores a new referral and sets its ID. It returns
	// ErrDuplicateReferral when (reference, context) already exists.
	Create(ctx context.Context, referral *models.Referral) error
	GetByReference(ctx context.Context, reference, referralContext string) (*models.Referral, error)

	// SetStatusByReference requests a status change for the referral keyed by
	// (reference, context). Paid is reachable from pending or unpaid, rejected
	// from any status but rejected. updated reports whether a record changed.
	SetStatusByReference(ctx context.Context, reference, referralContext string, status models.ReferralStatus) (updated bool, err error)

	List(ctx context.Context, filter *models.ReferralFilter, params *utils.PaginationParams) ([]*models.Referral, int64, error)
	Iterate(ctx context.Context, filter *models.ReferralFilter, fn func(*models.Referral) error) error
}
