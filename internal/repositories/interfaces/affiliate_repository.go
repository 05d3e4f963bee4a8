package interfaces

import (
	"context"

	"referralbridge/internal/models"
)

type AffiliateRepository interface {
	GetByID(ctx context.Context, id string) (*models.Affiliate, error)
	GetByUserID(ctx context.Context, userID string) (*models.Affiliate, error)
	GetByUserLogin(ctx context.Context, login string) (*models.Affiliate, error)
}
