package interfaces

import (
	"context"

	"referralbridge/internal/models"
)

type VisitRepository interface {
	GetByToken(ctx context.Context, token string) (*models.Visit, error)
}
