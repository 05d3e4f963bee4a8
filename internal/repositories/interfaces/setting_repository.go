package interfaces

import (
	"context"

	"referralbridge/internal/models"
)

type SettingRepository interface {
	Get(ctx context.Context, key string) (*models.Setting, error)
	GetAll(ctx context.Context) ([]*models.Setting, error)
	Set(ctx context.Context, key, value string) error
}
