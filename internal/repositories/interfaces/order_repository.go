package interfaces

import (
	"context"

	"referralbridge/internal/models"
)

type OrderRepository interface {
	// Save upserts the order snapshot received from the platform.
	Save(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	AddNote(ctx context.Context, id string, note string) error
	GetNotes(ctx context.Context, id string) ([]*models.OrderNote, error)
}
