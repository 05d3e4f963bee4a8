package interfaces

import (
	"context"
)

type ProductMetaRepository interface {
	// GetMeta returns the value for key and whether it is present.
	GetMeta(ctx context.Context, productID, key string) (string, bool, error)
	SetMeta(ctx context.Context, productID, key, value string) error
	DeleteMeta(ctx context.Context, productID, key string) error
}
