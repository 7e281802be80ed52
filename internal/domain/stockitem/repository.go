package stockitem

import (
	"context"

	"stockkeeper/internal/core/tx"
)

// Repository is the storage provider for stock items.
//
// key matches either the application id or the store-generated key.
// Every call runs inside handle and returns classified errors only.
type Repository interface {
	Insert(ctx context.Context, handle tx.Handle, item StockItem) error

	Find(ctx context.Context, handle tx.Handle, ownerID string) ([]StockItem, error)

	// FindOne returns NotFound when nothing matches.
	FindOne(ctx context.Context, handle tx.Handle, ownerID, key string) (*StockItem, error)

	// Replace returns NotFound when nothing matches.
	Replace(ctx context.Context, handle tx.Handle, ownerID, key string, spec UpdateSpec) (bool, error)

	// AddQuantity adds a signed delta. Returns NotFound when nothing matches.
	AddQuantity(ctx context.Context, handle tx.Handle, ownerID, key string, delta int) (bool, error)

	// Delete returns NotFound when nothing matches.
	Delete(ctx context.Context, handle tx.Handle, ownerID, key string) (bool, error)
}
