package shoppingitem

import (
	"context"

	"stockkeeper/internal/core/tx"
)

// Repository is the storage provider for shopping items.
// key matches either the application id or the store-generated key.
type Repository interface {
	Insert(ctx context.Context, handle tx.Handle, item ShoppingItem) error

	Find(ctx context.Context, handle tx.Handle, ownerID string) ([]ShoppingItem, error)

	// FindOne returns NotFound when nothing matches.
	FindOne(ctx context.Context, handle tx.Handle, ownerID, key string) (*ShoppingItem, error)

	// FindByStockItemID returns NotFound when the stock item has no shopping item.
	FindByStockItemID(ctx context.Context, handle tx.Handle, ownerID, stockItemID string) (*ShoppingItem, error)

	// Replace returns NotFound when nothing matches.
	Replace(ctx context.Context, handle tx.Handle, ownerID, key string, spec UpdateSpec) (bool, error)

	// AddQuantity adds a signed delta. Returns NotFound when nothing matches.
	AddQuantity(ctx context.Context, handle tx.Handle, ownerID, key string, delta int) (bool, error)

	// Delete returns NotFound when nothing matches.
	Delete(ctx context.Context, handle tx.Handle, ownerID, key string) (bool, error)

	// DeleteByStockItemID reports false, without error, when nothing matched.
	DeleteByStockItemID(ctx context.Context, handle tx.Handle, ownerID, stockItemID string) (bool, error)
}
