package shoppingitem

import (
	"context"

	"stockkeeper/internal/core/entity"
	"stockkeeper/internal/core/id"
	"stockkeeper/internal/core/tx"
)

// AtomicService provides single-collection operations for shopping items.
// A nil handle runs the call in its own transaction.
type AtomicService struct {
	repo Repository
	txh  tx.Handler
}

// NewAtomicService creates a new shopping item atomic service.
func NewAtomicService(repo Repository, txh tx.Handler) *AtomicService {
	return &AtomicService{repo: repo, txh: txh}
}

// Create inserts a new shopping item owned by ownerID.
func (s *AtomicService) Create(ctx context.Context, handle tx.Handle, ownerID string, spec CreateSpec) (*ShoppingItem, error) {
	item := ShoppingItem{
		ID:          spec.ID,
		Name:        spec.Name,
		Quantity:    spec.Quantity,
		OwnerID:     ownerID,
		StockItemID: spec.StockItemID,
	}
	if item.ID == "" {
		item.ID = id.New()
	}

	return tx.Within(ctx, s.txh, handle, func(ctx context.Context, h tx.Handle) (*ShoppingItem, error) {
		if err := s.repo.Insert(ctx, h, item); err != nil {
			return nil, err
		}
		return &item, nil
	})
}

// Read returns all shopping items of ownerID.
func (s *AtomicService) Read(ctx context.Context, handle tx.Handle, ownerID string) ([]ShoppingItem, error) {
	return tx.WithinReadOnly(ctx, s.txh, handle, func(ctx context.Context, h tx.Handle) ([]ShoppingItem, error) {
		return s.repo.Find(ctx, h, ownerID)
	})
}

// ReadByID returns one shopping item or NotFound.
func (s *AtomicService) ReadByID(ctx context.Context, handle tx.Handle, ownerID, itemID string) (*ShoppingItem, error) {
	return tx.WithinReadOnly(ctx, s.txh, handle, func(ctx context.Context, h tx.Handle) (*ShoppingItem, error) {
		return s.repo.FindOne(ctx, h, ownerID, itemID)
	})
}

// ReadByStockItemID returns the shopping item replenishing stockItemID, or NotFound.
func (s *AtomicService) ReadByStockItemID(ctx context.Context, handle tx.Handle, ownerID, stockItemID string) (*ShoppingItem, error) {
	return tx.WithinReadOnly(ctx, s.txh, handle, func(ctx context.Context, h tx.Handle) (*ShoppingItem, error) {
		return s.repo.FindByStockItemID(ctx, h, ownerID, stockItemID)
	})
}

// Update replaces the mutable fields of a shopping item.
func (s *AtomicService) Update(ctx context.Context, handle tx.Handle, ownerID, itemID string, spec UpdateSpec) (bool, error) {
	return tx.Within(ctx, s.txh, handle, func(ctx context.Context, h tx.Handle) (bool, error) {
		return s.repo.Replace(ctx, h, ownerID, itemID, spec)
	})
}

// UpdateQuantity increases or decreases the requested quantity by delta.
// A zero delta reports success without touching storage.
func (s *AtomicService) UpdateQuantity(
	ctx context.Context,
	handle tx.Handle,
	ownerID, itemID string,
	op entity.QuantityOperation,
	delta int,
) (bool, error) {
	skip, err := entity.CheckDelta(op, delta)
	if err != nil || skip {
		return skip, err
	}

	return tx.Within(ctx, s.txh, handle, func(ctx context.Context, h tx.Handle) (bool, error) {
		return s.repo.AddQuantity(ctx, h, ownerID, itemID, op.Signed(delta))
	})
}

// Delete removes a shopping item. Returns NotFound when nothing matched.
func (s *AtomicService) Delete(ctx context.Context, handle tx.Handle, ownerID, itemID string) (bool, error) {
	return tx.Within(ctx, s.txh, handle, func(ctx context.Context, h tx.Handle) (bool, error) {
		return s.repo.Delete(ctx, h, ownerID, itemID)
	})
}

// DeleteByStockItemID removes the shopping item replenishing stockItemID.
// Nothing to delete is not an error.
func (s *AtomicService) DeleteByStockItemID(ctx context.Context, handle tx.Handle, ownerID, stockItemID string) (bool, error) {
	return tx.Within(ctx, s.txh, handle, func(ctx context.Context, h tx.Handle) (bool, error) {
		return s.repo.DeleteByStockItemID(ctx, h, ownerID, stockItemID)
	})
}
