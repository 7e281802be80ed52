package stockitem

import (
	"context"

	"stockkeeper/internal/core/entity"
	"stockkeeper/internal/core/id"
	"stockkeeper/internal/core/tx"
)

// AtomicService provides single-collection operations for stock items.
//
// Every method accepts an optional handle. With a nil handle the method runs
// in its own one-step transaction; otherwise it joins the caller's transaction
// and leaves commit/abort to the caller.
type AtomicService struct {
	repo Repository
	txh  tx.Handler
}

// NewAtomicService creates a new stock item atomic service.
func NewAtomicService(repo Repository, txh tx.Handler) *AtomicService {
	return &AtomicService{repo: repo, txh: txh}
}

// Create inserts a new stock item owned by ownerID.
func (s *AtomicService) Create(ctx context.Context, handle tx.Handle, ownerID string, spec CreateSpec) (*StockItem, error) {
	item := StockItem{
		ID:              spec.ID,
		Name:            spec.Name,
		Quantity:        spec.Quantity,
		MinimumQuantity: spec.MinimumQuantity,
		OwnerID:         ownerID,
	}
	if item.ID == "" {
		item.ID = id.New()
	}

	return tx.Within(ctx, s.txh, handle, func(ctx context.Context, h tx.Handle) (*StockItem, error) {
		if err := s.repo.Insert(ctx, h, item); err != nil {
			return nil, err
		}
		return &item, nil
	})
}

// Read returns all stock items of ownerID.
func (s *AtomicService) Read(ctx context.Context, handle tx.Handle, ownerID string) ([]StockItem, error) {
	return tx.WithinReadOnly(ctx, s.txh, handle, func(ctx context.Context, h tx.Handle) ([]StockItem, error) {
		return s.repo.Find(ctx, h, ownerID)
	})
}

// ReadByID returns one stock item or NotFound.
func (s *AtomicService) ReadByID(ctx context.Context, handle tx.Handle, ownerID, itemID string) (*StockItem, error) {
	return tx.WithinReadOnly(ctx, s.txh, handle, func(ctx context.Context, h tx.Handle) (*StockItem, error) {
		return s.repo.FindOne(ctx, h, ownerID, itemID)
	})
}

// Update replaces the mutable fields of a stock item.
func (s *AtomicService) Update(ctx context.Context, handle tx.Handle, ownerID, itemID string, spec UpdateSpec) (bool, error) {
	return tx.Within(ctx, s.txh, handle, func(ctx context.Context, h tx.Handle) (bool, error) {
		return s.repo.Replace(ctx, h, ownerID, itemID, spec)
	})
}

// UpdateQuantity increases or decreases the stored quantity by delta.
// A zero delta reports success without touching storage. Bounds on the
// resulting quantity are enforced by storage.
func (s *AtomicService) UpdateQuantity(
	ctx context.Context,
	handle tx.Handle,
	ownerID, itemID string,
	op entity.QuantityOperation,
	delta int,
) (bool, error) {
	skip, err := entity.CheckDelta(op, delta)
	if err != nil {
		return false, err
	}
	if skip {
		return true, nil
	}

	return tx.Within(ctx, s.txh, handle, func(ctx context.Context, h tx.Handle) (bool, error) {
		return s.repo.AddQuantity(ctx, h, ownerID, itemID, op.Signed(delta))
	})
}

// Delete removes a stock item. Returns NotFound when nothing matched.
func (s *AtomicService) Delete(ctx context.Context, handle tx.Handle, ownerID, itemID string) (bool, error) {
	return tx.Within(ctx, s.txh, handle, func(ctx context.Context, h tx.Handle) (bool, error) {
		return s.repo.Delete(ctx, h, ownerID, itemID)
	})
}
