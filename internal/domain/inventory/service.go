// Package inventory orchestrates stock items and the shopping items derived from them.
//
// Every stock item has exactly one shopping item that requests its shortfall.
// StockItemService keeps the two in step by running each business operation
// in a single transaction that it owns from start to release.
package inventory

import (
	"context"

	"stockkeeper/internal/core/apperror"
	"stockkeeper/internal/core/entity"
	"stockkeeper/internal/core/id"
	"stockkeeper/internal/core/tx"
	"stockkeeper/internal/domain/shoppingitem"
	"stockkeeper/internal/domain/stockitem"
	"stockkeeper/pkg/logger"
)

// StockItemService implements the stock item business operations.
type StockItemService struct {
	txh      tx.Handler
	stock    *stockitem.AtomicService
	shopping *shoppingitem.AtomicService
}

// NewStockItemService creates a new stock item domain service.
func NewStockItemService(
	txh tx.Handler,
	stock *stockitem.AtomicService,
	shopping *shoppingitem.AtomicService,
) *StockItemService {
	return &StockItemService{
		txh:      txh,
		stock:    stock,
		shopping: shopping,
	}
}

// Create stores a stock item together with a shopping item for its shortfall.
// The shopping item is created even when nothing is missing.
func (s *StockItemService) Create(ctx context.Context, ownerID string, spec stockitem.CreateSpec) (*stockitem.StockItem, error) {
	if spec.ID == "" {
		spec.ID = id.New()
	}

	handle, err := s.txh.StartTransaction(ctx)
	if err != nil {
		return nil, err
	}
	defer handle.Release()

	item, err := s.stock.Create(ctx, handle, ownerID, spec)
	if err != nil {
		return nil, s.abort(ctx, handle, "create stock item", err)
	}

	_, err = s.shopping.Create(ctx, handle, ownerID, shoppingitem.CreateSpec{
		Name:        item.Name,
		Quantity:    item.Shortfall(),
		StockItemID: item.ID,
	})
	if err != nil {
		return nil, s.abort(ctx, handle, "create stock item", err)
	}

	if err := handle.Commit(ctx); err != nil {
		return nil, err
	}

	logger.Info(ctx, "stock item created",
		"stock_item_id", item.ID,
		"shortfall", item.Shortfall())

	return item, nil
}

// Delete removes a stock item and its shopping item.
// A missing stock item is NotFound and leaves shopping items untouched.
func (s *StockItemService) Delete(ctx context.Context, ownerID, key string) (bool, error) {
	handle, err := s.txh.StartTransaction(ctx)
	if err != nil {
		return false, err
	}
	defer handle.Release()

	// key may be the store key; shopping items reference the application id.
	item, err := s.stock.ReadByID(ctx, handle, ownerID, key)
	if err != nil {
		return false, s.abort(ctx, handle, "delete stock item", err)
	}

	deleted, err := s.stock.Delete(ctx, handle, ownerID, item.ID)
	if err != nil {
		return false, s.abort(ctx, handle, "delete stock item", err)
	}

	if _, err := s.shopping.DeleteByStockItemID(ctx, handle, ownerID, item.ID); err != nil {
		return false, s.abort(ctx, handle, "delete stock item", err)
	}

	if err := handle.Commit(ctx); err != nil {
		return false, err
	}

	logger.Info(ctx, "stock item deleted", "stock_item_id", item.ID)

	return deleted, nil
}

// Read returns every stock item of ownerID.
func (s *StockItemService) Read(ctx context.Context, ownerID string) ([]stockitem.StockItem, error) {
	return s.stock.Read(ctx, nil, ownerID)
}

// ReadByID returns one stock item or NotFound.
func (s *StockItemService) ReadByID(ctx context.Context, ownerID, key string) (*stockitem.StockItem, error) {
	return s.stock.ReadByID(ctx, nil, ownerID, key)
}

// Update replaces the stock item fields.
//
// The shopping item is not recomputed here, so its quantity reflects the
// shortfall at creation time until the stock item is recreated.
func (s *StockItemService) Update(ctx context.Context, ownerID, key string, spec stockitem.UpdateSpec) (bool, error) {
	return s.stock.Update(ctx, nil, ownerID, key, spec)
}

// UpdateQuantity changes the stored quantity by delta. The shopping item is
// not recomputed; see Update.
func (s *StockItemService) UpdateQuantity(
	ctx context.Context,
	ownerID, key string,
	op entity.QuantityOperation,
	delta int,
) (bool, error) {
	return s.stock.UpdateQuantity(ctx, nil, ownerID, key, op, delta)
}

// abort rolls back handle and returns cause unchanged.
func (s *StockItemService) abort(ctx context.Context, handle tx.Handle, op string, cause error) error {
	if err := handle.Abort(context.WithoutCancel(ctx)); err != nil {
		logger.Error(ctx, "abort failed",
			"operation", op,
			"error", err)
	}

	logger.Warn(ctx, "transaction aborted",
		"operation", op,
		"kind", apperror.KindOf(cause).String(),
		"error", cause)

	return cause
}

// ShoppingItemService exposes shopping items for reading. They are written
// only as a side effect of stock item operations.
type ShoppingItemService struct {
	shopping *shoppingitem.AtomicService
}

// NewShoppingItemService creates a new shopping item domain service.
func NewShoppingItemService(shopping *shoppingitem.AtomicService) *ShoppingItemService {
	return &ShoppingItemService{shopping: shopping}
}

// Read returns every shopping item of ownerID.
func (s *ShoppingItemService) Read(ctx context.Context, ownerID string) ([]shoppingitem.ShoppingItem, error) {
	return s.shopping.Read(ctx, nil, ownerID)
}

// ReadByID returns one shopping item or NotFound.
func (s *ShoppingItemService) ReadByID(ctx context.Context, ownerID, key string) (*shoppingitem.ShoppingItem, error) {
	return s.shopping.ReadByID(ctx, nil, ownerID, key)
}

// ReadByStockItemID returns the shopping item for a stock item or NotFound.
func (s *ShoppingItemService) ReadByStockItemID(ctx context.Context, ownerID, stockItemID string) (*shoppingitem.ShoppingItem, error) {
	return s.shopping.ReadByStockItemID(ctx, nil, ownerID, stockItemID)
}
