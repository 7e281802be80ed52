// Package item_repo provides PostgreSQL storage providers for stock and shopping items.
package item_repo

import (
	"context"

	"stockkeeper/internal/core/tx"
	"stockkeeper/internal/domain/stockitem"
	"stockkeeper/internal/infrastructure/storage/postgres"
)

const stockItemsTable = "stock_items"

// stockItemDocument is a stock_items row. Pointer fields detect NULLs.
type stockItemDocument struct {
	Key             *string `db:"_id"`
	ID              *string `db:"id"`
	OwnerID         *string `db:"owner_id"`
	Name            *string `db:"name"`
	Quantity        *int    `db:"quantity"`
	MinimumQuantity *int    `db:"minimum_quantity"`
}

type stockItemCodec struct{}

func (stockItemCodec) Table() string    { return stockItemsTable }
func (stockItemCodec) Entity() string   { return "stock item" }
func (stockItemCodec) OwnerKey() string { return "owner_id" }

func (stockItemCodec) ToDocument(e stockitem.StockItem) stockItemDocument {
	return stockItemDocument{
		ID:              postgres.Ptr(e.ID),
		OwnerID:         postgres.Ptr(e.OwnerID),
		Name:            postgres.Ptr(e.Name),
		Quantity:        postgres.Ptr(e.Quantity),
		MinimumQuantity: postgres.Ptr(e.MinimumQuantity),
	}
}

func (stockItemCodec) FromDocument(d stockItemDocument) (stockitem.StockItem, error) {
	var (
		e   stockitem.StockItem
		err error
	)
	if e.ID, err = postgres.Required("id", d.ID); err != nil {
		return e, err
	}
	if e.OwnerID, err = postgres.Required("owner_id", d.OwnerID); err != nil {
		return e, err
	}
	if e.Name, err = postgres.Required("name", d.Name); err != nil {
		return e, err
	}
	if e.Quantity, err = postgres.Required("quantity", d.Quantity); err != nil {
		return e, err
	}
	if e.MinimumQuantity, err = postgres.Required("minimum_quantity", d.MinimumQuantity); err != nil {
		return e, err
	}
	return e, nil
}

// StockItemRepo implements stockitem.Repository.
type StockItemRepo struct {
	items *postgres.Collection[stockitem.StockItem, stockItemDocument]
}

var _ stockitem.Repository = (*StockItemRepo)(nil)

// NewStockItemRepo creates a new stock item repository.
func NewStockItemRepo() *StockItemRepo {
	return &StockItemRepo{items: postgres.NewCollection[stockitem.StockItem, stockItemDocument](stockItemCodec{})}
}

func (r *StockItemRepo) Insert(ctx context.Context, handle tx.Handle, item stockitem.StockItem) error {
	return r.items.Insert(ctx, handle, item)
}

func (r *StockItemRepo) Find(ctx context.Context, handle tx.Handle, ownerID string) ([]stockitem.StockItem, error) {
	return r.items.Find(ctx, handle, r.items.ByOwner(ownerID), "lower(name)")
}

func (r *StockItemRepo) FindOne(ctx context.Context, handle tx.Handle, ownerID, key string) (*stockitem.StockItem, error) {
	item, err := r.items.FindOne(ctx, handle, r.items.ByKey(ownerID, key), key)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *StockItemRepo) Replace(ctx context.Context, handle tx.Handle, ownerID, key string, spec stockitem.UpdateSpec) (bool, error) {
	return r.items.Update(ctx, handle, r.items.ByKey(ownerID, key), map[string]any{
		"name":             spec.Name,
		"quantity":         spec.Quantity,
		"minimum_quantity": spec.MinimumQuantity,
	}, key)
}

func (r *StockItemRepo) AddQuantity(ctx context.Context, handle tx.Handle, ownerID, key string, delta int) (bool, error) {
	return r.items.Update(ctx, handle, r.items.ByKey(ownerID, key), map[string]any{
		"quantity": postgres.Increment("quantity", delta),
	}, key)
}

func (r *StockItemRepo) Delete(ctx context.Context, handle tx.Handle, ownerID, key string) (bool, error) {
	return r.items.Delete(ctx, handle, r.items.ByKey(ownerID, key), key)
}
