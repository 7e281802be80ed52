package item_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"stockkeeper/internal/core/tx"
	"stockkeeper/internal/domain/shoppingitem"
	"stockkeeper/internal/infrastructure/storage/postgres"
)

const shoppingItemsTable = "shopping_items"

// shoppingItemDocument is a shopping_items row.
type shoppingItemDocument struct {
	Key         *string `db:"_id"`
	ID          *string `db:"id"`
	OwnerID     *string `db:"owner_id"`
	StockItemID *string `db:"stock_item_id"`
	Name        *string `db:"name"`
	Quantity    *int    `db:"quantity"`
}

type shoppingItemCodec struct{}

func (shoppingItemCodec) Table() string    { return shoppingItemsTable }
func (shoppingItemCodec) Entity() string   { return "shopping item" }
func (shoppingItemCodec) OwnerKey() string { return "owner_id" }

func (shoppingItemCodec) ToDocument(e shoppingitem.ShoppingItem) shoppingItemDocument {
	return shoppingItemDocument{
		ID:          postgres.Ptr(e.ID),
		OwnerID:     postgres.Ptr(e.OwnerID),
		StockItemID: postgres.Ptr(e.StockItemID),
		Name:        postgres.Ptr(e.Name),
		Quantity:    postgres.Ptr(e.Quantity),
	}
}

func (shoppingItemCodec) FromDocument(d shoppingItemDocument) (shoppingitem.ShoppingItem, error) {
	var (
		e   shoppingitem.ShoppingItem
		err error
	)
	if e.ID, err = postgres.Required("id", d.ID); err != nil {
		return e, err
	}
	if e.OwnerID, err = postgres.Required("owner_id", d.OwnerID); err != nil {
		return e, err
	}
	if e.StockItemID, err = postgres.Required("stock_item_id", d.StockItemID); err != nil {
		return e, err
	}
	if e.Name, err = postgres.Required("name", d.Name); err != nil {
		return e, err
	}
	if e.Quantity, err = postgres.Required("quantity", d.Quantity); err != nil {
		return e, err
	}
	return e, nil
}

// ShoppingItemRepo implements shoppingitem.Repository.
type ShoppingItemRepo struct {
	items *postgres.Collection[shoppingitem.ShoppingItem, shoppingItemDocument]
}

var _ shoppingitem.Repository = (*ShoppingItemRepo)(nil)

// NewShoppingItemRepo creates a new shopping item repository.
func NewShoppingItemRepo() *ShoppingItemRepo {
	return &ShoppingItemRepo{items: postgres.NewCollection[shoppingitem.ShoppingItem, shoppingItemDocument](shoppingItemCodec{})}
}

func (r *ShoppingItemRepo) byStockItem(ownerID, stockItemID string) squirrel.Sqlizer {
	return squirrel.And{
		r.items.ByOwner(ownerID),
		squirrel.Eq{"stock_item_id": stockItemID},
	}
}

func (r *ShoppingItemRepo) Insert(ctx context.Context, handle tx.Handle, item shoppingitem.ShoppingItem) error {
	return r.items.Insert(ctx, handle, item)
}

func (r *ShoppingItemRepo) Find(ctx context.Context, handle tx.Handle, ownerID string) ([]shoppingitem.ShoppingItem, error) {
	return r.items.Find(ctx, handle, r.items.ByOwner(ownerID), "lower(name)")
}

func (r *ShoppingItemRepo) FindOne(ctx context.Context, handle tx.Handle, ownerID, key string) (*shoppingitem.ShoppingItem, error) {
	item, err := r.items.FindOne(ctx, handle, r.items.ByKey(ownerID, key), key)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ShoppingItemRepo) FindByStockItemID(ctx context.Context, handle tx.Handle, ownerID, stockItemID string) (*shoppingitem.ShoppingItem, error) {
	item, err := r.items.FindOne(ctx, handle, r.byStockItem(ownerID, stockItemID), stockItemID)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ShoppingItemRepo) Replace(ctx context.Context, handle tx.Handle, ownerID, key string, spec shoppingitem.UpdateSpec) (bool, error) {
	return r.items.Update(ctx, handle, r.items.ByKey(ownerID, key), map[string]any{
		"name":     spec.Name,
		"quantity": spec.Quantity,
	}, key)
}

func (r *ShoppingItemRepo) AddQuantity(ctx context.Context, handle tx.Handle, ownerID, key string, delta int) (bool, error) {
	return r.items.Update(ctx, handle, r.items.ByKey(ownerID, key), map[string]any{
		"quantity": postgres.Increment("quantity", delta),
	}, key)
}

func (r *ShoppingItemRepo) Delete(ctx context.Context, handle tx.Handle, ownerID, key string) (bool, error) {
	return r.items.Delete(ctx, handle, r.items.ByKey(ownerID, key), key)
}

func (r *ShoppingItemRepo) DeleteByStockItemID(ctx context.Context, handle tx.Handle, ownerID, stockItemID string) (bool, error) {
	return r.items.DeleteIfExists(ctx, handle, r.byStockItem(ownerID, stockItemID), stockItemID)
}
