package memstore

import (
	"context"

	"stockkeeper/internal/core/apperror"
	"stockkeeper/internal/core/id"
	"stockkeeper/internal/core/tx"
	"stockkeeper/internal/domain/shoppingitem"
)

// ShoppingItems implements shoppingitem.Repository.
type ShoppingItems struct {
	s *Store
}

var _ shoppingitem.Repository = (*ShoppingItems)(nil)

// ShoppingItems returns the shopping item repository backed by s.
func (s *Store) ShoppingItems() *ShoppingItems {
	return &ShoppingItems{s: s}
}

func validateShopping(v shoppingitem.ShoppingItem) error {
	return firstErr(
		checkID("id", v.ID),
		checkID("ownerId", v.OwnerID),
		checkID("stockItemId", v.StockItemID),
		checkName(v.Name),
		checkQuantity("quantity", v.Quantity),
	)
}

func checkShoppingUnique(rows []row[shoppingitem.ShoppingItem], v shoppingitem.ShoppingItem, skip int) error {
	for i, r := range rows {
		if i == skip || r.v.OwnerID != v.OwnerID {
			continue
		}
		switch {
		case sameName(r.v.Name, v.Name):
			return apperror.NewDuplicate("shopping item", "name")
		case r.v.ID == v.ID:
			return apperror.NewDuplicate("shopping item", "id")
		case r.v.StockItemID == v.StockItemID:
			return apperror.NewDuplicate("shopping item", "stockItemId")
		}
	}
	return nil
}

func findShopping(rows []row[shoppingitem.ShoppingItem], match func(shoppingitem.ShoppingItem, string) bool) int {
	for i, r := range rows {
		if match(r.v, r.key) {
			return i
		}
	}
	return -1
}

func byKey(ownerID, key string) func(shoppingitem.ShoppingItem, string) bool {
	return func(v shoppingitem.ShoppingItem, storeKey string) bool {
		return v.OwnerID == ownerID && (v.ID == key || storeKey == key)
	}
}

func byStockItem(ownerID, stockItemID string) func(shoppingitem.ShoppingItem, string) bool {
	return func(v shoppingitem.ShoppingItem, _ string) bool {
		return v.OwnerID == ownerID && v.StockItemID == stockItemID
	}
}

func (r *ShoppingItems) Insert(ctx context.Context, handle tx.Handle, item shoppingitem.ShoppingItem) error {
	return r.s.exec(ctx, handle, OpShoppingInsert, true, func(st *state) error {
		if err := validateShopping(item); err != nil {
			return err
		}
		if err := checkShoppingUnique(st.shopping, item, -1); err != nil {
			return err
		}
		st.shopping = append(st.shopping, row[shoppingitem.ShoppingItem]{key: id.New(), v: item})
		return nil
	})
}

func (r *ShoppingItems) Find(ctx context.Context, handle tx.Handle, ownerID string) ([]shoppingitem.ShoppingItem, error) {
	items := []shoppingitem.ShoppingItem{}
	err := r.s.exec(ctx, handle, OpShoppingFind, false, func(st *state) error {
		for _, rw := range st.shopping {
			if rw.v.OwnerID == ownerID {
				items = append(items, rw.v)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ShoppingItems) findOne(ctx context.Context, handle tx.Handle, op, key string, match func(shoppingitem.ShoppingItem, string) bool) (*shoppingitem.ShoppingItem, error) {
	var found shoppingitem.ShoppingItem
	err := r.s.exec(ctx, handle, op, false, func(st *state) error {
		i := findShopping(st.shopping, match)
		if i < 0 {
			return apperror.NewNotFound("shopping item", key)
		}
		found = st.shopping[i].v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *ShoppingItems) FindOne(ctx context.Context, handle tx.Handle, ownerID, key string) (*shoppingitem.ShoppingItem, error) {
	return r.findOne(ctx, handle, OpShoppingFindOne, key, byKey(ownerID, key))
}

func (r *ShoppingItems) FindByStockItemID(ctx context.Context, handle tx.Handle, ownerID, stockItemID string) (*shoppingitem.ShoppingItem, error) {
	return r.findOne(ctx, handle, OpShoppingFindByStockItemID, stockItemID, byStockItem(ownerID, stockItemID))
}

func (r *ShoppingItems) Replace(ctx context.Context, handle tx.Handle, ownerID, key string, spec shoppingitem.UpdateSpec) (bool, error) {
	err := r.s.exec(ctx, handle, OpShoppingReplace, true, func(st *state) error {
		i := findShopping(st.shopping, byKey(ownerID, key))
		if i < 0 {
			return apperror.NewNotFound("shopping item", key)
		}
		next := st.shopping[i].v
		next.Name = spec.Name
		next.Quantity = spec.Quantity
		if err := validateShopping(next); err != nil {
			return err
		}
		if err := checkShoppingUnique(st.shopping, next, i); err != nil {
			return err
		}
		st.shopping[i].v = next
		return nil
	})
	return err == nil, err
}

func (r *ShoppingItems) AddQuantity(ctx context.Context, handle tx.Handle, ownerID, key string, delta int) (bool, error) {
	err := r.s.exec(ctx, handle, OpShoppingAddQuantity, true, func(st *state) error {
		i := findShopping(st.shopping, byKey(ownerID, key))
		if i < 0 {
			return apperror.NewNotFound("shopping item", key)
		}
		q := st.shopping[i].v.Quantity + delta
		if err := checkQuantity("quantity", q); err != nil {
			return err
		}
		st.shopping[i].v.Quantity = q
		return nil
	})
	return err == nil, err
}

func (r *ShoppingItems) Delete(ctx context.Context, handle tx.Handle, ownerID, key string) (bool, error) {
	err := r.s.exec(ctx, handle, OpShoppingDelete, true, func(st *state) error {
		i := findShopping(st.shopping, byKey(ownerID, key))
		if i < 0 {
			return apperror.NewNotFound("shopping item", key)
		}
		st.shopping = append(st.shopping[:i:i], st.shopping[i+1:]...)
		return nil
	})
	return err == nil, err
}

func (r *ShoppingItems) DeleteByStockItemID(ctx context.Context, handle tx.Handle, ownerID, stockItemID string) (bool, error) {
	deleted := false
	err := r.s.exec(ctx, handle, OpShoppingDeleteByStockItemID, true, func(st *state) error {
		i := findShopping(st.shopping, byStockItem(ownerID, stockItemID))
		if i < 0 {
			return nil
		}
		st.shopping = append(st.shopping[:i:i], st.shopping[i+1:]...)
		deleted = true
		return nil
	})
	return deleted, err
}
