package memstore

import (
	"context"

	"stockkeeper/internal/core/apperror"
	"stockkeeper/internal/core/id"
	"stockkeeper/internal/core/tx"
	"stockkeeper/internal/domain/stockitem"
)

// StockItems implements stockitem.Repository.
type StockItems struct {
	s *Store
}

var _ stockitem.Repository = (*StockItems)(nil)

// StockItems returns the stock item repository backed by s.
func (s *Store) StockItems() *StockItems {
	return &StockItems{s: s}
}

func validateStock(v stockitem.StockItem) error {
	return firstErr(
		checkID("id", v.ID),
		checkID("ownerId", v.OwnerID),
		checkName(v.Name),
		checkQuantity("quantity", v.Quantity),
		checkQuantity("minimumQuantity", v.MinimumQuantity),
	)
}

// checkStockUnique reports a Conflict if v collides with any row other than skip.
func checkStockUnique(rows []row[stockitem.StockItem], v stockitem.StockItem, skip int) error {
	for i, r := range rows {
		if i == skip || r.v.OwnerID != v.OwnerID {
			continue
		}
		if sameName(r.v.Name, v.Name) {
			return apperror.NewDuplicate("stock item", "name")
		}
		if r.v.ID == v.ID {
			return apperror.NewDuplicate("stock item", "id")
		}
	}
	return nil
}

func findStock(rows []row[stockitem.StockItem], ownerID, key string) int {
	for i, r := range rows {
		if r.v.OwnerID == ownerID && (r.v.ID == key || r.key == key) {
			return i
		}
	}
	return -1
}

func (r *StockItems) Insert(ctx context.Context, handle tx.Handle, item stockitem.StockItem) error {
	return r.s.exec(ctx, handle, OpStockInsert, true, func(st *state) error {
		if err := validateStock(item); err != nil {
			return err
		}
		if err := checkStockUnique(st.stock, item, -1); err != nil {
			return err
		}
		st.stock = append(st.stock, row[stockitem.StockItem]{key: id.New(), v: item})
		return nil
	})
}

func (r *StockItems) Find(ctx context.Context, handle tx.Handle, ownerID string) ([]stockitem.StockItem, error) {
	items := []stockitem.StockItem{}
	err := r.s.exec(ctx, handle, OpStockFind, false, func(st *state) error {
		for _, rw := range st.stock {
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

func (r *StockItems) FindOne(ctx context.Context, handle tx.Handle, ownerID, key string) (*stockitem.StockItem, error) {
	var found stockitem.StockItem
	err := r.s.exec(ctx, handle, OpStockFindOne, false, func(st *state) error {
		i := findStock(st.stock, ownerID, key)
		if i < 0 {
			return apperror.NewNotFound("stock item", key)
		}
		found = st.stock[i].v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *StockItems) Replace(ctx context.Context, handle tx.Handle, ownerID, key string, spec stockitem.UpdateSpec) (bool, error) {
	err := r.s.exec(ctx, handle, OpStockReplace, true, func(st *state) error {
		i := findStock(st.stock, ownerID, key)
		if i < 0 {
			return apperror.NewNotFound("stock item", key)
		}
		next := st.stock[i].v
		next.Name = spec.Name
		next.Quantity = spec.Quantity
		next.MinimumQuantity = spec.MinimumQuantity
		if err := validateStock(next); err != nil {
			return err
		}
		if err := checkStockUnique(st.stock, next, i); err != nil {
			return err
		}
		st.stock[i].v = next
		return nil
	})
	return err == nil, err
}

func (r *StockItems) AddQuantity(ctx context.Context, handle tx.Handle, ownerID, key string, delta int) (bool, error) {
	err := r.s.exec(ctx, handle, OpStockAddQuantity, true, func(st *state) error {
		i := findStock(st.stock, ownerID, key)
		if i < 0 {
			return apperror.NewNotFound("stock item", key)
		}
		q := st.stock[i].v.Quantity + delta
		if err := checkQuantity("quantity", q); err != nil {
			return err
		}
		st.stock[i].v.Quantity = q
		return nil
	})
	return err == nil, err
}

func (r *StockItems) Delete(ctx context.Context, handle tx.Handle, ownerID, key string) (bool, error) {
	err := r.s.exec(ctx, handle, OpStockDelete, true, func(st *state) error {
		i := findStock(st.stock, ownerID, key)
		if i < 0 {
			return apperror.NewNotFound("stock item", key)
		}
		st.stock = append(st.stock[:i:i], st.stock[i+1:]...)
		return nil
	})
	return err == nil, err
}
