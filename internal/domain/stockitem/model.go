// Package stockitem provides the stock item entity and its single-collection operations.
package stockitem

import (
	"stockkeeper/internal/core/entity"
)

// StockItem is something a user keeps on hand.
type StockItem struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Quantity        int    `json:"quantity"`
	MinimumQuantity int    `json:"minimumQuantity"`
	OwnerID         string `json:"ownerId"`
}

// Shortfall is the quantity a shopping item should request for this item.
func (s StockItem) Shortfall() int {
	return entity.Shortfall(s.Quantity, s.MinimumQuantity)
}

// CreateSpec describes a new stock item. ID must be a canonical UUID string;
// it is generated when empty.
type CreateSpec struct {
	ID              string
	Name            string
	Quantity        int
	MinimumQuantity int
}

// UpdateSpec is a full replacement of the mutable fields.
type UpdateSpec struct {
	Name            string
	Quantity        int
	MinimumQuantity int
}
