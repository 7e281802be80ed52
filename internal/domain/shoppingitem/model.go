// Package shoppingitem provides the shopping item entity and its single-collection operations.
// Shopping items are replenishment requests derived from stock items.
package shoppingitem

// ShoppingItem asks for Quantity more units of the referenced stock item.
type ShoppingItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	OwnerID     string `json:"ownerId"`
	StockItemID string `json:"stockItemId"`
}

// CreateSpec describes a new shopping item. ID is generated when empty.
type CreateSpec struct {
	ID          string
	Name        string
	Quantity    int
	StockItemID string
}

// UpdateSpec is a full replacement of the mutable fields.
type UpdateSpec struct {
	Name     string
	Quantity int
}
