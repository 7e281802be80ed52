package dto

import (
	"stockkeeper/internal/domain/shoppingitem"
)

// ShoppingItemResponse is the response body for a shopping item.
type ShoppingItemResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	StockItemID string `json:"stockItemId"`
}

// FromShoppingItem creates response from domain entity.
func FromShoppingItem(s *shoppingitem.ShoppingItem) ShoppingItemResponse {
	return ShoppingItemResponse{
		ID:          s.ID,
		Name:        s.Name,
		Quantity:    s.Quantity,
		StockItemID: s.StockItemID,
	}
}
