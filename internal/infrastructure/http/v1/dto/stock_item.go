package dto

import (
	"stockkeeper/internal/core/entity"
	"stockkeeper/internal/domain/stockitem"
)

// --- Request DTOs ---

// CreateStockItemRequest is the request body for creating a stock item.
// Range checks are left to storage so that every write reports the same errors.
type CreateStockItemRequest struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Quantity        int    `json:"quantity"`
	MinimumQuantity int    `json:"minimumQuantity"`
}

// ToSpec converts DTO to domain spec.
func (r *CreateStockItemRequest) ToSpec() stockitem.CreateSpec {
	return stockitem.CreateSpec{
		ID:              r.ID,
		Name:            r.Name,
		Quantity:        r.Quantity,
		MinimumQuantity: r.MinimumQuantity,
	}
}

// UpdateStockItemRequest replaces every mutable field.
type UpdateStockItemRequest struct {
	Name            string `json:"name"`
	Quantity        int    `json:"quantity"`
	MinimumQuantity int    `json:"minimumQuantity"`
}

// ToSpec converts DTO to domain spec.
func (r *UpdateStockItemRequest) ToSpec() stockitem.UpdateSpec {
	return stockitem.UpdateSpec{
		Name:            r.Name,
		Quantity:        r.Quantity,
		MinimumQuantity: r.MinimumQuantity,
	}
}

// UpdateQuantityRequest is a delta update of the stored quantity.
type UpdateQuantityRequest struct {
	Operation string `json:"operation" binding:"required"`
	Delta     int    `json:"delta"`
}

// ToOperation returns the parsed operation. Unknown values map to the zero
// operation, which the domain rejects as an invalid argument.
func (r *UpdateQuantityRequest) ToOperation() entity.QuantityOperation {
	op, _ := entity.ParseQuantityOperation(r.Operation)
	return op
}

// --- Response DTOs ---

// StockItemResponse is the response body for a stock item.
type StockItemResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Quantity        int    `json:"quantity"`
	MinimumQuantity int    `json:"minimumQuantity"`
	Shortfall       int    `json:"shortfall"`
}

// FromStockItem creates response from domain entity.
func FromStockItem(s *stockitem.StockItem) StockItemResponse {
	return StockItemResponse{
		ID:              s.ID,
		Name:            s.Name,
		Quantity:        s.Quantity,
		MinimumQuantity: s.MinimumQuantity,
		Shortfall:       s.Shortfall(),
	}
}
