package handlers

import (
	"github.com/gin-gonic/gin"

	"stockkeeper/internal/domain/inventory"
	"stockkeeper/internal/infrastructure/http/v1/dto"
)

// ShoppingItemHandler serves the shopping list. Shopping items are written only
// as a side effect of stock item operations.
type ShoppingItemHandler struct {
	*BaseHandler
	service *inventory.ShoppingItemService
}

// NewShoppingItemHandler creates a new shopping item handler.
func NewShoppingItemHandler(base *BaseHandler, service *inventory.ShoppingItemService) *ShoppingItemHandler {
	return &ShoppingItemHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /shopping-items
func (h *ShoppingItemHandler) List(c *gin.Context) {
	ownerID, ok := h.OwnerID(c)
	if !ok {
		return
	}

	items, err := h.service.Read(c.Request.Context(), ownerID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(items, dto.FromShoppingItem))
}

// Get handles GET /shopping-items/:id
func (h *ShoppingItemHandler) Get(c *gin.Context) {
	ownerID, ok := h.OwnerID(c)
	if !ok {
		return
	}

	item, err := h.service.ReadByID(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromShoppingItem(item))
}

// GetByStockItem handles GET /shopping-items/by-stock-item/:stockItemId
func (h *ShoppingItemHandler) GetByStockItem(c *gin.Context) {
	ownerID, ok := h.OwnerID(c)
	if !ok {
		return
	}

	item, err := h.service.ReadByStockItemID(c.Request.Context(), ownerID, c.Param("stockItemId"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromShoppingItem(item))
}
