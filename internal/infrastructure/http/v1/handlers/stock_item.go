package handlers

import (
	"github.com/gin-gonic/gin"

	"stockkeeper/internal/domain/inventory"
	"stockkeeper/internal/infrastructure/http/v1/dto"
)

// StockItemHandler handles HTTP requests for stock items.
type StockItemHandler struct {
	*BaseHandler
	service *inventory.StockItemService
}

// NewStockItemHandler creates a new stock item handler.
func NewStockItemHandler(base *BaseHandler, service *inventory.StockItemService) *StockItemHandler {
	return &StockItemHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /stock-items
func (h *StockItemHandler) List(c *gin.Context) {
	ownerID, ok := h.OwnerID(c)
	if !ok {
		return
	}

	items, err := h.service.Read(c.Request.Context(), ownerID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(items, dto.FromStockItem))
}

// Get handles GET /stock-items/:id
func (h *StockItemHandler) Get(c *gin.Context) {
	ownerID, ok := h.OwnerID(c)
	if !ok {
		return
	}

	item, err := h.service.ReadByID(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromStockItem(item))
}

// Create handles POST /stock-items
func (h *StockItemHandler) Create(c *gin.Context) {
	ownerID, ok := h.OwnerID(c)
	if !ok {
		return
	}

	var req dto.CreateStockItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.service.Create(c.Request.Context(), ownerID, req.ToSpec())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromStockItem(item))
}

// Update handles PUT /stock-items/:id
func (h *StockItemHandler) Update(c *gin.Context) {
	ownerID, ok := h.OwnerID(c)
	if !ok {
		return
	}

	var req dto.UpdateStockItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if _, err := h.service.Update(c.Request.Context(), ownerID, c.Param("id"), req.ToSpec()); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c)
}

// UpdateQuantity handles PATCH /stock-items/:id/quantity
func (h *StockItemHandler) UpdateQuantity(c *gin.Context) {
	ownerID, ok := h.OwnerID(c)
	if !ok {
		return
	}

	var req dto.UpdateQuantityRequest
	if !h.BindJSON(c, &req) {
		return
	}

	_, err := h.service.UpdateQuantity(c.Request.Context(), ownerID, c.Param("id"), req.ToOperation(), req.Delta)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c)
}

// Delete handles DELETE /stock-items/:id
func (h *StockItemHandler) Delete(c *gin.Context) {
	ownerID, ok := h.OwnerID(c)
	if !ok {
		return
	}

	if _, err := h.service.Delete(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
