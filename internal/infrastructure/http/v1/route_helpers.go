// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
)

// ReadRouteHandler is implemented by every item handler.
type ReadRouteHandler interface {
	List(c *gin.Context)
	Get(c *gin.Context)
}

// WriteRouteHandler is implemented by handlers of items that clients edit directly.
type WriteRouteHandler interface {
	ReadRouteHandler
	Create(c *gin.Context)
	Update(c *gin.Context)
	UpdateQuantity(c *gin.Context)
	Delete(c *gin.Context)
}

// RegisterReadRoutes registers the list and get routes for an item collection.
func RegisterReadRoutes(group *gin.RouterGroup, handler ReadRouteHandler) {
	group.GET("", handler.List)
	group.GET("/:id", handler.Get)
}

// RegisterItemRoutes registers the full set of item routes.
func RegisterItemRoutes(group *gin.RouterGroup, handler WriteRouteHandler) {
	RegisterReadRoutes(group, handler)
	group.POST("", handler.Create)
	group.PUT("/:id", handler.Update)
	group.PATCH("/:id/quantity", handler.UpdateQuantity)
	group.DELETE("/:id", handler.Delete)
}
