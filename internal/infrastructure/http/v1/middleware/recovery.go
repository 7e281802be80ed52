// Package middleware provides HTTP middleware components.
package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"stockkeeper/internal/core/apperror"
	"stockkeeper/internal/infrastructure/http/v1/dto"
	"stockkeeper/pkg/logger"
)

// Recovery middleware recovers from panics and returns 500 error.
// Logs stack trace but never exposes internal details to client.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error(c.Request.Context(), "panic recovered",
					"error", err,
					"stack", string(debug.Stack()),
				)

				// ErrorHandler sits inside this middleware and never sees the panic.
				_ = c.Error(apperror.NewInternal(fmt.Errorf("panic: %v", err)))
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					Error: internalErrorMessage,
					Code:  apperror.CodeInternal,
					Details: map[string]any{
						"request_id": c.GetString("request_id"),
					},
				})
			}
		}()
		c.Next()
	}
}
