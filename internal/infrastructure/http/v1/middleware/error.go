package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockkeeper/internal/core/apperror"
	"stockkeeper/internal/infrastructure/http/v1/dto"
	"stockkeeper/pkg/logger"
)

const internalErrorMessage = "Internal server error"

// ErrorHandler middleware transforms errors into consistent JSON responses.
// The error kind selects the status code. Unclassified errors are logged
// with their cause and answered with a generic message.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		// If response already written by handler, do not override it.
		if c.Writer.Written() {
			return
		}

		appErr, ok := apperror.AsAppError(err)
		if !ok || appErr.Kind == apperror.KindUnclassified {
			logger.Error(c.Request.Context(), "unhandled error",
				"error", err,
			)
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error: internalErrorMessage,
				Code:  apperror.CodeInternal,
				Details: map[string]any{
					"request_id": c.GetString("request_id"),
				},
			})
			return
		}

		if appErr.Err != nil {
			logger.Debug(c.Request.Context(), "request error",
				"code", appErr.Code,
				"cause", appErr.Err,
			)
		}

		c.JSON(appErr.HTTPStatus(), dto.ErrorResponse{
			Error:   appErr.Message,
			Code:    appErr.Code,
			Details: appErr.Details,
		})
	}
}
