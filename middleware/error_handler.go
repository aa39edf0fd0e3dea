package middleware

import (
	"net/http"
	"strconv"

	"github.com/ViaggioGiappone/trip-planner-backend/errors"
	"github.com/ViaggioGiappone/trip-planner-backend/logger"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON body rendered for any request that ends with an
// error attached to the gin context.
type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Code    string `json:"code,omitempty"`
}

// ErrorHandler converts errors collected on the gin context into structured
// JSON responses. AppErrors carry their own HTTP status; anything else is a
// 500 with a generic message.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		log := logger.GetLogger()

		if appError, ok := err.(*errors.AppError); ok {
			status := appError.GetHTTPStatus()
			log.Errorw("Request failed",
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"status", status,
				"error_type", string(appError.Type),
				"error_message", appError.Message,
				"error_detail", appError.Detail,
				"request_id", c.GetString(RequestIDKey),
			)
			c.JSON(status, ErrorResponse{
				Type:    string(appError.Type),
				Message: appError.Message,
				Details: appError.Detail,
				Code:    strconv.Itoa(status),
			})
			return
		}

		log.Errorw("Unhandled request error",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"error", err,
			"request_id", c.GetString(RequestIDKey),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Type:    string(errors.ServerError),
			Message: "Internal server error",
			Code:    strconv.Itoa(http.StatusInternalServerError),
		})
	}
}
