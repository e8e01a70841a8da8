package middleware

import (
	"listing-pricer/internal/errors"
	"listing-pricer/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler turns the last error attached to the context into a JSON response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		appErr := errors.MapError(c.Errors.Last().Err)

		logger.GlobalLogger.Errorf("Request failed: request_id=%s path=%s method=%s client_ip=%s code=%s error=%s",
			c.GetString(RequestIDKey),
			c.Request.URL.Path,
			c.Request.Method,
			c.ClientIP(),
			appErr.Code,
			appErr.TechnicalMessage)

		c.JSON(appErr.HTTPStatus, gin.H{
			"error": gin.H{
				"message": appErr.UserMessage,
				"code":    appErr.Code,
			},
		})
	}
}
