package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RespondWithError aborts the request with a JSON error body.
func RespondWithError(c *gin.Context, status int, message string) {
	GetLogger().Warn(message,
		zap.Int("status", status),
		zap.String("path", c.Request.URL.Path))
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// ErrorHandler turns panics into a 500 response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}
