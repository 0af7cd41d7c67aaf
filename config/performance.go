package config

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func PerformanceLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		logger := zap.L()

		logger.Info("[PERF]",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency))

		// Alert for slow requests
		if latency > 200*time.Millisecond {
			logger.Warn("SLOW REQUEST",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Duration("latency", latency))
		}
	}
}
