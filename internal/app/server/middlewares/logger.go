package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"printshop/pkg/logger"
)

// HeaderRequestID 请求 ID 头
const HeaderRequestID = "X-Request-ID"

// RequestID 为每个请求分配链路 ID，并注入 Request Context
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set(HeaderRequestID, id)
		c.Request = c.Request.WithContext(logger.WithTraceID(c.Request.Context(), id))
		c.Next()
	}
}

// Logger 请求日志
func Logger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ctx := c.Request.Context()
		status := c.Writer.Status()
		cost := time.Since(start)
		switch {
		case status >= 500:
			log.Errorf(ctx, "%s %s %d %s", c.Request.Method, c.Request.URL.Path, status, cost)
		case status >= 400:
			log.Warnf(ctx, "%s %s %d %s", c.Request.Method, c.Request.URL.Path, status, cost)
		default:
			log.Infof(ctx, "%s %s %d %s", c.Request.Method, c.Request.URL.Path, status, cost)
		}
	}
}
