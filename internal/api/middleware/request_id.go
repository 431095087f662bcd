package middleware

import (
	"vida-likes/internal/api/response"
	"vida-likes/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderRequestID     = "X-Request-ID"
	ContextKeyRequestID = response.ContextKeyRequestID
)

// RequestID 为每个请求分配 ID，客户端已带 X-Request-ID 时沿用
// ID 同时写入 gin.Context（响应体）和 request context（Service 层日志）
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextKeyRequestID, id)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}
