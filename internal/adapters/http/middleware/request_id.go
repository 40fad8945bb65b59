package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader はリクエスト ID を受け渡すヘッダー名です。
const RequestIDHeader = "X-Request-Id"

const requestIDKey = "request_id"

// RequestID はリクエスト ID を採番(または受領)してコンテキストへ載せます。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

// RequestIDFrom はコンテキストからリクエスト ID を取り出します。
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
