package routes

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader はリクエストIDを運ぶヘッダーです。
const RequestIDHeader = "X-Request-ID"

// RequestID は各リクエストにIDを付与するミドルウェアです。
// クライアントが X-Request-ID を送ってきた場合はそれをそのまま使います。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			c.Request.Header.Set(RequestIDHeader, id)
		}
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// Logger は gin のアクセスログにリクエストIDを含めます。RequestID の後に置いてください。
func Logger() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(p gin.LogFormatterParams) string {
		return fmt.Sprintf("[todo-api] %s | %s | %3d | %13v | %15s | %-7s %#v\n%s",
			p.TimeStamp.Format(time.RFC3339),
			p.Request.Header.Get(RequestIDHeader),
			p.StatusCode,
			p.Latency,
			p.ClientIP,
			p.Method,
			p.Path,
			p.ErrorMessage,
		)
	})
}
