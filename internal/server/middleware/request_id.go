package middleware

import (
	"github.com/gin-gonic/gin"

	"quill/internal/pkg/ctxutil"
	"quill/internal/pkg/id"
)

// RequestIDHeader 请求 ID 头
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLength = 128

// RequestID 为每个请求生成或透传请求 ID
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" || len(reqID) > maxRequestIDLength {
			reqID = id.New()
		}

		c.Set("request_id", reqID)
		c.Header(RequestIDHeader, reqID)
		c.Request = c.Request.WithContext(ctxutil.WithRequestID(c.Request.Context(), reqID))

		c.Next()
	}
}
