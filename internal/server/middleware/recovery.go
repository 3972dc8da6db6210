package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	httputil "quill/internal/pkg/http"
	"quill/internal/pkg/logger"
)

// Recovery 异常恢复中间件
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Ctx(c.Request.Context()).Error().
					Interface("error", err).
					Str("path", c.Request.URL.Path).
					Str("method", c.Request.Method).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")

				httputil.Error(c, http.StatusInternalServerError, httputil.CodeInternal, "Internal Server Error")
			}
		}()
		c.Next()
	}
}
