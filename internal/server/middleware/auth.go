package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"quill/internal/model/auth"
	"quill/internal/pkg/ctxutil"
	httputil "quill/internal/pkg/http"
	"quill/internal/pkg/jwt"
	"quill/internal/service"
)

// TokenVerifier 校验 Access Token 并返回当前用户信息
type TokenVerifier interface {
	VerifyAccessToken(ctx context.Context, token string) (*jwt.Claims, error)
}

// Auth JWT 认证中间件
// 从 Authorization header 中提取 Bearer token，验证后注入 user_id / role 到 context
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httputil.Error(c, http.StatusUnauthorized, httputil.CodeUnauthorized, "Authentication required")
			return
		}

		// Bearer {token}
		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			httputil.Error(c, http.StatusUnauthorized, httputil.CodeUnauthorized, "Invalid authorization header")
			return
		}

		claims, err := verifier.VerifyAccessToken(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			switch {
			case errors.Is(err, service.ErrExpiredToken):
				httputil.Error(c, http.StatusUnauthorized, httputil.CodeTokenExpired, "Token expired")
			case errors.Is(err, service.ErrUserBanned):
				httputil.Error(c, http.StatusForbidden, httputil.CodeUserBanned, "User is banned")
			default:
				httputil.Error(c, http.StatusUnauthorized, httputil.CodeTokenInvalid, "Invalid token")
			}
			return
		}

		ctx := ctxutil.WithUserID(c.Request.Context(), claims.UserID)
		ctx = ctxutil.WithRole(ctx, claims.Role)
		c.Request = c.Request.WithContext(ctx)
		c.Set("user_id", claims.UserID)

		c.Next()
	}
}

// RequireRole 要求当前用户具有指定角色，需放在 Auth 之后
func RequireRole(roles ...auth.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := ctxutil.GetRole(c.Request.Context())
		for _, r := range roles {
			if string(r) == role {
				c.Next()
				return
			}
		}
		httputil.Error(c, http.StatusForbidden, httputil.CodeForbidden, "Forbidden")
	}
}
