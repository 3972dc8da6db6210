package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "quill/internal/pkg/http"
	"quill/internal/pkg/logger"
)

// Logout 退出登录
// @Summary      退出登录
// @Description  删除 Refresh Token；Token 可以放在 X-Refresh-Token 头或请求体
// @Tags         认证
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  httputil.SuccessResponse
// @Failure      401  {object}  httputil.ErrorResponse
// @Router       /api/v1/auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	refreshToken := c.GetHeader("X-Refresh-Token")
	if refreshToken == "" {
		var req struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := c.ShouldBindJSON(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}

	if refreshToken != "" {
		if err := h.authService.Logout(c.Request.Context(), refreshToken); err != nil {
			logger.Ctx(c.Request.Context()).Warn().Err(err).Msg("failed to delete refresh token")
		}
	}

	httputil.Success(c, http.StatusOK, "logged out", nil)
}
