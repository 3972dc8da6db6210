package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quill/internal/pkg/ctxutil"
	httputil "quill/internal/pkg/http"
)

// GetMe 获取当前用户信息
// @Summary      获取当前用户信息
// @Tags         认证
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  httputil.SuccessResponse{data=UserInfo}
// @Failure      401  {object}  httputil.ErrorResponse
// @Router       /api/v1/auth/me [get]
func (h *Handler) GetMe(c *gin.Context) {
	userID, ok := ctxutil.GetUserID(c.Request.Context())
	if !ok {
		httputil.Error(c, http.StatusUnauthorized, httputil.CodeUnauthorized, "Authentication required")
		return
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	httputil.Success(c, http.StatusOK, "success", ToUserInfo(user))
}
