package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "quill/internal/pkg/http"
)

// RegisterRequest 用户注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Nickname string `json:"nickname,omitempty"`
}

// Register 用户注册
// @Summary      用户注册
// @Description  注册作者账号，注册后即可登录
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterRequest  true  "注册请求"
// @Success      201      {object}  httputil.SuccessResponse{data=UserInfo}
// @Failure      400      {object}  httputil.ErrorResponse
// @Failure      409      {object}  httputil.ErrorResponse
// @Router       /api/v1/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.Error(c, http.StatusBadRequest, httputil.CodeInvalidRequest, "Invalid request body", err.Error())
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.Nickname)
	if err != nil {
		writeError(c, err)
		return
	}

	httputil.Success(c, http.StatusCreated, "registration successful", ToUserInfo(user))
}
