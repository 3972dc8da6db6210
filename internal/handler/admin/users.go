package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	authHandler "quill/internal/handler/auth"
	"quill/internal/model/auth"
	httputil "quill/internal/pkg/http"
)

// UpdateUserRequest 修改用户请求，字段为空表示不修改
type UpdateUserRequest struct {
	Role   string `json:"role,omitempty" enums:"admin,author"`
	Status string `json:"status,omitempty" enums:"active,banned"`
}

// ListUsers 用户列表
// @Summary      用户列表
// @Tags         管理
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "页码"  default(1)
// @Param        limit  query     int  false  "每页数量"  default(20)
// @Success      200    {object}  PageResult[authHandler.UserInfo]
// @Failure      403    {object}  httputil.ErrorResponse
// @Router       /api/admin/users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, total, err := h.users.List(c.Request.Context(), int64(page), int64(limit))
	if err != nil {
		writeError(c, err)
		return
	}

	items := make([]authHandler.UserInfo, 0, len(users))
	for _, u := range users {
		items = append(items, authHandler.ToUserInfo(u))
	}
	c.JSON(http.StatusOK, PageResult[authHandler.UserInfo]{Items: items, Total: total, Page: page, Limit: limit})
}

// UpdateUser 修改用户角色或状态
// @Summary      修改用户角色/状态
// @Tags         管理
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string             true  "用户ID"
// @Param        request  body      UpdateUserRequest  true  "修改内容"
// @Success      200      {object}  authHandler.UserInfo
// @Failure      400      {object}  httputil.ErrorResponse
// @Failure      404      {object}  httputil.ErrorResponse
// @Failure      409      {object}  httputil.ErrorResponse
// @Router       /api/admin/users/{id} [patch]
func (h *Handler) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.Error(c, http.StatusBadRequest, httputil.CodeInvalidRequest, "Invalid request body", err.Error())
		return
	}

	user, err := h.users.UpdateRoleStatus(c.Request.Context(), actorFrom(c), c.Param("id"),
		auth.UserRole(req.Role), auth.UserStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, authHandler.ToUserInfo(user))
}

// DeleteUser 删除用户
// @Summary      删除用户
// @Description  删除账号并吊销其 Refresh Token，文章保留
// @Tags         管理
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "用户ID"
// @Success      200  {object}  httputil.SuccessResponse
// @Failure      403  {object}  httputil.ErrorResponse
// @Failure      404  {object}  httputil.ErrorResponse
// @Router       /api/admin/users/{id} [delete]
func (h *Handler) DeleteUser(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	httputil.Success(c, http.StatusOK, "User deleted successfully", nil)
}
