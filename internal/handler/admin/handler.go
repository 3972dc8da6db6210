package admin

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"quill/internal/model/auth"
	"quill/internal/model/post"
	"quill/internal/pkg/ctxutil"
	httputil "quill/internal/pkg/http"
	"quill/internal/pkg/logger"
	"quill/internal/service"
)

// UserManager 用户管理
type UserManager interface {
	List(ctx context.Context, page, pageSize int64) ([]*auth.User, int64, error)
	UpdateRoleStatus(ctx context.Context, actor service.Actor, userID string, role auth.UserRole, status auth.UserStatus) (*auth.User, error)
	Delete(ctx context.Context, actor service.Actor, userID string) error
	Stats(ctx context.Context) (*service.Stats, error)
}

// PostManager 文章管理
type PostManager interface {
	List(ctx context.Context, f post.ListFilter) ([]*post.Post, int64, error)
	Delete(ctx context.Context, actor service.Actor, postID string) error
}

// Handler 管理后台处理器，路由上需要 admin 角色
type Handler struct {
	users UserManager
	posts PostManager
}

// NewHandler 创建管理后台处理器
func NewHandler(users UserManager, posts PostManager) *Handler {
	return &Handler{users: users, posts: posts}
}

// PageResult 分页结果
type PageResult[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

func actorFrom(c *gin.Context) service.Actor {
	ctx := c.Request.Context()
	userID, _ := ctxutil.GetUserID(ctx)
	role, _ := ctxutil.GetRole(ctx)
	return service.Actor{UserID: userID, Role: auth.UserRole(role)}
}

func writeError(c *gin.Context, err error) {
	var ie *service.InputError
	switch {
	case errors.As(err, &ie):
		httputil.Error(c, http.StatusBadRequest, httputil.CodeValidation, ie.Message)
	case errors.Is(err, service.ErrUserNotFound):
		httputil.Error(c, http.StatusNotFound, httputil.CodeNotFound, "User not found")
	case errors.Is(err, service.ErrPostNotFound):
		httputil.Error(c, http.StatusNotFound, httputil.CodeNotFound, "Post not found")
	case errors.Is(err, service.ErrForbidden):
		httputil.Error(c, http.StatusForbidden, httputil.CodeForbidden, "Admins cannot demote or delete themselves")
	case errors.Is(err, service.ErrLastAdmin):
		httputil.Error(c, http.StatusConflict, httputil.CodeConflict, err.Error())
	default:
		logger.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg("admin request failed")
		httputil.Error(c, http.StatusInternalServerError, httputil.CodeInternal, "Internal Server Error")
	}
}
