package post

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

// Service 文章服务
type Service interface {
	Create(ctx context.Context, actor service.Actor, in service.PostInput) (*post.Post, error)
	Get(ctx context.Context, postID string) (*post.Post, error)
	List(ctx context.Context, f post.ListFilter) ([]*post.Post, int64, error)
	Update(ctx context.Context, actor service.Actor, postID string, in service.PostInput) (*post.Post, error)
	Delete(ctx context.Context, actor service.Actor, postID string) error
}

// Handler 文章处理器
type Handler struct {
	posts Service
}

// NewHandler 创建文章处理器
func NewHandler(posts Service) *Handler {
	return &Handler{posts: posts}
}

// PostRequest 创建/更新文章请求
type PostRequest struct {
	Title       string   `json:"title" example:"Getting started with Go"`
	Description string   `json:"description,omitempty"`
	Content     string   `json:"content"`
	Author      string   `json:"author,omitempty"` // 默认 Anonymous
	Tags        []string `json:"tags,omitempty"`
}

func (r *PostRequest) input() service.PostInput {
	return service.PostInput{
		Title:       r.Title,
		Description: r.Description,
		Content:     r.Content,
		Author:      r.Author,
		Tags:        r.Tags,
	}
}

// actorFrom 从 context 读取认证中间件注入的用户
func actorFrom(c *gin.Context) service.Actor {
	ctx := c.Request.Context()
	userID, _ := ctxutil.GetUserID(ctx)
	role, _ := ctxutil.GetRole(ctx)
	return service.Actor{
		UserID: userID,
		Role:   auth.UserRole(role),
	}
}

// writeError 把服务层错误映射为 HTTP 响应
func writeError(c *gin.Context, err error, forbiddenMsg string) {
	var ie *service.InputError
	switch {
	case errors.As(err, &ie):
		httputil.Error(c, http.StatusBadRequest, httputil.CodeValidation, ie.Message)
	case errors.Is(err, service.ErrPostNotFound):
		httputil.Error(c, http.StatusNotFound, httputil.CodeNotFound, "Post not found")
	case errors.Is(err, service.ErrForbidden):
		httputil.Error(c, http.StatusForbidden, httputil.CodeForbidden, forbiddenMsg)
	default:
		logger.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg("post request failed")
		httputil.Error(c, http.StatusInternalServerError, httputil.CodeInternal, "Internal Server Error")
	}
}
