package auth

import (
	"context"

	"quill/internal/model/auth"
	"quill/internal/service"
)

// Service 认证处理器依赖的服务，由 *service.AuthService 实现
type Service interface {
	Register(ctx context.Context, username, email, pwd, nickname string) (*auth.User, error)
	Login(ctx context.Context, username, pwd string) (*service.LoginResult, error)
	RefreshToken(ctx context.Context, refreshValue string) (*service.RefreshTokenResult, error)
	Logout(ctx context.Context, refreshValue string) error
	GetUserByID(ctx context.Context, userID string) (*auth.User, error)
}

// Handler 认证处理器
type Handler struct {
	authService Service
}

// NewHandler 创建认证处理器
func NewHandler(authService Service) *Handler {
	return &Handler{
		authService: authService,
	}
}
