package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"quill/internal/model/auth"
	httputil "quill/internal/pkg/http"
	"quill/internal/pkg/logger"
	"quill/internal/service"
)

// UserInfo 用户信息（用于响应，所有API共用）
type UserInfo struct {
	ID          string       `json:"id"`
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	Role        string       `json:"role"`   // admin/author
	Status      string       `json:"status"` // active/banned
	Profile     *UserProfile `json:"profile,omitempty"`
	LastLoginAt string       `json:"last_login_at,omitempty"`
	CreatedAt   string       `json:"created_at,omitempty"`
}

// UserProfile 用户资料
type UserProfile struct {
	Nickname string `json:"nickname,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Bio      string `json:"bio,omitempty"`
}

// ToUserInfo 将User实体转换为UserInfo，管理接口也复用
func ToUserInfo(user *auth.User) UserInfo {
	info := UserInfo{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     string(user.Role),
		Status:   string(user.Status),
	}

	if user.Profile != nil {
		info.Profile = &UserProfile{
			Nickname: user.Profile.Nickname,
			Avatar:   user.Profile.Avatar,
			Bio:      user.Profile.Bio,
		}
	}
	if user.LastLoginAt != nil {
		info.LastLoginAt = user.LastLoginAt.Format(time.RFC3339)
	}
	if !user.CreatedAt.IsZero() {
		info.CreatedAt = user.CreatedAt.Format(time.RFC3339)
	}
	return info
}

// writeError 认证错误映射
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserAlreadyExists), errors.Is(err, service.ErrEmailAlreadyExists):
		httputil.Error(c, http.StatusConflict, httputil.CodeConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUserNotFound):
		httputil.Error(c, http.StatusUnauthorized, httputil.CodeUnauthorized, err.Error())
	case errors.Is(err, service.ErrInvalidToken):
		httputil.Error(c, http.StatusUnauthorized, httputil.CodeTokenInvalid, err.Error())
	case errors.Is(err, service.ErrExpiredToken):
		httputil.Error(c, http.StatusUnauthorized, httputil.CodeTokenExpired, err.Error())
	case errors.Is(err, service.ErrUserBanned):
		httputil.Error(c, http.StatusForbidden, httputil.CodeUserBanned, err.Error())
	default:
		logger.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg("auth request failed")
		httputil.Error(c, http.StatusInternalServerError, httputil.CodeInternal, "Internal Server Error")
	}
}
