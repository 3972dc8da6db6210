package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"quill/internal/model/auth"
	"quill/internal/pkg/id"
	"quill/internal/pkg/jwt"
	"quill/internal/pkg/password"
	"quill/internal/repository"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("username already taken")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserBanned         = errors.New("user is banned")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token expired")
)

// UserStore 用户存储
type UserStore interface {
	Create(ctx context.Context, user *auth.User) error
	FindByID(ctx context.Context, id string) (*auth.User, error)
	FindByUsername(ctx context.Context, username string) (*auth.User, error)
	FindByEmail(ctx context.Context, email string) (*auth.User, error)
	UpdateRoleStatus(ctx context.Context, id string, role auth.UserRole, status auth.UserStatus) error
	UpdateLastLoginAt(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, page, pageSize int64) ([]*auth.User, int64, error)
	Count(ctx context.Context) (int64, error)
	CountAdmins(ctx context.Context) (int64, error)
}

// RefreshTokenStore RefreshToken 存储
type RefreshTokenStore interface {
	Create(ctx context.Context, token *auth.RefreshToken) error
	FindByToken(ctx context.Context, token string) (*auth.RefreshToken, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteByUserID(ctx context.Context, userID string) error
}

// AuthService 认证服务
type AuthService struct {
	users         UserStore
	refreshTokens RefreshTokenStore
	jwt           *jwt.JWT
	refreshExpiry time.Duration
}

// NewAuthService 创建认证服务
func NewAuthService(
	users UserStore,
	refreshTokens RefreshTokenStore,
	jwtUtil *jwt.JWT,
	refreshTokenExpiry time.Duration,
) *AuthService {
	return &AuthService{
		users:         users,
		refreshTokens: refreshTokens,
		jwt:           jwtUtil,
		refreshExpiry: refreshTokenExpiry,
	}
}

// Register 注册新作者账号，注册后即可登录
func (s *AuthService) Register(ctx context.Context, username, email, pwd, nickname string) (*auth.User, error) {
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, ErrUserAlreadyExists
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyExists
	}

	hashed, err := password.Hash(pwd)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")
		return nil, err
	}

	user := &auth.User{
		ID:       id.New(),
		Username: username,
		Email:    email,
		Password: hashed,
		Role:     auth.RoleAuthor,
		Status:   auth.UserStatusActive,
	}
	if nickname != "" {
		user.Profile = &auth.UserProfile{Nickname: nickname}
	}

	if err := s.users.Create(ctx, user); err != nil {
		// 并发注册时由唯一索引兜底
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		log.Error().Err(err).Msg("failed to create user")
		return nil, err
	}

	log.Info().Str("user_id", user.ID).Str("username", username).Msg("user registered")
	return user, nil
}

// LoginResult 登录结果
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
	TokenType    string
	User         *auth.User
}

// Login 用户登录
// 用户不存在和密码错误返回同一个错误
func (s *AuthService) Login(ctx context.Context, username, pwd string) (*LoginResult, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(pwd, user.Password) {
		return nil, ErrInvalidCredentials
	}
	if user.Status == auth.UserStatusBanned {
		return nil, ErrUserBanned
	}

	accessToken, err := s.jwt.GenerateToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		log.Error().Err(err).Msg("failed to generate access token")
		return nil, err
	}

	refreshValue, err := jwt.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}
	refreshToken := &auth.RefreshToken{
		ID:        id.New(),
		UserID:    user.ID,
		Token:     refreshValue,
		ExpiresAt: time.Now().Add(s.refreshExpiry),
	}
	if err := s.refreshTokens.Create(ctx, refreshToken); err != nil {
		log.Error().Err(err).Msg("failed to create refresh token")
		return nil, err
	}

	if err := s.users.UpdateLastLoginAt(ctx, user.ID); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login time")
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshValue,
		ExpiresIn:    int(s.jwt.Expiration().Seconds()),
		TokenType:    "Bearer",
		User:         user,
	}, nil
}

// RefreshTokenResult 刷新Token结果
type RefreshTokenResult struct {
	AccessToken string
	ExpiresIn   int
	TokenType   string
}

// RefreshToken 使用 Refresh Token 换取新的 Access Token
func (s *AuthService) RefreshToken(ctx context.Context, refreshValue string) (*RefreshTokenResult, error) {
	refreshToken, err := s.refreshTokens.FindByToken(ctx, refreshValue)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if refreshToken.IsExpired() {
		_ = s.refreshTokens.DeleteByToken(ctx, refreshValue)
		return nil, ErrExpiredToken
	}

	user, err := s.users.FindByID(ctx, refreshToken.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.Status == auth.UserStatusBanned {
		return nil, ErrUserBanned
	}

	accessToken, err := s.jwt.GenerateToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		log.Error().Err(err).Msg("failed to generate access token")
		return nil, err
	}

	return &RefreshTokenResult{
		AccessToken: accessToken,
		ExpiresIn:   int(s.jwt.Expiration().Seconds()),
		TokenType:   "Bearer",
	}, nil
}

// Logout 删除 Refresh Token
func (s *AuthService) Logout(ctx context.Context, refreshValue string) error {
	return s.refreshTokens.DeleteByToken(ctx, refreshValue)
}

// GetUserByID 根据ID获取用户信息
func (s *AuthService) GetUserByID(ctx context.Context, userID string) (*auth.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// VerifyAccessToken 校验 Access Token，并以数据库中的角色为准
// 被封禁或已删除的用户即使 Token 未过期也会被拒绝
func (s *AuthService) VerifyAccessToken(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if user.Status == auth.UserStatusBanned {
		return nil, ErrUserBanned
	}

	claims.Role = string(user.Role)
	return claims, nil
}
