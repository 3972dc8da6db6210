package service

import (
	"context"
	"errors"

	"quill/internal/model/auth"
	"quill/internal/pkg/logger"
	"quill/internal/repository"
)

// ErrLastAdmin 不能移除最后一个有效管理员
var ErrLastAdmin = errors.New("cannot remove the last active admin")

// UserService 管理员的用户管理服务
type UserService struct {
	users         UserStore
	refreshTokens RefreshTokenStore
	posts         PostStore
}

// NewUserService 创建用户管理服务
func NewUserService(users UserStore, refreshTokens RefreshTokenStore, posts PostStore) *UserService {
	return &UserService{
		users:         users,
		refreshTokens: refreshTokens,
		posts:         posts,
	}
}

// List 分页查询用户
func (s *UserService) List(ctx context.Context, page, pageSize int64) ([]*auth.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.users.List(ctx, page, pageSize)
}

// UpdateRoleStatus 修改用户角色或状态，空值表示不修改
// 封禁用户时同时吊销其 Refresh Token
func (s *UserService) UpdateRoleStatus(ctx context.Context, actor Actor, userID string, role auth.UserRole, status auth.UserStatus) (*auth.User, error) {
	if role != "" && !role.IsValid() {
		return nil, inputErrorf("Invalid role %q", role)
	}
	if status != "" && !status.IsValid() {
		return nil, inputErrorf("Invalid status %q", status)
	}
	if role == "" && status == "" {
		return nil, inputErrorf("Nothing to update")
	}

	user, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}

	demoting := user.IsAdmin() && user.Status == auth.UserStatusActive &&
		((role != "" && role != auth.RoleAdmin) || status == auth.UserStatusBanned)
	if demoting {
		if userID == actor.UserID {
			return nil, ErrForbidden
		}
		if err := s.ensureAnotherAdmin(ctx); err != nil {
			return nil, err
		}
	}

	if err := s.users.UpdateRoleStatus(ctx, userID, role, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if role != "" {
		user.Role = role
	}
	if status != "" {
		user.Status = status
	}

	if status == auth.UserStatusBanned {
		if err := s.refreshTokens.DeleteByUserID(ctx, userID); err != nil {
			logger.Ctx(ctx).Warn().Err(err).Str("target_user_id", userID).Msg("failed to revoke refresh tokens")
		}
	}

	logger.Ctx(ctx).Info().
		Str("target_user_id", userID).
		Str("role", string(user.Role)).
		Str("status", string(user.Status)).
		Msg("user updated by admin")
	return user, nil
}

// Delete 删除用户，不能删除自己；其文章保留
func (s *UserService) Delete(ctx context.Context, actor Actor, userID string) error {
	if userID == actor.UserID {
		return ErrForbidden
	}

	user, err := s.find(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsAdmin() && user.Status == auth.UserStatusActive {
		if err := s.ensureAnotherAdmin(ctx); err != nil {
			return err
		}
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if err := s.refreshTokens.DeleteByUserID(ctx, userID); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("target_user_id", userID).Msg("failed to revoke refresh tokens")
	}

	logger.Ctx(ctx).Info().Str("target_user_id", userID).Msg("user deleted by admin")
	return nil
}

// Stats 站点统计
type Stats struct {
	Posts int64 `json:"posts"`
	Users int64 `json:"users"`
}

// Stats 返回文章和用户数量
func (s *UserService) Stats(ctx context.Context) (*Stats, error) {
	posts, err := s.posts.Count(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{Posts: posts, Users: users}, nil
}

func (s *UserService) find(ctx context.Context, userID string) (*auth.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) ensureAnotherAdmin(ctx context.Context) error {
	n, err := s.users.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if n <= 1 {
		return ErrLastAdmin
	}
	return nil
}
