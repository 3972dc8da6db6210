package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"quill/internal/model/auth"
	"quill/internal/model/post"
	"quill/internal/pkg/cache"
	"quill/internal/pkg/id"
	"quill/internal/pkg/logger"
	"quill/internal/repository"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrForbidden    = errors.New("forbidden")
)

// InputError 请求内容不合法，Message 直接返回给调用方
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

func inputErrorf(format string, args ...any) error {
	return &InputError{Message: fmt.Sprintf(format, args...)}
}

// PostStore 文章存储
type PostStore interface {
	Create(ctx context.Context, p *post.Post) error
	FindByID(ctx context.Context, id string) (*post.Post, error)
	Update(ctx context.Context, p *post.Post) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f post.ListFilter) ([]*post.Post, int64, error)
	Count(ctx context.Context) (int64, error)
}

// Cache 读缓存，值以 JSON 存储
type Cache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Actor 发起操作的用户
type Actor struct {
	UserID string
	Role   auth.UserRole
}

// PostInput 创建/更新文章的输入
type PostInput struct {
	Title       string
	Description string
	Content     string
	Author      string
	Tags        []string
}

// PostService 文章服务
// 单篇读取走 cache-aside，写操作后删除缓存
type PostService struct {
	posts    PostStore
	cache    Cache
	cacheTTL time.Duration
}

// NewPostService 创建文章服务，postCache 可以为 nil
func NewPostService(posts PostStore, postCache Cache, cacheTTL time.Duration) *PostService {
	if cacheTTL <= 0 {
		cacheTTL = cache.DefaultPostTTL
	}
	return &PostService{
		posts:    posts,
		cache:    postCache,
		cacheTTL: cacheTTL,
	}
}

// Create 创建文章
func (s *PostService) Create(ctx context.Context, actor Actor, in PostInput) (*post.Post, error) {
	if actor.UserID == "" {
		return nil, ErrForbidden
	}
	if err := in.normalize(); err != nil {
		return nil, err
	}

	p := &post.Post{
		ID:          id.New(),
		Title:       in.Title,
		Description: in.Description,
		Content:     in.Content,
		Author:      in.Author,
		UserID:      actor.UserID,
		Tags:        in.Tags,
	}
	if p.Author == "" {
		p.Author = post.DefaultAuthor
	}

	if err := s.posts.Create(ctx, p); err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Info().
		Str("post_id", p.ID).
		Int("content_length", utf8.RuneCountInString(p.Content)).
		Int("tags", len(p.Tags)).
		Msg("post created")
	return p, nil
}

// Get 获取单篇文章
func (s *PostService) Get(ctx context.Context, postID string) (*post.Post, error) {
	key := cache.PostCacheKey(postID)
	if s.cache != nil {
		var cached post.Post
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			logger.Ctx(ctx).Warn().Err(err).Str("post_id", postID).Msg("post cache read failed")
		}
	}

	p, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, p, s.cacheTTL); err != nil {
			logger.Ctx(ctx).Warn().Err(err).Str("post_id", postID).Msg("post cache write failed")
		}
	}
	return p, nil
}

// List 分页查询文章
func (s *PostService) List(ctx context.Context, f post.ListFilter) ([]*post.Post, int64, error) {
	f.Search = strings.TrimSpace(f.Search)
	f.Tag = strings.TrimSpace(f.Tag)
	f.Normalize()
	return s.posts.List(ctx, f)
}

// Update 更新文章，只有作者本人或管理员可以修改
func (s *PostService) Update(ctx context.Context, actor Actor, postID string, in PostInput) (*post.Post, error) {
	p, err := s.loadForWrite(ctx, actor, postID)
	if err != nil {
		return nil, err
	}
	if err := in.normalize(); err != nil {
		return nil, err
	}

	p.Title = in.Title
	p.Description = in.Description
	p.Content = in.Content
	p.Tags = in.Tags
	if in.Author != "" {
		p.Author = in.Author
	}

	if err := s.posts.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	s.invalidate(ctx, postID)

	logger.Ctx(ctx).Info().Str("post_id", postID).Msg("post updated")
	return p, nil
}

// Delete 删除文章，只有作者本人或管理员可以删除
func (s *PostService) Delete(ctx context.Context, actor Actor, postID string) error {
	if _, err := s.loadForWrite(ctx, actor, postID); err != nil {
		return err
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	s.invalidate(ctx, postID)

	logger.Ctx(ctx).Info().Str("post_id", postID).Str("role", string(actor.Role)).Msg("post deleted")
	return nil
}

// Count 文章总数
func (s *PostService) Count(ctx context.Context) (int64, error) {
	return s.posts.Count(ctx)
}

// loadForWrite 读取最新数据（不走缓存）并校验权限
func (s *PostService) loadForWrite(ctx context.Context, actor Actor, postID string) (*post.Post, error) {
	if actor.UserID == "" {
		return nil, ErrForbidden
	}

	p, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if actor.Role != auth.RoleAdmin && !p.IsOwnedBy(actor.UserID) {
		return nil, ErrForbidden
	}
	return p, nil
}

func (s *PostService) invalidate(ctx context.Context, postID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.PostCacheKey(postID)); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("post_id", postID).Msg("post cache invalidation failed")
	}
}

// normalize 去首尾空白并校验长度
func (in *PostInput) normalize() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Content = strings.TrimSpace(in.Content)
	in.Author = strings.TrimSpace(in.Author)

	if in.Title == "" || in.Content == "" {
		return inputErrorf("Title and content are required")
	}
	if utf8.RuneCountInString(in.Title) > post.MaxTitleLength {
		return inputErrorf("Title cannot exceed %d characters", post.MaxTitleLength)
	}
	if utf8.RuneCountInString(in.Description) > post.MaxDescriptionLength {
		return inputErrorf("Description cannot exceed %d characters", post.MaxDescriptionLength)
	}
	if utf8.RuneCountInString(in.Author) > post.MaxAuthorLength {
		return inputErrorf("Author cannot exceed %d characters", post.MaxAuthorLength)
	}

	tags := make([]string, 0, len(in.Tags))
	seen := make(map[string]struct{}, len(in.Tags))
	for _, t := range in.Tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}
	if len(tags) > post.MaxTags {
		return inputErrorf("Cannot have more than %d tags", post.MaxTags)
	}
	in.Tags = tags
	return nil
}
