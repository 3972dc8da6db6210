package post

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// 字段长度限制
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 500
	MaxAuthorLength      = 100
	MaxTags              = 10

	// DefaultAuthor 未填写作者时的默认值
	DefaultAuthor = "Anonymous"
)

// Post 文章实体
// ID使用UUID格式（string），与用户保持一致
type Post struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Content     string    `bson:"content" json:"content"`
	Author      string    `bson:"author" json:"author"`
	UserID      string    `bson:"user_id" json:"user_id"` // 作者用户ID，用于权限校验
	Tags        []string  `bson:"tags" json:"tags"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// IsOwnedBy 是否属于指定用户
func (p *Post) IsOwnedBy(userID string) bool {
	return userID != "" && p.UserID == userID
}

// Collection 返回集合名称
func (p *Post) Collection() string {
	return "posts"
}

// EnsureIndexes 创建和维护索引
func (p *Post) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(p.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				bson.E{Key: "title", Value: "text"},
				bson.E{Key: "content", Value: "text"},
				bson.E{Key: "author", Value: "text"},
			},
			Options: options.Index().SetName("idx_text"),
		},
		{
			Keys:    bson.D{bson.E{Key: "user_id", Value: 1}, bson.E{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_user_created"),
		},
		{
			Keys:    bson.D{bson.E{Key: "tags", Value: 1}},
			Options: options.Index().SetName("idx_tags"),
		},
		{
			Keys:    bson.D{bson.E{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_created_at"),
		},
	}

	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// ListFilter 文章列表查询条件
type ListFilter struct {
	Search string // 标题/内容/作者模糊匹配（大小写不敏感）
	Tag    string // 精确匹配标签
	UserID string // 指定作者
	Page   int    // 从 1 开始
	Limit  int
}

// 分页默认值
const (
	DefaultPage  = 1
	DefaultLimit = 50
	MaxLimit     = 100
)

// Normalize 补齐分页默认值
func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
}

// Skip 分页偏移
func (f *ListFilter) Skip() int64 {
	return int64((f.Page - 1) * f.Limit)
}
