package post

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"quill/internal/model/post"
	"quill/internal/repository"
)

// PostRepo 文章仓库
type PostRepo struct {
	collection *mongo.Collection
}

// NewPostRepo 创建文章仓库
func NewPostRepo(db *mongo.Database) *PostRepo {
	return &PostRepo{
		collection: db.Collection((&post.Post{}).Collection()),
	}
}

// Create 创建文章
func (r *PostRepo) Create(ctx context.Context, p *post.Post) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Tags == nil {
		p.Tags = []string{}
	}

	_, err := r.collection.InsertOne(ctx, p)
	return repository.Translate(err)
}

// FindByID 根据ID查询文章
func (r *PostRepo) FindByID(ctx context.Context, id string) (*post.Post, error) {
	var p post.Post
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, repository.Translate(err)
	}
	return &p, nil
}

// Update 更新可编辑字段，作者和创建时间不变
func (r *PostRepo) Update(ctx context.Context, p *post.Post) error {
	p.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"title":       p.Title,
			"description": p.Description,
			"content":     p.Content,
			"author":      p.Author,
			"tags":        p.Tags,
			"updated_at":  p.UpdatedAt,
		},
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": p.ID}, update)
	if err != nil {
		return repository.Translate(err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete 删除文章
func (r *PostRepo) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return repository.Translate(err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List 按条件分页查询，最新的在前
func (r *PostRepo) List(ctx context.Context, f post.ListFilter) ([]*post.Post, int64, error) {
	f.Normalize()
	filter := BuildFilter(f)

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "created_at", Value: -1}}).
		SetSkip(f.Skip()).
		SetLimit(int64(f.Limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	posts := make([]*post.Post, 0, f.Limit)
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// Count 统计文章数量
func (r *PostRepo) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// BuildFilter 把列表条件转换为查询文档
// 搜索词按字面量匹配，不作为正则表达式解释
func BuildFilter(f post.ListFilter) bson.M {
	filter := bson.M{}
	if f.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"content": re},
			bson.M{"author": re},
		}
	}
	if f.Tag != "" {
		filter["tags"] = f.Tag
	}
	if f.UserID != "" {
		filter["user_id"] = f.UserID
	}
	return filter
}
