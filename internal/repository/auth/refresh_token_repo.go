package auth

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"quill/internal/model/auth"
	"quill/internal/pkg/logger"
	"quill/internal/repository"
)

// RefreshTokenRepo RefreshToken仓库
// 过期记录由 expires_at 上的 TTL 索引清理
type RefreshTokenRepo struct {
	collection *mongo.Collection
}

// NewRefreshTokenRepo 创建RefreshToken仓库
func NewRefreshTokenRepo(db *mongo.Database) *RefreshTokenRepo {
	return &RefreshTokenRepo{
		collection: db.Collection((&auth.RefreshToken{}).Collection()),
	}
}

// Create 创建RefreshToken
func (r *RefreshTokenRepo) Create(ctx context.Context, token *auth.RefreshToken) error {
	token.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, token)
	return repository.Translate(err)
}

// FindByToken 根据Token值查询
func (r *RefreshTokenRepo) FindByToken(ctx context.Context, token string) (*auth.RefreshToken, error) {
	var refreshToken auth.RefreshToken
	if err := r.collection.FindOne(ctx, bson.M{"token": token}).Decode(&refreshToken); err != nil {
		return nil, repository.Translate(err)
	}
	return &refreshToken, nil
}

// DeleteByToken 吊销单个 Token，不存在时不报错（重复退出登录）
func (r *RefreshTokenRepo) DeleteByToken(ctx context.Context, token string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"token": token})
	return repository.Translate(err)
}

// DeleteByUserID 吊销用户的全部 Token，用于封禁和删除用户
func (r *RefreshTokenRepo) DeleteByUserID(ctx context.Context, userID string) error {
	res, err := r.collection.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return repository.Translate(err)
	}
	if res.DeletedCount > 0 {
		logger.Ctx(ctx).Debug().Str("target_user_id", userID).Int64("revoked", res.DeletedCount).Msg("refresh tokens revoked")
	}
	return nil
}
