package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"quill/internal/model/auth"
	"quill/internal/model/post"
)

// EnsureIndexes 在应用启动时为所有集合创建索引
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	return EnsureAllIndexes(ctx, db,
		&post.Post{},
		&auth.User{},
		&auth.RefreshToken{},
	)
}
