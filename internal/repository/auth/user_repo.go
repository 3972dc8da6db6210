package auth

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"quill/internal/model/auth"
	"quill/internal/repository"
)

// UserRepo 用户仓库
type UserRepo struct {
	collection *mongo.Collection
}

// NewUserRepo 创建用户仓库
func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{
		collection: db.Collection((&auth.User{}).Collection()),
	}
}

// Create 创建用户，用户名或邮箱重复时返回 repository.ErrDuplicate
func (r *UserRepo) Create(ctx context.Context, user *auth.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, user)
	return repository.Translate(err)
}

// FindByID 根据ID查询用户
func (r *UserRepo) FindByID(ctx context.Context, id string) (*auth.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByUsername 根据用户名查询用户
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*auth.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

// FindByEmail 根据邮箱查询用户
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepo) findOne(ctx context.Context, filter bson.M) (*auth.User, error) {
	var user auth.User
	if err := r.collection.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, repository.Translate(err)
	}
	return &user, nil
}

// UpdateRoleStatus 修改角色和状态，空值表示不修改
func (r *UserRepo) UpdateRoleStatus(ctx context.Context, id string, role auth.UserRole, status auth.UserStatus) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, roleStatusUpdate(role, status, time.Now()))
	if err != nil {
		return repository.Translate(err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpdateLastLoginAt 更新最后登录时间
func (r *UserRepo) UpdateLastLoginAt(ctx context.Context, id string) error {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"last_login_at": now,
			"updated_at":    now,
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return repository.Translate(err)
}

// Delete 删除用户
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return repository.Translate(err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List 分页查询用户，最新注册的在前
func (r *UserRepo) List(ctx context.Context, page, pageSize int64) ([]*auth.User, int64, error) {
	filter := bson.M{}
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := r.collection.Find(ctx, filter, listOptions(page, pageSize))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	users := make([]*auth.User, 0, pageSize)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Count 统计用户数量
func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// CountAdmins 统计有效管理员数量
func (r *UserRepo) CountAdmins(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, activeAdminFilter())
}

// roleStatusUpdate 构造角色/状态更新，空值字段不写入
func roleStatusUpdate(role auth.UserRole, status auth.UserStatus, now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	if role != "" {
		set["role"] = role
	}
	if status != "" {
		set["status"] = status
	}
	return bson.M{"$set": set}
}

func activeAdminFilter() bson.M {
	return bson.M{
		"role":   auth.RoleAdmin,
		"status": auth.UserStatusActive,
	}
}

// listOptions 按注册时间倒序分页，page 从 1 开始
func listOptions(page, pageSize int64) *options.FindOptions {
	if page < 1 {
		page = 1
	}
	return options.Find().
		SetSort(bson.D{bson.E{Key: "created_at", Value: -1}}).
		SetLimit(pageSize).
		SetSkip((page - 1) * pageSize)
}
