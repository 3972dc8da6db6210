package ctxutil

import "context"

// 使用私有类型避免与其他 context key 冲突
type (
	userIDKeyType    struct{}
	roleKeyType      struct{}
	requestIDKeyType struct{}
)

var (
	userIDKey    = userIDKeyType{}
	roleKey      = roleKeyType{}
	requestIDKey = requestIDKeyType{}
)

// WithUserID 将 userID 注入到 context 中
// 由认证中间件在解析 JWT 成功后调用
func WithUserID(ctx context.Context, userID string) context.Context {
	return withString(ctx, userIDKey, userID)
}

// GetUserID 从 context 中解析 userID
func GetUserID(ctx context.Context) (string, bool) {
	return getString(ctx, userIDKey)
}

// WithRole 将当前用户角色注入到 context 中
func WithRole(ctx context.Context, role string) context.Context {
	return withString(ctx, roleKey, role)
}

// GetRole 从 context 中解析当前用户角色
func GetRole(ctx context.Context) (string, bool) {
	return getString(ctx, roleKey)
}

// WithRequestID 将请求ID注入到 context 中
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withString(ctx, requestIDKey, requestID)
}

// GetRequestID 从 context 中解析请求ID
func GetRequestID(ctx context.Context) (string, bool) {
	return getString(ctx, requestIDKey)
}

func withString(ctx context.Context, key any, value string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, key, value)
}

func getString(ctx context.Context, key any) (string, bool) {
	if ctx == nil {
		return "", false
	}
	v, ok := ctx.Value(key).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
