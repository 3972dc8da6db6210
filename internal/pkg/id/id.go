package id

import (
	"github.com/google/uuid"
)

// New 生成新的UUID（string格式），用作文档 _id
func New() string {
	return uuid.NewString()
}

// IsValid 验证UUID格式，用于拦截明显无效的路径参数
func IsValid(id string) bool {
	return uuid.Validate(id) == nil
}
