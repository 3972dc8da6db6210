package http

import (
	"fmt"
	nethttp "net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// 业务错误码：HTTP 状态码 * 100 + 序号
const (
	CodeOK               = 0
	CodeInvalidRequest   = 40001
	CodeValidation       = 40002
	CodeUnauthorized     = 40101
	CodeTokenInvalid     = 40102
	CodeTokenExpired     = 40103
	CodeForbidden        = 40301
	CodeUserBanned       = 40302
	CodeNotFound         = 40401
	CodeMethodNotAllowed = 40501
	CodeConflict         = 40901
	CodeInternal         = 50001
	CodeUnavailable      = 50301
)

// ErrorResponse 错误响应（所有API共用）
type ErrorResponse struct {
	Code    int    `json:"code"`             // 错误码（非0表示错误）
	Message string `json:"message"`          // 错误消息
	Detail  string `json:"detail,omitempty"` // 错误详情（可选）
}

// SuccessResponse 成功响应
type SuccessResponse struct {
	Code    int    `json:"code"` // 0表示成功
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// NewErrorResponse 创建错误响应
func NewErrorResponse(code int, message string, detail ...string) *ErrorResponse {
	resp := &ErrorResponse{
		Code:    code,
		Message: message,
	}
	if len(detail) > 0 && detail[0] != "" {
		resp.Detail = detail[0]
	}
	return resp
}

// Error 写入错误响应并终止后续处理
func Error(c *gin.Context, status, code int, message string, detail ...string) {
	c.AbortWithStatusJSON(status, NewErrorResponse(code, message, detail...))
}

// Success 写入成功响应
func Success(c *gin.Context, status int, message string, data any) {
	c.JSON(status, &SuccessResponse{
		Code:    CodeOK,
		Message: message,
		Data:    data,
	})
}

// MethodNotAllowed 返回 405 并设置 Allow 头
func MethodNotAllowed(allow ...string) gin.HandlerFunc {
	allowHeader := strings.Join(allow, ", ")
	return func(c *gin.Context) {
		c.Header("Allow", allowHeader)
		Error(c, nethttp.StatusMethodNotAllowed, CodeMethodNotAllowed, fmt.Sprintf("Method %s Not Allowed", c.Request.Method))
	}
}
