package contenttools

import (
	"errors"
	"fmt"
)

// Operation 生成类型
type Operation string

const (
	OpTags    Operation = "tags"
	OpSummary Operation = "summary"
)

// ErrNotConfigured 远程模型未配置凭证
// 不是故障：调用方应静默走本地兜底算法
var ErrNotConfigured = errors.New("remote generation not configured")

// ErrEmptyOutput 远程模型返回的内容规整后为空
var ErrEmptyOutput = errors.New("remote generation returned no usable output")

// 校验失败原因
const (
	ReasonMissing       = "missing content"
	ReasonTooShort      = "too short"
	ReasonTooLong       = "too long"
	ReasonInvalidLength = "invalid maxLength"
)

// ValidationError 调用方输入不合法，对应 400
type ValidationError struct {
	Op      Operation
	Reason  string // ReasonMissing / ReasonTooShort / ReasonTooLong / ReasonInvalidLength
	Message string // 面向调用方的提示
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s validation failed: %s", e.Op, e.Reason)
}

// RemoteError 远程模型调用失败或返回结构异常
// 由编排层吞掉并切换到兜底算法
type RemoteError struct {
	Provider string
	Err      error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote generation via %s failed: %v", e.Provider, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// InternalFault 其它意外错误，对应 500
type InternalFault struct {
	Op    Operation
	Cause any
}

func (e *InternalFault) Error() string {
	return fmt.Sprintf("%s generation internal fault: %v", e.Op, e.Cause)
}

// IsValidationError 判断是否为输入校验错误
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
