package assist

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"quill/internal/pkg/contenttools"
	httputil "quill/internal/pkg/http"
	"quill/internal/pkg/logger"
)

// Assistant 标签/摘要生成
type Assistant interface {
	SuggestTags(ctx context.Context, content string) ([]string, error)
	Summarize(ctx context.Context, content string, maxLength int) (string, error)
}

// StatusProvider 远程模型配置状态
type StatusProvider interface {
	Provider() string
	Model() string
	Enabled() bool
}

// Handler AI 写作辅助处理器
type Handler struct {
	assistant Assistant
	status    StatusProvider
}

// NewHandler 创建 AI 写作辅助处理器
func NewHandler(assistant Assistant, status StatusProvider) *Handler {
	return &Handler{
		assistant: assistant,
		status:    status,
	}
}

// bindJSON 解析请求体，空请求体按空对象处理，由校验逻辑给出 "Content is required"
func bindJSON(c *gin.Context, dest any) bool {
	err := c.ShouldBindJSON(dest)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	httputil.Error(c, http.StatusBadRequest, httputil.CodeInvalidRequest, "Invalid request body", err.Error())
	return false
}

// writeError 校验错误返回 400，其余返回 500
func writeError(c *gin.Context, err error) {
	var ve *contenttools.ValidationError
	if errors.As(err, &ve) {
		httputil.Error(c, http.StatusBadRequest, httputil.CodeValidation, ve.Message)
		return
	}

	logger.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg("generation failed")
	httputil.Error(c, http.StatusInternalServerError, httputil.CodeInternal, "Internal Server Error")
}
