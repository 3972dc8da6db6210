package providers

import (
	"context"
	"fmt"

	"quill/internal/pkg/contenttools"
	"quill/internal/pkg/gemini"
)

// GeminiProvider 基于 Gemini REST 接口的 LLM 提供者（默认使用）
// 实现了 contenttools.LLMProvider 接口
type GeminiProvider struct {
	client *gemini.Client
}

// NewGeminiProvider 创建基于 Gemini 的 LLM 提供者
func NewGeminiProvider(client *gemini.Client) *GeminiProvider {
	return &GeminiProvider{
		client: client,
	}
}

// Generate 根据提示词生成文本
func (p *GeminiProvider) Generate(ctx context.Context, prompt string, opts contenttools.GenerateOptions) (string, error) {
	if p.client == nil {
		return "", fmt.Errorf("gemini client is required")
	}
	return p.client.GenerateText(ctx, prompt, &gemini.GenerationConfig{
		Temperature:     opts.Temperature,
		TopK:            opts.TopK,
		TopP:            opts.TopP,
		MaxOutputTokens: opts.MaxOutputTokens,
	})
}
