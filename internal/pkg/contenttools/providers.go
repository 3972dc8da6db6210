package contenttools

import (
	"context"
	"fmt"
)

// LLMProvider 定义了调用大模型的接口
// 具体的「如何调用大模型」由调用方通过实现此接口注入，方便单测和替换实现
type LLMProvider interface {
	// Generate 根据提示词和采样参数生成文本
	// 未配置凭证时返回 ErrNotConfigured
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

// GenerateOptions 采样参数
// 低温度以减少输出波动
type GenerateOptions struct {
	Temperature     float64
	TopK            int
	TopP            float64
	MaxOutputTokens int
}

// 默认采样参数
const (
	DefaultTemperature = 0.3
	DefaultTopK        = 40
	DefaultTopP        = 0.95

	tagMaxOutputTokens     = 100
	summaryMaxOutputTokens = 200
)

// TagOptions 标签生成的采样参数
func TagOptions() GenerateOptions {
	return GenerateOptions{
		Temperature:     DefaultTemperature,
		TopK:            DefaultTopK,
		TopP:            DefaultTopP,
		MaxOutputTokens: tagMaxOutputTokens,
	}
}

// SummaryOptions 摘要生成的采样参数
func SummaryOptions() GenerateOptions {
	opts := TagOptions()
	opts.MaxOutputTokens = summaryMaxOutputTokens
	return opts
}

// TagPrompt 构建标签生成提示词
func TagPrompt(content string) string {
	return "Generate exactly 5 relevant tags for this blog post content. " +
		"Return only the tags separated by commas, no explanations. " +
		"Make sure tags are relevant to the content and useful for SEO:\n\n" + content
}

// SummaryPrompt 构建摘要生成提示词
func SummaryPrompt(content string, maxLength int) string {
	return fmt.Sprintf("Generate a concise summary of this blog post content in %d characters or less. "+
		"Focus on the main points and key takeaways. "+
		"Return only the summary, no explanations:\n\n%s", maxLength, content)
}
