package providers

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"quill/internal/pkg/contenttools"
)

// EinoProvider Eino 封装的 LLM 提供者
// 用于 openai / azure / ark 等 OpenAI 兼容模型，ChatModel 由 ai/component.NewChatModel 创建
// 实现了 contenttools.LLMProvider 接口
type EinoProvider struct {
	chatModel model.BaseChatModel
}

// NewEinoProvider 创建基于 Eino 的 LLM 提供者
func NewEinoProvider(chatModel model.BaseChatModel) *EinoProvider {
	return &EinoProvider{
		chatModel: chatModel,
	}
}

// Generate 根据提示词生成文本（使用 eino ChatModel）
// topK 不在 eino 通用参数中，忽略
func (p *EinoProvider) Generate(ctx context.Context, prompt string, opts contenttools.GenerateOptions) (string, error) {
	if p.chatModel == nil {
		return "", fmt.Errorf("chatModel is required")
	}

	messages := []*schema.Message{
		schema.UserMessage(prompt),
	}

	var callOpts []model.Option
	if opts.Temperature > 0 {
		callOpts = append(callOpts, model.WithTemperature(float32(opts.Temperature)))
	}
	if opts.TopP > 0 {
		callOpts = append(callOpts, model.WithTopP(float32(opts.TopP)))
	}
	if opts.MaxOutputTokens > 0 {
		callOpts = append(callOpts, model.WithMaxTokens(opts.MaxOutputTokens))
	}

	response, err := p.chatModel.Generate(ctx, messages, callOpts...)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}
	if response == nil || response.Content == "" {
		return "", fmt.Errorf("empty response from chat model")
	}

	return response.Content, nil
}
