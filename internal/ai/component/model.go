package component

import (
	"context"
	"fmt"

	arkext "github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"quill/internal/config"
)

const (
	defaultArkBaseURL  = "https://ark.cn-beijing.volces.com/api/v3"
	defaultArkModel    = "doubao-seed-1-6-flash-250615"
	defaultOpenAIModel = "gpt-4o-mini"
)

// DefaultModel 未配置 ai.model 时各 Provider 使用的模型
func DefaultModel(provider string) string {
	switch provider {
	case "ark":
		return defaultArkModel
	case "openai", "azure":
		return defaultOpenAIModel
	default:
		return ""
	}
}

// NewChatModel 创建 ChatModel
// 支持 OpenAI 兼容的 Provider: openai, azure, ark
// gemini 走 pkg/gemini 的 REST 客户端，不经过这里
func NewChatModel(ctx context.Context, cfg *config.AIConfig) (model.ChatModel, error) {
	temperature, topP := sampling(&cfg.Options)
	modelName := orDefault(cfg.Model, DefaultModel(cfg.Provider))

	switch cfg.Provider {
	case "openai", "azure":
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			Model:       modelName,
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			ByAzure:     cfg.Provider == "azure",
			Temperature: temperature,
			TopP:        topP,
		})
	case "ark":
		return arkext.NewChatModel(ctx, &arkext.ChatModelConfig{
			Model:       modelName,
			APIKey:      cfg.APIKey,
			BaseURL:     orDefault(cfg.BaseURL, defaultArkBaseURL),
			Temperature: temperature,
			TopP:        topP,
		})
	default:
		return nil, fmt.Errorf("unsupported chat model provider: %s", cfg.Provider)
	}
}

// sampling 把配置里的采样参数转为 eino 需要的指针，0 表示使用模型默认值
// 单次调用时 contenttools.GenerateOptions 会覆盖这里的值
func sampling(opts *config.AIOptionsConfig) (temperature, topP *float32) {
	if opts.Temperature > 0 {
		t := float32(opts.Temperature)
		temperature = &t
	}
	if opts.TopP > 0 {
		p := float32(opts.TopP)
		topP = &p
	}
	return temperature, topP
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
