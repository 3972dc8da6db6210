package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"quill/internal/ai/component"
	"quill/internal/config"
	"quill/internal/pkg/contenttools"
	"quill/internal/pkg/contenttools/providers"
	"quill/internal/pkg/gemini"
)

// Client AI 能力层客户端（远程生成客户端）
// 职责: 根据配置选择模型提供者；未配置凭证时不做任何网络请求，直接返回 contenttools.ErrNotConfigured
// 实现了 contenttools.LLMProvider 接口
type Client struct {
	cfg      *config.AIConfig
	provider contenttools.LLMProvider
	model    string
}

// NewClient 创建 AI 客户端
func NewClient(ctx context.Context, cfg *config.AIConfig) (*Client, error) {
	c := &Client{cfg: cfg, model: resolveModel(cfg)}

	if !cfg.Enabled() {
		log.Warn().Msg("AI API key not configured, tags and summaries will use local fallback")
		return c, nil
	}

	switch providerName(cfg) {
	case "gemini":
		gc, err := gemini.NewClient(&gemini.Config{
			APIKey:  cfg.APIKey,
			Model:   c.model,
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		c.provider = providers.NewGeminiProvider(gc)
		c.model = gc.Model()
	default:
		chatModel, err := component.NewChatModel(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create chat model: %w", err)
		}
		c.provider = providers.NewEinoProvider(chatModel)
	}

	return c, nil
}

// NewClientWithProvider 使用自定义提供者创建客户端（测试或外部注入）
func NewClientWithProvider(cfg *config.AIConfig, provider contenttools.LLMProvider) *Client {
	return &Client{cfg: cfg, provider: provider, model: resolveModel(cfg)}
}

// Enabled 是否会尝试远程生成
func (c *Client) Enabled() bool {
	return c.cfg.Enabled() && c.provider != nil
}

// Provider 提供者名称
func (c *Client) Provider() string {
	return providerName(c.cfg)
}

// Model 实际使用的模型名称，未配置时为 Provider 的默认模型
func (c *Client) Model() string {
	return c.model
}

// Generate 单次远程生成
// 未配置时返回 ErrNotConfigured；其余任何失败都包装为 *contenttools.RemoteError
func (c *Client) Generate(ctx context.Context, prompt string, opts contenttools.GenerateOptions) (string, error) {
	if !c.Enabled() {
		return "", contenttools.ErrNotConfigured
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	text, err := c.provider.Generate(ctx, prompt, c.sampling(opts))
	if err != nil {
		if errors.Is(err, contenttools.ErrNotConfigured) {
			return "", err
		}
		return "", &contenttools.RemoteError{Provider: c.Provider(), Err: err}
	}
	return text, nil
}

// sampling 用配置中的非零采样参数覆盖调用方给出的值
func (c *Client) sampling(opts contenttools.GenerateOptions) contenttools.GenerateOptions {
	o := c.cfg.Options
	if o.Temperature > 0 {
		opts.Temperature = o.Temperature
	}
	if o.TopK > 0 {
		opts.TopK = o.TopK
	}
	if o.TopP > 0 {
		opts.TopP = o.TopP
	}
	return opts
}

func resolveModel(cfg *config.AIConfig) string {
	if cfg.Model != "" {
		return cfg.Model
	}
	if name := providerName(cfg); name != "gemini" {
		return component.DefaultModel(name)
	}
	return gemini.DefaultModel
}

func providerName(cfg *config.AIConfig) string {
	if cfg.Provider == "" {
		return "gemini"
	}
	return cfg.Provider
}
