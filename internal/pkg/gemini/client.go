package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL Gemini generative-language API 地址
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	// DefaultModel 默认模型
	DefaultModel = "gemini-pro"

	// 错误响应体最多保留的字节数
	maxErrorBody = 512
)

var (
	// ErrMissingAPIKey 未配置 API key
	ErrMissingAPIKey = errors.New("gemini: api key is required")
	// ErrInvalidResponse 响应缺少 candidates[0].content.parts[0].text
	ErrInvalidResponse = errors.New("gemini: invalid response")
)

// Config Gemini 客户端配置
type Config struct {
	APIKey  string
	Model   string        // 默认 gemini-pro
	BaseURL string        // 默认 https://generativelanguage.googleapis.com，测试时指向 httptest
	Timeout time.Duration // 0 表示不设置，依赖 transport 默认行为
}

// Client Gemini generateContent REST 客户端
// 单次请求，不重试、不缓存
type Client struct {
	config     *Config
	httpClient *http.Client
	endpoint   string
}

// NewClient 创建 Gemini 客户端
func NewClient(config *Config) (*Client, error) {
	if config == nil || config.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	cfg := *config
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	return &Client{
		config:     &cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		endpoint:   strings.TrimRight(cfg.BaseURL, "/") + "/v1beta/models/" + url.PathEscape(cfg.Model) + ":generateContent",
	}, nil
}

// Model 返回使用的模型名
func (c *Client) Model() string {
	return c.config.Model
}

// GenerateContent 调用 generateContent 接口
func (c *Client) GenerateContent(ctx context.Context, req *GenerateContentRequest) (*GenerateContentResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("gemini: marshal request: %w", err)
	}

	// API key 通过 query 参数传递
	q := url.Values{}
	q.Set("key", c.config.APIKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"?"+q.Encode(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gemini: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini: request failed: %w", redactURLError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	var out GenerateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode body: %v", ErrInvalidResponse, err)
	}
	return &out, nil
}

// GenerateText 发送单条提示词并返回 candidates[0].content.parts[0].text
func (c *Client) GenerateText(ctx context.Context, prompt string, gc *GenerationConfig) (string, error) {
	resp, err := c.GenerateContent(ctx, &GenerateContentRequest{
		Contents:         []Content{{Parts: []Part{{Text: prompt}}}},
		GenerationConfig: gc,
	})
	if err != nil {
		return "", err
	}
	return resp.FirstText()
}

// redactURLError 去掉错误信息中带 key 的 URL
func redactURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
