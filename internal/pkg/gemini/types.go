package gemini

import "fmt"

// GenerateContentRequest generateContent 请求体
type GenerateContentRequest struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

// Content 一轮对话内容
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Part 内容片段
type Part struct {
	Text string `json:"text"`
}

// GenerationConfig 采样参数
type GenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK,omitempty"`
	TopP            float64 `json:"topP,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

// GenerateContentResponse generateContent 响应体（只解析用到的字段）
type GenerateContentResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// Candidate 候选结果
type Candidate struct {
	Content      *Content `json:"content"`
	FinishReason string   `json:"finishReason,omitempty"`
}

// FirstText 返回 candidates[0].content.parts[0].text
func (r *GenerateContentResponse) FirstText() (string, error) {
	if len(r.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrInvalidResponse)
	}
	content := r.Candidates[0].Content
	if content == nil {
		return "", fmt.Errorf("%w: candidate has no content", ErrInvalidResponse)
	}
	if len(content.Parts) == 0 {
		return "", fmt.Errorf("%w: content has no parts", ErrInvalidResponse)
	}
	return content.Parts[0].Text, nil
}

// APIError 非 2xx 响应
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("gemini: api error: %s", e.Status)
	}
	return fmt.Sprintf("gemini: api error: %s: %s", e.Status, e.Body)
}
