package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"quill/internal/pkg/contenttools"
	"quill/internal/pkg/logger"
	"quill/internal/pkg/metrics"
)

// AssistService AI 写作辅助服务（标签建议 / 摘要生成）
// 流程: 校验 -> 远程生成 -> 规整；未配置或远程失败时走本地兜底算法
// 远程失败不会暴露给调用方，返回结构与来源无关
type AssistService struct {
	generator contenttools.LLMProvider
	metrics   *metrics.Metrics

	inflight *semaphore.Weighted
	limiter  *rate.Limiter
}

// ErrRemoteBusy 远程调用超出并发或速率限制，本次直接走兜底
var ErrRemoteBusy = errors.New("remote generation limit reached")

// RemoteLimits 远程调用限制，零值表示不限制
type RemoteLimits struct {
	MaxConcurrent int64   // 同时进行的远程调用数
	RatePerSecond float64 // 每秒允许发起的远程调用数
	Burst         int     // 速率限制的突发容量，<=0 时取 1
}

// NewAssistService 创建 AI 写作辅助服务
// generator 为 nil 时等同于未配置远程模型
func NewAssistService(generator contenttools.LLMProvider, m *metrics.Metrics) *AssistService {
	return &AssistService{
		generator: generator,
		metrics:   m,
	}
}

// WithRemoteLimits 设置远程调用限制，超出限制的请求不排队，直接使用兜底结果
func (s *AssistService) WithRemoteLimits(l RemoteLimits) *AssistService {
	if l.MaxConcurrent > 0 {
		s.inflight = semaphore.NewWeighted(l.MaxConcurrent)
	}
	if l.RatePerSecond > 0 {
		burst := l.Burst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(l.RatePerSecond), burst)
	}
	return s
}

// SuggestTags 为文章内容生成最多 5 个标签
func (s *AssistService) SuggestTags(ctx context.Context, content string) (tags []string, err error) {
	if err := contenttools.ValidateTagRequest(content); err != nil {
		s.logRejected(ctx, contenttools.OpTags, content, err)
		return nil, err
	}

	defer s.recoverFault(ctx, contenttools.OpTags, &tags, &err)

	text, err := s.generate(ctx, contenttools.TagPrompt(content), contenttools.TagOptions())
	if err == nil {
		tags, err = contenttools.ParseRemoteTags(text)
		if err == nil {
			s.metrics.ObserveGeneration(string(contenttools.OpTags), metrics.SourceRemote)
			logger.Ctx(ctx).Debug().Strs("tags", tags).Msg("remote tags generated")
			return tags, nil
		}
		err = &contenttools.RemoteError{Provider: "normalizer", Err: err}
	}

	s.onRemoteFailure(ctx, contenttools.OpTags, content, err)
	tags = contenttools.FallbackTags(content)
	s.metrics.ObserveGeneration(string(contenttools.OpTags), metrics.SourceFallback)
	return tags, nil
}

// Summarize 生成不超过 maxLength 个字符的摘要，maxLength 为 0 时默认 150
func (s *AssistService) Summarize(ctx context.Context, content string, maxLength int) (summary string, err error) {
	maxLength, err = contenttools.ValidateSummaryRequest(content, maxLength)
	if err != nil {
		s.logRejected(ctx, contenttools.OpSummary, content, err)
		return "", err
	}

	defer s.recoverFault(ctx, contenttools.OpSummary, &summary, &err)

	text, err := s.generate(ctx, contenttools.SummaryPrompt(content, maxLength), contenttools.SummaryOptions())
	if err == nil {
		summary, err = contenttools.NormalizeSummary(text, maxLength)
		if err == nil {
			s.metrics.ObserveGeneration(string(contenttools.OpSummary), metrics.SourceRemote)
			return summary, nil
		}
		err = &contenttools.RemoteError{Provider: "normalizer", Err: err}
	}

	s.onRemoteFailure(ctx, contenttools.OpSummary, content, err)
	summary = contenttools.FallbackSummary(content, maxLength)
	s.metrics.ObserveGeneration(string(contenttools.OpSummary), metrics.SourceFallback)
	return summary, nil
}

func (s *AssistService) generate(ctx context.Context, prompt string, opts contenttools.GenerateOptions) (string, error) {
	if s.generator == nil {
		return "", contenttools.ErrNotConfigured
	}
	if s.limiter != nil && !s.limiter.Allow() {
		return "", &contenttools.RemoteError{Provider: "limiter", Err: ErrRemoteBusy}
	}
	if s.inflight != nil {
		if !s.inflight.TryAcquire(1) {
			return "", &contenttools.RemoteError{Provider: "limiter", Err: ErrRemoteBusy}
		}
		defer s.inflight.Release(1)
	}
	return s.generator.Generate(ctx, prompt, opts)
}

// onRemoteFailure 记录远程失败原因，不包含 API key
func (s *AssistService) onRemoteFailure(ctx context.Context, op contenttools.Operation, content string, err error) {
	l := logger.Ctx(ctx)
	if errors.Is(err, contenttools.ErrNotConfigured) {
		l.Debug().Str("operation", string(op)).Msg("remote generation not configured, using fallback")
		return
	}

	s.metrics.ObserveRemoteError(string(op))
	l.Warn().
		Err(err).
		Str("operation", string(op)).
		Int("content_length", utf8.RuneCountInString(content)).
		Str("error_class", errorClass(err)).
		Msg("remote generation failed, using fallback")
}

func (s *AssistService) logRejected(ctx context.Context, op contenttools.Operation, content string, err error) {
	logger.Ctx(ctx).Info().
		Str("operation", string(op)).
		Int("content_length", utf8.RuneCountInString(content)).
		Str("error_class", errorClass(err)).
		Msg("generation request rejected")
}

// recoverFault 把意外 panic 转为 InternalFault
func (s *AssistService) recoverFault(ctx context.Context, op contenttools.Operation, result any, errp *error) {
	r := recover()
	if r == nil {
		return
	}

	switch v := result.(type) {
	case *[]string:
		*v = nil
	case *string:
		*v = ""
	}
	*errp = &contenttools.InternalFault{Op: op, Cause: r}

	logger.Ctx(ctx).Error().
		Str("operation", string(op)).
		Interface("panic", r).
		Msg("generation internal fault")
}

// errorClass 返回最内层错误的类型名
func errorClass(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return fmt.Sprintf("%T", err)
		}
		err = next
	}
}
