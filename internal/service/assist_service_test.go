package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"

	"quill/internal/pkg/contenttools"
	"quill/internal/pkg/metrics"
)

const reactPost = "React hooks simplify state management in functional components for modern web development."

type stubGenerator struct {
	text    string
	err     error
	panicky bool
	calls   int
	prompts []string
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string, opts contenttools.GenerateOptions) (string, error) {
	s.calls++
	s.prompts = append(s.prompts, prompt)
	if s.panicky {
		panic("provider exploded")
	}
	return s.text, s.err
}

// counterValue 从 registry 中读取带指定标签的计数值
func counterValue(reg *prometheus.Registry, name string, labels map[string]string) float64 {
	families, err := reg.Gather()
	if err != nil {
		return -1
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	next:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					continue next
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestAssistService_SuggestTags(t *testing.T) {
	Convey("SuggestTags", t, func() {
		ctx := context.Background()
		reg := prometheus.NewRegistry()
		m := metrics.New(reg)

		Convey("未配置远程模型时使用兜底算法", func() {
			svc := NewAssistService(nil, m)
			tags, err := svc.SuggestTags(ctx, reactPost)
			So(err, ShouldBeNil)
			So(tags, ShouldResemble, []string{"programming", "web-development", "react", "coding", "testing"})
			So(counterValue(reg, "quill_ai_generations_total", map[string]string{"operation": "tags", "source": "fallback"}), ShouldEqual, 1)
			So(counterValue(reg, "quill_ai_remote_errors_total", nil), ShouldEqual, 0)
		})

		Convey("生成器返回 ErrNotConfigured 时静默兜底", func() {
			gen := &stubGenerator{err: contenttools.ErrNotConfigured}
			svc := NewAssistService(gen, m)
			tags, err := svc.SuggestTags(ctx, "Kubernetes orchestration tutorial")
			So(err, ShouldBeNil)
			So(tags, ShouldResemble, []string{"tutorial", "kubernetes", "orchestration"})
			So(counterValue(reg, "quill_ai_remote_errors_total", nil), ShouldEqual, 0)
		})

		Convey("远程成功时返回规整后的标签", func() {
			gen := &stubGenerator{text: " Go, golang ,GO, Concurrency, , Channels, Goroutines, Testing"}
			svc := NewAssistService(gen, m)
			tags, err := svc.SuggestTags(ctx, reactPost)
			So(err, ShouldBeNil)
			So(tags, ShouldResemble, []string{"go", "golang", "concurrency", "channels", "goroutines"})
			So(gen.calls, ShouldEqual, 1)
			So(gen.prompts[0], ShouldContainSubstring, reactPost)
			So(counterValue(reg, "quill_ai_generations_total", map[string]string{"operation": "tags", "source": "remote"}), ShouldEqual, 1)
		})

		Convey("远程失败时返回兜底结果且不报错", func() {
			gen := &stubGenerator{err: &contenttools.RemoteError{Provider: "gemini", Err: errors.New("503")}}
			svc := NewAssistService(gen, m)
			tags, err := svc.SuggestTags(ctx, reactPost)
			So(err, ShouldBeNil)
			So(tags, ShouldResemble, contenttools.FallbackTags(reactPost))
			So(counterValue(reg, "quill_ai_remote_errors_total", map[string]string{"operation": "tags"}), ShouldEqual, 1)
		})

		Convey("远程返回空内容时兜底", func() {
			gen := &stubGenerator{text: " , , "}
			svc := NewAssistService(gen, m)
			tags, err := svc.SuggestTags(ctx, reactPost)
			So(err, ShouldBeNil)
			So(tags, ShouldResemble, contenttools.FallbackTags(reactPost))
		})

		Convey("校验失败时不调用远程", func() {
			gen := &stubGenerator{text: "go"}
			svc := NewAssistService(gen, m)

			_, err := svc.SuggestTags(ctx, "   ")
			var ve *contenttools.ValidationError
			So(errors.As(err, &ve), ShouldBeTrue)
			So(ve.Reason, ShouldEqual, contenttools.ReasonMissing)

			_, err = svc.SuggestTags(ctx, "short")
			So(errors.As(err, &ve), ShouldBeTrue)
			So(ve.Reason, ShouldEqual, contenttools.ReasonTooShort)

			_, err = svc.SuggestTags(ctx, strings.Repeat("a", 10001))
			So(errors.As(err, &ve), ShouldBeTrue)
			So(ve.Reason, ShouldEqual, contenttools.ReasonTooLong)

			So(gen.calls, ShouldEqual, 0)
		})

		Convey("生成器 panic 时返回 InternalFault", func() {
			svc := NewAssistService(&stubGenerator{panicky: true}, m)
			tags, err := svc.SuggestTags(ctx, reactPost)
			So(tags, ShouldBeNil)
			var fault *contenttools.InternalFault
			So(errors.As(err, &fault), ShouldBeTrue)
			So(fault.Op, ShouldEqual, contenttools.OpTags)
		})

		Convey("metrics 为 nil 时正常工作", func() {
			svc := NewAssistService(nil, nil)
			tags, err := svc.SuggestTags(ctx, reactPost)
			So(err, ShouldBeNil)
			So(tags, ShouldNotBeEmpty)
		})
	})
}

func TestAssistService_Summarize(t *testing.T) {
	Convey("Summarize", t, func() {
		ctx := context.Background()
		reg := prometheus.NewRegistry()
		m := metrics.New(reg)
		long := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 7)[:300]

		Convey("未配置时截断到默认 150", func() {
			svc := NewAssistService(nil, m)
			summary, err := svc.Summarize(ctx, long, 0)
			So(err, ShouldBeNil)
			So(utf8.RuneCountInString(summary), ShouldBeLessThanOrEqualTo, 150)
			So(summary, ShouldEndWith, "The quick...")
			So(counterValue(reg, "quill_ai_generations_total", map[string]string{"operation": "summary", "source": "fallback"}), ShouldEqual, 1)
		})

		Convey("短内容原样返回", func() {
			svc := NewAssistService(nil, m)
			summary, err := svc.Summarize(ctx, "  Short   post about Go.  ", 150)
			So(err, ShouldBeNil)
			So(summary, ShouldEqual, "Short post about Go.")
		})

		Convey("远程成功时使用模型摘要，并带上长度要求", func() {
			gen := &stubGenerator{text: "  A fox jumps over a dog repeatedly.  "}
			svc := NewAssistService(gen, m)
			summary, err := svc.Summarize(ctx, long, 80)
			So(err, ShouldBeNil)
			So(summary, ShouldEqual, "A fox jumps over a dog repeatedly.")
			So(gen.prompts[0], ShouldContainSubstring, "80")
		})

		Convey("远程摘要超长时截断", func() {
			gen := &stubGenerator{text: "one two three four five six seven eight nine ten"}
			svc := NewAssistService(gen, m)
			summary, err := svc.Summarize(ctx, long, 20)
			So(err, ShouldBeNil)
			So(summary, ShouldEqual, "one two three fou...")
		})

		Convey("远程失败时兜底", func() {
			gen := &stubGenerator{err: errors.New("boom")}
			svc := NewAssistService(gen, m)
			summary, err := svc.Summarize(ctx, long, 150)
			So(err, ShouldBeNil)
			So(summary, ShouldEqual, contenttools.FallbackSummary(long, 150))
			So(counterValue(reg, "quill_ai_remote_errors_total", map[string]string{"operation": "summary"}), ShouldEqual, 1)
		})

		Convey("校验失败", func() {
			svc := NewAssistService(&stubGenerator{}, m)
			var ve *contenttools.ValidationError

			_, err := svc.Summarize(ctx, "too short", 150)
			So(errors.As(err, &ve), ShouldBeTrue)
			So(ve.Reason, ShouldEqual, contenttools.ReasonTooShort)

			_, err = svc.Summarize(ctx, long, -1)
			So(errors.As(err, &ve), ShouldBeTrue)
			So(ve.Reason, ShouldEqual, contenttools.ReasonInvalidLength)
		})

		Convey("panic 转为 InternalFault", func() {
			svc := NewAssistService(&stubGenerator{panicky: true}, m)
			summary, err := svc.Summarize(ctx, long, 150)
			So(summary, ShouldEqual, "")
			var fault *contenttools.InternalFault
			So(errors.As(err, &fault), ShouldBeTrue)
			So(fault.Op, ShouldEqual, contenttools.OpSummary)
		})
	})
}

type blockingGenerator struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingGenerator) Generate(ctx context.Context, prompt string, opts contenttools.GenerateOptions) (string, error) {
	close(b.started)
	<-b.release
	return "go", nil
}

func TestAssistService_RemoteLimits(t *testing.T) {
	Convey("远程调用限制", t, func() {
		ctx := context.Background()
		const content = "Kubernetes orchestration tutorial"

		Convey("超出速率时直接兜底", func() {
			gen := &stubGenerator{text: "go, concurrency"}
			reg := prometheus.NewRegistry()
			svc := NewAssistService(gen, metrics.New(reg)).WithRemoteLimits(RemoteLimits{RatePerSecond: 0.001, Burst: 1})

			tags, err := svc.SuggestTags(ctx, content)
			So(err, ShouldBeNil)
			So(tags, ShouldResemble, []string{"go", "concurrency"})

			tags, err = svc.SuggestTags(ctx, content)
			So(err, ShouldBeNil)
			So(tags, ShouldResemble, []string{"tutorial", "kubernetes", "orchestration"})
			So(gen.calls, ShouldEqual, 1)
			So(counterValue(reg, "quill_ai_remote_errors_total", map[string]string{"operation": "tags"}), ShouldEqual, 1)
		})

		Convey("并发已满时不排队", func() {
			gen := &blockingGenerator{started: make(chan struct{}), release: make(chan struct{})}
			svc := NewAssistService(gen, nil).WithRemoteLimits(RemoteLimits{MaxConcurrent: 1})

			done := make(chan []string, 1)
			go func() {
				tags, _ := svc.SuggestTags(ctx, content)
				done <- tags
			}()
			<-gen.started

			tags, err := svc.SuggestTags(ctx, content)
			So(err, ShouldBeNil)
			So(tags, ShouldResemble, []string{"tutorial", "kubernetes", "orchestration"})

			close(gen.release)
			So(<-done, ShouldResemble, []string{"go"})
		})
	})
}
