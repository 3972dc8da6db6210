package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"quill/internal/config"
	"quill/internal/pkg/contenttools"
)

type stubProvider struct {
	text  string
	err   error
	calls int
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, opts contenttools.GenerateOptions) (string, error) {
	s.calls++
	return s.text, s.err
}

func TestNewClient(t *testing.T) {
	Convey("NewClient 根据配置选择提供者", t, func() {
		ctx := context.Background()

		Convey("没有 API key 时不会发起网络请求", func() {
			var hits int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&hits, 1)
			}))
			defer srv.Close()

			c, err := NewClient(ctx, &config.AIConfig{Provider: "gemini", BaseURL: srv.URL})
			So(err, ShouldBeNil)
			So(c.Enabled(), ShouldBeFalse)

			_, err = c.Generate(ctx, "p", contenttools.TagOptions())
			So(errors.Is(err, contenttools.ErrNotConfigured), ShouldBeTrue)
			So(atomic.LoadInt32(&hits), ShouldEqual, 0)
		})

		Convey("gemini 为默认提供者", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"go, api"}]}}]}`))
			}))
			defer srv.Close()

			c, err := NewClient(ctx, &config.AIConfig{APIKey: "k", BaseURL: srv.URL})
			So(err, ShouldBeNil)
			So(c.Provider(), ShouldEqual, "gemini")
			So(c.Model(), ShouldEqual, "gemini-pro")

			text, err := c.Generate(ctx, "p", contenttools.TagOptions())
			So(err, ShouldBeNil)
			So(text, ShouldEqual, "go, api")
		})

		Convey("远程失败包装为 RemoteError", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer srv.Close()

			c, err := NewClient(ctx, &config.AIConfig{APIKey: "k", BaseURL: srv.URL})
			So(err, ShouldBeNil)

			_, err = c.Generate(ctx, "p", contenttools.TagOptions())
			var remoteErr *contenttools.RemoteError
			So(errors.As(err, &remoteErr), ShouldBeTrue)
			So(remoteErr.Provider, ShouldEqual, "gemini")
		})
	})
}

func TestClient_Model(t *testing.T) {
	Convey("未配置 model 时使用 Provider 的默认模型", t, func() {
		ctx := context.Background()

		cases := map[string]string{
			"":       "gemini-pro",
			"gemini": "gemini-pro",
			"openai": "gpt-4o-mini",
			"azure":  "gpt-4o-mini",
			"ark":    "doubao-seed-1-6-flash-250615",
		}
		for provider, want := range cases {
			c, err := NewClient(ctx, &config.AIConfig{Provider: provider})
			So(err, ShouldBeNil)
			So(c.Model(), ShouldEqual, want)
		}

		Convey("openai 有 key 时同样解析出默认模型", func() {
			c, err := NewClient(ctx, &config.AIConfig{Provider: "openai", APIKey: "k", BaseURL: "http://127.0.0.1:1"})
			So(err, ShouldBeNil)
			So(c.Enabled(), ShouldBeTrue)
			So(c.Model(), ShouldEqual, "gpt-4o-mini")
		})

		Convey("显式配置优先", func() {
			c := NewClientWithProvider(&config.AIConfig{Provider: "ark", Model: "my-endpoint"}, &stubProvider{})
			So(c.Model(), ShouldEqual, "my-endpoint")
		})
	})
}

func TestClient_ConfiguredSampling(t *testing.T) {
	Convey("配置中的采样参数会发送给 Gemini", t, func() {
		var body struct {
			GenerationConfig map[string]any `json:"generationConfig"`
		}
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&body)
			_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"go"}]}}]}`))
		}))
		defer srv.Close()

		cfg := &config.AIConfig{APIKey: "k", BaseURL: srv.URL, Options: config.AIOptionsConfig{TopK: 12, Temperature: 0.7}}
		c, err := NewClient(context.Background(), cfg)
		So(err, ShouldBeNil)

		_, err = c.Generate(context.Background(), "p", contenttools.TagOptions())
		So(err, ShouldBeNil)
		So(body.GenerationConfig["topK"], ShouldEqual, 12.0)
		So(body.GenerationConfig["temperature"], ShouldEqual, 0.7)
		So(body.GenerationConfig["topP"], ShouldEqual, contenttools.DefaultTopP)
	})
}

func TestClient_GenerateWithProvider(t *testing.T) {
	Convey("注入的提供者", t, func() {
		ctx := context.Background()

		Convey("有 key 时调用提供者", func() {
			stub := &stubProvider{text: "ok"}
			c := NewClientWithProvider(&config.AIConfig{Provider: "openai", APIKey: "k"}, stub)
			text, err := c.Generate(ctx, "p", contenttools.TagOptions())
			So(err, ShouldBeNil)
			So(text, ShouldEqual, "ok")
			So(stub.calls, ShouldEqual, 1)
		})

		Convey("没有 key 时不调用提供者", func() {
			stub := &stubProvider{text: "ok"}
			c := NewClientWithProvider(&config.AIConfig{}, stub)
			_, err := c.Generate(ctx, "p", contenttools.TagOptions())
			So(errors.Is(err, contenttools.ErrNotConfigured), ShouldBeTrue)
			So(stub.calls, ShouldEqual, 0)
		})

		Convey("提供者报错包装为 RemoteError", func() {
			stub := &stubProvider{err: errors.New("connection reset")}
			c := NewClientWithProvider(&config.AIConfig{Provider: "ark", APIKey: "k"}, stub)
			_, err := c.Generate(ctx, "p", contenttools.TagOptions())
			var remoteErr *contenttools.RemoteError
			So(errors.As(err, &remoteErr), ShouldBeTrue)
			So(remoteErr.Provider, ShouldEqual, "ark")
		})
	})
}
