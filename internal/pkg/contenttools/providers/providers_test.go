package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	. "github.com/smartystreets/goconvey/convey"

	"quill/internal/pkg/contenttools"
	"quill/internal/pkg/gemini"
)

type fakeChatModel struct {
	reply   string
	err     error
	options *model.Options
	input   []*schema.Message
}

func (f *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.input = input
	f.options = model.GetCommonOptions(&model.Options{}, opts...)
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not implemented")
}

func TestEinoProvider_Generate(t *testing.T) {
	Convey("EinoProvider 透传提示词与采样参数", t, func() {
		ctx := context.Background()

		Convey("成功", func() {
			fake := &fakeChatModel{reply: "go, eino"}
			text, err := NewEinoProvider(fake).Generate(ctx, "prompt", contenttools.TagOptions())
			So(err, ShouldBeNil)
			So(text, ShouldEqual, "go, eino")
			So(fake.input[0].Content, ShouldEqual, "prompt")
			So(*fake.options.MaxTokens, ShouldEqual, 100)
			So(*fake.options.Temperature, ShouldAlmostEqual, 0.3, 0.0001)
		})

		Convey("模型报错", func() {
			_, err := NewEinoProvider(&fakeChatModel{err: errors.New("boom")}).Generate(ctx, "p", contenttools.TagOptions())
			So(err, ShouldNotBeNil)
		})

		Convey("空响应", func() {
			_, err := NewEinoProvider(&fakeChatModel{}).Generate(ctx, "p", contenttools.TagOptions())
			So(err, ShouldNotBeNil)
		})

		Convey("未注入 ChatModel", func() {
			_, err := NewEinoProvider(nil).Generate(ctx, "p", contenttools.TagOptions())
			So(err, ShouldNotBeNil)
		})
	})
}

func TestGeminiProvider_Generate(t *testing.T) {
	Convey("GeminiProvider 把采样参数映射到 generationConfig", t, func() {
		var got gemini.GenerateContentRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&got)
			_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"A summary."}]}}]}`))
		}))
		defer srv.Close()

		client, err := gemini.NewClient(&gemini.Config{APIKey: "k", BaseURL: srv.URL})
		So(err, ShouldBeNil)

		text, err := NewGeminiProvider(client).Generate(context.Background(), "p", contenttools.SummaryOptions())
		So(err, ShouldBeNil)
		So(text, ShouldEqual, "A summary.")
		So(got.GenerationConfig.MaxOutputTokens, ShouldEqual, 200)
		So(got.GenerationConfig.TopP, ShouldEqual, 0.95)
	})
}
