package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	Convey("健康检查", t, func() {
		gin.SetMode(gin.TestMode)
		ok := pingFunc(func(context.Context) error { return nil })
		down := pingFunc(func(context.Context) error { return errors.New("connection refused") })

		get := func(h *HealthHandler, path string) *httptest.ResponseRecorder {
			r := gin.New()
			r.GET("/health", h.Health)
			r.GET("/ready", h.Ready)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			return rec
		}

		Convey("存活检查不依赖外部服务", func() {
			rec := get(NewHealthHandler(map[string]Pinger{"mongo": down}), "/health")
			So(rec.Code, ShouldEqual, http.StatusOK)
		})

		Convey("依赖全部可用", func() {
			rec := get(NewHealthHandler(map[string]Pinger{"mongo": ok, "redis": nil}), "/ready")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldEqual, `{"checks":{"mongo":"ok"},"status":"ready"}`)
		})

		Convey("依赖不可用返回 503", func() {
			rec := get(NewHealthHandler(map[string]Pinger{"redis": down}), "/ready")
			So(rec.Code, ShouldEqual, http.StatusServiceUnavailable)
			So(rec.Body.String(), ShouldContainSubstring, `"code":50301`)
			So(rec.Body.String(), ShouldContainSubstring, "redis unavailable")
		})
	})
}
