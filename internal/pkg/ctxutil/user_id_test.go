package ctxutil

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestContextValues(t *testing.T) {
	Convey("context 中的身份信息读写", t, func() {
		ctx := context.Background()

		Convey("未注入时返回 false", func() {
			_, ok := GetUserID(ctx)
			So(ok, ShouldBeFalse)
			_, ok = GetRole(ctx)
			So(ok, ShouldBeFalse)
		})

		Convey("注入后可以读出", func() {
			ctx = WithUserID(ctx, "u-1")
			ctx = WithRole(ctx, "admin")
			ctx = WithRequestID(ctx, "req-1")

			uid, ok := GetUserID(ctx)
			So(ok, ShouldBeTrue)
			So(uid, ShouldEqual, "u-1")

			role, _ := GetRole(ctx)
			So(role, ShouldEqual, "admin")

			reqID, _ := GetRequestID(ctx)
			So(reqID, ShouldEqual, "req-1")
		})

		Convey("空字符串视为未设置", func() {
			_, ok := GetUserID(WithUserID(ctx, ""))
			So(ok, ShouldBeFalse)
		})
	})
}
