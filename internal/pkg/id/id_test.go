package id

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestID(t *testing.T) {
	Convey("UUID 生成与校验", t, func() {
		v := New()
		So(IsValid(v), ShouldBeTrue)
		So(New(), ShouldNotEqual, v)
		So(IsValid("post-1"), ShouldBeFalse)
		So(IsValid(""), ShouldBeFalse)
	})
}
