package post

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"quill/internal/model/post"
)

func TestBuildFilter(t *testing.T) {
	Convey("BuildFilter", t, func() {
		Convey("空条件匹配全部", func() {
			So(BuildFilter(post.ListFilter{}), ShouldResemble, bson.M{})
		})

		Convey("搜索词转义后大小写不敏感匹配三个字段", func() {
			f := BuildFilter(post.ListFilter{Search: "c++ (intro)"})
			re := primitive.Regex{Pattern: `c\+\+ \(intro\)`, Options: "i"}
			So(f["$or"], ShouldResemble, bson.A{
				bson.M{"title": re},
				bson.M{"content": re},
				bson.M{"author": re},
			})
		})

		Convey("标签与作者过滤", func() {
			f := BuildFilter(post.ListFilter{Tag: "go", UserID: "u1"})
			So(f["tags"], ShouldEqual, "go")
			So(f["user_id"], ShouldEqual, "u1")
			So(f, ShouldNotContainKey, "$or")
		})
	})
}
