package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"quill/internal/model/auth"
	"quill/internal/model/post"
	"quill/internal/pkg/cache"
)

func TestPostService_Create(t *testing.T) {
	Convey("创建文章", t, func() {
		ctx := context.Background()
		store := newMemPosts()
		svc := NewPostService(store, nil, 0)
		author := Actor{UserID: "u1", Role: auth.RoleAuthor}

		Convey("去空白并使用默认作者", func() {
			p, err := svc.Create(ctx, author, PostInput{
				Title:   "  Hello  ",
				Content: "  Body text  ",
				Tags:    []string{" go ", "", "go", "web"},
			})
			So(err, ShouldBeNil)
			So(p.ID, ShouldNotBeEmpty)
			So(p.Title, ShouldEqual, "Hello")
			So(p.Content, ShouldEqual, "Body text")
			So(p.Author, ShouldEqual, post.DefaultAuthor)
			So(p.UserID, ShouldEqual, "u1")
			So(p.Tags, ShouldResemble, []string{"go", "web"})
		})

		Convey("标题和内容必填", func() {
			_, err := svc.Create(ctx, author, PostInput{Title: "   ", Content: "x"})
			var ie *InputError
			So(errors.As(err, &ie), ShouldBeTrue)
			So(ie.Message, ShouldEqual, "Title and content are required")
		})

		Convey("长度限制", func() {
			_, err := svc.Create(ctx, author, PostInput{Title: strings.Repeat("t", 201), Content: "x"})
			So(err.Error(), ShouldEqual, "Title cannot exceed 200 characters")

			_, err = svc.Create(ctx, author, PostInput{Title: "t", Content: "x", Description: strings.Repeat("d", 501)})
			So(err.Error(), ShouldEqual, "Description cannot exceed 500 characters")

			tags := make([]string, 11)
			for i := range tags {
				tags[i] = strings.Repeat("t", i+1)
			}
			_, err = svc.Create(ctx, author, PostInput{Title: "t", Content: "x", Tags: tags})
			So(err.Error(), ShouldEqual, "Cannot have more than 10 tags")
		})

		Convey("未登录不能创建", func() {
			_, err := svc.Create(ctx, Actor{}, PostInput{Title: "t", Content: "x"})
			So(err, ShouldEqual, ErrForbidden)
		})
	})
}

func TestPostService_GetCache(t *testing.T) {
	Convey("单篇读取走缓存", t, func() {
		ctx := context.Background()
		store := newMemPosts(&post.Post{ID: "p1", Title: "Cached", Content: "c", UserID: "u1", Tags: []string{}})
		c := newMemCache()
		svc := NewPostService(store, c, time.Minute)

		p, err := svc.Get(ctx, "p1")
		So(err, ShouldBeNil)
		So(p.Title, ShouldEqual, "Cached")
		So(c.has(cache.PostCacheKey("p1")), ShouldBeTrue)

		p, err = svc.Get(ctx, "p1")
		So(err, ShouldBeNil)
		So(p.Title, ShouldEqual, "Cached")
		So(store.findCount(), ShouldEqual, 1)

		Convey("更新后缓存失效", func() {
			_, err := svc.Update(ctx, Actor{UserID: "u1", Role: auth.RoleAuthor}, "p1", PostInput{Title: "New", Content: "c"})
			So(err, ShouldBeNil)
			So(c.has(cache.PostCacheKey("p1")), ShouldBeFalse)

			p, err := svc.Get(ctx, "p1")
			So(err, ShouldBeNil)
			So(p.Title, ShouldEqual, "New")
		})

		Convey("删除后缓存失效", func() {
			So(svc.Delete(ctx, Actor{UserID: "u1", Role: auth.RoleAuthor}, "p1"), ShouldBeNil)
			So(c.has(cache.PostCacheKey("p1")), ShouldBeFalse)
			_, err := svc.Get(ctx, "p1")
			So(err, ShouldEqual, ErrPostNotFound)
		})
	})

	Convey("不存在的文章", t, func() {
		svc := NewPostService(newMemPosts(), newMemCache(), time.Minute)
		_, err := svc.Get(context.Background(), "missing")
		So(err, ShouldEqual, ErrPostNotFound)
	})
}

func TestPostService_Permissions(t *testing.T) {
	Convey("只有作者本人或管理员可以修改", t, func() {
		ctx := context.Background()
		store := newMemPosts(&post.Post{ID: "p1", Title: "T", Content: "C", Author: "Alice", UserID: "owner"})
		svc := NewPostService(store, nil, 0)
		in := PostInput{Title: "Edited", Content: "C2"}

		Convey("其他作者", func() {
			_, err := svc.Update(ctx, Actor{UserID: "other", Role: auth.RoleAuthor}, "p1", in)
			So(err, ShouldEqual, ErrForbidden)
			So(svc.Delete(ctx, Actor{UserID: "other", Role: auth.RoleAuthor}, "p1"), ShouldEqual, ErrForbidden)
		})

		Convey("作者本人，未填写作者时保留原作者", func() {
			p, err := svc.Update(ctx, Actor{UserID: "owner", Role: auth.RoleAuthor}, "p1", in)
			So(err, ShouldBeNil)
			So(p.Title, ShouldEqual, "Edited")
			So(p.Author, ShouldEqual, "Alice")
		})

		Convey("管理员", func() {
			So(svc.Delete(ctx, Actor{UserID: "admin", Role: auth.RoleAdmin}, "p1"), ShouldBeNil)
			So(svc.Delete(ctx, Actor{UserID: "admin", Role: auth.RoleAdmin}, "p1"), ShouldEqual, ErrPostNotFound)
		})
	})
}

func TestPostService_List(t *testing.T) {
	Convey("列表搜索与分页", t, func() {
		ctx := context.Background()
		base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		store := newMemPosts(
			&post.Post{ID: "1", Title: "Go channels", Content: "x", Tags: []string{"go"}, CreatedAt: base},
			&post.Post{ID: "2", Title: "React hooks", Content: "x", Tags: []string{"react"}, CreatedAt: base.Add(time.Hour)},
			&post.Post{ID: "3", Title: "More Go", Content: "x", Tags: []string{"go"}, CreatedAt: base.Add(2 * time.Hour)},
		)
		svc := NewPostService(store, nil, 0)

		posts, total, err := svc.List(ctx, post.ListFilter{})
		So(err, ShouldBeNil)
		So(total, ShouldEqual, 3)
		So(posts[0].ID, ShouldEqual, "3")

		posts, total, err = svc.List(ctx, post.ListFilter{Tag: " go "})
		So(err, ShouldBeNil)
		So(total, ShouldEqual, 2)

		posts, _, err = svc.List(ctx, post.ListFilter{Search: "react"})
		So(err, ShouldBeNil)
		So(len(posts), ShouldEqual, 1)
		So(posts[0].ID, ShouldEqual, "2")

		posts, total, err = svc.List(ctx, post.ListFilter{Page: 2, Limit: 2})
		So(err, ShouldBeNil)
		So(total, ShouldEqual, 3)
		So(len(posts), ShouldEqual, 1)
		So(posts[0].ID, ShouldEqual, "1")
	})
}
