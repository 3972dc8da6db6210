package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"quill/internal/model/post"
	httputil "quill/internal/pkg/http"
)

// ListPosts 管理后台文章列表
// @Summary      全部文章
// @Tags         管理
// @Produce      json
// @Security     BearerAuth
// @Param        search   query     string  false  "搜索关键词"
// @Param        user_id  query     string  false  "作者用户ID"
// @Param        page     query     int     false  "页码"  default(1)
// @Param        limit    query     int     false  "每页数量"  default(50)
// @Success      200      {object}  PageResult[post.Post]
// @Router       /api/admin/posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	f := post.ListFilter{
		Search: c.Query("search"),
		Tag:    c.Query("tag"),
		UserID: c.Query("user_id"),
		Page:   page,
		Limit:  limit,
	}
	posts, total, err := h.posts.List(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}

	f.Normalize()
	items := make([]post.Post, 0, len(posts))
	for _, p := range posts {
		items = append(items, *p)
	}
	c.JSON(http.StatusOK, PageResult[post.Post]{Items: items, Total: total, Page: f.Page, Limit: f.Limit})
}

// DeletePost 删除任意文章
// @Summary      删除文章
// @Tags         管理
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "文章ID"
// @Success      200  {object}  httputil.SuccessResponse
// @Failure      404  {object}  httputil.ErrorResponse
// @Router       /api/admin/posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	if err := h.posts.Delete(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	httputil.Success(c, http.StatusOK, "Post deleted successfully", nil)
}
