package post

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"quill/internal/model/post"
)

// List 文章列表
// @Summary      文章列表
// @Description  按标题/内容/作者搜索（大小写不敏感），可按标签过滤，最新的在前；总数在 X-Total-Count 头
// @Tags         文章
// @Produce      json
// @Param        search  query     string  false  "搜索关键词"
// @Param        tag     query     string  false  "标签"
// @Param        page    query     int     false  "页码"  default(1)
// @Param        limit   query     int     false  "每页数量"  default(50)
// @Success      200     {array}   post.Post
// @Failure      500     {object}  httputil.ErrorResponse
// @Router       /api/posts [get]
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	posts, total, err := h.posts.List(c.Request.Context(), post.ListFilter{
		Search: c.Query("search"),
		Tag:    c.Query("tag"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		writeError(c, err, "")
		return
	}

	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, posts)
}
