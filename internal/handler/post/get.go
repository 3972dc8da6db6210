package post

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Get 获取单篇文章
// @Summary      获取文章
// @Tags         文章
// @Produce      json
// @Param        id   path      string  true  "文章ID"
// @Success      200  {object}  post.Post
// @Failure      404  {object}  httputil.ErrorResponse
// @Router       /api/posts/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	p, err := h.posts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, p)
}
