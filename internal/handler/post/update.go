package post

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "quill/internal/pkg/http"
)

// Update 更新文章
// @Summary      更新文章
// @Description  只有作者本人或管理员可以修改
// @Tags         文章
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string       true  "文章ID"
// @Param        request  body      PostRequest  true  "文章"
// @Success      200      {object}  post.Post
// @Failure      400      {object}  httputil.ErrorResponse
// @Failure      401      {object}  httputil.ErrorResponse
// @Failure      403      {object}  httputil.ErrorResponse
// @Failure      404      {object}  httputil.ErrorResponse
// @Router       /api/posts/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.Error(c, http.StatusBadRequest, httputil.CodeInvalidRequest, "Invalid request body", err.Error())
		return
	}

	p, err := h.posts.Update(c.Request.Context(), actorFrom(c), c.Param("id"), req.input())
	if err != nil {
		writeError(c, err, "Forbidden: You can only update your own posts")
		return
	}
	c.JSON(http.StatusOK, p)
}
