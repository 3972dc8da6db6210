package post

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "quill/internal/pkg/http"
)

// Create 创建文章
// @Summary      创建文章
// @Tags         文章
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      PostRequest  true  "文章"
// @Success      201      {object}  post.Post
// @Failure      400      {object}  httputil.ErrorResponse
// @Failure      401      {object}  httputil.ErrorResponse
// @Failure      500      {object}  httputil.ErrorResponse
// @Router       /api/posts [post]
func (h *Handler) Create(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.Error(c, http.StatusBadRequest, httputil.CodeInvalidRequest, "Invalid request body", err.Error())
		return
	}

	p, err := h.posts.Create(c.Request.Context(), actorFrom(c), req.input())
	if err != nil {
		writeError(c, err, "Authentication required")
		return
	}

	c.JSON(http.StatusCreated, p)
}
