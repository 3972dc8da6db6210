package post

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DeleteResponse 删除结果
type DeleteResponse struct {
	Message string `json:"message"`
}

// Delete 删除文章
// @Summary      删除文章
// @Description  只有作者本人或管理员可以删除
// @Tags         文章
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "文章ID"
// @Success      200  {object}  DeleteResponse
// @Failure      401  {object}  httputil.ErrorResponse
// @Failure      403  {object}  httputil.ErrorResponse
// @Failure      404  {object}  httputil.ErrorResponse
// @Router       /api/posts/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.posts.Delete(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		writeError(c, err, "Forbidden: You can only delete your own posts")
		return
	}
	c.JSON(http.StatusOK, DeleteResponse{Message: "Post deleted successfully"})
}
