package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Stats 站点统计
// @Summary      站点统计
// @Tags         管理
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  service.Stats
// @Router       /api/admin/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.users.Stats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
