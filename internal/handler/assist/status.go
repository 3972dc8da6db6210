package assist

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse 远程模型状态
type StatusResponse struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Enabled  bool   `json:"enabled"` // 未配置 API key 时为 false，此时只使用本地算法
}

// Status 查询远程模型配置
// @Summary      AI 配置状态
// @Tags         AI
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /api/ai/status [get]
func (h *Handler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{
		Provider: h.status.Provider(),
		Model:    h.status.Model(),
		Enabled:  h.status.Enabled(),
	})
}
