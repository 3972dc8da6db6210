package assist

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SummaryRequest 摘要生成请求
type SummaryRequest struct {
	Content   string `json:"content"`
	MaxLength int    `json:"maxLength" example:"150"` // 可选，默认 150
}

// SummaryResponse 摘要生成响应
type SummaryResponse struct {
	Summary string `json:"summary"`
}

// Summarize 生成摘要
// @Summary      生成文章摘要
// @Description  生成不超过 maxLength 个字符的摘要；远程模型不可用时按词边界截断原文
// @Tags         AI
// @Accept       json
// @Produce      json
// @Param        request  body      SummaryRequest  true  "文章内容（20-50000 字符）"
// @Success      200      {object}  SummaryResponse
// @Failure      400      {object}  httputil.ErrorResponse
// @Failure      405      {object}  httputil.ErrorResponse
// @Failure      500      {object}  httputil.ErrorResponse
// @Router       /api/gemini/summarize [post]
func (h *Handler) Summarize(c *gin.Context) {
	var req SummaryRequest
	if !bindJSON(c, &req) {
		return
	}

	summary, err := h.assistant.Summarize(c.Request.Context(), req.Content, req.MaxLength)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{Summary: summary})
}
