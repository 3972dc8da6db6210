package assist

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// TagRequest 标签生成请求
type TagRequest struct {
	Content string `json:"content" example:"React hooks simplify state management in functional components."`
}

// TagResponse 标签生成响应
type TagResponse struct {
	Tags []string `json:"tags"`
}

// SuggestTags 生成标签
// @Summary      生成文章标签
// @Description  根据文章内容生成最多 5 个标签；远程模型不可用时使用本地算法
// @Tags         AI
// @Accept       json
// @Produce      json
// @Param        request  body      TagRequest  true  "文章内容（10-10000 字符）"
// @Success      200      {object}  TagResponse
// @Failure      400      {object}  httputil.ErrorResponse
// @Failure      405      {object}  httputil.ErrorResponse
// @Failure      500      {object}  httputil.ErrorResponse
// @Router       /api/gemini/tags [post]
func (h *Handler) SuggestTags(c *gin.Context) {
	var req TagRequest
	if !bindJSON(c, &req) {
		return
	}

	tags, err := h.assistant.SuggestTags(c.Request.Context(), req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	if tags == nil {
		tags = []string{}
	}

	c.JSON(http.StatusOK, TagResponse{Tags: tags})
}
