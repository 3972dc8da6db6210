package contenttools

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Bounds 内容长度上下限（按字符数计）
type Bounds struct {
	Min int
	Max int
}

var (
	// TagBounds 标签生成的内容长度范围
	TagBounds = Bounds{Min: 10, Max: 10000}
	// SummaryBounds 摘要生成的内容长度范围
	SummaryBounds = Bounds{Min: 20, Max: 50000}
)

// DefaultSummaryLength 未指定 maxLength 时的摘要长度
const DefaultSummaryLength = 150

// ValidateTagRequest 校验标签生成请求
func ValidateTagRequest(content string) error {
	return validateContent(OpTags, content, TagBounds)
}

// ValidateSummaryRequest 校验摘要生成请求，返回生效的 maxLength
// maxLength 为 0 时取默认值 150，负数视为非法
func ValidateSummaryRequest(content string, maxLength int) (int, error) {
	if err := validateContent(OpSummary, content, SummaryBounds); err != nil {
		return 0, err
	}

	if maxLength < 0 {
		return 0, &ValidationError{
			Op:      OpSummary,
			Reason:  ReasonInvalidLength,
			Message: "maxLength must be a positive number",
		}
	}
	if maxLength == 0 {
		maxLength = DefaultSummaryLength
	}
	return maxLength, nil
}

func validateContent(op Operation, content string, b Bounds) error {
	if strings.TrimSpace(content) == "" {
		return &ValidationError{Op: op, Reason: ReasonMissing, Message: "Content is required"}
	}

	n := utf8.RuneCountInString(content)
	if n < b.Min {
		return &ValidationError{
			Op:      op,
			Reason:  ReasonTooShort,
			Message: fmt.Sprintf("Content must be at least %d characters long for %s", b.Min, opNoun(op)),
		}
	}
	if n > b.Max {
		return &ValidationError{
			Op:      op,
			Reason:  ReasonTooLong,
			Message: fmt.Sprintf("Content too long for %s (max %s characters)", opNoun(op), groupThousands(b.Max)),
		}
	}
	return nil
}

func opNoun(op Operation) string {
	if op == OpSummary {
		return "summarization"
	}
	return "tag generation"
}

// groupThousands 10000 -> "10,000"
func groupThousands(n int) string {
	s := fmt.Sprintf("%d", n)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}
