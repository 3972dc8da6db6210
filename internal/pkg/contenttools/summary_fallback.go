package contenttools

import (
	"strings"
)

const ellipsis = "..."

// wordBreakRatio 最后一个空格位于 maxLength 的 80% 之后才在词边界截断
const wordBreakRatio = 0.8

// FallbackSummary 不依赖网络的摘要生成：压缩空白后按长度截断
func FallbackSummary(content string, maxLength int) string {
	return TruncateAtWord(CollapseWhitespace(content), maxLength)
}

// CollapseWhitespace 连续空白压缩为单个空格并去掉首尾空白
func CollapseWhitespace(s string) string {
	return strings.Join(splitWords(s), " ")
}

// TruncateAtWord 截断到 maxLength 个字符以内并追加省略号
// 已经足够短时原样返回；否则先截到 maxLength-3，若最后一个空格足够靠后则在该空格处截断
func TruncateAtWord(s string, maxLength int) string {
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	if maxLength < len(ellipsis) {
		// 放不下省略号
		return string(runes[:max(maxLength, 0)])
	}

	truncated := runes[:maxLength-len(ellipsis)]
	lastSpace := lastIndexRune(truncated, ' ')
	if lastSpace >= 0 && float64(lastSpace) > float64(maxLength)*wordBreakRatio {
		return string(truncated[:lastSpace]) + ellipsis
	}
	return string(truncated) + ellipsis
}

func lastIndexRune(runes []rune, r rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == r {
			return i
		}
	}
	return -1
}
