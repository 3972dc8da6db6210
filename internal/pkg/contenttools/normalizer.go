package contenttools

import (
	"strings"
	"unicode/utf8"
)

const (
	// MaxTags 单次最多返回的标签数
	MaxTags = 5
	// MaxTagLength 单个标签最大字符数
	MaxTagLength = 20
)

// NormalizeTags 规整标签集合
// 去首尾空白、转小写，丢弃空标签和超长标签，大小写不敏感去重（保留首次出现），最多 MaxTags 个
func NormalizeTags(raw []string) []string {
	tags := make([]string, 0, MaxTags)
	seen := make(map[string]struct{}, len(raw))

	for _, t := range raw {
		t = strings.ToLower(strings.TrimSpace(t))
		n := utf8.RuneCountInString(t)
		if n == 0 || n > MaxTagLength {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
		if len(tags) == MaxTags {
			break
		}
	}
	return tags
}

// ParseRemoteTags 解析模型返回的逗号分隔标签
func ParseRemoteTags(text string) ([]string, error) {
	tags := NormalizeTags(strings.Split(text, ","))
	if len(tags) == 0 {
		return nil, ErrEmptyOutput
	}
	return tags, nil
}

// NormalizeSummary 规整模型返回的摘要
// 模型不保证遵守长度要求，超长时按词边界截断
func NormalizeSummary(text string, maxLength int) (string, error) {
	summary := strings.TrimSpace(text)
	if summary == "" {
		return "", ErrEmptyOutput
	}
	if utf8.RuneCountInString(summary) > maxLength {
		summary = TruncateAtWord(summary, maxLength)
	}
	return summary, nil
}
