package contenttools

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// vocabulary 常见博客主题标签，顺序即匹配结果的输出顺序
var vocabulary = [...]string{
	"technology", "programming", "web-development", "javascript",
	"react", "nextjs", "tutorial", "tips", "coding", "software",
	"design", "ui", "ux", "frontend", "backend", "database",
	"api", "testing", "deployment", "performance", "security",
	"mobile", "responsive", "accessibility", "seo", "marketing",
	"ai", "machine-learning", "data-science", "cloud", "devops",
}

// KeywordCount 频率关键词个数
const KeywordCount = 3

// 关键词长度（字符数）开区间 (3, 15)
const (
	minKeywordLen = 3
	maxKeywordLen = 15
)

// nonWordRe 匹配既不是 ASCII 单词字符也不是空白的字符
// 空白包含 \v、NBSP 等 Unicode 空格和 BOM
var nonWordRe = regexp.MustCompile(`[^\w\s\v\p{Z}\x{FEFF}]`)

// splitWords 按任意空白切词
func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}

// Vocabulary 返回主题词表副本
func Vocabulary() []string {
	return slices.Clone(vocabulary[:])
}

// FallbackTags 不依赖网络的标签生成
// 先按词表顺序输出命中的主题标签，再追加高频关键词，去重后最多 MaxTags 个
func FallbackTags(content string) []string {
	candidates := MatchVocabulary(content)
	candidates = append(candidates, ExtractKeywords(content, KeywordCount)...)
	return NormalizeTags(candidates)
}

// MatchVocabulary 词表匹配
// 任一内容词是词表项的子串、或词表项是内容词的子串即命中（双向子串，刻意宽松以覆盖复数/词形变化）
func MatchVocabulary(content string) []string {
	words := splitWords(strings.ToLower(content))
	var matched []string
	for _, tag := range vocabulary {
		for _, w := range words {
			if strings.Contains(w, tag) || strings.Contains(tag, w) {
				matched = append(matched, tag)
				break
			}
		}
	}
	return matched
}

// ExtractKeywords 基于词频提取关键词
// 去掉标点后保留长度在 (3, 15) 之间的词，按出现次数降序，次数相同按首次出现顺序
func ExtractKeywords(content string, n int) []string {
	cleaned := nonWordRe.ReplaceAllString(strings.ToLower(content), "")

	type wordFreq struct {
		word  string
		count int
	}
	var freqs []*wordFreq
	index := make(map[string]*wordFreq)

	for _, w := range splitWords(cleaned) {
		l := utf8.RuneCountInString(w)
		if l <= minKeywordLen || l >= maxKeywordLen {
			continue
		}
		if wf, ok := index[w]; ok {
			wf.count++
			continue
		}
		wf := &wordFreq{word: w, count: 1}
		index[w] = wf
		freqs = append(freqs, wf)
	}

	slices.SortStableFunc(freqs, func(a, b *wordFreq) int {
		return b.count - a.count
	})

	if len(freqs) > n {
		freqs = freqs[:n]
	}
	keywords := make([]string, 0, len(freqs))
	for _, wf := range freqs {
		keywords = append(keywords, wf.word)
	}
	return keywords
}
