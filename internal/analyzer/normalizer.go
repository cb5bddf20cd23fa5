package analyzer

import (
	"regexp"
	"strings"
)

// Token 归一化后的单个词元，保留原文偏移以便后续生成上下文片段
type Token struct {
	Raw   string // 原文切片
	Lower string // 小写形式
	Start int    // 原文中的起始字节偏移
	End   int    // 原文中的结束字节偏移(开区间)
}

// NormalizedText 归一化文本: 有序词元序列 + 原文
// 词元顺序与原文顺序一致；停用词的去留由具体分析器按场景决定
type NormalizedText struct {
	Original string
	Tokens   []Token
}

// tokenPattern 匹配词元，允许词内的连字符/点号/@等，
// 以便邮箱、电话、"ci/cd"、"node.js" 这类词元不被切碎
var tokenPattern = regexp.MustCompile(`[A-Za-z0-9][A-Za-z0-9.+#@/_-]*[A-Za-z0-9+#]|[A-Za-z0-9]`)

// sentenceDelims 句子边界字符，换行也视为边界(简历多为要点行)
const sentenceDelims = ".!?\n"

// Normalize 把原始文本归一化为带偏移标注的词元序列
// 仅在输入为空(或全空白)时返回 ErrEmptyInput，不会因格式问题失败
func Normalize(text string) (*NormalizedText, error) {
	if strings.TrimSpace(text) == "" {
		return nil, NewEmptyInputError("normalize")
	}

	matches := tokenPattern.FindAllStringIndex(text, -1)
	tokens := make([]Token, 0, len(matches))
	for _, m := range matches {
		raw := text[m[0]:m[1]]
		tokens = append(tokens, Token{
			Raw:   raw,
			Lower: strings.ToLower(raw),
			Start: m[0],
			End:   m[1],
		})
	}

	return &NormalizedText{
		Original: text,
		Tokens:   tokens,
	}, nil
}

// Words 返回全部小写词元，保留停用词(动词扫描需要位置上下文)
func (n *NormalizedText) Words() []string {
	words := make([]string, len(n.Tokens))
	for i, t := range n.Tokens {
		words[i] = t.Lower
	}
	return words
}

// SentenceAt 返回包含指定偏移的句子边界 [start, end)
// 用于为动词命中生成上下文片段
func (n *NormalizedText) SentenceAt(pos int) (int, int) {
	if pos < 0 {
		pos = 0
	}
	if pos >= len(n.Original) {
		pos = len(n.Original) - 1
	}

	start := 0
	for i := pos; i > 0; i-- {
		if strings.ContainsRune(sentenceDelims, rune(n.Original[i-1])) {
			start = i
			break
		}
	}
	end := len(n.Original)
	for i := pos; i < len(n.Original); i++ {
		if strings.ContainsRune(sentenceDelims, rune(n.Original[i])) {
			end = i + 1
			break
		}
	}
	return start, end
}

// ContextWindow 返回以 [start, end) 命中为中心、前后各扩展 margin 字节的原文片段
// 与句子边界取交集，避免跨句取到无关内容
func (n *NormalizedText) ContextWindow(start, end, margin int) string {
	sStart, sEnd := n.SentenceAt(start)

	wStart := start - margin
	if wStart < sStart {
		wStart = sStart
	}
	wEnd := end + margin
	if wEnd > sEnd {
		wEnd = sEnd
	}
	return strings.TrimSpace(n.Original[wStart:wEnd])
}

// KeywordTokens 返回用于关键词提取的词元: 去停用词、过滤长度≤2的词
// 返回的词元保持原文顺序
func (n *NormalizedText) KeywordTokens() []Token {
	keywords := make([]Token, 0, len(n.Tokens))
	for _, t := range n.Tokens {
		if len(t.Lower) <= 2 {
			continue
		}
		if _, stop := stopWords[t.Lower]; stop {
			continue
		}
		keywords = append(keywords, t)
	}
	return keywords
}
