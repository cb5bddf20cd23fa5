package analyzer

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmptyInput(t *testing.T) {
	_, err := Normalize("")
	require.Error(t, err, "空输入应返回错误")
	assert.True(t, errors.Is(err, ErrEmptyInput), "错误链中应包含ErrEmptyInput")

	_, err = Normalize("   \n\t  ")
	require.Error(t, err, "全空白输入应返回错误")
	assert.True(t, errors.Is(err, ErrEmptyInput))
}

func TestNormalizeTokenOffsets(t *testing.T) {
	n, err := Normalize("Built APIs with Go.")
	require.NoError(t, err)
	require.Len(t, n.Tokens, 4)

	first := n.Tokens[0]
	assert.Equal(t, "Built", first.Raw)
	assert.Equal(t, "built", first.Lower)
	assert.Equal(t, 0, first.Start)
	assert.Equal(t, 5, first.End)

	// 偏移必须能还原出原文切片
	for _, tok := range n.Tokens {
		assert.Equal(t, tok.Raw, n.Original[tok.Start:tok.End], "词元偏移与原文不一致")
	}

	// 末尾句号不应并入词元
	last := n.Tokens[len(n.Tokens)-1]
	assert.Equal(t, "Go", last.Raw)
}

func TestNormalizeKeepsTechTokensIntact(t *testing.T) {
	n, err := Normalize("node.js and ci/cd with c++")
	require.NoError(t, err)

	words := n.Words()
	assert.Contains(t, words, "node.js", "带点号的技术名不应被切碎")
	assert.Contains(t, words, "ci/cd")
	assert.Contains(t, words, "c++")
}

func TestKeywordTokensFiltering(t *testing.T) {
	n, err := Normalize("The team used Python for the big data project")
	require.NoError(t, err)

	var kws []string
	for _, tok := range n.KeywordTokens() {
		kws = append(kws, tok.Lower)
	}

	assert.Contains(t, kws, "python")
	assert.Contains(t, kws, "data")
	assert.NotContains(t, kws, "the", "停用词应被过滤")
	assert.NotContains(t, kws, "team", "招聘高频词应被过滤")
	assert.Contains(t, kws, "big", "长度大于2且非停用词的词应保留")
	assert.NotContains(t, kws, "for", "长度不足3的停用词应被过滤")
}

func TestContextWindowClipsToSentence(t *testing.T) {
	text := "First sentence here. I did the work on something. Last sentence."
	n, err := Normalize(text)
	require.NoError(t, err)

	// 定位"did"
	var didTok Token
	for _, tok := range n.Tokens {
		if tok.Lower == "did" {
			didTok = tok
			break
		}
	}
	require.NotZero(t, didTok.End, "测试文本中应存在did")

	ctx := n.ContextWindow(didTok.Start, didTok.End, 200)
	assert.Contains(t, ctx, "did")
	assert.NotContains(t, ctx, "First sentence", "上下文不应跨越句子边界")
	assert.NotContains(t, ctx, "Last sentence")
}

func TestNormalizeIdempotent(t *testing.T) {
	text := "Developed a Python service.\nImproved latency by 30%."
	a, err := Normalize(text)
	require.NoError(t, err)
	b, err := Normalize(text)
	require.NoError(t, err)

	assert.Equal(t, a.Tokens, b.Tokens, "相同输入应产生相同词元序列")
	assert.True(t, strings.EqualFold(a.Original, b.Original))
}
