package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNormalize(t *testing.T, text string) *NormalizedText {
	t.Helper()
	n, err := Normalize(text)
	require.NoError(t, err, "测试文本归一化不应失败")
	return n
}

func TestMatchPartialOverlap(t *testing.T) {
	resume := mustNormalize(t, "Experienced developer skilled in Python, Flask and SQL.")
	jd := mustNormalize(t, "Looking for Python, Docker, SQL and Kubernetes engineers.")

	m := NewJDMatcher(0, 0)
	result := m.Match(resume, jd)
	require.NotNil(t, result, "JD关键词非空时必须返回结果")

	assert.Contains(t, result.CommonKeywords, "python")
	assert.Contains(t, result.CommonKeywords, "sql")
	assert.Contains(t, result.MissingKeywords, "docker")
	assert.Contains(t, result.MissingKeywords, "kubernetes")

	// JD有6个关键词，命中2个；重要关键词同为6命中2，两项占比相同
	assert.InDelta(t, 33.33, result.MatchScore, 0.01)
	assert.Equal(t, 2, result.ImportantKeywordsMatched)

	// 领域词必须排在重要关键词前列
	assert.GreaterOrEqual(t, result.ImportantKeywordsTotal, 4)
}

func TestMatchScoreBounds(t *testing.T) {
	resume := mustNormalize(t, "Python Docker SQL Kubernetes engineering background")
	jd := mustNormalize(t, "Python Docker SQL Kubernetes")

	result := NewJDMatcher(0, 0).Match(resume, jd)
	require.NotNil(t, result)
	assert.LessOrEqual(t, result.MatchScore, 100.0)
	assert.GreaterOrEqual(t, result.MatchScore, 0.0)
	// 全部命中时应为满分
	assert.Equal(t, 100.0, result.MatchScore, "JD关键词全部命中应得满分")
}

func TestMatchNilWhenNoJDKeywords(t *testing.T) {
	resume := mustNormalize(t, "Python developer with Flask experience")

	assert.Nil(t, NewJDMatcher(0, 0).Match(resume, nil), "JD缺失时匹配结果无定义")

	// JD全是停用词时关键词集为空，同样视为无定义
	jd := mustNormalize(t, "the a an and or is to")
	assert.Nil(t, NewJDMatcher(0, 0).Match(resume, jd))
}

func TestMatchZeroWhenResumeHasNoKeywords(t *testing.T) {
	// 简历只含停用词: JD存在，属于有效输入，得0分而不是nil
	resume := mustNormalize(t, "the and with for that this")
	jd := mustNormalize(t, "Python Docker Kubernetes")

	result := NewJDMatcher(0, 0).Match(resume, jd)
	require.NotNil(t, result)
	assert.Equal(t, 0.0, result.MatchScore)
	assert.Empty(t, result.CommonKeywords)
	assert.Equal(t, 0, result.ImportantKeywordsMatched)
}

func TestMatchedImportantSubsetOfCommon(t *testing.T) {
	resume := mustNormalize(t, "Built services in Python and Go, deployed with Docker and Kubernetes on AWS, using PostgreSQL, Redis, Kafka and machine learning pipelines.")
	jd := mustNormalize(t, "Senior engineer: Python, Docker, Kubernetes, AWS, PostgreSQL, Redis, Kafka, Terraform, machine learning, microservices, distributed systems, monitoring, alerting, incident response, capacity planning.")

	result := NewJDMatcher(0, 0).Match(resume, jd)
	require.NotNil(t, result)

	commonSet := make(map[string]struct{}, len(result.CommonKeywords))
	for _, kw := range result.CommonKeywords {
		commonSet[kw] = struct{}{}
	}
	for _, kw := range result.MatchedImportantKeywords {
		_, ok := commonSet[kw]
		assert.True(t, ok, "命中的重要关键词 %s 必须出现在common_keywords中", kw)
	}

	assert.LessOrEqual(t, len(result.CommonKeywords), 20, "展示列表超出截断上限")
	assert.LessOrEqual(t, len(result.MatchedImportantKeywords), 10)
}

func TestMatchCompoundTermsAndAcronyms(t *testing.T) {
	resume := mustNormalize(t, "Applied machine learning and NLP techniques; exposed a REST API in react.js.")
	jd := mustNormalize(t, "Experience with machine learning, NLP and REST API design. Knowledge of react.js preferred.")

	result := NewJDMatcher(0, 0).Match(resume, jd)
	require.NotNil(t, result)

	assert.Contains(t, result.CommonKeywords, "machine learning", "复合短语应作为整体关键词")
	assert.Contains(t, result.CommonKeywords, "nlp", "缩写词应小写归一后参与匹配")
	assert.Contains(t, result.CommonKeywords, "react", "带.js后缀的技术名应取基础名")
}

func TestMatchDeterministic(t *testing.T) {
	resume := mustNormalize(t, "Python Flask SQL Redis MongoDB developer with cloud and security focus")
	jd := mustNormalize(t, "Python SQL MongoDB Kubernetes security cloud Docker Redis analytics reporting")

	m := NewJDMatcher(0, 0)
	first := m.Match(resume, jd)
	for i := 0; i < 5; i++ {
		again := m.Match(resume, jd)
		assert.Equal(t, first, again, "相同输入多次匹配必须产生相同输出")
	}
}
