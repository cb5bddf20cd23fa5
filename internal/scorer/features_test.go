package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-sense-go/internal/analyzer"
	"resume-sense-go/internal/types"
)

func analyzedFixture(t *testing.T, text string) (*analyzer.NormalizedText, *types.ATSReport, *types.PowerVerbReport) {
	t.Helper()
	n, err := analyzer.Normalize(text)
	require.NoError(t, err, "测试文本归一化不应失败")
	return n, analyzer.NewATSChecker().Check(n), analyzer.NewPowerVerbAnalyzer(0).Analyze(n)
}

func TestFeatureNamesContract(t *testing.T) {
	names := FeatureNames()
	require.Len(t, names, FeatureCount)
	assert.Equal(t, "text_length", names[0])
	assert.Equal(t, "ats_score", names[10])
	assert.Equal(t, "achievement_keywords", names[21])

	// 返回副本: 调用方修改不得影响契约本身
	names[0] = "tampered"
	assert.Equal(t, "text_length", FeatureNames()[0])
}

func TestExtractFeaturesBasicSignals(t *testing.T) {
	text := "Jane Doe\nEmail: jane@example.com Phone: 555-123-4567\n" +
		"Experience\n- Improved throughput by 30% and reduced costs\n" +
		"Education\nBS Computer Science\nSkills\nPython, SQL"
	n, ats, verbs := analyzedFixture(t, text)

	features := ExtractFeatures(n, ats, verbs, nil)
	require.Len(t, features, FeatureCount, "特征集必须恰好覆盖契约全部维度")

	assert.Equal(t, float64(len(text)), features["text_length"])
	assert.Equal(t, 1.0, features["has_numbers"])
	assert.Equal(t, 1.0, features["percentage_mentions"], "30%应计为百分比提及")
	assert.Equal(t, 1.0, features["has_email"])
	assert.Equal(t, 1.0, features["has_phone"])
	assert.Equal(t, 1.0, features["has_education"])
	assert.Equal(t, 1.0, features["has_skills"])
	assert.Equal(t, 1.0, features["has_bullets"])
	assert.Equal(t, 2.0, features["achievement_keywords"], "improved与reduced各计1次")

	// 归一化到0-1的特征
	assert.GreaterOrEqual(t, features["ats_score"], 0.0)
	assert.LessOrEqual(t, features["ats_score"], 1.0)
	assert.GreaterOrEqual(t, features["keyword_density"], 0.0)
	assert.LessOrEqual(t, features["keyword_density"], 1.0)

	// 未提供JD时匹配特征取0
	assert.Equal(t, 0.0, features["jd_match_score"])
	assert.Equal(t, 0.0, features["common_keywords"])
}

func TestExtractFeaturesWithMatchResult(t *testing.T) {
	n, ats, verbs := analyzedFixture(t, "Python developer improved systems using SQL and Docker")

	match := &types.MatchResult{
		MatchScore:     62.5,
		CommonKeywords: []string{"python", "sql", "docker"},
	}
	features := ExtractFeatures(n, ats, verbs, match)

	assert.InDelta(t, 0.625, features["jd_match_score"], 0.0001)
	assert.Equal(t, 3.0, features["common_keywords"])
}

func TestVectorFollowsContractOrder(t *testing.T) {
	features := make(map[string]float64, FeatureCount)
	for i, name := range FeatureNames() {
		features[name] = float64(i)
	}

	vector := Vector(features)
	require.Len(t, vector, FeatureCount)
	for i, v := range vector {
		assert.Equal(t, float64(i), v, "向量第%d位与特征名顺序不一致", i)
	}
}

func TestKeywordDensityEdgeCases(t *testing.T) {
	assert.Equal(t, 0.0, keywordDensity(""))
	assert.Equal(t, 0.0, keywordDensity("the and for of"), "全部停用词时密度为0")
	assert.Equal(t, 1.0, keywordDensity("python kubernetes engineering"))
}
