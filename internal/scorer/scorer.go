// Package scorer 实现简历质量评分: 特征提取 + 模型/规则双策略打分
package scorer

import (
	"resume-sense-go/internal/analyzer"
	"resume-sense-go/internal/constants"
	"resume-sense-go/internal/logger"
	"resume-sense-go/internal/types"
	"resume-sense-go/pkg/utils"
)

// strategy 评分策略，启动时二选一，进程内不再切换
type strategy interface {
	score(features map[string]float64) float64
	name() string
}

// QualityScorer 简历质量评分器
type QualityScorer struct {
	strategy strategy
}

// NewQualityScorer 创建评分器并一次性选定策略
// 模型加载失败只降级不报错，降级事实通过model_used对外可见
func NewQualityScorer(modelPath string) *QualityScorer {
	model, err := LoadModel(modelPath)
	if err != nil {
		logger.Warn().
			Err(err).
			Str("model_path", modelPath).
			Msg("质量评分模型不可用，降级到规则评分")
		return &QualityScorer{strategy: &ruleBasedStrategy{}}
	}

	logger.Info().
		Str("model_path", modelPath).
		Str("model_version", model.Version).
		Msg("质量评分模型加载成功")
	return &QualityScorer{strategy: &modelStrategy{model: model}}
}

// ModelUsed 返回当前生效的评分策略标识
func (s *QualityScorer) ModelUsed() string {
	return s.strategy.name()
}

// Score 提取特征并按当前策略评分
// match可为nil(未提供JD)；ats与verbs必须来自同一次分析
func (s *QualityScorer) Score(n *analyzer.NormalizedText, ats *types.ATSReport, verbs *types.PowerVerbReport, match *types.MatchResult) *types.QualityResult {
	features := ExtractFeatures(n, ats, verbs, match)
	return &types.QualityResult{
		QualityScore: utils.Round2(s.strategy.score(features)),
		ModelUsed:    s.strategy.name(),
		Features:     features,
	}
}

// modelStrategy 已训练模型策略
type modelStrategy struct {
	model *Model
}

func (m *modelStrategy) score(features map[string]float64) float64 {
	return m.model.Predict(Vector(features))
}

func (m *modelStrategy) name() string {
	return constants.ModelUsedML
}

// ruleBasedStrategy 规则兜底策略，手调权重合计100分
type ruleBasedStrategy struct{}

func (r *ruleBasedStrategy) score(features map[string]float64) float64 {
	score := 0.0

	// ATS合规(30分)
	score += features["ats_score"] * 30

	// 章节完整性(20分): 教育/经历/技能/联系方式四项均分
	sections := features["has_education"] + features["has_experience"] +
		features["has_skills"] + features["has_contact"]
	score += sections / 4 * 20

	// 强动词占比(15分)
	score += features["power_verb_ratio"] * 15

	// 量化指标(15分): 每个数字0.5分封顶
	if features["has_numbers"] > 0 {
		score += minScore(15, features["numbers_count"]*0.5)
	}

	// 关键词密度(10分)
	score += features["keyword_density"] * 10

	// JD匹配(10分)，未提供JD时该项自然为0
	if features["jd_match_score"] > 0 {
		score += features["jd_match_score"] * 10
	}

	return utils.Clamp(score, 0, 100)
}

func (r *ruleBasedStrategy) name() string {
	return constants.ModelUsedRuleBased
}

func minScore(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
