package scorer

import (
	"regexp"
	"strings"

	"resume-sense-go/internal/analyzer"
	"resume-sense-go/internal/types"
)

// featureNames 特征向量的固定顺序，是提取器与模型工件之间的契约
// 任何改动都会使已训练的模型失效，修改前必须同步重训
var featureNames = []string{
	"text_length", "word_count", "sentence_count", "keyword_density",
	"action_verbs_count", "weak_verbs_count", "power_verb_ratio",
	"has_numbers", "numbers_count", "percentage_mentions",
	"ats_score", "has_education", "has_experience", "has_skills",
	"has_contact", "has_bullets", "section_count",
	"jd_match_score", "common_keywords",
	"has_email", "has_phone", "achievement_keywords",
}

// FeatureNames 返回特征名的固定顺序(副本)
func FeatureNames() []string {
	names := make([]string, len(featureNames))
	copy(names, featureNames)
	return names
}

// FeatureCount 特征向量的维度
const FeatureCount = 22

var (
	sentencePattern   = regexp.MustCompile(`[.!?]+`)
	numberPattern     = regexp.MustCompile(`\d+`)
	percentagePattern = regexp.MustCompile(`\d+%`)
	emailPattern      = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern      = regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)
)

// densityStopWords 关键词密度计算用的停用词表
// 比关键词提取的停用词表小: 密度只衡量虚词占比，不过滤招聘高频词
var densityStopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {}, "on": {},
	"at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {}, "from": {}, "as": {},
	"is": {}, "was": {}, "are": {}, "were": {}, "been": {}, "be": {}, "have": {},
	"has": {}, "had": {}, "do": {}, "does": {}, "did": {}, "will": {}, "would": {},
	"should": {}, "could": {}, "may": {}, "might": {}, "must": {}, "can": {},
}

// achievementTerms 量化成果指示词，按出现与否计数(不计次数)
var achievementTerms = []string{
	"increased", "decreased", "improved", "reduced", "achieved", "accomplished",
}

// ExtractFeatures 从简历文本及上游分析结果中提取完整特征集
//
// ats与verbs为必填(评分器必须在ATS检查之后运行)；match可为nil，
// 此时jd_match_score与common_keywords取0，与"未提供JD"语义一致
func ExtractFeatures(n *analyzer.NormalizedText, ats *types.ATSReport, verbs *types.PowerVerbReport, match *types.MatchResult) map[string]float64 {
	text := n.Original
	textLower := strings.ToLower(text)
	features := make(map[string]float64, FeatureCount)

	// 基础文本特征
	features["text_length"] = float64(len(text))
	features["word_count"] = float64(len(strings.Fields(text)))
	features["sentence_count"] = float64(len(sentencePattern.Split(text, -1)))
	features["keyword_density"] = keywordDensity(textLower)

	// 动词使用特征
	features["action_verbs_count"] = float64(verbs.Stats.StrongVerbCount)
	features["weak_verbs_count"] = float64(verbs.Stats.WeakVerbCount)
	features["power_verb_ratio"] = verbs.Stats.PowerVerbScore / 100

	// 量化指标特征
	numbers := numberPattern.FindAllString(text, -1)
	features["has_numbers"] = boolFeature(len(numbers) > 0)
	features["numbers_count"] = float64(len(numbers))
	features["percentage_mentions"] = float64(len(percentagePattern.FindAllString(text, -1)))

	// ATS特征(分数归一到0-1)
	features["ats_score"] = ats.ATSScore / 100
	features["has_education"] = boolFeature(ats.SectionChecks["education"])
	features["has_experience"] = boolFeature(ats.SectionChecks["experience"])
	features["has_skills"] = boolFeature(ats.SectionChecks["skills"])
	features["has_contact"] = boolFeature(ats.ContactCheck.Complete)
	features["has_bullets"] = boolFeature(ats.FormattingChecks.HasBullets)

	sectionCount := 0
	for _, present := range ats.SectionChecks {
		if present {
			sectionCount++
		}
	}
	features["section_count"] = float64(sectionCount)

	// JD匹配特征
	if match != nil {
		features["jd_match_score"] = match.MatchScore / 100
		features["common_keywords"] = float64(len(match.CommonKeywords))
	} else {
		features["jd_match_score"] = 0
		features["common_keywords"] = 0
	}

	// 职业性指标
	features["has_email"] = boolFeature(emailPattern.MatchString(text))
	features["has_phone"] = boolFeature(phonePattern.MatchString(text))

	achievementHits := 0
	for _, term := range achievementTerms {
		if strings.Contains(textLower, term) {
			achievementHits++
		}
	}
	features["achievement_keywords"] = float64(achievementHits)

	return features
}

// Vector 按契约顺序把特征集展开为向量
func Vector(features map[string]float64) []float64 {
	vector := make([]float64, len(featureNames))
	for i, name := range featureNames {
		vector[i] = features[name]
	}
	return vector
}

// keywordDensity 有效词(非停用词且长度>2)占总词数的比例
func keywordDensity(textLower string) float64 {
	words := strings.Fields(textLower)
	if len(words) == 0 {
		return 0
	}
	meaningful := 0
	for _, w := range words {
		if len(w) <= 2 {
			continue
		}
		if _, stop := densityStopWords[w]; stop {
			continue
		}
		meaningful++
	}
	return float64(meaningful) / float64(len(words))
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
