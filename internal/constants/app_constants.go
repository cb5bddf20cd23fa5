package constants

import "time"

const (
	// Application-level constants
	ServiceName = "resume-sense"

	// AnalysisResultCacheDuration 分析结果缓存的过期时间
	AnalysisResultCacheDuration = 24 * time.Hour

	// PreviewMaxLen 历史列表中简历/JD预览文本的最大长度
	PreviewMaxLen = 200

	// DefaultHistoryLimit 历史查询的默认条数
	DefaultHistoryLimit = 20
	// MaxHistoryLimit 历史查询的最大条数上限
	MaxHistoryLimit = 100

	// ModelUsedML 质量评分走训练模型路径时的标记
	ModelUsedML = "ml_model"
	// ModelUsedRuleBased 质量评分走规则兜底路径时的标记
	ModelUsedRuleBased = "rule_based"
)
