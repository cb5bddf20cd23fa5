// Package types 定义分析流水线各环节共享的报告结构
// 这里的JSON标签就是对外接口契约，修改字段名会破坏已有客户端
package types

// MatchResult JD匹配分析的完整结果
type MatchResult struct {
	MatchScore               float64  `json:"match_score"`                // 0-100
	CommonKeywords           []string `json:"common_keywords"`            // 简历与JD共有的关键词
	MissingKeywords          []string `json:"missing_keywords"`           // JD中有而简历缺失的关键词
	ImportantKeywordsTotal   int      `json:"important_keywords_total"`   // JD重要关键词总数
	ImportantKeywordsMatched int      `json:"important_keywords_matched"` // 简历命中的重要关键词数
	MatchedImportantKeywords []string `json:"matched_important_keywords"` // 命中的重要关键词列表
}

// MatchDetails 对外报告中的匹配详情，match_score单独置于报告顶层
type MatchDetails struct {
	CommonKeywords           []string `json:"common_keywords"`
	MissingKeywords          []string `json:"missing_keywords"`
	ImportantKeywordsMatched int      `json:"important_keywords_matched"`
	ImportantKeywordsTotal   int      `json:"important_keywords_total"`
	MatchedImportantKeywords []string `json:"matched_important_keywords"`
}

// Details 把内部匹配结果转换为对外详情视图
func (m *MatchResult) Details() *MatchDetails {
	if m == nil {
		return nil
	}
	return &MatchDetails{
		CommonKeywords:           m.CommonKeywords,
		MissingKeywords:          m.MissingKeywords,
		ImportantKeywordsMatched: m.ImportantKeywordsMatched,
		ImportantKeywordsTotal:   m.ImportantKeywordsTotal,
		MatchedImportantKeywords: m.MatchedImportantKeywords,
	}
}

// ContactCheck 联系方式完整性检查
type ContactCheck struct {
	HasEmail   bool `json:"has_email"`
	HasPhone   bool `json:"has_phone"`
	HasAddress bool `json:"has_address"`
	Complete   bool `json:"complete"` // has_email && has_phone
}

// FormattingChecks ATS排版检查
type FormattingChecks struct {
	HasTables           bool `json:"has_tables"`
	ExcessiveFormatting bool `json:"excessive_formatting"`
	HasHeadersFooters   bool `json:"has_headers_footers"`
	HasBullets          bool `json:"has_bullets"`
}

// ATSReport ATS合规性检查报告
type ATSReport struct {
	ATSScore         float64          `json:"ats_score"` // 0-100
	SectionChecks    map[string]bool  `json:"section_checks"`
	ContactCheck     ContactCheck     `json:"contact_check"`
	FormattingChecks FormattingChecks `json:"formatting_checks"`
	// issues与recommendations保持检查顺序: 章节→联系方式→排版→篇幅
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

// VerbFinding 单个弱动词命中及替换建议
type VerbFinding struct {
	WeakVerb    string   `json:"weak_verb"`
	Suggestions []string `json:"suggestions"` // 至多3条，取映射表前N项，不随机
	Context     string   `json:"context"`     // 原文上下文片段
	Position    int      `json:"position"`    // 原文中的字节偏移
}

// VerbCount 某个弱动词的出现次数
type VerbCount struct {
	Verb  string `json:"verb"`
	Count int    `json:"count"`
}

// VerbStats 动词使用统计
type VerbStats struct {
	WeakVerbCount   int         `json:"weak_verb_count"`
	StrongVerbCount int         `json:"strong_verb_count"`
	WeakVerbsFound  []VerbCount `json:"weak_verbs_found"`
	PowerVerbScore  float64     `json:"power_verb_score"` // 0-100，无任何动词命中时为100
}

// PowerVerbReport 弱动词分析报告
type PowerVerbReport struct {
	Findings []VerbFinding `json:"findings"`
	Stats    VerbStats     `json:"stats"`
}

// QualityDetails 质量评分详情
type QualityDetails struct {
	ModelUsed string             `json:"model_used"` // "ml_model" 或 "rule_based"
	Features  map[string]float64 `json:"features"`   // 按特征名展开的特征向量
}

// QualityResult 质量评分结果
type QualityResult struct {
	QualityScore float64 `json:"quality_score"` // 0-100
	ModelUsed    string  `json:"model_used"`
	Features     map[string]float64 `json:"features"`
}

// AnalysisReport 编排器组装的组合报告，对应 /analyze 的响应体
//
// 历史契约的不对称点: 未提供JD时 match_details 整体缺省(omitempty)，
// 而 match_score 和 job_id 显式输出null。客户端依赖这一行为，不要"修正"。
type AnalysisReport struct {
	MatchScore     *float64        `json:"match_score"`
	ATSScore       float64         `json:"ats_score"`
	QualityScore   float64         `json:"quality_score"`
	MatchDetails   *MatchDetails   `json:"match_details,omitempty"`
	ATSReport      ATSReport       `json:"ats_report"`
	PowerVerbs     PowerVerbReport `json:"power_verbs"`
	QualityDetails QualityDetails  `json:"quality_details"`
	AnalysisID     *string         `json:"analysis_id"` // 持久化失败时为null
	ResumeID       string          `json:"resume_id"`
	JobID          *string         `json:"job_id"`
}

// ProjectInsight 从简历中提取的项目亮点
type ProjectInsight struct {
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	TechStack  []string `json:"tech_stack"`
	Confidence float64  `json:"confidence"` // 0-1
}

// AchievementInsight 从简历中提取的获奖/课外亮点
type AchievementInsight struct {
	Title          string   `json:"title"`
	Details        string   `json:"details"`
	Category       string   `json:"category"` // "Achievement" 或 "Co-curricular"
	ImpactKeywords []string `json:"impact_keywords"`
}

// InsightsReport 简历亮点提取报告
type InsightsReport struct {
	Projects     []ProjectInsight     `json:"projects"`
	Achievements []AchievementInsight `json:"achievements"`
}

// HistoryItem 历史查询返回的单条摘要，按创建时间倒序
type HistoryItem struct {
	ID            string   `json:"id"`
	ResumeID      string   `json:"resume_id"`
	JobID         *string  `json:"job_id"`
	MatchScore    *float64 `json:"match_score"`
	ATSScore      *float64 `json:"ats_score"`
	QualityScore  *float64 `json:"quality_score"`
	CreatedAt     string   `json:"created_at"`
	ResumePreview string   `json:"resume_preview"`
	JDPreview     string   `json:"jd_preview"`
}
