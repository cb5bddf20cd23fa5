package types

import "time"

// AnalysisCompletedEvent 分析完成后发布到消息队列的事件
// 供下游消费方(通知、统计)订阅，不参与请求-响应路径
type AnalysisCompletedEvent struct {
	AnalysisID   string    `json:"analysis_id"`
	ResumeID     string    `json:"resume_id"`
	JobID        *string   `json:"job_id"`
	MatchScore   *float64  `json:"match_score"`
	ATSScore     float64   `json:"ats_score"`
	QualityScore float64   `json:"quality_score"`
	ModelUsed    string    `json:"model_used"`
	CompletedAt  time.Time `json:"completed_at"`
}
