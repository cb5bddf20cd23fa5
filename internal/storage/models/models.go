// Package models 定义持久化层的GORM模型
package models

import (
	"time"

	"gorm.io/datatypes"
)

// Resume 简历原文表
// 同一份文本只存一行，content_md5作内容指纹去重
type Resume struct {
	ResumeID            string    `gorm:"type:char(36);primaryKey"`
	ContentMD5          string    `gorm:"type:char(32);uniqueIndex:idx_resumes_content_md5"`
	RawText             string    `gorm:"type:mediumtext;not null"`
	OriginalFilePathOSS string    `gorm:"type:varchar(1024)"` // 原始PDF在对象存储中的路径，纯文本提交时为空
	CreatedAt           time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt           time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`
}

func (Resume) TableName() string {
	return "resumes"
}

// Job JD原文表
type Job struct {
	JobID      string    `gorm:"type:char(36);primaryKey"`
	ContentMD5 string    `gorm:"type:char(32);uniqueIndex:idx_jobs_content_md5"`
	JDText     string    `gorm:"type:mediumtext;not null"`
	CreatedAt  time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt  time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`
}

func (Job) TableName() string {
	return "jobs"
}

// AnalysisResult 分析结果表
// 分数列冗余存储便于历史列表查询，完整报告存JSON列
type AnalysisResult struct {
	AnalysisID   string         `gorm:"type:char(36);primaryKey"`
	ResumeID     string         `gorm:"type:char(36);not null;index:idx_analysis_resume_id"`
	JobID        *string        `gorm:"type:char(36);index:idx_analysis_job_id"` // 无JD分析时为NULL
	MatchScore   *float64       `gorm:"type:double"`
	ATSScore     float64        `gorm:"type:double;not null"`
	QualityScore float64        `gorm:"type:double;not null"`
	ModelUsed    string         `gorm:"type:varchar(20);not null"`
	ReportJSON   datatypes.JSON `gorm:"type:json;not null"`
	CreatedAt    time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);index:idx_analysis_created_at"`

	Resume *Resume `gorm:"foreignKey:ResumeID;references:ResumeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Job    *Job    `gorm:"foreignKey:JobID;references:JobID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func (AnalysisResult) TableName() string {
	return "analysis_results"
}
