package processor

import (
	"context"
	"io"

	"resume-sense-go/internal/types"
)

// 编排器对外部协作方的依赖契约
// 实现分别位于 internal/parser(提取)与 internal/storage(持久化/缓存/消息)

// TextExtractor 文档文本提取器
type TextExtractor interface {
	// ExtractTextFromReader 从文档字节流中提取纯文本
	// uri 仅用于日志与追踪标注
	ExtractTextFromReader(ctx context.Context, reader io.Reader, uri string) (string, error)
}

// AnalysisStore 分析结果的持久化协作方
type AnalysisStore interface {
	// SaveResume 保存简历原文，返回简历ID
	SaveResume(ctx context.Context, text string) (string, error)

	// SaveJob 保存JD原文，返回岗位ID
	SaveJob(ctx context.Context, text string) (string, error)

	// SaveAnalysis 保存组装完成的分析报告，返回分析ID
	// jobID 未提供JD时为nil
	SaveAnalysis(ctx context.Context, resumeID string, jobID *string, report *types.AnalysisReport) (string, error)
}

// ReportCache 报告缓存，按简历/JD内容指纹命中
// 读写均为尽力而为: 缓存故障绝不影响分析主流程
type ReportCache interface {
	// GetReport 查询缓存报告，未命中返回 (nil, nil)
	GetReport(ctx context.Context, resumeMD5, jdMD5 string) (*types.AnalysisReport, error)

	// SetReport 写入缓存报告
	SetReport(ctx context.Context, resumeMD5, jdMD5 string, report *types.AnalysisReport) error
}

// EventPublisher 分析完成事件发布方
type EventPublisher interface {
	// PublishAnalysisCompleted 发布分析完成事件
	PublishAnalysisCompleted(ctx context.Context, event *types.AnalysisCompletedEvent) error
}
