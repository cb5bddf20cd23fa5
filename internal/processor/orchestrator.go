// Package processor 实现分析编排: 调度各分析器、组装组合报告、
// 处理持久化/缓存/事件等协作方的降级路径
package processor

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"resume-sense-go/internal/analyzer"
	"resume-sense-go/internal/logger"
	"resume-sense-go/internal/scorer"
	"resume-sense-go/internal/types"
	"resume-sense-go/pkg/utils"
)

// noJDCacheSegment 未提供JD时缓存键中JD指纹段的占位符
const noJDCacheSegment = "-"

// Orchestrator 分析编排器
// 分析器均为无状态只读组件，单实例可安全服务并发请求
type Orchestrator struct {
	matcher   *analyzer.JDMatcher
	checker   *analyzer.ATSChecker
	verbs     *analyzer.PowerVerbAnalyzer
	insights  *analyzer.InsightExtractor
	scorer    *scorer.QualityScorer
	store     AnalysisStore
	cache     ReportCache
	publisher EventPublisher
	tracer    trace.Tracer
}

// NewOrchestrator 创建编排器，协作方通过选项注入
// store/cache/publisher 均可缺省: 缺省时对应环节直接跳过
func NewOrchestrator(qualityScorer *scorer.QualityScorer, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		matcher:  analyzer.NewJDMatcher(0, 0),
		checker:  analyzer.NewATSChecker(),
		verbs:    analyzer.NewPowerVerbAnalyzer(0),
		insights: analyzer.NewInsightExtractor(),
		scorer:   qualityScorer,
		tracer:   otel.Tracer("resume-sense/processor"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Analyze 执行完整分析流水线并返回组合报告
//
// 流程: 校验输入 → 查缓存 → ATS/弱动词/JD匹配并行 → 质量评分(依赖前三者) →
// 组装报告 → 持久化 → 回填缓存 → 发布事件
// 持久化及其后的环节均为尽力而为，失败只记日志并置analysis_id为null
func (o *Orchestrator) Analyze(ctx context.Context, resumeText, jdText string) (*types.AnalysisReport, error) {
	ctx, span := o.tracer.Start(ctx, "analysis.pipeline")
	defer span.End()

	// 1. 输入校验，空简历在任何子分析器运行前快速失败
	resume, err := analyzer.Normalize(resumeText)
	if err != nil {
		return nil, err
	}

	var jd *analyzer.NormalizedText
	hasJD := strings.TrimSpace(jdText) != ""
	if hasJD {
		// JD非空但无法归一化不应发生(TrimSpace已排除空白)，出错则视同输入错误
		jd, err = analyzer.Normalize(jdText)
		if err != nil {
			return nil, err
		}
	}

	resumeMD5 := utils.CalculateMD5([]byte(resumeText))
	jdMD5 := noJDCacheSegment
	if hasJD {
		jdMD5 = utils.CalculateMD5([]byte(jdText))
	}
	span.SetAttributes(
		attribute.String("resume.md5", resumeMD5),
		attribute.Bool("analysis.has_jd", hasJD),
	)

	// 2. 缓存查询: 命中即返回，相同输入的报告是确定性的
	if cached := o.lookupCache(ctx, resumeMD5, jdMD5); cached != nil {
		span.SetAttributes(attribute.Bool("analysis.cache_hit", true))
		return cached, nil
	}

	// 3. 三个无依赖的分析器并行执行
	var (
		atsReport  *types.ATSReport
		verbReport *types.PowerVerbReport
		matchRes   *types.MatchResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, s := o.tracer.Start(gctx, "analysis.ats_check")
		defer s.End()
		atsReport = o.checker.Check(resume)
		return nil
	})
	g.Go(func() error {
		_, s := o.tracer.Start(gctx, "analysis.power_verbs")
		defer s.End()
		verbReport = o.verbs.Analyze(resume)
		return nil
	})
	g.Go(func() error {
		if !hasJD {
			return nil
		}
		_, s := o.tracer.Start(gctx, "analysis.jd_match")
		defer s.End()
		matchRes = o.matcher.Match(resume, jd)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// 4. 质量评分必须在ATS检查之后(ATS分数是特征之一)
	_, scoreSpan := o.tracer.Start(ctx, "analysis.quality_score")
	quality := o.scorer.Score(resume, atsReport, verbReport, matchRes)
	scoreSpan.SetAttributes(attribute.String("quality.model_used", quality.ModelUsed))
	scoreSpan.End()

	// 5. 组装组合报告
	// 契约遗留的不对称: 无JD时match_details整体缺省，match_score/job_id显式null
	report := &types.AnalysisReport{
		ATSScore:     atsReport.ATSScore,
		QualityScore: quality.QualityScore,
		ATSReport:    *atsReport,
		PowerVerbs:   *verbReport,
		QualityDetails: types.QualityDetails{
			ModelUsed: quality.ModelUsed,
			Features:  quality.Features,
		},
	}
	if matchRes != nil {
		report.MatchScore = utils.Float64Ptr(matchRes.MatchScore)
		report.MatchDetails = matchRes.Details()
	}

	// 6. 持久化(尽力而为)
	o.persist(ctx, resumeText, jdText, hasJD, report)

	// 7. 缓存回填与事件发布，失败同样不影响响应
	o.storeCache(ctx, resumeMD5, jdMD5, report)
	o.publishCompleted(ctx, report)

	return report, nil
}

// Insights 从简历中提取项目与成果亮点
func (o *Orchestrator) Insights(ctx context.Context, resumeText string) (*types.InsightsReport, error) {
	_, span := o.tracer.Start(ctx, "analysis.insights")
	defer span.End()

	resume, err := analyzer.Normalize(resumeText)
	if err != nil {
		return nil, err
	}
	return o.insights.Extract(resume), nil
}

// persist 保存简历/JD/报告并把生成的ID回填进报告
// 任何一步失败都终止后续持久化，报告以analysis_id=null返回给调用方
func (o *Orchestrator) persist(ctx context.Context, resumeText, jdText string, hasJD bool, report *types.AnalysisReport) {
	if o.store == nil {
		return
	}
	ctx, span := o.tracer.Start(ctx, "analysis.persist")
	defer span.End()

	resumeID, err := o.store.SaveResume(ctx, resumeText)
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).Msg("简历持久化失败，报告降级为未持久化返回")
		return
	}
	report.ResumeID = resumeID

	if hasJD {
		jobID, err := o.store.SaveJob(ctx, jdText)
		if err != nil {
			logger.Ctx(ctx).Warn().Err(err).Msg("JD持久化失败，报告降级为未持久化返回")
			return
		}
		report.JobID = utils.StringPtr(jobID)
	}

	analysisID, err := o.store.SaveAnalysis(ctx, resumeID, report.JobID, report)
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).Msg("分析结果持久化失败，报告降级为未持久化返回")
		return
	}
	report.AnalysisID = utils.StringPtr(analysisID)
	span.SetAttributes(attribute.String("analysis.id", analysisID))
}

// lookupCache 缓存查询，故障按未命中处理
func (o *Orchestrator) lookupCache(ctx context.Context, resumeMD5, jdMD5 string) *types.AnalysisReport {
	if o.cache == nil {
		return nil
	}
	report, err := o.cache.GetReport(ctx, resumeMD5, jdMD5)
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).Msg("报告缓存查询失败，继续执行完整分析")
		return nil
	}
	return report
}

// storeCache 缓存回填，失败只记日志
func (o *Orchestrator) storeCache(ctx context.Context, resumeMD5, jdMD5 string, report *types.AnalysisReport) {
	if o.cache == nil {
		return
	}
	if err := o.cache.SetReport(ctx, resumeMD5, jdMD5, report); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Msg("报告缓存写入失败")
	}
}

// publishCompleted 发布分析完成事件，仅对已持久化的分析发布
func (o *Orchestrator) publishCompleted(ctx context.Context, report *types.AnalysisReport) {
	if o.publisher == nil || report.AnalysisID == nil {
		return
	}
	event := &types.AnalysisCompletedEvent{
		AnalysisID:   *report.AnalysisID,
		ResumeID:     report.ResumeID,
		JobID:        report.JobID,
		MatchScore:   report.MatchScore,
		ATSScore:     report.ATSScore,
		QualityScore: report.QualityScore,
		ModelUsed:    report.QualityDetails.ModelUsed,
		CompletedAt:  time.Now().UTC(),
	}
	if err := o.publisher.PublishAnalysisCompleted(ctx, event); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("analysis_id", event.AnalysisID).Msg("分析完成事件发布失败")
	}
}
