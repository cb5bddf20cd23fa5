package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-sense-go/internal/analyzer"
	"resume-sense-go/internal/constants"
	"resume-sense-go/internal/scorer"
	"resume-sense-go/internal/types"
)

const sampleResume = "John Doe\nEmail: john@example.com Phone: 555-123-4567\n" +
	"Education: BS Computer Science\n" +
	"Experience: Developed backend services in Python. Improved latency by 30%. I did some maintenance.\n" +
	"Skills: Python, SQL, Docker"

const sampleJD = "Looking for a Python engineer with Docker, SQL and Kubernetes experience."

// fakeStore 记录调用次数的内存存储桩
type fakeStore struct {
	resumeCalls   int
	jobCalls      int
	analysisCalls int
	failResume    bool
	failAnalysis  bool
}

func (f *fakeStore) SaveResume(ctx context.Context, text string) (string, error) {
	f.resumeCalls++
	if f.failResume {
		return "", analyzer.NewStorageError("save_resume", "connection refused")
	}
	return fmt.Sprintf("resume-%d", f.resumeCalls), nil
}

func (f *fakeStore) SaveJob(ctx context.Context, text string) (string, error) {
	f.jobCalls++
	return fmt.Sprintf("job-%d", f.jobCalls), nil
}

func (f *fakeStore) SaveAnalysis(ctx context.Context, resumeID string, jobID *string, report *types.AnalysisReport) (string, error) {
	f.analysisCalls++
	if f.failAnalysis {
		return "", analyzer.NewStorageError("save_analysis", "deadlock")
	}
	return fmt.Sprintf("analysis-%d", f.analysisCalls), nil
}

// fakeCache 单槽缓存桩
type fakeCache struct {
	report *types.AnalysisReport
	sets   int
}

func (f *fakeCache) GetReport(ctx context.Context, resumeMD5, jdMD5 string) (*types.AnalysisReport, error) {
	return f.report, nil
}

func (f *fakeCache) SetReport(ctx context.Context, resumeMD5, jdMD5 string, report *types.AnalysisReport) error {
	f.sets++
	f.report = report
	return nil
}

// fakePublisher 记录发布事件的桩
type fakePublisher struct {
	events []*types.AnalysisCompletedEvent
}

func (f *fakePublisher) PublishAnalysisCompleted(ctx context.Context, event *types.AnalysisCompletedEvent) error {
	f.events = append(f.events, event)
	return nil
}

func newTestOrchestrator(opts ...Option) *Orchestrator {
	return NewOrchestrator(scorer.NewQualityScorer(""), opts...)
}

func TestAnalyzeEmptyResumeFailsFast(t *testing.T) {
	store := &fakeStore{}
	o := newTestOrchestrator(WithStore(store))

	_, err := o.Analyze(context.Background(), "   \n ", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, analyzer.ErrEmptyInput))
	assert.Zero(t, store.resumeCalls, "校验失败后不得触发任何持久化")
}

func TestAnalyzeWithoutJD(t *testing.T) {
	store := &fakeStore{}
	publisher := &fakePublisher{}
	o := newTestOrchestrator(WithStore(store), WithEventPublisher(publisher))

	report, err := o.Analyze(context.Background(), sampleResume, "")
	require.NoError(t, err)

	assert.Nil(t, report.MatchScore, "无JD时match_score应为null")
	assert.Nil(t, report.MatchDetails, "无JD时match_details应整体缺省")
	assert.Nil(t, report.JobID)
	assert.Greater(t, report.ATSScore, 0.0)
	assert.GreaterOrEqual(t, report.QualityScore, 0.0)
	assert.LessOrEqual(t, report.QualityScore, 100.0)
	assert.Equal(t, constants.ModelUsedRuleBased, report.QualityDetails.ModelUsed)

	require.NotNil(t, report.AnalysisID)
	assert.Equal(t, "analysis-1", *report.AnalysisID)
	assert.Equal(t, "resume-1", report.ResumeID)
	assert.Zero(t, store.jobCalls, "无JD时不得保存岗位")

	require.Len(t, publisher.events, 1)
	assert.Equal(t, "analysis-1", publisher.events[0].AnalysisID)
}

func TestAnalyzeWithJD(t *testing.T) {
	store := &fakeStore{}
	o := newTestOrchestrator(WithStore(store))

	report, err := o.Analyze(context.Background(), sampleResume, sampleJD)
	require.NoError(t, err)

	require.NotNil(t, report.MatchScore)
	assert.GreaterOrEqual(t, *report.MatchScore, 0.0)
	assert.LessOrEqual(t, *report.MatchScore, 100.0)
	require.NotNil(t, report.MatchDetails)
	assert.Contains(t, report.MatchDetails.CommonKeywords, "python")
	assert.Contains(t, report.MatchDetails.MissingKeywords, "kubernetes")

	require.NotNil(t, report.JobID)
	assert.Equal(t, "job-1", *report.JobID)
	assert.Equal(t, 1, store.jobCalls)
}

func TestAnalyzeStorageDegradation(t *testing.T) {
	t.Run("简历保存失败", func(t *testing.T) {
		store := &fakeStore{failResume: true}
		publisher := &fakePublisher{}
		o := newTestOrchestrator(WithStore(store), WithEventPublisher(publisher))

		report, err := o.Analyze(context.Background(), sampleResume, "")
		require.NoError(t, err, "存储失败不应吞掉已算好的报告")
		assert.Nil(t, report.AnalysisID)
		assert.Empty(t, report.ResumeID)
		assert.Empty(t, publisher.events, "未持久化的分析不发布事件")
	})

	t.Run("分析保存失败", func(t *testing.T) {
		store := &fakeStore{failAnalysis: true}
		o := newTestOrchestrator(WithStore(store))

		report, err := o.Analyze(context.Background(), sampleResume, "")
		require.NoError(t, err)
		assert.Nil(t, report.AnalysisID)
		assert.Equal(t, "resume-1", report.ResumeID, "简历ID已生成则保留")
	})
}

func TestAnalyzeCacheHitSkipsPipeline(t *testing.T) {
	cached := &types.AnalysisReport{ATSScore: 77}
	store := &fakeStore{}
	o := newTestOrchestrator(WithStore(store), WithReportCache(&fakeCache{report: cached}))

	report, err := o.Analyze(context.Background(), sampleResume, "")
	require.NoError(t, err)
	assert.Same(t, cached, report)
	assert.Zero(t, store.resumeCalls, "缓存命中时不重复持久化")
}

func TestAnalyzeCacheBackfill(t *testing.T) {
	cache := &fakeCache{}
	o := newTestOrchestrator(WithReportCache(cache))

	first, err := o.Analyze(context.Background(), sampleResume, "")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	// 第二次命中回填的缓存
	second, err := o.Analyze(context.Background(), sampleResume, "")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestAnalyzeIdempotent(t *testing.T) {
	o := newTestOrchestrator()

	first, err := o.Analyze(context.Background(), sampleResume, sampleJD)
	require.NoError(t, err)
	second, err := o.Analyze(context.Background(), sampleResume, sampleJD)
	require.NoError(t, err)

	assert.Equal(t, first, second, "相同输入的两次分析必须逐位一致")
}

func TestAnalyzeReportJSONContract(t *testing.T) {
	o := newTestOrchestrator()

	report, err := o.Analyze(context.Background(), sampleResume, "")
	require.NoError(t, err)

	data, err := json.Marshal(report)
	require.NoError(t, err)
	body := string(data)

	// 遗留契约: 无JD时match_details整体缺省，match_score与job_id显式null
	assert.Contains(t, body, `"match_score":null`)
	assert.Contains(t, body, `"job_id":null`)
	assert.NotContains(t, body, `"match_details"`)
	assert.Contains(t, body, `"analysis_id":null`)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	for _, key := range []string{"match_score", "ats_score", "quality_score", "ats_report", "power_verbs", "quality_details", "analysis_id", "resume_id", "job_id"} {
		assert.Contains(t, decoded, key, "顶层键 %s 缺失", key)
	}
}

func TestInsights(t *testing.T) {
	o := newTestOrchestrator()

	_, err := o.Insights(context.Background(), "")
	assert.True(t, errors.Is(err, analyzer.ErrEmptyInput))

	text := "Projects:\nChat Platform | Built a real-time messaging tool with Go and Redis for campus use\n"
	report, err := o.Insights(context.Background(), text)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.NotEmpty(t, report.Projects)
}

func TestScenarioMinimalResume(t *testing.T) {
	// 最小简历场景: 教育/经历章节命中，弱动词did与made被检出
	text := "John Doe\nEducation: BS CS\nExperience: I did some work on backend systems. I made improvements."
	o := newTestOrchestrator()

	report, err := o.Analyze(context.Background(), text, "")
	require.NoError(t, err)

	assert.True(t, report.ATSReport.SectionChecks["education"])
	assert.True(t, report.ATSReport.SectionChecks["experience"])
	assert.False(t, report.ATSReport.SectionChecks["skills"])

	verbs := make([]string, 0)
	for _, f := range report.PowerVerbs.Findings {
		verbs = append(verbs, f.WeakVerb)
		assert.NotEmpty(t, f.Suggestions)
	}
	assert.Contains(t, verbs, "did")
	assert.Contains(t, verbs, "made")
	assert.Less(t, report.PowerVerbs.Stats.PowerVerbScore, 100.0)

	if !strings.Contains(text, "Skills") {
		assert.Contains(t, report.ATSReport.Issues, "Missing Skills section")
	}
}
