package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/route"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-sense-go/internal/api/handler"
	"resume-sense-go/internal/api/router"
	"resume-sense-go/internal/config"
	"resume-sense-go/internal/processor"
	"resume-sense-go/internal/scorer"
)

const testResumeText = `Summary
Software engineer with python experience.
Experience
Developed services that reduced latency by 30%.
Education
B.S. Computer Science
Skills
Python, Docker, SQL`

// newTestEngine 构建仅含内存编排器的测试引擎，不依赖任何外部服务
func newTestEngine(t *testing.T) *route.Engine {
	t.Helper()

	orchestrator := processor.NewOrchestrator(scorer.NewQualityScorer(""))
	analysisHandler := handler.NewAnalysisHandler(&config.Config{}, nil, orchestrator, nil)

	h := server.Default(server.WithHostPorts("127.0.0.1:0"))
	router.RegisterRoutes(h, analysisHandler)
	return h.Engine
}

// performForm 以表单编码发送POST请求
func performForm(engine *route.Engine, path string, form url.Values) *ut.ResponseRecorder {
	body := form.Encode()
	return ut.PerformRequest(engine, "POST", path,
		&ut.Body{Body: strings.NewReader(body), Len: len(body)},
		ut.Header{Key: "Content-Type", Value: "application/x-www-form-urlencoded"},
	)
}

func TestHandleAnalyzeWithText(t *testing.T) {
	engine := newTestEngine(t)

	form := url.Values{}
	form.Set("resume_text", testResumeText)
	resp := performForm(engine, "/api/v1/analyze", form)
	require.Equal(t, http.StatusOK, resp.Code)

	raw := resp.Body.String()
	// 无JD时: match_score/job_id显式null，match_details整体缺省
	assert.Contains(t, raw, `"match_score":null`)
	assert.Contains(t, raw, `"job_id":null`)
	assert.NotContains(t, raw, `"match_details"`)

	var report map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &report))
	assert.Contains(t, report, "ats_score")
	assert.Contains(t, report, "quality_score")
	assert.Contains(t, report, "ats_report")
	assert.Contains(t, report, "power_verbs")
	assert.Contains(t, report, "quality_details")
	// 未配置存储，分析不持久化
	assert.Nil(t, report["analysis_id"])
}

func TestHandleAnalyzeWithJD(t *testing.T) {
	engine := newTestEngine(t)

	form := url.Values{}
	form.Set("resume_text", testResumeText)
	form.Set("job_description", "Looking for a python engineer with docker and kubernetes skills.")
	resp := performForm(engine, "/api/v1/analyze", form)
	require.Equal(t, http.StatusOK, resp.Code)

	var report map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &report))
	assert.NotNil(t, report["match_score"], "提供JD时match_score应有值")
	assert.Contains(t, report, "match_details")
}

func TestHandleAnalyzeEmptyInput(t *testing.T) {
	engine := newTestEngine(t)

	resp := performForm(engine, "/api/v1/analyze", url.Values{})
	require.Equal(t, http.StatusBadRequest, resp.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Contains(t, body, "error")
}

func TestHandleAnalyzeUploadWithoutExtractor(t *testing.T) {
	engine := newTestEngine(t)

	// PDF上传路径在提取器未装配时应返回400而不是崩溃
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("resume_file", "resume.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 fake"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	resp := ut.PerformRequest(engine, "POST", "/api/v1/analyze",
		&ut.Body{Body: body, Len: body.Len()},
		ut.Header{Key: "Content-Type", Value: writer.FormDataContentType()},
	)
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHandleInsights(t *testing.T) {
	engine := newTestEngine(t)

	form := url.Values{}
	form.Set("resume_text", testResumeText)
	resp := performForm(engine, "/api/v1/insights", form)
	require.Equal(t, http.StatusOK, resp.Code)

	var insights map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &insights))
	assert.Contains(t, insights, "projects")
	assert.Contains(t, insights, "achievements")
}

func TestHandleHistoryWithoutStorage(t *testing.T) {
	engine := newTestEngine(t)

	resp := ut.PerformRequest(engine, "GET", "/api/v1/history", nil)
	require.Equal(t, http.StatusServiceUnavailable, resp.Code)
}

func TestHandleHealth(t *testing.T) {
	engine := newTestEngine(t)

	resp := ut.PerformRequest(engine, "GET", "/api/v1/health", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"status":"ok"}`, resp.Body.String())
}
