// Package handler 实现HTTP请求到分析流水线的适配
package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"go.opentelemetry.io/otel/trace"

	"resume-sense-go/internal/analyzer"
	"resume-sense-go/internal/config"
	"resume-sense-go/internal/constants"
	"resume-sense-go/internal/logger"
	"resume-sense-go/internal/processor"
	"resume-sense-go/internal/storage"
	"resume-sense-go/internal/tracing"
	pkgutils "resume-sense-go/pkg/utils"
)

// defaultMaxUploadSize 未配置时的上传大小上限
const defaultMaxUploadSize = 10 * 1024 * 1024

// AnalysisHandler 分析接口处理器
// storage与extractor均可为nil: 对应能力降级而非拒绝服务
type AnalysisHandler struct {
	cfg          *config.Config
	storage      *storage.Storage
	orchestrator *processor.Orchestrator
	extractor    processor.TextExtractor
}

// NewAnalysisHandler 创建分析接口处理器
func NewAnalysisHandler(
	cfg *config.Config,
	storage *storage.Storage,
	orchestrator *processor.Orchestrator,
	extractor processor.TextExtractor,
) *AnalysisHandler {
	return &AnalysisHandler{
		cfg:          cfg,
		storage:      storage,
		orchestrator: orchestrator,
		extractor:    extractor,
	}
}

// maxUploadSize 上传文件大小上限
func (h *AnalysisHandler) maxUploadSize() int64 {
	if h.cfg != nil && h.cfg.Server.MaxUploadSize > 0 {
		return h.cfg.Server.MaxUploadSize
	}
	return defaultMaxUploadSize
}

// resolveResumeText 从请求中解析简历文本
// 优先取resume_file(PDF)提取文本，否则取resume_text表单字段
// 返回的fileBytes仅在PDF上传路径非空，供后续归档
func (h *AnalysisHandler) resolveResumeText(ctx context.Context, c *app.RequestContext) (string, []byte, error) {
	fileHeader, err := c.FormFile("resume_file")
	if err == nil && fileHeader != nil {
		if fileHeader.Size > h.maxUploadSize() {
			return "", nil, analyzer.NewExtractionError(
				fmt.Sprintf("上传文件过大 (%d字节，上限%d字节)", fileHeader.Size, h.maxUploadSize()))
		}
		if h.extractor == nil {
			return "", nil, analyzer.NewExtractionError("PDF提取器未初始化")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return "", nil, analyzer.NewExtractionError(fmt.Sprintf("打开上传文件失败: %v", err))
		}
		defer file.Close()

		fileBytes, err := io.ReadAll(file)
		if err != nil {
			return "", nil, analyzer.NewExtractionError(fmt.Sprintf("读取上传文件失败: %v", err))
		}

		text, err := h.extractor.ExtractTextFromReader(ctx, bytes.NewReader(fileBytes), fileHeader.Filename)
		if err != nil {
			return "", nil, err
		}
		return text, fileBytes, nil
	}

	return c.PostForm("resume_text"), nil, nil
}

// HandleAnalyze 处理 POST /api/v1/analyze
func (h *AnalysisHandler) HandleAnalyze(ctx context.Context, c *app.RequestContext) {
	resumeText, fileBytes, err := h.resolveResumeText(ctx, c)
	if err != nil {
		h.respondError(ctx, c, err)
		return
	}
	jdText := c.PostForm("job_description")

	report, err := h.orchestrator.Analyze(ctx, resumeText, jdText)
	if err != nil {
		h.respondError(ctx, c, err)
		return
	}

	// PDF上传路径: 原始文件归档(尽力而为，失败不影响响应)
	if fileBytes != nil && report.ResumeID != "" {
		h.archiveOriginal(ctx, report.ResumeID, fileBytes)
	}

	c.JSON(consts.StatusOK, report)
}

// HandleInsights 处理 POST /api/v1/insights
func (h *AnalysisHandler) HandleInsights(ctx context.Context, c *app.RequestContext) {
	resumeText, _, err := h.resolveResumeText(ctx, c)
	if err != nil {
		h.respondError(ctx, c, err)
		return
	}

	insights, err := h.orchestrator.Insights(ctx, resumeText)
	if err != nil {
		h.respondError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, insights)
}

// HandleHistory 处理 GET /api/v1/history?limit=N
func (h *AnalysisHandler) HandleHistory(ctx context.Context, c *app.RequestContext) {
	if h.storage == nil || h.storage.MySQL == nil {
		c.JSON(consts.StatusServiceUnavailable, utils.H{"error": "历史记录存储不可用"})
		return
	}

	limit := constants.DefaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(consts.StatusBadRequest, utils.H{"error": "limit必须是正整数"})
			return
		}
		limit = parsed
	}

	items, err := h.storage.MySQL.GetHistory(ctx, limit)
	if err != nil {
		h.respondError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, utils.H{"history": items, "count": len(items)})
}

// HandleGetResume 处理 GET /api/v1/resume/:id
func (h *AnalysisHandler) HandleGetResume(ctx context.Context, c *app.RequestContext) {
	if h.storage == nil || h.storage.MySQL == nil {
		c.JSON(consts.StatusServiceUnavailable, utils.H{"error": "简历存储不可用"})
		return
	}

	record, err := h.storage.MySQL.GetResume(ctx, c.Param("id"))
	if err != nil {
		h.respondError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, utils.H{
		"resume_id":  record.ResumeID,
		"text":       record.RawText,
		"created_at": record.CreatedAt,
	})
}

// HandleGetAnalysis 处理 GET /api/v1/analysis/:id
func (h *AnalysisHandler) HandleGetAnalysis(ctx context.Context, c *app.RequestContext) {
	if h.storage == nil || h.storage.MySQL == nil {
		c.JSON(consts.StatusServiceUnavailable, utils.H{"error": "分析结果存储不可用"})
		return
	}

	report, err := h.storage.MySQL.GetAnalysis(ctx, c.Param("id"))
	if err != nil {
		h.respondError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, report)
}

// HandleHealth 处理 GET /api/v1/health
func (h *AnalysisHandler) HandleHealth(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, utils.H{"status": "ok"})
}

// archiveOriginal 归档原始PDF并回填对象键
// 同一文件(按MD5)只归档一次
func (h *AnalysisHandler) archiveOriginal(ctx context.Context, resumeID string, fileBytes []byte) {
	if h.storage == nil || h.storage.MinIO == nil {
		return
	}

	if h.storage.Redis != nil {
		md5Hex := pkgutils.CalculateMD5(fileBytes)
		seen, err := h.storage.Redis.CheckAndAddFileMD5(ctx, md5Hex)
		if err != nil {
			logger.Ctx(ctx).Warn().Err(err).Msg("文件去重检查失败，继续归档")
		} else if seen {
			logger.Ctx(ctx).Debug().Str("md5", md5Hex).Msg("重复文件，跳过归档")
			return
		}
	}

	objectKey, err := h.storage.MinIO.UploadOriginal(ctx, resumeID, fileBytes)
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("resume_id", resumeID).Msg("原始简历归档失败")
		return
	}
	if h.storage.MySQL != nil {
		if err := h.storage.MySQL.UpdateResumeObjectKey(ctx, resumeID, objectKey); err != nil {
			logger.Ctx(ctx).Warn().Err(err).Str("resume_id", resumeID).Msg("回填简历对象键失败")
		}
	}
}

// respondError 统一的错误到HTTP状态码映射
// 输入类错误返回400，未找到返回404，其余一律500且不透出内部细节
func (h *AnalysisHandler) respondError(ctx context.Context, c *app.RequestContext, err error) {
	span := trace.SpanFromContext(ctx)
	switch {
	case errors.Is(err, analyzer.ErrEmptyInput), errors.Is(err, analyzer.ErrExtractionFailed):
		tracing.RecordHTTPError(span, err, consts.StatusBadRequest)
		c.JSON(consts.StatusBadRequest, utils.H{"error": err.Error()})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(consts.StatusNotFound, utils.H{"error": "记录不存在"})
	default:
		logger.Ctx(ctx).Error().Err(err).Msg("请求处理失败")
		tracing.RecordHTTPError(span, err, consts.StatusInternalServerError)
		c.JSON(consts.StatusInternalServerError, utils.H{"error": "internal server error"})
	}
}
