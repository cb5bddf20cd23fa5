package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"resume-sense-go/internal/config"
	"resume-sense-go/internal/constants"
	"resume-sense-go/internal/logger"
	"resume-sense-go/internal/storage/models"
	"resume-sense-go/internal/tracing"
	"resume-sense-go/internal/types"
	"resume-sense-go/pkg/utils"
)

// ErrNotFound 记录不存在，由API层映射为404
var ErrNotFound = errors.New("record not found")

var mysqlTracer = otel.Tracer("resume-sense/storage/mysql")

// gormSpanKey 在GORM语句上下文中传递span的键
type gormSpanKey struct{}

// GormTracingPlugin GORM插件，为数据库操作生成OpenTelemetry追踪点
type GormTracingPlugin struct {
	tracer trace.Tracer
	dbName string
}

// NewGormTracingPlugin 创建GORM追踪插件
func NewGormTracingPlugin(dbName string) *GormTracingPlugin {
	return &GormTracingPlugin{tracer: mysqlTracer, dbName: dbName}
}

// Name 返回插件名称
func (p *GormTracingPlugin) Name() string {
	return "GormOpenTelemetryPlugin"
}

// Initialize 为全部CRUD回调注册前后钩子
func (p *GormTracingPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	if err := cb.Create().Before("gorm:create").Register("otel:before_create", p.before("CREATE")); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("otel:after_create", p.after()); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register("otel:before_query", p.before("SELECT")); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("otel:after_query", p.after()); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("otel:before_update", p.before("UPDATE")); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("otel:after_update", p.after()); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("otel:before_delete", p.before("DELETE")); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register("otel:after_delete", p.after()); err != nil {
		return err
	}
	if err := cb.Row().Before("gorm:row").Register("otel:before_row", p.before("ROW")); err != nil {
		return err
	}
	if err := cb.Row().After("gorm:row").Register("otel:after_row", p.after()); err != nil {
		return err
	}
	return nil
}

func (p *GormTracingPlugin) before(operation string) func(db *gorm.DB) {
	return func(db *gorm.DB) {
		ctx := db.Statement.Context
		if ctx == nil {
			ctx = context.Background()
		}
		tableName := db.Statement.Table
		if tableName == "" {
			tableName = "unknown"
		}
		newCtx, span := p.tracer.Start(ctx, fmt.Sprintf("%s %s", operation, tableName),
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				semconv.DBSystemMySQL,
				attribute.String("db.name", p.dbName),
				attribute.String("db.operation", operation),
				attribute.String("db.sql.table", tableName),
			),
		)
		db.Statement.Context = context.WithValue(newCtx, gormSpanKey{}, span)
	}
}

func (p *GormTracingPlugin) after() func(db *gorm.DB) {
	return func(db *gorm.DB) {
		span, ok := db.Statement.Context.Value(gormSpanKey{}).(trace.Span)
		if !ok {
			return
		}
		defer span.End()

		span.SetAttributes(
			attribute.Int64("db.rows_affected", db.Statement.RowsAffected),
			attribute.String("db.statement", tracing.SafeSQL(db.Statement.SQL.String())),
		)
		switch {
		case db.Error == nil:
			span.SetStatus(codes.Ok, "")
		case errors.Is(db.Error, gorm.ErrRecordNotFound):
			// 记录不存在属于正常业务分支，不按错误上报
			span.SetAttributes(attribute.String("error.type", "record_not_found"))
			span.SetStatus(codes.Ok, "record not found")
		default:
			tracing.RecordError(span, db.Error, tracing.ErrorTypeDB)
		}
	}
}

// MySQL 关系数据库适配层
// 实现 processor.AnalysisStore
type MySQL struct {
	db  *gorm.DB
	cfg *config.MySQLConfig
}

// NewMySQL 创建MySQL客户端并自动迁移表结构
func NewMySQL(cfg *config.MySQLConfig) (*MySQL, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MySQL配置不能为空")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%ds",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.ConnectTimeoutSeconds)

	var logLevel gormlogger.LogLevel
	switch cfg.LogLevel {
	case 1:
		logLevel = gormlogger.Silent
	case 2:
		logLevel = gormlogger.Error
	case 3:
		logLevel = gormlogger.Warn
	default:
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormlogger.Default.LogMode(logLevel),
		PrepareStmt:                              true,
	})
	if err != nil {
		return nil, fmt.Errorf("连接MySQL失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	if err := db.Use(NewGormTracingPlugin(cfg.Database)); err != nil {
		return nil, fmt.Errorf("注册追踪插件失败: %w", err)
	}

	if err := db.AutoMigrate(&models.Resume{}, &models.Job{}, &models.AnalysisResult{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("自动迁移数据库结构失败: %w", err)
	}

	logger.Info().Str("database", cfg.Database).Msg("MySQL连接及表结构迁移成功")
	return &MySQL{db: db, cfg: cfg}, nil
}

// DB 返回GORM连接实例
func (m *MySQL) DB() *gorm.DB {
	return m.db
}

// Close 关闭数据库连接
func (m *MySQL) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	return sqlDB.Close()
}

// newUUID 生成UUIDv7(时间有序，利于主键局部性)
func newUUID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("生成UUID失败: %w", err)
	}
	return id.String(), nil
}

// SaveResume 保存简历原文，相同内容幂等返回已有ID
func (m *MySQL) SaveResume(ctx context.Context, text string) (string, error) {
	md5Hex := utils.CalculateMD5([]byte(text))

	var existing models.Resume
	err := m.db.WithContext(ctx).
		Select("resume_id").
		Where("content_md5 = ?", md5Hex).
		First(&existing).Error
	if err == nil {
		return existing.ResumeID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("查询简历指纹失败: %w", err)
	}

	id, err := newUUID()
	if err != nil {
		return "", err
	}
	record := models.Resume{
		ResumeID:   id,
		ContentMD5: md5Hex,
		RawText:    text,
	}
	// 并发下同一份文本可能同时插入，冲突时回退到再查询
	result := m.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&record)
	if result.Error != nil {
		return "", fmt.Errorf("保存简历失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		if err := m.db.WithContext(ctx).
			Select("resume_id").
			Where("content_md5 = ?", md5Hex).
			First(&existing).Error; err != nil {
			return "", fmt.Errorf("简历冲突后再查询失败: %w", err)
		}
		return existing.ResumeID, nil
	}
	return id, nil
}

// SaveJob 保存JD原文，相同内容幂等返回已有ID
func (m *MySQL) SaveJob(ctx context.Context, text string) (string, error) {
	md5Hex := utils.CalculateMD5([]byte(text))

	var existing models.Job
	err := m.db.WithContext(ctx).
		Select("job_id").
		Where("content_md5 = ?", md5Hex).
		First(&existing).Error
	if err == nil {
		return existing.JobID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("查询岗位指纹失败: %w", err)
	}

	id, err := newUUID()
	if err != nil {
		return "", err
	}
	record := models.Job{
		JobID:      id,
		ContentMD5: md5Hex,
		JDText:     text,
	}
	result := m.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&record)
	if result.Error != nil {
		return "", fmt.Errorf("保存岗位失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		if err := m.db.WithContext(ctx).
			Select("job_id").
			Where("content_md5 = ?", md5Hex).
			First(&existing).Error; err != nil {
			return "", fmt.Errorf("岗位冲突后再查询失败: %w", err)
		}
		return existing.JobID, nil
	}
	return id, nil
}

// SaveAnalysis 保存组装好的分析报告，返回分析ID
func (m *MySQL) SaveAnalysis(ctx context.Context, resumeID string, jobID *string, report *types.AnalysisReport) (string, error) {
	id, err := newUUID()
	if err != nil {
		return "", err
	}

	record := models.AnalysisResult{
		AnalysisID:   id,
		ResumeID:     resumeID,
		JobID:        jobID,
		MatchScore:   report.MatchScore,
		ATSScore:     report.ATSScore,
		QualityScore: report.QualityScore,
		ModelUsed:    report.QualityDetails.ModelUsed,
		ReportJSON:   utils.MarshalToJSON(report),
	}
	if err := m.db.WithContext(ctx).Create(&record).Error; err != nil {
		return "", fmt.Errorf("保存分析结果失败: %w", err)
	}
	return id, nil
}

// GetHistory 按创建时间倒序返回最近的分析摘要
func (m *MySQL) GetHistory(ctx context.Context, limit int) ([]types.HistoryItem, error) {
	if limit <= 0 {
		limit = constants.DefaultHistoryLimit
	}
	if limit > constants.MaxHistoryLimit {
		limit = constants.MaxHistoryLimit
	}

	var records []models.AnalysisResult
	err := m.db.WithContext(ctx).
		Preload("Resume").
		Preload("Job").
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("查询分析历史失败: %w", err)
	}

	items := make([]types.HistoryItem, 0, len(records))
	for _, r := range records {
		item := types.HistoryItem{
			ID:           r.AnalysisID,
			ResumeID:     r.ResumeID,
			JobID:        r.JobID,
			MatchScore:   r.MatchScore,
			ATSScore:     utils.Float64Ptr(r.ATSScore),
			QualityScore: utils.Float64Ptr(r.QualityScore),
			CreatedAt:    r.CreatedAt.Format(time.RFC3339),
		}
		if r.Resume != nil {
			item.ResumePreview = utils.TruncateText(r.Resume.RawText, constants.PreviewMaxLen)
		}
		if r.Job != nil {
			item.JDPreview = utils.TruncateText(r.Job.JDText, constants.PreviewMaxLen)
		}
		items = append(items, item)
	}
	return items, nil
}

// GetResume 按ID查询简历原文
func (m *MySQL) GetResume(ctx context.Context, resumeID string) (*models.Resume, error) {
	var record models.Resume
	err := m.db.WithContext(ctx).
		Where("resume_id = ?", resumeID).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("查询简历失败: %w", err)
	}
	return &record, nil
}

// UpdateResumeObjectKey 回填原始文件在对象存储中的路径
// 归档是尽力而为环节，简历行先落库、对象键后补
func (m *MySQL) UpdateResumeObjectKey(ctx context.Context, resumeID, objectKey string) error {
	err := m.db.WithContext(ctx).
		Model(&models.Resume{}).
		Where("resume_id = ?", resumeID).
		Update("original_file_path_oss", objectKey).Error
	if err != nil {
		return fmt.Errorf("更新简历对象键失败: %w", err)
	}
	return nil
}

// GetAnalysis 按ID查询完整分析报告
func (m *MySQL) GetAnalysis(ctx context.Context, analysisID string) (*types.AnalysisReport, error) {
	var record models.AnalysisResult
	err := m.db.WithContext(ctx).
		Where("analysis_id = ?", analysisID).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("查询分析结果失败: %w", err)
	}

	var report types.AnalysisReport
	if err := json.Unmarshal(record.ReportJSON, &report); err != nil {
		return nil, fmt.Errorf("反序列化分析报告失败 (analysis_id=%s): %w", analysisID, err)
	}
	return &report, nil
}
