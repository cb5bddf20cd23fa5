package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	hlog "github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	hertzzerolog "github.com/hertz-contrib/logger/zerolog"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"github.com/spf13/pflag"

	"resume-sense-go/internal/api/handler"
	"resume-sense-go/internal/api/router"
	"resume-sense-go/internal/config"
	"resume-sense-go/internal/logger"
	"resume-sense-go/internal/parser"
	"resume-sense-go/internal/processor"
	"resume-sense-go/internal/scorer"
	"resume-sense-go/internal/storage"
	"resume-sense-go/internal/tracing"
	"resume-sense-go/pkg/ratelimit"
)

func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径(为空时按默认路径查找，找不到则使用内置默认配置)")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", configPath).Msg("加载配置失败")
	}

	logger.Init(logger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})
	// hertz内部日志统一走zerolog
	hlog.SetLogger(hertzzerolog.From(logger.Logger))
	logger.Info().Str("config", configPath).Msg("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := tracing.InitTracerProvider(ctx, &cfg.Tracing)
	if err != nil {
		logger.Warn().Err(err).Msg("追踪初始化失败，继续以无追踪模式运行")
	}

	// 存储是尽力而为依赖: 全部缺失时分析照常工作，只是不持久化/缓存/发事件
	storageManager, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		logger.Warn().Err(err).Msg("存储初始化失败，服务以纯内存模式运行")
		storageManager = nil
	}
	defer func() {
		if storageManager != nil {
			storageManager.Close()
		}
	}()

	extractor, err := parser.NewEinoPDFTextExtractor(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("创建PDF提取器失败")
	}

	// 评分策略在启动时确定一次: 模型工件加载成功用ml_model，否则规则打分
	qualityScorer := scorer.NewQualityScorer(cfg.Scorer.ModelPath)

	opts := []processor.Option{
		processor.WithMatcherConfig(cfg.Analyzer.ImportantKeywordLimit, cfg.Analyzer.GeneralOverlapWeight),
		processor.WithFindingLimit(cfg.Analyzer.FindingLimit),
	}
	if storageManager != nil {
		if storageManager.MySQL != nil {
			opts = append(opts, processor.WithStore(storageManager.MySQL))
		}
		if storageManager.Redis != nil {
			opts = append(opts, processor.WithReportCache(storageManager.Redis))
		}
		if storageManager.RabbitMQ != nil {
			opts = append(opts, processor.WithEventPublisher(storageManager.RabbitMQ))
		}
	}
	orchestrator := processor.NewOrchestrator(qualityScorer, opts...)

	analysisHandler := handler.NewAnalysisHandler(cfg, storageManager, orchestrator, extractor)

	tracer, tracerCfg := hertztracing.NewServerTracer()
	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
		tracer,
	)
	h.Use(hertztracing.ServerMiddleware(tracerCfg))

	if cfg.Server.RateLimitQPM > 0 {
		bucket := ratelimit.NewTokenBucket(cfg.Server.RateLimitQPM, 0)
		h.Use(func(c context.Context, ctx *app.RequestContext) {
			if !bucket.Allow() {
				ctx.AbortWithStatusJSON(consts.StatusTooManyRequests, utils.H{"error": "请求过于频繁，请稍后重试"})
				return
			}
			ctx.Next(c)
		})
	}

	router.RegisterRoutes(h, analysisHandler)
	logger.Info().Str("address", cfg.Server.Address).Msg("HTTP服务器启动中")

	go func() {
		if err := h.Run(); err != nil {
			logger.Fatal().Err(err).Msg("启动HTTP服务器失败")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("接收到终止信号，正在优雅退出")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP服务器关闭失败")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("追踪导出器关闭失败")
	}
	logger.Info().Msg("优雅退出完成")
}
