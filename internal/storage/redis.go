package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"resume-sense-go/internal/config"
	"resume-sense-go/internal/constants"
	"resume-sense-go/internal/logger"
	"resume-sense-go/internal/types"
)

// Redis 键值存储适配层: 报告缓存与上传去重
// 实现 processor.ReportCache
type Redis struct {
	client *redis.Client
	cfg    *config.RedisConfig
}

// NewRedisAdapter 创建Redis客户端并装配OpenTelemetry追踪钩子
func NewRedisAdapter(cfg *config.RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("Redis配置不能为空")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  time.Duration(cfg.DialTimeoutSeconds) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("连接Redis失败 (%s): %w", cfg.Address, err)
	}

	if err := redisotel.InstrumentTracing(client); err != nil {
		logger.Warn().Err(err).Msg("Redis追踪钩子装配失败，继续以无追踪模式运行")
	}

	logger.Info().Str("address", cfg.Address).Msg("Redis连接成功")
	return &Redis{client: client, cfg: cfg}, nil
}

// Close 关闭Redis连接
func (r *Redis) Close() error {
	return r.client.Close()
}

// Ping 健康检查
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// reportCacheExpire 报告缓存过期时间
func (r *Redis) reportCacheExpire() time.Duration {
	if r.cfg.ReportCacheExpireHours > 0 {
		return time.Duration(r.cfg.ReportCacheExpireHours) * time.Hour
	}
	return constants.AnalysisResultCacheDuration
}

// reportKey 组合报告缓存键: app:analysis:report:{resumeMD5}:{jdMD5}
func reportKey(resumeMD5, jdMD5 string) string {
	return fmt.Sprintf(constants.KeyAnalysisReport, resumeMD5, jdMD5)
}

// GetReport 查询缓存的分析报告，未命中返回 (nil, nil)
func (r *Redis) GetReport(ctx context.Context, resumeMD5, jdMD5 string) (*types.AnalysisReport, error) {
	data, err := r.client.Get(ctx, reportKey(resumeMD5, jdMD5)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取报告缓存失败: %w", err)
	}

	var report types.AnalysisReport
	if err := json.Unmarshal(data, &report); err != nil {
		// 缓存内容损坏按未命中处理，同时删除脏数据
		logger.Ctx(ctx).Warn().Err(err).Msg("报告缓存内容损坏，已丢弃")
		r.client.Del(ctx, reportKey(resumeMD5, jdMD5))
		return nil, nil
	}
	return &report, nil
}

// SetReport 写入分析报告缓存
func (r *Redis) SetReport(ctx context.Context, resumeMD5, jdMD5 string, report *types.AnalysisReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("序列化报告失败: %w", err)
	}
	if err := r.client.Set(ctx, reportKey(resumeMD5, jdMD5), data, r.reportCacheExpire()).Err(); err != nil {
		return fmt.Errorf("写入报告缓存失败: %w", err)
	}
	return nil
}

// CheckAndAddFileMD5 原子地检查并登记上传文件的MD5
// 返回true表示该文件此前已上传过
func (r *Redis) CheckAndAddFileMD5(ctx context.Context, md5Hex string) (bool, error) {
	added, err := r.client.SAdd(ctx, constants.KeyFileMD5Set, md5Hex).Result()
	if err != nil {
		return false, fmt.Errorf("登记文件MD5失败: %w", err)
	}
	return added == 0, nil
}

// RemoveFileMD5 从去重集合中移除MD5(处理失败后允许重新上传)
func (r *Redis) RemoveFileMD5(ctx context.Context, md5Hex string) error {
	if err := r.client.SRem(ctx, constants.KeyFileMD5Set, md5Hex).Err(); err != nil {
		return fmt.Errorf("移除文件MD5失败: %w", err)
	}
	return nil
}
