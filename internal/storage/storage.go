// Package storage 聚合MySQL/Redis/MinIO/RabbitMQ四类存储后端
// 分析流水线对存储全部是尽力而为依赖: 某个后端缺失只降级对应能力
package storage

import (
	"context"
	"fmt"
	"strings"

	"resume-sense-go/internal/config"
	"resume-sense-go/internal/logger"
)

// Storage 存储管理器
type Storage struct {
	// 关系型数据库: 简历/JD/分析结果持久化
	MySQL *MySQL

	// 键值存储: 报告缓存与上传去重
	Redis *Redis

	// 对象存储: 原始PDF归档
	MinIO *MinIO

	// 消息队列: 分析完成事件
	RabbitMQ *RabbitMQ
}

// NewStorage 按配置初始化各存储组件
// 单个组件失败记录警告并继续，全部失败才返回错误
func NewStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	if cfg == nil {
		return nil, fmt.Errorf("配置不能为空")
	}

	storage := &Storage{}
	var err error
	var initErrors []string

	if cfg.MySQL.Host != "" {
		storage.MySQL, err = NewMySQL(&cfg.MySQL)
		if err != nil {
			logger.Warn().Err(err).Msg("初始化MySQL失败，分析结果将不会持久化")
			initErrors = append(initErrors, fmt.Sprintf("MySQL: %v", err))
		}
	} else {
		logger.Info().Msg("MySQL未配置，跳过初始化")
	}

	if cfg.Redis.Address != "" {
		storage.Redis, err = NewRedisAdapter(&cfg.Redis)
		if err != nil {
			logger.Warn().Err(err).Msg("初始化Redis失败，报告缓存不可用")
			initErrors = append(initErrors, fmt.Sprintf("Redis: %v", err))
		}
	} else {
		logger.Info().Msg("Redis未配置，跳过初始化")
	}

	if cfg.MinIO.Endpoint != "" {
		storage.MinIO, err = NewMinIO(&cfg.MinIO)
		if err != nil {
			logger.Warn().Err(err).Msg("初始化MinIO失败，原始文件不会归档")
			initErrors = append(initErrors, fmt.Sprintf("MinIO: %v", err))
		}
	} else {
		logger.Info().Msg("MinIO未配置，跳过初始化")
	}

	if cfg.RabbitMQ.URL != "" {
		storage.RabbitMQ, err = NewRabbitMQ(&cfg.RabbitMQ)
		if err != nil {
			logger.Warn().Err(err).Msg("初始化RabbitMQ失败，分析事件不会发布")
			initErrors = append(initErrors, fmt.Sprintf("RabbitMQ: %v", err))
		}
	} else {
		logger.Info().Msg("RabbitMQ未配置，跳过初始化")
	}

	if storage.MySQL == nil && storage.Redis == nil && storage.MinIO == nil && storage.RabbitMQ == nil {
		return nil, fmt.Errorf("所有存储组件初始化失败: %s", strings.Join(initErrors, "; "))
	}

	if len(initErrors) > 0 {
		logger.Warn().Str("errors", strings.Join(initErrors, "; ")).Msg("部分存储组件初始化失败，服务以降级模式运行")
	}
	return storage, nil
}

// Close 关闭所有连接
func (s *Storage) Close() {
	if s.RabbitMQ != nil {
		if err := s.RabbitMQ.Close(); err != nil {
			logger.Warn().Err(err).Msg("关闭RabbitMQ连接失败")
		}
	}
	if s.MySQL != nil {
		if err := s.MySQL.Close(); err != nil {
			logger.Warn().Err(err).Msg("关闭MySQL连接失败")
		}
	}
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			logger.Warn().Err(err).Msg("关闭Redis连接失败")
		}
	}
	// MinIO客户端无需显式Close
}
