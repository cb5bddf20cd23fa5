package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"resume-sense-go/internal/config"
	"resume-sense-go/internal/logger"
	"resume-sense-go/internal/types"
)

// RabbitMQ 分析事件发布器
// 实现 processor.EventPublisher，向topic交换机广播analysis.completed事件
type RabbitMQ struct {
	conn        *amqp.Connection
	channelPool sync.Pool
	cfg         *config.RabbitMQConfig
}

// NewRabbitMQ 建立连接并声明分析事件交换机
func NewRabbitMQ(cfg *config.RabbitMQConfig) (*RabbitMQ, error) {
	if cfg == nil {
		return nil, fmt.Errorf("RabbitMQ配置不能为空")
	}
	if cfg.URL == "" {
		return nil, fmt.Errorf("RabbitMQ URL配置不能为空")
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("无法连接到RabbitMQ服务器: %w", err)
	}

	mq := &RabbitMQ{conn: conn, cfg: cfg}
	mq.channelPool = sync.Pool{
		New: func() interface{} {
			ch, chErr := conn.Channel()
			if chErr != nil {
				logger.Warn().Err(chErr).Msg("创建RabbitMQ通道失败")
				return nil
			}
			return ch
		},
	}

	// 声明持久化topic交换机，消费端自行绑定队列
	ch := mq.getChannel()
	if ch == nil {
		conn.Close()
		return nil, fmt.Errorf("无法创建RabbitMQ通道")
	}
	if err := ch.ExchangeDeclare(cfg.AnalysisEventsExchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("声明交换机 %s 失败: %w", cfg.AnalysisEventsExchange, err)
	}
	mq.putChannel(ch)

	logger.Info().
		Str("exchange", cfg.AnalysisEventsExchange).
		Msg("RabbitMQ连接成功")
	return mq, nil
}

func (r *RabbitMQ) getChannel() *amqp.Channel {
	ch := r.channelPool.Get()
	if ch == nil {
		newCh, err := r.conn.Channel()
		if err != nil {
			logger.Warn().Err(err).Msg("创建新RabbitMQ通道失败")
			return nil
		}
		return newCh
	}
	c := ch.(*amqp.Channel)
	if c.IsClosed() {
		newCh, err := r.conn.Channel()
		if err != nil {
			logger.Warn().Err(err).Msg("重建RabbitMQ通道失败")
			return nil
		}
		return newCh
	}
	return c
}

func (r *RabbitMQ) putChannel(ch *amqp.Channel) {
	if ch != nil {
		r.channelPool.Put(ch)
	}
}

// Close 关闭连接
func (r *RabbitMQ) Close() error {
	return r.conn.Close()
}

// PublishAnalysisCompleted 发布分析完成事件(持久化JSON消息)
func (r *RabbitMQ) PublishAnalysisCompleted(ctx context.Context, event *types.AnalysisCompletedEvent) error {
	if event == nil {
		return fmt.Errorf("事件不能为空")
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("序列化分析事件失败: %w", err)
	}

	ch := r.getChannel()
	if ch == nil {
		return fmt.Errorf("无法获取RabbitMQ通道")
	}
	defer r.putChannel(ch)

	err = ch.PublishWithContext(ctx,
		r.cfg.AnalysisEventsExchange,
		r.cfg.AnalysisCompletedRouting,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			MessageId:    event.AnalysisID,
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("发布分析事件失败: %w", err)
	}

	logger.Ctx(ctx).Debug().
		Str("analysis_id", event.AnalysisID).
		Str("routing_key", r.cfg.AnalysisCompletedRouting).
		Msg("分析完成事件已发布")
	return nil
}
