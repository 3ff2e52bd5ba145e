package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/linkmart/internal/config"
	"github.com/linkmart/internal/models"

	"github.com/segmentio/kafka-go"
)

// Publisher 分析事件外发接口
type Publisher interface {
	Publish(event *models.AnalyticsEvent) error
	Close() error
}

// KafkaPublisher 基于 Kafka 的分析事件发布器
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher 创建 Kafka 发布器，未启用时返回 nil
func NewKafkaPublisher(cfg *config.AnalyticsConfig) *KafkaPublisher {
	if cfg == nil || !cfg.KafkaEnabled || len(cfg.KafkaBrokers) == 0 {
		return nil
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(cfg.KafkaBrokers...),
			Topic:    cfg.KafkaTopic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// Publish 序列化并写入事件，以 session_id 为分区键
func (p *KafkaPublisher) Publish(event *models.AnalyticsEvent) error {
	if p == nil || p.writer == nil || event == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.SessionID),
		Value: payload,
		Time:  time.Now(),
	})
}

// Close 关闭底层 writer
func (p *KafkaPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
