package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vida-likes/internal/config"
	"vida-likes/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var producer *kafka.Writer

// 点赞事件动作
const (
	LikeActionAdded   = "video_like"
	LikeActionRemoved = "video_unlike"
)

// LikeEvent 点赞事件消息体，只在事务提交且点赞关系真正变化后发送
type LikeEvent struct {
	EventID    string    `json:"event_id"`
	Action     string    `json:"action"`
	VideoID    int64     `json:"video_id"`
	UserID     int64     `json:"user_id"`
	TotalLikes int64     `json:"total_likes"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Key 同一视频的事件进入同一分区，保证消费顺序
func (e *LikeEvent) Key() string {
	return fmt.Sprintf("video-%d", e.VideoID)
}

// InitProducer 初始化 Kafka 生产者
func InitProducer(cfg *config.KafkaConfig) error {
	if len(cfg.Brokers) == 0 {
		return fmt.Errorf("kafka brokers is empty")
	}

	producer = &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
	)

	return nil
}

// LikeEventPublisher 把点赞事件写入指定 topic
type LikeEventPublisher struct {
	topic string
}

func NewLikeEventPublisher(topic string) *LikeEventPublisher {
	return &LikeEventPublisher{topic: topic}
}

// PublishLikeEvent 发送点赞事件
func (p *LikeEventPublisher) PublishLikeEvent(ctx context.Context, event *LikeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal like event: %w", err)
	}

	if err := SendRaw(ctx, p.topic, event.Key(), payload); err != nil {
		return err
	}

	logger.Debug("Like event sent",
		zap.String("event_id", event.EventID),
		zap.String("action", event.Action),
		zap.Int64("video_id", event.VideoID),
		zap.String("topic", p.topic),
	)
	return nil
}

// SendRaw 发送原始消息到指定 topic
func SendRaw(ctx context.Context, topic, key string, value []byte) error {
	if producer == nil {
		return fmt.Errorf("kafka producer not initialized")
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	}

	if err := producer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send kafka message: %w", err)
	}
	return nil
}

// CloseProducer 关闭生产者
func CloseProducer() error {
	if producer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return producer.Close()
}
