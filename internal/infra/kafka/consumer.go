package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vida-likes/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// LikeEventHandler 处理点赞事件的回调函数
type LikeEventHandler func(ctx context.Context, event *LikeEvent) error

// DecodeLikeEvent 解析点赞事件消息体
func DecodeLikeEvent(value []byte) (*LikeEvent, error) {
	var event LikeEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal like event: %w", err)
	}
	if event.VideoID <= 0 {
		return nil, fmt.Errorf("like event without video_id")
	}
	return &event, nil
}

// StartLikeEventConsumer 启动点赞事件消费者（阻塞，需在 goroutine 中运行）
// ctx 取消后会自动停止
func StartLikeEventConsumer(ctx context.Context, brokers []string, topic, groupID string, handler LikeEventHandler) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		StartOffset:    kafka.FirstOffset,
	})

	defer func() {
		if err := reader.Close(); err != nil {
			logger.Error("Failed to close kafka consumer", zap.Error(err))
		}
		logger.Info("Kafka like event consumer stopped")
	}()

	logger.Info("Kafka like event consumer started",
		zap.String("topic", topic),
		zap.String("group", groupID),
	)

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("Failed to read kafka message", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		event, err := DecodeLikeEvent(msg.Value)
		if err != nil {
			logger.Error("Skip malformed like event",
				zap.Error(err),
				zap.ByteString("value", msg.Value),
			)
			continue
		}

		logger.Debug("Received like event",
			zap.String("event_id", event.EventID),
			zap.Int64("video_id", event.VideoID),
			zap.String("action", event.Action),
		)

		if err := handler(ctx, event); err != nil {
			logger.Error("Failed to handle like event",
				zap.Int64("video_id", event.VideoID),
				zap.Error(err),
			)
		}
	}
}
