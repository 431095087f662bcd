package service

import (
	"context"
	"errors"
	"time"

	"vida-likes/internal/api/dto"
	infraKafka "vida-likes/internal/infra/kafka"
	"vida-likes/internal/repository"
	"vida-likes/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// 点赞操作结果，全部是成功结果
const (
	LikeStatusCreated       = "created"
	LikeStatusAlreadyExists = "already_exists"
	LikeStatusRemoved       = "removed"
	LikeStatusNotLiked      = "not_liked"
)

const publishTimeout = 3 * time.Second

// LikeEventPublisher 点赞事件发布者
type LikeEventPublisher interface {
	PublishLikeEvent(ctx context.Context, event *infraKafka.LikeEvent) error
}

type LikeService struct {
	store     *repository.Store
	counter   *LikeCounter
	publisher LikeEventPublisher
}

// NewLikeService publisher 可以为 nil（不发送点赞事件）
func NewLikeService(store *repository.Store, counter *LikeCounter, publisher LikeEventPublisher) *LikeService {
	return &LikeService{store: store, counter: counter, publisher: publisher}
}

// AddLike 点赞已发布视频，重复点赞返回 already_exists，点赞数不变
func (s *LikeService) AddLike(ctx context.Context, userID, videoID int64) (*dto.LikeResult, error) {
	result := &dto.LikeResult{VideoID: videoID}

	err := s.store.WithinTx(ctx, func(tx *repository.Tx) error {
		// 锁住视频行，同一视频的点赞操作串行，重算时能看到所有已提交的点赞
		video, err := tx.Videos.LockByID(ctx, videoID, repository.Published)
		if err != nil {
			return err
		}

		if _, err := tx.Likes.Insert(ctx, videoID, userID); err != nil {
			if errors.Is(err, repository.ErrConstraintViolation) {
				result.Status = LikeStatusAlreadyExists
				result.TotalLikes = video.TotalLikes
				return nil
			}
			return err
		}

		total, err := s.counter.Recount(ctx, tx, videoID)
		if err != nil {
			return err
		}
		result.Status = LikeStatusCreated
		result.TotalLikes = total
		return nil
	})
	if err != nil {
		return nil, s.translate(ctx, err, videoID, userID)
	}

	if result.Status == LikeStatusCreated {
		s.publish(ctx, infraKafka.LikeActionAdded, userID, result)
	}
	return result, nil
}

// RemoveLike 取消点赞，本来就没有点赞时返回 not_liked
func (s *LikeService) RemoveLike(ctx context.Context, userID, videoID int64) (*dto.LikeResult, error) {
	result := &dto.LikeResult{VideoID: videoID}

	err := s.store.WithinTx(ctx, func(tx *repository.Tx) error {
		video, err := tx.Videos.LockByID(ctx, videoID, repository.Published)
		if err != nil {
			return err
		}

		deleted, err := tx.Likes.Delete(ctx, videoID, userID)
		if err != nil {
			return err
		}
		if deleted == 0 {
			result.Status = LikeStatusNotLiked
			result.TotalLikes = video.TotalLikes
			return nil
		}

		total, err := s.counter.Recount(ctx, tx, videoID)
		if err != nil {
			return err
		}
		result.Status = LikeStatusRemoved
		result.TotalLikes = total
		return nil
	})
	if err != nil {
		return nil, s.translate(ctx, err, videoID, userID)
	}

	if result.Status == LikeStatusRemoved {
		s.publish(ctx, infraKafka.LikeActionRemoved, userID, result)
	}
	return result, nil
}

// EnsureLikeable 视频存在且已发布时返回 nil，否则返回 ErrVideoNotFound
// 匿名请求据此决定返回 404 还是 401
func (s *LikeService) EnsureLikeable(ctx context.Context, videoID int64) error {
	if _, err := s.store.Videos.GetByID(ctx, videoID, repository.Published); err != nil {
		return s.translate(ctx, err, videoID, 0)
	}
	return nil
}

func (s *LikeService) translate(ctx context.Context, err error, videoID, userID int64) error {
	if errors.Is(err, repository.ErrNotFound) {
		// 不存在和未发布对外都是 404
		logger.Ctx(ctx).Debug("Like target missing or unpublished",
			zap.Int64("video_id", videoID),
			zap.Int64("user_id", userID),
		)
		return ErrVideoNotFound
	}
	return err
}

// publish 事务提交后尽力发送，失败只记日志
func (s *LikeService) publish(ctx context.Context, action string, userID int64, result *dto.LikeResult) {
	if s.publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event := &infraKafka.LikeEvent{
		EventID:    uuid.NewString(),
		Action:     action,
		VideoID:    result.VideoID,
		UserID:     userID,
		TotalLikes: result.TotalLikes,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishLikeEvent(ctx, event); err != nil {
		logger.Ctx(ctx).Warn("Publish like event failed",
			zap.String("event_id", event.EventID),
			zap.Int64("video_id", event.VideoID),
			zap.Error(err),
		)
	}
}
