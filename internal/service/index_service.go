package service

import (
	"context"
	"errors"

	infraKafka "vida-likes/internal/infra/kafka"
	"vida-likes/internal/model"
	"vida-likes/internal/repository"
	"vida-likes/pkg/logger"

	"go.uber.org/zap"
)

// VideoDocIndexer 搜索索引写入端
type VideoDocIndexer interface {
	IndexVideo(ctx context.Context, v *model.Video) error
	DeleteVideo(ctx context.Context, videoID int64) error
	BulkIndexVideos(ctx context.Context, videos []model.Video) (success, failed int, err error)
}

// IndexService 根据点赞事件把视频最新状态同步到搜索索引
type IndexService struct {
	videos  *repository.VideoRepository
	indexer VideoDocIndexer
}

func NewIndexService(videos *repository.VideoRepository, indexer VideoDocIndexer) *IndexService {
	return &IndexService{videos: videos, indexer: indexer}
}

// HandleLikeEvent 重新读取视频再写索引，事件里的 total_likes 只用于日志
// 乱序或重复投递的事件因此不会写入旧值
func (s *IndexService) HandleLikeEvent(ctx context.Context, event *infraKafka.LikeEvent) error {
	video, err := s.videos.GetDetail(ctx, event.VideoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return s.indexer.DeleteVideo(ctx, event.VideoID)
		}
		return err
	}

	if err := s.indexer.IndexVideo(ctx, video); err != nil {
		return err
	}

	logger.Debug("Video reindexed",
		zap.String("event_id", event.EventID),
		zap.Int64("video_id", video.ID),
		zap.Int64("event_total_likes", event.TotalLikes),
		zap.Int64("total_likes", video.TotalLikes),
	)
	return nil
}

// ReindexAll 按批次全量同步所有视频
func (s *IndexService) ReindexAll(ctx context.Context, batchSize int) (int, error) {
	var (
		afterID int64
		synced  int
	)
	for {
		videos, err := s.videos.ListAfter(ctx, afterID, batchSize)
		if err != nil {
			return synced, err
		}
		if len(videos) == 0 {
			break
		}

		success, failed, err := s.indexer.BulkIndexVideos(ctx, videos)
		if err != nil {
			return synced, err
		}
		if failed > 0 {
			logger.Warn("Some videos failed to index", zap.Int("failed", failed))
		}
		synced += success
		afterID = videos[len(videos)-1].ID
	}

	logger.Info("Reindex completed", zap.Int("synced", synced))
	return synced, nil
}
