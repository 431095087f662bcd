package service

import (
	"context"
	"time"

	"vida-likes/internal/api/dto"
	"vida-likes/internal/repository"
	"vida-likes/pkg/logger"

	"go.uber.org/zap"
)

// 统计策略，两种策略结果必须一致
const (
	StrategySubquery = "subquery"
	StrategyGroupBy  = "group_by"
)

// StatsCache 统计结果缓存
type StatsCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

type StatisticsService struct {
	stats *repository.StatisticsRepository
	cache StatsCache
	ttl   time.Duration
}

// NewStatisticsService cache 为 nil 或 ttl <= 0 时不缓存
func NewStatisticsService(stats *repository.StatisticsRepository, cache StatsCache, ttl time.Duration) *StatisticsService {
	return &StatisticsService{stats: stats, cache: cache, ttl: ttl}
}

// BySubquery 每个用户已发布视频的点赞总数（相关子查询）
func (s *StatisticsService) BySubquery(ctx context.Context) (*dto.StatisticsData, error) {
	return s.compute(ctx, StrategySubquery, s.stats.LikesSumBySubquery)
}

// ByGroupBy 每个用户已发布视频的点赞总数（分组聚合）
func (s *StatisticsService) ByGroupBy(ctx context.Context) (*dto.StatisticsData, error) {
	return s.compute(ctx, StrategyGroupBy, s.stats.LikesSumByGroupBy)
}

func (s *StatisticsService) cacheEnabled() bool {
	return s.cache != nil && s.ttl > 0
}

func (s *StatisticsService) compute(
	ctx context.Context,
	strategy string,
	query func(context.Context) ([]repository.UserLikesSum, error),
) (*dto.StatisticsData, error) {
	key := "likes_sum:" + strategy

	if s.cacheEnabled() {
		var cached dto.StatisticsData
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.Ctx(ctx).Warn("Read statistics cache failed", zap.String("strategy", strategy), zap.Error(err))
		} else if hit {
			return &cached, nil
		}
	}

	rows, err := query(ctx)
	if err != nil {
		return nil, err
	}

	data := &dto.StatisticsData{
		Strategy: strategy,
		Items:    make([]dto.UserLikesStat, 0, len(rows)),
	}
	for _, r := range rows {
		data.Items = append(data.Items, dto.UserLikesStat{Username: r.Username, LikesSum: r.LikesSum})
	}

	if s.cacheEnabled() {
		if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
			logger.Ctx(ctx).Warn("Write statistics cache failed", zap.String("strategy", strategy), zap.Error(err))
		}
	}
	return data, nil
}
