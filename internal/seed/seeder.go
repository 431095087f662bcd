// Package seed 离线批量生成用户、视频和点赞，最后用一条聚合 UPDATE 校准所有视频的点赞数。
//
// 造数期间独占数据库，不经过点赞计数器，也不保证与线上流量并发时的正确性。
package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"vida-likes/internal/model"
	"vida-likes/internal/repository"
	"vida-likes/pkg/logger"
	"vida-likes/pkg/utils"

	"go.uber.org/zap"
)

// 所有造数用户共用的明文密码
const defaultPassword = "random_password"

var ErrNoUsers = errors.New("no users to own videos")

// Report 造数结果
type Report struct {
	UsersInserted    int64         `json:"users_inserted"`
	VideosInserted   int64         `json:"videos_inserted"`
	LikesAttempted   int64         `json:"likes_attempted"`
	LikesInserted    int64         `json:"likes_inserted"`
	VideosReconciled int64         `json:"videos_reconciled"`
	Duration         time.Duration `json:"duration"`
}

type Seeder struct {
	repo *repository.SeedRepository
	cfg  Config
	rng  *rand.Rand
}

func New(repo *repository.SeedRepository, cfg Config) (*Seeder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := uint64(cfg.RandomSeed)
	if cfg.RandomSeed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return &Seeder{
		repo: repo,
		cfg:  cfg,
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}, nil
}

// Run 依次执行：可选清空、插入用户、插入视频、插入点赞、校准点赞数
func (s *Seeder) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	report := &Report{}

	if s.cfg.ResetBeforeInsert {
		logger.Info("Resetting database")
		if err := s.repo.ResetAll(ctx); err != nil {
			return nil, fmt.Errorf("reset: %w", err)
		}
	}

	var err error
	if report.UsersInserted, err = s.createUsers(ctx); err != nil {
		return nil, fmt.Errorf("create users: %w", err)
	}
	var firstVideoID int64
	if report.VideosInserted, firstVideoID, err = s.createVideos(ctx); err != nil {
		return nil, fmt.Errorf("create videos: %w", err)
	}
	if report.LikesAttempted, report.LikesInserted, err = s.createLikes(ctx, firstVideoID); err != nil {
		return nil, fmt.Errorf("create likes: %w", err)
	}

	if report.VideosReconciled, err = s.repo.ReconcileTotalLikes(ctx); err != nil {
		return nil, fmt.Errorf("reconcile total likes: %w", err)
	}
	logger.Info("Total likes reconciled", zap.Int64("videos", report.VideosReconciled))

	report.Duration = time.Since(start)
	return report, nil
}

func (s *Seeder) createUsers(ctx context.Context) (int64, error) {
	if s.cfg.UserCount == 0 {
		return 0, nil
	}

	// bcrypt 很慢，所有用户共用同一个哈希
	hash, err := utils.HashPassword(defaultPassword)
	if err != nil {
		return 0, err
	}

	var inserted int64
	batch := make([]model.User, 0, s.cfg.BatchSize)
	flush := func() error {
		n, err := s.repo.InsertUsers(ctx, batch, s.cfg.BatchSize)
		if err != nil {
			return err
		}
		inserted += n
		batch = batch[:0]
		return nil
	}

	for i := 0; i < s.cfg.UserCount; i++ {
		batch = append(batch, model.User{
			Username: fmt.Sprintf("user_%d", i),
			Email:    fmt.Sprintf("user_%d@example.com", i),
			Bio:      fmt.Sprintf("bio for user %d", i),
			Password: hash,
		})
		if len(batch) == s.cfg.BatchSize {
			if err := flush(); err != nil {
				return inserted, err
			}
			logger.Info("Users inserted", zap.Int("generated", i+1), zap.Int64("inserted", inserted))
		}
	}
	if len(batch) > 0 {
		if err := flush(); err != nil {
			return inserted, err
		}
	}

	logger.Info("Users created", zap.Int64("inserted", inserted), zap.Int("requested", s.cfg.UserCount))
	return inserted, nil
}

// createVideos 返回插入行数和本轮第一条视频的 ID，没有插入时 ID 为 0
func (s *Seeder) createVideos(ctx context.Context) (inserted, firstID int64, err error) {
	if s.cfg.VideoCount == 0 {
		return 0, 0, nil
	}

	userIDs, err := s.repo.UserIDs(ctx)
	if err != nil {
		return 0, 0, err
	}
	if len(userIDs) == 0 {
		return 0, 0, ErrNoUsers
	}

	batch := make([]model.Video, 0, s.cfg.BatchSize)
	for i := 0; i < s.cfg.VideoCount; i++ {
		batch = append(batch, model.Video{
			OwnerID:     userIDs[s.rng.IntN(len(userIDs))],
			Name:        fmt.Sprintf("Video %d", i),
			IsPublished: s.rng.IntN(2) == 1,
		})
		if len(batch) == s.cfg.BatchSize || i == s.cfg.VideoCount-1 {
			n, err := s.repo.InsertVideos(ctx, batch, s.cfg.BatchSize)
			if err != nil {
				return inserted, firstID, err
			}
			// ID 由序列递增分配，CreateInBatches 会回填
			if firstID == 0 && n > 0 {
				firstID = batch[0].ID
			}
			inserted += n
			batch = batch[:0]
			logger.Info("Videos inserted", zap.Int64("inserted", inserted))
		}
	}

	logger.Info("Videos created", zap.Int64("inserted", inserted), zap.Int64("first_id", firstID))
	return inserted, firstID, nil
}

// createLikes 从 firstVideoID 起遍历本轮生成的视频，每个视频随机挑 0..MaxLikesPerVideo 个不同用户点赞
// 之前运行留下的视频不再追加点赞；缓冲达到 BatchSize 即写入，重复的 (video_id, user_id) 由数据库忽略
func (s *Seeder) createLikes(ctx context.Context, firstVideoID int64) (attempted, inserted int64, err error) {
	if s.cfg.MaxLikesPerVideo == 0 || firstVideoID == 0 {
		return 0, 0, nil
	}

	userIDs, err := s.repo.UserIDs(ctx)
	if err != nil {
		return 0, 0, err
	}
	if len(userIDs) == 0 {
		return 0, 0, nil
	}

	buf := make([]model.Like, 0, s.cfg.BatchSize+s.cfg.MaxLikesPerVideo)
	flush := func() error {
		n, err := s.repo.InsertLikesIgnoreConflicts(ctx, buf, s.cfg.BatchSize)
		if err != nil {
			return err
		}
		attempted += int64(len(buf))
		inserted += n
		buf = buf[:0]
		logger.Info("Likes inserted", zap.Int64("attempted", attempted), zap.Int64("inserted", inserted))
		return nil
	}

	afterID := firstVideoID - 1
	for {
		videoIDs, err := s.repo.VideoIDsAfter(ctx, afterID, s.cfg.BatchSize)
		if err != nil {
			return attempted, inserted, err
		}
		if len(videoIDs) == 0 {
			break
		}

		for _, videoID := range videoIDs {
			k := s.rng.IntN(s.cfg.MaxLikesPerVideo + 1)
			for _, idx := range sampleIndexes(s.rng, len(userIDs), k) {
				buf = append(buf, model.Like{VideoID: videoID, UserID: userIDs[idx]})
			}
			if len(buf) >= s.cfg.BatchSize {
				if err := flush(); err != nil {
					return attempted, inserted, err
				}
			}
		}
		afterID = videoIDs[len(videoIDs)-1]
	}

	if len(buf) > 0 {
		if err := flush(); err != nil {
			return attempted, inserted, err
		}
	}

	logger.Info("Likes created", zap.Int64("attempted", attempted), zap.Int64("inserted", inserted))
	return attempted, inserted, nil
}
