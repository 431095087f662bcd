package repository

import (
	"context"

	"vida-likes/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 一次聚合 UPDATE 把所有视频的 total_likes 校准为真实点赞数（包括 0 赞的视频）
const reconcileTotalLikesSQL = `
UPDATE videos AS v
SET total_likes = COALESCE(sub.likes_count, 0)
FROM videos AS base
LEFT JOIN (
    SELECT video_id, COUNT(*) AS likes_count
    FROM likes
    GROUP BY video_id
) AS sub ON sub.video_id = base.id
WHERE v.id = base.id
  AND v.total_likes IS DISTINCT FROM COALESCE(sub.likes_count, 0)`

// SeedRepository 离线批量造数专用，绕过点赞计数器
type SeedRepository struct {
	db *gorm.DB
}

func NewSeedRepository(db *gorm.DB) *SeedRepository {
	return &SeedRepository{db: db}
}

// ResetAll 清空点赞、视频文件、视频和用户
// 直接批量删除，不经过点赞计数器
func (r *SeedRepository) ResetAll(ctx context.Context) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"likes", "video_files", "videos", "users"} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return err
			}
		}
		return nil
	}))
}

// InsertUsers 分批插入用户，用户名已存在的跳过，返回实际插入的行数
func (r *SeedRepository) InsertUsers(ctx context.Context, users []model.User, batchSize int) (int64, error) {
	if len(users) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "username"}}, DoNothing: true}).
		CreateInBatches(users, batchSize)
	if result.Error != nil {
		return 0, translateError(result.Error)
	}
	return result.RowsAffected, nil
}

// InsertVideos 分批插入视频
func (r *SeedRepository) InsertVideos(ctx context.Context, videos []model.Video, batchSize int) (int64, error) {
	if len(videos) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Omit(clause.Associations).CreateInBatches(videos, batchSize)
	if result.Error != nil {
		return 0, translateError(result.Error)
	}
	return result.RowsAffected, nil
}

// InsertLikesIgnoreConflicts 分批插入点赞，重复的 (video_id, user_id) 直接忽略，返回实际插入的行数
func (r *SeedRepository) InsertLikesIgnoreConflicts(ctx context.Context, likes []model.Like, batchSize int) (int64, error) {
	if len(likes) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{Columns: likeConflictColumns, DoNothing: true}).
		CreateInBatches(likes, batchSize)
	if result.Error != nil {
		return 0, translateError(result.Error)
	}
	return result.RowsAffected, nil
}

// UserIDs 所有用户 ID（升序）
func (r *SeedRepository) UserIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, translateError(err)
	}
	return ids, nil
}

// VideoIDsAfter 按主键游标分页读取视频 ID，避免一次性加载全部视频
func (r *SeedRepository) VideoIDsAfter(ctx context.Context, afterID int64, limit int) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&model.Video{}).
		Where("id > ?", afterID).
		Order("id").Limit(limit).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, translateError(err)
	}
	return ids, nil
}

// ReconcileTotalLikes 批量校准 total_likes，返回被修正的视频数
func (r *SeedRepository) ReconcileTotalLikes(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Exec(reconcileTotalLikesSQL)
	if result.Error != nil {
		return 0, translateError(result.Error)
	}
	return result.RowsAffected, nil
}
