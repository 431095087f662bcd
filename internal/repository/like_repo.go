package repository

import (
	"context"

	"vida-likes/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

var likeConflictColumns = []clause.Column{{Name: "video_id"}, {Name: "user_id"}}

// Insert 插入点赞记录；(video_id, user_id) 已存在时不写入并返回 ErrConstraintViolation。
// 使用 ON CONFLICT DO NOTHING，冲突不会让所在事务进入 aborted 状态。
func (r *LikeRepository) Insert(ctx context.Context, videoID, userID int64) (*model.Like, error) {
	like := &model.Like{VideoID: videoID, UserID: userID}
	result := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{Columns: likeConflictColumns, DoNothing: true}).
		Create(like)
	if result.Error != nil {
		return nil, translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrConstraintViolation
	}
	return like, nil
}

// Delete 删除点赞记录，返回删除的行数
func (r *LikeRepository) Delete(ctx context.Context, videoID, userID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("video_id = ? AND user_id = ?", videoID, userID).
		Delete(&model.Like{})
	if result.Error != nil {
		return 0, translateError(result.Error)
	}
	return result.RowsAffected, nil
}

// CountByVideo 统计视频的真实点赞数
func (r *LikeRepository) CountByVideo(ctx context.Context, videoID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).Where("video_id = ?", videoID).Count(&count).Error
	if err != nil {
		return 0, translateError(err)
	}
	return count, nil
}
