package repository

import (
	"context"

	"vida-likes/internal/model"
	"vida-likes/internal/policy"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Scope 查询条件
type Scope func(*gorm.DB) *gorm.DB

// Published 只匹配已发布视频
func Published(db *gorm.DB) *gorm.DB {
	return db.Where("videos.is_published = ?", true)
}

// VisibleTo 按访问者可见性过滤视频
func VisibleTo(viewer policy.Viewer) Scope {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case viewer.IsStaff:
			return db
		case viewer.Authenticated():
			return db.Where("(videos.is_published = ? OR videos.owner_id = ?)", true, viewer.UserID)
		default:
			return db.Where("videos.is_published = ?", true)
		}
	}
}

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func applyScopes(db *gorm.DB, scopes []Scope) *gorm.DB {
	for _, s := range scopes {
		db = s(db)
	}
	return db
}

// GetByID 根据 ID 获取视频，附加条件不满足时同样返回 ErrNotFound
func (r *VideoRepository) GetByID(ctx context.Context, id int64, scopes ...Scope) (*model.Video, error) {
	var video model.Video
	query := applyScopes(r.db.WithContext(ctx).Where("videos.id = ?", id), scopes)
	if err := query.First(&video).Error; err != nil {
		return nil, translateError(err)
	}
	return &video, nil
}

// LockByID 在当前事务中以 FOR UPDATE 锁住视频行，同一视频的点赞操作因此串行
func (r *VideoRepository) LockByID(ctx context.Context, id int64, scopes ...Scope) (*model.Video, error) {
	var video model.Video
	query := applyScopes(r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("videos.id = ?", id), scopes)
	if err := query.First(&video).Error; err != nil {
		return nil, translateError(err)
	}
	return &video, nil
}

// GetDetail 获取视频详情（含作者和视频文件）
func (r *VideoRepository) GetDetail(ctx context.Context, id int64, scopes ...Scope) (*model.Video, error) {
	var video model.Video
	query := applyScopes(r.db.WithContext(ctx).Where("videos.id = ?", id), scopes)
	err := query.
		Preload("Owner").
		Preload("Files", func(db *gorm.DB) *gorm.DB { return db.Order("video_files.id") }).
		First(&video).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &video, nil
}

// SetTotalLikes 写入点赞数（只供点赞计数器使用）
func (r *VideoRepository) SetTotalLikes(ctx context.Context, id, total int64) error {
	result := r.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).
		UpdateColumn("total_likes", total)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List 视频列表（按可见性过滤、分页）
func (r *VideoRepository) List(ctx context.Context, viewer policy.Viewer, skip, limit int) ([]model.Video, int64, error) {
	// Session 使 query 可以被 Count 和 Find 重复使用
	query := VisibleTo(viewer)(r.db.WithContext(ctx).Model(&model.Video{})).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	var videos []model.Video
	err := query.
		Preload("Owner").
		Preload("Files", func(db *gorm.DB) *gorm.DB { return db.Order("video_files.id") }).
		Order("videos.created_at DESC").Order("videos.id DESC").
		Offset(skip).Limit(limit).
		Find(&videos).Error
	if err != nil {
		return nil, 0, translateError(err)
	}

	return videos, total, nil
}

// ListPublishedIDs 所有已发布视频的 ID
func (r *VideoRepository) ListPublishedIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&model.Video{}).
		Scopes(Published).
		Order("videos.id").
		Pluck("videos.id", &ids).Error
	if err != nil {
		return nil, translateError(err)
	}
	return ids, nil
}

// ListAfter 按主键游标批量读取视频（含作者），供搜索索引全量同步
func (r *VideoRepository) ListAfter(ctx context.Context, afterID int64, limit int) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("videos.id > ?", afterID).
		Order("videos.id").Limit(limit).
		Find(&videos).Error
	if err != nil {
		return nil, translateError(err)
	}
	return videos, nil
}
