package repository

import (
	"context"

	"gorm.io/gorm"
)

// UserLikesSum 用户已发布视频的点赞总数
type UserLikesSum struct {
	UserID   int64
	Username string
	LikesSum int64
}

// 相关子查询：每个用户一条标量子查询
const likesSumSubquerySQL = `
SELECT u.id AS user_id,
       u.username AS username,
       COALESCE((
           SELECT SUM(v.total_likes)
           FROM videos AS v
           WHERE v.owner_id = u.id AND v.is_published
       ), 0)::BIGINT AS likes_sum
FROM users AS u
ORDER BY likes_sum DESC, u.id ASC`

// 分组聚合：外连接已发布视频后按用户汇总
const likesSumGroupBySQL = `
SELECT u.id AS user_id,
       u.username AS username,
       COALESCE(SUM(v.total_likes), 0)::BIGINT AS likes_sum
FROM users AS u
LEFT JOIN videos AS v ON v.owner_id = u.id AND v.is_published
GROUP BY u.id, u.username
ORDER BY likes_sum DESC, u.id ASC`

// StatisticsRepository 只读聚合查询
type StatisticsRepository struct {
	db *gorm.DB
}

func NewStatisticsRepository(db *gorm.DB) *StatisticsRepository {
	return &StatisticsRepository{db: db}
}

// LikesSumBySubquery 子查询方式统计
func (r *StatisticsRepository) LikesSumBySubquery(ctx context.Context) ([]UserLikesSum, error) {
	return r.scan(ctx, likesSumSubquerySQL)
}

// LikesSumByGroupBy 分组聚合方式统计
func (r *StatisticsRepository) LikesSumByGroupBy(ctx context.Context) ([]UserLikesSum, error) {
	return r.scan(ctx, likesSumGroupBySQL)
}

func (r *StatisticsRepository) scan(ctx context.Context, query string) ([]UserLikesSum, error) {
	rows := make([]UserLikesSum, 0)
	if err := r.db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	return rows, nil
}
