package service

import (
	"context"

	"vida-likes/internal/repository"
)

// LikeCounter 维护 videos.total_likes
//
// 每次都按 likes 表全量重算，而不是加一减一，之前任何原因造成的偏差都会在下一次点赞操作时被修正。
// 必须在调用方的事务内执行，并且只在点赞记录真正写入或删除后调用。
type LikeCounter struct{}

func NewLikeCounter() *LikeCounter {
	return &LikeCounter{}
}

// Recount 重算并写回视频点赞数，返回新的点赞数
func (c *LikeCounter) Recount(ctx context.Context, tx *repository.Tx, videoID int64) (int64, error) {
	total, err := tx.Likes.CountByVideo(ctx, videoID)
	if err != nil {
		return 0, err
	}
	if err := tx.Videos.SetTotalLikes(ctx, videoID, total); err != nil {
		return 0, err
	}
	return total, nil
}
