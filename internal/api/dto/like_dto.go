package dto

// LikeResult 点赞 / 取消点赞结果
//
// Status 取值：created、already_exists、removed、not_liked
type LikeResult struct {
	VideoID    int64  `json:"video_id"`
	Status     string `json:"status"`
	TotalLikes int64  `json:"total_likes"`
}
