package dto

// UserLikesStat 用户已发布视频获赞总数
type UserLikesStat struct {
	Username string `json:"username"`
	LikesSum int64  `json:"likes_sum"`
}

// StatisticsData 统计结果
type StatisticsData struct {
	Strategy string          `json:"strategy"`
	Items    []UserLikesStat `json:"items"`
}
