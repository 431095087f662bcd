package model

import "time"

// Like 点赞记录，(video_id, user_id) 唯一
type Like struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:点赞记录ID" json:"id"`
	VideoID   int64     `gorm:"not null;uniqueIndex:uq_likes_video_user,priority:1;comment:被点赞视频ID" json:"video_id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uq_likes_video_user,priority:2;index:idx_likes_user_id;comment:点赞用户ID" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:点赞时间" json:"created_at"`

	// 关联关系
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Video Video `gorm:"foreignKey:VideoID" json:"video,omitempty"`
}

func (Like) TableName() string {
	return "likes"
}
