package model

import "time"

// Video 视频模型
//
// TotalLikes 是 likes 表的反范式计数，只允许点赞计数器和批量造数的对账步骤写入。
type Video struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;comment:视频标识" json:"id"`
	OwnerID     int64     `gorm:"not null;index:idx_videos_owner_published,priority:1;comment:视频作者ID" json:"owner_id"`
	Name        string    `gorm:"size:255;not null;comment:视频名称" json:"name"`
	IsPublished bool      `gorm:"not null;default:false;index:idx_videos_owner_published,priority:2;comment:是否已发布" json:"is_published"`
	TotalLikes  int64     `gorm:"not null;default:0;check:chk_videos_total_likes,total_likes >= 0;comment:点赞数" json:"total_likes"`
	CreatedAt   time.Time `gorm:"autoCreateTime;<-:create;comment:创建时间" json:"created_at"`

	// 关联关系
	Owner User        `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Likes []Like      `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"likes,omitempty"`
	Files []VideoFile `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"files,omitempty"`
}

func (Video) TableName() string {
	return "videos"
}
