package model

// Quality 视频清晰度
type Quality string

const (
	QualityHD  Quality = "HD"  // 720p
	QualityFHD Quality = "FHD" // 1080p
	QualityUHD Quality = "UHD" // 4K
)

// VideoFile 视频文件（不同清晰度），(video_id, quality) 唯一
type VideoFile struct {
	ID        int64   `gorm:"primaryKey;autoIncrement;comment:文件ID" json:"id"`
	VideoID   int64   `gorm:"not null;uniqueIndex:uq_video_files_video_quality,priority:1;comment:所属视频ID" json:"video_id"`
	ObjectKey string  `gorm:"size:500;not null;comment:对象存储路径" json:"object_key"`
	Quality   Quality `gorm:"size:3;not null;uniqueIndex:uq_video_files_video_quality,priority:2;comment:清晰度" json:"quality"`
}

func (VideoFile) TableName() string {
	return "video_files"
}
