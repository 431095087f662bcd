package testutil

import (
	"testing"

	"vida-likes/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateUser 插入测试用户
func CreateUser(t testing.TB, db *gorm.DB, username string, staff bool) *model.User {
	t.Helper()
	user := &model.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		IsStaff:  staff,
	}
	if err := db.Omit(clause.Associations).Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

// CreateVideo 插入测试视频
func CreateVideo(t testing.TB, db *gorm.DB, ownerID int64, name string, published bool) *model.Video {
	t.Helper()
	video := &model.Video{
		OwnerID:     ownerID,
		Name:        name,
		IsPublished: published,
	}
	if err := db.Omit(clause.Associations).Create(video).Error; err != nil {
		t.Fatalf("failed to create video %s: %v", name, err)
	}
	return video
}

// CreateVideoFile 插入视频文件
func CreateVideoFile(t testing.TB, db *gorm.DB, videoID int64, objectKey string, quality model.Quality) *model.VideoFile {
	t.Helper()
	file := &model.VideoFile{VideoID: videoID, ObjectKey: objectKey, Quality: quality}
	if err := db.Omit(clause.Associations).Create(file).Error; err != nil {
		t.Fatalf("failed to create video file %s: %v", objectKey, err)
	}
	return file
}

// TotalLikes 读取视频当前的 total_likes
func TotalLikes(t testing.TB, db *gorm.DB, videoID int64) int64 {
	t.Helper()
	var total int64
	row := db.Model(&model.Video{}).Select("total_likes").Where("id = ?", videoID).Row()
	if err := row.Scan(&total); err != nil {
		t.Fatalf("failed to read total_likes: %v", err)
	}
	return total
}

// LikeCount 统计视频在 likes 表中的真实点赞数
func LikeCount(t testing.TB, db *gorm.DB, videoID int64) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&model.Like{}).Where("video_id = ?", videoID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count likes: %v", err)
	}
	return count
}
