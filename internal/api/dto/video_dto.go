package dto

import "time"

// VideoFileInfo 视频文件（不同清晰度）
type VideoFileInfo struct {
	ID      int64  `json:"id"`
	File    string `json:"file"`
	Quality string `json:"quality"`
}

// VideoInfo 视频详情
type VideoInfo struct {
	ID          int64           `json:"id"`
	Owner       string          `json:"owner"`
	IsPublished bool            `json:"is_published"`
	Name        string          `json:"name"`
	TotalLikes  int64           `json:"total_likes"`
	CreatedAt   time.Time       `json:"created_at"`
	Files       []VideoFileInfo `json:"files"`
}

// VideoListData 视频列表响应数据
type VideoListData struct {
	Videos     []VideoInfo `json:"videos"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int64       `json:"total_pages"`
}

// VideoIDListData 已发布视频 ID 列表
type VideoIDListData struct {
	IDs []int64 `json:"ids"`
}
