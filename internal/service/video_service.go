package service

import (
	"context"
	"errors"

	"vida-likes/internal/api/dto"
	"vida-likes/internal/model"
	"vida-likes/internal/policy"
	"vida-likes/internal/repository"
	"vida-likes/pkg/logger"

	"go.uber.org/zap"
)

var ErrVideoNotFound = errors.New("视频不存在")

// 分页上限，保证 (page-1)*pageSize 不溢出
const (
	MaxPage     = 1_000_000
	MaxPageSize = 100
)

// FileURLResolver 把视频文件的对象路径转换为可访问的 URL
type FileURLResolver interface {
	ObjectURL(ctx context.Context, objectKey string) (string, error)
}

type VideoService struct {
	videos   *repository.VideoRepository
	resolver FileURLResolver
}

// NewVideoService resolver 为 nil 时直接返回对象路径
func NewVideoService(videos *repository.VideoRepository, resolver FileURLResolver) *VideoService {
	return &VideoService{videos: videos, resolver: resolver}
}

// GetDetail 获取视频详情，不可见的视频与不存在的视频一样返回 ErrVideoNotFound
func (s *VideoService) GetDetail(ctx context.Context, viewer policy.Viewer, videoID int64) (*dto.VideoInfo, error) {
	video, err := s.videos.GetDetail(ctx, videoID, repository.VisibleTo(viewer))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return s.toVideoInfo(ctx, video), nil
}

// List 视频列表（按访问者可见性过滤），page 和 pageSize 会被收敛到有效范围
func (s *VideoService) List(ctx context.Context, viewer policy.Viewer, page, pageSize int) (*dto.VideoListData, error) {
	page = min(max(page, 1), MaxPage)
	pageSize = min(max(pageSize, 1), MaxPageSize)
	skip := (page - 1) * pageSize
	videos, total, err := s.videos.List(ctx, viewer, skip, pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]dto.VideoInfo, 0, len(videos))
	for i := range videos {
		items = append(items, *s.toVideoInfo(ctx, &videos[i]))
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	return &dto.VideoListData{
		Videos:     items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// ListPublishedIDs 所有已发布视频的 ID
func (s *VideoService) ListPublishedIDs(ctx context.Context) (*dto.VideoIDListData, error) {
	ids, err := s.videos.ListPublishedIDs(ctx)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}
	return &dto.VideoIDListData{IDs: ids}, nil
}

func (s *VideoService) toVideoInfo(ctx context.Context, video *model.Video) *dto.VideoInfo {
	info := &dto.VideoInfo{
		ID:          video.ID,
		Owner:       video.Owner.Username,
		IsPublished: video.IsPublished,
		Name:        video.Name,
		TotalLikes:  video.TotalLikes,
		CreatedAt:   video.CreatedAt,
		Files:       make([]dto.VideoFileInfo, 0, len(video.Files)),
	}

	for _, f := range video.Files {
		info.Files = append(info.Files, dto.VideoFileInfo{
			ID:      f.ID,
			File:    s.fileURL(ctx, f.ObjectKey),
			Quality: string(f.Quality),
		})
	}
	return info
}

func (s *VideoService) fileURL(ctx context.Context, objectKey string) string {
	if s.resolver == nil {
		return objectKey
	}
	u, err := s.resolver.ObjectURL(ctx, objectKey)
	if err != nil {
		logger.Ctx(ctx).Warn("Resolve video file url failed", zap.String("object", objectKey), zap.Error(err))
		return objectKey
	}
	return u
}
