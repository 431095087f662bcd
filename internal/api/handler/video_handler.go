package handler

import (
	"context"
	"errors"

	"vida-likes/internal/api/dto"
	"vida-likes/internal/api/middleware"
	"vida-likes/internal/api/response"
	"vida-likes/internal/policy"
	"vida-likes/internal/service"
	"vida-likes/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VideoReader 视频查询业务
type VideoReader interface {
	GetDetail(ctx context.Context, viewer policy.Viewer, videoID int64) (*dto.VideoInfo, error)
	List(ctx context.Context, viewer policy.Viewer, page, pageSize int) (*dto.VideoListData, error)
	ListPublishedIDs(ctx context.Context) (*dto.VideoIDListData, error)
}

type VideoHandler struct {
	videoService VideoReader
}

func NewVideoHandler(videoService VideoReader) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

// List 视频列表
// @Summary 视频列表
// @Description 管理员可见全部视频；登录用户可见已发布视频和自己的视频；匿名用户只可见已发布视频
// @Tags 视频
// @Produce json
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response{data=dto.VideoListData} "获取成功"
// @Router /videos [get]
func (h *VideoHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	data, err := h.videoService.List(c.Request.Context(), middleware.GetViewer(c), page, pageSize)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "获取成功", data)
}

// GetDetail 视频详情
// @Summary 视频详情
// @Description 无权查看的视频与不存在的视频一样返回 404
// @Tags 视频
// @Produce json
// @Param id path int true "视频ID"
// @Success 200 {object} response.Response{data=dto.VideoInfo} "获取成功"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /videos/{id} [get]
func (h *VideoHandler) GetDetail(c *gin.Context) {
	videoID, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	info, err := h.videoService.GetDetail(c.Request.Context(), middleware.GetViewer(c), videoID)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "获取成功", info)
}

// ListPublishedIDs 已发布视频 ID 列表
// @Summary 已发布视频 ID 列表
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=dto.VideoIDListData} "获取成功"
// @Failure 401 {object} response.ErrorResponse "未授权"
// @Failure 403 {object} response.ErrorResponse "需要管理员权限"
// @Router /videos/ids [get]
func (h *VideoHandler) ListPublishedIDs(c *gin.Context) {
	data, err := h.videoService.ListPublishedIDs(c.Request.Context())
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "获取成功", data)
}

func handleVideoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVideoNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Ctx(c.Request.Context()).Error("Video operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
