package handler

import (
	"context"

	"vida-likes/internal/api/dto"
	"vida-likes/internal/api/middleware"
	"vida-likes/internal/api/response"
	"vida-likes/internal/service"

	"github.com/gin-gonic/gin"
)

// LikeToggler 点赞 / 取消点赞
type LikeToggler interface {
	AddLike(ctx context.Context, userID, videoID int64) (*dto.LikeResult, error)
	RemoveLike(ctx context.Context, userID, videoID int64) (*dto.LikeResult, error)
	EnsureLikeable(ctx context.Context, videoID int64) error
}

type LikeHandler struct {
	likeService LikeToggler
}

func NewLikeHandler(likeService LikeToggler) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// AddLike 点赞视频
// @Summary 点赞视频
// @Description 对已发布视频点赞，重复点赞不会重复计数
// @Tags 点赞
// @Produce json
// @Security BearerAuth
// @Param id path int true "视频ID"
// @Success 201 {object} response.Response{data=dto.LikeResult} "点赞成功"
// @Success 200 {object} response.Response{data=dto.LikeResult} "已点赞"
// @Failure 401 {object} response.ErrorResponse "未登录（仅视频已发布时）"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /videos/{id}/likes [post]
func (h *LikeHandler) AddLike(c *gin.Context) {
	videoID, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	userID, ok := h.resolveLiker(c, videoID)
	if !ok {
		return
	}

	result, err := h.likeService.AddLike(c.Request.Context(), userID, videoID)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	if result.Status == service.LikeStatusCreated {
		response.Created(c, "点赞成功", result)
		return
	}
	response.OK(c, "点赞成功", result)
}

// RemoveLike 取消点赞
// @Summary 取消点赞
// @Description 取消对已发布视频的点赞，本来没有点赞也返回成功
// @Tags 点赞
// @Produce json
// @Security BearerAuth
// @Param id path int true "视频ID"
// @Success 200 {object} response.Response{data=dto.LikeResult} "取消点赞成功"
// @Failure 401 {object} response.ErrorResponse "未登录（仅视频已发布时）"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /videos/{id}/likes [delete]
func (h *LikeHandler) RemoveLike(c *gin.Context) {
	videoID, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	userID, ok := h.resolveLiker(c, videoID)
	if !ok {
		return
	}

	result, err := h.likeService.RemoveLike(c.Request.Context(), userID, videoID)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "取消点赞成功", result)
}

// resolveLiker 返回当前用户 ID；匿名请求先确认视频可点赞，
// 视频不存在或未发布时与登录用户一样返回 404，否则返回 401
func (h *LikeHandler) resolveLiker(c *gin.Context, videoID int64) (int64, bool) {
	if userID, ok := middleware.GetCurrentUserID(c); ok {
		return userID, true
	}
	if err := h.likeService.EnsureLikeable(c.Request.Context(), videoID); err != nil {
		handleVideoError(c, err)
		return 0, false
	}
	response.Unauthorized(c, "登录后才能点赞")
	return 0, false
}
