package handler

import (
	"context"

	"vida-likes/internal/api/dto"
	"vida-likes/internal/api/response"
	"vida-likes/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StatisticsProvider 用户获赞统计
type StatisticsProvider interface {
	BySubquery(ctx context.Context) (*dto.StatisticsData, error)
	ByGroupBy(ctx context.Context) (*dto.StatisticsData, error)
}

// StatisticsHandler 统计默认实时计算；配置了 statistics.cache_ttl 时
// 返回的可能是 TTL 内的缓存结果，期间新增的点赞不会立即体现
type StatisticsHandler struct {
	statisticsService StatisticsProvider
}

func NewStatisticsHandler(statisticsService StatisticsProvider) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

// Subquery 用户获赞统计（子查询）
// @Summary 用户获赞统计（子查询）
// @Description 每个用户已发布视频的点赞总数，按总数降序。statistics.cache_ttl 大于 0 且启用 Redis 时结果可能落后该秒数
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=dto.StatisticsData} "获取成功"
// @Failure 401 {object} response.ErrorResponse "未授权"
// @Failure 403 {object} response.ErrorResponse "需要管理员权限"
// @Router /statistics/subquery [get]
func (h *StatisticsHandler) Subquery(c *gin.Context) {
	h.respond(c, h.statisticsService.BySubquery)
}

// GroupBy 用户获赞统计（分组聚合）
// @Summary 用户获赞统计（分组聚合）
// @Description 每个用户已发布视频的点赞总数，按总数降序。statistics.cache_ttl 大于 0 且启用 Redis 时结果可能落后该秒数
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=dto.StatisticsData} "获取成功"
// @Failure 401 {object} response.ErrorResponse "未授权"
// @Failure 403 {object} response.ErrorResponse "需要管理员权限"
// @Router /statistics/group-by [get]
func (h *StatisticsHandler) GroupBy(c *gin.Context) {
	h.respond(c, h.statisticsService.ByGroupBy)
}

func (h *StatisticsHandler) respond(c *gin.Context, compute func(context.Context) (*dto.StatisticsData, error)) {
	data, err := compute(c.Request.Context())
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("Statistics query failed", zap.Error(err))
		response.InternalError(c, "统计失败，请稍后重试")
		return
	}
	response.OK(c, "获取成功", data)
}
