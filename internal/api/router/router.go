package router

import (
	"vida-likes/internal/api/handler"
	"vida-likes/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers 业务路由依赖的全部 Handler
type Handlers struct {
	Account    *handler.AccountHandler
	Video      *handler.VideoHandler
	Like       *handler.LikeHandler
	Statistics *handler.StatisticsHandler
}

// Setup 注册所有业务路由
func Setup(r *gin.Engine, h Handlers, auth *middleware.Authenticator) {
	v1 := r.Group("/api/v1")

	// --- 认证模块 ---
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Account.Register)
		authGroup.POST("/login", h.Account.Login)
		authGroup.GET("/me", auth.AuthRequired(), h.Account.Me)
	}

	// --- 视频模块 ---
	videos := v1.Group("/videos")
	{
		// 匿名可访问，结果按访问者可见性过滤
		public := videos.Group("", auth.OptionalAuth())
		{
			public.GET("", h.Video.List)
			public.GET("/:id", h.Video.GetDetail)

			// 匿名点赞：视频不存在或未发布返回 404，已发布返回 401
			public.POST("/:id/likes", h.Like.AddLike)
			public.DELETE("/:id/likes", h.Like.RemoveLike)
		}

		videos.GET("/ids", auth.AuthRequired(), middleware.StaffRequired(), h.Video.ListPublishedIDs)
	}

	// --- 统计模块（仅管理员） ---
	stats := v1.Group("/statistics", auth.AuthRequired(), middleware.StaffRequired())
	{
		stats.GET("/subquery", h.Statistics.Subquery)
		stats.GET("/group-by", h.Statistics.GroupBy)
	}
}
