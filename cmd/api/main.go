package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"vida-likes/internal/api/handler"
	"vida-likes/internal/api/middleware"
	"vida-likes/internal/api/router"
	"vida-likes/internal/config"
	"vida-likes/internal/infra/database"
	infraKafka "vida-likes/internal/infra/kafka"
	infraMinio "vida-likes/internal/infra/minio"
	infraRedis "vida-likes/internal/infra/redis"
	"vida-likes/internal/repository"
	"vida-likes/internal/service"
	"vida-likes/pkg/logger"
	"vida-likes/pkg/utils"

	_ "vida-likes/api/openapi"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title Vida Likes API
// @version 1.0
// @description 视频点赞与获赞统计 API 服务

// @host 127.0.0.1:8000
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 输入格式: Bearer {token}

func main() {
	// .env 不存在时忽略
	_ = godotenv.Load()

	configPath := pflag.StringP("config", "c", "configs/config.yaml", "配置文件路径")
	pflag.Parse()

	// 加载配置文件
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 初始化日志系统
	if err := logger.Init(
		cfg.Log.Level,
		cfg.Log.Format,
		cfg.Log.Output,
		cfg.Log.FilePath,
	); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	// 初始化数据库
	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(cfg.Database.MigrateURL()); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	// 统计结果缓存（可选）
	var statsCache service.StatsCache
	if cfg.Redis.Enabled {
		cache, err := infraRedis.OpenStatsCache(context.Background(), &cfg.Redis, cfg.App.Name)
		if err != nil {
			logger.Fatal("Failed to init redis", zap.Error(err))
		}
		defer cache.Close()
		statsCache = cache
	}

	// 视频文件预签名 URL（可选）
	var fileResolver service.FileURLResolver
	if cfg.MinIO.Enabled {
		if err := infraMinio.Init(&cfg.MinIO); err != nil {
			logger.Fatal("Failed to init minio", zap.Error(err))
		}
		fileResolver = infraMinio.NewURLResolver(infraMinio.Get(), cfg.MinIO.Bucket, cfg.MinIO.PresignDuration())
	}

	// 点赞事件（可选）
	var likePublisher service.LikeEventPublisher
	if cfg.Kafka.Enabled {
		if err := infraKafka.InitProducer(&cfg.Kafka); err != nil {
			logger.Fatal("Failed to init kafka producer", zap.Error(err))
		}
		defer infraKafka.CloseProducer()
		likePublisher = infraKafka.NewLikeEventPublisher(cfg.Kafka.LikeEventsTopic())
	}

	// 初始化依赖（Repository -> Service -> Handler）
	db := database.Get()
	store := repository.NewStore(db)
	tokens := utils.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpireDuration(), cfg.App.Name)

	authService := service.NewAuthService(store.Users, tokens)
	videoService := service.NewVideoService(store.Videos, fileResolver)
	likeService := service.NewLikeService(store, service.NewLikeCounter(), likePublisher)
	statisticsService := service.NewStatisticsService(store.Statistics, statsCache, cfg.Statistics.CacheDuration())

	authenticator := middleware.NewAuthenticator(tokens, authService.IsStaff)

	// 设置Gin模式
	gin.SetMode(cfg.App.Mode)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.App.AllowedOrigins))

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get sql.DB", zap.Error(err))
	}
	r.GET("/healthz", handler.Health(sqlDB))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.Setup(r, router.Handlers{
		Account:    handler.NewAccountHandler(authService),
		Video:      handler.NewVideoHandler(videoService),
		Like:       handler.NewLikeHandler(likeService),
		Statistics: handler.NewStatisticsHandler(statisticsService),
	}, authenticator)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("mode", cfg.App.Mode),
		zap.String("addr", addr),
		zap.Bool("redis", cfg.Redis.Enabled),
		zap.Bool("minio", cfg.MinIO.Enabled),
		zap.Bool("kafka", cfg.Kafka.Enabled),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
}
