package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"vida-likes/internal/config"
	"vida-likes/internal/infra/database"
	infraES "vida-likes/internal/infra/elasticsearch"
	infraKafka "vida-likes/internal/infra/kafka"
	"vida-likes/internal/repository"
	"vida-likes/internal/service"
	"vida-likes/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// 消费点赞事件，把视频最新的点赞数同步到 Elasticsearch
func main() {
	_ = godotenv.Load()

	configPath := pflag.StringP("config", "c", "configs/config.yaml", "配置文件路径")
	groupID := pflag.String("group", "vida-likes-indexer", "Kafka 消费组")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	if !cfg.Kafka.Enabled || !cfg.Elasticsearch.Enabled {
		logger.Fatal("Indexer requires kafka and elasticsearch to be enabled")
	}

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	if err := infraES.Init(&cfg.Elasticsearch); err != nil {
		logger.Fatal("Failed to init elasticsearch", zap.Error(err))
	}
	defer infraES.Close()

	// 监听系统信号，优雅退出
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	index := cfg.Elasticsearch.VideosIndex()
	if err := infraES.EnsureVideosIndex(ctx, infraES.Get(), index); err != nil {
		logger.Fatal("Failed to ensure videos index", zap.Error(err))
	}

	store := repository.NewStore(database.Get())
	indexService := service.NewIndexService(store.Videos, infraES.NewVideoIndexer(infraES.Get(), index))

	topic := cfg.Kafka.LikeEventsTopic()
	logger.Info("Like event indexer started",
		zap.String("topic", topic),
		zap.String("group", *groupID),
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("index", index),
	)

	infraKafka.StartLikeEventConsumer(ctx, cfg.Kafka.Brokers, topic, *groupID, indexService.HandleLikeEvent)
}
