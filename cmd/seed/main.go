package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"vida-likes/internal/config"
	"vida-likes/internal/infra/database"
	infraES "vida-likes/internal/infra/elasticsearch"
	"vida-likes/internal/repository"
	"vida-likes/internal/seed"
	"vida-likes/internal/service"
	"vida-likes/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	v := config.New()

	flags := pflag.NewFlagSet("seed", pflag.ExitOnError)
	configPath := flags.StringP("config", "c", "configs/config.yaml", "配置文件路径")
	flags.Int("users", 0, "生成的用户数")
	flags.Int("videos", 0, "生成的视频数")
	flags.Int("batch-size", 0, "每批插入的行数")
	flags.Int("max-likes", 0, "每个视频最多点赞数")
	flags.Bool("reset", false, "插入前清空用户、视频和点赞")
	flags.Int64("random-seed", 0, "随机种子，0 表示按时间")
	reindex := flags.Bool("reindex", false, "造数完成后全量同步视频到 Elasticsearch")
	_ = flags.Parse(os.Args[1:])

	// 命令行参数优先级高于配置文件和环境变量
	for key, name := range map[string]string{
		"seed.user_count":          "users",
		"seed.video_count":         "videos",
		"seed.batch_size":          "batch-size",
		"seed.max_likes_per_video": "max-likes",
		"seed.reset_before_insert": "reset",
		"seed.random_seed":         "random-seed",
	} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("Failed to bind flag %s: %v", name, err))
		}
	}

	cfg, err := config.LoadWith(v, *configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(cfg.Database.MigrateURL()); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	seedCfg := seed.FromConfig(&cfg.Seed)
	store := repository.NewStore(database.Get())

	seeder, err := seed.New(store.Seed, seedCfg)
	if err != nil {
		logger.Fatal("Invalid seed options", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Seeding started",
		zap.Int("users", seedCfg.UserCount),
		zap.Int("videos", seedCfg.VideoCount),
		zap.Int("batch_size", seedCfg.BatchSize),
		zap.Int("max_likes_per_video", seedCfg.MaxLikesPerVideo),
		zap.Bool("reset", seedCfg.ResetBeforeInsert),
	)

	report, err := seeder.Run(ctx)
	if err != nil {
		logger.Fatal("Seeding failed", zap.Error(err))
	}

	logger.Info("Seeding completed",
		zap.Int64("users_inserted", report.UsersInserted),
		zap.Int64("videos_inserted", report.VideosInserted),
		zap.Int64("likes_attempted", report.LikesAttempted),
		zap.Int64("likes_inserted", report.LikesInserted),
		zap.Int64("videos_reconciled", report.VideosReconciled),
		zap.Duration("duration", report.Duration),
	)

	if !*reindex {
		return
	}
	if !cfg.Elasticsearch.Enabled {
		logger.Warn("Elasticsearch disabled, skip reindex")
		return
	}
	if err := infraES.Init(&cfg.Elasticsearch); err != nil {
		logger.Fatal("Failed to init elasticsearch", zap.Error(err))
	}
	defer infraES.Close()

	index := cfg.Elasticsearch.VideosIndex()
	if err := infraES.EnsureVideosIndex(ctx, infraES.Get(), index); err != nil {
		logger.Fatal("Failed to ensure videos index", zap.Error(err))
	}

	indexService := service.NewIndexService(store.Videos, infraES.NewVideoIndexer(infraES.Get(), index))
	if _, err := indexService.ReindexAll(ctx, seedCfg.BatchSize); err != nil {
		logger.Fatal("Reindex failed", zap.Error(err))
	}
}
