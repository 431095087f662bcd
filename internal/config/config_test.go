package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
app:
  name: vida-likes-test
  port: 9000
database:
  host: db
  port: 5432
  user: vida
  password: secret
  dbname: likes
kafka:
  brokers: ["k1:9092", "k2:9092"]
  topics:
    like_events: likes-v2
statistics:
  cache_ttl: 30
seed:
  user_count: 5
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("VIDA_SEED_BATCH_SIZE", "250")
	t.Setenv("VIDA_DATABASE_PASSWORD", "from-env")

	cfg, err := Load(writeConfig(t, testYAML))
	require.NoError(t, err)

	assert.Equal(t, "vida-likes-test", cfg.App.Name)
	assert.Equal(t, 9000, cfg.App.Port)
	assert.Equal(t, "release", cfg.App.Mode)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "host=db port=5432 user=vida password=from-env dbname=likes sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, "pgx5://vida:from-env@db:5432/likes?sslmode=disable", cfg.Database.MigrateURL())

	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "likes-v2", cfg.Kafka.LikeEventsTopic())
	assert.Equal(t, 30*time.Second, cfg.Statistics.CacheDuration())
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpireDuration())

	assert.Equal(t, 5, cfg.Seed.UserCount)
	assert.Equal(t, 100000, cfg.Seed.VideoCount)
	assert.Equal(t, 250, cfg.Seed.BatchSize)

	assert.Same(t, cfg, Get())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestDefaults(t *testing.T) {
	var k KafkaConfig
	assert.Equal(t, "video-like-events", k.LikeEventsTopic())

	var e ElasticsearchConfig
	assert.Equal(t, "videos", e.VideosIndex())

	var m MinIOConfig
	assert.Equal(t, time.Hour, m.PresignDuration())
	m.PresignExpiry = 90
	assert.Equal(t, 90*time.Second, m.PresignDuration())
}

// 仓库自带的配置文件：统计默认不缓存，每次请求都反映最新点赞
func TestLoad_ShippedConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "config.yaml"))
	require.NoError(t, err)

	assert.Zero(t, cfg.Statistics.CacheDuration())
	assert.Equal(t, "vida-likes", cfg.App.Name)
}

func TestLoad_CacheTTLDefault(t *testing.T) {
	cfg, err := Load(writeConfig(t, "app:\n  name: x\n"))
	require.NoError(t, err)
	assert.Zero(t, cfg.Statistics.CacheDuration())
}
