package seed_test

import (
	"context"
	"testing"

	"vida-likes/internal/model"
	"vida-likes/internal/repository"
	"vida-likes/internal/seed"
	"vida-likes/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// assertCountersMatch 每个视频的 total_likes 等于 likes 表中的行数
func assertCountersMatch(t *testing.T, db *gorm.DB) {
	t.Helper()
	var drift int64
	err := db.Raw(`
SELECT COUNT(*) FROM videos v
WHERE v.total_likes <> (SELECT COUNT(*) FROM likes l WHERE l.video_id = v.id)`).Row().Scan(&drift)
	require.NoError(t, err)
	assert.Zero(t, drift)
}

func count(t *testing.T, db *gorm.DB, m any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(m).Count(&n).Error)
	return n
}

// likeCounts 返回 id <= maxID 的视频各自的点赞行数
func likeCounts(t *testing.T, db *gorm.DB, maxID int64) map[int64]int64 {
	t.Helper()
	var rows []struct {
		VideoID int64
		N       int64
	}
	require.NoError(t, db.Raw(`
SELECT v.id AS video_id, COUNT(l.user_id) AS n
FROM videos v LEFT JOIN likes l ON l.video_id = v.id
WHERE v.id <= ? GROUP BY v.id`, maxID).Scan(&rows).Error)
	out := make(map[int64]int64, len(rows))
	for _, r := range rows {
		out[r.VideoID] = r.N
	}
	return out
}

func TestSeeder(t *testing.T) {
	db := testutil.NewPostgres(t)
	ctx := context.Background()
	testutil.Truncate(t, db)
	repo := repository.NewStore(db).Seed

	cfg := seed.Config{
		UserCount:        30,
		VideoCount:       40,
		BatchSize:        7,
		MaxLikesPerVideo: 10,
		RandomSeed:       42,
	}

	t.Run("first run", func(t *testing.T) {
		s, err := seed.New(repo, cfg)
		require.NoError(t, err)

		report, err := s.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(30), report.UsersInserted)
		assert.Equal(t, int64(40), report.VideosInserted)
		// 同一视频内用户不重复，首次运行不会有冲突
		assert.Equal(t, report.LikesAttempted, report.LikesInserted)
		assert.LessOrEqual(t, report.LikesInserted, int64(40*10))

		assert.Equal(t, int64(30), count(t, db, &model.User{}))
		assert.Equal(t, int64(40), count(t, db, &model.Video{}))
		assert.Equal(t, report.LikesInserted, count(t, db, &model.Like{}))
		assertCountersMatch(t, db)
	})

	t.Run("rerun keeps uniqueness", func(t *testing.T) {
		var lastID int64
		require.NoError(t, db.Model(&model.Video{}).Select("MAX(id)").Row().Scan(&lastID))
		before := likeCounts(t, db, lastID)
		require.Len(t, before, 40)

		s, err := seed.New(repo, cfg)
		require.NoError(t, err)

		report, err := s.Run(ctx)
		require.NoError(t, err)
		// 用户名冲突被忽略，视频每次都新增
		assert.Zero(t, report.UsersInserted)
		assert.Equal(t, int64(40), report.VideosInserted)
		// 只给本轮的新视频点赞，不会撞上旧数据
		assert.Equal(t, report.LikesAttempted, report.LikesInserted)
		assert.Equal(t, before, likeCounts(t, db, lastID))

		assert.Equal(t, int64(30), count(t, db, &model.User{}))
		assert.Equal(t, int64(80), count(t, db, &model.Video{}))

		var dup int64
		require.NoError(t, db.Raw(`
SELECT COUNT(*) FROM (
    SELECT video_id, user_id FROM likes GROUP BY video_id, user_id HAVING COUNT(*) > 1
) d`).Row().Scan(&dup))
		assert.Zero(t, dup)
		assertCountersMatch(t, db)
	})

	t.Run("reset", func(t *testing.T) {
		small := cfg
		small.ResetBeforeInsert = true
		small.UserCount = 5
		small.VideoCount = 3
		small.MaxLikesPerVideo = 0

		s, err := seed.New(repo, small)
		require.NoError(t, err)
		report, err := s.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(5), report.UsersInserted)
		assert.Zero(t, report.LikesInserted)

		assert.Equal(t, int64(5), count(t, db, &model.User{}))
		assert.Equal(t, int64(3), count(t, db, &model.Video{}))
		assert.Zero(t, count(t, db, &model.Like{}))
		assertCountersMatch(t, db)
	})

	t.Run("likes without new videos", func(t *testing.T) {
		likesBefore := count(t, db, &model.Like{})
		s, err := seed.New(repo, seed.Config{BatchSize: 10, MaxLikesPerVideo: 5})
		require.NoError(t, err)

		report, err := s.Run(ctx)
		require.NoError(t, err)
		assert.Zero(t, report.LikesAttempted)
		assert.Equal(t, likesBefore, count(t, db, &model.Like{}))
	})

	t.Run("videos without users", func(t *testing.T) {
		testutil.Truncate(t, db)
		s, err := seed.New(repo, seed.Config{VideoCount: 1, BatchSize: 10})
		require.NoError(t, err)

		_, err = s.Run(ctx)
		assert.ErrorIs(t, err, seed.ErrNoUsers)
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := seed.New(repo, seed.Config{BatchSize: 0})
		assert.Error(t, err)
	})
}
