package elasticsearch

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"vida-likes/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHosts(t *testing.T) {
	got := NormalizeHosts([]string{"es:9200", " https://es2:9200 ", "", "http://es3"})
	assert.Equal(t, []string{"http://es:9200", "https://es2:9200", "http://es3"}, got)
}

func TestBuildBulkBody(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	videos := []model.Video{
		{ID: 1, OwnerID: 10, Owner: model.User{Username: "alice"}, Name: "a", IsPublished: true, TotalLikes: 3, CreatedAt: now},
		{ID: 2, OwnerID: 11, Owner: model.User{Username: "bob"}, Name: "b", TotalLikes: 0, CreatedAt: now},
	}

	body, err := BuildBulkBody("videos", videos, now)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(body, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.JSONEq(t, `{"index":{"_index":"videos","_id":"1"}}`, lines[0])
	assert.JSONEq(t, `{"index":{"_index":"videos","_id":"2"}}`, lines[2])

	var doc VideoDoc
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &doc))
	assert.Equal(t, "alice", doc.Owner)
	assert.Equal(t, int64(3), doc.TotalLikes)
	assert.True(t, doc.IsPublished)
	assert.Equal(t, "2024-01-02T03:04:05Z", doc.IndexedAt)

	empty, err := BuildBulkBody("videos", nil, now)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
