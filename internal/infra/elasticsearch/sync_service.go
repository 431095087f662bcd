package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"vida-likes/internal/model"
	"vida-likes/pkg/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"
)

// VideoDoc ES 视频文档结构
type VideoDoc struct {
	ID          int64  `json:"id"`
	OwnerID     int64  `json:"owner_id"`
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	IsPublished bool   `json:"is_published"`
	TotalLikes  int64  `json:"total_likes"`
	CreatedAt   string `json:"created_at"`
	IndexedAt   string `json:"indexed_at"`
}

// NewVideoDoc 由视频（需预加载 Owner）构造文档
func NewVideoDoc(v *model.Video, now time.Time) *VideoDoc {
	return &VideoDoc{
		ID:          v.ID,
		OwnerID:     v.OwnerID,
		Owner:       v.Owner.Username,
		Name:        v.Name,
		IsPublished: v.IsPublished,
		TotalLikes:  v.TotalLikes,
		CreatedAt:   v.CreatedAt.UTC().Format(time.RFC3339),
		IndexedAt:   now.UTC().Format(time.RFC3339),
	}
}

// VideoIndexer 把视频及其点赞数同步到 ES
type VideoIndexer struct {
	client *elasticsearch.Client
	index  string
}

func NewVideoIndexer(es *elasticsearch.Client, index string) *VideoIndexer {
	return &VideoIndexer{client: es, index: index}
}

// IndexVideo 写入（覆盖）单个视频文档
func (i *VideoIndexer) IndexVideo(ctx context.Context, v *model.Video) error {
	body, err := json.Marshal(NewVideoDoc(v, time.Now()))
	if err != nil {
		return err
	}

	resp, err := i.client.Index(
		i.index,
		bytes.NewReader(body),
		i.client.Index.WithContext(ctx),
		i.client.Index.WithDocumentID(strconv.FormatInt(v.ID, 10)),
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("index document failed: %s", resp.String())
	}

	logger.Debug("Video synced to ES",
		zap.Int64("video_id", v.ID),
		zap.Int64("total_likes", v.TotalLikes),
	)
	return nil
}

// DeleteVideo 从 ES 删除视频，文档不存在视为成功
func (i *VideoIndexer) DeleteVideo(ctx context.Context, videoID int64) error {
	resp, err := i.client.Delete(i.index, strconv.FormatInt(videoID, 10), i.client.Delete.WithContext(ctx))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() && resp.StatusCode != 404 {
		return fmt.Errorf("delete document failed: %s", resp.String())
	}
	return nil
}

// BuildBulkBody 生成 bulk index 请求体（NDJSON）
func BuildBulkBody(index string, videos []model.Video, now time.Time) (string, error) {
	var buf strings.Builder
	for idx := range videos {
		docBody, err := json.Marshal(NewVideoDoc(&videos[idx], now))
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&buf, `{"index":{"_index":%q,"_id":"%d"}}`, index, videos[idx].ID)
		buf.WriteString("\n")
		buf.Write(docBody)
		buf.WriteString("\n")
	}
	return buf.String(), nil
}

// BulkIndexVideos 批量同步视频到 ES
func (i *VideoIndexer) BulkIndexVideos(ctx context.Context, videos []model.Video) (success, failed int, err error) {
	body, err := BuildBulkBody(i.index, videos, time.Now())
	if err != nil {
		return 0, len(videos), err
	}
	if body == "" {
		return 0, 0, nil
	}

	resp, err := i.client.Bulk(strings.NewReader(body), i.client.Bulk.WithContext(ctx))
	if err != nil {
		return 0, len(videos), err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return 0, len(videos), fmt.Errorf("bulk failed: %s", resp.String())
	}

	var bulkResp struct {
		Errors bool `json:"errors"`
		Items  []struct {
			Index struct {
				Status int `json:"status"`
			} `json:"index"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&bulkResp); err != nil {
		return 0, len(videos), fmt.Errorf("decode bulk response: %w", err)
	}

	for _, item := range bulkResp.Items {
		if item.Index.Status >= 200 && item.Index.Status < 300 {
			success++
		} else {
			failed++
		}
	}

	logger.Info("Bulk sync to ES completed", zap.Int("success", success), zap.Int("failed", failed))
	return success, failed, nil
}
