package minio

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"vida-likes/internal/config"
	"vida-likes/pkg/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

var client *minio.Client

// Init 初始化 MinIO 客户端并确保视频文件 Bucket 存在
func Init(cfg *config.MinIOConfig) error {
	var err error
	client, err = minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
		logger.Info("MinIO bucket created", zap.String("bucket", cfg.Bucket))
	}

	logger.Info("MinIO connected",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("bucket", cfg.Bucket),
	)

	return nil
}

// Get 获取 MinIO 客户端实例
func Get() *minio.Client {
	return client
}

// URLResolver 把视频文件的对象路径转换为可直接播放的预签名 URL
type URLResolver struct {
	client *minio.Client
	bucket string
	expiry time.Duration
}

func NewURLResolver(c *minio.Client, bucket string, expiry time.Duration) *URLResolver {
	return &URLResolver{client: c, bucket: bucket, expiry: expiry}
}

// ObjectURL 生成预签名下载 URL
func (r *URLResolver) ObjectURL(ctx context.Context, objectKey string) (string, error) {
	presignedURL, err := r.client.PresignedGetObject(ctx, r.bucket, objectKey, r.expiry, make(url.Values))
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned url: %w", err)
	}
	return presignedURL.String(), nil
}
