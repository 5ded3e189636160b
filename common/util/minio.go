package util

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sunthewhat/easy-cert-form/type/shared"
)

// MinIOArchiver copies delivered certificates into a bucket.
type MinIOArchiver struct {
	client *minio.Client
	bucket string
}

func InitMinIO(cfg shared.StorageConfig) (*MinIOArchiver, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("MinIO configuration is incomplete")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	slog.Info("MinIO archive enabled", "endpoint", cfg.Endpoint, "bucket", cfg.Bucket)

	return NewMinIOArchiver(client, cfg.Bucket), nil
}

func NewMinIOArchiver(client *minio.Client, bucket string) *MinIOArchiver {
	return &MinIOArchiver{
		client: client,
		bucket: bucket,
	}
}

func (a *MinIOArchiver) Archive(ctx context.Context, path string, objectName string, contentType string) error {
	if a.client == nil {
		return fmt.Errorf("MinIO client not initialized")
	}

	if err := a.ensureBucket(ctx); err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	info, err := a.client.PutObject(ctx, a.bucket, objectName, file, stat.Size(), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}

	slog.Info("File archived to MinIO", "bucket", a.bucket, "object", objectName, "size", info.Size)
	return nil
}

func (a *MinIOArchiver) ensureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}
