package persistence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOConfig holds MinIO connection configuration
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// MinIOSink stores each key as the object <key>.json in a bucket
type MinIOSink struct {
	client *minio.Client
	bucket string
}

// NewMinIOSink creates a MinIO client and ensures the bucket exists
func NewMinIOSink(ctx context.Context, cfg MinIOConfig) (*MinIOSink, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("minio config missing endpoint or bucket")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mc.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
		// an existing bucket is fine
		exists, xerr := mc.BucketExists(ctx, cfg.Bucket)
		if xerr != nil || !exists {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	return &MinIOSink{client: mc, bucket: cfg.Bucket}, nil
}

// ObjectName returns the object a key is stored as
func (m *MinIOSink) ObjectName(key string) string {
	return key + ".json"
}

// Write uploads value as the key's object
func (m *MinIOSink) Write(ctx context.Context, key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	_, err := m.client.PutObject(ctx, m.bucket, m.ObjectName(key),
		strings.NewReader(value), int64(len(value)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return &WriteError{Sink: "minio", Key: key, Cause: err}
	}
	return nil
}

// Close is a no-op; the MinIO client holds no long-lived connection to release
func (m *MinIOSink) Close() error {
	return nil
}
