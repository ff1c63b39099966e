package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/balaiwarga/dashboard/pkg/metrics"
)

// MinIOStorage talks to an S3-compatible bucket directly, bypassing the
// upstream's storage endpoints. Object keys are generated here as
// uploads/<uuid><ext> so that KeyFromURL keeps working on the resulting
// public URLs.
type MinIOStorage struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
}

// NewMinIOStorage creates a direct storage client and ensures the bucket exists.
func NewMinIOStorage(cfg *MinIOConfig) (*MinIOStorage, error) {
	if cfg == nil || cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio config missing")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	base := cfg.PublicBaseURL
	if base == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}
	s := &MinIOStorage{client: mc, bucket: cfg.Bucket, publicBaseURL: strings.TrimRight(base, "/")}
	// ensure bucket exists (idempotent)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mc.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		exist, xerr := mc.BucketExists(ctx, s.bucket)
		if xerr != nil || !exist {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	return s, nil
}

// Upload stores the file under a fresh uploads/ key and returns the public
// URL alongside it.
func (s *MinIOStorage) Upload(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (*UploadResult, error) {
	key := "uploads/" + uuid.NewString() + strings.ToLower(path.Ext(filename))
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		metrics.StorageUploads.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.StorageUploads.WithLabelValues("ok").Inc()
	return &UploadResult{URL: s.publicBaseURL + "/" + key, Key: key}, nil
}

// Delete removes the object; missing objects are not an error for S3-style
// stores, which matches the idempotent contract.
func (s *MinIOStorage) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		metrics.StorageDeletes.WithLabelValues("error").Inc()
		return err
	}
	metrics.StorageDeletes.WithLabelValues("ok").Inc()
	return nil
}

// PresignedURL returns a presigned GET URL valid for the given duration.
func (s *MinIOStorage) PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	reqParams := make(url.Values)
	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, key, expires, reqParams)
	if err != nil {
		return "", err
	}
	return presigned.String(), nil
}
