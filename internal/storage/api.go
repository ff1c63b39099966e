package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/balaiwarga/dashboard/internal/api"
	"github.com/balaiwarga/dashboard/pkg/metrics"
)

// APIStorage reaches the object store through the upstream API's storage
// endpoints, which is the default: the dashboard then needs no storage
// credentials of its own and the upstream enforces authorization via the
// session cookie the client attaches.
type APIStorage struct {
	c *api.Client
}

func NewAPIStorage(c *api.Client) *APIStorage {
	return &APIStorage{c: c}
}

// Upload submits the file as multipart form data under the "file" field. The
// JSON content type is deliberately absent; the multipart writer sets its own
// boundary header.
func (s *APIStorage) Upload(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (*UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	resp, err := s.c.Request(ctx, http.MethodPost, "/api/storage/upload", mw.FormDataContentType(), &buf)
	if err != nil {
		metrics.StorageUploads.WithLabelValues("error").Inc()
		return nil, err
	}
	defer resp.Body.Close()

	var out UploadResult
	if err := api.DecodeEnvelope(resp, &out); err != nil {
		metrics.StorageUploads.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.StorageUploads.WithLabelValues("ok").Inc()
	return &out, nil
}

// Delete removes the object behind the given key. Idempotent from the
// caller's perspective: callers never check existence first.
func (s *APIStorage) Delete(ctx context.Context, key string) error {
	err := s.c.Do(ctx, http.MethodDelete, "/api/storage/delete?key="+url.QueryEscape(key), nil, nil)
	if err != nil {
		metrics.StorageDeletes.WithLabelValues("error").Inc()
		return err
	}
	metrics.StorageDeletes.WithLabelValues("ok").Inc()
	return nil
}

// PresignedURL asks the upstream for a time-limited GET URL for the object.
func (s *APIStorage) PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	path := fmt.Sprintf("/api/storage/presigned-url?key=%s&expiration=%d", url.QueryEscape(key), int(expires.Seconds()))
	var out string
	if err := s.c.Do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return "", err
	}
	return out, nil
}
