package storage

import (
	"context"
	"io"
	"strings"
	"time"
)

// UploadResult is what the storage backend reports for a stored object: the
// public URL persisted on content records and the backend-assigned key used
// for deletes. Records persist only the URL, which is why KeyFromURL exists.
type UploadResult struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// Storage is the object-store surface the dashboard needs. The default
// implementation goes through the upstream API's storage endpoints; an
// optional implementation talks to a MinIO/S3 bucket directly.
type Storage interface {
	Upload(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (*UploadResult, error)
	Delete(ctx context.Context, key string) error
	PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

// KeyFromURL derives the storage key for an object from its public URL: all
// uploads live under the uploads/ prefix and the key's final segment is the
// URL's final path segment. Returns "" when no segment can be derived, in
// which case callers skip the delete rather than guessing.
func KeyFromURL(rawURL string) string {
	trimmed := strings.TrimRight(rawURL, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 || idx == len(trimmed)-1 {
		return ""
	}
	base := trimmed[idx+1:]
	if base == "" {
		return ""
	}
	return "uploads/" + base
}
