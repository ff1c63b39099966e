package uploads

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balaiwarga/dashboard/internal/storage"
	"github.com/balaiwarga/dashboard/internal/validation"
)

// recordingStorage counts calls so tests can assert exactly which network
// operations a Replace run performed.
type recordingStorage struct {
	uploads   int
	deletes   []string
	uploadURL string
	deleteErr error
}

func (s *recordingStorage) Upload(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (*storage.UploadResult, error) {
	s.uploads++
	return &storage.UploadResult{URL: s.uploadURL, Key: storage.KeyFromURL(s.uploadURL)}, nil
}

func (s *recordingStorage) Delete(ctx context.Context, key string) error {
	s.deletes = append(s.deletes, key)
	return s.deleteErr
}

func (s *recordingStorage) PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	return "", nil
}

func fileHeader(t *testing.T, filename, contentType string, size int) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("a"), size))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(8<<20))
	return req.MultipartForm.File["file"][0]
}

func TestReplaceUploadsThenDeletesOld(t *testing.T) {
	store := &recordingStorage{uploadURL: "https://cdn.example.com/uploads/new.jpg"}
	fh := fileHeader(t, "new.jpg", "image/jpeg", 100)

	res, err := Replace(context.Background(), store, fh, "Image", 2, "https://cdn.example.com/uploads/abc.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/uploads/new.jpg", res.URL)
	assert.Equal(t, 1, store.uploads)
	assert.Equal(t, []string{"uploads/abc.jpg"}, store.deletes)
}

func TestReplaceNoOldURLSkipsDelete(t *testing.T) {
	store := &recordingStorage{uploadURL: "https://cdn.example.com/uploads/new.jpg"}
	fh := fileHeader(t, "new.jpg", "image/png", 100)

	res, err := Replace(context.Background(), store, fh, "Image", 2, "")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 1, store.uploads)
	assert.Empty(t, store.deletes)
}

func TestReplaceSameURLSkipsDelete(t *testing.T) {
	store := &recordingStorage{uploadURL: "https://cdn.example.com/uploads/same.jpg"}
	fh := fileHeader(t, "same.jpg", "image/webp", 100)

	_, err := Replace(context.Background(), store, fh, "Image", 2, "https://cdn.example.com/uploads/same.jpg")
	require.NoError(t, err)
	assert.Empty(t, store.deletes)
}

func TestReplaceOversizeFailsBeforeAnyCall(t *testing.T) {
	store := &recordingStorage{uploadURL: "https://cdn.example.com/uploads/new.jpg"}
	fh := fileHeader(t, "big.jpg", "image/jpeg", 2*1024*1024+1)

	res, err := Replace(context.Background(), store, fh, "Avatar", 2, "https://cdn.example.com/uploads/abc.jpg")
	require.Error(t, err)
	assert.Nil(t, res)
	var verr *validation.FieldError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Avatar must be less than 2MB", verr.Message)
	assert.Equal(t, 0, store.uploads)
	assert.Empty(t, store.deletes)
}

func TestReplaceExactLimitAccepted(t *testing.T) {
	store := &recordingStorage{uploadURL: "https://cdn.example.com/uploads/new.jpg"}
	fh := fileHeader(t, "full.jpg", "image/jpeg", 2*1024*1024)

	_, err := Replace(context.Background(), store, fh, "Image", 2, "")
	require.NoError(t, err)
	assert.Equal(t, 1, store.uploads)
}

func TestReplaceNonImageRejected(t *testing.T) {
	store := &recordingStorage{uploadURL: "https://cdn.example.com/uploads/new.jpg"}
	fh := fileHeader(t, "doc.pdf", "application/pdf", 100)

	_, err := Replace(context.Background(), store, fh, "Image", 2, "")
	require.Error(t, err)
	assert.Equal(t, "File must be an image (JPEG, PNG, or WebP)", err.Error())
	assert.Equal(t, 0, store.uploads)
}

func TestReplaceDeleteFailureReturnsResultAndError(t *testing.T) {
	store := &recordingStorage{
		uploadURL: "https://cdn.example.com/uploads/new.jpg",
		deleteErr: errors.New("Failed to delete file"),
	}
	fh := fileHeader(t, "new.jpg", "image/jpeg", 100)

	res, err := Replace(context.Background(), store, fh, "Image", 2, "https://cdn.example.com/uploads/old.jpg")
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "https://cdn.example.com/uploads/new.jpg", res.URL)
	assert.Equal(t, 1, store.uploads)
	assert.Equal(t, []string{"uploads/old.jpg"}, store.deletes)
}
