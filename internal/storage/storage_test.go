package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balaiwarga/dashboard/internal/api"
)

func TestKeyFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://cdn.example.com/uploads/abc.jpg", "uploads/abc.jpg"},
		{"https://cdn.example.com/deep/nested/photo.webp", "uploads/photo.webp"},
		{"http://localhost:9000/bucket/uploads/x.png", "uploads/x.png"},
		{"abc.jpg", ""},
		{"", ""},
		{"https://cdn.example.com/", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, KeyFromURL(tc.url), "url=%q", tc.url)
	}
}

func TestAPIStorageUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/storage/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(4<<20))
		f, fh, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "photo.jpg", fh.Filename)
		body, _ := io.ReadAll(f)
		assert.Equal(t, "fake image bytes", string(body))
		w.Write([]byte(`{"data":{"url":"https://cdn.example.com/uploads/new.jpg","key":"uploads/new.jpg"},"errors":""}`))
	}))
	defer srv.Close()

	s := NewAPIStorage(api.New(srv.URL, 0))
	res, err := s.Upload(context.Background(), "photo.jpg", strings.NewReader("fake image bytes"), 16, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/uploads/new.jpg", res.URL)
	assert.Equal(t, "uploads/new.jpg", res.Key)
}

func TestAPIStorageDelete(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/storage/delete", r.URL.Path)
		gotKey = r.URL.Query().Get("key")
		w.Write([]byte(`{"data":null,"errors":""}`))
	}))
	defer srv.Close()

	s := NewAPIStorage(api.New(srv.URL, 0))
	require.NoError(t, s.Delete(context.Background(), "uploads/old.jpg"))
	assert.Equal(t, "uploads/old.jpg", gotKey)
}

func TestAPIStorageDeleteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"data":null,"errors":"Failed to delete file"}`))
	}))
	defer srv.Close()

	s := NewAPIStorage(api.New(srv.URL, 0))
	err := s.Delete(context.Background(), "uploads/old.jpg")
	require.Error(t, err)
	assert.Equal(t, "Failed to delete file", err.Error())
}

func TestAPIStoragePresignedURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/storage/presigned-url", r.URL.Path)
		assert.Equal(t, "uploads/a.jpg", r.URL.Query().Get("key"))
		assert.Equal(t, "3600", r.URL.Query().Get("expiration"))
		w.Write([]byte(`{"data":"https://cdn.example.com/signed/a.jpg","errors":""}`))
	}))
	defer srv.Close()

	s := NewAPIStorage(api.New(srv.URL, 0))
	u, err := s.PresignedURL(context.Background(), "uploads/a.jpg", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/signed/a.jpg", u)
}
