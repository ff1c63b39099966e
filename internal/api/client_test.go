package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balaiwarga/dashboard/internal/models"
)

func TestDoUnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/testimonials", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":"t1","name":"Ani","rating":5}],"errors":""}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 0)
	var out []models.Testimonial
	err := c.Do(context.Background(), http.MethodGet, "/api/testimonials", nil, &out)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "t1", out[0].ID)
	assert.Equal(t, 5, out[0].Rating)
}

func TestDoNullDataIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":null,"errors":""}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 0)
	var out []models.Testimonial
	err := c.Do(context.Background(), http.MethodGet, "/api/testimonials", nil, &out)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDoErrorUsesEnvelopeMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"data":null,"errors":"Email or password is wrong"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 0)
	err := c.Do(context.Background(), http.MethodPost, "/api/users/_login", nil, nil)
	require.Error(t, err)
	apiErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Email or password is wrong", apiErr.Message)
}

func TestDoErrorFallsBackToStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	c := New(srv.URL, 0)
	err := c.Do(context.Background(), http.MethodGet, "/api/galleries", nil, nil)
	require.Error(t, err)
	assert.Equal(t, "API Error: 502", err.Error())
}

func TestRequestAttachesContextCredential(t *testing.T) {
	var gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCookie = r.Header.Get("Cookie")
		w.Write([]byte(`{"data":{},"errors":""}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 0)
	ctx := WithCredential(context.Background(), "connect.sid=abc123")
	err := c.Do(ctx, http.MethodGet, "/api/users/_current", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "connect.sid=abc123", gotCookie)
}

func TestCredentialFromContextEmpty(t *testing.T) {
	assert.Equal(t, "", CredentialFromContext(context.Background()))
}

func TestCollectionCreateAndDelete(t *testing.T) {
	var method, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.Write([]byte(`{"data":{"id":"g1","title":"New"},"errors":""}`))
	}))
	defer srv.Close()

	col := NewCollection[models.Gallery](New(srv.URL, 0), "/api/galleries")

	created, err := col.Create(context.Background(), &models.Gallery{Title: "New"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "/api/galleries", path)
	assert.Equal(t, "g1", created.ID)

	require.NoError(t, col.Delete(context.Background(), "g1"))
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/api/galleries/g1", path)
}
