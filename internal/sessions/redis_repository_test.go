package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balaiwarga/dashboard/internal/models"
)

func newRedisRepo(t *testing.T) (*RedisRepository, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisRepository(client, "session:"), mr
}

func TestRedisRepositoryRoundTrip(t *testing.T) {
	repo, _ := newRedisRepo(t)
	ctx := context.Background()

	sess := &Session{
		Token:          "tok1",
		User:           models.User{ID: "u1", Name: "Admin"},
		UpstreamCookie: "connect.sid=abc",
		ExpiresAt:      time.Now().UTC().Add(time.Hour),
	}
	require.NoError(t, repo.Create(ctx, sess))

	got, err := repo.GetByToken(ctx, "tok1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Admin", got.User.Name)
	assert.Equal(t, "connect.sid=abc", got.UpstreamCookie)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestRedisRepositoryMissingToken(t *testing.T) {
	repo, _ := newRedisRepo(t)
	got, err := repo.GetByToken(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisRepositorySetsTTL(t *testing.T) {
	repo, mr := newRedisRepo(t)
	ctx := context.Background()

	sess := &Session{Token: "tok1", ExpiresAt: time.Now().UTC().Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, sess))

	ttl := mr.TTL("session:tok1")
	assert.True(t, ttl > 0 && ttl <= time.Hour, "ttl=%v", ttl)
}

func TestRedisRepositoryExpiry(t *testing.T) {
	repo, mr := newRedisRepo(t)
	ctx := context.Background()

	sess := &Session{Token: "tok1", ExpiresAt: time.Now().UTC().Add(time.Second)}
	require.NoError(t, repo.Create(ctx, sess))

	mr.FastForward(2 * time.Second)

	got, err := repo.GetByToken(ctx, "tok1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisRepositoryDelete(t *testing.T) {
	repo, _ := newRedisRepo(t)
	ctx := context.Background()

	sess := &Session{Token: "tok1", ExpiresAt: time.Now().UTC().Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, sess))
	require.NoError(t, repo.DeleteByToken(ctx, "tok1"))

	got, err := repo.GetByToken(ctx, "tok1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
