package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balaiwarga/dashboard/internal/models"
)

func TestServiceCreateAndValidate(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	user := models.User{ID: "u1", Name: "Admin", Email: "admin@example.com"}
	token, err := svc.Create(ctx, user, "connect.sid=abc", time.Hour)
	require.NoError(t, err)
	assert.Len(t, token, 64)

	sess, err := svc.Validate(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "Admin", sess.User.Name)
	assert.Equal(t, "connect.sid=abc", sess.UpstreamCookie)
}

func TestServiceTokensAreUnique(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	t1, err := svc.Create(ctx, models.User{ID: "u1"}, "c", time.Hour)
	require.NoError(t, err)
	t2, err := svc.Create(ctx, models.User{ID: "u1"}, "c", time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, t1, t2)
}

func TestServiceValidateUnknownToken(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	sess, err := svc.Validate(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestServiceExpiredSessionIsRejectedAndCleaned(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	token, err := svc.Create(ctx, models.User{ID: "u1"}, "c", -time.Minute)
	require.NoError(t, err)

	sess, err := svc.Validate(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, sess)

	stored, err := repo.GetByToken(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestServiceUpdateKeepsToken(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	token, err := svc.Create(ctx, models.User{ID: "u1", Name: "Before"}, "c", time.Hour)
	require.NoError(t, err)

	sess, err := svc.Validate(ctx, token)
	require.NoError(t, err)
	sess.User.Name = "After"
	require.NoError(t, svc.Update(ctx, sess))

	again, err := svc.Validate(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.Equal(t, "After", again.User.Name)
}

func TestServiceDelete(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	token, err := svc.Create(ctx, models.User{ID: "u1"}, "c", time.Hour)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, token))

	sess, err := svc.Validate(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestMemoryRepositoryReturnsCopies(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	orig := &Session{Token: "t", User: models.User{Name: "A"}, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, orig))

	got, err := repo.GetByToken(ctx, "t")
	require.NoError(t, err)
	got.User.Name = "mutated"

	again, err := repo.GetByToken(ctx, "t")
	require.NoError(t, err)
	assert.Equal(t, "A", again.User.Name)
}
