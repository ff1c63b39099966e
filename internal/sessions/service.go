package sessions

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/balaiwarga/dashboard/internal/models"
)

// Service wraps repository operations with token generation and expiry rules
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service { return &Service{repo: r} }

// Create stores a new session for the given staff member and returns the
// opaque token that goes into the dashboard cookie.
func (s *Service) Create(ctx context.Context, user models.User, upstreamCookie string, ttl time.Duration) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := hex.EncodeToString(b)
	sess := &Session{
		Token:          token,
		User:           user,
		UpstreamCookie: upstreamCookie,
		ExpiresAt:      time.Now().UTC().Add(ttl),
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return "", err
	}
	return token, nil
}

// Validate returns the session for a token, or nil when the token is unknown
// or expired. Expired sessions are cleaned up on sight.
func (s *Service) Validate(ctx context.Context, token string) (*Session, error) {
	sess, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}
	if time.Now().UTC().After(sess.ExpiresAt) {
		_ = s.repo.DeleteByToken(ctx, token)
		return nil, nil
	}
	return sess, nil
}

// Update rewrites a stored session in place (same token), used when the
// cached staff profile changes.
func (s *Service) Update(ctx context.Context, sess *Session) error {
	if err := s.repo.DeleteByToken(ctx, sess.Token); err != nil {
		return err
	}
	return s.repo.Create(ctx, sess)
}

func (s *Service) Delete(ctx context.Context, token string) error {
	return s.repo.DeleteByToken(ctx, token)
}
