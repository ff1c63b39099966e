package sessions

import (
	"context"
	"sync"
	"time"
)

// Repository provides session persistence operations
type Repository interface {
	Create(ctx context.Context, s *Session) error
	GetByToken(ctx context.Context, token string) (*Session, error)
	DeleteByToken(ctx context.Context, token string) error
}

// MemoryRepository keeps sessions in process memory. It is the fallback when
// neither Redis nor MongoDB is configured (single-instance deployments and
// tests); sessions do not survive a restart.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*Session
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: map[string]*Session{}}
}

func (r *MemoryRepository) Create(ctx context.Context, s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	cp := *s
	r.store[s.Token] = &cp
	return nil
}

func (r *MemoryRepository) GetByToken(ctx context.Context, token string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.store[token]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if time.Now().UTC().After(s.ExpiresAt) {
		r.mu.Lock()
		delete(r.store, token)
		r.mu.Unlock()
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *MemoryRepository) DeleteByToken(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.store, token)
	return nil
}
