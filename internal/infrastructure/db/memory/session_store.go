package memory

import (
	"context"
	"sync"
	"time"

	"github.com/imoveiscrm/realestate-api/internal/core/domain"
)

// SessionStore keeps sessions in a map keyed by token hash. Expired
// entries are dropped lazily on read and by Sweep.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*domain.Session),
		now:      time.Now,
	}
}

func (s *SessionStore) Ping(context.Context) error { return nil }

func (s *SessionStore) Create(_ context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *sess
	s.sessions[sess.TokenHash] = &clone
	return nil
}

func (s *SessionStore) Get(_ context.Context, tokenHash string) (*domain.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[tokenHash]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if sess.Expired(s.now()) {
		s.mu.Lock()
		delete(s.sessions, tokenHash)
		s.mu.Unlock()
		return nil, domain.ErrSessionNotFound
	}
	clone := *sess
	return &clone, nil
}

func (s *SessionStore) Delete(_ context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, tokenHash)
	return nil
}

// Sweep removes every expired session and returns how many were dropped.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for k, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, k)
			n++
		}
	}
	return n
}

// RunSweeper calls Sweep every interval until ctx is cancelled.
func (s *SessionStore) RunSweeper(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Sweep()
		}
	}
}
