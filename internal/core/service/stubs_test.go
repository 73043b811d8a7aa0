package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/imoveiscrm/realestate-api/internal/core/domain"
)

type stubUserStore struct {
	mu      sync.Mutex
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
	seq     int
	findErr error
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{byID: map[string]*domain.User{}, byEmail: map[string]*domain.User{}}
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func (r *stubUserStore) GetUser(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserStore) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserStore) CreateUser(_ context.Context, in domain.NewUser) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[in.Email]; ok {
		return nil, domain.ErrUserExists
	}
	r.seq++
	role := in.Role
	if role == "" {
		role = domain.RoleClient
	}
	u := &domain.User{
		ID:           fmt.Sprintf("user-%d", r.seq),
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		Role:         role,
		Name:         in.Name,
		CreatedAt:    time.Now().UTC(),
	}
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u
	return cloneUser(u), nil
}

func (r *stubUserStore) CountUsers(context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID), nil
}

func (r *stubUserStore) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		delete(r.byEmail, u.Email)
		delete(r.byID, id)
	}
}

type stubSessionStore struct {
	mu        sync.Mutex
	sessions  map[string]*domain.Session
	createErr error
	deleteErr error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: map[string]*domain.Session{}}
}

func (s *stubSessionStore) Create(_ context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	c := *sess
	s.sessions[sess.TokenHash] = &c
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, hash string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[hash]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	c := *sess
	return &c, nil
}

func (s *stubSessionStore) Delete(_ context.Context, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.sessions, hash)
	return nil
}

func (s *stubSessionStore) Ping(context.Context) error { return nil }

func (s *stubSessionStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
