// Package memory provides the process-local storage backends. All data is
// lost on restart.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/imoveiscrm/realestate-api/internal/core/domain"
)

type likeKey struct {
	userID     string
	propertyID string
}

// Store is an in-memory ports.EntityStore. A single RWMutex serialises
// writers, which makes every read-modify-write (view counts included)
// atomic per record.
type Store struct {
	mu sync.RWMutex

	users        map[string]*domain.User
	usersByEmail map[string]string

	properties map[string]*domain.Property
	order      []string

	likes map[likeKey]*domain.PropertyLike

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:        make(map[string]*domain.User),
		usersByEmail: make(map[string]string),
		properties:   make(map[string]*domain.Property),
		likes:        make(map[likeKey]*domain.PropertyLike),
		now:          time.Now,
	}
}

func (s *Store) Ping(context.Context) error { return nil }

// --- users ---

func (s *Store) GetUser(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	id, ok := s.usersByEmail[email]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return s.GetUser(ctx, id)
}

func (s *Store) CreateUser(_ context.Context, in domain.NewUser) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.usersByEmail[in.Email]; taken {
		return nil, domain.ErrUserExists
	}

	role := in.Role
	if role == "" {
		role = domain.RoleClient
	}
	u := &domain.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		Role:         role,
		Name:         in.Name,
		CreatedAt:    s.now().UTC(),
	}
	s.users[u.ID] = u
	s.usersByEmail[u.Email] = u.ID

	clone := *u
	return &clone, nil
}

func (s *Store) CountUsers(context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}

// --- properties ---

func (s *Store) GetProperty(_ context.Context, id string) (*domain.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.properties[id]
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}
	return p.Clone(), nil
}

func (s *Store) GetAllProperties(context.Context) ([]*domain.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Property, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.properties[id].Clone())
	}
	return out, nil
}

func (s *Store) CreateProperty(_ context.Context, in domain.NewProperty) (*domain.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := &domain.Property{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Price:       in.Price,
		Bedrooms:    in.Bedrooms,
		Bathrooms:   in.Bathrooms,
		Area:        in.Area,
		Images:      append([]string(nil), in.Images...),
		Views:       0,
		CreatedAt:   s.now().UTC(),
	}
	s.properties[p.ID] = p
	s.order = append(s.order, p.ID)
	return p.Clone(), nil
}

func (s *Store) UpdateProperty(_ context.Context, id string, patch domain.PropertyPatch) (*domain.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.properties[id]
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}
	patch.Apply(p)
	return p.Clone(), nil
}

func (s *Store) DeleteProperty(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.properties[id]; !ok {
		return false, nil
	}
	delete(s.properties, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	for k := range s.likes {
		if k.propertyID == id {
			delete(s.likes, k)
		}
	}
	return true, nil
}

func (s *Store) IncrementPropertyViews(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.properties[id]; ok {
		p.Views++
	}
	return nil
}

// --- likes ---

func (s *Store) LikeProperty(_ context.Context, userID, propertyID string) (*domain.PropertyLike, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := likeKey{userID: userID, propertyID: propertyID}
	if existing, ok := s.likes[key]; ok {
		clone := *existing
		return &clone, false, nil
	}

	like := &domain.PropertyLike{
		ID:         uuid.NewString(),
		UserID:     userID,
		PropertyID: propertyID,
		CreatedAt:  s.now().UTC(),
	}
	s.likes[key] = like
	clone := *like
	return &clone, true, nil
}

func (s *Store) UnlikeProperty(_ context.Context, userID, propertyID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := likeKey{userID: userID, propertyID: propertyID}
	if _, ok := s.likes[key]; !ok {
		return false, nil
	}
	delete(s.likes, key)
	return true, nil
}

func (s *Store) GetUserLikedProperties(_ context.Context, userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0)
	for k := range s.likes {
		if k.userID == userID {
			ids = append(ids, k.propertyID)
		}
	}
	return ids, nil
}

func (s *Store) IsPropertyLikedByUser(_ context.Context, userID, propertyID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.likes[likeKey{userID: userID, propertyID: propertyID}]
	return ok, nil
}
