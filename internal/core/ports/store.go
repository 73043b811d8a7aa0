package ports

import (
	"context"

	"github.com/imoveiscrm/realestate-api/internal/core/domain"
)

// UserStore persists user accounts.
type UserStore interface {
	// GetUser returns domain.ErrUserNotFound when id is unknown.
	GetUser(ctx context.Context, id string) (*domain.User, error)
	// GetUserByEmail matches the email exactly as stored.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	// CreateUser assigns ID and CreatedAt, defaults Role to client, and
	// returns domain.ErrUserExists when the email is taken.
	CreateUser(ctx context.Context, in domain.NewUser) (*domain.User, error)
	CountUsers(ctx context.Context) (int, error)
}

// PropertyStore persists listings.
type PropertyStore interface {
	GetProperty(ctx context.Context, id string) (*domain.Property, error)
	// GetAllProperties returns listings in insertion order.
	GetAllProperties(ctx context.Context) ([]*domain.Property, error)
	CreateProperty(ctx context.Context, in domain.NewProperty) (*domain.Property, error)
	// UpdateProperty merges patch onto the stored record and returns the result.
	UpdateProperty(ctx context.Context, id string, patch domain.PropertyPatch) (*domain.Property, error)
	// DeleteProperty reports whether a record existed. Likes of the property go with it.
	DeleteProperty(ctx context.Context, id string) (bool, error)
	// IncrementPropertyViews adds exactly one view; unknown ids are a no-op.
	IncrementPropertyViews(ctx context.Context, id string) error
}

// LikeStore persists favourites.
type LikeStore interface {
	// LikeProperty is idempotent per (userID, propertyID): a repeat call
	// returns the existing like and created=false.
	LikeProperty(ctx context.Context, userID, propertyID string) (like *domain.PropertyLike, created bool, err error)
	UnlikeProperty(ctx context.Context, userID, propertyID string) (bool, error)
	GetUserLikedProperties(ctx context.Context, userID string) ([]string, error)
	IsPropertyLikedByUser(ctx context.Context, userID, propertyID string) (bool, error)
}

// EntityStore is the full storage contract shared by every backend.
type EntityStore interface {
	UserStore
	PropertyStore
	LikeStore
	Ping(ctx context.Context) error
}
