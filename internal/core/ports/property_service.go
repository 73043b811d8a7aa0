package ports

import (
	"context"

	"github.com/imoveiscrm/realestate-api/internal/core/domain"
)

// ViewRecorder accepts property views for asynchronous counting.
type ViewRecorder interface {
	Record(propertyID string)
}

type PropertyService interface {
	List(ctx context.Context) ([]*domain.Property, error)
	// Get returns the property and records one view.
	Get(ctx context.Context, id string) (*domain.Property, error)
	Create(ctx context.Context, in domain.NewProperty) (*domain.Property, error)
	Update(ctx context.Context, id string, patch domain.PropertyPatch) (*domain.Property, error)
	Delete(ctx context.Context, id string) error

	Like(ctx context.Context, userID, propertyID string) (*domain.PropertyLike, bool, error)
	Unlike(ctx context.Context, userID, propertyID string) error
	LikedPropertyIDs(ctx context.Context, userID string) ([]string, error)
}
