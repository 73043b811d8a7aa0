package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/imoveiscrm/realestate-api/internal/core/domain"
	"github.com/imoveiscrm/realestate-api/internal/core/ports"
)

type PropertyService struct {
	props  ports.PropertyStore
	likes  ports.LikeStore
	views  ports.ViewRecorder
	logger zerolog.Logger
}

// NewPropertyService wires the listing use cases. When views is nil every
// view is counted synchronously.
func NewPropertyService(props ports.PropertyStore, likes ports.LikeStore, views ports.ViewRecorder, logger zerolog.Logger) *PropertyService {
	return &PropertyService{props: props, likes: likes, views: views, logger: logger}
}

func (s *PropertyService) List(ctx context.Context) ([]*domain.Property, error) {
	return s.props.GetAllProperties(ctx)
}

func (s *PropertyService) Get(ctx context.Context, id string) (*domain.Property, error) {
	p, err := s.props.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.views != nil {
		s.views.Record(id)
	} else if err := s.props.IncrementPropertyViews(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("property_id", id).Msg("failed to count view")
	}
	return p, nil
}

func (s *PropertyService) Create(ctx context.Context, in domain.NewProperty) (*domain.Property, error) {
	p, err := s.props.CreateProperty(ctx, in)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create property")
		return nil, err
	}
	s.logger.Info().Str("property_id", p.ID).Msg("property created")
	return p, nil
}

func (s *PropertyService) Update(ctx context.Context, id string, patch domain.PropertyPatch) (*domain.Property, error) {
	if patch.IsEmpty() {
		return nil, domain.ErrEmptyPatch
	}
	p, err := s.props.UpdateProperty(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("property_id", id).Msg("property updated")
	return p, nil
}

func (s *PropertyService) Delete(ctx context.Context, id string) error {
	ok, err := s.props.DeleteProperty(ctx, id)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if !ok {
		return domain.ErrPropertyNotFound
	}
	s.logger.Info().Str("property_id", id).Msg("property deleted")
	return nil
}

// Like marks propertyID as a favourite of userID. The boolean is false when
// the like already existed.
func (s *PropertyService) Like(ctx context.Context, userID, propertyID string) (*domain.PropertyLike, bool, error) {
	if _, err := s.props.GetProperty(ctx, propertyID); err != nil {
		return nil, false, err
	}
	return s.likes.LikeProperty(ctx, userID, propertyID)
}

func (s *PropertyService) Unlike(ctx context.Context, userID, propertyID string) error {
	ok, err := s.likes.UnlikeProperty(ctx, userID, propertyID)
	if err != nil {
		return fmt.Errorf("unlike property: %w", err)
	}
	if !ok {
		return domain.ErrLikeNotFound
	}
	return nil
}

func (s *PropertyService) LikedPropertyIDs(ctx context.Context, userID string) ([]string, error) {
	ids, err := s.likes.GetUserLikedProperties(ctx, userID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
