package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/imoveiscrm/realestate-api/internal/core/domain"
)

// LikeRepository depends on the unique (user_id, property_id) index
// created by Store.EnsureIndexes.
type LikeRepository struct {
	col *mongo.Collection
}

func NewLikeRepository(db *mongo.Database) *LikeRepository {
	return &LikeRepository{col: db.Collection(collectionLikes)}
}

type mongoLike struct {
	ID         string    `bson:"_id"`
	UserID     string    `bson:"user_id"`
	PropertyID string    `bson:"property_id"`
	CreatedAt  time.Time `bson:"created_at"`
}

func (l mongoLike) toDomain() *domain.PropertyLike {
	return &domain.PropertyLike{
		ID:         l.ID,
		UserID:     l.UserID,
		PropertyID: l.PropertyID,
		CreatedAt:  l.CreatedAt.UTC(),
	}
}

func (r *LikeRepository) LikeProperty(ctx context.Context, userID, propertyID string) (*domain.PropertyLike, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoLike{
		ID:         uuid.NewString(),
		UserID:     userID,
		PropertyID: propertyID,
		CreatedAt:  time.Now().UTC().Truncate(time.Millisecond),
	}
	_, err := r.col.InsertOne(ctx, doc)
	if err == nil {
		return doc.toDomain(), true, nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return nil, false, fmt.Errorf("insert like: %w", err)
	}

	var existing mongoLike
	if err := r.col.FindOne(ctx, pairFilter(userID, propertyID)).Decode(&existing); err != nil {
		return nil, false, fmt.Errorf("find like: %w", err)
	}
	return existing.toDomain(), false, nil
}

func (r *LikeRepository) UnlikeProperty(ctx context.Context, userID, propertyID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, pairFilter(userID, propertyID))
	if err != nil {
		return false, fmt.Errorf("delete like: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *LikeRepository) GetUserLikedProperties(ctx context.Context, userID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"property_id": 1})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list likes: %w", err)
	}
	defer cur.Close(ctx)

	ids := make([]string, 0)
	for cur.Next(ctx) {
		var l mongoLike
		if err := cur.Decode(&l); err != nil {
			return nil, fmt.Errorf("decode like: %w", err)
		}
		ids = append(ids, l.PropertyID)
	}
	return ids, cur.Err()
}

func (r *LikeRepository) IsPropertyLikedByUser(ctx context.Context, userID, propertyID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	err := r.col.FindOne(ctx, pairFilter(userID, propertyID)).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("find like: %w", err)
	}
	return true, nil
}

func (r *LikeRepository) deleteByProperty(ctx context.Context, propertyID string) error {
	if _, err := r.col.DeleteMany(ctx, bson.M{"property_id": propertyID}); err != nil {
		return fmt.Errorf("delete likes of property: %w", err)
	}
	return nil
}

func pairFilter(userID, propertyID string) bson.M {
	return bson.M{"user_id": userID, "property_id": propertyID}
}
