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

type PropertyRepository struct {
	col *mongo.Collection
	// cascade removes what references a deleted property. It runs in the
	// same transaction as the delete.
	cascade func(ctx context.Context, propertyID string) error
}

func NewPropertyRepository(db *mongo.Database, likes *LikeRepository) *PropertyRepository {
	return &PropertyRepository{col: db.Collection(collectionProperties), cascade: likes.deleteByProperty}
}

type mongoProperty struct {
	ID          string    `bson:"_id"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	Location    string    `bson:"location"`
	Price       string    `bson:"price"`
	Bedrooms    int       `bson:"bedrooms"`
	Bathrooms   int       `bson:"bathrooms"`
	Area        int       `bson:"area"`
	Images      []string  `bson:"images"`
	Views       int       `bson:"views"`
	CreatedAt   time.Time `bson:"created_at"`
}

func (p mongoProperty) toDomain() *domain.Property {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return &domain.Property{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Location:    p.Location,
		Price:       p.Price,
		Bedrooms:    p.Bedrooms,
		Bathrooms:   p.Bathrooms,
		Area:        p.Area,
		Images:      images,
		Views:       p.Views,
		CreatedAt:   p.CreatedAt.UTC(),
	}
}

func (r *PropertyRepository) CreateProperty(ctx context.Context, in domain.NewProperty) (*domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoProperty{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Price:       in.Price,
		Bedrooms:    in.Bedrooms,
		Bathrooms:   in.Bathrooms,
		Area:        in.Area,
		Images:      append([]string{}, in.Images...),
		CreatedAt:   time.Now().UTC().Truncate(time.Millisecond),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert property: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PropertyRepository) GetProperty(ctx context.Context, id string) (*domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p mongoProperty
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("find property: %w", err)
	}
	return p.toDomain(), nil
}

// GetAllProperties orders by creation time, with the id as tie-breaker.
func (r *PropertyRepository) GetAllProperties(ctx context.Context) ([]*domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]*domain.Property, 0)
	for cur.Next(ctx) {
		var p mongoProperty
		if err := cur.Decode(&p); err != nil {
			return nil, fmt.Errorf("decode property: %w", err)
		}
		out = append(out, p.toDomain())
	}
	return out, cur.Err()
}

func (r *PropertyRepository) UpdateProperty(ctx context.Context, id string, patch domain.PropertyPatch) (*domain.Property, error) {
	set := patchToSet(patch)
	if len(set) == 0 {
		return r.GetProperty(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p mongoProperty
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("update property: %w", err)
	}
	return p.toDomain(), nil
}

// DeleteProperty removes the property and its likes in one transaction, so
// the deployment must be a replica set or a sharded cluster.
func (r *PropertyRepository) DeleteProperty(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	sess, err := r.col.Database().Client().StartSession()
	if err != nil {
		return false, fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	deleted, err := sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := r.col.DeleteOne(sc, bson.M{"_id": id})
		if err != nil {
			return false, fmt.Errorf("delete property: %w", err)
		}
		if res.DeletedCount == 0 {
			return false, nil
		}
		if err := r.cascade(sc, id); err != nil {
			return false, err
		}
		return true, nil
	})
	if err != nil {
		return false, err
	}
	return deleted.(bool), nil
}

// IncrementPropertyViews relies on $inc, which the server applies atomically
// per document.
func (r *PropertyRepository) IncrementPropertyViews(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}}); err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}

func patchToSet(p domain.PropertyPatch) bson.M {
	set := bson.M{}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Location != nil {
		set["location"] = *p.Location
	}
	if p.Price != nil {
		set["price"] = *p.Price
	}
	if p.Bedrooms != nil {
		set["bedrooms"] = *p.Bedrooms
	}
	if p.Bathrooms != nil {
		set["bathrooms"] = *p.Bathrooms
	}
	if p.Area != nil {
		set["area"] = *p.Area
	}
	if p.Images != nil {
		set["images"] = append([]string{}, (*p.Images)...)
	}
	return set
}
