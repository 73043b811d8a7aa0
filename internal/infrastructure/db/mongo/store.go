package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collectionUsers      = "users"
	collectionProperties = "properties"
	collectionLikes      = "property_likes"
)

// Store implements ports.EntityStore on top of three collections.
type Store struct {
	*UserRepository
	*PropertyRepository
	*LikeRepository

	db *mongo.Database
}

func NewStore(db *mongo.Database) *Store {
	likes := NewLikeRepository(db)
	return &Store{
		UserRepository:     NewUserRepository(db),
		PropertyRepository: NewPropertyRepository(db, likes),
		LikeRepository:     likes,
		db:                 db,
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

// EnsureIndexes creates the unique constraints the store relies on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := s.db.Collection(collectionUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("users index: %w", err)
	}

	if _, err := s.db.Collection(collectionProperties).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}},
	}); err != nil {
		return fmt.Errorf("properties index: %w", err)
	}

	if _, err := s.db.Collection(collectionLikes).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "property_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "property_id", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("likes index: %w", err)
	}
	return nil
}
