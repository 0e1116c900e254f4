// File: database/repository/token/token_mongo.go
package tokenRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"auralynk/database"
	"auralynk/models"
)

type mongoTokenRepo struct {
	coll *mongo.Collection
}

// NewMongoTokenRepo constructs a new MongoDB TokenRepository.
func NewMongoTokenRepo() TokenRepository {
	return &mongoTokenRepo{
		coll: database.DB().Collection("bookingTokens"),
	}
}

func (r *mongoTokenRepo) Create(ctx context.Context, token *models.ConfirmationToken) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now().UTC()
	}

	if _, err := r.coll.InsertOne(ctx, token); err != nil {
		return fmt.Errorf("failed to insert confirmation token: %w", err)
	}
	return nil
}

func (r *mongoTokenRepo) GetByID(ctx context.Context, id string) (*models.ConfirmationToken, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var token models.ConfirmationToken
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&token); err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *mongoTokenRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "bookingId", Value: 1}},
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create token indexes: %w", err)
	}
	return nil
}
