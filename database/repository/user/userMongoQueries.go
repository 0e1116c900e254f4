// File: database/repository/user/userMongoQueries.go
package userRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"auralynk/models"
)

func (r *mongoUserRepo) AddAvailableSlot(ctx context.Context, readerID string, slot time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": readerID, "role": models.RoleReader}
	update := bson.M{"$addToSet": bson.M{"availableSlots": slot.UTC()}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to add slot: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoUserRepo) RemoveAvailableSlot(ctx context.Context, readerID string, slot time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": readerID, "role": models.RoleReader}
	update := bson.M{"$pull": bson.M{"availableSlots": slot.UTC()}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to remove slot: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ReplaceAvailableSlots overwrites the availability list wholesale. Used by
// the pruning paths after expired entries were filtered out.
func (r *mongoUserRepo) ReplaceAvailableSlots(ctx context.Context, readerID string, slots []time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	normalized := make([]time.Time, len(slots))
	for i, s := range slots {
		normalized[i] = s.UTC()
	}

	filter := bson.M{"id": readerID, "role": models.RoleReader}
	update := bson.M{"$set": bson.M{"availableSlots": normalized}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to replace slots: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ListReaders returns readers that currently advertise at least one slot.
func (r *mongoUserRepo) ListReaders(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"role":             models.RoleReader,
		"availableSlots.0": bson.M{"$exists": true},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch readers: %w", err)
	}
	defer cursor.Close(ctx)

	var readers []models.User
	if err := cursor.All(ctx, &readers); err != nil {
		return nil, fmt.Errorf("error decoding readers: %w", err)
	}
	return readers, nil
}

func (r *mongoUserRepo) ListReaderIDs(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"role": models.RoleReader},
		// Projection keeps the sweep cheap for large reader counts.
		optionsProjection(bson.M{"id": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reader ids: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID string `bson:"id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding reader ids: %w", err)
	}

	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids, nil
}
