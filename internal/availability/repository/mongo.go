package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	availabilityerrors "slotlink/internal/availability/errors"
	"slotlink/pkg/civil"
	"slotlink/pkg/config"
	"slotlink/pkg/db"
	"slotlink/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoAvailabilityRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoAvailabilityRepository(cfg *config.Config) AvailabilityRepository {
	database := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAvailabilityRepository{
		cfg:        cfg,
		collection: database.Collection(CollectionName),
	}
}

func (r *mongoAvailabilityRepository) FindWindow(ctx context.Context, ownerID string, date civil.Date) (*model.AvailabilityWindow, error) {
	ctx, cancel := db.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"owner_id": ownerID, "date": date.String()}

	var doc windowDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, availabilityerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find availability window: %w", err)
	}
	return doc.toModel()
}

// UpsertWindow relies on the unique (owner_id, date) index. Two concurrent
// upserts for a new key can both miss and one of them fails with a duplicate
// key error; retrying once turns it into a plain update.
func (r *mongoAvailabilityRepository) UpsertWindow(ctx context.Context, w *model.AvailabilityWindow) (bool, error) {
	ctx, cancel := db.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	filter := bson.M{"owner_id": w.OwnerID, "date": w.Date.String()}
	update := bson.M{
		"$set": bson.M{
			"start_time": w.StartTime.String(),
			"end_time":   w.EndTime.String(),
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"created_at": now,
		},
	}
	opts := options.Update().SetUpsert(true)

	result, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if mongo.IsDuplicateKeyError(err) {
		result, err = r.collection.UpdateOne(ctx, filter, update, opts)
	}
	if err != nil {
		return false, fmt.Errorf("failed to upsert availability window: %w", err)
	}

	var doc windowDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		return false, fmt.Errorf("failed to read back availability window: %w", err)
	}
	w.CreatedAt = doc.CreatedAt
	w.UpdatedAt = doc.UpdatedAt

	return result.UpsertedCount == 1, nil
}

func (r *mongoAvailabilityRepository) ListWindows(ctx context.Context, ownerID string, from *civil.Date) ([]*model.AvailabilityWindow, error) {
	ctx, cancel := db.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"owner_id": ownerID}
	if from != nil {
		filter["date"] = bson.M{"$gte": from.String()}
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability windows: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []windowDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode availability windows: %w", err)
	}

	windows := make([]*model.AvailabilityWindow, 0, len(docs))
	for _, doc := range docs {
		w, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	return windows, nil
}
