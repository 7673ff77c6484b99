package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	availabilityrepository "slotlink/internal/availability/repository"
	bookingsrepository "slotlink/internal/bookings/repository"
	linksrepository "slotlink/internal/links/repository"
	"slotlink/internal/migrations/mongo/validators"
	"slotlink/pkg/logger"
)

type CollectionDef struct {
	Indexes   []mongo.IndexModel
	Validator bson.M
}

var (
	AvailabilityIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("owner_date_unique"),
		},
	}

	LinkIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "link_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("link_id_unique"),
		},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	}

	// The unique slot index is what makes a claim succeed at most once.
	BookingsIndexes = []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "link_id", Value: 1},
				{Key: "date", Value: 1},
				{Key: "start_time", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("link_slot_unique"),
		},
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "date", Value: 1}}},
	}
)

// Collections maps each collection to its schema validator and indexes.
func Collections() map[string]CollectionDef {
	return map[string]CollectionDef{
		availabilityrepository.CollectionName: {
			Indexes:   AvailabilityIndexes,
			Validator: validators.AvailabilityValidator,
		},
		linksrepository.CollectionName: {
			Indexes:   LinkIndexes,
			Validator: validators.LinkValidator,
		},
		bookingsrepository.CollectionName: {
			Indexes:   BookingsIndexes,
			Validator: validators.BookingValidator,
		},
	}
}

func RunMigration(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	log.Info("Running Mongo migrations", "database", db.Name())

	for name, def := range Collections() {
		if err := ensureCollection(ctx, db, name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	log.Info("All Mongo migrations applied")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	coll := db.Collection(name)
	if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "count", len(models))
	return nil
}
