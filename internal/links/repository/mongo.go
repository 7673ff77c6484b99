package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	linkerrors "slotlink/internal/links/errors"
	"slotlink/pkg/config"
	"slotlink/pkg/db"
	"slotlink/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoLinkRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoLinkRepository(cfg *config.Config) LinkRepository {
	database := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoLinkRepository{
		cfg:        cfg,
		collection: database.Collection(CollectionName),
	}
}

func (r *mongoLinkRepository) FindLink(ctx context.Context, linkID string) (*model.BookingLink, error) {
	ctx, cancel := db.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var doc linkDocument
	if err := r.collection.FindOne(ctx, bson.M{"link_id": linkID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, linkerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking link: %w", err)
	}
	return doc.toModel(), nil
}

func (r *mongoLinkRepository) CreateLink(ctx context.Context, link *model.BookingLink) error {
	ctx, cancel := db.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	link.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	doc := linkDocument{
		LinkID:              link.LinkID,
		OwnerID:             link.OwnerID,
		SlotDurationMinutes: link.SlotDurationMinutes,
		Active:              link.Active,
		CreatedAt:           link.CreatedAt,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return linkerrors.ErrDuplicateLink
		}
		return fmt.Errorf("failed to create booking link: %w", err)
	}
	return nil
}

func (r *mongoLinkRepository) SetActive(ctx context.Context, linkID string, active bool) (*model.BookingLink, error) {
	ctx, cancel := db.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"active": active}}

	var doc linkDocument
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"link_id": linkID}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, linkerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update booking link: %w", err)
	}
	return doc.toModel(), nil
}
