package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "slotlink/internal/bookings/errors"
	"slotlink/pkg/civil"
	"slotlink/pkg/config"
	"slotlink/pkg/db"
	"slotlink/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

// mongoBooking adds the ObjectID the collection keys documents by.
type mongoBooking struct {
	ObjectID        primitive.ObjectID `bson:"_id,omitempty"`
	bookingDocument `bson:",inline"`
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	database := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: database.Collection(CollectionName),
	}
}

func (r *mongoBookingRepository) FindBooking(ctx context.Context, linkID string, date civil.Date, start civil.Clock) (*model.Booking, error) {
	ctx, cancel := db.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"link_id":    linkID,
		"date":       date.String(),
		"start_time": start.String(),
	}

	var doc mongoBooking
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return doc.toModel()
}

func (r *mongoBookingRepository) ListBookings(ctx context.Context, linkID string, date civil.Date) ([]*model.Booking, error) {
	return r.find(ctx, bson.M{"link_id": linkID, "date": date.String()})
}

func (r *mongoBookingRepository) ListByLink(ctx context.Context, linkID string, from *civil.Date) ([]*model.Booking, error) {
	filter := bson.M{"link_id": linkID}
	if from != nil {
		filter["date"] = bson.M{"$gte": from.String()}
	}
	return r.find(ctx, filter)
}

func (r *mongoBookingRepository) find(ctx context.Context, filter bson.M) ([]*model.Booking, error) {
	ctx, cancel := db.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoBooking
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	bookings := make([]*model.Booking, 0, len(docs))
	for _, doc := range docs {
		b, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// InsertBooking depends on the unique (link_id, date, start_time) index; the
// insert itself is the arbiter between concurrent claims.
func (r *mongoBookingRepository) InsertBooking(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := db.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	doc := mongoBooking{ObjectID: primitive.NewObjectID(), bookingDocument: newBookingDocument(booking)}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		booking.CreatedAt = time.Time{}
		if mongo.IsDuplicateKeyError(err) {
			return bookingserrors.ErrDuplicateSlot
		}
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	booking.ID = doc.ObjectID.Hex()
	return nil
}

func (d mongoBooking) toModel() (*model.Booking, error) {
	d.bookingDocument.ID = d.ObjectID.Hex()
	return d.bookingDocument.toModel()
}
