package repository

import (
	"context"
	"fmt"
	"time"

	"slotlink/pkg/civil"
	"slotlink/pkg/config"
	"slotlink/pkg/model"
)

const (
	CollectionName = "Bookings"
	TableName      = "bookings"
)

type BookingRepository interface {
	// FindBooking returns ErrNotFound when the slot is free.
	FindBooking(ctx context.Context, linkID string, date civil.Date, start civil.Clock) (*model.Booking, error)
	// ListBookings returns the bookings of a link on one date, ascending by start.
	ListBookings(ctx context.Context, linkID string, date civil.Date) ([]*model.Booking, error)
	// InsertBooking inserts only if (link, date, start) is free and returns
	// ErrDuplicateSlot otherwise. ID and CreatedAt are filled in on success.
	InsertBooking(ctx context.Context, booking *model.Booking) error
	// ListByLink returns bookings from the given date on, ascending by date and start.
	ListByLink(ctx context.Context, linkID string, from *civil.Date) ([]*model.Booking, error)
}

func New(cfg *config.Config) BookingRepository {
	if cfg.StoreDriver == config.StorePostgres {
		return NewPostgresBookingRepository(cfg)
	}
	return NewMongoBookingRepository(cfg)
}

type bookingDocument struct {
	ID           string    `bson:"-"`
	LinkID       string    `bson:"link_id"`
	OwnerID      string    `bson:"owner_id"`
	Date         string    `bson:"date"`
	StartTime    string    `bson:"start_time"`
	EndTime      string    `bson:"end_time"`
	VisitorName  string    `bson:"visitor_name"`
	VisitorEmail string    `bson:"visitor_email"`
	CreatedAt    time.Time `bson:"created_at"`
}

func newBookingDocument(b *model.Booking) bookingDocument {
	return bookingDocument{
		ID:           b.ID,
		LinkID:       b.LinkID,
		OwnerID:      b.OwnerID,
		Date:         b.Date.String(),
		StartTime:    b.StartTime.String(),
		EndTime:      b.EndTime.String(),
		VisitorName:  b.VisitorName,
		VisitorEmail: b.VisitorEmail,
		CreatedAt:    b.CreatedAt,
	}
}

func (d bookingDocument) toModel() (*model.Booking, error) {
	date, err := civil.ParseDate(d.Date)
	if err != nil {
		return nil, fmt.Errorf("corrupt booking %s: %w", d.ID, err)
	}
	start, err := civil.ParseClock(d.StartTime)
	if err != nil {
		return nil, fmt.Errorf("corrupt booking %s: %w", d.ID, err)
	}
	end, err := civil.ParseClock(d.EndTime)
	if err != nil {
		return nil, fmt.Errorf("corrupt booking %s: %w", d.ID, err)
	}
	return &model.Booking{
		ID:           d.ID,
		LinkID:       d.LinkID,
		OwnerID:      d.OwnerID,
		Date:         date,
		StartTime:    start,
		EndTime:      end,
		VisitorName:  d.VisitorName,
		VisitorEmail: d.VisitorEmail,
		CreatedAt:    d.CreatedAt,
	}, nil
}
