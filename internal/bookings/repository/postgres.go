package repository

import (
	"context"
	"fmt"
	"time"

	bookingserrors "slotlink/internal/bookings/errors"
	"slotlink/pkg/civil"
	"slotlink/pkg/config"
	"slotlink/pkg/db"
	"slotlink/pkg/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Querier is the part of *pgxpool.Pool the repository uses.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type postgresBookingRepository struct {
	cfg  *config.Config
	pool Querier
}

func NewPostgresBookingRepository(cfg *config.Config) BookingRepository {
	return newPostgresBookingRepository(cfg, cfg.Client.Postgres)
}

func newPostgresBookingRepository(cfg *config.Config, pool Querier) *postgresBookingRepository {
	return &postgresBookingRepository{
		cfg:  cfg,
		pool: pool,
	}
}

const selectBooking = `
	SELECT id, link_id, owner_id, date, start_time, end_time, visitor_name, visitor_email, created_at
	FROM ` + TableName

func scanBooking(row pgx.Row) (*model.Booking, error) {
	var doc bookingDocument
	if err := row.Scan(&doc.ID, &doc.LinkID, &doc.OwnerID, &doc.Date, &doc.StartTime, &doc.EndTime,
		&doc.VisitorName, &doc.VisitorEmail, &doc.CreatedAt); err != nil {
		return nil, err
	}
	return doc.toModel()
}

func (r *postgresBookingRepository) FindBooking(ctx context.Context, linkID string, date civil.Date, start civil.Clock) (*model.Booking, error) {
	ctx, cancel := db.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, selectBooking+`
		WHERE link_id = $1 AND date = $2 AND start_time = $3
	`, linkID, date.String(), start.String())

	booking, err := scanBooking(row)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return booking, nil
}

func (r *postgresBookingRepository) ListBookings(ctx context.Context, linkID string, date civil.Date) ([]*model.Booking, error) {
	return r.query(ctx, selectBooking+`
		WHERE link_id = $1 AND date = $2
		ORDER BY start_time ASC
	`, linkID, date.String())
}

func (r *postgresBookingRepository) ListByLink(ctx context.Context, linkID string, from *civil.Date) ([]*model.Booking, error) {
	fromDate := ""
	if from != nil {
		fromDate = from.String()
	}
	return r.query(ctx, selectBooking+`
		WHERE link_id = $1 AND date >= $2
		ORDER BY date ASC, start_time ASC
	`, linkID, fromDate)
}

func (r *postgresBookingRepository) query(ctx context.Context, sql string, args ...any) ([]*model.Booking, error) {
	ctx, cancel := db.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	return bookings, nil
}

// InsertBooking leans on UNIQUE (link_id, date, start_time). ON CONFLICT DO
// NOTHING returns no row for the losing claim.
func (r *postgresBookingRepository) InsertBooking(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := db.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	id := uuid.NewString()
	createdAt := time.Now().UTC().Truncate(time.Microsecond)

	var inserted string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO `+TableName+`
			(id, link_id, owner_id, date, start_time, end_time, visitor_name, visitor_email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (link_id, date, start_time) DO NOTHING
		RETURNING id
	`, id, booking.LinkID, booking.OwnerID, booking.Date.String(), booking.StartTime.String(), booking.EndTime.String(),
		booking.VisitorName, booking.VisitorEmail, createdAt).Scan(&inserted)
	if err != nil {
		if db.IsNoRows(err) || db.IsUniqueViolation(err) {
			return bookingserrors.ErrDuplicateSlot
		}
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	booking.ID = inserted
	booking.CreatedAt = createdAt
	return nil
}
