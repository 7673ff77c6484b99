package repository

import (
	"context"
	"fmt"
	"time"

	linkerrors "slotlink/internal/links/errors"
	"slotlink/pkg/config"
	"slotlink/pkg/db"
	"slotlink/pkg/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresLinkRepository struct {
	cfg  *config.Config
	pool *pgxpool.Pool
}

func NewPostgresLinkRepository(cfg *config.Config) LinkRepository {
	return &postgresLinkRepository{
		cfg:  cfg,
		pool: cfg.Client.Postgres,
	}
}

const selectLink = `SELECT link_id, owner_id, slot_duration_minutes, active, created_at FROM ` + TableName

func (r *postgresLinkRepository) FindLink(ctx context.Context, linkID string) (*model.BookingLink, error) {
	ctx, cancel := db.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var doc linkDocument
	err := r.pool.QueryRow(ctx, selectLink+` WHERE link_id = $1`, linkID).
		Scan(&doc.LinkID, &doc.OwnerID, &doc.SlotDurationMinutes, &doc.Active, &doc.CreatedAt)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, linkerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking link: %w", err)
	}
	return doc.toModel(), nil
}

func (r *postgresLinkRepository) CreateLink(ctx context.Context, link *model.BookingLink) error {
	ctx, cancel := db.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	link.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	_, err := r.pool.Exec(ctx, `
		INSERT INTO `+TableName+` (link_id, owner_id, slot_duration_minutes, active, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, link.LinkID, link.OwnerID, link.SlotDurationMinutes, link.Active, link.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return linkerrors.ErrDuplicateLink
		}
		return fmt.Errorf("failed to create booking link: %w", err)
	}
	return nil
}

func (r *postgresLinkRepository) SetActive(ctx context.Context, linkID string, active bool) (*model.BookingLink, error) {
	ctx, cancel := db.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	var doc linkDocument
	err := r.pool.QueryRow(ctx, `
		UPDATE `+TableName+` SET active = $2 WHERE link_id = $1
		RETURNING link_id, owner_id, slot_duration_minutes, active, created_at
	`, linkID, active).Scan(&doc.LinkID, &doc.OwnerID, &doc.SlotDurationMinutes, &doc.Active, &doc.CreatedAt)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, linkerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update booking link: %w", err)
	}
	return doc.toModel(), nil
}
