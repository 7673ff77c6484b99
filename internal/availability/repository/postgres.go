package repository

import (
	"context"
	"fmt"
	"time"

	availabilityerrors "slotlink/internal/availability/errors"
	"slotlink/pkg/civil"
	"slotlink/pkg/config"
	"slotlink/pkg/db"
	"slotlink/pkg/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresAvailabilityRepository struct {
	cfg  *config.Config
	pool *pgxpool.Pool
}

func NewPostgresAvailabilityRepository(cfg *config.Config) AvailabilityRepository {
	return &postgresAvailabilityRepository{
		cfg:  cfg,
		pool: cfg.Client.Postgres,
	}
}

func (r *postgresAvailabilityRepository) FindWindow(ctx context.Context, ownerID string, date civil.Date) (*model.AvailabilityWindow, error) {
	ctx, cancel := db.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var doc windowDocument
	err := r.pool.QueryRow(ctx, `
		SELECT owner_id, date, start_time, end_time, created_at, updated_at
		FROM `+TableName+`
		WHERE owner_id = $1 AND date = $2
	`, ownerID, date.String()).Scan(&doc.OwnerID, &doc.Date, &doc.StartTime, &doc.EndTime, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, availabilityerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find availability window: %w", err)
	}
	return doc.toModel()
}

func (r *postgresAvailabilityRepository) UpsertWindow(ctx context.Context, w *model.AvailabilityWindow) (bool, error) {
	ctx, cancel := db.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC()
	var inserted bool
	err := r.pool.QueryRow(ctx, `
		INSERT INTO `+TableName+` (owner_id, date, start_time, end_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (owner_id, date) DO UPDATE
		SET start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			updated_at = EXCLUDED.updated_at
		RETURNING created_at, updated_at, (xmax = 0) AS inserted
	`, w.OwnerID, w.Date.String(), w.StartTime.String(), w.EndTime.String(), now).Scan(&w.CreatedAt, &w.UpdatedAt, &inserted)
	if err != nil {
		return false, fmt.Errorf("failed to upsert availability window: %w", err)
	}
	return inserted, nil
}

func (r *postgresAvailabilityRepository) ListWindows(ctx context.Context, ownerID string, from *civil.Date) ([]*model.AvailabilityWindow, error) {
	ctx, cancel := db.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	fromDate := ""
	if from != nil {
		fromDate = from.String()
	}

	rows, err := r.pool.Query(ctx, `
		SELECT owner_id, date, start_time, end_time, created_at, updated_at
		FROM `+TableName+`
		WHERE owner_id = $1 AND date >= $2
		ORDER BY date ASC
	`, ownerID, fromDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability windows: %w", err)
	}
	defer rows.Close()

	var windows []*model.AvailabilityWindow
	for rows.Next() {
		var doc windowDocument
		if err := rows.Scan(&doc.OwnerID, &doc.Date, &doc.StartTime, &doc.EndTime, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan availability window: %w", err)
		}
		w, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list availability windows: %w", err)
	}
	return windows, nil
}
