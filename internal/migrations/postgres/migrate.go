package postgres

import (
	"context"
	"fmt"

	availabilityrepository "slotlink/internal/availability/repository"
	bookingsrepository "slotlink/internal/bookings/repository"
	linksrepository "slotlink/internal/links/repository"
	"slotlink/pkg/logger"

	"github.com/jackc/pgx/v5/pgconn"
)

// Dates are stored as YYYY-MM-DD text and times as HH:MM text, so string
// comparison orders them correctly.
var Statements = []string{
	`CREATE TABLE IF NOT EXISTS ` + availabilityrepository.TableName + ` (
		owner_id   TEXT        NOT NULL,
		date       TEXT        NOT NULL CHECK (date ~ '^[0-9]{4}-[0-9]{2}-[0-9]{2}$'),
		start_time TEXT        NOT NULL CHECK (start_time ~ '^([01][0-9]|2[0-3]):[0-5][0-9]$'),
		end_time   TEXT        NOT NULL CHECK (end_time ~ '^([01][0-9]|2[0-3]):[0-5][0-9]$'),
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (owner_id, date),
		CHECK (start_time < end_time)
	)`,
	`CREATE TABLE IF NOT EXISTS ` + linksrepository.TableName + ` (
		link_id               TEXT        PRIMARY KEY,
		owner_id              TEXT        NOT NULL,
		slot_duration_minutes INTEGER     NOT NULL CHECK (slot_duration_minutes > 0),
		active                BOOLEAN     NOT NULL DEFAULT TRUE,
		created_at            TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS booking_links_owner_idx ON ` + linksrepository.TableName + ` (owner_id)`,
	`CREATE TABLE IF NOT EXISTS ` + bookingsrepository.TableName + ` (
		id            TEXT        PRIMARY KEY,
		link_id       TEXT        NOT NULL,
		owner_id      TEXT        NOT NULL,
		date          TEXT        NOT NULL CHECK (date ~ '^[0-9]{4}-[0-9]{2}-[0-9]{2}$'),
		start_time    TEXT        NOT NULL CHECK (start_time ~ '^([01][0-9]|2[0-3]):[0-5][0-9]$'),
		end_time      TEXT        NOT NULL CHECK (end_time ~ '^([01][0-9]|2[0-3]):[0-5][0-9]$'),
		visitor_name  TEXT        NOT NULL,
		visitor_email TEXT        NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL,
		UNIQUE (link_id, date, start_time)
	)`,
	`CREATE INDEX IF NOT EXISTS bookings_owner_date_idx ON ` + bookingsrepository.TableName + ` (owner_id, date)`,
}

// Execer is the part of *pgxpool.Pool the migration needs.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// RunMigration applies Statements in order. Every statement is idempotent.
func RunMigration(ctx context.Context, conn Execer, log *logger.Logger) error {
	log.Info("Running Postgres migrations", "statements", len(Statements))

	for i, stmt := range Statements {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration statement %d failed: %w", i+1, err)
		}
	}

	log.Info("All Postgres migrations applied")
	return nil
}
