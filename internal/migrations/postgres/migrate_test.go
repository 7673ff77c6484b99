package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"

	"slotlink/pkg/logger"

	"github.com/jackc/pgx/v5/pgconn"
)

type recordingExecer struct {
	statements []string
	failAt     int
}

func (r *recordingExecer) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	r.statements = append(r.statements, sql)
	if r.failAt > 0 && len(r.statements) == r.failAt {
		return pgconn.CommandTag{}, errors.New("syntax error")
	}
	return pgconn.CommandTag{}, nil
}

func TestRunMigration(t *testing.T) {
	conn := &recordingExecer{}
	if err := RunMigration(context.Background(), conn, logger.Discard()); err != nil {
		t.Fatalf("RunMigration() error = %v", err)
	}
	if len(conn.statements) != len(Statements) {
		t.Fatalf("executed %d statements, want %d", len(conn.statements), len(Statements))
	}
	for i, stmt := range conn.statements {
		if !strings.Contains(stmt, "IF NOT EXISTS") {
			t.Errorf("statement %d is not idempotent: %s", i+1, stmt)
		}
	}
}

func TestRunMigration_StopsOnError(t *testing.T) {
	conn := &recordingExecer{failAt: 2}
	err := RunMigration(context.Background(), conn, logger.Discard())
	if err == nil {
		t.Fatal("RunMigration() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "statement 2") {
		t.Errorf("error = %v, want it to name statement 2", err)
	}
	if len(conn.statements) != 2 {
		t.Errorf("executed %d statements after failure, want 2", len(conn.statements))
	}
}

func TestStatements_Constraints(t *testing.T) {
	all := strings.Join(Statements, "\n")
	for _, want := range []string{
		"PRIMARY KEY (owner_id, date)",
		"CHECK (start_time < end_time)",
		"UNIQUE (link_id, date, start_time)",
	} {
		if !strings.Contains(all, want) {
			t.Errorf("schema is missing %q", want)
		}
	}
}
