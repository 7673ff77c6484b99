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
	CollectionName = "Availability"
	TableName      = "availability_windows"
)

type AvailabilityRepository interface {
	// FindWindow returns ErrNotFound when the owner has no window on date.
	FindWindow(ctx context.Context, ownerID string, date civil.Date) (*model.AvailabilityWindow, error)
	// UpsertWindow replaces the owner's window for the date and reports
	// whether a new one was created. Timestamps on w are filled in.
	UpsertWindow(ctx context.Context, w *model.AvailabilityWindow) (bool, error)
	// ListWindows returns windows ascending by date, starting at from when set.
	ListWindows(ctx context.Context, ownerID string, from *civil.Date) ([]*model.AvailabilityWindow, error)
}

func New(cfg *config.Config) AvailabilityRepository {
	if cfg.StoreDriver == config.StorePostgres {
		return NewPostgresAvailabilityRepository(cfg)
	}
	return NewMongoAvailabilityRepository(cfg)
}

type windowDocument struct {
	OwnerID   string    `bson:"owner_id"`
	Date      string    `bson:"date"`
	StartTime string    `bson:"start_time"`
	EndTime   string    `bson:"end_time"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (d windowDocument) toModel() (*model.AvailabilityWindow, error) {
	date, err := civil.ParseDate(d.Date)
	if err != nil {
		return nil, fmt.Errorf("corrupt availability window for %s: %w", d.OwnerID, err)
	}
	start, err := civil.ParseClock(d.StartTime)
	if err != nil {
		return nil, fmt.Errorf("corrupt availability window for %s: %w", d.OwnerID, err)
	}
	end, err := civil.ParseClock(d.EndTime)
	if err != nil {
		return nil, fmt.Errorf("corrupt availability window for %s: %w", d.OwnerID, err)
	}
	return &model.AvailabilityWindow{
		OwnerID:   d.OwnerID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}
