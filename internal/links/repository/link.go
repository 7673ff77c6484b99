package repository

import (
	"context"
	"time"

	"slotlink/pkg/config"
	"slotlink/pkg/model"
)

const (
	CollectionName = "BookingLinks"
	TableName      = "booking_links"
)

type LinkRepository interface {
	// FindLink returns ErrNotFound for an unknown link id.
	FindLink(ctx context.Context, linkID string) (*model.BookingLink, error)
	// CreateLink returns ErrDuplicateLink when the link id is taken.
	CreateLink(ctx context.Context, link *model.BookingLink) error
	// SetActive returns the updated link, or ErrNotFound.
	SetActive(ctx context.Context, linkID string, active bool) (*model.BookingLink, error)
}

func New(cfg *config.Config) LinkRepository {
	if cfg.StoreDriver == config.StorePostgres {
		return NewPostgresLinkRepository(cfg)
	}
	return NewMongoLinkRepository(cfg)
}

type linkDocument struct {
	LinkID              string    `bson:"link_id"`
	OwnerID             string    `bson:"owner_id"`
	SlotDurationMinutes int       `bson:"slot_duration_minutes"`
	Active              bool      `bson:"active"`
	CreatedAt           time.Time `bson:"created_at"`
}

func (d linkDocument) toModel() *model.BookingLink {
	return &model.BookingLink{
		LinkID:              d.LinkID,
		OwnerID:             d.OwnerID,
		SlotDurationMinutes: d.SlotDurationMinutes,
		Active:              d.Active,
		CreatedAt:           d.CreatedAt,
	}
}
