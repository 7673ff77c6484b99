package service

import (
	"context"
	"errors"
	"time"

	"slotlink/internal/events"
	linkserrors "slotlink/internal/links/errors"
	"slotlink/internal/links/repository"
	"slotlink/pkg/config"
	apperrors "slotlink/pkg/errors"
	"slotlink/pkg/model"
	"slotlink/pkg/sanitizer"
	"slotlink/pkg/validation"

	"github.com/google/uuid"
)

// maxIDAttempts bounds retries after a link id collision.
const maxIDAttempts = 3

type LinkService interface {
	Create(ctx context.Context, req *model.CreateLinkRequest) (*model.BookingLink, error)
	Get(ctx context.Context, linkID string) (*model.BookingLink, error)
	SetActive(ctx context.Context, linkID string, req *model.UpdateLinkRequest) (*model.BookingLink, error)
}

type linkService struct {
	repo      repository.LinkRepository
	validator *validation.Validator
	publisher events.Publisher
	cfg       *config.Config
	newID     func() string
}

func NewLinkService(
	repo repository.LinkRepository,
	validator *validation.Validator,
	publisher events.Publisher,
	cfg *config.Config,
) LinkService {
	return &linkService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
		newID:     uuid.NewString,
	}
}

func (s *linkService) Create(ctx context.Context, req *model.CreateLinkRequest) (*model.BookingLink, error) {
	req.OwnerID = sanitizer.NormalizeIdentifier(req.OwnerID)
	if err := s.validator.Check(req); err != nil {
		s.cfg.Log.Warn("Link validation failed", "owner_id", req.OwnerID, "error", err)
		return nil, err
	}

	duration := s.cfg.DefaultSlotDurationMin
	if req.SlotDurationMinutes != nil {
		duration = *req.SlotDurationMinutes
	}

	link := &model.BookingLink{
		OwnerID:             req.OwnerID,
		SlotDurationMinutes: duration,
		Active:              true,
		CreatedAt:           time.Now().UTC().Truncate(time.Millisecond),
	}

	var err error
	for attempt := 1; attempt <= maxIDAttempts; attempt++ {
		link.LinkID = s.newID()
		err = s.repo.CreateLink(ctx, link)
		if !errors.Is(err, linkserrors.ErrDuplicateLink) {
			break
		}
		s.cfg.Log.Warn("Link id collision, retrying", "link_id", link.LinkID, "attempt", attempt)
	}
	if err != nil {
		s.cfg.Log.Error("Failed to create link", "owner_id", link.OwnerID, "error", err)
		return nil, apperrors.Store("Failed to create booking link", err)
	}

	s.cfg.Log.Info("Booking link created",
		"link_id", link.LinkID,
		"owner_id", link.OwnerID,
		"slot_duration_minutes", link.SlotDurationMinutes,
	)

	s.publisher.Publish(ctx, events.Event{
		Type:       events.TypeLinkCreated,
		Key:        link.LinkID,
		Payload:    link,
		OccurredAt: link.CreatedAt,
	})

	return link, nil
}

func (s *linkService) Get(ctx context.Context, linkID string) (*model.BookingLink, error) {
	linkID = sanitizer.NormalizeIdentifier(linkID)
	if linkID == "" {
		return nil, apperrors.InvalidRequest("linkId is required", map[string]any{"linkId": "linkId is required"})
	}

	link, err := s.repo.FindLink(ctx, linkID)
	if err != nil {
		if errors.Is(err, linkserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking link", linkID)
		}
		s.cfg.Log.Error("Failed to find link", "link_id", linkID, "error", err)
		return nil, apperrors.Store("Failed to retrieve booking link", err)
	}
	return link, nil
}

func (s *linkService) SetActive(ctx context.Context, linkID string, req *model.UpdateLinkRequest) (*model.BookingLink, error) {
	linkID = sanitizer.NormalizeIdentifier(linkID)
	if linkID == "" {
		return nil, apperrors.InvalidRequest("linkId is required", map[string]any{"linkId": "linkId is required"})
	}
	if err := s.validator.Check(req); err != nil {
		return nil, err
	}

	link, err := s.repo.SetActive(ctx, linkID, *req.Active)
	if err != nil {
		if errors.Is(err, linkserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking link", linkID)
		}
		s.cfg.Log.Error("Failed to update link", "link_id", linkID, "error", err)
		return nil, apperrors.Store("Failed to update booking link", err)
	}

	s.cfg.Log.Info("Booking link updated", "link_id", linkID, "active", link.Active)

	s.publisher.Publish(ctx, events.Event{
		Type:    events.TypeLinkUpdated,
		Key:     link.LinkID,
		Payload: link,
	})

	return link, nil
}
