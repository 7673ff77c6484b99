package service

import (
	"context"
	"time"

	"slotlink/internal/availability/repository"
	"slotlink/internal/events"
	"slotlink/pkg/civil"
	"slotlink/pkg/config"
	apperrors "slotlink/pkg/errors"
	"slotlink/pkg/model"
	"slotlink/pkg/sanitizer"
	"slotlink/pkg/validation"
)

type AvailabilityService interface {
	// Upsert stores the owner's window for the date, replacing any existing
	// one, and reports whether it was created.
	Upsert(ctx context.Context, req *model.AvailabilityRequest) (*model.AvailabilityWindow, bool, error)
	// List returns the owner's windows ascending by date. An empty from means
	// no lower bound.
	List(ctx context.Context, ownerID, from string) ([]*model.AvailabilityWindow, error)
}

type availabilityService struct {
	repo      repository.AvailabilityRepository
	validator *validation.Validator
	publisher events.Publisher
	cfg       *config.Config
}

func NewAvailabilityService(
	repo repository.AvailabilityRepository,
	validator *validation.Validator,
	publisher events.Publisher,
	cfg *config.Config,
) AvailabilityService {
	return &availabilityService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *availabilityService) Upsert(ctx context.Context, req *model.AvailabilityRequest) (*model.AvailabilityWindow, bool, error) {
	req.OwnerID = sanitizer.NormalizeIdentifier(req.OwnerID)
	if err := s.validator.Check(req); err != nil {
		s.cfg.Log.Warn("Availability validation failed", "owner_id", req.OwnerID, "error", err)
		return nil, false, err
	}

	window, err := toWindow(req)
	if err != nil {
		return nil, false, err
	}

	created, err := s.repo.UpsertWindow(ctx, window)
	if err != nil {
		s.cfg.Log.Error("Failed to upsert availability",
			"owner_id", window.OwnerID,
			"date", window.Date,
			"error", err,
		)
		return nil, false, apperrors.Store("Failed to save availability", err)
	}

	s.cfg.Log.Info("Availability saved",
		"owner_id", window.OwnerID,
		"date", window.Date,
		"start_time", window.StartTime,
		"end_time", window.EndTime,
		"created", created,
	)

	s.publisher.Publish(ctx, events.Event{
		Type:       events.TypeAvailabilityUpserted,
		Key:        window.OwnerID,
		Payload:    window,
		OccurredAt: window.UpdatedAt,
	})

	return window, created, nil
}

func toWindow(req *model.AvailabilityRequest) (*model.AvailabilityWindow, error) {
	date, err := civil.ParseDate(req.Date)
	if err != nil {
		return nil, apperrors.Format("Invalid date", err)
	}
	start, err := civil.ParseClock(req.StartTime)
	if err != nil {
		return nil, apperrors.Format("Invalid startTime", err)
	}
	end, err := civil.ParseClock(req.EndTime)
	if err != nil {
		return nil, apperrors.Format("Invalid endTime", err)
	}
	if !start.Before(end) {
		return nil, apperrors.InvalidRequest("startTime must be before endTime", map[string]any{
			"startTime": req.StartTime,
			"endTime":   req.EndTime,
		})
	}

	now := time.Now().UTC()
	return &model.AvailabilityWindow{
		OwnerID:   req.OwnerID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *availabilityService) List(ctx context.Context, ownerID, from string) ([]*model.AvailabilityWindow, error) {
	ownerID = sanitizer.NormalizeIdentifier(ownerID)
	if ownerID == "" {
		return nil, apperrors.InvalidRequest("ownerId is required", map[string]any{"ownerId": "ownerId is required"})
	}

	var fromDate *civil.Date
	if from != "" {
		d, err := civil.ParseDate(from)
		if err != nil {
			return nil, apperrors.Format("Invalid from date", err)
		}
		fromDate = &d
	}

	windows, err := s.repo.ListWindows(ctx, ownerID, fromDate)
	if err != nil {
		s.cfg.Log.Error("Failed to list availability", "owner_id", ownerID, "error", err)
		return nil, apperrors.Store("Failed to retrieve availability", err)
	}
	if windows == nil {
		windows = []*model.AvailabilityWindow{}
	}
	return windows, nil
}
