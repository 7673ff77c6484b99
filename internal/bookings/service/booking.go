// Package service reconciles an owner's availability with the bookings taken
// against a link: it computes the free slots of a day and claims a slot
// exactly once.
package service

import (
	"context"
	"errors"
	"time"

	availabilityerrors "slotlink/internal/availability/errors"
	bookingserrors "slotlink/internal/bookings/errors"
	"slotlink/internal/events"
	linkserrors "slotlink/internal/links/errors"
	"slotlink/pkg/civil"
	"slotlink/pkg/config"
	apperrors "slotlink/pkg/errors"
	"slotlink/pkg/model"
	"slotlink/pkg/sanitizer"
	"slotlink/pkg/slots"
	"slotlink/pkg/validation"
)

// AvailabilityStore is the read side of the availability repository.
type AvailabilityStore interface {
	FindWindow(ctx context.Context, ownerID string, date civil.Date) (*model.AvailabilityWindow, error)
	ListWindows(ctx context.Context, ownerID string, from *civil.Date) ([]*model.AvailabilityWindow, error)
}

type BookingStore interface {
	FindBooking(ctx context.Context, linkID string, date civil.Date, start civil.Clock) (*model.Booking, error)
	ListBookings(ctx context.Context, linkID string, date civil.Date) ([]*model.Booking, error)
	InsertBooking(ctx context.Context, booking *model.Booking) error
	ListByLink(ctx context.Context, linkID string, from *civil.Date) ([]*model.Booking, error)
}

type LinkStore interface {
	FindLink(ctx context.Context, linkID string) (*model.BookingLink, error)
}

type BookingService interface {
	// ComputeFreeSlots partitions the owner's window on date and drops the
	// slots already booked through linkID. No window means no slots.
	ComputeFreeSlots(ctx context.Context, ownerID string, date civil.Date, linkID string, durationMinutes int) ([]slots.Slot, error)
	// FreeSlots resolves the link and returns its free slots on date.
	FreeSlots(ctx context.Context, linkID, date string) ([]slots.Slot, error)
	// AvailableDates lists the dates from today (UTC) on where the link's
	// owner has declared a window.
	AvailableDates(ctx context.Context, linkID string) ([]civil.Date, error)
	ClaimSlot(ctx context.Context, req *model.ClaimRequest) (*model.Booking, error)
	// Upcoming returns the link and its bookings from today on.
	Upcoming(ctx context.Context, linkID string) (*model.BookingLink, []*model.Booking, error)
}

type bookingService struct {
	availability AvailabilityStore
	bookings     BookingStore
	links        LinkStore
	validator    *validation.Validator
	publisher    events.Publisher
	cfg          *config.Config
	now          func() time.Time
}

func NewBookingService(
	availability AvailabilityStore,
	bookings BookingStore,
	links LinkStore,
	validator *validation.Validator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		availability: availability,
		bookings:     bookings,
		links:        links,
		validator:    validator,
		publisher:    publisher,
		cfg:          cfg,
		now:          time.Now,
	}
}

func (s *bookingService) ComputeFreeSlots(ctx context.Context, ownerID string, date civil.Date, linkID string, durationMinutes int) ([]slots.Slot, error) {
	window, err := s.availability.FindWindow(ctx, ownerID, date)
	if err != nil {
		if errors.Is(err, availabilityerrors.ErrNotFound) {
			return []slots.Slot{}, nil
		}
		s.cfg.Log.Error("Failed to find availability", "owner_id", ownerID, "date", date, "error", err)
		return nil, apperrors.Store("Failed to retrieve availability", err)
	}

	all := slots.Partition(window.StartTime, window.EndTime, durationMinutes)
	if len(all) == 0 {
		return []slots.Slot{}, nil
	}

	booked, err := s.bookings.ListBookings(ctx, linkID, date)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "link_id", linkID, "date", date, "error", err)
		return nil, apperrors.Store("Failed to retrieve bookings", err)
	}

	// Exact start match only; a link has a single slot duration, so bookings
	// made through it always align with the partition.
	taken := make([]civil.Clock, 0, len(booked))
	for _, b := range booked {
		taken = append(taken, b.StartTime)
	}
	return slots.Exclude(all, taken), nil
}

func (s *bookingService) FreeSlots(ctx context.Context, linkID, date string) ([]slots.Slot, error) {
	if sanitizer.NormalizeIdentifier(linkID) == "" {
		return nil, linkIDRequired()
	}
	d, err := civil.ParseDate(date)
	if err != nil {
		return nil, apperrors.Format("Invalid date", err).WithDetails(map[string]any{"date": date})
	}

	link, err := s.findLink(ctx, linkID)
	if err != nil {
		return nil, err
	}
	return s.ComputeFreeSlots(ctx, link.OwnerID, d, link.LinkID, link.SlotDurationMinutes)
}

func (s *bookingService) AvailableDates(ctx context.Context, linkID string) ([]civil.Date, error) {
	link, err := s.findLink(ctx, linkID)
	if err != nil {
		return nil, err
	}

	today := civil.Today(s.now())
	windows, err := s.availability.ListWindows(ctx, link.OwnerID, &today)
	if err != nil {
		s.cfg.Log.Error("Failed to list availability", "owner_id", link.OwnerID, "error", err)
		return nil, apperrors.Store("Failed to retrieve availability", err)
	}

	dates := make([]civil.Date, 0, len(windows))
	for _, w := range windows {
		dates = append(dates, w.Date)
	}
	return dates, nil
}

func (s *bookingService) ClaimSlot(ctx context.Context, req *model.ClaimRequest) (*model.Booking, error) {
	req.LinkID = sanitizer.NormalizeIdentifier(req.LinkID)
	if err := s.validator.Check(req); err != nil {
		s.cfg.Log.Warn("Claim validation failed", "link_id", req.LinkID, "error", err)
		return nil, err
	}

	date, start, end, err := parseClaim(req)
	if err != nil {
		return nil, err
	}

	link, err := s.findLink(ctx, req.LinkID)
	if err != nil {
		return nil, err
	}

	_, err = s.bookings.FindBooking(ctx, link.LinkID, date, start)
	switch {
	case err == nil:
		return nil, slotTaken(link.LinkID, date, start)
	case !errors.Is(err, bookingserrors.ErrNotFound):
		s.cfg.Log.Error("Failed to check existing booking", "link_id", link.LinkID, "error", err)
		return nil, apperrors.Store("Failed to check existing booking", err)
	}

	window, err := s.availability.FindWindow(ctx, link.OwnerID, date)
	if err != nil {
		if errors.Is(err, availabilityerrors.ErrNotFound) {
			return nil, apperrors.InvalidRequest("No availability for this date", map[string]any{"date": date.String()})
		}
		s.cfg.Log.Error("Failed to find availability", "owner_id", link.OwnerID, "error", err)
		return nil, apperrors.Store("Failed to retrieve availability", err)
	}

	if !slots.Contains(window.StartTime, window.EndTime, start, end) {
		return nil, apperrors.InvalidRequest("Slot outside available hours", map[string]any{
			"startTime": window.StartTime.String(),
			"endTime":   window.EndTime.String(),
		})
	}

	booking := &model.Booking{
		LinkID:       link.LinkID,
		OwnerID:      link.OwnerID,
		Date:         date,
		StartTime:    start,
		EndTime:      end,
		VisitorName:  sanitizer.NormalizeVisitorName(req.VisitorName),
		VisitorEmail: sanitizer.NormalizeEmail(req.VisitorEmail),
	}

	// The store's unique (link, date, start) constraint decides between
	// concurrent claims that all passed the checks above.
	if err := s.bookings.InsertBooking(ctx, booking); err != nil {
		if errors.Is(err, bookingserrors.ErrDuplicateSlot) {
			s.cfg.Log.Info("Lost claim race", "link_id", link.LinkID, "date", date, "start_time", start)
			return nil, slotTaken(link.LinkID, date, start)
		}
		s.cfg.Log.Error("Failed to insert booking", "link_id", link.LinkID, "error", err)
		return nil, apperrors.Store("Failed to create booking", err)
	}

	s.cfg.Log.Info("Slot claimed",
		"booking_id", booking.ID,
		"link_id", booking.LinkID,
		"owner_id", booking.OwnerID,
		"date", booking.Date,
		"start_time", booking.StartTime,
	)

	s.publisher.Publish(ctx, events.Event{
		Type:       events.TypeBookingClaimed,
		Key:        booking.LinkID,
		Payload:    booking,
		OccurredAt: booking.CreatedAt,
	})

	return booking, nil
}

func (s *bookingService) Upcoming(ctx context.Context, linkID string) (*model.BookingLink, []*model.Booking, error) {
	link, err := s.findLink(ctx, linkID)
	if err != nil {
		return nil, nil, err
	}

	today := civil.Today(s.now())
	bookings, err := s.bookings.ListByLink(ctx, link.LinkID, &today)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "link_id", link.LinkID, "error", err)
		return nil, nil, apperrors.Store("Failed to retrieve bookings", err)
	}
	return link, bookings, nil
}

func (s *bookingService) findLink(ctx context.Context, linkID string) (*model.BookingLink, error) {
	linkID = sanitizer.NormalizeIdentifier(linkID)
	if linkID == "" {
		return nil, linkIDRequired()
	}

	link, err := s.links.FindLink(ctx, linkID)
	if err != nil {
		if errors.Is(err, linkserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking link", linkID)
		}
		s.cfg.Log.Error("Failed to find link", "link_id", linkID, "error", err)
		return nil, apperrors.Store("Failed to retrieve booking link", err)
	}
	return link, nil
}

func parseClaim(req *model.ClaimRequest) (civil.Date, civil.Clock, civil.Clock, error) {
	date, err := civil.ParseDate(req.Date)
	if err != nil {
		return civil.Date{}, 0, 0, apperrors.Format("Invalid date", err)
	}
	start, err := civil.ParseClock(req.StartTime)
	if err != nil {
		return civil.Date{}, 0, 0, apperrors.Format("Invalid startTime", err)
	}
	end, err := civil.ParseClock(req.EndTime)
	if err != nil {
		return civil.Date{}, 0, 0, apperrors.Format("Invalid endTime", err)
	}
	if !start.Before(end) {
		return civil.Date{}, 0, 0, apperrors.InvalidRequest("startTime must be before endTime", map[string]any{
			"startTime": req.StartTime,
			"endTime":   req.EndTime,
		})
	}
	return date, start, end, nil
}

func linkIDRequired() *apperrors.AppError {
	return apperrors.InvalidRequest("linkId is required", map[string]any{"linkId": "linkId is required"})
}

func slotTaken(linkID string, date civil.Date, start civil.Clock) *apperrors.AppError {
	return apperrors.Conflict("This slot has already been booked").WithDetails(map[string]any{
		"linkId":    linkID,
		"date":      date.String(),
		"startTime": start.String(),
	})
}
