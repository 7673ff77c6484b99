package calendar

import (
	"strings"
	"testing"
	"time"

	"slotlink/pkg/civil"
	"slotlink/pkg/model"

	ics "github.com/arran4/golang-ical"
)

func TestFeed(t *testing.T) {
	link := &model.BookingLink{LinkID: "link-1", OwnerID: "host-1", SlotDurationMinutes: 30}
	created := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	bookings := []*model.Booking{
		{
			ID:           "b1",
			LinkID:       "link-1",
			Date:         civil.MustParseDate("2026-10-14"),
			StartTime:    civil.MustParseClock("09:00"),
			EndTime:      civil.MustParseClock("09:30"),
			VisitorName:  "Ada",
			VisitorEmail: "ada@example.com",
			CreatedAt:    created,
		},
		{
			ID:          "b2",
			LinkID:      "link-1",
			Date:        civil.MustParseDate("2026-10-15"),
			StartTime:   civil.MustParseClock("14:00"),
			EndTime:     civil.MustParseClock("14:30"),
			VisitorName: "Anonymous",
			CreatedAt:   created,
		},
	}

	out := Feed(link, bookings)
	if !strings.HasPrefix(out, "BEGIN:VCALENDAR") {
		t.Fatalf("feed does not start with VCALENDAR:\n%s", out)
	}

	cal, err := ics.ParseCalendar(strings.NewReader(out))
	if err != nil {
		t.Fatalf("ParseCalendar: %v", err)
	}
	events := cal.Events()
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}

	first := events[0]
	if uid := first.GetProperty(ics.ComponentPropertyUniqueId); uid == nil || uid.Value != "b1@slotlink" {
		t.Errorf("uid = %v, want b1@slotlink", uid)
	}
	if s := first.GetProperty(ics.ComponentPropertySummary); s == nil || s.Value != "Booking with Ada" {
		t.Errorf("summary = %v", s)
	}
	start, err := first.GetStartAt()
	if err != nil {
		t.Fatalf("GetStartAt: %v", err)
	}
	if want := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC); !start.Equal(want) {
		t.Errorf("start = %v, want %v", start, want)
	}
	end, err := first.GetEndAt()
	if err != nil {
		t.Fatalf("GetEndAt: %v", err)
	}
	if want := time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC); !end.Equal(want) {
		t.Errorf("end = %v, want %v", end, want)
	}
	if len(first.Attendees()) != 1 {
		t.Errorf("attendees = %d, want 1", len(first.Attendees()))
	}
	if len(events[1].Attendees()) != 0 {
		t.Errorf("anonymous booking has attendees")
	}
}

func TestFeedEmpty(t *testing.T) {
	out := Feed(&model.BookingLink{LinkID: "link-1"}, nil)
	cal, err := ics.ParseCalendar(strings.NewReader(out))
	if err != nil {
		t.Fatalf("ParseCalendar: %v", err)
	}
	if len(cal.Events()) != 0 {
		t.Errorf("events = %d, want 0", len(cal.Events()))
	}
}

func TestEventUIDWithoutID(t *testing.T) {
	b := &model.Booking{
		LinkID:    "link-1",
		Date:      civil.MustParseDate("2026-10-14"),
		StartTime: civil.MustParseClock("09:00"),
	}
	if got, want := EventUID(b), "link-1-2026-10-14-09:00@slotlink"; got != want {
		t.Errorf("EventUID = %q, want %q", got, want)
	}
}
