// Package calendar renders bookings as an iCalendar (RFC 5545) feed.
package calendar

import (
	"fmt"
	"time"

	"slotlink/pkg/model"

	ics "github.com/arran4/golang-ical"
)

const (
	productID = "-//slotlink//booking links//EN"
	uidDomain = "slotlink"
)

// Feed renders the bookings of a link. Dates and times carry no zone, so
// events are written as UTC wall-clock values.
func Feed(link *model.BookingLink, bookings []*model.Booking) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(fmt.Sprintf("Bookings for %s", link.LinkID))

	for _, b := range bookings {
		event := cal.AddEvent(EventUID(b))
		event.SetCreatedTime(b.CreatedAt)
		event.SetDtStampTime(b.CreatedAt)
		event.SetStartAt(b.Date.At(b.StartTime, time.UTC))
		event.SetEndAt(b.Date.At(b.EndTime, time.UTC))
		event.SetSummary(fmt.Sprintf("Booking with %s", b.VisitorName))
		event.SetDescription(fmt.Sprintf("Booked through link %s", b.LinkID))
		if b.VisitorEmail != "" {
			event.AddAttendee("mailto:" + b.VisitorEmail)
		}
	}

	return cal.Serialize()
}

// EventUID is stable per booking so calendar clients update rather than
// duplicate events on refresh.
func EventUID(b *model.Booking) string {
	if b.ID != "" {
		return b.ID + "@" + uidDomain
	}
	return fmt.Sprintf("%s-%s-%s@%s", b.LinkID, b.Date, b.StartTime, uidDomain)
}
