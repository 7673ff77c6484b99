package model

import (
	"time"

	"slotlink/pkg/civil"
)

// Booking is a claimed slot. (LinkID, Date, StartTime) is unique across all bookings.
type Booking struct {
	ID           string      `json:"id,omitempty"`
	LinkID       string      `json:"linkId"`
	OwnerID      string      `json:"ownerId"`
	Date         civil.Date  `json:"date"`
	StartTime    civil.Clock `json:"startTime"`
	EndTime      civil.Clock `json:"endTime"`
	VisitorName  string      `json:"visitorName"`
	VisitorEmail string      `json:"visitorEmail"`
	CreatedAt    time.Time   `json:"createdAt"`
}

type ClaimRequest struct {
	LinkID       string `json:"linkId" validate:"required"`
	Date         string `json:"date" validate:"required,isodate"`
	StartTime    string `json:"startTime" validate:"required,clock"`
	EndTime      string `json:"endTime" validate:"required,clock"`
	VisitorName  string `json:"visitorName,omitempty" validate:"max=200"`
	VisitorEmail string `json:"visitorEmail,omitempty" validate:"max=254"`
}
