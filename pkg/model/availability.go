package model

import (
	"time"

	"slotlink/pkg/civil"
)

// AvailabilityWindow is the single open interval an owner offers on a date.
type AvailabilityWindow struct {
	OwnerID   string      `json:"ownerId"`
	Date      civil.Date  `json:"date"`
	StartTime civil.Clock `json:"startTime"`
	EndTime   civil.Clock `json:"endTime"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

type AvailabilityRequest struct {
	OwnerID   string `json:"ownerId" validate:"required,max=200"`
	Date      string `json:"date" validate:"required,isodate"`
	StartTime string `json:"startTime" validate:"required,clock"`
	EndTime   string `json:"endTime" validate:"required,clock"`
}
