package model

import "time"

type BookingLink struct {
	LinkID              string    `json:"linkId"`
	OwnerID             string    `json:"ownerId"`
	SlotDurationMinutes int       `json:"slotDurationMinutes"`
	Active              bool      `json:"active"`
	CreatedAt           time.Time `json:"createdAt"`
}

type CreateLinkRequest struct {
	OwnerID             string `json:"ownerId" validate:"required,max=200"`
	SlotDurationMinutes *int   `json:"slotDurationMinutes,omitempty" validate:"omitempty,min=1,max=1440"`
}

type UpdateLinkRequest struct {
	Active *bool `json:"active" validate:"required"`
}
