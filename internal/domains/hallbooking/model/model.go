package model

import (
	"time"
	"villa/shared/model"
)

const (
	TableName  = "hall_bookings"
	EntityName = "hall_booking"

	FieldID             = "id"
	FieldHallID         = "hall_id"
	FieldGuestID        = "guest_id"
	FieldEventDate      = "event_date"
	FieldEndDate        = "end_date"
	FieldPurpose        = "purpose"
	FieldStatus         = "status"
	FieldRejectedReason = "rejected_reason"
)

// HallBooking reserves a hall for an event. EndDate is nil for single day
// events, in which case the reservation covers EventDate only.
type HallBooking struct {
	ID             string     `db:"id"`
	HallID         string     `db:"hall_id"`
	GuestID        string     `db:"guest_id"`
	EventDate      time.Time  `db:"event_date"`
	EndDate        *time.Time `db:"end_date"`
	Purpose        string     `db:"purpose"`
	Status         string     `db:"status"`
	RejectedReason *string    `db:"rejected_reason"`
	model.Metadata
}

// Span returns the inclusive date range the booking occupies.
func (h *HallBooking) Span() (time.Time, time.Time) {
	if h.EndDate != nil {
		return h.EventDate, *h.EndDate
	}

	return h.EventDate, h.EventDate
}
