package model

import (
	"time"
	"villa/shared/model"
)

const (
	TableName  = "room_bookings"
	EntityName = "booking"

	FieldID             = "id"
	FieldRoomID         = "room_id"
	FieldGuestID        = "guest_id"
	FieldCheckIn        = "check_in"
	FieldCheckOut       = "check_out"
	FieldStatus         = "status"
	FieldRejectedReason = "rejected_reason"
	FieldNotes          = "notes"
)

type Booking struct {
	ID             string    `db:"id"`
	RoomID         string    `db:"room_id"`
	GuestID        string    `db:"guest_id"`
	CheckIn        time.Time `db:"check_in"`
	CheckOut       time.Time `db:"check_out"`
	Status         string    `db:"status"`
	RejectedReason *string   `db:"rejected_reason"`
	Notes          string    `db:"notes"`
	model.Metadata
}
