package model

import (
	"time"
	"villa/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID            = "id"
	FieldNumber        = "number"
	FieldRoomType      = "room_type"
	FieldCapacity      = "capacity"
	FieldPrice         = "price"
	FieldStatus        = "status"
	FieldDescription   = "description"
	FieldImage         = "image"
	FieldLastCleanedAt = "last_cleaned_at"
	FieldActive        = "active"
)

type Room struct {
	ID            string     `db:"id"`
	Number        string     `db:"number"`
	RoomType      string     `db:"room_type"`
	Capacity      int        `db:"capacity"`
	Price         float64    `db:"price"`
	Status        string     `db:"status"`
	Description   string     `db:"description"`
	Image         string     `db:"image"`
	LastCleanedAt *time.Time `db:"last_cleaned_at"`
	Active        bool       `db:"active"`
	model.Metadata
}
