package model

import "villa/shared/model"

const (
	TableName  = "reviews"
	EntityName = "review"

	FieldID      = "id"
	FieldGuestID = "guest_id"
	FieldRoomID  = "room_id"
	FieldRating  = "rating"
	FieldComment = "comment"
)

type Review struct {
	ID      string `db:"id"`
	GuestID string `db:"guest_id"`
	RoomID  string `db:"room_id"`
	Rating  int    `db:"rating"`
	Comment string `db:"comment"`
	model.Metadata
}
