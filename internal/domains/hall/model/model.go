package model

import "villa/shared/model"

const (
	TableName  = "halls"
	EntityName = "hall"

	FieldID       = "id"
	FieldNumber   = "number"
	FieldName     = "name"
	FieldCapacity = "capacity"
	FieldPrice    = "price"
	FieldStatus   = "status"
	FieldImage    = "image"
	FieldActive   = "active"
)

type Hall struct {
	ID       string  `db:"id"`
	Number   string  `db:"number"`
	Name     string  `db:"name"`
	Capacity int     `db:"capacity"`
	Price    float64 `db:"price"`
	Status   string  `db:"status"`
	Image    string  `db:"image"`
	Active   bool    `db:"active"`
	model.Metadata
}
