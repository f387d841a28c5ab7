package model

import (
	"time"
	"villa/shared/model"
)

const (
	TableName  = "tasks"
	EntityName = "task"

	FieldID            = "id"
	FieldResourceType  = "resource_type"
	FieldResourceID    = "resource_id"
	FieldDescription   = "description"
	FieldTaskType      = "task_type"
	FieldScheduledDate = "scheduled_date"
	FieldStatus        = "status"
	FieldStaffID       = "staff_id"
	FieldBookingID     = "booking_id"
)

type Task struct {
	ID            string    `db:"id"`
	ResourceType  string    `db:"resource_type"`
	ResourceID    string    `db:"resource_id"`
	Description   string    `db:"description"`
	TaskType      string    `db:"task_type"`
	ScheduledDate time.Time `db:"scheduled_date"`
	Status        string    `db:"status"`
	StaffID       *string   `db:"staff_id"`
	BookingID     *string   `db:"booking_id"`
	model.Metadata
}
