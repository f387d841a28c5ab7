package dto

import (
	"time"
	"villa/internal/domains/task/model"
	"villa/shared"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	gModel "villa/shared/model"
	"villa/shared/timezone"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	ResourceType  string  `json:"resource_type"  validate:"required,oneof=room hall"`
	ResourceID    string  `json:"resource_id"    validate:"required"`
	Description   string  `json:"description"    validate:"omitempty"`
	TaskType      string  `json:"task_type"      validate:"required,oneof=cleaning maintenance inspection restocking periodic pre-check-in post-check-out"`
	ScheduledDate string  `json:"scheduled_date" validate:"required,datetime=2006-01-02"`
	StaffID       *string `json:"staff_id"       validate:"omitempty"`
	BookingID     *string `json:"booking_id"     validate:"omitempty"`
}

func (c *CreateTaskRequest) ToModel(user string, staffID *string) (model.Task, error) {
	scheduledDate, err := time.Parse(constant.DayFormat, c.ScheduledDate)
	if err != nil {
		return model.Task{}, err
	}

	return model.Task{
		ID:            uuid.NewString(),
		ResourceType:  c.ResourceType,
		ResourceID:    c.ResourceID,
		Description:   c.Description,
		TaskType:      c.TaskType,
		ScheduledDate: scheduledDate,
		Status:        constant.TaskStatusPending,
		StaffID:       staffID,
		BookingID:     c.BookingID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type TaskResponse struct {
	ID            string  `json:"id"`
	ResourceType  string  `json:"resource_type"`
	ResourceID    string  `json:"resource_id"`
	Description   string  `json:"description"`
	TaskType      string  `json:"task_type"`
	ScheduledDate string  `json:"scheduled_date"`
	Status        string  `json:"status"`
	StaffID       *string `json:"staff_id,omitempty"`
	BookingID     *string `json:"booking_id,omitempty"`
	Warning       string  `json:"warning,omitempty"`
	gDto.Metadata
}

func (r *TaskResponse) FromModel(model model.Task) {
	r.ID = model.ID
	r.ResourceType = model.ResourceType
	r.ResourceID = model.ResourceID
	r.Description = model.Description
	r.TaskType = model.TaskType
	r.ScheduledDate = model.ScheduledDate.Format(constant.DayFormat)
	r.Status = model.Status
	r.StaffID = model.StaffID
	r.BookingID = model.BookingID
	r.Metadata.FromModel(model.Metadata)
}

type GetTasksResponse struct {
	Tasks     []TaskResponse `json:"tasks"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetTasksResponse) FromModels(models []model.Task, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Tasks = make([]TaskResponse, len(models))
	for i, mod := range models {
		r.Tasks[i].FromModel(mod)
	}
}

type PeriodicPassResponse struct {
	RoomsChecked int `json:"rooms_checked"`
	TasksCreated int `json:"tasks_created"`
}
