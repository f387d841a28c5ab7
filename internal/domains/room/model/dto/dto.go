package dto

import (
	"mime/multipart"

	"villa/internal/domains/room/model"
	"villa/shared"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	gModel "villa/shared/model"
	"villa/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Number      string                `json:"number"      validate:"required,max=20"`
	RoomType    string                `json:"room_type"   validate:"required,max=50"`
	Capacity    int                   `json:"capacity"    validate:"required,min=1"`
	Price       float64               `json:"price"       validate:"required,gt=0"`
	Status      string                `json:"status"      validate:"omitempty,oneof=available occupied maintenance"`
	Description string                `json:"description" validate:"omitempty"`
	Image       *multipart.FileHeader `json:"image"       validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile   multipart.File        `json:"-"`
	Active      *bool                 `json:"active"      validate:"omitempty"`
}

func (c *CreateRoomRequest) ToModel(user string, imageURL string) model.Room {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	status := c.Status
	if status == "" {
		status = constant.RoomStatusAvailable
	}

	return model.Room{
		ID:          uuid.NewString(),
		Number:      c.Number,
		RoomType:    c.RoomType,
		Capacity:    c.Capacity,
		Price:       c.Price,
		Status:      status,
		Description: c.Description,
		Image:       imageURL,
		Active:      active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	Number      string                `db:"number"      json:"number"      validate:"omitempty,max=20"`
	RoomType    string                `db:"room_type"   json:"room_type"   validate:"omitempty,max=50"`
	Capacity    *int                  `db:"capacity"    json:"capacity"    validate:"omitempty,min=1"`
	Price       *float64              `db:"price"       json:"price"       validate:"omitempty,gt=0"`
	Status      string                `db:"status"      json:"status"      validate:"omitempty,oneof=available occupied maintenance"`
	Description string                `db:"description" json:"description" validate:"omitempty"`
	Image       *multipart.FileHeader `json:"image"     validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile   multipart.File        `json:"-"`
	Active      *bool                 `db:"active"      json:"active"      validate:"omitempty"`
}

type RoomResponse struct {
	ID            string  `json:"id"`
	Number        string  `json:"number"`
	RoomType      string  `json:"room_type"`
	Capacity      int     `json:"capacity"`
	Price         float64 `json:"price"`
	Status        string  `json:"status"`
	Description   string  `json:"description"`
	Image         string  `json:"image"`
	LastCleanedAt string  `json:"last_cleaned_at,omitempty"`
	Active        bool    `json:"active"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Number = model.Number
	r.RoomType = model.RoomType
	r.Capacity = model.Capacity
	r.Price = model.Price
	r.Status = model.Status
	r.Description = model.Description
	r.Image = model.Image
	r.Active = model.Active

	if model.LastCleanedAt != nil {
		r.LastCleanedAt = timezone.Format(*model.LastCleanedAt, constant.DateFormat)
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
