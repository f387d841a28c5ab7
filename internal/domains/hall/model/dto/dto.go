package dto

import (
	"mime/multipart"

	"villa/internal/domains/hall/model"
	"villa/shared"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	gModel "villa/shared/model"
	"villa/shared/timezone"

	"github.com/google/uuid"
)

type CreateHallRequest struct {
	Number    string                `json:"number"   validate:"required,max=20"`
	Name      string                `json:"name"     validate:"required,max=100"`
	Capacity  int                   `json:"capacity" validate:"required,min=1"`
	Price     float64               `json:"price"    validate:"required,gt=0"`
	Status    string                `json:"status"   validate:"omitempty,oneof=available booked maintenance"`
	Image     *multipart.FileHeader `json:"image"    validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile multipart.File        `json:"-"`
	Active    *bool                 `json:"active"   validate:"omitempty"`
}

func (c *CreateHallRequest) ToModel(user string, imageURL string) model.Hall {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	status := c.Status
	if status == "" {
		status = constant.HallStatusAvailable
	}

	return model.Hall{
		ID:       uuid.NewString(),
		Number:   c.Number,
		Name:     c.Name,
		Capacity: c.Capacity,
		Price:    c.Price,
		Status:   status,
		Image:    imageURL,
		Active:   active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateHallRequest struct {
	Number    string                `db:"number"   json:"number"   validate:"omitempty,max=20"`
	Name      string                `db:"name"     json:"name"     validate:"omitempty,max=100"`
	Capacity  *int                  `db:"capacity" json:"capacity" validate:"omitempty,min=1"`
	Price     *float64              `db:"price"    json:"price"    validate:"omitempty,gt=0"`
	Status    string                `db:"status"   json:"status"   validate:"omitempty,oneof=available booked maintenance"`
	Image     *multipart.FileHeader `json:"image"  validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile multipart.File        `json:"-"`
	Active    *bool                 `db:"active"   json:"active"   validate:"omitempty"`
}

type HallResponse struct {
	ID       string  `json:"id"`
	Number   string  `json:"number"`
	Name     string  `json:"name"`
	Capacity int     `json:"capacity"`
	Price    float64 `json:"price"`
	Status   string  `json:"status"`
	Image    string  `json:"image"`
	Active   bool    `json:"active"`
	gDto.Metadata
}

func (r *HallResponse) FromModel(model model.Hall) {
	r.ID = model.ID
	r.Number = model.Number
	r.Name = model.Name
	r.Capacity = model.Capacity
	r.Price = model.Price
	r.Status = model.Status
	r.Image = model.Image
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetHallsResponse struct {
	Halls     []HallResponse `json:"halls"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetHallsResponse) FromModels(models []model.Hall, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Halls = make([]HallResponse, len(models))
	for i, mod := range models {
		r.Halls[i].FromModel(mod)
	}
}
