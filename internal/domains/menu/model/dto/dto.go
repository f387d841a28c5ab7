package dto

import (
	"villa/internal/domains/menu/model"
	"villa/shared"
	gDto "villa/shared/dto"
	gModel "villa/shared/model"
	"villa/shared/timezone"

	"github.com/google/uuid"
)

type CreateMenuItemRequest struct {
	Name     string  `json:"name"     validate:"required,max=100"`
	Category string  `json:"category" validate:"required,max=50"`
	Price    float64 `json:"price"    validate:"required,gt=0"`
}

func (c *CreateMenuItemRequest) ToModel(user string) model.MenuItem {
	return model.MenuItem{
		ID:        uuid.NewString(),
		Name:      c.Name,
		Category:  c.Category,
		Price:     c.Price,
		Available: true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateMenuItemRequest struct {
	Name      string   `db:"name"      json:"name" validate:"omitempty,max=100"`
	Category  string   `db:"category"  json:"category" validate:"omitempty,max=50"`
	Price     *float64 `db:"price"     json:"price" validate:"omitempty,gt=0"`
	Available *bool    `db:"available" json:"available" validate:"omitempty"`
}

type MenuItemResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
	gDto.Metadata
}

func (r *MenuItemResponse) FromModel(model model.MenuItem) {
	r.ID = model.ID
	r.Name = model.Name
	r.Category = model.Category
	r.Price = model.Price
	r.Available = model.Available
	r.Metadata.FromModel(model.Metadata)
}

type GetMenuItemsResponse struct {
	MenuItems []MenuItemResponse `json:"menu_items"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetMenuItemsResponse) FromModels(models []model.MenuItem, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.MenuItems = make([]MenuItemResponse, len(models))
	for i, mod := range models {
		r.MenuItems[i].FromModel(mod)
	}
}
