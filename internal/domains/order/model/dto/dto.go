package dto

import (
	"villa/internal/domains/order/model"
	"villa/shared"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	gModel "villa/shared/model"
	"villa/shared/timezone"

	"github.com/google/uuid"
)

type OrderItemRequest struct {
	MenuItemID string `json:"menu_item_id" validate:"required"`
	Quantity   int    `json:"quantity"     validate:"required,gt=0"`
}

type CreateOrderRequest struct {
	RoomID *string            `json:"room_id" validate:"omitempty"`
	Items  []OrderItemRequest `json:"items"   validate:"required,min=1,dive"`
}

func (c *CreateOrderRequest) ToModel(guestID string) model.Order {
	return model.Order{
		ID:      uuid.NewString(),
		GuestID: guestID,
		RoomID:  c.RoomID,
		Status:  constant.OrderStatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  guestID,
			ModifiedBy: guestID,
		},
	}
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=preparing delivered cancelled"`
}

type OrderItemResponse struct {
	ID         string  `json:"id"`
	MenuItemID string  `json:"menu_item_id"`
	Name       string  `json:"name"`
	UnitPrice  float64 `json:"unit_price"`
	Quantity   int     `json:"quantity"`
}

func (r *OrderItemResponse) FromModel(model model.OrderItem) {
	r.ID = model.ID
	r.MenuItemID = model.MenuItemID
	r.Name = model.Name
	r.UnitPrice = model.UnitPrice
	r.Quantity = model.Quantity
}

type OrderResponse struct {
	ID      string              `json:"id"`
	GuestID string              `json:"guest_id"`
	RoomID  *string             `json:"room_id,omitempty"`
	Status  string              `json:"status"`
	Total   float64             `json:"total"`
	Items   []OrderItemResponse `json:"items,omitempty"`
	gDto.Metadata
}

func (r *OrderResponse) FromModel(model model.Order) {
	r.ID = model.ID
	r.GuestID = model.GuestID
	r.RoomID = model.RoomID
	r.Status = model.Status
	r.Total = model.Total
	r.Metadata.FromModel(model.Metadata)
}

func (r *OrderResponse) WithItems(items []model.OrderItem) {
	r.Items = make([]OrderItemResponse, len(items))
	for i, item := range items {
		r.Items[i].FromModel(item)
	}
}

type GetOrdersResponse struct {
	Orders    []OrderResponse `json:"orders"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetOrdersResponse) FromModels(models []model.Order, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Orders = make([]OrderResponse, len(models))
	for i, mod := range models {
		r.Orders[i].FromModel(mod)
	}
}
