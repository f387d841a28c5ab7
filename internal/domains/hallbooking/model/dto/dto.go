package dto

import (
	"time"
	"villa/internal/domains/hallbooking/model"
	"villa/shared"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	gModel "villa/shared/model"
	"villa/shared/timezone"

	"github.com/google/uuid"
)

type CreateHallBookingRequest struct {
	HallID    string `json:"hall_id"    validate:"required"`
	EventDate string `json:"event_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   validate:"omitempty,datetime=2006-01-02"`
	Purpose   string `json:"purpose"    validate:"required,max=255"`
}

func (c *CreateHallBookingRequest) ToModel(guestID string) (model.HallBooking, error) {
	eventDate, err := time.Parse(constant.DayFormat, c.EventDate)
	if err != nil {
		return model.HallBooking{}, err
	}

	var endDate *time.Time

	if c.EndDate != constant.Empty {
		parsed, err := time.Parse(constant.DayFormat, c.EndDate)
		if err != nil {
			return model.HallBooking{}, err
		}

		endDate = &parsed
	}

	return model.HallBooking{
		ID:        uuid.NewString(),
		HallID:    c.HallID,
		GuestID:   guestID,
		EventDate: eventDate,
		EndDate:   endDate,
		Purpose:   c.Purpose,
		Status:    constant.BookingStatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  guestID,
			ModifiedBy: guestID,
		},
	}, nil
}

type UpdateHallBookingRequest struct {
	EventDate string `json:"event_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   validate:"omitempty,datetime=2006-01-02"`
	Purpose   string `db:"purpose"      json:"purpose" validate:"omitempty,max=255"`
}

type RejectHallBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=255"`
}

type HallBookingResponse struct {
	ID             string   `json:"id"`
	HallID         string   `json:"hall_id"`
	GuestID        string   `json:"guest_id"`
	EventDate      string   `json:"event_date"`
	EndDate        *string  `json:"end_date,omitempty"`
	Purpose        string   `json:"purpose"`
	Status         string   `json:"status"`
	RejectedReason *string  `json:"rejected_reason,omitempty"`
	Warnings       []string `json:"warnings,omitempty"`
	gDto.Metadata
}

func (r *HallBookingResponse) FromModel(model model.HallBooking) {
	r.ID = model.ID
	r.HallID = model.HallID
	r.GuestID = model.GuestID
	r.EventDate = model.EventDate.Format(constant.DayFormat)

	if model.EndDate != nil {
		endDate := model.EndDate.Format(constant.DayFormat)
		r.EndDate = &endDate
	}

	r.Purpose = model.Purpose
	r.Status = model.Status
	r.RejectedReason = model.RejectedReason
	r.Metadata.FromModel(model.Metadata)
}

type GetHallBookingsResponse struct {
	HallBookings []HallBookingResponse `json:"hall_bookings"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetHallBookingsResponse) FromModels(models []model.HallBooking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.HallBookings = make([]HallBookingResponse, len(models))
	for i, mod := range models {
		r.HallBookings[i].FromModel(mod)
	}
}
