package dto

import (
	"time"
	"villa/internal/domains/booking/model"
	"villa/shared"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	gModel "villa/shared/model"
	"villa/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	RoomID   string `json:"room_id"   validate:"required"`
	CheckIn  string `json:"check_in"  validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"check_out" validate:"required,datetime=2006-01-02"`
	Notes    string `json:"notes"     validate:"omitempty"`
}

func (c *CreateBookingRequest) ToModel(guestID string) (model.Booking, error) {
	checkIn, err := time.Parse(constant.DayFormat, c.CheckIn)
	if err != nil {
		return model.Booking{}, err
	}

	checkOut, err := time.Parse(constant.DayFormat, c.CheckOut)
	if err != nil {
		return model.Booking{}, err
	}

	return model.Booking{
		ID:       uuid.NewString(),
		RoomID:   c.RoomID,
		GuestID:  guestID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Status:   constant.BookingStatusPending,
		Notes:    c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  guestID,
			ModifiedBy: guestID,
		},
	}, nil
}

type UpdateBookingRequest struct {
	CheckIn  string `json:"check_in"  validate:"omitempty,datetime=2006-01-02"`
	CheckOut string `json:"check_out" validate:"omitempty,datetime=2006-01-02"`
	Notes    string `db:"notes"       json:"notes" validate:"omitempty"`
}

type RejectBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=255"`
}

type BookingResponse struct {
	ID             string   `json:"id"`
	RoomID         string   `json:"room_id"`
	GuestID        string   `json:"guest_id"`
	CheckIn        string   `json:"check_in"`
	CheckOut       string   `json:"check_out"`
	Status         string   `json:"status"`
	RejectedReason *string  `json:"rejected_reason,omitempty"`
	Notes          string   `json:"notes,omitempty"`
	Warnings       []string `json:"warnings,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.GuestID = model.GuestID
	r.CheckIn = model.CheckIn.Format(constant.DayFormat)
	r.CheckOut = model.CheckOut.Format(constant.DayFormat)
	r.Status = model.Status
	r.RejectedReason = model.RejectedReason
	r.Notes = model.Notes
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
