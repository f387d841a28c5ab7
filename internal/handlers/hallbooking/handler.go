package hallbooking

import (
	"net/http"
	"villa/infras/otel"
	"villa/internal/domains/hallbooking/model"
	"villa/internal/domains/hallbooking/model/dto"
	"villa/internal/domains/hallbooking/service"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	"villa/shared/validator"
	"villa/transport/http/middleware"
	"villa/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.HallBooking
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.HallBooking, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/hall-bookings", func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.APIKey, handler.middleware.Auth, handler.middleware.RBAC)

		routerGroup.Post("/", handler.CreateHallBooking)
		routerGroup.Get("/", handler.GetHallBookings)
		routerGroup.Get("/my", handler.GetMyHallBookings)
		routerGroup.Get("/{id}", handler.GetHallBookingByID)
		routerGroup.Patch("/{id}", handler.UpdateHallBooking)
		routerGroup.Delete("/{id}", handler.DeleteHallBooking)
		routerGroup.Post("/{id}/approve", handler.ApproveHallBooking)
		routerGroup.Post("/{id}/reject", handler.RejectHallBooking)
		routerGroup.Post("/{id}/complete", handler.CompleteHallBooking)
	})
}

// CreateHallBooking handles the creation of a new hall booking.
// @Summary Create a new hall booking
// @Description Book a hall for an event. Single day events may omit the end date.
// @Tags HallBooking
// @Accept json
// @Produce json
// @Param request body dto.CreateHallBookingRequest true "Create Hall Booking Request"
// @Success 201 {object} dto.HallBookingResponse "Hall booking created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hall-bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateHallBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateHallBooking")
	defer scope.End()

	req := dto.CreateHallBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create hall booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Hall booking created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetHallBookings retrieves all hall bookings based on query parameters.
// @Summary Get all hall bookings
// @Description Retrieve all hall bookings with optional filtering and pagination.
// @Tags HallBooking
// @Accept json
// @Produce json
// @Param status query string false "Filter by status"
// @Param hall_id query string false "Filter by hall"
// @Param guest_id query string false "Filter by guest"
// @Success 200 {object} dto.GetHallBookingsResponse "List of hall bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hall-bookings [get]
// @Security BearerAuth
func (handler *Handler) GetHallBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHallBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	for _, field := range []string{model.FieldStatus, model.FieldHallID, model.FieldGuestID} {
		if value := r.URL.Query().Get(field); value != constant.Empty {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get hall bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Hall bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetMyHallBookings retrieves the hall bookings of the authenticated guest.
// @Summary Get my hall bookings
// @Description Retrieve the hall bookings that belong to the authenticated guest.
// @Tags HallBooking
// @Accept json
// @Produce json
// @Success 200 {object} dto.GetHallBookingsResponse "List of hall bookings"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hall-bookings/my [get]
// @Security BearerAuth
func (handler *Handler) GetMyHallBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyHallBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	guestID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	bookings, err := handler.service.MyBookings(ctx, queryParams, guestID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get my hall bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Hall bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetHallBookingByID retrieves a hall booking by its ID.
// @Summary Get a hall booking by ID
// @Description Retrieve a hall booking by its unique identifier.
// @Tags HallBooking
// @Accept json
// @Produce json
// @Param id path string true "Hall Booking ID"
// @Success 200 {object} dto.HallBookingResponse "Hall booking details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hall-bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetHallBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHallBookingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get hall booking by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Hall booking retrieved successfully")

	response.WithJSON(w, http.StatusOK, booking)
}

// UpdateHallBooking updates a hall booking by its ID.
// @Summary Update a hall booking by ID
// @Description Update the dates or purpose of a hall booking that has not reached a final status.
// @Tags HallBooking
// @Accept json
// @Produce json
// @Param id path string true "Hall Booking ID"
// @Param request body dto.UpdateHallBookingRequest true "Update Hall Booking Request"
// @Success 200 {object} response.Message "Hall booking updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hall-bookings/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateHallBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateHallBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateHallBookingRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update hall booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Hall booking updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Hall booking updated successfully")
}

// DeleteHallBooking deletes a finished hall booking by its ID.
// @Summary Delete a hall booking by ID
// @Description Delete a hall booking that has already been cancelled or completed.
// @Tags HallBooking
// @Accept json
// @Produce json
// @Param id path string true "Hall Booking ID"
// @Success 200 {object} response.Message "Hall booking deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hall-bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteHallBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteHallBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete hall booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Hall booking deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Hall booking deleted successfully")
}

// ApproveHallBooking confirms a pending hall booking.
// @Summary Approve a hall booking
// @Description Confirm a pending hall booking, mark the hall booked and schedule the pre-event inspection.
// @Tags HallBooking
// @Accept json
// @Produce json
// @Param id path string true "Hall Booking ID"
// @Success 200 {object} dto.HallBookingResponse "Hall booking approved successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hall-bookings/{id}/approve [post]
// @Security BearerAuth
func (handler *Handler) ApproveHallBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApproveHallBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.Approve(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to approve hall booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Hall booking approved successfully by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// RejectHallBooking cancels a pending hall booking.
// @Summary Reject a hall booking
// @Description Cancel a pending hall booking with an optional reason.
// @Tags HallBooking
// @Accept json
// @Produce json
// @Param id path string true "Hall Booking ID"
// @Param request body dto.RejectHallBookingRequest true "Reject Hall Booking Request"
// @Success 200 {object} dto.HallBookingResponse "Hall booking rejected successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hall-bookings/{id}/reject [post]
// @Security BearerAuth
func (handler *Handler) RejectHallBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RejectHallBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.RejectHallBookingRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Reject(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reject hall booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Hall booking rejected successfully by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// CompleteHallBooking completes a confirmed hall booking.
// @Summary Complete a hall booking
// @Description Complete a confirmed hall booking, release the hall and schedule the post-event cleaning.
// @Tags HallBooking
// @Accept json
// @Produce json
// @Param id path string true "Hall Booking ID"
// @Success 200 {object} dto.HallBookingResponse "Hall booking completed successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hall-bookings/{id}/complete [post]
// @Security BearerAuth
func (handler *Handler) CompleteHallBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CompleteHallBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.Complete(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to complete hall booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Hall booking completed successfully by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}
