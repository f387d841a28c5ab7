package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"villa/config"
	"villa/infras/kafka"
	"villa/infras/mailer"
	"villa/infras/otel"
	"villa/infras/postgres"
	"villa/internal/domains/booking/model"
	"villa/internal/domains/booking/model/dto"
	"villa/internal/domains/booking/repository"
	roomModel "villa/internal/domains/room/model"
	roomRepo "villa/internal/domains/room/repository"
	taskDto "villa/internal/domains/task/model/dto"
	taskService "villa/internal/domains/task/service"
	userModel "villa/internal/domains/user/model"
	userRepo "villa/internal/domains/user/repository"
	"villa/shared"
	"villa/shared/cache"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	"villa/shared/failure"
	"villa/shared/lock"
	"villa/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	warningTaskFailed   = "booking updated but the housekeeping task could not be created"
	warningNotifyFailed = "booking updated but the guest notification could not be sent"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	MyBookings(ctx context.Context, req gDto.QueryParams, guestID string) (dto.GetBookingsResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	Delete(ctx context.Context, id string) error
	Approve(ctx context.Context, id string) (dto.BookingResponse, error)
	Reject(ctx context.Context, req dto.RejectBookingRequest, id string) (dto.BookingResponse, error)
	Checkout(ctx context.Context, id string) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo       repository.Booking
	roomRepo   roomRepo.Room
	userRepo   userRepo.User
	tasks      taskService.Task
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	transactor postgres.Transactor
	locks      *lock.Keyed
	mailer     mailer.Mailer
	emitter    kafka.Emitter
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	userRepo userRepo.User,
	tasks taskService.Task,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	transactor postgres.Transactor,
	locks *lock.Keyed,
	mailer mailer.Mailer,
	emitter kafka.Emitter,
) Booking {
	return &serviceImpl{
		repo:       repo,
		roomRepo:   roomRepo,
		userRepo:   userRepo,
		tasks:      tasks,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		transactor: transactor,
		locks:      locks,
		mailer:     mailer,
		emitter:    emitter,
	}
}

// availabilityFilter matches bookings that block the candidate range. Ranges
// are inclusive on both ends, so a stay ending on the day another starts is a
// conflict (turnover needs a full day).
func availabilityFilter(roomID string, checkIn, checkOut time.Time, excludeID string) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{
			Field:    model.FieldRoomID,
			Operator: gDto.FilterOperatorEq,
			Value:    roomID,
			Table:    model.TableName,
		},
		gDto.Filter{
			ArgName:  "booking_status",
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorIn,
			Value:    []string{constant.BookingStatusPending, constant.BookingStatusConfirmed},
			Table:    model.TableName,
		},
		gDto.Filter{
			ArgName:  "candidate_end",
			Field:    model.FieldCheckIn,
			Operator: gDto.FilterOperatorLessEq,
			Value:    checkOut,
			Table:    model.TableName,
		},
		gDto.Filter{
			ArgName:  "candidate_start",
			Field:    model.FieldCheckOut,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    checkIn,
			Table:    model.TableName,
		},
	}

	if excludeID != constant.Empty {
		filters = append(filters, gDto.Filter{
			ArgName:  "exclude_id",
			Field:    model.FieldID,
			Operator: gDto.FilterOperatorNotEq,
			Value:    excludeID,
			Table:    model.TableName,
		})
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  filters,
	}
}

func (s *serviceImpl) checkAvailability(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeID string) error {
	count, err := s.repo.Count(ctx, availabilityFilter(roomID, checkIn, checkOut, excludeID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check room availability")

		return fmt.Errorf("failed to check room availability: %w", err)
	}

	if count > 0 {
		return failure.Conflict("room is not available for the selected dates")
	}

	return nil
}

func validateRange(checkIn, checkOut time.Time) error {
	if !checkOut.After(checkIn) {
		return failure.BadRequestFromString("check_out must be after check_in")
	}

	today := timezone.Now().Format(constant.DayFormat)
	if checkIn.Format(constant.DayFormat) < today {
		return failure.BadRequestFromString("check_in cannot be in the past")
	}

	return nil
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == constant.PqErrorCodeExclusionViolation
	}

	return false
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	guestID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if guestID == constant.Empty {
		return res, failure.Unauthorized("missing identity")
	}

	booking, err := req.ToModel(guestID)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err))
	}

	if err = validateRange(booking.CheckIn, booking.CheckOut); err != nil {
		return res, err
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty || !room.Active {
		return res, failure.NotFound("room not found")
	}

	if room.Status == constant.RoomStatusMaintenance {
		return res, failure.Conflict("room is under maintenance")
	}

	// Hold the room lock across the availability check and the insert so two
	// concurrent requests cannot both pass the check. The exclusion
	// constraint on room_bookings is the storage-level backstop.
	s.locks.Lock(req.RoomID)
	defer s.locks.Unlock(req.RoomID)

	if err = s.checkAvailability(ctx, req.RoomID, booking.CheckIn, booking.CheckOut, constant.Empty); err != nil {
		return res, err
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		if isExclusionViolation(err) {
			return res, failure.Conflict("room is not available for the selected dates")
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	res.FromModel(booking)
	s.emitter.EmitBookingEvent(ctx, booking.ID, res)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(nil)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		if role == constant.RoleGuest && res.GuestID != user {
			return dto.BookingResponse{}, failure.ResourceRestrictedError
		}

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found")
	}

	if role == constant.RoleGuest && booking.GuestID != user {
		return res, failure.ResourceRestrictedError
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) MyBookings(ctx context.Context, req gDto.QueryParams, guestID string) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MyBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldGuestID,
				Operator: gDto.FilterOperatorEq,
				Value:    guestID,
				Table:    model.TableName,
			},
		},
	}

	return s.GetAll(ctx, req, filter)
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateBookingRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found")
	}

	if role == constant.RoleGuest && booking.GuestID != user {
		return failure.ResourceRestrictedError
	}

	if booking.Status == constant.BookingStatusCancelled || booking.Status == constant.BookingStatusCompleted {
		return failure.Conflict("booking can no longer be modified")
	}

	updatedFields := shared.TransformFields(req, user)

	checkIn, checkOut := booking.CheckIn, booking.CheckOut
	datesChanged := false

	if req.CheckIn != constant.Empty {
		if checkIn, err = time.Parse(constant.DayFormat, req.CheckIn); err != nil {
			return failure.BadRequestFromString(fmt.Sprintf("invalid check_in: %v", err))
		}

		updatedFields[model.FieldCheckIn] = checkIn
		datesChanged = true
	}

	if req.CheckOut != constant.Empty {
		if checkOut, err = time.Parse(constant.DayFormat, req.CheckOut); err != nil {
			return failure.BadRequestFromString(fmt.Sprintf("invalid check_out: %v", err))
		}

		updatedFields[model.FieldCheckOut] = checkOut
		datesChanged = true
	}

	if datesChanged {
		if err = validateRange(checkIn, checkOut); err != nil {
			return err
		}

		// Re-check availability with the booking's own id excluded, so an
		// unchanged or narrowed range does not conflict with itself.
		s.locks.Lock(booking.RoomID)
		defer s.locks.Unlock(booking.RoomID)

		if err = s.checkAvailability(ctx, booking.RoomID, checkIn, checkOut, booking.ID); err != nil {
			return err
		}
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		if isExclusionViolation(err) {
			return failure.Conflict("room is not available for the selected dates")
		}

		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	s.invalidateBooking(ctx, id)

	return nil
}

func (s *serviceImpl) Approve(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Approve")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found")
	}

	if booking.Status != constant.BookingStatusPending {
		return res, failure.Conflict("only pending bookings can be approved")
	}

	err = s.transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		bookingFields := map[string]any{
			model.FieldStatus:        constant.BookingStatusConfirmed,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}

		if err := s.repo.UpdateTx(ctx, tx, bookingFields, filter); err != nil {
			return fmt.Errorf("failed to confirm booking: %w", err)
		}

		roomFields := map[string]any{
			roomModel.FieldStatus:    constant.RoomStatusOccupied,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}

		roomFilter := shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName)
		if err := s.roomRepo.UpdateTx(ctx, tx, roomFields, roomFilter); err != nil {
			return fmt.Errorf("failed to occupy room: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to approve booking")

		return res, err
	}

	booking.Status = constant.BookingStatusConfirmed
	res.FromModel(booking)

	// Post-commit side effects are best effort. Failures surface as warnings
	// instead of rolling back the approval.
	if warn := s.createLifecycleTask(ctx, booking, constant.TaskTypePreCheckIn, booking.CheckIn); warn != constant.Empty {
		res.Warnings = append(res.Warnings, warn)
	}

	if warn := s.notifyGuest(ctx, booking, "Booking confirmed",
		fmt.Sprintf("Your booking from %s to %s has been confirmed.",
			res.CheckIn, res.CheckOut)); warn != constant.Empty {
		res.Warnings = append(res.Warnings, warn)
	}

	s.emitter.EmitBookingEvent(ctx, booking.ID, res)
	s.invalidateBooking(ctx, id)

	return res, nil
}

func (s *serviceImpl) Reject(ctx context.Context, req dto.RejectBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reject")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found")
	}

	if booking.Status != constant.BookingStatusPending {
		return res, failure.Conflict("only pending bookings can be rejected")
	}

	reason := req.Reason
	if reason == constant.Empty {
		reason = constant.DefaultRejectedReason
	}

	updatedFields := map[string]any{
		model.FieldStatus:         constant.BookingStatusCancelled,
		model.FieldRejectedReason: reason,
		constant.FieldModifiedAt:  timezone.Now(),
		constant.FieldModifiedBy:  user,
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to reject booking")

		return res, fmt.Errorf("failed to reject booking: %w", err)
	}

	booking.Status = constant.BookingStatusCancelled
	booking.RejectedReason = &reason
	res.FromModel(booking)

	if warn := s.notifyGuest(ctx, booking, "Booking rejected",
		fmt.Sprintf("Your booking from %s to %s was rejected: %s",
			res.CheckIn, res.CheckOut, reason)); warn != constant.Empty {
		res.Warnings = append(res.Warnings, warn)
	}

	s.emitter.EmitBookingEvent(ctx, booking.ID, res)
	s.invalidateBooking(ctx, id)

	return res, nil
}

func (s *serviceImpl) Checkout(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Checkout")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found")
	}

	if booking.Status != constant.BookingStatusConfirmed {
		return res, failure.Conflict("only confirmed bookings can be checked out")
	}

	err = s.transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		bookingFields := map[string]any{
			model.FieldStatus:        constant.BookingStatusCompleted,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}

		if err := s.repo.UpdateTx(ctx, tx, bookingFields, filter); err != nil {
			return fmt.Errorf("failed to complete booking: %w", err)
		}

		roomFields := map[string]any{
			roomModel.FieldStatus:    constant.RoomStatusAvailable,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}

		roomFilter := shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName)
		if err := s.roomRepo.UpdateTx(ctx, tx, roomFields, roomFilter); err != nil {
			return fmt.Errorf("failed to release room: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to check out booking")

		return res, err
	}

	booking.Status = constant.BookingStatusCompleted
	res.FromModel(booking)

	if warn := s.createLifecycleTask(ctx, booking, constant.TaskTypePostCheckOut, timezone.Now()); warn != constant.Empty {
		res.Warnings = append(res.Warnings, warn)
	}

	if warn := s.notifyGuest(ctx, booking, "Thank you for staying with us",
		"Your checkout has been completed. We hope to see you again."); warn != constant.Empty {
		res.Warnings = append(res.Warnings, warn)
	}

	s.emitter.EmitBookingEvent(ctx, booking.ID, res)
	s.invalidateBooking(ctx, id)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(nil)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found")
	}

	if role == constant.RoleGuest && booking.GuestID != user {
		return failure.ResourceRestrictedError
	}

	if booking.Status == constant.BookingStatusPending || booking.Status == constant.BookingStatusConfirmed {
		return failure.Conflict("active bookings cannot be deleted")
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.invalidateBooking(ctx, id)

	return nil
}

func (s *serviceImpl) createLifecycleTask(ctx context.Context, booking model.Booking, taskType string, scheduled time.Time) string {
	req := taskDto.CreateTaskRequest{
		ResourceType:  constant.ResourceTypeRoom,
		ResourceID:    booking.RoomID,
		Description:   fmt.Sprintf("%s for booking %s", taskType, booking.ID),
		TaskType:      taskType,
		ScheduledDate: scheduled.Format(constant.DayFormat),
		BookingID:     &booking.ID,
	}

	if _, err := s.tasks.Create(ctx, req); err != nil {
		log.Warn().Err(err).Str("booking_id", booking.ID).Str("task_type", taskType).Msg("failed to create lifecycle task")

		return warningTaskFailed
	}

	return constant.Empty
}

func (s *serviceImpl) notifyGuest(ctx context.Context, booking model.Booking, subject, body string) string {
	guest, err := s.userRepo.Get(ctx, shared.FilterByID(booking.GuestID, userModel.FieldID, userModel.TableName))
	if err != nil || guest.ID == constant.Empty {
		log.Warn().Str("guest_id", booking.GuestID).Msg("guest could not be loaded for notification")

		return warningNotifyFailed
	}

	if err := s.mailer.Send(ctx, guest.Email, subject, body); err != nil {
		log.Warn().Err(err).Str("guest_id", guest.ID).Msg("failed to notify guest")

		return warningNotifyFailed
	}

	return constant.Empty
}

func (s *serviceImpl) invalidateBooking(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}
