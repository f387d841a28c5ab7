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
	hallModel "villa/internal/domains/hall/model"
	hallRepo "villa/internal/domains/hall/repository"
	"villa/internal/domains/hallbooking/model"
	"villa/internal/domains/hallbooking/model/dto"
	"villa/internal/domains/hallbooking/repository"
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
	cacheGetHallBooking    = "hall_booking:get"
	cacheGetAllHallBooking = "hall_booking:gets"
	cacheCountHallBooking  = "hall_booking:count"

	warningTaskFailed   = "hall booking updated but the housekeeping task could not be created"
	warningNotifyFailed = "hall booking updated but the guest notification could not be sent"
)

type HallBooking interface {
	Create(ctx context.Context, req dto.CreateHallBookingRequest) (dto.HallBookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetHallBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.HallBookingResponse, error)
	MyBookings(ctx context.Context, req gDto.QueryParams, guestID string) (dto.GetHallBookingsResponse, error)
	Update(ctx context.Context, req dto.UpdateHallBookingRequest, id string) error
	Delete(ctx context.Context, id string) error
	Approve(ctx context.Context, id string) (dto.HallBookingResponse, error)
	Reject(ctx context.Context, req dto.RejectHallBookingRequest, id string) (dto.HallBookingResponse, error)
	Complete(ctx context.Context, id string) (dto.HallBookingResponse, error)
}

type serviceImpl struct {
	repo       repository.HallBooking
	hallRepo   hallRepo.Hall
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
	repo repository.HallBooking,
	hallRepo hallRepo.Hall,
	userRepo userRepo.User,
	tasks taskService.Task,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	transactor postgres.Transactor,
	locks *lock.Keyed,
	mailer mailer.Mailer,
	emitter kafka.Emitter,
) HallBooking {
	return &serviceImpl{
		repo:       repo,
		hallRepo:   hallRepo,
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

// availabilityFilter matches hall bookings that block the candidate range. A
// nil end_date means the reservation covers event_date only, hence the OR
// branch on event_date when end_date is null.
func availabilityFilter(hallID string, start, end time.Time, excludeID string) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{
			Field:    model.FieldHallID,
			Operator: gDto.FilterOperatorEq,
			Value:    hallID,
			Table:    model.TableName,
		},
		gDto.Filter{
			ArgName:  "hall_booking_status",
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorIn,
			Value:    []string{constant.BookingStatusPending, constant.BookingStatusConfirmed},
			Table:    model.TableName,
		},
		gDto.Filter{
			ArgName:  "candidate_end",
			Field:    model.FieldEventDate,
			Operator: gDto.FilterOperatorLessEq,
			Value:    end,
			Table:    model.TableName,
		},
		gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{
					ArgName:  "candidate_start",
					Field:    model.FieldEndDate,
					Operator: gDto.FilterOperatorGreaterEq,
					Value:    start,
					Table:    model.TableName,
				},
				gDto.FilterGroup{
					Operator: gDto.FilterGroupOperatorAnd,
					Filters: []any{
						gDto.Filter{
							Field:    model.FieldEndDate,
							Operator: gDto.FilterIsNull,
							Table:    model.TableName,
						},
						gDto.Filter{
							ArgName:  "candidate_start",
							Field:    model.FieldEventDate,
							Operator: gDto.FilterOperatorGreaterEq,
							Value:    start,
							Table:    model.TableName,
						},
					},
				},
			},
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

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == constant.PqErrorCodeExclusionViolation
	}

	return false
}

func (s *serviceImpl) checkAvailability(ctx context.Context, hallID string, start, end time.Time, excludeID string) error {
	count, err := s.repo.Count(ctx, availabilityFilter(hallID, start, end, excludeID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check hall availability")

		return fmt.Errorf("failed to check hall availability: %w", err)
	}

	if count > 0 {
		return failure.Conflict("hall is not available for the selected dates")
	}

	return nil
}

func validateRange(eventDate time.Time, endDate *time.Time) error {
	today := timezone.Now().Format(constant.DayFormat)
	if eventDate.Format(constant.DayFormat) < today {
		return failure.BadRequestFromString("event_date cannot be in the past")
	}

	if endDate != nil && endDate.Before(eventDate) {
		return failure.BadRequestFromString("end_date cannot be before event_date")
	}

	return nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateHallBookingRequest) (res dto.HallBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	guestID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if guestID == constant.Empty {
		return res, failure.Unauthorized("missing identity")
	}

	booking, err := req.ToModel(guestID)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse hall booking request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err))
	}

	if err = validateRange(booking.EventDate, booking.EndDate); err != nil {
		return res, err
	}

	hall, err := s.hallRepo.Get(ctx, shared.FilterByID(req.HallID, hallModel.FieldID, hallModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hall")

		return res, fmt.Errorf("failed to get hall: %w", err)
	}

	if hall.ID == constant.Empty || !hall.Active {
		return res, failure.NotFound("hall not found")
	}

	if hall.Status == constant.HallStatusMaintenance {
		return res, failure.Conflict("hall is under maintenance")
	}

	s.locks.Lock(req.HallID)
	defer s.locks.Unlock(req.HallID)

	start, end := booking.Span()
	if err = s.checkAvailability(ctx, req.HallID, start, end, constant.Empty); err != nil {
		return res, err
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		if isExclusionViolation(err) {
			return res, failure.Conflict("hall is not available for the selected dates")
		}

		log.Error().Err(err).Msg("failed to create hall booking")

		return res, fmt.Errorf("failed to create hall booking: %w", err)
	}

	res.FromModel(booking)
	s.emitter.EmitBookingEvent(ctx, booking.ID, res)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllHallBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountHallBooking)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetHallBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllHallBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for hall bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count hall bookings")

		return res, fmt.Errorf("failed to count hall bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get hall bookings")

		return res, fmt.Errorf("failed to get hall bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save hall bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountHallBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for hall booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count hall bookings")

		return res, fmt.Errorf("failed to count hall bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save hall booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.HallBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(nil)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	cacheKey := shared.BuildCacheKey(cacheGetHallBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for hall booking")

		if role == constant.RoleGuest && res.GuestID != user {
			return dto.HallBookingResponse{}, failure.ResourceRestrictedError
		}

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hall booking")

		return res, fmt.Errorf("failed to get hall booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("hall booking not found")
	}

	if role == constant.RoleGuest && booking.GuestID != user {
		return res, failure.ResourceRestrictedError
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save hall booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) MyBookings(ctx context.Context, req gDto.QueryParams, guestID string) (res dto.GetHallBookingsResponse, err error) {
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

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateHallBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateHallBookingRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get hall booking")

		return fmt.Errorf("failed to get hall booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("hall booking not found")
	}

	if role == constant.RoleGuest && booking.GuestID != user {
		return failure.ResourceRestrictedError
	}

	if booking.Status == constant.BookingStatusCancelled || booking.Status == constant.BookingStatusCompleted {
		return failure.Conflict("hall booking can no longer be modified")
	}

	updatedFields := shared.TransformFields(req, user)

	eventDate := booking.EventDate
	endDate := booking.EndDate
	datesChanged := false

	if req.EventDate != constant.Empty {
		if eventDate, err = time.Parse(constant.DayFormat, req.EventDate); err != nil {
			return failure.BadRequestFromString(fmt.Sprintf("invalid event_date: %v", err))
		}

		updatedFields[model.FieldEventDate] = eventDate
		datesChanged = true
	}

	if req.EndDate != constant.Empty {
		parsed, err := time.Parse(constant.DayFormat, req.EndDate)
		if err != nil {
			return failure.BadRequestFromString(fmt.Sprintf("invalid end_date: %v", err))
		}

		endDate = &parsed
		updatedFields[model.FieldEndDate] = parsed
		datesChanged = true
	}

	if datesChanged {
		if err = validateRange(eventDate, endDate); err != nil {
			return err
		}

		candidate := model.HallBooking{EventDate: eventDate, EndDate: endDate}
		start, end := candidate.Span()

		s.locks.Lock(booking.HallID)
		defer s.locks.Unlock(booking.HallID)

		if err = s.checkAvailability(ctx, booking.HallID, start, end, booking.ID); err != nil {
			return err
		}
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		if isExclusionViolation(err) {
			return failure.Conflict("hall is not available for the selected dates")
		}

		log.Error().Err(err).Msg("failed to update hall booking")

		return fmt.Errorf("failed to update hall booking: %w", err)
	}

	s.invalidateHallBooking(ctx, id)

	return nil
}

func (s *serviceImpl) Approve(ctx context.Context, id string) (res dto.HallBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Approve")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get hall booking")

		return res, fmt.Errorf("failed to get hall booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("hall booking not found")
	}

	if booking.Status != constant.BookingStatusPending {
		return res, failure.Conflict("only pending hall bookings can be approved")
	}

	err = s.transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		bookingFields := map[string]any{
			model.FieldStatus:        constant.BookingStatusConfirmed,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}

		if err := s.repo.UpdateTx(ctx, tx, bookingFields, filter); err != nil {
			return fmt.Errorf("failed to confirm hall booking: %w", err)
		}

		hallFields := map[string]any{
			hallModel.FieldStatus:    constant.HallStatusBooked,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}

		hallFilter := shared.FilterByID(booking.HallID, hallModel.FieldID, hallModel.TableName)
		if err := s.hallRepo.UpdateTx(ctx, tx, hallFields, hallFilter); err != nil {
			return fmt.Errorf("failed to book hall: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("hall_booking_id", id).Msg("failed to approve hall booking")

		return res, err
	}

	booking.Status = constant.BookingStatusConfirmed
	res.FromModel(booking)

	if warn := s.createLifecycleTask(ctx, booking, constant.TaskTypeInspection, booking.EventDate,
		fmt.Sprintf("Pre-event inspection for %s", booking.Purpose)); warn != constant.Empty {
		res.Warnings = append(res.Warnings, warn)
	}

	if warn := s.notifyGuest(ctx, booking, "Hall booking confirmed",
		fmt.Sprintf("Your hall booking for %s on %s has been confirmed.",
			booking.Purpose, res.EventDate)); warn != constant.Empty {
		res.Warnings = append(res.Warnings, warn)
	}

	s.emitter.EmitBookingEvent(ctx, booking.ID, res)
	s.invalidateHallBooking(ctx, id)

	return res, nil
}

func (s *serviceImpl) Reject(ctx context.Context, req dto.RejectHallBookingRequest, id string) (res dto.HallBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reject")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get hall booking")

		return res, fmt.Errorf("failed to get hall booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("hall booking not found")
	}

	if booking.Status != constant.BookingStatusPending {
		return res, failure.Conflict("only pending hall bookings can be rejected")
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
		log.Error().Err(err).Msg("failed to reject hall booking")

		return res, fmt.Errorf("failed to reject hall booking: %w", err)
	}

	booking.Status = constant.BookingStatusCancelled
	booking.RejectedReason = &reason
	res.FromModel(booking)

	if warn := s.notifyGuest(ctx, booking, "Hall booking rejected",
		fmt.Sprintf("Your hall booking for %s on %s was rejected: %s",
			booking.Purpose, res.EventDate, reason)); warn != constant.Empty {
		res.Warnings = append(res.Warnings, warn)
	}

	s.emitter.EmitBookingEvent(ctx, booking.ID, res)
	s.invalidateHallBooking(ctx, id)

	return res, nil
}

func (s *serviceImpl) Complete(ctx context.Context, id string) (res dto.HallBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Complete")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get hall booking")

		return res, fmt.Errorf("failed to get hall booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("hall booking not found")
	}

	if booking.Status != constant.BookingStatusConfirmed {
		return res, failure.Conflict("only confirmed hall bookings can be completed")
	}

	err = s.transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		bookingFields := map[string]any{
			model.FieldStatus:        constant.BookingStatusCompleted,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}

		if err := s.repo.UpdateTx(ctx, tx, bookingFields, filter); err != nil {
			return fmt.Errorf("failed to complete hall booking: %w", err)
		}

		hallFields := map[string]any{
			hallModel.FieldStatus:    constant.HallStatusAvailable,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}

		hallFilter := shared.FilterByID(booking.HallID, hallModel.FieldID, hallModel.TableName)
		if err := s.hallRepo.UpdateTx(ctx, tx, hallFields, hallFilter); err != nil {
			return fmt.Errorf("failed to release hall: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("hall_booking_id", id).Msg("failed to complete hall booking")

		return res, err
	}

	booking.Status = constant.BookingStatusCompleted
	res.FromModel(booking)

	if warn := s.createLifecycleTask(ctx, booking, constant.TaskTypeCleaning, timezone.Now(),
		fmt.Sprintf("Post-event cleaning for %s", booking.Purpose)); warn != constant.Empty {
		res.Warnings = append(res.Warnings, warn)
	}

	s.emitter.EmitBookingEvent(ctx, booking.ID, res)
	s.invalidateHallBooking(ctx, id)

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
		log.Error().Err(err).Msg("failed to get hall booking")

		return fmt.Errorf("failed to get hall booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("hall booking not found")
	}

	if role == constant.RoleGuest && booking.GuestID != user {
		return failure.ResourceRestrictedError
	}

	if booking.Status == constant.BookingStatusPending || booking.Status == constant.BookingStatusConfirmed {
		return failure.Conflict("active hall bookings cannot be deleted")
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete hall booking")

		return fmt.Errorf("failed to delete hall booking: %w", err)
	}

	s.invalidateHallBooking(ctx, id)

	return nil
}

func (s *serviceImpl) createLifecycleTask(ctx context.Context, booking model.HallBooking, taskType string, scheduled time.Time, description string) string {
	req := taskDto.CreateTaskRequest{
		ResourceType:  constant.ResourceTypeHall,
		ResourceID:    booking.HallID,
		Description:   description,
		TaskType:      taskType,
		ScheduledDate: scheduled.Format(constant.DayFormat),
	}

	if _, err := s.tasks.Create(ctx, req); err != nil {
		log.Warn().Err(err).Str("hall_booking_id", booking.ID).Str("task_type", taskType).Msg("failed to create lifecycle task")

		return warningTaskFailed
	}

	return constant.Empty
}

func (s *serviceImpl) notifyGuest(ctx context.Context, booking model.HallBooking, subject, body string) string {
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

func (s *serviceImpl) invalidateHallBooking(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetHallBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete hall booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllHallBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountHallBooking)
	}()
}
