package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"villa/config"
	kafkaMocks "villa/infras/kafka/mocks"
	mailerMocks "villa/infras/mailer/mocks"
	"villa/infras/otel/mocks"
	pgMocks "villa/infras/postgres/mocks"
	bookingMocks "villa/internal/domains/booking/mocks"
	"villa/internal/domains/booking/model"
	"villa/internal/domains/booking/model/dto"
	"villa/internal/domains/booking/service"
	roomMocks "villa/internal/domains/room/mocks"
	roomModel "villa/internal/domains/room/model"
	taskDto "villa/internal/domains/task/model/dto"
	taskMocks "villa/internal/domains/task/service/mocks"
	userMocks "villa/internal/domains/user/mocks"
	userModel "villa/internal/domains/user/model"
	cacheMocks "villa/shared/cache/mocks"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	"villa/shared/failure"
	"villa/shared/lock"
	gModel "villa/shared/model"
	"villa/shared/timezone"
)

type bookingFixture struct {
	repo       *bookingMocks.MockBooking
	roomRepo   *roomMocks.MockRoom
	userRepo   *userMocks.MockUser
	tasks      *taskMocks.MockTask
	cache      *cacheMocks.MockRedisCache
	transactor *pgMocks.MockTransactor
	mailer     *mailerMocks.MockMailer
	emitter    *kafkaMocks.MockEmitter
	svc        service.Booking
}

func newBookingFixture(ctrl *gomock.Controller) *bookingFixture {
	f := &bookingFixture{
		repo:       bookingMocks.NewMockBooking(ctrl),
		roomRepo:   roomMocks.NewMockRoom(ctrl),
		userRepo:   userMocks.NewMockUser(ctrl),
		tasks:      taskMocks.NewMockTask(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
		transactor: pgMocks.NewMockTransactor(ctrl),
		mailer:     mailerMocks.NewMockMailer(ctrl),
		emitter:    kafkaMocks.NewMockEmitter(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.emitter.EXPECT().EmitBookingEvent(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	f.svc = service.New(
		f.repo, f.roomRepo, f.userRepo, f.tasks, cfg, f.cache,
		mocks.NewOtel(), f.transactor, lock.NewKeyed(), f.mailer, f.emitter,
	)

	return f
}

func guestCtx(userID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleGuest)
}

func adminCtx(userID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func passthroughTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	return fn(nil)
}

func futureDay(days int) string {
	return timezone.Now().AddDate(0, 0, days).Format(constant.DayFormat)
}

func availableRoom(id string) roomModel.Room {
	return roomModel.Room{
		ID:     id,
		Number: "101",
		Status: constant.RoomStatusAvailable,
		Active: true,
	}
}

func pendingBooking(id, roomID, guestID string) model.Booking {
	return model.Booking{
		ID:       id,
		RoomID:   roomID,
		GuestID:  guestID,
		CheckIn:  timezone.Now().AddDate(0, 0, 7),
		CheckOut: timezone.Now().AddDate(0, 0, 10),
		Status:   constant.BookingStatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  guestID,
			ModifiedBy: guestID,
		},
	}
}

func filterValue(group gDto.FilterGroup, argName string) (any, bool) {
	for _, raw := range group.Filters {
		f, ok := raw.(gDto.Filter)
		if !ok {
			continue
		}

		if f.ArgName == argName {
			return f.Value, true
		}
	}

	return nil, false
}

func TestBookingService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func(f *bookingFixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			req: dto.CreateBookingRequest{
				RoomID:   "room-1",
				CheckIn:  futureDay(7),
				CheckOut: futureDay(10),
			},
			setupMock: func(f *bookingFixture) {
				f.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableRoom("room-1"), nil)

				f.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, nil)

				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "touching ranges conflict",
			req: dto.CreateBookingRequest{
				RoomID:   "room-1",
				CheckIn:  futureDay(10),
				CheckOut: futureDay(13),
			},
			setupMock: func(f *bookingFixture) {
				f.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableRoom("room-1"), nil)

				// An existing stay ends on the candidate check-in day, so the
				// inclusive overlap rule reports one blocking booking.
				f.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "check_out before check_in",
			req: dto.CreateBookingRequest{
				RoomID:   "room-1",
				CheckIn:  futureDay(10),
				CheckOut: futureDay(7),
			},
			setupMock: func(f *bookingFixture) {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "check_in in the past",
			req: dto.CreateBookingRequest{
				RoomID:   "room-1",
				CheckIn:  futureDay(-3),
				CheckOut: futureDay(2),
			},
			setupMock: func(f *bookingFixture) {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "room under maintenance",
			req: dto.CreateBookingRequest{
				RoomID:   "room-1",
				CheckIn:  futureDay(7),
				CheckOut: futureDay(10),
			},
			setupMock: func(f *bookingFixture) {
				room := availableRoom("room-1")
				room.Status = constant.RoomStatusMaintenance

				f.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "room not found",
			req: dto.CreateBookingRequest{
				RoomID:   "missing",
				CheckIn:  futureDay(7),
				CheckOut: futureDay(10),
			},
			setupMock: func(f *bookingFixture) {
				f.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "exclusion constraint backstop",
			req: dto.CreateBookingRequest{
				RoomID:   "room-1",
				CheckIn:  futureDay(7),
				CheckOut: futureDay(10),
			},
			setupMock: func(f *bookingFixture) {
				f.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableRoom("room-1"), nil)

				f.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, nil)

				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeExclusionViolation)})
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newBookingFixture(ctrl)
			tt.setupMock(f)

			res, err := f.svc.Create(guestCtx("guest-1"), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, constant.BookingStatusPending, res.Status)
				assert.Equal(t, "guest-1", res.GuestID)
			}
		})
	}
}

func TestBookingService_CreatePassesInclusiveBounds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(ctrl)

	checkIn := futureDay(7)
	checkOut := futureDay(10)

	f.roomRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(availableRoom("room-1"), nil)

	f.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			end, ok := filterValue(filter, "candidate_end")
			assert.True(t, ok)
			assert.Equal(t, checkOut, end.(time.Time).Format(constant.DayFormat))

			start, ok := filterValue(filter, "candidate_start")
			assert.True(t, ok)
			assert.Equal(t, checkIn, start.(time.Time).Format(constant.DayFormat))

			_, excluded := filterValue(filter, "exclude_id")
			assert.False(t, excluded)

			return 0, nil
		})

	f.repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		Return(nil)

	_, err := f.svc.Create(guestCtx("guest-1"), dto.CreateBookingRequest{
		RoomID:   "room-1",
		CheckIn:  checkIn,
		CheckOut: checkOut,
	})
	assert.NoError(t, err)
}

func TestBookingService_Approve(t *testing.T) {
	t.Run("pending booking is confirmed and room occupied", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingFixture(ctrl)
		booking := pendingBooking("booking-1", "room-1", "guest-1")

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		f.transactor.EXPECT().
			WithinTransaction(gomock.Any(), gomock.Any()).
			DoAndReturn(passthroughTx)

		f.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, constant.BookingStatusConfirmed, fields[model.FieldStatus])

				return nil
			})

		f.roomRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, constant.RoomStatusOccupied, fields[roomModel.FieldStatus])

				return nil
			})

		f.tasks.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req taskDto.CreateTaskRequest) (taskDto.TaskResponse, error) {
				assert.Equal(t, constant.TaskTypePreCheckIn, req.TaskType)
				assert.Equal(t, "room-1", req.ResourceID)
				assert.Equal(t, booking.CheckIn.Format(constant.DayFormat), req.ScheduledDate)

				return taskDto.TaskResponse{ID: "task-1"}, nil
			})

		f.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: "guest-1", Email: "guest@example.com"}, nil)

		f.mailer.EXPECT().
			Send(gomock.Any(), "guest@example.com", gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := f.svc.Approve(adminCtx("admin-1"), "booking-1")
		assert.NoError(t, err)
		assert.Equal(t, constant.BookingStatusConfirmed, res.Status)
		assert.Empty(t, res.Warnings)
	})

	t.Run("non pending booking conflicts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingFixture(ctrl)
		booking := pendingBooking("booking-1", "room-1", "guest-1")
		booking.Status = constant.BookingStatusConfirmed

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		_, err := f.svc.Approve(adminCtx("admin-1"), "booking-1")
		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("task failure surfaces a warning", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingFixture(ctrl)
		booking := pendingBooking("booking-1", "room-1", "guest-1")

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		f.transactor.EXPECT().
			WithinTransaction(gomock.Any(), gomock.Any()).
			DoAndReturn(passthroughTx)

		f.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		f.roomRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		f.tasks.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(taskDto.TaskResponse{}, errors.New("no staff available"))

		f.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: "guest-1", Email: "guest@example.com"}, nil)

		f.mailer.EXPECT().
			Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := f.svc.Approve(adminCtx("admin-1"), "booking-1")
		assert.NoError(t, err)
		assert.Equal(t, constant.BookingStatusConfirmed, res.Status)
		assert.Len(t, res.Warnings, 1)
	})
}

func TestBookingService_Reject(t *testing.T) {
	t.Run("reason defaults when omitted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingFixture(ctrl)
		booking := pendingBooking("booking-1", "room-1", "guest-1")

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, constant.BookingStatusCancelled, fields[model.FieldStatus])
				assert.Equal(t, constant.DefaultRejectedReason, fields[model.FieldRejectedReason])

				return nil
			})

		f.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: "guest-1", Email: "guest@example.com"}, nil)

		f.mailer.EXPECT().
			Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := f.svc.Reject(adminCtx("admin-1"), dto.RejectBookingRequest{}, "booking-1")
		assert.NoError(t, err)
		assert.Equal(t, constant.BookingStatusCancelled, res.Status)
		assert.NotNil(t, res.RejectedReason)
		assert.Equal(t, constant.DefaultRejectedReason, *res.RejectedReason)
	})

	t.Run("rejecting a cancelled booking conflicts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingFixture(ctrl)
		booking := pendingBooking("booking-1", "room-1", "guest-1")
		booking.Status = constant.BookingStatusCancelled

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		_, err := f.svc.Reject(adminCtx("admin-1"), dto.RejectBookingRequest{Reason: "again"}, "booking-1")
		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestBookingService_Checkout(t *testing.T) {
	t.Run("confirmed booking completes and releases the room", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingFixture(ctrl)
		booking := pendingBooking("booking-1", "room-1", "guest-1")
		booking.Status = constant.BookingStatusConfirmed

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		f.transactor.EXPECT().
			WithinTransaction(gomock.Any(), gomock.Any()).
			DoAndReturn(passthroughTx)

		f.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, constant.BookingStatusCompleted, fields[model.FieldStatus])

				return nil
			})

		f.roomRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, constant.RoomStatusAvailable, fields[roomModel.FieldStatus])

				return nil
			})

		f.tasks.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req taskDto.CreateTaskRequest) (taskDto.TaskResponse, error) {
				assert.Equal(t, constant.TaskTypePostCheckOut, req.TaskType)

				return taskDto.TaskResponse{ID: "task-1"}, nil
			})

		f.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: "guest-1", Email: "guest@example.com"}, nil)

		f.mailer.EXPECT().
			Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := f.svc.Checkout(adminCtx("admin-1"), "booking-1")
		assert.NoError(t, err)
		assert.Equal(t, constant.BookingStatusCompleted, res.Status)
	})

	t.Run("pending booking cannot be checked out", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingFixture(ctrl)
		booking := pendingBooking("booking-1", "room-1", "guest-1")

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		_, err := f.svc.Checkout(adminCtx("admin-1"), "booking-1")
		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestBookingService_Update(t *testing.T) {
	t.Run("date change excludes own booking from the check", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingFixture(ctrl)
		booking := pendingBooking("booking-1", "room-1", "guest-1")

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		f.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				excluded, ok := filterValue(filter, "exclude_id")
				assert.True(t, ok)
				assert.Equal(t, "booking-1", excluded)

				return 0, nil
			})

		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		err := f.svc.Update(guestCtx("guest-1"), dto.UpdateBookingRequest{
			CheckIn:  futureDay(8),
			CheckOut: futureDay(11),
		}, "booking-1")
		assert.NoError(t, err)
	})

	t.Run("guest cannot update another guest's booking", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingFixture(ctrl)
		booking := pendingBooking("booking-1", "room-1", "guest-1")

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		err := f.svc.Update(guestCtx("guest-2"), dto.UpdateBookingRequest{Notes: "late arrival"}, "booking-1")
		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("completed booking cannot be modified", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingFixture(ctrl)
		booking := pendingBooking("booking-1", "room-1", "guest-1")
		booking.Status = constant.BookingStatusCompleted

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		err := f.svc.Update(guestCtx("guest-1"), dto.UpdateBookingRequest{Notes: "too late"}, "booking-1")
		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestBookingService_Delete(t *testing.T) {
	t.Run("active booking cannot be deleted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingFixture(ctrl)
		booking := pendingBooking("booking-1", "room-1", "guest-1")
		booking.Status = constant.BookingStatusConfirmed

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		err := f.svc.Delete(adminCtx("admin-1"), "booking-1")
		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("cancelled booking is deleted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingFixture(ctrl)
		booking := pendingBooking("booking-1", "room-1", "guest-1")
		booking.Status = constant.BookingStatusCancelled

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		f.repo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		err := f.svc.Delete(adminCtx("admin-1"), "booking-1")
		assert.NoError(t, err)
	})
}
