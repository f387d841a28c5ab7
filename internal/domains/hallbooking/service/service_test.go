package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"villa/config"
	kafkaMocks "villa/infras/kafka/mocks"
	mailerMocks "villa/infras/mailer/mocks"
	"villa/infras/otel/mocks"
	pgMocks "villa/infras/postgres/mocks"
	hallMocks "villa/internal/domains/hall/mocks"
	hallModel "villa/internal/domains/hall/model"
	hallBookingMocks "villa/internal/domains/hallbooking/mocks"
	"villa/internal/domains/hallbooking/model"
	"villa/internal/domains/hallbooking/model/dto"
	"villa/internal/domains/hallbooking/service"
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

type hallBookingFixture struct {
	repo       *hallBookingMocks.MockHallBooking
	hallRepo   *hallMocks.MockHall
	userRepo   *userMocks.MockUser
	tasks      *taskMocks.MockTask
	cache      *cacheMocks.MockRedisCache
	transactor *pgMocks.MockTransactor
	mailer     *mailerMocks.MockMailer
	emitter    *kafkaMocks.MockEmitter
	svc        service.HallBooking
}

func newHallBookingFixture(ctrl *gomock.Controller) *hallBookingFixture {
	f := &hallBookingFixture{
		repo:       hallBookingMocks.NewMockHallBooking(ctrl),
		hallRepo:   hallMocks.NewMockHall(ctrl),
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
		f.repo, f.hallRepo, f.userRepo, f.tasks, cfg, f.cache,
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

func futureDay(days int) string {
	return timezone.Now().AddDate(0, 0, days).Format(constant.DayFormat)
}

func availableHall(id string) hallModel.Hall {
	return hallModel.Hall{
		ID:     id,
		Number: "H1",
		Name:   "Grand Hall",
		Status: constant.HallStatusAvailable,
		Active: true,
	}
}

func confirmedHallBooking(id, hallID, guestID string) model.HallBooking {
	return model.HallBooking{
		ID:        id,
		HallID:    hallID,
		GuestID:   guestID,
		EventDate: timezone.Now().AddDate(0, 0, 7),
		Purpose:   "Wedding reception",
		Status:    constant.BookingStatusConfirmed,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  guestID,
			ModifiedBy: guestID,
		},
	}
}

func TestHallBookingService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateHallBookingRequest
		setupMock func(f *hallBookingFixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "single day event without end_date",
			req: dto.CreateHallBookingRequest{
				HallID:    "hall-1",
				EventDate: futureDay(7),
				Purpose:   "Company retreat",
			},
			setupMock: func(f *hallBookingFixture) {
				f.hallRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableHall("hall-1"), nil)

				f.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, nil)

				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, booking model.HallBooking) error {
						assert.Nil(t, booking.EndDate)
						assert.Equal(t, constant.BookingStatusPending, booking.Status)

						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "multi day event conflicts",
			req: dto.CreateHallBookingRequest{
				HallID:    "hall-1",
				EventDate: futureDay(7),
				EndDate:   futureDay(9),
				Purpose:   "Conference",
			},
			setupMock: func(f *hallBookingFixture) {
				f.hallRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableHall("hall-1"), nil)

				f.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "exclusion constraint backstop",
			req: dto.CreateHallBookingRequest{
				HallID:    "hall-1",
				EventDate: futureDay(7),
				EndDate:   futureDay(9),
				Purpose:   "Conference",
			},
			setupMock: func(f *hallBookingFixture) {
				f.hallRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableHall("hall-1"), nil)

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
		{
			name: "end_date before event_date",
			req: dto.CreateHallBookingRequest{
				HallID:    "hall-1",
				EventDate: futureDay(9),
				EndDate:   futureDay(7),
				Purpose:   "Conference",
			},
			setupMock: func(f *hallBookingFixture) {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "event_date in the past",
			req: dto.CreateHallBookingRequest{
				HallID:    "hall-1",
				EventDate: futureDay(-2),
				Purpose:   "Conference",
			},
			setupMock: func(f *hallBookingFixture) {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "hall under maintenance",
			req: dto.CreateHallBookingRequest{
				HallID:    "hall-1",
				EventDate: futureDay(7),
				Purpose:   "Conference",
			},
			setupMock: func(f *hallBookingFixture) {
				hall := availableHall("hall-1")
				hall.Status = constant.HallStatusMaintenance

				f.hallRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(hall, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newHallBookingFixture(ctrl)
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
			}
		})
	}
}

func TestHallBookingService_Approve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newHallBookingFixture(ctrl)
	booking := confirmedHallBooking("hb-1", "hall-1", "guest-1")
	booking.Status = constant.BookingStatusPending

	f.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(booking, nil)

	f.transactor.EXPECT().
		WithinTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
			return fn(nil)
		})

	f.repo.EXPECT().
		UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, constant.BookingStatusConfirmed, fields[model.FieldStatus])

			return nil
		})

	f.hallRepo.EXPECT().
		UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, constant.HallStatusBooked, fields[hallModel.FieldStatus])

			return nil
		})

	f.tasks.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req taskDto.CreateTaskRequest) (taskDto.TaskResponse, error) {
			assert.Equal(t, constant.TaskTypeInspection, req.TaskType)
			assert.Equal(t, constant.ResourceTypeHall, req.ResourceType)

			return taskDto.TaskResponse{ID: "task-1"}, nil
		})

	f.userRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(userModel.User{ID: "guest-1", Email: "guest@example.com"}, nil)

	f.mailer.EXPECT().
		Send(gomock.Any(), "guest@example.com", gomock.Any(), gomock.Any()).
		Return(nil)

	res, err := f.svc.Approve(adminCtx("admin-1"), "hb-1")
	assert.NoError(t, err)
	assert.Equal(t, constant.BookingStatusConfirmed, res.Status)
	assert.Empty(t, res.Warnings)
}

func TestHallBookingService_Complete(t *testing.T) {
	t.Run("confirmed booking completes and releases the hall", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newHallBookingFixture(ctrl)
		booking := confirmedHallBooking("hb-1", "hall-1", "guest-1")

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		f.transactor.EXPECT().
			WithinTransaction(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
				return fn(nil)
			})

		f.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		f.hallRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, constant.HallStatusAvailable, fields[hallModel.FieldStatus])

				return nil
			})

		f.tasks.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req taskDto.CreateTaskRequest) (taskDto.TaskResponse, error) {
				assert.Equal(t, constant.TaskTypeCleaning, req.TaskType)

				return taskDto.TaskResponse{ID: "task-1"}, nil
			})

		res, err := f.svc.Complete(adminCtx("admin-1"), "hb-1")
		assert.NoError(t, err)
		assert.Equal(t, constant.BookingStatusCompleted, res.Status)
	})

	t.Run("pending booking cannot be completed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newHallBookingFixture(ctrl)
		booking := confirmedHallBooking("hb-1", "hall-1", "guest-1")
		booking.Status = constant.BookingStatusPending

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		_, err := f.svc.Complete(adminCtx("admin-1"), "hb-1")
		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestHallBookingService_Reject(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newHallBookingFixture(ctrl)
	booking := confirmedHallBooking("hb-1", "hall-1", "guest-1")
	booking.Status = constant.BookingStatusPending

	f.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(booking, nil)

	f.repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, constant.BookingStatusCancelled, fields[model.FieldStatus])
			assert.Equal(t, "double booked", fields[model.FieldRejectedReason])

			return nil
		})

	f.userRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(userModel.User{ID: "guest-1", Email: "guest@example.com"}, nil)

	f.mailer.EXPECT().
		Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	res, err := f.svc.Reject(adminCtx("admin-1"), dto.RejectHallBookingRequest{Reason: "double booked"}, "hb-1")
	assert.NoError(t, err)
	assert.Equal(t, constant.BookingStatusCancelled, res.Status)
}
