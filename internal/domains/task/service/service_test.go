package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"villa/config"
	kafkaMocks "villa/infras/kafka/mocks"
	mailerMocks "villa/infras/mailer/mocks"
	"villa/infras/otel/mocks"
	hallMocks "villa/internal/domains/hall/mocks"
	roomMocks "villa/internal/domains/room/mocks"
	roomModel "villa/internal/domains/room/model"
	taskMocks "villa/internal/domains/task/mocks"
	"villa/internal/domains/task/model"
	"villa/internal/domains/task/model/dto"
	"villa/internal/domains/task/service"
	userMocks "villa/internal/domains/user/mocks"
	userModel "villa/internal/domains/user/model"
	cacheMocks "villa/shared/cache/mocks"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	"villa/shared/failure"
	"villa/shared/timezone"
)

type taskFixture struct {
	repo     *taskMocks.MockTask
	userRepo *userMocks.MockUser
	roomRepo *roomMocks.MockRoom
	hallRepo *hallMocks.MockHall
	cache    *cacheMocks.MockRedisCache
	mailer   *mailerMocks.MockMailer
	emitter  *kafkaMocks.MockEmitter
	svc      service.Task
}

func newTaskFixture(ctrl *gomock.Controller) *taskFixture {
	f := &taskFixture{
		repo:     taskMocks.NewMockTask(ctrl),
		userRepo: userMocks.NewMockUser(ctrl),
		roomRepo: roomMocks.NewMockRoom(ctrl),
		hallRepo: hallMocks.NewMockHall(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
		mailer:   mailerMocks.NewMockMailer(ctrl),
		emitter:  kafkaMocks.NewMockEmitter(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.App.Housekeeping.StalenessDays = 3

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.emitter.EXPECT().EmitTaskEvent(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	f.svc = service.New(
		f.repo, f.userRepo, f.roomRepo, f.hallRepo, cfg, f.cache,
		mocks.NewOtel(), f.mailer, f.emitter,
	)

	return f
}

func staffCtx(userID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleStaff)
}

func adminCtx(userID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func staffList(ids ...string) []userModel.User {
	staff := make([]userModel.User, len(ids))
	for i, id := range ids {
		staff[i] = userModel.User{ID: id, Role: constant.RoleStaff, Active: true}
	}

	return staff
}

// staffIDFromFilter pulls the staff id out of the pending tasks filter so the
// mock can answer with per-member counts.
func staffIDFromFilter(group gDto.FilterGroup) string {
	for _, raw := range group.Filters {
		f, ok := raw.(gDto.Filter)
		if !ok {
			continue
		}

		if f.Field == model.FieldStaffID {
			id, _ := f.Value.(string)

			return id
		}
	}

	return ""
}

func expectPendingCounts(f *taskFixture, counts map[string]int) {
	f.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			return counts[staffIDFromFilter(filter)], nil
		}).
		AnyTimes()
}

func TestTaskService_AssignLeastLoadedStaff(t *testing.T) {
	tests := []struct {
		name   string
		staff  []userModel.User
		counts map[string]int
		want   *string
	}{
		{
			name:   "picks the least loaded member",
			staff:  staffList("a", "b", "c"),
			counts: map[string]int{"a": 3, "b": 1, "c": 2},
			want:   ptr("b"),
		},
		{
			name:   "tie goes to the first encountered",
			staff:  staffList("a", "b"),
			counts: map[string]int{"a": 2, "b": 2},
			want:   ptr("a"),
		},
		{
			name:   "zero loads still pick the first",
			staff:  staffList("a", "b", "c"),
			counts: map[string]int{},
			want:   ptr("a"),
		},
		{
			name:  "empty staff yields nil without error",
			staff: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newTaskFixture(ctrl)
			expectPendingCounts(f, tt.counts)

			got, err := f.svc.AssignLeastLoadedStaff(context.Background(), tt.staff)
			assert.NoError(t, err)

			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				assert.NotNil(t, got)
				assert.Equal(t, *tt.want, *got)
			}
		})
	}

	t.Run("count failure aborts the assignment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newTaskFixture(ctrl)

		f.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(0, errors.New("database error"))

		got, err := f.svc.AssignLeastLoadedStaff(context.Background(), staffList("a", "b"))
		assert.Error(t, err)
		assert.Nil(t, got)
	})
}

func ptr(s string) *string {
	return &s
}

func TestTaskService_Create(t *testing.T) {
	t.Run("auto assigns the least loaded staff", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newTaskFixture(ctrl)

		f.roomRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		f.userRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(staffList("a", "b"), nil)

		expectPendingCounts(f, map[string]int{"a": 4, "b": 1})

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, task model.Task) error {
				assert.NotNil(t, task.StaffID)
				assert.Equal(t, "b", *task.StaffID)
				assert.Equal(t, constant.TaskStatusPending, task.Status)

				return nil
			})

		f.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: "b", Email: "staff@example.com"}, nil)

		f.mailer.EXPECT().
			Send(gomock.Any(), "staff@example.com", gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := f.svc.Create(adminCtx("admin-1"), dto.CreateTaskRequest{
			ResourceType:  constant.ResourceTypeRoom,
			ResourceID:    "room-1",
			Description:   "Deep clean",
			TaskType:      constant.TaskTypeCleaning,
			ScheduledDate: timezone.Now().Format(constant.DayFormat),
		})
		assert.NoError(t, err)
		assert.NotNil(t, res.StaffID)
		assert.Equal(t, "b", *res.StaffID)
		assert.Empty(t, res.Warning)
	})

	t.Run("notification failure surfaces a warning", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newTaskFixture(ctrl)
		staffID := "staff-1"

		f.roomRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)

		f.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: staffID, Email: "staff@example.com"}, nil)

		f.mailer.EXPECT().
			Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("smtp down"))

		res, err := f.svc.Create(adminCtx("admin-1"), dto.CreateTaskRequest{
			ResourceType:  constant.ResourceTypeRoom,
			ResourceID:    "room-1",
			Description:   "Deep clean",
			TaskType:      constant.TaskTypeCleaning,
			ScheduledDate: timezone.Now().Format(constant.DayFormat),
			StaffID:       &staffID,
		})
		assert.NoError(t, err)
		assert.NotEmpty(t, res.Warning)
	})

	t.Run("unknown resource is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newTaskFixture(ctrl)

		f.roomRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		_, err := f.svc.Create(adminCtx("admin-1"), dto.CreateTaskRequest{
			ResourceType:  constant.ResourceTypeRoom,
			ResourceID:    "missing",
			Description:   "Deep clean",
			TaskType:      constant.TaskTypeCleaning,
			ScheduledDate: timezone.Now().Format(constant.DayFormat),
		})
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestTaskService_Complete(t *testing.T) {
	pendingTask := func(staffID string) model.Task {
		return model.Task{
			ID:            "task-1",
			ResourceType:  constant.ResourceTypeRoom,
			ResourceID:    "room-1",
			TaskType:      constant.TaskTypeCleaning,
			ScheduledDate: timezone.Now(),
			Status:        constant.TaskStatusPending,
			StaffID:       &staffID,
		}
	}

	t.Run("cleaning completion stamps the room", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newTaskFixture(ctrl)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingTask("staff-1"), nil)

		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		f.roomRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Contains(t, fields, roomModel.FieldLastCleanedAt)

				return nil
			})

		err := f.svc.Complete(staffCtx("staff-1"), "task-1")
		assert.NoError(t, err)
	})

	t.Run("already completed task conflicts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newTaskFixture(ctrl)
		task := pendingTask("staff-1")
		task.Status = constant.TaskStatusCompleted

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(task, nil)

		err := f.svc.Complete(staffCtx("staff-1"), "task-1")
		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("staff cannot complete another member's task", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newTaskFixture(ctrl)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingTask("staff-1"), nil)

		err := f.svc.Complete(staffCtx("staff-2"), "task-1")
		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("admin can complete any task", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newTaskFixture(ctrl)
		task := pendingTask("staff-1")
		task.TaskType = constant.TaskTypeInspection

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(task, nil)

		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		err := f.svc.Complete(adminCtx("admin-1"), "task-1")
		assert.NoError(t, err)
	})
}

func TestTaskService_RunPeriodicCleaningPass(t *testing.T) {
	t.Run("skips rooms with an open periodic task", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newTaskFixture(ctrl)

		rooms := []roomModel.Room{
			{ID: "room-1", Number: "101", Active: true},
			{ID: "room-2", Number: "102", Active: true},
		}

		f.roomRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(rooms, nil)

		f.userRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(staffList("a"), nil)

		gomock.InOrder(
			f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil),
			f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil),
		)

		f.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(0, nil)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, task model.Task) error {
				assert.Equal(t, "room-2", task.ResourceID)
				assert.Equal(t, constant.TaskTypePeriodic, task.TaskType)
				assert.NotNil(t, task.StaffID)
				assert.Equal(t, "a", *task.StaffID)

				return nil
			})

		f.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: "a", Email: "a@example.com", Role: constant.RoleStaff, Active: true}, nil)

		f.mailer.EXPECT().
			Send(gomock.Any(), "a@example.com", gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := f.svc.RunPeriodicCleaningPass(adminCtx("scheduler"))
		assert.NoError(t, err)
		assert.Equal(t, 2, res.RoomsChecked)
		assert.Equal(t, 1, res.TasksCreated)
	})

	t.Run("no stale rooms means no work", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newTaskFixture(ctrl)

		f.roomRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]roomModel.Room{}, nil)

		res, err := f.svc.RunPeriodicCleaningPass(adminCtx("scheduler"))
		assert.NoError(t, err)
		assert.Equal(t, 0, res.RoomsChecked)
		assert.Equal(t, 0, res.TasksCreated)
	})
}
