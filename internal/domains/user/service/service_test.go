package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"villa/config"
	"villa/infras/otel/mocks"
	userMocks "villa/internal/domains/user/mocks"
	"villa/internal/domains/user/model"
	"villa/internal/domains/user/model/dto"
	"villa/internal/domains/user/service"
	"villa/shared/cache"
	cacheMocks "villa/shared/cache/mocks"
	gDto "villa/shared/dto"
	"villa/shared/failure"
	"villa/shared/password"
)

type userFixture struct {
	repo  *userMocks.MockUser
	cache *cacheMocks.MockRedisCache
	svc   service.User
}

func newUserFixture(ctrl *gomock.Controller) *userFixture {
	f := &userFixture{
		repo:  userMocks.NewMockUser(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel())

	return f
}

func TestUserService_Create(t *testing.T) {
	staffRole := "staff"
	req := dto.CreateUserRequest{
		Email:    "staff@example.com",
		Password: "secret-password",
		Role:     staffRole,
	}

	t.Run("admin creates a staff account", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newUserFixture(ctrl)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user model.User) error {
				assert.Equal(t, req.Email, user.Email)
				assert.Equal(t, staffRole, user.Role)
				assert.True(t, user.Active)
				assert.NoError(t, password.Verify(req.Password, user.Password))

				return nil
			})

		err := f.svc.Create(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newUserFixture(ctrl)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		err := f.svc.Create(context.Background(), req)
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestUserService_GetAll(t *testing.T) {
	t.Run("returns users with paging totals", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newUserFixture(ctrl)
		req := gDto.QueryParams{Page: 1, Limit: 10}

		f.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(2, nil)

		f.repo.EXPECT().
			GetAll(gomock.Any(), req, gomock.Any()).
			Return([]model.User{
				{ID: "user-1", Email: "a@example.com", Role: "admin"},
				{ID: "user-2", Email: "b@example.com", Role: "guest"},
			}, nil)

		res, err := f.svc.GetAll(context.Background(), req, gDto.FilterGroup{})
		assert.NoError(t, err)
		assert.Len(t, res.Users, 2)
		assert.Equal(t, 2, res.TotalData)
		assert.Equal(t, 1, res.TotalPage)
	})
}

func TestUserService_Get(t *testing.T) {
	t.Run("existing user is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newUserFixture(ctrl)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{ID: "user-1", Email: "a@example.com", Role: "guest"}, nil)

		res, err := f.svc.Get(context.Background(), "user-1")
		assert.NoError(t, err)
		assert.Equal(t, "user-1", res.ID)
		assert.Equal(t, "a@example.com", res.Email)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newUserFixture(ctrl)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{}, nil)

		_, err := f.svc.Get(context.Background(), "missing")
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestUserService_Update(t *testing.T) {
	role := "staff"

	t.Run("existing user is updated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newUserFixture(ctrl)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		err := f.svc.Update(context.Background(), dto.UpdateUserRequest{Role: &role}, "user-1")
		assert.NoError(t, err)
	})

	t.Run("empty update is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newUserFixture(ctrl)

		err := f.svc.Update(context.Background(), dto.UpdateUserRequest{}, "user-1")
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newUserFixture(ctrl)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := f.svc.Update(context.Background(), dto.UpdateUserRequest{Role: &role}, "missing")
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	fullName := "Jane Doe"

	t.Run("own profile is updated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newUserFixture(ctrl)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		err := f.svc.UpdateProfile(context.Background(), dto.UpdateProfileRequest{FullName: &fullName}, "user-1")
		assert.NoError(t, err)
	})

	t.Run("empty update is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newUserFixture(ctrl)

		err := f.svc.UpdateProfile(context.Background(), dto.UpdateProfileRequest{}, "user-1")
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestUserService_Delete(t *testing.T) {
	t.Run("existing user is deleted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newUserFixture(ctrl)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		f.repo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		err := f.svc.Delete(context.Background(), "user-1")
		assert.NoError(t, err)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newUserFixture(ctrl)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := f.svc.Delete(context.Background(), "missing")
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
