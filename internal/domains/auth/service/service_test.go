package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"villa/config"
	"villa/infras/jwt"
	jwtMocks "villa/infras/jwt/mocks"
	"villa/infras/otel/mocks"
	"villa/internal/domains/auth/model/dto"
	"villa/internal/domains/auth/service"
	userMocks "villa/internal/domains/user/mocks"
	userModel "villa/internal/domains/user/model"
	"villa/shared/failure"
	"villa/shared/password"
)

type authFixture struct {
	userRepo *userMocks.MockUser
	jwt      *jwtMocks.MockJWT
	svc      service.Auth
}

func newAuthFixture(ctrl *gomock.Controller) *authFixture {
	f := &authFixture{
		userRepo: userMocks.NewMockUser(ctrl),
		jwt:      jwtMocks.NewMockJWT(ctrl),
	}

	f.svc = service.New(f.userRepo, &config.Config{}, mocks.NewOtel(), f.jwt)

	return f
}

func activeUser(t *testing.T, plaintext string) userModel.User {
	t.Helper()

	hashed, err := password.Hash(plaintext)
	assert.NoError(t, err)

	return userModel.User{
		ID:       "user-1",
		Email:    "guest@example.com",
		Password: hashed,
		Role:     "guest",
		Active:   true,
	}
}

func TestAuthService_Register(t *testing.T) {
	req := dto.RegisterRequest{
		Email:    "new@example.com",
		Password: "secret-password",
	}

	t.Run("new email registers as guest", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newAuthFixture(ctrl)

		f.userRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		f.userRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user userModel.User) error {
				assert.Equal(t, req.Email, user.Email)
				assert.Equal(t, "guest", user.Role)
				assert.NotEqual(t, req.Password, user.Password)
				assert.NoError(t, password.Verify(req.Password, user.Password))

				return nil
			})

		err := f.svc.Register(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newAuthFixture(ctrl)

		f.userRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		err := f.svc.Register(context.Background(), req)
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestAuthService_Login(t *testing.T) {
	req := dto.LoginRequest{
		Email:    "guest@example.com",
		Password: "secret-password",
	}

	t.Run("valid credentials return a token pair", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newAuthFixture(ctrl)
		user := activeUser(t, req.Password)

		f.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(user, nil)

		f.jwt.EXPECT().
			GenerateTokenPair(gomock.Any(), user.ID, user.Email, user.Role).
			Return(&jwt.TokenPair{
				AccessToken:  "access",
				RefreshToken: "refresh",
				ExpiresIn:    900,
			}, nil)

		f.userRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := f.svc.Login(context.Background(), req)
		assert.NoError(t, err)
		assert.Equal(t, "access", res.AccessToken)
		assert.Equal(t, "refresh", res.RefreshToken)
		assert.EqualValues(t, 900, res.ExpiresIn)
	})

	t.Run("unknown email is rejected without leaking existence", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newAuthFixture(ctrl)

		f.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{}, nil)

		_, err := f.svc.Login(context.Background(), req)
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Contains(t, err.Error(), "invalid email or password")
	})

	t.Run("wrong password is rejected with the same message", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newAuthFixture(ctrl)
		user := activeUser(t, "a-different-password")

		f.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(user, nil)

		_, err := f.svc.Login(context.Background(), req)
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Contains(t, err.Error(), "invalid email or password")
	})

	t.Run("deactivated account cannot log in", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newAuthFixture(ctrl)
		user := activeUser(t, req.Password)
		user.Active = false

		f.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(user, nil)

		_, err := f.svc.Login(context.Background(), req)
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Run("valid refresh token rotates the pair", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newAuthFixture(ctrl)

		f.jwt.EXPECT().
			RefreshTokens(gomock.Any(), "old-refresh").
			Return(&jwt.TokenPair{
				AccessToken:  "new-access",
				RefreshToken: "new-refresh",
				ExpiresIn:    900,
			}, nil)

		res, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "old-refresh"})
		assert.NoError(t, err)
		assert.Equal(t, "new-access", res.AccessToken)
		assert.Equal(t, "new-refresh", res.RefreshToken)
	})

	t.Run("invalid refresh token is unauthorized", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newAuthFixture(ctrl)

		f.jwt.EXPECT().
			RefreshTokens(gomock.Any(), "bogus").
			Return(nil, jwt.ErrInvalidToken)

		_, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "bogus"})
		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	req := dto.ChangePasswordRequest{
		CurrentPassword: "secret-password",
		NewPassword:     "even-more-secret",
	}

	t.Run("correct current password updates the hash", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newAuthFixture(ctrl)
		user := activeUser(t, req.CurrentPassword)

		f.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(user, nil)

		f.userRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		err := f.svc.ChangePassword(context.Background(), req, user.ID)
		assert.NoError(t, err)
	})

	t.Run("wrong current password is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newAuthFixture(ctrl)
		user := activeUser(t, "not-the-current-password")

		f.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(user, nil)

		err := f.svc.ChangePassword(context.Background(), req, user.ID)
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newAuthFixture(ctrl)

		f.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{}, nil)

		err := f.svc.ChangePassword(context.Background(), req, "missing")
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
