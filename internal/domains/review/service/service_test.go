package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"villa/config"
	"villa/infras/otel/mocks"
	bookingMocks "villa/internal/domains/booking/mocks"
	reviewMocks "villa/internal/domains/review/mocks"
	"villa/internal/domains/review/model"
	"villa/internal/domains/review/model/dto"
	"villa/internal/domains/review/service"
	roomMocks "villa/internal/domains/room/mocks"
	cacheMocks "villa/shared/cache/mocks"
	"villa/shared/constant"
	"villa/shared/failure"
)

type reviewFixture struct {
	repo        *reviewMocks.MockReview
	bookingRepo *bookingMocks.MockBooking
	roomRepo    *roomMocks.MockRoom
	cache       *cacheMocks.MockRedisCache
	svc         service.Review
}

func newReviewFixture(ctrl *gomock.Controller) *reviewFixture {
	f := &reviewFixture{
		repo:        reviewMocks.NewMockReview(ctrl),
		bookingRepo: bookingMocks.NewMockBooking(ctrl),
		roomRepo:    roomMocks.NewMockRoom(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, f.bookingRepo, f.roomRepo, cfg, f.cache, mocks.NewOtel())

	return f
}

func guestCtx(userID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleGuest)
}

func TestReviewService_Create(t *testing.T) {
	req := dto.CreateReviewRequest{
		RoomID:  "room-1",
		Rating:  4,
		Comment: "Great stay",
	}

	t.Run("guest with a completed stay can review", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newReviewFixture(ctrl)

		f.roomRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		f.bookingRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, review model.Review) error {
				assert.Equal(t, "guest-1", review.GuestID)
				assert.Equal(t, 4, review.Rating)

				return nil
			})

		res, err := f.svc.Create(guestCtx("guest-1"), req)
		assert.NoError(t, err)
		assert.Equal(t, 4, res.Rating)
	})

	t.Run("no completed stay is forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newReviewFixture(ctrl)

		f.roomRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		f.bookingRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		_, err := f.svc.Create(guestCtx("guest-1"), req)
		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("second review for the same room conflicts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newReviewFixture(ctrl)

		f.roomRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		f.bookingRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		_, err := f.svc.Create(guestCtx("guest-1"), req)
		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("unknown room is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newReviewFixture(ctrl)

		f.roomRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		_, err := f.svc.Create(guestCtx("guest-1"), req)
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestReviewService_Update(t *testing.T) {
	t.Run("guest cannot edit another guest's review", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newReviewFixture(ctrl)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Review{ID: "review-1", GuestID: "guest-1"}, nil)

		rating := 1
		err := f.svc.Update(guestCtx("guest-2"), dto.UpdateReviewRequest{Rating: &rating}, "review-1")
		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("owner updates the rating", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newReviewFixture(ctrl)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Review{ID: "review-1", GuestID: "guest-1", Rating: 4}, nil)

		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		rating := 5
		err := f.svc.Update(guestCtx("guest-1"), dto.UpdateReviewRequest{Rating: &rating}, "review-1")
		assert.NoError(t, err)
	})
}
