package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"villa/config"
	"villa/infras/otel/mocks"
	pgMocks "villa/infras/postgres/mocks"
	menuMocks "villa/internal/domains/menu/mocks"
	menuModel "villa/internal/domains/menu/model"
	orderMocks "villa/internal/domains/order/mocks"
	"villa/internal/domains/order/model"
	"villa/internal/domains/order/model/dto"
	"villa/internal/domains/order/service"
	cacheMocks "villa/shared/cache/mocks"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	"villa/shared/failure"
)

type orderFixture struct {
	repo       *orderMocks.MockOrder
	itemRepo   *orderMocks.MockOrderItem
	menuRepo   *menuMocks.MockMenu
	cache      *cacheMocks.MockRedisCache
	transactor *pgMocks.MockTransactor
	svc        service.Order
}

func newOrderFixture(ctrl *gomock.Controller) *orderFixture {
	f := &orderFixture{
		repo:       orderMocks.NewMockOrder(ctrl),
		itemRepo:   orderMocks.NewMockOrderItem(ctrl),
		menuRepo:   menuMocks.NewMockMenu(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
		transactor: pgMocks.NewMockTransactor(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, f.itemRepo, f.menuRepo, cfg, f.cache, mocks.NewOtel(), f.transactor)

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

func TestOrderService_Create(t *testing.T) {
	t.Run("snapshots menu items and sums the total", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newOrderFixture(ctrl)

		f.menuRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(menuModel.MenuItem{ID: "item-1", Name: "Nasi Goreng", Price: 45000, Available: true}, nil)

		f.menuRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(menuModel.MenuItem{ID: "item-2", Name: "Es Teh", Price: 8000, Available: true}, nil)

		f.transactor.EXPECT().
			WithinTransaction(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
				return fn(nil)
			})

		f.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, order model.Order) error {
				assert.Equal(t, constant.OrderStatusPending, order.Status)
				assert.Equal(t, float64(2*45000+3*8000), order.Total)

				return nil
			})

		f.itemRepo.EXPECT().
			InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, items []model.OrderItem) error {
				assert.Len(t, items, 2)
				assert.Equal(t, "Nasi Goreng", items[0].Name)
				assert.Equal(t, float64(45000), items[0].UnitPrice)

				return nil
			})

		res, err := f.svc.Create(guestCtx("guest-1"), dto.CreateOrderRequest{
			Items: []dto.OrderItemRequest{
				{MenuItemID: "item-1", Quantity: 2},
				{MenuItemID: "item-2", Quantity: 3},
			},
		})
		assert.NoError(t, err)
		assert.Equal(t, float64(114000), res.Total)
		assert.Len(t, res.Items, 2)
	})

	t.Run("unavailable menu item conflicts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newOrderFixture(ctrl)

		f.menuRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(menuModel.MenuItem{ID: "item-1", Name: "Nasi Goreng", Available: false}, nil)

		_, err := f.svc.Create(guestCtx("guest-1"), dto.CreateOrderRequest{
			Items: []dto.OrderItemRequest{{MenuItemID: "item-1", Quantity: 1}},
		})
		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("unknown menu item is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newOrderFixture(ctrl)

		f.menuRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(menuModel.MenuItem{}, nil)

		_, err := f.svc.Create(guestCtx("guest-1"), dto.CreateOrderRequest{
			Items: []dto.OrderItemRequest{{MenuItemID: "missing", Quantity: 1}},
		})
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestOrderService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		next     string
		wantErr  bool
		wantCode int
	}{
		{name: "pending to preparing", current: constant.OrderStatusPending, next: constant.OrderStatusPreparing},
		{name: "preparing to delivered", current: constant.OrderStatusPreparing, next: constant.OrderStatusDelivered},
		{name: "pending to delivered skips preparing", current: constant.OrderStatusPending, next: constant.OrderStatusDelivered, wantErr: true, wantCode: http.StatusConflict},
		{name: "delivered is terminal", current: constant.OrderStatusDelivered, next: constant.OrderStatusCancelled, wantErr: true, wantCode: http.StatusConflict},
		{name: "cancelled is terminal", current: constant.OrderStatusCancelled, next: constant.OrderStatusPreparing, wantErr: true, wantCode: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newOrderFixture(ctrl)

			f.repo.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(model.Order{ID: "order-1", GuestID: "guest-1", Status: tt.current}, nil)

			if !tt.wantErr {
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			}

			err := f.svc.UpdateStatus(adminCtx("admin-1"), dto.UpdateOrderStatusRequest{Status: tt.next}, "order-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOrderService_Cancel(t *testing.T) {
	t.Run("guest cancels own pending order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newOrderFixture(ctrl)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Order{ID: "order-1", GuestID: "guest-1", Status: constant.OrderStatusPending}, nil)

		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, constant.OrderStatusCancelled, fields[model.FieldStatus])

				return nil
			})

		err := f.svc.Cancel(guestCtx("guest-1"), "order-1")
		assert.NoError(t, err)
	})

	t.Run("guest cannot cancel once preparing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newOrderFixture(ctrl)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Order{ID: "order-1", GuestID: "guest-1", Status: constant.OrderStatusPreparing}, nil)

		err := f.svc.Cancel(guestCtx("guest-1"), "order-1")
		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("guest cannot cancel another guest's order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newOrderFixture(ctrl)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Order{ID: "order-1", GuestID: "guest-1", Status: constant.OrderStatusPending}, nil)

		err := f.svc.Cancel(guestCtx("guest-2"), "order-1")
		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("admin cancels a preparing order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newOrderFixture(ctrl)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Order{ID: "order-1", GuestID: "guest-1", Status: constant.OrderStatusPreparing}, nil)

		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		err := f.svc.Cancel(adminCtx("admin-1"), "order-1")
		assert.NoError(t, err)
	})
}
