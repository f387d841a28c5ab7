package service

import (
	"context"
	"fmt"
	"villa/config"
	"villa/infras/otel"
	"villa/infras/postgres"
	menuModel "villa/internal/domains/menu/model"
	menuRepo "villa/internal/domains/menu/repository"
	"villa/internal/domains/order/model"
	"villa/internal/domains/order/model/dto"
	"villa/internal/domains/order/repository"
	"villa/shared"
	"villa/shared/cache"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	"villa/shared/failure"
	gModel "villa/shared/model"
	"villa/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

const (
	cacheGetOrder    = "order:get"
	cacheGetAllOrder = "order:gets"
	cacheCountOrder  = "order:count"
)

// statusTransitions lists the reachable statuses from each current one.
// Delivered and cancelled are terminal.
var statusTransitions = map[string][]string{
	constant.OrderStatusPending:   {constant.OrderStatusPreparing, constant.OrderStatusCancelled},
	constant.OrderStatusPreparing: {constant.OrderStatusDelivered, constant.OrderStatusCancelled},
}

type Order interface {
	Create(ctx context.Context, req dto.CreateOrderRequest) (dto.OrderResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetOrdersResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.OrderResponse, error)
	MyOrders(ctx context.Context, req gDto.QueryParams, guestID string) (dto.GetOrdersResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateOrderStatusRequest, id string) error
	Cancel(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.Order
	itemRepo   repository.OrderItem
	menuRepo   menuRepo.Menu
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	transactor postgres.Transactor
}

func New(
	repo repository.Order,
	itemRepo repository.OrderItem,
	menuRepo menuRepo.Menu,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	transactor postgres.Transactor,
) Order {
	return &serviceImpl{
		repo:       repo,
		itemRepo:   itemRepo,
		menuRepo:   menuRepo,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		transactor: transactor,
	}
}

func canTransition(from, to string) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}

	return false
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateOrderRequest) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	guestID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if guestID == constant.Empty {
		return res, failure.Unauthorized("missing identity")
	}

	order := req.ToModel(guestID)

	items := make([]model.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		menuItem, err := s.menuRepo.Get(ctx, shared.FilterByID(item.MenuItemID, menuModel.FieldID, menuModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get menu item")

			return res, fmt.Errorf("failed to get menu item: %w", err)
		}

		if menuItem.ID == constant.Empty {
			return res, failure.NotFound("menu item not found")
		}

		if !menuItem.Available {
			return res, failure.Conflict(fmt.Sprintf("menu item %s is not available", menuItem.Name))
		}

		items = append(items, model.OrderItem{
			ID:         uuid.NewString(),
			OrderID:    order.ID,
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			UnitPrice:  menuItem.Price,
			Quantity:   item.Quantity,
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
				CreatedBy:  guestID,
				ModifiedBy: guestID,
			},
		})

		order.Total += menuItem.Price * float64(item.Quantity)
	}

	err = s.transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := s.repo.InsertTx(ctx, tx, order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		if err := s.itemRepo.InsertBulkTx(ctx, tx, items); err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create order")

		return res, err
	}

	res.FromModel(order)
	res.WithItems(items)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllOrder)
		shared.InvalidateCaches(c, s.cache, cacheCountOrder)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetOrdersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllOrder, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for orders")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count orders")

		return res, fmt.Errorf("failed to count orders: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get orders")

		return res, fmt.Errorf("failed to get orders: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save orders to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountOrder, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for order count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count orders")

		return res, fmt.Errorf("failed to count orders: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save order count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(nil)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	order, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get order")

		return res, fmt.Errorf("failed to get order: %w", err)
	}

	if order.ID == constant.Empty {
		return res, failure.NotFound("order not found")
	}

	if role == constant.RoleGuest && order.GuestID != user {
		return res, failure.ResourceRestrictedError
	}

	items, err := s.itemRepo.GetAll(ctx, gDto.QueryParams{}, itemsByOrder(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get order items")

		return res, fmt.Errorf("failed to get order items: %w", err)
	}

	res.FromModel(order)
	res.WithItems(items)

	return res, nil
}

func itemsByOrder(orderID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldItemOrderID,
				Operator: gDto.FilterOperatorEq,
				Value:    orderID,
				Table:    model.ItemTableName,
			},
		},
	}
}

func (s *serviceImpl) MyOrders(ctx context.Context, req gDto.QueryParams, guestID string) (res dto.GetOrdersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MyOrders")
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

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateOrderStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	order, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get order")

		return fmt.Errorf("failed to get order: %w", err)
	}

	if order.ID == constant.Empty {
		return failure.NotFound("order not found")
	}

	if !canTransition(order.Status, req.Status) {
		return failure.Conflict(fmt.Sprintf("order cannot move from %s to %s", order.Status, req.Status))
	}

	updatedFields := map[string]any{
		model.FieldStatus:        req.Status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update order status")

		return fmt.Errorf("failed to update order status: %w", err)
	}

	s.invalidateOrder(ctx, id)

	return nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	order, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get order")

		return fmt.Errorf("failed to get order: %w", err)
	}

	if order.ID == constant.Empty {
		return failure.NotFound("order not found")
	}

	if role == constant.RoleGuest {
		if order.GuestID != user {
			return failure.ResourceRestrictedError
		}

		// Guests can only back out before the kitchen starts.
		if order.Status != constant.OrderStatusPending {
			return failure.Conflict("order is already being prepared")
		}
	}

	if !canTransition(order.Status, constant.OrderStatusCancelled) {
		return failure.Conflict(fmt.Sprintf("order cannot move from %s to %s", order.Status, constant.OrderStatusCancelled))
	}

	updatedFields := map[string]any{
		model.FieldStatus:        constant.OrderStatusCancelled,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to cancel order")

		return fmt.Errorf("failed to cancel order: %w", err)
	}

	s.invalidateOrder(ctx, id)

	return nil
}

func (s *serviceImpl) invalidateOrder(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetOrder, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete order from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllOrder)
		shared.InvalidateCaches(c, s.cache, cacheCountOrder)
	}()
}
