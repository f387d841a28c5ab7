//go:build wireinject
// +build wireinject

package di

import (
	"villa/config"
	"villa/infras/jwt"
	"villa/infras/kafka"
	"villa/infras/mailer"
	"villa/infras/otel"
	"villa/infras/postgres"
	"villa/infras/redis"
	"villa/infras/s3"
	"villa/permissions"
	"villa/shared/cache"
	"villa/shared/lock"
	"villa/transport/http"
	"villa/transport/http/middleware"
	"villa/transport/http/router"

	"github.com/google/wire"

	authService "villa/internal/domains/auth/service"
	bookingRepository "villa/internal/domains/booking/repository"
	bookingService "villa/internal/domains/booking/service"
	hallRepository "villa/internal/domains/hall/repository"
	hallService "villa/internal/domains/hall/service"
	hallBookingRepository "villa/internal/domains/hallbooking/repository"
	hallBookingService "villa/internal/domains/hallbooking/service"
	menuRepository "villa/internal/domains/menu/repository"
	menuService "villa/internal/domains/menu/service"
	orderRepository "villa/internal/domains/order/repository"
	orderService "villa/internal/domains/order/service"
	reviewRepository "villa/internal/domains/review/repository"
	reviewService "villa/internal/domains/review/service"
	roomRepository "villa/internal/domains/room/repository"
	roomService "villa/internal/domains/room/service"
	taskRepository "villa/internal/domains/task/repository"
	taskService "villa/internal/domains/task/service"
	userRepository "villa/internal/domains/user/repository"
	userService "villa/internal/domains/user/service"

	authHandler "villa/internal/handlers/auth"
	bookingHandler "villa/internal/handlers/booking"
	hallHandler "villa/internal/handlers/hall"
	hallBookingHandler "villa/internal/handlers/hallbooking"
	menuHandler "villa/internal/handlers/menu"
	orderHandler "villa/internal/handlers/order"
	reviewHandler "villa/internal/handlers/review"
	roomHandler "villa/internal/handlers/room"
	taskHandler "villa/internal/handlers/task"
	userHandler "villa/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	kafka.NewEmitter,
	mailer.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
	permissions.Get,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	lock.NewKeyed,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var hallDomain = wire.NewSet(
	hallRepository.New,
	hallService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var hallBookingDomain = wire.NewSet(
	hallBookingRepository.New,
	hallBookingService.New,
)

var taskDomain = wire.NewSet(
	taskRepository.New,
	taskService.New,
)

var menuDomain = wire.NewSet(
	menuRepository.New,
	menuService.New,
)

var orderDomain = wire.NewSet(
	orderRepository.New,
	orderRepository.NewItem,
	orderService.New,
)

var reviewDomain = wire.NewSet(
	reviewRepository.New,
	reviewService.New,
)

var domains = wire.NewSet(
	userDomain,
	authDomain,
	roomDomain,
	hallDomain,
	bookingDomain,
	hallBookingDomain,
	taskDomain,
	menuDomain,
	orderDomain,
	reviewDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	roomHandler.New,
	hallHandler.New,
	bookingHandler.New,
	hallBookingHandler.New,
	taskHandler.New,
	menuHandler.New,
	orderHandler.New,
	reviewHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeTaskService() taskService.Task {
	wire.Build(
		configurations,
		infrastructures,
		sharedHelpers,
		userDomain,
		roomDomain,
		hallDomain,
		taskDomain,
	)

	return nil
}
