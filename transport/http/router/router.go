package router

import (
	"villa/internal/handlers/auth"
	"villa/internal/handlers/booking"
	"villa/internal/handlers/hall"
	"villa/internal/handlers/hallbooking"
	"villa/internal/handlers/menu"
	"villa/internal/handlers/order"
	"villa/internal/handlers/review"
	"villa/internal/handlers/room"
	"villa/internal/handlers/task"
	"villa/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth        auth.Handler
	User        user.Handler
	Room        room.Handler
	Hall        hall.Handler
	Booking     booking.Handler
	HallBooking hallbooking.Handler
	Task        task.Handler
	Menu        menu.Handler
	Order       order.Handler
	Review      review.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Hall.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.HallBooking.Router(routerGroup)
		r.DomainHandlers.Task.Router(routerGroup)
		r.DomainHandlers.Menu.Router(routerGroup)
		r.DomainHandlers.Order.Router(routerGroup)
		r.DomainHandlers.Review.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
