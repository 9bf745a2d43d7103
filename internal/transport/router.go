package transport

import (
	"net/http"

	"pasarloka-be/internal/logger"
	"pasarloka-be/internal/middleware"
	"pasarloka-be/internal/notification"
	"pasarloka-be/internal/offer"
	"pasarloka-be/internal/order"
	"pasarloka-be/internal/user"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	Offers        offer.Service
	Orders        order.Service
	Notifications notification.Service
	Users         user.Service
}

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.AuthMiddleware)
	r.Use(middleware.RateLimitMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.register)
		r.Post("/auth/login", h.login)

		r.Post("/offers", h.createOffer)
		r.Patch("/offers/{id}", h.transitionOffer)

		r.Post("/orders", h.createOrder)
		r.Get("/orders", h.listOrders)
		r.Get("/orders/{id}", h.getOrder)
		r.Patch("/orders/{id}", h.transitionOrder)

		r.Get("/notifications", h.listNotifications)
	})

	return r
}
