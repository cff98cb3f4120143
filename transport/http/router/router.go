package router

import (
	"github.com/lucasaveiro/service-scheduler/internal/handlers/auth"
	"github.com/lucasaveiro/service-scheduler/internal/handlers/booking"
	"github.com/lucasaveiro/service-scheduler/internal/handlers/business"
	"github.com/lucasaveiro/service-scheduler/internal/handlers/catalog"
	"github.com/lucasaveiro/service-scheduler/internal/handlers/client"
	"github.com/lucasaveiro/service-scheduler/internal/handlers/dashboard"
	"github.com/lucasaveiro/service-scheduler/internal/handlers/public"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth      auth.Handler
	Public    public.Handler
	Business  business.Handler
	Catalog   catalog.Handler
	Client    client.Handler
	Booking   booking.Handler
	Dashboard dashboard.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Public.Router(routerGroup)
		r.DomainHandlers.Business.Router(routerGroup)
		r.DomainHandlers.Catalog.Router(routerGroup)
		r.DomainHandlers.Client.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Dashboard.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
