//go:build wireinject
// +build wireinject

package di

import (
	"github.com/lucasaveiro/service-scheduler/config"
	"github.com/lucasaveiro/service-scheduler/infras/jwt"
	"github.com/lucasaveiro/service-scheduler/infras/kafka"
	"github.com/lucasaveiro/service-scheduler/infras/otel"
	"github.com/lucasaveiro/service-scheduler/infras/payment"
	"github.com/lucasaveiro/service-scheduler/infras/postgres"
	"github.com/lucasaveiro/service-scheduler/infras/redis"
	"github.com/lucasaveiro/service-scheduler/infras/s3"
	"github.com/lucasaveiro/service-scheduler/infras/sms"
	authService "github.com/lucasaveiro/service-scheduler/internal/domains/auth/service"
	availabilityService "github.com/lucasaveiro/service-scheduler/internal/domains/availability/service"
	bookingRepository "github.com/lucasaveiro/service-scheduler/internal/domains/booking/repository"
	bookingService "github.com/lucasaveiro/service-scheduler/internal/domains/booking/service"
	businessRepository "github.com/lucasaveiro/service-scheduler/internal/domains/business/repository"
	businessService "github.com/lucasaveiro/service-scheduler/internal/domains/business/service"
	calendarService "github.com/lucasaveiro/service-scheduler/internal/domains/calendar/service"
	catalogRepository "github.com/lucasaveiro/service-scheduler/internal/domains/catalog/repository"
	catalogService "github.com/lucasaveiro/service-scheduler/internal/domains/catalog/service"
	clientRepository "github.com/lucasaveiro/service-scheduler/internal/domains/client/repository"
	clientService "github.com/lucasaveiro/service-scheduler/internal/domains/client/service"
	dashboardRepository "github.com/lucasaveiro/service-scheduler/internal/domains/dashboard/repository"
	dashboardService "github.com/lucasaveiro/service-scheduler/internal/domains/dashboard/service"
	reminderService "github.com/lucasaveiro/service-scheduler/internal/domains/reminder/service"
	sessionService "github.com/lucasaveiro/service-scheduler/internal/domains/session/service"
	userRepository "github.com/lucasaveiro/service-scheduler/internal/domains/user/repository"
	"github.com/lucasaveiro/service-scheduler/internal/events"
	authHandler "github.com/lucasaveiro/service-scheduler/internal/handlers/auth"
	bookingHandler "github.com/lucasaveiro/service-scheduler/internal/handlers/booking"
	businessHandler "github.com/lucasaveiro/service-scheduler/internal/handlers/business"
	catalogHandler "github.com/lucasaveiro/service-scheduler/internal/handlers/catalog"
	clientHandler "github.com/lucasaveiro/service-scheduler/internal/handlers/client"
	dashboardHandler "github.com/lucasaveiro/service-scheduler/internal/handlers/dashboard"
	publicHandler "github.com/lucasaveiro/service-scheduler/internal/handlers/public"
	"github.com/lucasaveiro/service-scheduler/internal/identity"
	"github.com/lucasaveiro/service-scheduler/internal/notification"
	"github.com/lucasaveiro/service-scheduler/permissions"
	"github.com/lucasaveiro/service-scheduler/shared/cache"
	"github.com/lucasaveiro/service-scheduler/transport/http"
	"github.com/lucasaveiro/service-scheduler/transport/http/middleware"
	"github.com/lucasaveiro/service-scheduler/transport/http/router"
	"github.com/lucasaveiro/service-scheduler/transport/worker"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
	payment.New,
	sms.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var repositories = wire.NewSet(
	userRepository.New,
	businessRepository.New,
	catalogRepository.New,
	clientRepository.New,
	bookingRepository.New,
	dashboardRepository.New,
)

var collaborators = wire.NewSet(
	ProvideDirectory,
	identity.New,
	events.New,
)

var domains = wire.NewSet(
	authService.New,
	businessService.New,
	catalogService.New,
	clientService.New,
	availabilityService.New,
	calendarService.New,
	sessionService.New,
	bookingService.New,
	dashboardService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	publicHandler.New,
	businessHandler.New,
	catalogHandler.New,
	clientHandler.New,
	bookingHandler.New,
	dashboardHandler.New,
	router.New,
)

var background = wire.NewSet(
	reminderService.New,
	reminderService.NewScheduler,
	notification.NewConsumer,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		repositories,
		collaborators,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeWorker() *worker.Worker {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		kafka.New,
		sms.New,
		bookingRepository.New,
		notification.New,
		background,
		worker.New,
	)

	return &worker.Worker{}
}
