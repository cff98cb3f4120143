package di

import (
	"github.com/lucasaveiro/service-scheduler/config"
	"github.com/lucasaveiro/service-scheduler/infras/otel"
	"github.com/lucasaveiro/service-scheduler/internal/directory"
	bookingRepository "github.com/lucasaveiro/service-scheduler/internal/domains/booking/repository"
	businessRepository "github.com/lucasaveiro/service-scheduler/internal/domains/business/repository"
	catalogRepository "github.com/lucasaveiro/service-scheduler/internal/domains/catalog/repository"
	clientRepository "github.com/lucasaveiro/service-scheduler/internal/domains/client/repository"
	"github.com/lucasaveiro/service-scheduler/shared/cache"
)

// ProvideDirectory serves availability snapshots from redis in front of the postgres directory.
func ProvideDirectory(
	business businessRepository.Business,
	catalog catalogRepository.Service,
	booking bookingRepository.Booking,
	client clientRepository.Client,
	redisCache cache.RedisCache,
	cfg *config.Config,
	otel otel.Otel,
) directory.Directory {
	return directory.NewSnapshot(directory.New(business, catalog, booking, client, cfg, otel), redisCache, cfg, otel)
}
