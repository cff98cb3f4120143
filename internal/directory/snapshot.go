package directory

import (
	"context"
	"errors"
	"strconv"

	"github.com/lucasaveiro/service-scheduler/config"
	"github.com/lucasaveiro/service-scheduler/infras/otel"
	bookingModel "github.com/lucasaveiro/service-scheduler/internal/domains/booking/model"
	businessModel "github.com/lucasaveiro/service-scheduler/internal/domains/business/model"
	catalogModel "github.com/lucasaveiro/service-scheduler/internal/domains/catalog/model"
	clientModel "github.com/lucasaveiro/service-scheduler/internal/domains/client/model"
	"github.com/lucasaveiro/service-scheduler/shared"
	"github.com/lucasaveiro/service-scheduler/shared/cache"
	"github.com/lucasaveiro/service-scheduler/shared/constant"

	"github.com/rs/zerolog/log"
)

const (
	cacheBookings   = "directory:bookings"
	cacheGeneration = "directory:generation"
	cacheServices   = "directory:services"
	cacheBusiness   = "directory:business"
)

// snapshotImpl keeps read-mostly snapshots of a business's bookings and catalog in redis.
// Bookings snapshots are keyed by a per-business generation. Every booking mutation bumps the
// generation and drops the stored snapshots before returning, so a read that started before the
// mutation can only save under a generation nobody reads anymore.
type snapshotImpl struct {
	next  Directory
	cache cache.RedisCache
	cfg   *config.Config
	otel  otel.Otel
}

func NewSnapshot(next Directory, cache cache.RedisCache, cfg *config.Config, otel otel.Otel) Directory {
	return &snapshotImpl{
		next:  next,
		cache: cache,
		cfg:   cfg,
		otel:  otel,
	}
}

func (d *snapshotImpl) ttl() int {
	if d.cfg.Booking.SnapshotCacheTTL > 0 {
		return d.cfg.Booking.SnapshotCacheTTL
	}

	return d.cfg.Cache.TTL
}

func (d *snapshotImpl) GetBusiness(ctx context.Context, businessID string) (res businessModel.Business, err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".snapshot.GetBusiness")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key := shared.BuildCacheKey(cacheBusiness, businessID)

	if err = d.cache.Get(ctx, key, &res); err == nil {
		return res, nil
	}

	res, err = d.next.GetBusiness(ctx, businessID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	d.save(ctx, key, res)

	return res, nil
}

func (d *snapshotImpl) GetServices(ctx context.Context, businessID string) (res []catalogModel.Service, err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".snapshot.GetServices")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key := shared.BuildCacheKey(cacheServices, businessID)

	if err = d.cache.Get(ctx, key, &res); err == nil {
		return res, nil
	}

	res, err = d.next.GetServices(ctx, businessID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	d.save(ctx, key, res)

	return res, nil
}

func (d *snapshotImpl) GetBookings(ctx context.Context, businessID string, window Range) (res []bookingModel.Booking, err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".snapshot.GetBookings")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	generation, ok := d.generation(ctx, businessID)
	if !ok {
		return d.next.GetBookings(ctx, businessID, window) //nolint:wrapcheck
	}

	key := shared.BuildCacheKey(cacheBookings, append([]string{businessID, generation}, window.key()...)...)

	if err = d.cache.Get(ctx, key, &res); err == nil {
		log.Debug().Str("cacheKey", key).Msg("bookings snapshot hit")

		return res, nil
	}

	res, err = d.next.GetBookings(ctx, businessID, window)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	d.save(ctx, key, res)

	return res, nil
}

// generation reads the current bookings generation of businessID, "0" before the first mutation.
// ok is false when redis cannot tell, and the snapshot must be bypassed.
func (d *snapshotImpl) generation(ctx context.Context, businessID string) (string, bool) {
	var generation int64

	err := d.cache.Get(ctx, shared.BuildCacheKey(cacheGeneration, businessID), &generation)
	if err != nil && !errors.Is(err, cache.Nil) {
		log.Warn().Err(err).Str("business_id", businessID).Msg("bookings snapshot generation unavailable")

		return constant.Empty, false
	}

	return strconv.FormatInt(generation, 10), true
}

func (d *snapshotImpl) GetBooking(ctx context.Context, bookingID string) (bookingModel.Booking, error) {
	return d.next.GetBooking(ctx, bookingID) //nolint:wrapcheck
}

func (d *snapshotImpl) CreateBooking(ctx context.Context, booking bookingModel.Booking) (res bookingModel.Booking, err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".snapshot.CreateBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = d.next.CreateBooking(ctx, booking)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	d.invalidate(ctx, booking.BusinessID)

	return res, nil
}

func (d *snapshotImpl) UpdateBookingStatus(ctx context.Context, bookingID string, from, to bookingModel.Status) (err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".snapshot.UpdateBookingStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return d.mutate(ctx, bookingID, func() error {
		return d.next.UpdateBookingStatus(ctx, bookingID, from, to)
	})
}

func (d *snapshotImpl) UpdateBookingPayment(ctx context.Context, bookingID, paymentStatus, intentID string) (err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".snapshot.UpdateBookingPayment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return d.mutate(ctx, bookingID, func() error {
		return d.next.UpdateBookingPayment(ctx, bookingID, paymentStatus, intentID)
	})
}

func (d *snapshotImpl) DeleteBooking(ctx context.Context, bookingID string, expected bookingModel.Status) (err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".snapshot.DeleteBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return d.mutate(ctx, bookingID, func() error {
		return d.next.DeleteBooking(ctx, bookingID, expected)
	})
}

func (d *snapshotImpl) GetClients(ctx context.Context, businessID string) ([]clientModel.Client, error) {
	return d.next.GetClients(ctx, businessID) //nolint:wrapcheck
}

// mutate runs fn and then drops the bookings snapshot of the booking's business.
func (d *snapshotImpl) mutate(ctx context.Context, bookingID string, fn func() error) error {
	current, err := d.next.GetBooking(ctx, bookingID)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if err := fn(); err != nil {
		return err
	}

	d.invalidate(ctx, current.BusinessID)

	return nil
}

func (d *snapshotImpl) save(ctx context.Context, key string, value any) {
	if err := d.cache.Save(context.WithoutCancel(ctx), key, value, d.ttl()); err != nil {
		log.Error().Err(err).Str("cacheKey", key).Msg("failed to save directory snapshot")
	}
}

func (d *snapshotImpl) invalidate(ctx context.Context, businessID string) {
	ctx = context.WithoutCancel(ctx)

	if _, err := d.cache.Increment(ctx, shared.BuildCacheKey(cacheGeneration, businessID), 0); err != nil {
		log.Error().Err(err).Str("business_id", businessID).Msg("failed to bump bookings snapshot generation")
	}

	shared.InvalidateCaches(ctx, d.cache, shared.BuildCacheKey(cacheBookings, businessID))
}

// InvalidateCatalog drops the cached business profile and services of businessID.
func InvalidateCatalog(ctx context.Context, redisCache cache.RedisCache, businessID string) {
	for _, key := range []string{
		shared.BuildCacheKey(cacheBusiness, businessID),
		shared.BuildCacheKey(cacheServices, businessID),
	} {
		if err := redisCache.Delete(ctx, key); err != nil && !errors.Is(err, cache.Nil) {
			log.Error().Err(err).Str("cacheKey", key).Msg("failed to invalidate directory snapshot")
		}
	}
}
