package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/lucasaveiro/service-scheduler/config"
	"github.com/lucasaveiro/service-scheduler/infras/metrics"
	"github.com/lucasaveiro/service-scheduler/infras/otel"
	"github.com/lucasaveiro/service-scheduler/internal/directory"
	"github.com/lucasaveiro/service-scheduler/internal/domains/availability/filter"
	"github.com/lucasaveiro/service-scheduler/internal/domains/availability/model"
	"github.com/lucasaveiro/service-scheduler/internal/domains/availability/model/dto"
	"github.com/lucasaveiro/service-scheduler/internal/domains/availability/slot"
	bookingModel "github.com/lucasaveiro/service-scheduler/internal/domains/booking/model"
	businessModel "github.com/lucasaveiro/service-scheduler/internal/domains/business/model"
	catalogModel "github.com/lucasaveiro/service-scheduler/internal/domains/catalog/model"
	"github.com/lucasaveiro/service-scheduler/shared/constant"
	"github.com/lucasaveiro/service-scheduler/shared/failure"
	"github.com/lucasaveiro/service-scheduler/shared/timezone"

	"github.com/rs/zerolog/log"
)

const defaultWindowDays = 90

// Snapshot is everything needed to answer availability questions for one business,
// read once and then queried without further collaborator calls.
type Snapshot struct {
	Business businessModel.Business
	Services []catalogModel.Service
	Bookings []bookingModel.Booking
	MinDate  time.Time
	MaxDate  time.Time
	Dates    filter.DateSet
}

// Service returns the active service with id.
func (s Snapshot) Service(id string) (catalogModel.Service, bool) {
	return directory.FindService(s.Services, id)
}

// Slots computes the free slots of date for a service of the given duration.
func (s Snapshot) Slots(date string, duration int) ([]model.Slot, error) {
	seq, err := filter.SlotsForDate(date, s.Business.Hours(), duration, s.Bookings)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	slots := slot.Collect(seq)
	metrics.IncSlotComputation(len(slots) == 0)

	return slots, nil
}

// IsDateAvailable reports whether date is one of the bookable days of the window.
func (s Snapshot) IsDateAvailable(date string) bool {
	return filter.IsDateAvailable(date, s.Dates)
}

type Availability interface {
	Snapshot(ctx context.Context, businessID string) (Snapshot, error)
	Slots(ctx context.Context, req dto.GetSlotsRequest) (dto.SlotsResponse, error)
}

type serviceImpl struct {
	directory directory.Directory
	cfg       *config.Config
	otel      otel.Otel
}

func New(directory directory.Directory, cfg *config.Config, otel otel.Otel) Availability {
	return &serviceImpl{
		directory: directory,
		cfg:       cfg,
		otel:      otel,
	}
}

func (s *serviceImpl) windowDays() int {
	if s.cfg.Booking.WindowDays > 0 {
		return s.cfg.Booking.WindowDays
	}

	return defaultWindowDays
}

func (s *serviceImpl) Snapshot(ctx context.Context, businessID string) (res Snapshot, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.Snapshot")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res.Business, err = s.directory.GetBusiness(ctx, businessID)
	if err != nil {
		log.Error().Err(err).Str("business_id", businessID).Msg("failed to load business for availability")

		return res, err //nolint:wrapcheck
	}

	services, err := s.directory.GetServices(ctx, businessID)
	if err != nil {
		log.Error().Err(err).Str("business_id", businessID).Msg("failed to load services for availability")

		return res, err //nolint:wrapcheck
	}

	res.Services = directory.ActiveServices(services)

	now := timezone.Now()
	res.MinDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	res.MaxDate = res.MinDate.AddDate(0, 0, s.windowDays())

	res.Bookings, err = s.directory.GetBookings(ctx, businessID, directory.Range{From: res.MinDate, To: res.MaxDate})
	if err != nil {
		log.Error().Err(err).Str("business_id", businessID).Msg("failed to load bookings for availability")

		return res, err //nolint:wrapcheck
	}

	res.Dates = filter.CandidateDates(res.MinDate, res.MaxDate, res.Business.WorkingWeekdays())

	return res, nil
}

func (s *serviceImpl) Slots(ctx context.Context, req dto.GetSlotsRequest) (res dto.SlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.Slots")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	snap, err := s.Snapshot(ctx, req.BusinessID)
	if err != nil {
		return res, err
	}

	svc, ok := snap.Service(req.ServiceID)
	if !ok {
		return res, failure.NotFound("service not found") // nolint:wrapcheck
	}

	if !snap.IsDateAvailable(req.Date) {
		res.FromSlots(req.Date, svc.ID, svc.Duration, false, nil)

		return res, nil
	}

	slots, err := snap.Slots(req.Date, svc.Duration)
	if err != nil {
		log.Error().Err(err).Str("business_id", req.BusinessID).Msg("failed to compute slots")

		return res, fmt.Errorf("failed to compute slots: %w", err)
	}

	res.FromSlots(req.Date, svc.ID, svc.Duration, true, slots)

	return res, nil
}
