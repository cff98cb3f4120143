package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/lucasaveiro/service-scheduler/config"
	"github.com/lucasaveiro/service-scheduler/infras/otel"
	"github.com/lucasaveiro/service-scheduler/internal/directory"
	bookingModel "github.com/lucasaveiro/service-scheduler/internal/domains/booking/model"
	bookingDto "github.com/lucasaveiro/service-scheduler/internal/domains/booking/model/dto"
	"github.com/lucasaveiro/service-scheduler/internal/domains/dashboard/model/dto"
	"github.com/lucasaveiro/service-scheduler/internal/domains/dashboard/repository"
	"github.com/lucasaveiro/service-scheduler/internal/identity"
	"github.com/lucasaveiro/service-scheduler/shared/constant"
	"github.com/lucasaveiro/service-scheduler/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Dashboard interface {
	Get(ctx context.Context) (dto.DashboardResponse, error)
}

type serviceImpl struct {
	repo      repository.Dashboard
	directory directory.Directory
	identity  identity.Identity
	config    *config.Config
	otel      otel.Otel
}

func New(repo repository.Dashboard, directory directory.Directory, identity identity.Identity, config *config.Config, otel otel.Otel) Dashboard {
	return &serviceImpl{
		repo:      repo,
		directory: directory,
		identity:  identity,
		config:    config,
		otel:      otel,
	}
}

// Get summarises the caller's business over the upcoming window starting today.
func (s *serviceImpl) Get(ctx context.Context) (res dto.DashboardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".dashboard.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := identity.RequireBusiness(ctx, s.identity)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	now := timezone.Now()
	today := now.Format(constant.DayFormat)
	window := directory.Range{From: now, To: now.AddDate(0, 0, s.config.Booking.UpcomingDays)}

	bookings, err := s.directory.GetBookings(ctx, user.BusinessID, window)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	totals, err := s.repo.Totals(ctx, user.BusinessID, now)
	if err != nil {
		log.Error().Err(err).Str("business_id", user.BusinessID).Msg("failed to get dashboard totals")

		return res, fmt.Errorf("failed to get dashboard totals: %w", err)
	}

	res.Stats.FromTotals(totals)
	res.Stats.WeekBookings = len(bookings)

	upcoming := make([]bookingModel.Booking, 0, s.config.Booking.UpcomingLimit)

	for _, booking := range bookings {
		if booking.Day() == today {
			res.Stats.TodayBookings++
		}

		if booking.Status != bookingModel.StatusCancelled && len(upcoming) < s.config.Booking.UpcomingLimit {
			upcoming = append(upcoming, booking)
		}
	}

	res.UpcomingJobs = bookingDto.FromModels(upcoming)

	recent := bookings[:min(len(bookings), s.config.Booking.RecentLimit)]

	res.RecentActivity = make([]dto.ActivityResponse, len(recent))
	for i, booking := range recent {
		res.RecentActivity[i].FromModel(booking)
	}

	return res, nil
}
