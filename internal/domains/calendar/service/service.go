package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lucasaveiro/service-scheduler/infras/otel"
	availabilityModel "github.com/lucasaveiro/service-scheduler/internal/domains/availability/model"
	availabilityService "github.com/lucasaveiro/service-scheduler/internal/domains/availability/service"
	"github.com/lucasaveiro/service-scheduler/internal/domains/calendar/model/dto"
	"github.com/lucasaveiro/service-scheduler/internal/domains/calendar/navigator"
	catalogModel "github.com/lucasaveiro/service-scheduler/internal/domains/catalog/model"
	"github.com/lucasaveiro/service-scheduler/shared/constant"
	"github.com/lucasaveiro/service-scheduler/shared/failure"
	"github.com/lucasaveiro/service-scheduler/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Calendar interface {
	Get(ctx context.Context, req dto.GetCalendarRequest) (dto.CalendarResponse, error)
}

type serviceImpl struct {
	availability availabilityService.Availability
	otel         otel.Otel
}

func New(availability availabilityService.Availability, otel otel.Otel) Calendar {
	return &serviceImpl{
		availability: availability,
		otel:         otel,
	}
}

func (s *serviceImpl) Get(ctx context.Context, req dto.GetCalendarRequest) (res dto.CalendarResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".calendar.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	snap, err := s.availability.Snapshot(ctx, req.BusinessID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	svc, err := PickService(snap, req.ServiceID)
	if err != nil {
		return res, err
	}

	nav, err := NewNavigator(snap, svc)
	if err != nil {
		log.Error().Err(err).Str("business_id", req.BusinessID).Msg("failed to build calendar")

		return res, fmt.Errorf("failed to build calendar: %w", err)
	}

	if err = Replay(nav, req.Month, req.Date, req.Time); err != nil {
		return res, err
	}

	res.FromNavigator(svc.ID, nav, nav.Days(timezone.Now()))

	return res, nil
}

// PickService returns the requested active service, or the first active one when none was requested.
func PickService(snap availabilityService.Snapshot, serviceID string) (catalogModel.Service, error) {
	if serviceID == constant.Empty {
		if len(snap.Services) == 0 {
			return catalogModel.Service{}, failure.NotFound("no services available") // nolint:wrapcheck
		}

		return snap.Services[0], nil
	}

	svc, ok := snap.Service(serviceID)
	if !ok {
		return catalogModel.Service{}, failure.NotFound("service not found") // nolint:wrapcheck
	}

	return svc, nil
}

// NewNavigator builds a navigator over the snapshot's booking window whose slots follow svc's duration.
func NewNavigator(snap availabilityService.Snapshot, svc catalogModel.Service) (*navigator.Navigator, error) {
	return navigator.New(snap.MinDate, snap.MaxDate, snap.Dates, func(date string) ([]availabilityModel.Slot, error) { //nolint:wrapcheck
		return snap.Slots(date, svc.Duration)
	})
}

// Replay applies a month, date and time selection in order, as a user would.
func Replay(nav *navigator.Navigator, month, date, clock string) error {
	if month != constant.Empty {
		t, err := time.Parse(constant.MonthFormat, month)
		if err != nil {
			return failure.ValidationField(constant.RequestParamMonth, "Invalid month") // nolint:wrapcheck
		}

		if err = nav.ShowMonth(t); err != nil {
			return failure.ValidationField(constant.RequestParamMonth, "Month is outside the booking window") // nolint:wrapcheck
		}
	}

	if date != constant.Empty {
		if err := nav.SelectDate(date); err != nil {
			return Translate(err)
		}
	}

	if clock != constant.Empty {
		if err := nav.SelectTime(clock); err != nil {
			return Translate(err)
		}
	}

	return nil
}

// Translate maps navigator errors onto request failures.
func Translate(err error) error {
	switch {
	case errors.Is(err, navigator.ErrInvalidDate), errors.Is(err, navigator.ErrDateUnavailable):
		return failure.ValidationField(constant.RequestParamDate, failure.MessageDateUnavailable) // nolint:wrapcheck
	case errors.Is(err, navigator.ErrNoDateSelected):
		return failure.ValidationField(constant.RequestParamDate, "Please select a date") // nolint:wrapcheck
	case errors.Is(err, navigator.ErrTimeUnavailable):
		return failure.AvailabilityConflict(constant.Empty) // nolint:wrapcheck
	default:
		return err
	}
}
