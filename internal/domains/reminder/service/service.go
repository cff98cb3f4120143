package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/lucasaveiro/service-scheduler/infras/otel"
	bookingModel "github.com/lucasaveiro/service-scheduler/internal/domains/booking/model"
	bookingRepo "github.com/lucasaveiro/service-scheduler/internal/domains/booking/repository"
	"github.com/lucasaveiro/service-scheduler/internal/notification"
	"github.com/lucasaveiro/service-scheduler/shared/constant"
	gDto "github.com/lucasaveiro/service-scheduler/shared/dto"
	"github.com/lucasaveiro/service-scheduler/shared/timezone"

	"github.com/rs/zerolog/log"
)

// RemindedStatuses are the statuses whose clients still expect the visit.
var RemindedStatuses = []string{string(bookingModel.StatusPending), string(bookingModel.StatusConfirmed)}

type Reminder interface {
	SendDayBefore(ctx context.Context) (int, error)
}

type serviceImpl struct {
	booking  bookingRepo.Booking
	notifier notification.Notifier
	otel     otel.Otel
}

func New(booking bookingRepo.Booking, notifier notification.Notifier, otel otel.Otel) Reminder {
	return &serviceImpl{
		booking:  booking,
		notifier: notifier,
		otel:     otel,
	}
}

// SendDayBefore reminds every client booked for tomorrow across all businesses and
// returns how many reminders went out. One failed reminder does not stop the rest.
func (s *serviceImpl) SendDayBefore(ctx context.Context) (sent int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reminder.SendDayBefore")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tomorrow := timezone.Today().AddDate(0, 0, 1).Format(constant.DayFormat)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldBookingDate,
				Value:    tomorrow,
				Operator: gDto.FilterOperatorEq,
				Table:    bookingModel.TableName,
			},
			gDto.Filter{
				Field:    bookingModel.FieldStatus,
				Value:    RemindedStatuses,
				Operator: gDto.FilterOperatorIn,
				Table:    bookingModel.TableName,
			},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}

	params := gDto.QueryParams{
		SortBy:  fmt.Sprintf("%s.%s", bookingModel.TableName, bookingModel.FieldBookingTime),
		SortDir: gDto.SortDirAsc,
	}

	bookings, err := s.booking.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Str("date", tomorrow).Msg("failed to get bookings to remind")

		return 0, fmt.Errorf("failed to get bookings to remind: %w", err)
	}

	for _, booking := range bookings {
		if err := s.notifier.Remind(ctx, booking); err != nil {
			log.Warn().Err(err).Str("booking_id", booking.ID).Msg("reminder not sent")

			continue
		}

		sent++
	}

	log.Info().Str("date", tomorrow).Int("bookings", len(bookings)).Int("sent", sent).Msg("day-before reminders processed")

	return sent, nil
}
