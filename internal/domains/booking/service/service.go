package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/lucasaveiro/service-scheduler/infras/metrics"
	"github.com/lucasaveiro/service-scheduler/infras/otel"
	"github.com/lucasaveiro/service-scheduler/infras/payment"
	"github.com/lucasaveiro/service-scheduler/internal/directory"
	"github.com/lucasaveiro/service-scheduler/internal/domains/booking/model"
	"github.com/lucasaveiro/service-scheduler/internal/domains/booking/model/dto"
	"github.com/lucasaveiro/service-scheduler/internal/domains/booking/workflow"
	"github.com/lucasaveiro/service-scheduler/internal/events"
	"github.com/lucasaveiro/service-scheduler/internal/identity"
	"github.com/lucasaveiro/service-scheduler/shared/constant"
	"github.com/lucasaveiro/service-scheduler/shared/failure"

	"github.com/rs/zerolog/log"
)

type Booking interface {
	GetAll(ctx context.Context, req dto.GetBookingsRequest) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Advance(ctx context.Context, id string, req dto.GetBookingsRequest) (dto.StatusChangeResponse, error)
	Cancel(ctx context.Context, id string, req dto.GetBookingsRequest) (dto.StatusChangeResponse, error)
	Delete(ctx context.Context, id string, req dto.GetBookingsRequest) (dto.StatusChangeResponse, error)
	HandlePaymentWebhook(ctx context.Context, payload []byte, signature string) error
}

type serviceImpl struct {
	directory directory.Directory
	identity  identity.Identity
	payment   payment.Payment
	publisher events.Publisher
	otel      otel.Otel
}

func New(
	directory directory.Directory,
	identity identity.Identity,
	payment payment.Payment,
	publisher events.Publisher,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		directory: directory,
		identity:  identity,
		payment:   payment,
		publisher: publisher,
		otel:      otel,
	}
}

func (s *serviceImpl) board(ctx context.Context, req dto.GetBookingsRequest) (*workflow.Board, error) {
	user, err := identity.RequireBusiness(ctx, s.identity)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	window, err := req.Range()
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return workflow.NewBoard(s.directory, user.BusinessID, window), nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req dto.GetBookingsRequest) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	board, err := s.board(ctx, req)
	if err != nil {
		return res, err
	}

	if err = board.Refresh(ctx); err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(board.Filter(model.Status(req.Status)))

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := identity.RequireBusiness(ctx, s.identity)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	booking, err := s.directory.GetBooking(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.BusinessID != user.BusinessID {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Advance(ctx context.Context, id string, req dto.GetBookingsRequest) (res dto.StatusChangeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Advance")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	board, err := s.board(ctx, req)
	if err != nil {
		return res, err
	}

	t, err := board.Advance(ctx, id)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	return s.changed(ctx, board, t), nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string, req dto.GetBookingsRequest) (res dto.StatusChangeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	board, err := s.board(ctx, req)
	if err != nil {
		return res, err
	}

	t, err := board.Cancel(ctx, id)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	return s.changed(ctx, board, t), nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string, req dto.GetBookingsRequest) (res dto.StatusChangeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	board, err := s.board(ctx, req)
	if err != nil {
		return res, err
	}

	t, err := board.Delete(ctx, id)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	return s.changed(ctx, board, t), nil
}

func (s *serviceImpl) changed(ctx context.Context, board *workflow.Board, t workflow.Transition) dto.StatusChangeResponse {
	var res dto.StatusChangeResponse

	if t.Deleted {
		events.PublishAsync(ctx, s.publisher, events.NewBookingEvent(events.TypeBookingDeleted, t.Booking, t.Previous))
	} else {
		metrics.IncStatusTransition(string(t.Previous), string(t.Booking.Status))
		events.PublishAsync(ctx, s.publisher, events.NewBookingEvent(events.TypeBookingStatusChanged, t.Booking, t.Previous))

		res.Booking = &dto.BookingResponse{}
		res.Booking.FromModel(t.Booking)
	}

	res.Bookings = dto.FromModels(board.Bookings())
	res.Stale = board.Stale()

	return res
}

// HandlePaymentWebhook records the outcome of a deposit payment on its booking.
func (s *serviceImpl) HandlePaymentWebhook(ctx context.Context, payload []byte, signature string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.HandlePaymentWebhook")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	evt, err := s.payment.ParseWebhook(payload, signature)
	if err != nil {
		if errors.Is(err, payment.ErrInvalidSignature) || errors.Is(err, payment.ErrNotConfigured) {
			return failure.BadRequest(err) // nolint:wrapcheck
		}

		return fmt.Errorf("failed to parse payment webhook: %w", err)
	}

	var status string

	switch evt.Type {
	case payment.EventPaymentSucceeded:
		status = model.PaymentStatusSucceeded
	case payment.EventPaymentFailed:
		status = model.PaymentStatusFailed
	default:
		log.Info().Str("event_type", evt.Type).Msg("ignoring payment event")

		return nil
	}

	if evt.BookingID == constant.Empty {
		log.Warn().Str("intent_id", evt.IntentID).Msg("payment event has no booking")

		return nil
	}

	if err = s.directory.UpdateBookingPayment(ctx, evt.BookingID, status, evt.IntentID); err != nil {
		log.Error().Err(err).Str("booking_id", evt.BookingID).Msg("failed to record payment status")

		return fmt.Errorf("failed to record payment status: %w", err)
	}

	return nil
}
