package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/lucasaveiro/service-scheduler/config"
	"github.com/lucasaveiro/service-scheduler/infras/metrics"
	"github.com/lucasaveiro/service-scheduler/infras/otel"
	"github.com/lucasaveiro/service-scheduler/infras/payment"
	"github.com/lucasaveiro/service-scheduler/internal/directory"
	availabilityService "github.com/lucasaveiro/service-scheduler/internal/domains/availability/service"
	bookingModel "github.com/lucasaveiro/service-scheduler/internal/domains/booking/model"
	calendarService "github.com/lucasaveiro/service-scheduler/internal/domains/calendar/service"
	catalogDto "github.com/lucasaveiro/service-scheduler/internal/domains/catalog/model/dto"
	"github.com/lucasaveiro/service-scheduler/internal/domains/session/model/dto"
	"github.com/lucasaveiro/service-scheduler/internal/domains/session/session"
	"github.com/lucasaveiro/service-scheduler/internal/events"
	"github.com/lucasaveiro/service-scheduler/internal/identity"
	"github.com/lucasaveiro/service-scheduler/shared/constant"
	"github.com/lucasaveiro/service-scheduler/shared/failure"
	"github.com/lucasaveiro/service-scheduler/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	OutcomeCreated  = "created"
	OutcomeInvalid  = "invalid"
	OutcomeConflict = "conflict"
	OutcomeFailed   = "failed"
)

type Session interface {
	Page(ctx context.Context, req dto.GetPageRequest) (dto.PageResponse, error)
	Submit(ctx context.Context, req dto.SubmitRequest) (dto.SubmitResponse, error)
}

type serviceImpl struct {
	availability availabilityService.Availability
	directory    directory.Directory
	identity     identity.Identity
	payment      payment.Payment
	publisher    events.Publisher
	cfg          *config.Config
	otel         otel.Otel
}

func New(
	availability availabilityService.Availability,
	directory directory.Directory,
	identity identity.Identity,
	payment payment.Payment,
	publisher events.Publisher,
	cfg *config.Config,
	otel otel.Otel,
) Session {
	return &serviceImpl{
		availability: availability,
		directory:    directory,
		identity:     identity,
		payment:      payment,
		publisher:    publisher,
		cfg:          cfg,
		otel:         otel,
	}
}

func (s *serviceImpl) Page(ctx context.Context, req dto.GetPageRequest) (res dto.PageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".session.Page")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	snap, err := s.availability.Snapshot(ctx, req.BusinessID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res.Business.FromModel(snap.Business)
	res.Services = catalogDto.FromModels(snap.Services)

	svc, ok := snap.Service(req.ServiceID)
	if ok {
		res.SelectedService = &catalogDto.ServiceResponse{}
		res.SelectedService.FromModel(svc)
	}

	nav, err := calendarService.NewNavigator(snap, svc)
	if err != nil {
		log.Error().Err(err).Str("business_id", req.BusinessID).Msg("failed to build calendar")

		return res, fmt.Errorf("failed to build calendar: %w", err)
	}

	res.Calendar.FromNavigator(svc.ID, nav, nav.Days(timezone.Now()))

	return res, nil
}

// Submit replays the customer's selections on a fresh session built from the current
// snapshot, then stores the booking. Deposit and notification steps never undo a stored booking.
func (s *serviceImpl) Submit(ctx context.Context, req dto.SubmitRequest) (res dto.SubmitResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".session.Submit")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	snap, err := s.availability.Snapshot(ctx, req.BusinessID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	sess, err := session.New(req.BusinessID, snap.Services, snap.MinDate, snap.MaxDate, snap.Dates, snap.Slots)
	if err != nil {
		log.Error().Err(err).Str("business_id", req.BusinessID).Msg("failed to start booking session")

		return res, fmt.Errorf("failed to start booking session: %w", err)
	}

	if err = replay(sess, req); err != nil {
		metrics.IncBookingCreated(outcome(err))

		return res, err
	}

	result, err := sess.Submit(ctx, s.directory, s.actor(ctx))
	if err != nil {
		metrics.IncBookingCreated(outcome(err))

		return res, err //nolint:wrapcheck
	}

	metrics.IncBookingCreated(OutcomeCreated)

	booking := result.Booking
	secret := s.deposit(ctx, result)

	events.PublishAsync(ctx, s.publisher, events.NewBookingEvent(events.TypeBookingCreated, booking, constant.Empty))

	res.FromResult(*result, secret)

	return res, nil
}

// replay applies the request to sess and reports every failing step at once. A taken time is
// reported as a conflict only once every other field is valid.
func replay(sess *session.Session, req dto.SubmitRequest) error {
	fields := map[string]string{}
	taken := false

	if req.ServiceID != constant.Empty {
		if err := sess.SelectService(req.ServiceID); err != nil {
			fields[session.FieldService] = session.MessageSelectService
		}
	}

	if req.Date != constant.Empty {
		if err := sess.SelectDate(req.Date); err != nil {
			fields[session.FieldDate] = failure.MessageDateUnavailable
		}
	}

	if req.Time != constant.Empty && sess.Calendar().SelectedDate() != constant.Empty && sess.Service() != nil {
		if err := sess.SelectTime(req.Time); err != nil {
			taken = true
		}
	}

	if err := sess.SetForm(req.Form()); err != nil {
		return err //nolint:wrapcheck
	}

	for field, msg := range sess.Validate() {
		if _, ok := fields[field]; ok || (taken && field == session.FieldTime) {
			continue
		}

		fields[field] = msg
	}

	if len(fields) > 0 {
		return failure.Validation(fields) // nolint:wrapcheck
	}

	if taken {
		return failure.AvailabilityConflict(constant.Empty) // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) actor(ctx context.Context) string {
	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("could not resolve current user, booking as guest")

		return constant.ContextGuest
	}

	return identity.Actor(user)
}

// deposit opens a payment intent for services that take one and returns its client secret.
func (s *serviceImpl) deposit(ctx context.Context, result *session.Result) string {
	amount := result.Service.Deposit()
	if amount <= 0 {
		return constant.Empty
	}

	booking := result.Booking

	intent, err := s.payment.CreateDepositIntent(ctx, payment.DepositRequest{
		BookingID:  booking.ID,
		BusinessID: booking.BusinessID,
		Amount:     amount,
		Currency:   s.cfg.Booking.Currency,
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to create deposit, booking kept")

		return constant.Empty
	}

	if err = s.directory.UpdateBookingPayment(ctx, booking.ID, bookingModel.PaymentStatusPending, intent.ID); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to record deposit intent")
	} else {
		result.Booking.PaymentStatus = bookingModel.PaymentStatusPending
		result.Booking.PaymentIntentID = intent.ID
	}

	return intent.ClientSecret
}

func outcome(err error) string {
	switch {
	case failure.Is(err, failure.KindValidation):
		return OutcomeInvalid
	case failure.Is(err, failure.KindAvailabilityConflict), errors.Is(err, session.ErrSubmissionInFlight):
		return OutcomeConflict
	default:
		return OutcomeFailed
	}
}
