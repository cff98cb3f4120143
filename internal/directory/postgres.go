package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/lucasaveiro/service-scheduler/config"
	"github.com/lucasaveiro/service-scheduler/infras/otel"
	availabilityModel "github.com/lucasaveiro/service-scheduler/internal/domains/availability/model"
	bookingModel "github.com/lucasaveiro/service-scheduler/internal/domains/booking/model"
	bookingRepo "github.com/lucasaveiro/service-scheduler/internal/domains/booking/repository"
	businessModel "github.com/lucasaveiro/service-scheduler/internal/domains/business/model"
	businessRepo "github.com/lucasaveiro/service-scheduler/internal/domains/business/repository"
	catalogModel "github.com/lucasaveiro/service-scheduler/internal/domains/catalog/model"
	catalogRepo "github.com/lucasaveiro/service-scheduler/internal/domains/catalog/repository"
	clientModel "github.com/lucasaveiro/service-scheduler/internal/domains/client/model"
	clientRepo "github.com/lucasaveiro/service-scheduler/internal/domains/client/repository"
	"github.com/lucasaveiro/service-scheduler/shared"
	"github.com/lucasaveiro/service-scheduler/shared/constant"
	gDto "github.com/lucasaveiro/service-scheduler/shared/dto"
	"github.com/lucasaveiro/service-scheduler/shared/failure"
	gModel "github.com/lucasaveiro/service-scheduler/shared/model"
	"github.com/lucasaveiro/service-scheduler/shared/timezone"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	argFrom           = "booking_from"
	argTo             = "booking_to"
	argExpectedStatus = "expected_status"
)

const defaultDuration = 60

var defaultWorkingDays = []int64{1, 2, 3, 4, 5}

type postgresImpl struct {
	business businessRepo.Business
	catalog  catalogRepo.Service
	booking  bookingRepo.Booking
	client   clientRepo.Client
	cfg      *config.Config
	otel     otel.Otel
}

func New(
	business businessRepo.Business,
	catalog catalogRepo.Service,
	booking bookingRepo.Booking,
	client clientRepo.Client,
	cfg *config.Config,
	otel otel.Otel,
) Directory {
	return &postgresImpl{
		business: business,
		catalog:  catalog,
		booking:  booking,
		client:   client,
		cfg:      cfg,
		otel:     otel,
	}
}

func (d *postgresImpl) GetBusiness(ctx context.Context, businessID string) (res businessModel.Business, err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".directory.GetBusiness")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = d.business.Get(ctx, shared.FilterByID(businessID, businessModel.FieldID, businessModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("business_id", businessID).Msg("failed to get business")

		return res, failure.Collaborator(fmt.Errorf("failed to get business: %w", err))
	}

	if res.ID == constant.Empty {
		return res, failure.NotFound("Business not found") // nolint:wrapcheck
	}

	return d.businessDefaults(res), nil
}

func (d *postgresImpl) GetServices(ctx context.Context, businessID string) (res []catalogModel.Service, err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".directory.GetServices")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params := gDto.QueryParams{
		SortBy:  fmt.Sprintf("%s.%s", catalogModel.TableName, constant.FieldCreatedAt),
		SortDir: gDto.SortDirDesc,
	}

	res, err = d.catalog.GetAll(ctx, params, shared.FilterByBusiness(businessID, catalogModel.FieldBusinessID, catalogModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("business_id", businessID).Msg("failed to get services")

		return nil, failure.Collaborator(fmt.Errorf("failed to get services: %w", err))
	}

	for i := range res {
		res[i] = d.serviceDefaults(res[i])
	}

	return res, nil
}

func (d *postgresImpl) GetBookings(ctx context.Context, businessID string, window Range) (res []bookingModel.Booking, err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".directory.GetBookings")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByBusiness(businessID, bookingModel.FieldBusinessID, bookingModel.TableName)

	if !window.From.IsZero() {
		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName:  argFrom,
			Field:    bookingModel.FieldBookingDate,
			Value:    window.From.Format(constant.DayFormat),
			Operator: gDto.FilterOperatorGreaterEq,
			Table:    bookingModel.TableName,
		})
	}

	if !window.To.IsZero() {
		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName:  argTo,
			Field:    bookingModel.FieldBookingDate,
			Value:    window.To.Format(constant.DayFormat),
			Operator: gDto.FilterOperatorLessEq,
			Table:    bookingModel.TableName,
		})
	}

	params := gDto.QueryParams{
		SortBy: fmt.Sprintf("%s.%s %s, %s.%s",
			bookingModel.TableName, bookingModel.FieldBookingDate, gDto.SortDirAsc,
			bookingModel.TableName, bookingModel.FieldBookingTime),
		SortDir: gDto.SortDirAsc,
	}

	res, err = d.booking.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Str("business_id", businessID).Msg("failed to get bookings")

		return nil, failure.Collaborator(fmt.Errorf("failed to get bookings: %w", err))
	}

	for i := range res {
		res[i] = bookingDefaults(res[i])
	}

	return res, nil
}

func (d *postgresImpl) GetBooking(ctx context.Context, bookingID string) (res bookingModel.Booking, err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".directory.GetBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = d.booking.Get(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to get booking")

		return res, failure.Collaborator(fmt.Errorf("failed to get booking: %w", err))
	}

	if res.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return bookingDefaults(res), nil
}

func (d *postgresImpl) CreateBooking(ctx context.Context, booking bookingModel.Booking) (res bookingModel.Booking, err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".directory.CreateBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking = bookingDefaults(booking)

	if err = d.booking.Insert(ctx, booking); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == constant.PqErrorCodeUniqueViolation {
			log.Warn().Str("business_id", booking.BusinessID).Str("date", booking.Day()).Str("time", booking.BookingTime).
				Msg("booking slot already taken")

			return res, failure.AvailabilityConflict(constant.Empty) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, failure.Collaborator(fmt.Errorf("failed to create booking: %w", err))
	}

	return booking, nil
}

func (d *postgresImpl) UpdateBookingStatus(ctx context.Context, bookingID string, from, to bookingModel.Status) (err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".directory.UpdateBookingStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	fields := map[string]any{
		bookingModel.FieldStatus: to,
	}

	updated, err := d.updateBooking(ctx, bookingID, fields, withStatus(bookingID, from))
	if err != nil {
		return err
	}

	if updated == 0 {
		return d.rejected(ctx, bookingID, from)
	}

	return nil
}

func (d *postgresImpl) UpdateBookingPayment(ctx context.Context, bookingID, paymentStatus, intentID string) (err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".directory.UpdateBookingPayment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	fields := map[string]any{
		bookingModel.FieldPaymentStatus: paymentStatus,
	}

	if intentID != constant.Empty {
		fields[bookingModel.FieldPaymentIntentID] = intentID
	}

	updated, err := d.updateBooking(ctx, bookingID, fields, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		return err
	}

	if updated == 0 {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return nil
}

func (d *postgresImpl) updateBooking(ctx context.Context, bookingID string, fields map[string]any, filter gDto.FilterGroup) (int64, error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		user = constant.ContextGuest
	}

	updated, err := d.booking.UpdateCount(ctx, gModel.Modified(fields, user, timezone.Now()), filter)
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to update booking")

		return 0, failure.Collaborator(fmt.Errorf("failed to update booking: %w", err))
	}

	return updated, nil
}

func (d *postgresImpl) DeleteBooking(ctx context.Context, bookingID string, expected bookingModel.Status) (err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".directory.DeleteBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	deleted, err := d.booking.DeleteCount(ctx, withStatus(bookingID, expected))
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to delete booking")

		return failure.Collaborator(fmt.Errorf("failed to delete booking: %w", err))
	}

	if deleted == 0 {
		return d.rejected(ctx, bookingID, expected)
	}

	return nil
}

// withStatus matches the booking only while it still has status. The status argument is named
// apart from the column so an update setting the same column keeps both values.
func withStatus(bookingID string, status bookingModel.Status) gDto.FilterGroup {
	return gDto.And(
		shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName),
		gDto.Filter{
			ArgName:  argExpectedStatus,
			Field:    bookingModel.FieldStatus,
			Value:    status,
			Operator: gDto.FilterOperatorEq,
			Table:    bookingModel.TableName,
		},
	)
}

// rejected explains a conditional write that matched no row: the booking is gone, or its status moved on.
func (d *postgresImpl) rejected(ctx context.Context, bookingID string, expected bookingModel.Status) error {
	exists, err := d.booking.Exist(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to check booking")

		return failure.Collaborator(fmt.Errorf("failed to check booking: %w", err))
	}

	if !exists {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	log.Warn().Str("booking_id", bookingID).Str("expected_status", string(expected)).Msg("booking status changed concurrently")

	return failure.StateViolation(MessageStatusChanged) // nolint:wrapcheck
}

func (d *postgresImpl) GetClients(ctx context.Context, businessID string) (res []clientModel.Client, err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".directory.GetClients")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params := gDto.QueryParams{
		SortBy: fmt.Sprintf("%s.%s %s, %s.%s",
			clientModel.TableName, clientModel.FieldFirstName, gDto.SortDirAsc,
			clientModel.TableName, clientModel.FieldLastName),
		SortDir: gDto.SortDirAsc,
	}

	res, err = d.client.GetAll(ctx, params, shared.FilterByBusiness(businessID, clientModel.FieldBusinessID, clientModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("business_id", businessID).Msg("failed to get clients")

		return nil, failure.Collaborator(fmt.Errorf("failed to get clients: %w", err))
	}

	for i := range res {
		res[i] = clientDefaults(res[i])
	}

	return res, nil
}

func (d *postgresImpl) businessDefaults(b businessModel.Business) businessModel.Business {
	if b.OpenTime == constant.Empty {
		b.OpenTime = fallback(d.cfg.Booking.OpenTime, availabilityModel.DefaultHours.Start)
	}

	if b.CloseTime == constant.Empty {
		b.CloseTime = fallback(d.cfg.Booking.CloseTime, availabilityModel.DefaultHours.End)
	}

	if len(b.WorkingDays) == 0 {
		b.WorkingDays = workingDays(d.cfg.Booking.WorkingDays)
	}

	if b.BusinessType == constant.Empty {
		b.BusinessType = businessModel.TypeOther
	}

	return b
}

func fallback(value, def string) string {
	if value == constant.Empty {
		return def
	}

	return value
}

func workingDays(configured []int) pq.Int64Array {
	if len(configured) == 0 {
		return append(pq.Int64Array{}, defaultWorkingDays...)
	}

	days := make(pq.Int64Array, len(configured))
	for i, d := range configured {
		days[i] = int64(d)
	}

	return days
}

func (d *postgresImpl) serviceDefaults(s catalogModel.Service) catalogModel.Service {
	if s.Duration <= 0 {
		s.Duration = d.cfg.Booking.DefaultDuration
	}

	if s.Duration <= 0 {
		s.Duration = defaultDuration
	}

	if s.Location == constant.Empty {
		s.Location = catalogModel.LocationClient
	}

	if !s.RequiresDeposit {
		s.DepositAmount = 0
	}

	return s
}

func bookingDefaults(b bookingModel.Booking) bookingModel.Booking {
	if b.Status == constant.Empty {
		b.Status = bookingModel.StatusPending
	}

	if b.PaymentStatus == constant.Empty {
		b.PaymentStatus = bookingModel.PaymentStatusNone
	}

	return b
}

func clientDefaults(c clientModel.Client) clientModel.Client {
	if c.Status == constant.Empty {
		c.Status = clientModel.StatusActive
	}

	if c.PreferredContactMethod == constant.Empty {
		c.PreferredContactMethod = clientModel.ContactEmail
	}

	if c.Tags == nil {
		c.Tags = pq.StringArray{}
	}

	return c
}
