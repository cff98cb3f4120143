package booking

import (
	"io"
	"net/http"

	"github.com/lucasaveiro/service-scheduler/infras/otel"
	"github.com/lucasaveiro/service-scheduler/internal/domains/booking/model/dto"
	"github.com/lucasaveiro/service-scheduler/internal/domains/booking/service"
	"github.com/lucasaveiro/service-scheduler/shared/constant"
	"github.com/lucasaveiro/service-scheduler/shared/failure"
	"github.com/lucasaveiro/service-scheduler/shared/validator"
	"github.com/lucasaveiro/service-scheduler/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	headerStripeSignature = "Stripe-Signature"
	maxWebhookBodyBytes   = 65536
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Post("/{id}/advance", handler.AdvanceBooking)
		routerGroup.Post("/{id}/cancel", handler.CancelBooking)
		routerGroup.Delete("/{id}", handler.DeleteBooking)
	})

	router.Post("/webhooks/stripe", handler.StripeWebhook)
}

func boardRequest(r *http.Request) (dto.GetBookingsRequest, error) {
	query := r.URL.Query()

	req := dto.GetBookingsRequest{
		From:   query.Get(constant.RequestParamFrom),
		To:     query.Get(constant.RequestParamTo),
		Status: query.Get(constant.RequestParamStatus),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		return req, err //nolint:wrapcheck
	}

	return req, nil
}

// GetBookings lists the business bookings.
// @Summary Get bookings
// @Description List bookings of the signed-in business, newest date first, optionally bounded by date and filtered by status.
// @Tags Booking
// @Produce json
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD)"
// @Param status query string false "Status filter"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	req, err := boardRequest(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate query parameters")

		response.WithError(w, err)

		return
	}

	bookings, err := handler.service.GetAll(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// AdvanceBooking moves a booking to its next status.
// @Summary Advance a booking
// @Description Move the booking one step along pending, confirmed, in-progress, completed and return the refreshed list.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Param from query string false "First day of the refreshed list"
// @Param to query string false "Last day of the refreshed list"
// @Param status query string false "Status filter of the refreshed list"
// @Success 200 {object} response.Data[dto.StatusChangeResponse] "Booking advanced"
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/bookings/{id}/advance [post]
// @Security BearerAuth
func (handler *Handler) AdvanceBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AdvanceBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req, err := boardRequest(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Advance(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to advance booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking advanced by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// CancelBooking cancels a booking.
// @Summary Cancel a booking
// @Description Cancel a booking that is not completed yet and return the refreshed list.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Param from query string false "First day of the refreshed list"
// @Param to query string false "Last day of the refreshed list"
// @Param status query string false "Status filter of the refreshed list"
// @Success 200 {object} response.Data[dto.StatusChangeResponse] "Booking cancelled"
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/bookings/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req, err := boardRequest(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Cancel(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to cancel booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking cancelled by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// DeleteBooking deletes a booking by its ID.
// @Summary Delete a booking by ID
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Param from query string false "First day of the refreshed list"
// @Param to query string false "Last day of the refreshed list"
// @Param status query string false "Status filter of the refreshed list"
// @Success 200 {object} response.Data[dto.StatusChangeResponse] "Booking deleted"
// @Failure 404 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req, err := boardRequest(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Delete(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to delete booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking deleted by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// StripeWebhook records deposit payment outcomes.
// @Summary Stripe webhook
// @Description Verify a Stripe event and update the payment status of the booking it belongs to.
// @Tags Webhook
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Stripe signature"
// @Success 200 {object} response.Message "Event processed"
// @Failure 400 {object} response.Error
// @Router /v1/webhooks/stripe [post]
func (handler *Handler) StripeWebhook(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".StripeWebhook")
	defer scope.End()

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes))
	if err != nil {
		err = failure.BadRequestFromString("failed to read request body")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	if err := handler.service.HandlePaymentWebhook(ctx, payload, r.Header.Get(headerStripeSignature)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to handle payment webhook")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Event processed")
}
