package public

import (
	"net/http"

	"github.com/lucasaveiro/service-scheduler/infras/otel"
	availabilityDto "github.com/lucasaveiro/service-scheduler/internal/domains/availability/model/dto"
	availabilityService "github.com/lucasaveiro/service-scheduler/internal/domains/availability/service"
	calendarDto "github.com/lucasaveiro/service-scheduler/internal/domains/calendar/model/dto"
	calendarService "github.com/lucasaveiro/service-scheduler/internal/domains/calendar/service"
	catalogService "github.com/lucasaveiro/service-scheduler/internal/domains/catalog/service"
	sessionDto "github.com/lucasaveiro/service-scheduler/internal/domains/session/model/dto"
	sessionService "github.com/lucasaveiro/service-scheduler/internal/domains/session/service"
	"github.com/lucasaveiro/service-scheduler/shared/constant"
	"github.com/lucasaveiro/service-scheduler/shared/failure"
	"github.com/lucasaveiro/service-scheduler/shared/validator"
	"github.com/lucasaveiro/service-scheduler/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Handler serves the anonymous booking page of a business.
type Handler struct {
	session      sessionService.Session
	calendar     calendarService.Calendar
	availability availabilityService.Availability
	catalog      catalogService.Catalog
	otel         otel.Otel
}

func New(
	session sessionService.Session,
	calendar calendarService.Calendar,
	availability availabilityService.Availability,
	catalog catalogService.Catalog,
	otel otel.Otel,
) Handler {
	return Handler{
		session:      session,
		calendar:     calendar,
		availability: availability,
		catalog:      catalog,
		otel:         otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/public/businesses/{businessId}", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetPage)
		routerGroup.Get("/services", handler.GetServices)
		routerGroup.Get("/calendar", handler.GetCalendar)
		routerGroup.Get("/slots", handler.GetSlots)
		routerGroup.Post("/bookings", handler.SubmitBooking)
	})
}

// GetPage returns the initial state of the booking page.
// @Summary Get booking page
// @Description Business profile, active services, the pre-selected service and the initial calendar.
// @Tags Public
// @Produce json
// @Param businessId path string true "Business ID"
// @Param service query string false "Pre-selected service ID"
// @Success 200 {object} response.Data[sessionDto.PageResponse] "Booking page"
// @Failure 404 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/public/businesses/{businessId} [get]
func (handler *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPage")
	defer scope.End()

	req := sessionDto.GetPageRequest{
		BusinessID: chi.URLParam(r, constant.RequestParamBusinessID),
		ServiceID:  r.URL.Query().Get(constant.RequestParamService),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	page, err := handler.session.Page(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("business_id", req.BusinessID).Msg("failed to get booking page")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, page)
}

// GetServices lists the active services of a business.
// @Summary Get public services
// @Tags Public
// @Produce json
// @Param businessId path string true "Business ID"
// @Success 200 {object} response.Data[[]catalogDto.ServiceResponse] "Active services"
// @Failure 502 {object} response.Error
// @Router /v1/public/businesses/{businessId}/services [get]
func (handler *Handler) GetServices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPublicServices")
	defer scope.End()

	businessID := chi.URLParam(r, constant.RequestParamBusinessID)

	services, err := handler.catalog.GetPublic(ctx, businessID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("business_id", businessID).Msg("failed to get public services")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, services)
}

// GetCalendar renders one month of the booking calendar.
// @Summary Get booking calendar
// @Description Month grid with navigation flags, plus the slots of the selected date.
// @Tags Public
// @Produce json
// @Param businessId path string true "Business ID"
// @Param service query string false "Service ID"
// @Param month query string false "Displayed month (YYYY-MM)"
// @Param date query string false "Selected date (YYYY-MM-DD)"
// @Param time query string false "Selected time (HH:MM)"
// @Success 200 {object} response.Data[calendarDto.CalendarResponse] "Calendar"
// @Failure 400 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/public/businesses/{businessId}/calendar [get]
func (handler *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCalendar")
	defer scope.End()

	query := r.URL.Query()

	req := calendarDto.GetCalendarRequest{
		BusinessID: chi.URLParam(r, constant.RequestParamBusinessID),
		ServiceID:  query.Get(constant.RequestParamService),
		Month:      query.Get(constant.RequestParamMonth),
		Date:       query.Get(constant.RequestParamDate),
		Time:       query.Get(constant.RequestParamTime),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	calendar, err := handler.calendar.Get(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("business_id", req.BusinessID).Msg("failed to get calendar")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, calendar)
}

// GetSlots lists the bookable start times of a date.
// @Summary Get available slots
// @Tags Public
// @Produce json
// @Param businessId path string true "Business ID"
// @Param service query string true "Service ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[availabilityDto.SlotsResponse] "Slots"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/public/businesses/{businessId}/slots [get]
func (handler *Handler) GetSlots(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSlots")
	defer scope.End()

	query := r.URL.Query()

	req := availabilityDto.GetSlotsRequest{
		BusinessID: chi.URLParam(r, constant.RequestParamBusinessID),
		ServiceID:  query.Get(constant.RequestParamService),
		Date:       query.Get(constant.RequestParamDate),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	slots, err := handler.availability.Slots(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("business_id", req.BusinessID).Msg("failed to get slots")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, slots)
}

// SubmitBooking books a slot for an anonymous client.
// @Summary Submit a booking
// @Description Validate every step of the booking form, store the booking and open a deposit when the service requires one.
// @Tags Public
// @Accept json
// @Produce json
// @Param businessId path string true "Business ID"
// @Param request body sessionDto.SubmitRequest true "Submit Request"
// @Success 201 {object} response.Data[sessionDto.SubmitResponse] "Booking confirmed"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/public/businesses/{businessId}/bookings [post]
func (handler *Handler) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SubmitBooking")
	defer scope.End()

	req := sessionDto.SubmitRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode request body")

		response.WithError(w, failure.BadRequestFromString("invalid request body"))

		return
	}

	req.BusinessID = chi.URLParam(r, constant.RequestParamBusinessID)

	res, err := handler.session.Submit(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("business_id", req.BusinessID).Msg("failed to submit booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking submitted " + res.Booking.ID)

	response.WithJSON(w, http.StatusCreated, res)
}
