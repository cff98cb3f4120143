package business

import (
	"net/http"

	"github.com/lucasaveiro/service-scheduler/infras/otel"
	"github.com/lucasaveiro/service-scheduler/internal/domains/business/model"
	"github.com/lucasaveiro/service-scheduler/internal/domains/business/model/dto"
	"github.com/lucasaveiro/service-scheduler/internal/domains/business/service"
	"github.com/lucasaveiro/service-scheduler/shared"
	"github.com/lucasaveiro/service-scheduler/shared/constant"
	"github.com/lucasaveiro/service-scheduler/shared/failure"
	"github.com/lucasaveiro/service-scheduler/shared/validator"
	"github.com/lucasaveiro/service-scheduler/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const formFieldLogo = "logo"

type Handler struct {
	service service.Business
	otel    otel.Otel
}

func New(service service.Business, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/business", func(routerGroup chi.Router) {
		routerGroup.Get("/me", handler.GetMyBusiness)
		routerGroup.Patch("/me", handler.UpdateMyBusiness)
	})
}

// GetMyBusiness returns the business owned by the signed-in user.
// @Summary Get my business
// @Tags Business
// @Produce json
// @Success 200 {object} response.Data[dto.BusinessResponse] "Business profile"
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/business/me [get]
// @Security BearerAuth
func (handler *Handler) GetMyBusiness(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyBusiness")
	defer scope.End()

	business, err := handler.service.GetMine(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get business")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, business)
}

// UpdateMyBusiness updates the profile and booking hours of the signed-in owner's business.
// @Summary Update my business
// @Description Update profile fields, opening hours and working days, optionally uploading a new logo.
// @Tags Business
// @Accept multipart/form-data
// @Produce json
// @Param business_name formData string false "Business name"
// @Param business_type formData string false "Business type"
// @Param tagline formData string false "Tagline"
// @Param description formData string false "Description"
// @Param location formData string false "Location"
// @Param business_hours formData string false "Business hours label"
// @Param open_time formData string false "Opening time (HH:MM)"
// @Param close_time formData string false "Closing time (HH:MM)"
// @Param working_days formData string false "Comma separated ISO weekdays, 1 is Monday"
// @Param logo formData file false "Logo"
// @Success 200 {object} response.Message "Business updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/business/me [patch]
// @Security BearerAuth
func (handler *Handler) UpdateMyBusiness(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateMyBusiness")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, failure.BadRequestFromString("invalid multipart form"))

		return
	}

	req := dto.UpdateBusinessRequest{
		BusinessName:  r.FormValue(model.FieldBusinessName),
		BusinessType:  r.FormValue(model.FieldBusinessType),
		Tagline:       r.FormValue(model.FieldTagline),
		Description:   r.FormValue(model.FieldDescription),
		Location:      r.FormValue(model.FieldLocation),
		BusinessHours: r.FormValue(model.FieldBusinessHours),
		OpenTime:      r.FormValue(model.FieldOpenTime),
		CloseTime:     r.FormValue(model.FieldCloseTime),
	}

	if days := r.FormValue(model.FieldWorkingDays); days != constant.Empty {
		workingDays, err := shared.ConvertStringToInt64s(days)
		if err != nil {
			err = failure.ValidationField(model.FieldWorkingDays, "Working days must be numbers from 1 to 7")
			scope.TraceError(err)

			response.WithError(w, err)

			return
		}

		req.WorkingDays = workingDays
	}

	file, fileHeader, err := r.FormFile(formFieldLogo)
	if err == nil {
		req.Logo = fileHeader
		req.LogoFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update business")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Business updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Business updated successfully")
}
