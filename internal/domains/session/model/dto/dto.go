package dto

import (
	bookingDto "github.com/lucasaveiro/service-scheduler/internal/domains/booking/model/dto"
	businessDto "github.com/lucasaveiro/service-scheduler/internal/domains/business/model/dto"
	calendarDto "github.com/lucasaveiro/service-scheduler/internal/domains/calendar/model/dto"
	catalogDto "github.com/lucasaveiro/service-scheduler/internal/domains/catalog/model/dto"
	"github.com/lucasaveiro/service-scheduler/internal/domains/session/session"
)

type GetPageRequest struct {
	BusinessID string `json:"business_id" validate:"required"`
	ServiceID  string `json:"service"     validate:"omitempty"`
}

// PageResponse is the initial state of the public booking page.
type PageResponse struct {
	Business        businessDto.PublicBusinessResponse `json:"business"`
	Services        []catalogDto.ServiceResponse       `json:"services"`
	SelectedService *catalogDto.ServiceResponse        `json:"selected_service,omitempty"`
	Calendar        calendarDto.CalendarResponse       `json:"calendar"`
}

// SubmitRequest carries every step of the session. Field checks happen in the session so
// that all failing steps are reported together.
type SubmitRequest struct {
	BusinessID    string `json:"-"`
	ServiceID     string `json:"service_id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	ClientName    string `json:"client_name"`
	ClientEmail   string `json:"client_email"`
	ClientPhone   string `json:"client_phone"`
	ClientAddress string `json:"client_address"`
	Notes         string `json:"notes"`
}

func (r *SubmitRequest) Form() session.Form {
	return session.Form{
		Name:    r.ClientName,
		Email:   r.ClientEmail,
		Phone:   r.ClientPhone,
		Address: r.ClientAddress,
		Notes:   r.Notes,
	}
}

type SubmitResponse struct {
	Booking             bookingDto.BookingResponse `json:"booking"`
	Service             catalogDto.ServiceResponse `json:"service"`
	DepositClientSecret string                     `json:"deposit_client_secret,omitempty"`
}

func (r *SubmitResponse) FromResult(res session.Result, clientSecret string) {
	r.Booking.FromModel(res.Booking)
	r.Service.FromModel(res.Service)
	r.DepositClientSecret = clientSecret
}
