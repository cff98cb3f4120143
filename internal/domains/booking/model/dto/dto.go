package dto

import (
	"time"

	"github.com/lucasaveiro/service-scheduler/internal/directory"
	"github.com/lucasaveiro/service-scheduler/internal/domains/booking/model"
	"github.com/lucasaveiro/service-scheduler/shared/constant"
	gDto "github.com/lucasaveiro/service-scheduler/shared/dto"
	"github.com/lucasaveiro/service-scheduler/shared/failure"
)

type GetBookingsRequest struct {
	From   string `json:"from"   validate:"omitempty,datetime=2006-01-02"`
	To     string `json:"to"     validate:"omitempty,datetime=2006-01-02"`
	Status string `json:"status" validate:"omitempty,oneof=pending confirmed in-progress completed cancelled"`
}

// Range converts the request bounds, leaving a missing bound open.
func (r *GetBookingsRequest) Range() (directory.Range, error) {
	var window directory.Range

	if r.From != constant.Empty {
		from, err := time.Parse(constant.DayFormat, r.From)
		if err != nil {
			return window, failure.ValidationField(constant.RequestParamFrom, "Invalid date") // nolint:wrapcheck
		}

		window.From = from
	}

	if r.To != constant.Empty {
		to, err := time.Parse(constant.DayFormat, r.To)
		if err != nil {
			return window, failure.ValidationField(constant.RequestParamTo, "Invalid date") // nolint:wrapcheck
		}

		window.To = to
	}

	if !window.From.IsZero() && !window.To.IsZero() && window.To.Before(window.From) {
		return window, failure.ValidationField(constant.RequestParamTo, "End date is before start date") // nolint:wrapcheck
	}

	return window, nil
}

type BookingResponse struct {
	ID              string  `json:"id"`
	BusinessID      string  `json:"business_id"`
	ServiceID       string  `json:"service_id"`
	ServiceName     string  `json:"service_name"`
	BookingDate     string  `json:"booking_date"`
	BookingTime     string  `json:"booking_time"`
	Duration        int     `json:"duration"`
	ClientName      string  `json:"client_name"`
	ClientEmail     string  `json:"client_email,omitempty"`
	ClientPhone     string  `json:"client_phone,omitempty"`
	Address         string  `json:"address,omitempty"`
	Notes           string  `json:"notes,omitempty"`
	TotalAmount     float64 `json:"total_amount"`
	Status          string  `json:"status"`
	StatusLabel     string  `json:"status_label"`
	NextStatus      string  `json:"next_status,omitempty"`
	NextStatusLabel string  `json:"next_status_label,omitempty"`
	CanCancel       bool    `json:"can_cancel"`
	CanDelete       bool    `json:"can_delete"`
	PaymentStatus   string  `json:"payment_status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.BusinessID = model.BusinessID
	r.ServiceID = model.ServiceID
	r.ServiceName = model.ServiceName
	r.BookingDate = model.Day()
	r.BookingTime = model.BookingTime
	r.Duration = model.Duration
	r.ClientName = model.ClientName
	r.ClientEmail = model.ClientEmail
	r.ClientPhone = model.ClientPhone
	r.Address = model.Address
	r.Notes = model.Notes
	r.TotalAmount = model.TotalAmount
	r.Status = string(model.Status)
	r.StatusLabel = model.Status.Label()
	r.CanCancel = model.Status.CanCancel()
	r.CanDelete = model.Status.CanDelete()
	r.PaymentStatus = model.PaymentStatus
	r.Metadata.FromModel(model.Metadata)

	if next, ok := model.Status.Next(); ok {
		r.NextStatus = string(next)
		r.NextStatusLabel = next.Label()
	}
}

// FromModels converts bookings and never returns nil.
func FromModels(models []model.Booking) []BookingResponse {
	res := make([]BookingResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalData int               `json:"total_data"`
	Stale     bool              `json:"stale,omitempty"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking) {
	r.Bookings = FromModels(models)
	r.TotalData = len(models)
}

// StatusChangeResponse carries the mutated booking and the refreshed list. Stale is set
// when the mutation succeeded but the list could not be reloaded.
type StatusChangeResponse struct {
	Booking  *BookingResponse  `json:"booking,omitempty"`
	Bookings []BookingResponse `json:"bookings"`
	Stale    bool              `json:"stale,omitempty"`
}
