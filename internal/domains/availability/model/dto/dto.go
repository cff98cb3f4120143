package dto

import (
	"github.com/lucasaveiro/service-scheduler/internal/domains/availability/model"
)

type GetSlotsRequest struct {
	BusinessID string `json:"business_id" validate:"required"`
	ServiceID  string `json:"service"     validate:"required"`
	Date       string `json:"date"        validate:"required,datetime=2006-01-02"`
}

type SlotsResponse struct {
	Date          string       `json:"date"`
	ServiceID     string       `json:"service_id"`
	Duration      int          `json:"duration"`
	DateAvailable bool         `json:"date_available"`
	NoTimesLeft   bool         `json:"no_times_left"`
	Slots         []model.Slot `json:"slots"`
}

// FromSlots fills the response. A date that is open but fully booked is reported through NoTimesLeft.
func (r *SlotsResponse) FromSlots(date, serviceID string, duration int, available bool, slots []model.Slot) {
	r.Date = date
	r.ServiceID = serviceID
	r.Duration = duration
	r.DateAvailable = available
	r.Slots = slots

	if r.Slots == nil {
		r.Slots = []model.Slot{}
	}

	r.NoTimesLeft = available && len(r.Slots) == 0
}
