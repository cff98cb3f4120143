package dto

import (
	"github.com/lucasaveiro/service-scheduler/internal/domains/availability/model"
	"github.com/lucasaveiro/service-scheduler/internal/domains/calendar/navigator"
)

type GetCalendarRequest struct {
	BusinessID string `json:"business_id" validate:"required"`
	ServiceID  string `json:"service"     validate:"omitempty"`
	Month      string `json:"month"       validate:"omitempty,datetime=2006-01"`
	Date       string `json:"date"        validate:"omitempty,datetime=2006-01-02"`
	Time       string `json:"time"        validate:"omitempty,clock"`
}

type CalendarResponse struct {
	ServiceID     string          `json:"service_id,omitempty"`
	State         navigator.State `json:"state"`
	CanGoPrevious bool            `json:"can_go_previous"`
	CanGoNext     bool            `json:"can_go_next"`
	Offset        int             `json:"offset"`
	Days          []navigator.Day `json:"days"`
	Slots         []model.Slot    `json:"slots"`
	NoTimesLeft   bool            `json:"no_times_left"`
}

func (r *CalendarResponse) FromNavigator(serviceID string, nav *navigator.Navigator, days []navigator.Day) {
	r.ServiceID = serviceID
	r.State = nav.State()
	r.CanGoPrevious = nav.CanGoPrevious()
	r.CanGoNext = nav.CanGoNext()
	r.Offset = nav.Offset()
	r.Days = days
	r.Slots = nav.Slots()

	if r.Slots == nil {
		r.Slots = []model.Slot{}
	}

	r.NoTimesLeft = nav.SelectedDate() != "" && len(r.Slots) == 0
}
