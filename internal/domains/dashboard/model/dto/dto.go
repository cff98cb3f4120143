package dto

import (
	bookingModel "github.com/lucasaveiro/service-scheduler/internal/domains/booking/model"
	bookingDto "github.com/lucasaveiro/service-scheduler/internal/domains/booking/model/dto"
	"github.com/lucasaveiro/service-scheduler/internal/domains/dashboard/model"
	"github.com/lucasaveiro/service-scheduler/shared/constant"
)

const (
	ActivityTypeBooking = "booking"
	fallbackServiceName = "Service"
)

type StatsResponse struct {
	TodayBookings  int     `json:"today_bookings"`
	WeekBookings   int     `json:"week_bookings"`
	TotalClients   int     `json:"total_clients"`
	MonthlyRevenue float64 `json:"monthly_revenue"`
}

func (r *StatsResponse) FromTotals(totals model.Totals) {
	r.TotalClients = totals.TotalClients
	r.MonthlyRevenue = totals.MonthlyRevenue
}

type ActivityResponse struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Title  string `json:"title"`
	Client string `json:"client"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Status string `json:"status"`
}

func (r *ActivityResponse) FromModel(model bookingModel.Booking) {
	name := model.ServiceName
	if name == constant.Empty {
		name = fallbackServiceName
	}

	r.ID = model.ID
	r.Type = ActivityTypeBooking
	r.Title = name + " appointment"
	r.Client = model.ClientName
	r.Date = model.Day()
	r.Time = model.BookingTime
	r.Status = string(model.Status)
}

type DashboardResponse struct {
	Stats          StatsResponse                `json:"stats"`
	UpcomingJobs   []bookingDto.BookingResponse `json:"upcoming_jobs"`
	RecentActivity []ActivityResponse           `json:"recent_activity"`
}
