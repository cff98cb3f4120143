// Package filter narrows generated slots down to the ones still bookable on a date.
package filter

import (
	"iter"
	"time"

	"github.com/lucasaveiro/service-scheduler/internal/domains/availability/model"
	"github.com/lucasaveiro/service-scheduler/internal/domains/availability/slot"
	bookingModel "github.com/lucasaveiro/service-scheduler/internal/domains/booking/model"
	"github.com/lucasaveiro/service-scheduler/shared/constant"
)

// DateSet is a set of bookable calendar days keyed by YYYY-MM-DD.
type DateSet map[string]struct{}

func NewDateSet(dates ...string) DateSet {
	set := make(DateSet, len(dates))
	for _, d := range dates {
		set[d] = struct{}{}
	}

	return set
}

// ExcludedTimes collects the times already taken on date. Cancelled bookings release their slot.
func ExcludedTimes(date string, bookings []bookingModel.Booking) model.TimeSet {
	excluded := model.TimeSet{}

	for _, b := range bookings {
		if b.Status == bookingModel.StatusCancelled {
			continue
		}

		if b.Day() == date {
			excluded[b.BookingTime] = struct{}{}
		}
	}

	return excluded
}

// SlotsForDate returns the slots of date that no existing booking occupies.
func SlotsForDate(date string, hours model.BusinessHours, duration int, bookings []bookingModel.Booking) (iter.Seq[model.Slot], error) {
	return slot.Generate(hours, duration, ExcludedTimes(date, bookings)) //nolint:wrapcheck
}

// IsDateAvailable reports whether date belongs to the precomputed set of open days.
// It does not look at slots: a date may be available and still have no free time left.
func IsDateAvailable(date string, available DateSet) bool {
	_, ok := available[date]

	return ok
}

// CandidateDates lists every day in [from, to] whose ISO weekday (1 = Monday, 7 = Sunday) is in workingDays.
// An empty workingDays admits every day.
func CandidateDates(from, to time.Time, workingDays []int) DateSet {
	set := DateSet{}

	allowed := make(map[int]struct{}, len(workingDays))
	for _, d := range workingDays {
		allowed[d] = struct{}{}
	}

	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if len(allowed) > 0 {
			if _, ok := allowed[ISOWeekday(day)]; !ok {
				continue
			}
		}

		set[day.Format(constant.DayFormat)] = struct{}{}
	}

	return set
}

// ISOWeekday maps time.Weekday onto 1 (Monday) through 7 (Sunday).
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}

	return wd
}
