// Package navigator holds the month-grid state of a booking calendar.
//
// A Navigator shows one month at a time inside [minDate, maxDate] and carries an
// optional selected date and time. Slots for the selected date are recomputed
// through the SlotFunc every time a date is selected; nothing is recomputed implicitly.
package navigator

import (
	"errors"
	"slices"
	"time"

	"github.com/lucasaveiro/service-scheduler/internal/domains/availability/filter"
	"github.com/lucasaveiro/service-scheduler/internal/domains/availability/model"
	"github.com/lucasaveiro/service-scheduler/shared/constant"
)

var (
	ErrInvalidRange     = errors.New("min date must not be after max date")
	ErrInvalidDate      = errors.New("date must be in YYYY-MM-DD format")
	ErrDateUnavailable  = errors.New("date is not available")
	ErrNoDateSelected   = errors.New("no date selected")
	ErrTimeUnavailable  = errors.New("time is not available on the selected date")
	ErrMonthOutOfBounds = errors.New("month is outside the bookable range")
)

// SlotFunc returns the free slots of a YYYY-MM-DD date.
type SlotFunc func(date string) ([]model.Slot, error)

// State is a read-only copy of the navigator.
type State struct {
	CurrentMonth string `json:"current_month"`
	SelectedDate string `json:"selected_date,omitempty"`
	SelectedTime string `json:"selected_time,omitempty"`
	MinDate      string `json:"min_date"`
	MaxDate      string `json:"max_date"`
}

// Day is one cell of the month grid.
type Day struct {
	Date        string `json:"date"`
	Day         int    `json:"day"`
	Available   bool   `json:"available"`
	Interactive bool   `json:"interactive"`
	Selected    bool   `json:"selected"`
	Today       bool   `json:"today"`
}

type Navigator struct {
	month     time.Time
	minDate   time.Time
	maxDate   time.Time
	available filter.DateSet
	slotsFor  SlotFunc

	selectedDate string
	selectedTime string
	slots        []model.Slot
}

func New(minDate, maxDate time.Time, available filter.DateSet, slotsFor SlotFunc) (*Navigator, error) {
	minDate = dayOf(minDate)
	maxDate = dayOf(maxDate)

	if minDate.After(maxDate) {
		return nil, ErrInvalidRange
	}

	return &Navigator{
		month:     monthOf(minDate),
		minDate:   minDate,
		maxDate:   maxDate,
		available: available,
		slotsFor:  slotsFor,
	}, nil
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func (n *Navigator) Month() time.Time {
	return n.month
}

func (n *Navigator) CanGoPrevious() bool {
	return !n.month.AddDate(0, -1, 0).Before(monthOf(n.minDate))
}

func (n *Navigator) CanGoNext() bool {
	return !n.month.AddDate(0, 1, 0).After(monthOf(n.maxDate))
}

// PreviousMonth moves one month back. It is a no-op returning false at the lower bound.
func (n *Navigator) PreviousMonth() bool {
	if !n.CanGoPrevious() {
		return false
	}

	n.month = n.month.AddDate(0, -1, 0)

	return true
}

// NextMonth moves one month forward. It is a no-op returning false at the upper bound.
func (n *Navigator) NextMonth() bool {
	if !n.CanGoNext() {
		return false
	}

	n.month = n.month.AddDate(0, 1, 0)

	return true
}

// ShowMonth jumps to the month containing t when it lies within the bounds.
func (n *Navigator) ShowMonth(t time.Time) error {
	month := monthOf(t)
	if month.Before(monthOf(n.minDate)) || month.After(monthOf(n.maxDate)) {
		return ErrMonthOutOfBounds
	}

	n.month = month

	return nil
}

// IsSelectable reports whether date is inside the bounds and date-available.
func (n *Navigator) IsSelectable(date time.Time) bool {
	date = dayOf(date)
	if date.Before(n.minDate) || date.After(n.maxDate) {
		return false
	}

	return filter.IsDateAvailable(date.Format(constant.DayFormat), n.available)
}

// SelectDate selects a YYYY-MM-DD date, clears any selected time and recomputes its slots.
// On error the navigator is left as it was.
func (n *Navigator) SelectDate(value string) error {
	date, err := time.Parse(constant.DayFormat, value)
	if err != nil {
		return ErrInvalidDate
	}

	if !n.IsSelectable(date) {
		return ErrDateUnavailable
	}

	var slots []model.Slot
	if n.slotsFor != nil {
		slots, err = n.slotsFor(value)
		if err != nil {
			return err
		}
	}

	n.selectedDate = value
	n.selectedTime = constant.Empty
	n.slots = slots
	n.month = monthOf(date)

	return nil
}

// SelectTime selects an HH:MM time among the slots of the selected date.
func (n *Navigator) SelectTime(value string) error {
	if n.selectedDate == constant.Empty {
		return ErrNoDateSelected
	}

	if !slices.ContainsFunc(n.slots, func(s model.Slot) bool { return s.Time == value }) {
		return ErrTimeUnavailable
	}

	n.selectedTime = value

	return nil
}

func (n *Navigator) SelectedDate() string {
	return n.selectedDate
}

func (n *Navigator) SelectedTime() string {
	return n.selectedTime
}

// Slots returns the slots computed for the selected date.
func (n *Navigator) Slots() []model.Slot {
	return slices.Clone(n.slots)
}

func (n *Navigator) State() State {
	return State{
		CurrentMonth: n.month.Format(constant.MonthFormat),
		SelectedDate: n.selectedDate,
		SelectedTime: n.selectedTime,
		MinDate:      n.minDate.Format(constant.DayFormat),
		MaxDate:      n.maxDate.Format(constant.DayFormat),
	}
}

// Offset is the number of blank cells before the first of the month in a Monday-first grid.
func (n *Navigator) Offset() int {
	return filter.ISOWeekday(n.month) - 1
}

// Days renders the cells of the current month.
func (n *Navigator) Days(today time.Time) []Day {
	today = dayOf(today)
	next := n.month.AddDate(0, 1, 0)

	days := make([]Day, 0, 31)

	for date := n.month; date.Before(next); date = date.AddDate(0, 0, 1) {
		value := date.Format(constant.DayFormat)
		available := n.IsSelectable(date)
		selected := value == n.selectedDate

		days = append(days, Day{
			Date:        value,
			Day:         date.Day(),
			Available:   available,
			Interactive: available,
			Selected:    selected,
			Today:       date.Equal(today) && !selected,
		})
	}

	return days
}
