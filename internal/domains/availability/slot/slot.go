// Package slot turns business hours and a service duration into candidate appointment times.
package slot

import (
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/lucasaveiro/service-scheduler/internal/domains/availability/model"
	"github.com/lucasaveiro/service-scheduler/shared/constant"
)

var (
	ErrInvalidDuration = errors.New("duration must be greater than zero")
	ErrInvalidTime     = errors.New("time must be in HH:MM format")
	ErrInvalidHours    = errors.New("business hours must start before they end")
)

// Generate returns the slots between hours.Start and hours.End stepping by duration minutes.
// A slot is admitted while its start is before hours.End, so the last slot may run past closing.
// Times in excluded are skipped by exact HH:MM match. The sequence is lazy and can be ranged
// over any number of times.
func Generate(hours model.BusinessHours, duration int, excluded model.TimeSet) (iter.Seq[model.Slot], error) {
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}

	start, err := time.Parse(constant.ClockFormat, hours.Start)
	if err != nil {
		return nil, fmt.Errorf("%w: start %q", ErrInvalidTime, hours.Start)
	}

	end, err := time.Parse(constant.ClockFormat, hours.End)
	if err != nil {
		return nil, fmt.Errorf("%w: end %q", ErrInvalidTime, hours.End)
	}

	if start.After(end) {
		return nil, ErrInvalidHours
	}

	step := time.Duration(duration) * time.Minute

	return func(yield func(model.Slot) bool) {
		for cursor := start; cursor.Before(end); cursor = cursor.Add(step) {
			value := cursor.Format(constant.ClockFormat)
			if excluded.Contains(value) {
				continue
			}

			if !yield(model.Slot{Time: value, Display: cursor.Format(constant.DisplayFormat)}) {
				return
			}
		}
	}, nil
}

// Collect materializes seq. It never returns nil.
func Collect(seq iter.Seq[model.Slot]) []model.Slot {
	slots := []model.Slot{}
	if seq == nil {
		return slots
	}

	for s := range seq {
		slots = append(slots, s)
	}

	return slots
}

// Display formats an HH:MM value the way slots are shown, returning the input unchanged when it does not parse.
func Display(value string) string {
	t, err := time.Parse(constant.ClockFormat, value)
	if err != nil {
		return value
	}

	return t.Format(constant.DisplayFormat)
}
