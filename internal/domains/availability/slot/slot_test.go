package slot_test

import (
	"fmt"
	"testing"

	"github.com/lucasaveiro/service-scheduler/internal/domains/availability/model"
	"github.com/lucasaveiro/service-scheduler/internal/domains/availability/slot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func times(slots []model.Slot) []string {
	res := make([]string, len(slots))
	for i, s := range slots {
		res[i] = s.Time
	}

	return res
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		hours    model.BusinessHours
		duration int
		excluded model.TimeSet
		expected []string
	}{
		{
			name:     "full working day in hourly steps",
			hours:    model.BusinessHours{Start: "09:00", End: "17:00"},
			duration: 60,
			expected: []string{"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00"},
		},
		{
			name:     "excluded slot is dropped and the boundary is exclusive",
			hours:    model.BusinessHours{Start: "09:00", End: "12:00"},
			duration: 90,
			excluded: model.NewTimeSet("10:30"),
			expected: []string{"09:00"},
		},
		{
			name:     "last slot may run past closing",
			hours:    model.BusinessHours{Start: "09:00", End: "10:00"},
			duration: 45,
			expected: []string{"09:00", "09:45"},
		},
		{
			name:     "excluded time off the grid has no effect",
			hours:    model.BusinessHours{Start: "09:00", End: "11:00"},
			duration: 60,
			excluded: model.NewTimeSet("09:30", "9:00"),
			expected: []string{"09:00", "10:00"},
		},
		{
			name:     "start equal to end yields nothing",
			hours:    model.BusinessHours{Start: "09:00", End: "09:00"},
			duration: 30,
			expected: []string{},
		},
		{
			name:     "nil exclusion set",
			hours:    model.BusinessHours{Start: "13:00", End: "14:00"},
			duration: 30,
			excluded: nil,
			expected: []string{"13:00", "13:30"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := slot.Generate(tt.hours, tt.duration, tt.excluded)
			require.NoError(t, err)

			assert.Equal(t, tt.expected, times(slot.Collect(seq)))
		})
	}
}

func TestGenerate_Properties(t *testing.T) {
	hours := model.BusinessHours{Start: "08:15", End: "18:40"}

	for _, duration := range []int{5, 15, 25, 60, 90, 240} {
		seq, err := slot.Generate(hours, duration, nil)
		require.NoError(t, err)

		slots := slot.Collect(seq)
		require.NotEmpty(t, slots)
		assert.Equal(t, "08:15", slots[0].Time)

		for i := 1; i < len(slots); i++ {
			prev := minutes(t, slots[i-1].Time)
			cur := minutes(t, slots[i].Time)
			assert.Equal(t, prev+duration, cur)
		}

		assert.Less(t, minutes(t, slots[len(slots)-1].Time), minutes(t, hours.End))
	}
}

func minutes(t *testing.T, value string) int {
	t.Helper()

	var h, m int
	_, err := fmt.Sscanf(value, "%d:%d", &h, &m)
	require.NoError(t, err)

	return h*60 + m
}

func TestGenerate_Restartable(t *testing.T) {
	seq, err := slot.Generate(model.BusinessHours{Start: "09:00", End: "12:00"}, 60, nil)
	require.NoError(t, err)

	first := slot.Collect(seq)
	second := slot.Collect(seq)

	assert.Equal(t, first, second)
	assert.Len(t, first, 3)
}

func TestGenerate_StopsEarly(t *testing.T) {
	seq, err := slot.Generate(model.BusinessHours{Start: "09:00", End: "17:00"}, 60, nil)
	require.NoError(t, err)

	count := 0
	for range seq {
		count++
		if count == 2 {
			break
		}
	}

	assert.Equal(t, 2, count)
}

func TestGenerate_Display(t *testing.T) {
	seq, err := slot.Generate(model.BusinessHours{Start: "11:30", End: "13:00"}, 45, nil)
	require.NoError(t, err)

	assert.Equal(t, []model.Slot{
		{Time: "11:30", Display: "11:30 AM"},
		{Time: "12:15", Display: "12:15 PM"},
	}, slot.Collect(seq))
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		hours    model.BusinessHours
		duration int
		expected error
	}{
		{name: "zero duration", hours: model.DefaultHours, duration: 0, expected: slot.ErrInvalidDuration},
		{name: "negative duration", hours: model.DefaultHours, duration: -15, expected: slot.ErrInvalidDuration},
		{name: "bad start", hours: model.BusinessHours{Start: "9am", End: "17:00"}, duration: 60, expected: slot.ErrInvalidTime},
		{name: "bad end", hours: model.BusinessHours{Start: "09:00", End: "25:00"}, duration: 60, expected: slot.ErrInvalidTime},
		{name: "overnight", hours: model.BusinessHours{Start: "22:00", End: "02:00"}, duration: 60, expected: slot.ErrInvalidHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := slot.Generate(tt.hours, tt.duration, nil)

			assert.ErrorIs(t, err, tt.expected)
			assert.Nil(t, seq)
		})
	}
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "9:00 AM", slot.Display("09:00"))
	assert.Equal(t, "12:00 PM", slot.Display("12:00"))
	assert.Equal(t, "5:30 PM", slot.Display("17:30"))
	assert.Equal(t, "bogus", slot.Display("bogus"))
}
