package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	otelMocks "github.com/lucasaveiro/service-scheduler/infras/otel/mocks"
	"github.com/lucasaveiro/service-scheduler/internal/domains/availability/filter"
	availabilityService "github.com/lucasaveiro/service-scheduler/internal/domains/availability/service"
	availabilityMocks "github.com/lucasaveiro/service-scheduler/internal/domains/availability/service/mocks"
	bookingModel "github.com/lucasaveiro/service-scheduler/internal/domains/booking/model"
	businessModel "github.com/lucasaveiro/service-scheduler/internal/domains/business/model"
	"github.com/lucasaveiro/service-scheduler/internal/domains/calendar/model/dto"
	"github.com/lucasaveiro/service-scheduler/internal/domains/calendar/service"
	catalogModel "github.com/lucasaveiro/service-scheduler/internal/domains/catalog/model"
	"github.com/lucasaveiro/service-scheduler/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func day(value string) time.Time {
	t, _ := time.Parse("2006-01-02", value)

	return t
}

func snapshot() availabilityService.Snapshot {
	return availabilityService.Snapshot{
		Business: businessModel.Business{ID: "biz-1", OpenTime: "09:00", CloseTime: "12:00"},
		Services: []catalogModel.Service{
			{ID: "svc-1", Duration: 60, IsActive: true},
			{ID: "svc-2", Duration: 90, IsActive: true},
		},
		Bookings: []bookingModel.Booking{
			{BookingDate: day("2025-03-12"), BookingTime: "10:00", Status: bookingModel.StatusPending},
		},
		MinDate: day("2025-03-10"),
		MaxDate: day("2025-05-20"),
		Dates:   filter.CandidateDates(day("2025-03-10"), day("2025-05-20"), []int{1, 2, 3, 4, 5}),
	}
}

func TestCalendar_Get(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.GetCalendarRequest
		snapErr  error
		check    func(t *testing.T, res dto.CalendarResponse)
		wantCode int
		wantKind failure.Kind
	}{
		{
			name: "initial state defaults to the first service",
			req:  dto.GetCalendarRequest{BusinessID: "biz-1"},
			check: func(t *testing.T, res dto.CalendarResponse) {
				assert.Equal(t, "svc-1", res.ServiceID)
				assert.Equal(t, "2025-03", res.State.CurrentMonth)
				assert.False(t, res.CanGoPrevious)
				assert.True(t, res.CanGoNext)
				assert.Len(t, res.Days, 31)
				assert.Empty(t, res.Slots)
				assert.False(t, res.NoTimesLeft)
			},
		},
		{
			name: "selected date carries its free slots",
			req:  dto.GetCalendarRequest{BusinessID: "biz-1", ServiceID: "svc-1", Date: "2025-03-12", Time: "11:00"},
			check: func(t *testing.T, res dto.CalendarResponse) {
				assert.Equal(t, "2025-03-12", res.State.SelectedDate)
				assert.Equal(t, "11:00", res.State.SelectedTime)
				require.Len(t, res.Slots, 2)
				assert.Equal(t, "09:00", res.Slots[0].Time)
				assert.Equal(t, "11:00", res.Slots[1].Time)
			},
		},
		{
			name: "month navigation",
			req:  dto.GetCalendarRequest{BusinessID: "biz-1", Month: "2025-05"},
			check: func(t *testing.T, res dto.CalendarResponse) {
				assert.Equal(t, "2025-05", res.State.CurrentMonth)
				assert.True(t, res.CanGoPrevious)
				assert.False(t, res.CanGoNext)
			},
		},
		{
			name:     "month outside the window",
			req:      dto.GetCalendarRequest{BusinessID: "biz-1", Month: "2025-07"},
			wantCode: http.StatusBadRequest,
			wantKind: failure.KindValidation,
		},
		{
			name:     "weekend date",
			req:      dto.GetCalendarRequest{BusinessID: "biz-1", Date: "2025-03-15"},
			wantCode: http.StatusBadRequest,
			wantKind: failure.KindValidation,
		},
		{
			name:     "booked time",
			req:      dto.GetCalendarRequest{BusinessID: "biz-1", ServiceID: "svc-1", Date: "2025-03-12", Time: "10:00"},
			wantCode: http.StatusConflict,
			wantKind: failure.KindAvailabilityConflict,
		},
		{
			name:     "unknown service",
			req:      dto.GetCalendarRequest{BusinessID: "biz-1", ServiceID: "nope"},
			wantCode: http.StatusNotFound,
		},
		{
			name:     "snapshot failure",
			req:      dto.GetCalendarRequest{BusinessID: "biz-1"},
			snapErr:  failure.Collaborator(errors.New("db down")),
			wantCode: http.StatusBadGateway,
			wantKind: failure.KindCollaborator,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			availability := availabilityMocks.NewMockAvailability(ctrl)

			availability.EXPECT().Snapshot(gomock.Any(), "biz-1").Return(snapshot(), tt.snapErr)

			res, err := service.New(availability, otelMocks.NewOtel()).Get(context.Background(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				return
			}

			require.NoError(t, err)
			tt.check(t, res)
		})
	}
}

func TestCalendar_FullyBookedDate(t *testing.T) {
	snap := snapshot()
	snap.Bookings = append(snap.Bookings,
		bookingModel.Booking{BookingDate: day("2025-03-12"), BookingTime: "09:00", Status: bookingModel.StatusConfirmed},
		bookingModel.Booking{BookingDate: day("2025-03-12"), BookingTime: "11:00", Status: bookingModel.StatusConfirmed},
	)

	ctrl := gomock.NewController(t)
	availability := availabilityMocks.NewMockAvailability(ctrl)
	availability.EXPECT().Snapshot(gomock.Any(), "biz-1").Return(snap, nil)

	res, err := service.New(availability, otelMocks.NewOtel()).
		Get(context.Background(), dto.GetCalendarRequest{BusinessID: "biz-1", ServiceID: "svc-1", Date: "2025-03-12"})
	require.NoError(t, err)

	assert.True(t, res.NoTimesLeft)
	assert.Empty(t, res.Slots)
	assert.True(t, res.Days[11].Available)
	assert.True(t, res.Days[11].Selected)
}
