package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/lucasaveiro/service-scheduler/config"
	otelMocks "github.com/lucasaveiro/service-scheduler/infras/otel/mocks"
	"github.com/lucasaveiro/service-scheduler/internal/directory"
	directoryMocks "github.com/lucasaveiro/service-scheduler/internal/directory/mocks"
	bookingModel "github.com/lucasaveiro/service-scheduler/internal/domains/booking/model"
	dashboardMocks "github.com/lucasaveiro/service-scheduler/internal/domains/dashboard/mocks"
	"github.com/lucasaveiro/service-scheduler/internal/domains/dashboard/model"
	"github.com/lucasaveiro/service-scheduler/internal/domains/dashboard/service"
	"github.com/lucasaveiro/service-scheduler/internal/identity"
	identityMocks "github.com/lucasaveiro/service-scheduler/internal/identity/mocks"
	"github.com/lucasaveiro/service-scheduler/shared/failure"
	"github.com/lucasaveiro/service-scheduler/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var owner = &identity.User{ID: "user-1", BusinessID: "biz-1"}

type deps struct {
	repo      *dashboardMocks.MockDashboard
	directory *directoryMocks.MockDirectory
	identity  *identityMocks.MockIdentity
}

func setup(t *testing.T) (service.Dashboard, deps) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Booking.UpcomingDays = 7
	cfg.Booking.UpcomingLimit = 5
	cfg.Booking.RecentLimit = 10

	ctrl := gomock.NewController(t)
	d := deps{
		repo:      dashboardMocks.NewMockDashboard(ctrl),
		directory: directoryMocks.NewMockDirectory(ctrl),
		identity:  identityMocks.NewMockIdentity(ctrl),
	}

	return service.New(d.repo, d.directory, d.identity, cfg, otelMocks.NewOtel()), d
}

func booking(id string, day time.Time, status bookingModel.Status) bookingModel.Booking {
	return bookingModel.Booking{
		ID:          id,
		BusinessID:  "biz-1",
		ServiceName: "Deep clean",
		BookingDate: day,
		BookingTime: "10:00",
		ClientName:  "Ada",
		Status:      status,
	}
}

func TestDashboard_Get(t *testing.T) {
	now := timezone.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)

	t.Run("stats upcoming and recent", func(t *testing.T) {
		svc, d := setup(t)

		var bookings []bookingModel.Booking
		bookings = append(bookings,
			booking("b-0", today, bookingModel.StatusCancelled),
			booking("b-1", today, bookingModel.StatusPending),
		)

		for i := 2; i < 12; i++ {
			bookings = append(bookings, booking(fmt.Sprintf("b-%d", i), tomorrow, bookingModel.StatusConfirmed))
		}

		d.identity.EXPECT().CurrentUser(gomock.Any()).Return(owner, nil)
		d.directory.EXPECT().GetBookings(gomock.Any(), "biz-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, window directory.Range) ([]bookingModel.Booking, error) {
				assert.Equal(t, 7, int(window.To.Sub(window.From).Hours()/24))

				return bookings, nil
			})
		d.repo.EXPECT().Totals(gomock.Any(), "biz-1", gomock.Any()).
			Return(model.Totals{TotalClients: 4, MonthlyRevenue: 250.5}, nil)

		res, err := svc.Get(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 2, res.Stats.TodayBookings)
		assert.Equal(t, 12, res.Stats.WeekBookings)
		assert.Equal(t, 4, res.Stats.TotalClients)
		assert.InDelta(t, 250.5, res.Stats.MonthlyRevenue, 0.001)

		require.Len(t, res.UpcomingJobs, 5)
		assert.Equal(t, "b-1", res.UpcomingJobs[0].ID)
		assert.Equal(t, "Confirmed", res.UpcomingJobs[0].NextStatusLabel)

		require.Len(t, res.RecentActivity, 10)
		assert.Equal(t, "b-0", res.RecentActivity[0].ID)
		assert.Equal(t, "Deep clean appointment", res.RecentActivity[0].Title)
		assert.Equal(t, "booking", res.RecentActivity[0].Type)
	})

	t.Run("empty window", func(t *testing.T) {
		svc, d := setup(t)

		d.identity.EXPECT().CurrentUser(gomock.Any()).Return(owner, nil)
		d.directory.EXPECT().GetBookings(gomock.Any(), "biz-1", gomock.Any()).Return(nil, nil)
		d.repo.EXPECT().Totals(gomock.Any(), "biz-1", gomock.Any()).Return(model.Totals{}, nil)

		res, err := svc.Get(context.Background())

		require.NoError(t, err)
		assert.NotNil(t, res.UpcomingJobs)
		assert.NotNil(t, res.RecentActivity)
		assert.Zero(t, res.Stats.WeekBookings)
	})

	t.Run("bookings unavailable", func(t *testing.T) {
		svc, d := setup(t)

		d.identity.EXPECT().CurrentUser(gomock.Any()).Return(owner, nil)
		d.directory.EXPECT().GetBookings(gomock.Any(), "biz-1", gomock.Any()).
			Return(nil, failure.Collaborator(errors.New("db down")))

		_, err := svc.Get(context.Background())

		require.Error(t, err)
		assert.True(t, failure.Is(err, failure.KindCollaborator))
	})

	t.Run("totals failure", func(t *testing.T) {
		svc, d := setup(t)

		d.identity.EXPECT().CurrentUser(gomock.Any()).Return(owner, nil)
		d.directory.EXPECT().GetBookings(gomock.Any(), "biz-1", gomock.Any()).Return(nil, nil)
		d.repo.EXPECT().Totals(gomock.Any(), "biz-1", gomock.Any()).Return(model.Totals{}, errors.New("db down"))

		_, err := svc.Get(context.Background())

		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})

	t.Run("anonymous caller", func(t *testing.T) {
		svc, d := setup(t)

		d.identity.EXPECT().CurrentUser(gomock.Any()).Return(nil, nil)

		_, err := svc.Get(context.Background())

		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}
