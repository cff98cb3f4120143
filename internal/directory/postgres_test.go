package directory_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/lucasaveiro/service-scheduler/config"
	"github.com/lucasaveiro/service-scheduler/infras/otel/mocks"
	"github.com/lucasaveiro/service-scheduler/internal/directory"
	bookingMocks "github.com/lucasaveiro/service-scheduler/internal/domains/booking/mocks"
	bookingModel "github.com/lucasaveiro/service-scheduler/internal/domains/booking/model"
	businessMocks "github.com/lucasaveiro/service-scheduler/internal/domains/business/mocks"
	businessModel "github.com/lucasaveiro/service-scheduler/internal/domains/business/model"
	catalogMocks "github.com/lucasaveiro/service-scheduler/internal/domains/catalog/mocks"
	catalogModel "github.com/lucasaveiro/service-scheduler/internal/domains/catalog/model"
	clientMocks "github.com/lucasaveiro/service-scheduler/internal/domains/client/mocks"
	clientModel "github.com/lucasaveiro/service-scheduler/internal/domains/client/model"
	gDto "github.com/lucasaveiro/service-scheduler/shared/dto"
	"github.com/lucasaveiro/service-scheduler/shared/failure"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type repos struct {
	business *businessMocks.MockBusiness
	catalog  *catalogMocks.MockService
	booking  *bookingMocks.MockBooking
	client   *clientMocks.MockClient
}

func newDirectory(t *testing.T) (directory.Directory, repos) {
	t.Helper()

	ctrl := gomock.NewController(t)

	r := repos{
		business: businessMocks.NewMockBusiness(ctrl),
		catalog:  catalogMocks.NewMockService(ctrl),
		booking:  bookingMocks.NewMockBooking(ctrl),
		client:   clientMocks.NewMockClient(ctrl),
	}

	cfg := &config.Config{}
	cfg.Booking.OpenTime = "08:00"
	cfg.Booking.CloseTime = "18:00"
	cfg.Booking.WorkingDays = []int{2, 3, 4}
	cfg.Booking.DefaultDuration = 45

	return directory.New(r.business, r.catalog, r.booking, r.client, cfg, mocks.NewOtel()), r
}

func TestDirectory_GetBusiness(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(r repos)
		want      businessModel.Business
		wantCode  int
	}{
		{
			name: "applies defaults for missing hours",
			setupMock: func(r repos) {
				r.business.EXPECT().Get(gomock.Any(), gomock.Any()).
					Return(businessModel.Business{ID: "biz-1", BusinessName: "Sparkle"}, nil)
			},
			want: businessModel.Business{
				ID:           "biz-1",
				BusinessName: "Sparkle",
				BusinessType: businessModel.TypeOther,
				OpenTime:     "08:00",
				CloseTime:    "18:00",
				WorkingDays:  pq.Int64Array{2, 3, 4},
			},
		},
		{
			name: "keeps configured hours",
			setupMock: func(r repos) {
				r.business.EXPECT().Get(gomock.Any(), gomock.Any()).
					Return(businessModel.Business{
						ID: "biz-1", BusinessType: businessModel.TypeLandscaping,
						OpenTime: "07:30", CloseTime: "15:00", WorkingDays: pq.Int64Array{6},
					}, nil)
			},
			want: businessModel.Business{
				ID: "biz-1", BusinessType: businessModel.TypeLandscaping,
				OpenTime: "07:30", CloseTime: "15:00", WorkingDays: pq.Int64Array{6},
			},
		},
		{
			name: "not found",
			setupMock: func(r repos) {
				r.business.EXPECT().Get(gomock.Any(), gomock.Any()).Return(businessModel.Business{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "repository error",
			setupMock: func(r repos) {
				r.business.EXPECT().Get(gomock.Any(), gomock.Any()).Return(businessModel.Business{}, errors.New("db down"))
			},
			wantCode: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, r := newDirectory(t)
			tt.setupMock(r)

			got, err := dir.GetBusiness(context.Background(), "biz-1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDirectory_GetServices(t *testing.T) {
	dir, r := newDirectory(t)

	r.catalog.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]catalogModel.Service, error) {
			assert.Equal(t, "services.created_at", params.SortBy)
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)

			where, args := filter.GetWhereClause()
			assert.Equal(t, "(services.business_id = :business_id)", where)
			assert.Equal(t, "biz-1", args["business_id"])

			return []catalogModel.Service{
				{ID: "svc-1", Duration: 0, DepositAmount: 25},
				{ID: "svc-2", Duration: 90, Location: catalogModel.LocationRemote, RequiresDeposit: true, DepositAmount: 30},
			}, nil
		})

	got, err := dir.GetServices(context.Background(), "biz-1")
	require.NoError(t, err)

	assert.Equal(t, []catalogModel.Service{
		{ID: "svc-1", Duration: 45, Location: catalogModel.LocationClient},
		{ID: "svc-2", Duration: 90, Location: catalogModel.LocationRemote, RequiresDeposit: true, DepositAmount: 30},
	}, got)
}

func TestDirectory_GetBookings(t *testing.T) {
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		window    directory.Range
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "open range",
			wantWhere: "(bookings.business_id = :business_id)",
			wantArgs:  map[string]any{"business_id": "biz-1"},
		},
		{
			name:      "bounded range",
			window:    directory.Range{From: from, To: to},
			wantWhere: "(bookings.business_id = :business_id AND bookings.booking_date >= :booking_from AND bookings.booking_date <= :booking_to)",
			wantArgs:  map[string]any{"business_id": "biz-1", "booking_from": "2025-03-01", "booking_to": "2025-03-31"},
		},
		{
			name:      "lower bound only",
			window:    directory.Range{From: from},
			wantWhere: "(bookings.business_id = :business_id AND bookings.booking_date >= :booking_from)",
			wantArgs:  map[string]any{"business_id": "biz-1", "booking_from": "2025-03-01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, r := newDirectory(t)

			r.booking.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]bookingModel.Booking, error) {
					where, args := filter.GetWhereClause()
					assert.Equal(t, tt.wantWhere, where)
					assert.Equal(t, tt.wantArgs, args)

					return []bookingModel.Booking{{ID: "b-1"}}, nil
				})

			got, err := dir.GetBookings(context.Background(), "biz-1", tt.window)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, bookingModel.StatusPending, got[0].Status)
			assert.Equal(t, bookingModel.PaymentStatusNone, got[0].PaymentStatus)
		})
	}
}

func TestDirectory_CreateBooking(t *testing.T) {
	booking := bookingModel.Booking{ID: "b-1", BusinessID: "biz-1", BookingTime: "10:00"}

	tests := []struct {
		name     string
		insert   error
		wantKind failure.Kind
		wantErr  bool
	}{
		{name: "stored"},
		{name: "slot already taken", insert: &pq.Error{Code: "23505"}, wantErr: true, wantKind: failure.KindAvailabilityConflict},
		{name: "other database error", insert: errors.New("connection reset"), wantErr: true, wantKind: failure.KindCollaborator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, r := newDirectory(t)

			r.booking.EXPECT().Insert(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, b bookingModel.Booking) error {
					assert.Equal(t, bookingModel.StatusPending, b.Status)

					if tt.insert != nil {
						return wrapped(tt.insert)
					}

					return nil
				})

			got, err := dir.CreateBooking(context.Background(), booking)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "b-1", got.ID)
		})
	}
}

func wrapped(err error) error {
	return errors.Join(errors.New("failed to insert data (booking)"), err)
}

func TestDirectory_UpdateBookingStatus(t *testing.T) {
	tests := []struct {
		name      string
		updated   int64
		err       error
		setExists func(r repos)
		wantCode  int
		wantKind  failure.Kind
	}{
		{
			name:    "updated",
			updated: 1,
		},
		{
			name: "status changed since read",
			setExists: func(r repos) {
				r.booking.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusUnprocessableEntity,
			wantKind: failure.KindStateViolation,
		},
		{
			name: "booking gone",
			setExists: func(r repos) {
				r.booking.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "existence check fails",
			setExists: func(r repos) {
				r.booking.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("boom"))
			},
			wantCode: http.StatusBadGateway,
			wantKind: failure.KindCollaborator,
		},
		{
			name:     "database failure",
			err:      errors.New("boom"),
			wantCode: http.StatusBadGateway,
			wantKind: failure.KindCollaborator,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, r := newDirectory(t)

			r.booking.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) (int64, error) {
					assert.Equal(t, bookingModel.StatusConfirmed, fields["status"])
					assert.Equal(t, "guest", fields["modified_by"])
					assert.Contains(t, fields, "modified_at")

					where, args := filter.GetWhereClause()
					assert.Contains(t, where, "bookings.status = :expected_status")
					assert.Equal(t, "b-1", args["id"])
					assert.Equal(t, bookingModel.StatusPending, args["expected_status"])

					return tt.updated, tt.err
				})

			if tt.setExists != nil {
				tt.setExists(r)
			}

			err := dir.UpdateBookingStatus(context.Background(), "b-1", bookingModel.StatusPending, bookingModel.StatusConfirmed)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestDirectory_DeleteBooking(t *testing.T) {
	tests := []struct {
		name      string
		deleted   int64
		err       error
		setExists func(r repos)
		wantCode  int
	}{
		{
			name:    "deleted",
			deleted: 1,
		},
		{
			name: "confirmed since read",
			setExists: func(r repos) {
				r.booking.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "already gone",
			setExists: func(r repos) {
				r.booking.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:     "database failure",
			err:      errors.New("boom"),
			wantCode: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, r := newDirectory(t)

			r.booking.EXPECT().DeleteCount(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int64, error) {
					where, args := filter.GetWhereClause()
					assert.Contains(t, where, "bookings.status = :expected_status")
					assert.Equal(t, "b-1", args["id"])
					assert.Equal(t, bookingModel.StatusPending, args["expected_status"])

					return tt.deleted, tt.err
				})

			if tt.setExists != nil {
				tt.setExists(r)
			}

			err := dir.DeleteBooking(context.Background(), "b-1", bookingModel.StatusPending)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestDirectory_GetClients(t *testing.T) {
	dir, r := newDirectory(t)

	r.client.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]clientModel.Client, error) {
			assert.Equal(t, "clients.first_name ASC, clients.last_name", params.SortBy)

			return []clientModel.Client{{ID: "c-1", FirstName: "Ana"}}, nil
		})

	got, err := dir.GetClients(context.Background(), "biz-1")
	require.NoError(t, err)

	assert.Equal(t, []clientModel.Client{{
		ID:                     "c-1",
		FirstName:              "Ana",
		Status:                 clientModel.StatusActive,
		PreferredContactMethod: clientModel.ContactEmail,
		Tags:                   pq.StringArray{},
	}}, got)
}

func TestActiveServices(t *testing.T) {
	services := []catalogModel.Service{
		{ID: "a", IsActive: true},
		{ID: "b"},
		{ID: "c", IsActive: true},
	}

	active := directory.ActiveServices(services)
	assert.Equal(t, []catalogModel.Service{{ID: "a", IsActive: true}, {ID: "c", IsActive: true}}, active)

	svc, ok := directory.FindService(active, "c")
	assert.True(t, ok)
	assert.Equal(t, "c", svc.ID)

	_, ok = directory.FindService(active, "b")
	assert.False(t, ok)
}
