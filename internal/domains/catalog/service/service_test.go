package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/lucasaveiro/service-scheduler/config"
	otelMocks "github.com/lucasaveiro/service-scheduler/infras/otel/mocks"
	directoryMocks "github.com/lucasaveiro/service-scheduler/internal/directory/mocks"
	businessModel "github.com/lucasaveiro/service-scheduler/internal/domains/business/model"
	catalogMocks "github.com/lucasaveiro/service-scheduler/internal/domains/catalog/mocks"
	"github.com/lucasaveiro/service-scheduler/internal/domains/catalog/model"
	"github.com/lucasaveiro/service-scheduler/internal/domains/catalog/model/dto"
	"github.com/lucasaveiro/service-scheduler/internal/domains/catalog/service"
	"github.com/lucasaveiro/service-scheduler/internal/identity"
	identityMocks "github.com/lucasaveiro/service-scheduler/internal/identity/mocks"
	cacheMocks "github.com/lucasaveiro/service-scheduler/shared/cache/mocks"
	gDto "github.com/lucasaveiro/service-scheduler/shared/dto"
	"github.com/lucasaveiro/service-scheduler/shared/failure"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var owner = &identity.User{ID: "user-1", BusinessID: "biz-1"}

type deps struct {
	repo      *catalogMocks.MockService
	directory *directoryMocks.MockDirectory
	identity  *identityMocks.MockIdentity
	cache     *cacheMocks.MockRedisCache
}

func setup(t *testing.T) (service.Catalog, deps) {
	t.Helper()

	ctrl := gomock.NewController(t)
	d := deps{
		repo:      catalogMocks.NewMockService(ctrl),
		directory: directoryMocks.NewMockDirectory(ctrl),
		identity:  identityMocks.NewMockIdentity(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
	}

	return service.New(d.repo, d.directory, d.identity, &config.Config{}, d.cache, otelMocks.NewOtel()), d
}

func expectInvalidation(d deps) {
	d.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	d.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func TestCatalog_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateServiceRequest
		setupMock func(d deps)
		wantErr   bool
		check     func(t *testing.T, res dto.ServiceResponse)
	}{
		{
			name: "defaults applied",
			req:  dto.CreateServiceRequest{Name: "Lawn mowing", Duration: 45, Price: 35, DepositAmount: 10},
			setupMock: func(d deps) {
				d.identity.EXPECT().CurrentUser(gomock.Any()).Return(owner, nil)
				d.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				expectInvalidation(d)
			},
			check: func(t *testing.T, res dto.ServiceResponse) {
				t.Helper()
				assert.Equal(t, "biz-1", res.BusinessID)
				assert.Equal(t, model.LocationClient, res.Location)
				assert.True(t, res.IsActive)
				assert.Zero(t, res.DepositAmount)
			},
		},
		{
			name: "deposit required without amount",
			req:  dto.CreateServiceRequest{Name: "Garden design", Duration: 120, Price: 200, RequiresDeposit: true},
			setupMock: func(d deps) {
				d.identity.EXPECT().CurrentUser(gomock.Any()).Return(owner, nil)
			},
			wantErr: true,
		},
		{
			name: "insert failure",
			req:  dto.CreateServiceRequest{Name: "Hedge trim", Duration: 30, Price: 25},
			setupMock: func(d deps) {
				d.identity.EXPECT().CurrentUser(gomock.Any()).Return(owner, nil)
				d.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := setup(t)
			tt.setupMock(d)

			res, err := svc.Create(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			tt.check(t, res)
		})
	}
}

func TestCatalog_GetAll(t *testing.T) {
	svc, d := setup(t)
	params := gDto.QueryParams{Page: 1, Limit: 10, SortBy: "created_at", SortDir: "DESC"}

	d.identity.EXPECT().CurrentUser(gomock.Any()).Return(owner, nil)
	d.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss")).Times(2)
	d.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(12, nil)
	d.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.Service{{ID: "svc-1"}}, nil)
	d.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	res, err := svc.GetAll(context.Background(), params)

	require.NoError(t, err)
	assert.Equal(t, 12, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	assert.Len(t, res.Services, 1)
}

func TestCatalog_Update(t *testing.T) {
	current := model.Service{ID: "svc-1", BusinessID: "biz-1", Name: "Window wash", Duration: 60, Price: 50, IsActive: true}
	price := 65.0
	deposit := true

	t.Run("applies changes", func(t *testing.T) {
		svc, d := setup(t)
		amount := 20.0

		d.identity.EXPECT().CurrentUser(gomock.Any()).Return(owner, nil)
		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		d.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		expectInvalidation(d)

		res, err := svc.Update(context.Background(), dto.UpdateServiceRequest{Price: &price, RequiresDeposit: &deposit, DepositAmount: &amount}, "svc-1")

		require.NoError(t, err)
		assert.InDelta(t, 65.0, res.Price, 0.001)
		assert.InDelta(t, 20.0, res.DepositAmount, 0.001)
		assert.Equal(t, "Window wash", res.Name)
	})

	t.Run("deposit without amount", func(t *testing.T) {
		svc, d := setup(t)

		d.identity.EXPECT().CurrentUser(gomock.Any()).Return(owner, nil)
		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)

		_, err := svc.Update(context.Background(), dto.UpdateServiceRequest{RequiresDeposit: &deposit}, "svc-1")

		assert.True(t, failure.Is(err, failure.KindValidation))
	})

	t.Run("service of another business", func(t *testing.T) {
		svc, d := setup(t)

		d.identity.EXPECT().CurrentUser(gomock.Any()).Return(owner, nil)
		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Service{}, nil)

		_, err := svc.Update(context.Background(), dto.UpdateServiceRequest{Price: &price}, "svc-9")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestCatalog_Delete(t *testing.T) {
	tests := []struct {
		name     string
		deleteErr error
		wantKind failure.Kind
		wantErr  bool
	}{
		{
			name: "deleted",
		},
		{
			name:     "service still referenced by bookings",
			deleteErr: &pq.Error{Code: "23503"},
			wantKind: failure.KindStateViolation,
			wantErr:  true,
		},
		{
			name:     "database failure",
			deleteErr: errors.New("connection reset"),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := setup(t)

			d.identity.EXPECT().CurrentUser(gomock.Any()).Return(owner, nil)
			d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Service{ID: "svc-1", BusinessID: "biz-1"}, nil)
			d.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(tt.deleteErr)

			if !tt.wantErr {
				expectInvalidation(d)
			}

			err := svc.Delete(context.Background(), "svc-1")
			if !tt.wantErr {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)

			if tt.wantKind != "" {
				assert.Equal(t, tt.wantKind, failure.GetKind(err))
			}
		})
	}
}

func TestCatalog_GetPublic(t *testing.T) {
	svc, d := setup(t)

	d.directory.EXPECT().GetBusiness(gomock.Any(), "biz-1").Return(businessModel.Business{ID: "biz-1"}, nil)
	d.directory.EXPECT().GetServices(gomock.Any(), "biz-1").Return([]model.Service{
		{ID: "svc-2", IsActive: true},
		{ID: "svc-1", IsActive: false},
	}, nil)

	res, err := svc.GetPublic(context.Background(), "biz-1")

	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "svc-2", res[0].ID)
}
