package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	otelMocks "github.com/lucasaveiro/service-scheduler/infras/otel/mocks"
	directoryMocks "github.com/lucasaveiro/service-scheduler/internal/directory/mocks"
	clientMocks "github.com/lucasaveiro/service-scheduler/internal/domains/client/mocks"
	"github.com/lucasaveiro/service-scheduler/internal/domains/client/model"
	"github.com/lucasaveiro/service-scheduler/internal/domains/client/model/dto"
	"github.com/lucasaveiro/service-scheduler/internal/domains/client/service"
	"github.com/lucasaveiro/service-scheduler/internal/identity"
	identityMocks "github.com/lucasaveiro/service-scheduler/internal/identity/mocks"
	gDto "github.com/lucasaveiro/service-scheduler/shared/dto"
	"github.com/lucasaveiro/service-scheduler/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var owner = &identity.User{ID: "user-1", BusinessID: "biz-1"}

type deps struct {
	repo      *clientMocks.MockClient
	directory *directoryMocks.MockDirectory
	identity  *identityMocks.MockIdentity
}

func setup(t *testing.T) (service.Client, deps) {
	t.Helper()

	ctrl := gomock.NewController(t)
	d := deps{
		repo:      clientMocks.NewMockClient(ctrl),
		directory: directoryMocks.NewMockDirectory(ctrl),
		identity:  identityMocks.NewMockIdentity(ctrl),
	}

	return service.New(d.repo, d.directory, d.identity, otelMocks.NewOtel()), d
}

func TestClient_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.ClientRequest
		setupMock func(d deps)
		wantCode  int
		check     func(t *testing.T, res dto.ClientResponse)
	}{
		{
			name: "defaults applied and tags normalized",
			req: dto.ClientRequest{
				FirstName: " Ada ",
				LastName:  "Lovelace",
				Email:     "ada@example.com",
				Tags:      []string{" vip", "vip", "", "weekly"},
			},
			setupMock: func(d deps) {
				d.identity.EXPECT().CurrentUser(gomock.Any()).Return(owner, nil)
				d.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c model.Client) error {
						assert.Equal(t, "biz-1", c.BusinessID)
						assert.Equal(t, "user-1", c.CreatedBy)

						return nil
					})
			},
			check: func(t *testing.T, res dto.ClientResponse) {
				t.Helper()
				assert.Equal(t, "Ada Lovelace", res.FullName)
				assert.Equal(t, model.ContactEmail, res.PreferredContactMethod)
				assert.Equal(t, model.StatusActive, res.Status)
				assert.Equal(t, []string{"vip", "weekly"}, res.Tags)
			},
		},
		{
			name: "anonymous caller",
			req:  dto.ClientRequest{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
			setupMock: func(d deps) {
				d.identity.EXPECT().CurrentUser(gomock.Any()).Return(nil, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "insert failure",
			req:  dto.ClientRequest{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
			setupMock: func(d deps) {
				d.identity.EXPECT().CurrentUser(gomock.Any()).Return(owner, nil)
				d.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := setup(t)
			tt.setupMock(d)

			res, err := svc.Create(context.Background(), tt.req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			tt.check(t, res)
		})
	}
}

func TestClient_GetAll(t *testing.T) {
	svc, d := setup(t)

	d.identity.EXPECT().CurrentUser(gomock.Any()).Return(owner, nil)
	d.directory.EXPECT().GetClients(gomock.Any(), "biz-1").Return([]model.Client{
		{ID: "c-1", FirstName: "Ada", LastName: "Lovelace"},
		{ID: "c-2", FirstName: "Grace", LastName: "Hopper"},
	}, nil)

	res, err := svc.GetAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalData)
	assert.Equal(t, 1, res.TotalPage)
	assert.Equal(t, "Grace Hopper", res.Clients[1].FullName)
	assert.Empty(t, res.Clients[0].Tags)
	assert.NotNil(t, res.Clients[0].Tags)
}

func TestClient_Get(t *testing.T) {
	tests := []struct {
		name     string
		found    model.Client
		repoErr  error
		wantCode int
	}{
		{name: "found", found: model.Client{ID: "c-1", BusinessID: "biz-1", FirstName: "Ada"}},
		{name: "other business or missing", found: model.Client{}, wantCode: http.StatusNotFound},
		{name: "lookup failure", repoErr: errors.New("db down"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := setup(t)

			d.identity.EXPECT().CurrentUser(gomock.Any()).Return(owner, nil)
			d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.Client, error) {
					assert.Len(t, filter.Filters, 2)

					return tt.found, tt.repoErr
				})

			res, err := svc.Get(context.Background(), "c-1")
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "c-1", res.ID)
		})
	}
}

func TestClient_Update(t *testing.T) {
	svc, d := setup(t)

	d.identity.EXPECT().CurrentUser(gomock.Any()).Return(owner, nil)
	d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Client{ID: "c-1", BusinessID: "biz-1"}, nil)
	d.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, "Ada", req[model.FieldFirstName])
			assert.Equal(t, model.ContactSMS, req[model.FieldPreferredContactMethod])
			assert.Equal(t, model.StatusInactive, req[model.FieldStatus])

			return nil
		})

	err := svc.Update(context.Background(), dto.ClientRequest{
		FirstName:              "Ada ",
		LastName:               "Lovelace",
		Email:                  "ada@example.com",
		PreferredContactMethod: model.ContactSMS,
		Status:                 model.StatusInactive,
	}, "c-1")

	require.NoError(t, err)
}

func TestClient_Delete(t *testing.T) {
	t.Run("missing client", func(t *testing.T) {
		svc, d := setup(t)

		d.identity.EXPECT().CurrentUser(gomock.Any()).Return(owner, nil)
		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Client{}, nil)

		err := svc.Delete(context.Background(), "c-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("deleted", func(t *testing.T) {
		svc, d := setup(t)

		d.identity.EXPECT().CurrentUser(gomock.Any()).Return(owner, nil)
		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Client{ID: "c-1", BusinessID: "biz-1"}, nil)
		d.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, svc.Delete(context.Background(), "c-1"))
	})
}
