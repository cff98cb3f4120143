package dto_test

import (
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/lucasaveiro/service-scheduler/shared/constant"
	"github.com/lucasaveiro/service-scheduler/shared/dto"
	"github.com/lucasaveiro/service-scheduler/shared/model"
	"github.com/lucasaveiro/service-scheduler/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)

	metadata := dto.Metadata{}
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "owner-1",
		ModifiedBy: "guest",
	})

	assert.Equal(t, timezone.Format(createdAt, constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, timezone.Format(modifiedAt, constant.DateFormat), metadata.ModifiedAt)
	assert.Equal(t, "owner-1", metadata.CreatedBy)
	assert.Equal(t, "guest", metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name         string
		query        url.Values
		withDefaults bool
		want         dto.QueryParams
	}{
		{
			name:         "every parameter",
			query:        url.Values{"page": {"2"}, "limit": {"20"}, "sort_by": {"name"}, "sort_dir": {"asc"}},
			withDefaults: true,
			want:         dto.QueryParams{Page: 2, Limit: 20, SortBy: "name", SortDir: dto.SortDirAsc},
		},
		{
			name:         "defaults",
			withDefaults: true,
			want: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit,
				SortBy:  constant.DefaultValueSortBy,
				SortDir: constant.DefaultValueSortDir,
			},
		},
		{
			name:  "without defaults only what was sent",
			query: url.Values{"page": {"3"}, "sort_by": {"email"}},
			want:  dto.QueryParams{Page: 3, SortBy: "email"},
		},
		{
			name:  "limit capped",
			query: url.Values{"limit": {"5000"}},
			want:  dto.QueryParams{Limit: constant.MaxValueLimit},
		},
		{
			name:  "invalid values ignored",
			query: url.Values{"page": {"-1"}, "limit": {"ten"}, "sort_dir": {"sideways"}},
			want:  dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/services?"+tt.query.Encode(), nil)

			params := dto.QueryParams{}
			params.FromRequest(req, tt.withDefaults)

			assert.Equal(t, tt.want, params)
		})
	}
}
