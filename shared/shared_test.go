package shared_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lucasaveiro/service-scheduler/shared"
	cacheMocks "github.com/lucasaveiro/service-scheduler/shared/cache/mocks"
	"github.com/lucasaveiro/service-scheduler/shared/constant"
	"github.com/lucasaveiro/service-scheduler/shared/dto"
	"github.com/lucasaveiro/service-scheduler/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToInt64s(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    []int64
		wantErr bool
	}{
		{name: "weekdays", value: "1,2,3,4,5", want: []int64{1, 2, 3, 4, 5}},
		{name: "spaces and blanks", value: " 0, ,6 ,", want: []int64{0, 6}},
		{name: "empty", value: "", want: []int64{}},
		{name: "not a number", value: "1,mon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := shared.ConvertStringToInt64s(tt.value)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), `"mon"`)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name  string
		total int
		limit int
		want  int
	}{
		{name: "no rows", total: 0, limit: 10, want: 1},
		{name: "exact pages", total: 30, limit: 10, want: 3},
		{name: "partial last page", total: 31, limit: 10, want: 4},
		{name: "fewer rows than limit", total: 3, limit: 10, want: 1},
		{name: "zero limit", total: 5, limit: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

type lastLogin struct {
	LastLogin time.Time `db:"last_login"`
	Password  string    `db:"password"`
	Internal  string    `db:"-"`
	Untagged  string
}

func TestChangedFields(t *testing.T) {
	at := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	restore := timezone.Freeze(at)
	t.Cleanup(restore)

	tests := []struct {
		name string
		data any
		want map[string]any
	}{
		{
			name: "non-zero tagged fields",
			data: lastLogin{LastLogin: at, Password: "hash", Internal: "x", Untagged: "y"},
			want: map[string]any{
				"last_login":             at,
				"password":               "hash",
				constant.FieldModifiedAt: at,
				constant.FieldModifiedBy: "user-1",
			},
		},
		{
			name: "zero values are skipped",
			data: lastLogin{LastLogin: at},
			want: map[string]any{
				"last_login":             at,
				constant.FieldModifiedAt: at,
				constant.FieldModifiedBy: "user-1",
			},
		},
		{
			name: "pointer to struct",
			data: &lastLogin{Password: "hash"},
			want: map[string]any{
				"password":               "hash",
				constant.FieldModifiedAt: at,
				constant.FieldModifiedBy: "user-1",
			},
		},
		{
			name: "not a struct",
			data: "password",
			want: map[string]any{
				constant.FieldModifiedAt: at,
				constant.FieldModifiedBy: "user-1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shared.ChangedFields(tt.data, "user-1")

			require.Len(t, got, len(tt.want))

			for key, value := range tt.want {
				if ts, ok := value.(time.Time); ok {
					assert.True(t, ts.Equal(got[key].(time.Time)), key)

					continue
				}

				assert.Equal(t, value, got[key], key)
			}
		})
	}
}

func TestFilters(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.FilterGroup
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "by id",
			filter:    shared.FilterByID("bk-1", "id", "bookings"),
			wantWhere: "(bookings.id = :id)",
			wantArgs:  map[string]any{"id": "bk-1"},
		},
		{
			name:      "by business",
			filter:    shared.FilterByBusiness("biz-1", "business_id", "services"),
			wantWhere: "(services.business_id = :business_id)",
			wantArgs:  map[string]any{"business_id": "biz-1"},
		},
		{
			name:      "by id within business",
			filter:    shared.FilterByIDInBusiness("cl-1", "biz-1", "id", "business_id", "clients"),
			wantWhere: "(clients.business_id = :business_id AND clients.id = :id)",
			wantArgs:  map[string]any{"business_id": "biz-1", "id": "cl-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestBuildCacheKey(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		parts  []string
		want   string
	}{
		{name: "prefix only", prefix: "booking:get", want: "booking:get"},
		{name: "single part", prefix: "booking:get", parts: []string{"abc"}, want: "booking:get:abc"},
		{name: "many parts", prefix: "limiter", parts: []string{"127.0.0.1", "curl"}, want: "limiter:127.0.0.1:curl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.BuildCacheKey(tt.prefix, tt.parts...))
		})
	}
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	filterA := shared.FilterByID("a", "id", "bookings")
	filterB := shared.FilterByID("b", "id", "bookings")

	keyA := shared.BuildCacheKeyWithQuery("booking:gets", params, filterA)

	assert.Equal(t, keyA, shared.BuildCacheKeyWithQuery("booking:gets", params, filterA))
	assert.NotEqual(t, keyA, shared.BuildCacheKeyWithQuery("booking:gets", params, filterB))
	assert.NotEqual(t, keyA, shared.BuildCacheKeyWithQuery("booking:gets", dto.QueryParams{Page: 2, Limit: 10}, filterA))
	assert.Regexp(t, `^booking:gets:[0-9a-f]{64}$`, keyA)
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	cache.EXPECT().Clear(gomock.Any(), "catalog:biz-1:*").Return(nil)
	shared.InvalidateCaches(context.Background(), cache, "catalog:biz-1")

	cache.EXPECT().Clear(gomock.Any(), "catalog:biz-2:*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), cache, "catalog:biz-2")
}
