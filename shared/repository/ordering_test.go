package repository

import (
	"testing"

	"github.com/lucasaveiro/service-scheduler/infras/otel/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appointment struct {
	ID          string `db:"id"`
	BookingDate string `db:"booking_date"`
	BookingTime string `db:"booking_time"`
	ServiceName string `db:"service_name" table:"services" column:"name"`
}

func TestRepository_Ordering(t *testing.T) {
	repo := NewRepository[appointment]("booking", "bookings", "id", nil, mocks.NewOtel())

	tests := []struct {
		name    string
		sortBy  string
		sortDir string
		want    string
		wantErr bool
	}{
		{
			name:    "bare column",
			sortBy:  "booking_date",
			sortDir: "desc",
			want:    "bookings.booking_date DESC",
		},
		{
			name:    "qualified keys with their own direction",
			sortBy:  "bookings.booking_date ASC, bookings.booking_time",
			sortDir: "DESC",
			want:    "bookings.booking_date ASC, bookings.booking_time DESC",
		},
		{
			name:    "joined column by alias",
			sortBy:  "service_name",
			sortDir: "ASC",
			want:    "services.name ASC",
		},
		{
			name:    "unknown column",
			sortBy:  "password",
			sortDir: "ASC",
			wantErr: true,
		},
		{
			name:    "wrong table",
			sortBy:  "clients.booking_date",
			sortDir: "ASC",
			wantErr: true,
		},
		{
			name:    "injected direction",
			sortBy:  "booking_date",
			sortDir: "ASC; DROP TABLE bookings",
			wantErr: true,
		},
		{
			name:    "injected key",
			sortBy:  "booking_date ASC NULLS FIRST",
			sortDir: "ASC",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.ordering(tt.sortBy, tt.sortDir)
			if tt.wantErr {
				require.ErrorIs(t, err, errUnsortable)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
