package events_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lucasaveiro/service-scheduler/config"
	"github.com/lucasaveiro/service-scheduler/infras/kafka"
	kafkaMocks "github.com/lucasaveiro/service-scheduler/infras/kafka/mocks"
	otelMocks "github.com/lucasaveiro/service-scheduler/infras/otel/mocks"
	bookingModel "github.com/lucasaveiro/service-scheduler/internal/domains/booking/model"
	"github.com/lucasaveiro/service-scheduler/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func booking() bookingModel.Booking {
	return bookingModel.Booking{
		ID:          "b-1",
		BusinessID:  "biz-1",
		ServiceName: "Deep clean",
		ClientName:  "Ana Lima",
		ClientPhone: "+1 555 0100",
		BookingDate: time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		BookingTime: "10:00",
		Status:      bookingModel.StatusConfirmed,
	}
}

func TestNewBookingEvent(t *testing.T) {
	evt := events.NewBookingEvent(events.TypeBookingStatusChanged, booking(), bookingModel.StatusPending)

	assert.NotEmpty(t, evt.EventID)
	assert.Equal(t, events.TypeBookingStatusChanged, evt.Type)
	assert.Equal(t, "2025-03-12", evt.Date)
	assert.Equal(t, "10:00", evt.Time)
	assert.Equal(t, bookingModel.StatusConfirmed, evt.Status)
	assert.Equal(t, bookingModel.StatusPending, evt.PreviousStatus)
	assert.False(t, evt.OccurredAt.IsZero())
}

func TestPublisher_Publish(t *testing.T) {
	cfg := &config.Config{}
	cfg.Kafka.Topic.BookingEvents = "booking-events"

	evt := events.NewBookingEvent(events.TypeBookingCreated, booking(), "")

	tests := []struct {
		name    string
		sendErr error
		wantErr bool
	}{
		{name: "sent"},
		{name: "broker unavailable", sendErr: errors.New("dial tcp: refused"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := kafkaMocks.NewMockClient(ctrl)

			client.EXPECT().SendMessages(gomock.Any(), "booking-events", gomock.Any()).
				DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
					require.Len(t, messages, 1)
					assert.Equal(t, "b-1", messages[0].Key)
					assert.Equal(t, evt.EventID, messages[0].Headers[events.HeaderEventID])
					assert.Equal(t, events.TypeBookingCreated, messages[0].Headers[events.HeaderEventType])
					assert.Equal(t, evt, messages[0].Value)

					return tt.sendErr
				})

			err := events.New(client, cfg, otelMocks.NewOtel()).Publish(context.Background(), evt)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
