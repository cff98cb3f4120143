// Package events publishes booking lifecycle events to Kafka.
package events

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=./mocks/events_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/lucasaveiro/service-scheduler/config"
	"github.com/lucasaveiro/service-scheduler/infras/kafka"
	"github.com/lucasaveiro/service-scheduler/infras/otel"
	bookingModel "github.com/lucasaveiro/service-scheduler/internal/domains/booking/model"
	"github.com/lucasaveiro/service-scheduler/shared/constant"
	"github.com/lucasaveiro/service-scheduler/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	TypeBookingCreated       = "booking.created"
	TypeBookingStatusChanged = "booking.status_changed"
	TypeBookingDeleted       = "booking.deleted"

	HeaderEventID   = "event_id"
	HeaderEventType = "event_type"
)

type BookingEvent struct {
	EventID        string              `json:"event_id"`
	Type           string              `json:"type"`
	BookingID      string              `json:"booking_id"`
	BusinessID     string              `json:"business_id"`
	ServiceName    string              `json:"service_name,omitempty"`
	ClientName     string              `json:"client_name"`
	ClientEmail    string              `json:"client_email,omitempty"`
	ClientPhone    string              `json:"client_phone,omitempty"`
	Date           string              `json:"date"`
	Time           string              `json:"time"`
	Status         bookingModel.Status `json:"status"`
	PreviousStatus bookingModel.Status `json:"previous_status,omitempty"`
	OccurredAt     time.Time           `json:"occurred_at"`
}

func NewBookingEvent(eventType string, booking bookingModel.Booking, previous bookingModel.Status) BookingEvent {
	return BookingEvent{
		EventID:        uuid.NewString(),
		Type:           eventType,
		BookingID:      booking.ID,
		BusinessID:     booking.BusinessID,
		ServiceName:    booking.ServiceName,
		ClientName:     booking.ClientName,
		ClientEmail:    booking.ClientEmail,
		ClientPhone:    booking.ClientPhone,
		Date:           booking.Day(),
		Time:           booking.BookingTime,
		Status:         booking.Status,
		PreviousStatus: previous,
		OccurredAt:     timezone.Now(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, evt BookingEvent) error
}

type kafkaPublisher struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

func New(client kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &kafkaPublisher{
		client: client,
		topic:  cfg.Kafka.Topic.BookingEvents,
		otel:   otel,
	}
}

// Publish sends evt keyed by booking id, so events of one booking keep their order.
func (p *kafkaPublisher) Publish(ctx context.Context, evt BookingEvent) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("event.type", evt.Type)

	err = p.client.SendMessages(ctx, p.topic, kafka.Message{
		Key:   evt.BookingID,
		Value: evt,
		Headers: map[string]string{
			HeaderEventID:   evt.EventID,
			HeaderEventType: evt.Type,
		},
	})
	if err != nil {
		log.Error().Err(err).Str("event_type", evt.Type).Str("booking_id", evt.BookingID).Msg("failed to publish booking event")

		return fmt.Errorf("failed to publish booking event: %w", err)
	}

	return nil
}

// PublishAsync publishes without holding up the caller. Failures are logged.
func PublishAsync(ctx context.Context, publisher Publisher, evt BookingEvent) {
	go func() {
		c := context.WithoutCancel(ctx)

		_ = publisher.Publish(c, evt)
	}()
}
