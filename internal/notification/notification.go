// Package notification turns booking events into SMS messages for the booked client.
package notification

//go:generate go run go.uber.org/mock/mockgen -source=./notification.go -destination=./mocks/notification_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/lucasaveiro/service-scheduler/config"
	"github.com/lucasaveiro/service-scheduler/infras/kafka"
	"github.com/lucasaveiro/service-scheduler/infras/metrics"
	"github.com/lucasaveiro/service-scheduler/infras/otel"
	"github.com/lucasaveiro/service-scheduler/infras/sms"
	bookingModel "github.com/lucasaveiro/service-scheduler/internal/domains/booking/model"
	"github.com/lucasaveiro/service-scheduler/internal/events"
	"github.com/lucasaveiro/service-scheduler/shared/constant"
	"github.com/lucasaveiro/service-scheduler/shared/timezone"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const (
	KindCreated   = "created"
	KindConfirmed = "confirmed"
	KindCancelled = "cancelled"
	KindCompleted = "completed"
	KindReminder  = "reminder"

	OutcomeSent    = "sent"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"

	dateDisplayFormat   = "Mon, Jan 2"
	fallbackServiceName = "appointment"
)

type Notifier interface {
	HandleEvent(ctx context.Context, evt events.BookingEvent) error
	Remind(ctx context.Context, booking bookingModel.Booking) error
}

type smsNotifier struct {
	sms  sms.SMS
	otel otel.Otel
}

func New(sms sms.SMS, otel otel.Otel) Notifier {
	return &smsNotifier{
		sms:  sms,
		otel: otel,
	}
}

// HandleEvent texts the client about a new booking or a status change worth telling them about.
// Other events are acknowledged without a message.
func (n *smsNotifier) HandleEvent(ctx context.Context, evt events.BookingEvent) (err error) {
	ctx, scope := n.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".notification.HandleEvent")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	kind, body, ok := Compose(evt)
	if !ok {
		return nil
	}

	return n.send(ctx, kind, evt.BookingID, evt.ClientPhone, body)
}

func (n *smsNotifier) Remind(ctx context.Context, booking bookingModel.Booking) (err error) {
	ctx, scope := n.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".notification.Remind")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	body := fmt.Sprintf("Reminder: hi %s, your %s is tomorrow, %s at %s.",
		booking.ClientName, serviceName(booking.ServiceName), displayDate(booking.Day()), displayTime(booking.BookingTime))

	return n.send(ctx, KindReminder, booking.ID, booking.ClientPhone, body)
}

func (n *smsNotifier) send(ctx context.Context, kind, bookingID, phone, body string) error {
	if sms.Normalize(phone) == constant.Empty {
		metrics.IncNotification(kind, OutcomeSkipped)

		return nil
	}

	sid, err := n.sms.Send(ctx, phone, body)
	if errors.Is(err, sms.ErrNotConfigured) {
		metrics.IncNotification(kind, OutcomeSkipped)

		return nil
	}

	if err != nil {
		metrics.IncNotification(kind, OutcomeFailed)
		log.Error().Err(err).Str("booking_id", bookingID).Str("kind", kind).Msg("failed to send notification")

		return fmt.Errorf("failed to send %s notification: %w", kind, err)
	}

	metrics.IncNotification(kind, OutcomeSent)
	log.Info().Str("booking_id", bookingID).Str("kind", kind).Str("sid", sid).Msg("notification sent")

	return nil
}

// Compose returns the message for evt, false when the event needs none.
func Compose(evt events.BookingEvent) (kind, body string, ok bool) {
	when := fmt.Sprintf("%s at %s", displayDate(evt.Date), displayTime(evt.Time))
	service := serviceName(evt.ServiceName)

	switch evt.Type {
	case events.TypeBookingCreated:
		return KindCreated, fmt.Sprintf("Hi %s, we received your %s booking for %s. We will confirm it shortly.",
			evt.ClientName, service, when), true
	case events.TypeBookingStatusChanged:
		switch evt.Status {
		case bookingModel.StatusConfirmed:
			return KindConfirmed, fmt.Sprintf("Hi %s, your %s on %s is confirmed.", evt.ClientName, service, when), true
		case bookingModel.StatusCancelled:
			return KindCancelled, fmt.Sprintf("Hi %s, your %s on %s has been cancelled.", evt.ClientName, service, when), true
		case bookingModel.StatusCompleted:
			return KindCompleted, fmt.Sprintf("Thanks %s, your %s is complete. We hope to see you again.", evt.ClientName, service), true
		}
	}

	return constant.Empty, constant.Empty, false
}

func serviceName(name string) string {
	if name == constant.Empty {
		return fallbackServiceName
	}

	return name
}

func displayDate(day string) string {
	t, err := timezone.Parse(constant.DayFormat, day)
	if err != nil {
		return day
	}

	return t.Format(dateDisplayFormat)
}

func displayTime(clock string) string {
	t, err := timezone.Parse(constant.ClockFormat, clock)
	if err != nil {
		return clock
	}

	return t.Format(constant.DisplayFormat)
}

// Consumer feeds booking events from Kafka into a Notifier.
type Consumer struct {
	client   kafka.Client
	notifier Notifier
	group    string
	topic    string
}

func NewConsumer(client kafka.Client, notifier Notifier, cfg *config.Config) *Consumer {
	return &Consumer{
		client:   client,
		notifier: notifier,
		group:    cfg.Kafka.ConsumerGroup,
		topic:    cfg.Kafka.Topic.BookingEvents,
	}
}

// Run blocks until ctx is done.
func (c *Consumer) Run(ctx context.Context) {
	log.Info().Str("topic", c.topic).Str("group", c.group).Msg("booking event consumer started")

	c.client.Consume(ctx, c.group, c.topic, func(msg kafkaGo.Message) {
		c.Handle(context.WithoutCancel(ctx), msg)
	})
}

// Handle decodes one message and notifies. Undecodable messages are dropped.
func (c *Consumer) Handle(ctx context.Context, msg kafkaGo.Message) {
	evt, err := kafka.DecodeKafkaMessage[events.BookingEvent](msg)
	if err != nil {
		return
	}

	if err = c.notifier.HandleEvent(ctx, evt); err != nil {
		log.Warn().Err(err).Str("event_id", evt.EventID).Msg("booking event not notified")
	}
}
