package payment

//go:generate go run go.uber.org/mock/mockgen -source=./payment.go -destination=./mocks/payment_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/lucasaveiro/service-scheduler/config"
	"github.com/lucasaveiro/service-scheduler/infras/otel"
	"github.com/lucasaveiro/service-scheduler/shared/constant"

	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
	"github.com/stripe/stripe-go/v79/webhook"
)

const (
	otelScopeName = "payment"

	MetadataBookingID  = "booking_id"
	MetadataBusinessID = "business_id"

	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
)

var (
	ErrNotConfigured    = errors.New("payment provider is not configured")
	ErrInvalidAmount    = errors.New("deposit amount must be greater than zero")
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

type DepositRequest struct {
	BookingID  string
	BusinessID string
	Amount     float64
	Currency   string
}

type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

// Event is the part of a provider webhook the booking flow cares about.
type Event struct {
	ID        string
	Type      string
	IntentID  string
	BookingID string
}

type Payment interface {
	CreateDepositIntent(ctx context.Context, req DepositRequest) (*Intent, error)
	ParseWebhook(payload []byte, signature string) (*Event, error)
}

type stripeImpl struct {
	cfg  *config.Config
	otel otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Payment {
	if cfg.External.Stripe.SecretKey == "" {
		log.Warn().Msg("Stripe secret key not set, deposits are disabled")
	}

	stripe.Key = cfg.External.Stripe.SecretKey

	return &stripeImpl{
		cfg:  cfg,
		otel: otel,
	}
}

// ToMinorUnits converts a currency amount to cents.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * constant.CentsPerUnit))
}

func (p *stripeImpl) CreateDepositIntent(ctx context.Context, req DepositRequest) (res *Intent, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelExternalScopeName, otelScopeName+".CreateDepositIntent")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if p.cfg.External.Stripe.SecretKey == "" {
		return nil, ErrNotConfigured
	}

	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	currency := req.Currency
	if currency == "" {
		currency = p.cfg.Booking.Currency
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(ToMinorUnits(req.Amount)),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.IdempotencyKey = stripe.String("deposit:" + req.BookingID)
	params.AddMetadata(MetadataBookingID, req.BookingID)
	params.AddMetadata(MetadataBusinessID, req.BusinessID)

	scope.SetAttributes(map[string]any{
		MetadataBookingID: req.BookingID,
		"amount":          *params.Amount,
	})

	intent, err := paymentintent.New(params)
	if err != nil {
		log.Error().Err(err).Str("bookingID", req.BookingID).Msg("failed to create deposit payment intent")

		return nil, fmt.Errorf("failed to create deposit payment intent: %w", err)
	}

	return &Intent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Status:       string(intent.Status),
	}, nil
}

func (p *stripeImpl) ParseWebhook(payload []byte, signature string) (*Event, error) {
	secret := p.cfg.External.Stripe.WebhookSecret
	if secret == "" {
		return nil, ErrNotConfigured
	}

	evt, err := webhook.ConstructEvent(payload, signature, secret)
	if err != nil {
		log.Warn().Err(err).Msg("rejected stripe webhook")

		return nil, ErrInvalidSignature
	}

	res := &Event{
		ID:   evt.ID,
		Type: string(evt.Type),
	}

	if res.Type != EventPaymentSucceeded && res.Type != EventPaymentFailed {
		return res, nil
	}

	var intent stripe.PaymentIntent
	if err = json.Unmarshal(evt.Data.Raw, &intent); err != nil {
		return nil, fmt.Errorf("failed to decode payment intent: %w", err)
	}

	res.IntentID = intent.ID
	res.BookingID = intent.Metadata[MetadataBookingID]

	return res, nil
}
