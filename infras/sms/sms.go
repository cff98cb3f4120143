package sms

//go:generate go run go.uber.org/mock/mockgen -source=./sms.go -destination=./mocks/sms_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lucasaveiro/service-scheduler/config"
	"github.com/lucasaveiro/service-scheduler/infras/otel"
	"github.com/lucasaveiro/service-scheduler/shared/constant"

	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

const otelScopeName = "sms"

var (
	ErrNotConfigured = errors.New("sms provider is not configured")
	ErrNoRecipient   = errors.New("sms recipient is empty")
)

type SMS interface {
	Send(ctx context.Context, to, body string) (sid string, err error)
}

type twilioImpl struct {
	client *twilio.RestClient
	from   string
	otel   otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) SMS {
	sid := cfg.External.Twilio.AccountSID
	if sid == "" {
		log.Warn().Msg("Twilio account not set, SMS notifications are disabled")
	}

	return &twilioImpl{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: sid,
			Password: cfg.External.Twilio.AuthToken,
		}),
		from: cfg.External.Twilio.FromNumber,
		otel: otel,
	}
}

// Send delivers body to the given phone number. The Twilio client has no context support,
// so ctx only scopes the trace.
func (s *twilioImpl) Send(ctx context.Context, to, body string) (sid string, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelExternalScopeName, otelScopeName+".Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if s.from == "" {
		return constant.Empty, ErrNotConfigured
	}

	to = Normalize(to)
	if to == "" {
		return constant.Empty, ErrNoRecipient
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		log.Error().Err(err).Msg("failed to send sms")

		return constant.Empty, fmt.Errorf("failed to send sms: %w", err)
	}

	if resp.Sid != nil {
		sid = *resp.Sid
	}

	log.Info().Str("sid", sid).Msg("sms sent")

	return sid, nil
}

// Normalize strips the formatting characters a booking form accepts, keeping a leading plus.
func Normalize(phone string) string {
	phone = strings.TrimSpace(phone)

	var b strings.Builder

	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}

	if b.Len() == 1 && strings.HasPrefix(b.String(), "+") {
		return constant.Empty
	}

	return b.String()
}
