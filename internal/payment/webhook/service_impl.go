package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/abhayvishwakarma1111/bitezyqr/internal/config"
	"github.com/abhayvishwakarma1111/bitezyqr/internal/payment/adapters"
	paymentdomain "github.com/abhayvishwakarma1111/bitezyqr/internal/payment/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log        *zap.Logger
	PaymentSvc paymentdomain.Service
	Adapters   *adapters.Registry
	Cfg        config.Config
}

// Service authenticates raw webhook deliveries and hands verified capture
// events to the payment service.
type Service struct {
	log           *zap.Logger
	paymentSvc    paymentdomain.Service
	adapters      *adapters.Registry
	webhookSecret string
}

func NewService(p Params) *Service {
	return &Service{
		log:           p.Log.Named("payment.webhook"),
		paymentSvc:    p.PaymentSvc,
		adapters:      p.Adapters,
		webhookSecret: strings.TrimSpace(p.Cfg.RazorpayWebhookSecret),
	}
}

// Ingest verifies the delivery against the raw body before anything in the
// payload is trusted. Ignored event types and replays both come back nil so
// the provider sees a 2xx and stops retrying.
func (s *Service) Ingest(ctx context.Context, provider string, payload []byte, headers http.Header) error {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" || s.adapters == nil || !s.adapters.ProviderExists(provider) {
		return paymentdomain.ErrProviderNotFound
	}
	adapter, err := s.adapters.NewAdapter(provider, paymentdomain.AdapterConfig{
		Config: map[string]any{"webhook_secret": s.webhookSecret},
	})
	if err != nil {
		return err
	}

	// Nothing in the body is interpreted, not even as JSON, until the
	// signature over the raw bytes has been verified.
	if err := adapter.Verify(ctx, payload, headers); err != nil {
		s.log.Warn("webhook signature rejected", zap.String("provider", provider))
		return err
	}

	if !json.Valid(payload) {
		return paymentdomain.ErrInvalidPayload
	}

	event, err := adapter.Parse(ctx, payload)
	if err != nil {
		if errors.Is(err, paymentdomain.ErrEventIgnored) {
			return nil
		}
		return err
	}
	if event.RawPayload == nil {
		event.RawPayload = payload
	}

	err = s.paymentSvc.ProcessCapture(ctx, event)
	if errors.Is(err, paymentdomain.ErrEventAlreadyProcessed) {
		s.log.Info("webhook event replayed",
			zap.String("provider", provider),
			zap.String("provider_event_id", event.ProviderEventID),
		)
		return nil
	}
	return err
}
