package payment

import (
	"github.com/abhayvishwakarma1111/bitezyqr/internal/config"
	"github.com/abhayvishwakarma1111/bitezyqr/internal/payment/adapters"
	razorpayadapter "github.com/abhayvishwakarma1111/bitezyqr/internal/payment/adapters/razorpay"
	"github.com/abhayvishwakarma1111/bitezyqr/internal/payment/domain"
	razorpaygateway "github.com/abhayvishwakarma1111/bitezyqr/internal/payment/gateway/razorpay"
	"github.com/abhayvishwakarma1111/bitezyqr/internal/payment/repository"
	paymentservice "github.com/abhayvishwakarma1111/bitezyqr/internal/payment/service"
	"github.com/abhayvishwakarma1111/bitezyqr/internal/payment/webhook"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("payment.service",
	fx.Provide(repository.Provide),
	fx.Provide(func() *adapters.Registry {
		return adapters.NewRegistry(
			razorpayadapter.NewFactory(),
		)
	}),
	fx.Provide(func(cfg config.Config, log *zap.Logger) domain.Gateway {
		return razorpaygateway.NewClient(cfg.RazorpayBaseURL, log)
	}),
	fx.Provide(paymentservice.New),
	fx.Provide(webhook.NewService),
)
