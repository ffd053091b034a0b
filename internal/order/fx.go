package order

import (
	"github.com/abhayvishwakarma1111/bitezyqr/internal/order/events"
	"github.com/abhayvishwakarma1111/bitezyqr/internal/order/repository"
	"github.com/abhayvishwakarma1111/bitezyqr/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order.service",
	fx.Provide(repository.Provide),
	fx.Provide(events.NewHub),
	fx.Provide(service.New),
)
