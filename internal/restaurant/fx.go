package restaurant

import (
	"github.com/abhayvishwakarma1111/bitezyqr/internal/restaurant/repository"
	"github.com/abhayvishwakarma1111/bitezyqr/internal/restaurant/service"
	"go.uber.org/fx"
)

var Module = fx.Module("restaurant.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
