package menu

import (
	"github.com/abhayvishwakarma1111/bitezyqr/internal/menu/repository"
	"github.com/abhayvishwakarma1111/bitezyqr/internal/menu/service"
	"go.uber.org/fx"
)

var Module = fx.Module("menu.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
