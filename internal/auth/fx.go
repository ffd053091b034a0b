package auth

import (
	"github.com/abhayvishwakarma1111/bitezyqr/internal/auth/repository"
	"github.com/abhayvishwakarma1111/bitezyqr/internal/auth/service"
	"github.com/abhayvishwakarma1111/bitezyqr/internal/auth/session"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
	fx.Provide(session.NewManager),
)
