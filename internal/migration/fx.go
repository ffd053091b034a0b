package migration

import (
	"github.com/abhayvishwakarma1111/bitezyqr/internal/config"
	"github.com/abhayvishwakarma1111/bitezyqr/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}

		if err := RunMigrations(sqlDB); err != nil {
			return err
		}

		return seed.EnsureSuperadmin(conn, cfg)
	}),
)
