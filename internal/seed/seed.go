package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	authdomain "github.com/abhayvishwakarma1111/bitezyqr/internal/auth/domain"
	"github.com/abhayvishwakarma1111/bitezyqr/internal/auth/password"
	"github.com/abhayvishwakarma1111/bitezyqr/internal/config"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

const defaultAdminDisplay = "Platform Admin"

// EnsureSuperadmin seeds the configured superadmin account on startup so a
// fresh deployment can be administered immediately.
func EnsureSuperadmin(db *gorm.DB, cfg config.Config) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	email := strings.ToLower(strings.TrimSpace(cfg.SuperadminEmail))
	pass := strings.TrimSpace(cfg.SuperadminPassword)
	if email == "" || pass == "" {
		return nil
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing authdomain.User
		if err := tx.Raw(`SELECT * FROM users WHERE email = ?`, email).Scan(&existing).Error; err != nil {
			return err
		}
		if existing.ID != 0 {
			return nil
		}

		hashed, err := password.Hash(pass)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		return tx.Exec(
			`INSERT INTO users (id, email, display_name, password_hash, role, restaurant_id, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, NULL, ?, ?)`,
			node.Generate(),
			email,
			defaultAdminDisplay,
			hashed,
			authdomain.RoleSuperadmin,
			now,
			now,
		).Error
	})
}
