// Package domain contains core types for staff authentication.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Role scopes what a logged in user may touch. Superadmins manage the
// platform, staff accounts are pinned to a single restaurant.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleStaff      Role = "staff"
)

func (r Role) Valid() bool {
	return r == RoleSuperadmin || r == RoleStaff
}

type User struct {
	ID           snowflake.ID  `gorm:"primaryKey" json:"id"`
	Email        string        `gorm:"type:text;not null;uniqueIndex" json:"email"`
	DisplayName  string        `gorm:"type:text" json:"display_name"`
	PasswordHash string        `gorm:"type:text;not null" json:"-"`
	Role         Role          `gorm:"type:text;not null" json:"role"`
	RestaurantID *snowflake.ID `json:"restaurant_id,omitempty"`
	CreatedAt    time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// Session is a persisted login. Only the SHA-256 of the session token is
// stored; the raw token lives in the caller's cookie.
type Session struct {
	ID           snowflake.ID  `gorm:"primaryKey"`
	UserID       snowflake.ID  `gorm:"column:user_id;not null;index"`
	TokenHash    string        `gorm:"column:token_hash;type:text;not null;uniqueIndex"`
	Role         Role          `gorm:"type:text;not null"`
	RestaurantID *snowflake.ID `gorm:"column:restaurant_id"`
	ExpiresAt    time.Time     `gorm:"column:expires_at;not null"`
	RevokedAt    *time.Time    `gorm:"column:revoked_at"`
	LastSeenAt   *time.Time    `gorm:"column:last_seen_at"`
	CreatedAt    time.Time     `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
}

func (Session) TableName() string { return "sessions" }

// Identity is the authenticated principal attached to a request.
type Identity struct {
	UserID       snowflake.ID
	Email        string
	DisplayName  string
	Role         Role
	RestaurantID *snowflake.ID
	SessionID    snowflake.ID
}
