package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type CreateUserRequest struct {
	Email        string
	Password     string
	DisplayName  string
	Role         Role
	RestaurantID *snowflake.ID
}

type LoginRequest struct {
	Email    string
	Password string
}

type LoginResult struct {
	User      User
	RawToken  string
	ExpiresAt time.Time
}

type Service interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, rawToken string) error

	// Authenticate resolves a raw session token to the identity it was
	// issued for, rejecting expired and revoked sessions.
	Authenticate(ctx context.Context, rawToken string) (Identity, error)
}
