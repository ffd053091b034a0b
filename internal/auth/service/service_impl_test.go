package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/abhayvishwakarma1111/bitezyqr/internal/auth/domain"
	authrepo "github.com/abhayvishwakarma1111/bitezyqr/internal/auth/repository"
)

func newService(t *testing.T, name string) domain.Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Session{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(3)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  authrepo.Provide(),
	})
}

func TestLoginLifecycle(t *testing.T) {
	svc := newService(t, "auth_lifecycle")
	ctx := context.Background()

	rid := snowflake.ID(42)
	user, err := svc.CreateUser(ctx, domain.CreateUserRequest{
		Email:        "Staff@Example.com",
		Password:     "chai-and-dosa",
		Role:         domain.RoleStaff,
		RestaurantID: &rid,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.Email != "staff@example.com" {
		t.Fatalf("email not normalized: %s", user.Email)
	}

	result, err := svc.Login(ctx, domain.LoginRequest{
		Email:    "staff@example.com",
		Password: "chai-and-dosa",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.RawToken == "" {
		t.Fatalf("expected a session token")
	}

	identity, err := svc.Authenticate(ctx, result.RawToken)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if identity.UserID != user.ID {
		t.Fatalf("identity user = %s, want %s", identity.UserID, user.ID)
	}
	if identity.Role != domain.RoleStaff {
		t.Fatalf("identity role = %s, want staff", identity.Role)
	}
	if identity.RestaurantID == nil || *identity.RestaurantID != rid {
		t.Fatalf("identity restaurant scope missing")
	}

	if err := svc.Logout(ctx, result.RawToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.Authenticate(ctx, result.RawToken); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("expected invalid session after logout, got %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newService(t, "auth_bad_creds")
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, domain.CreateUserRequest{
		Email:    "owner@example.com",
		Password: "super-secret-1",
		Role:     domain.RoleSuperadmin,
	}); err != nil {
		t.Fatalf("create user: %v", err)
	}

	_, err := svc.Login(ctx, domain.LoginRequest{Email: "owner@example.com", Password: "wrong"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "nobody@example.com", Password: "super-secret-1"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown user, got %v", err)
	}
}

func TestCreateUserValidation(t *testing.T) {
	svc := newService(t, "auth_validation")
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, domain.CreateUserRequest{
		Email:    "short@example.com",
		Password: "tiny",
		Role:     domain.RoleSuperadmin,
	}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected short password rejection, got %v", err)
	}

	if _, err := svc.CreateUser(ctx, domain.CreateUserRequest{
		Email:    "staff@example.com",
		Password: "long-enough-1",
		Role:     domain.RoleStaff,
	}); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected staff without restaurant rejection, got %v", err)
	}

	if _, err := svc.CreateUser(ctx, domain.CreateUserRequest{
		Email:    "dup@example.com",
		Password: "long-enough-1",
		Role:     domain.RoleSuperadmin,
	}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := svc.CreateUser(ctx, domain.CreateUserRequest{
		Email:    "dup@example.com",
		Password: "long-enough-2",
		Role:     domain.RoleSuperadmin,
	}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected duplicate email rejection, got %v", err)
	}
}

func TestAuthenticateRejectsGarbageTokens(t *testing.T) {
	svc := newService(t, "auth_garbage")

	if _, err := svc.Authenticate(context.Background(), ""); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("expected invalid session for empty token, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "not-a-real-token"); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("expected invalid session for unknown token, got %v", err)
	}
}
