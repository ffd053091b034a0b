package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/mail"
	"strings"
	"time"

	"github.com/abhayvishwakarma1111/bitezyqr/internal/auth/domain"
	"github.com/abhayvishwakarma1111/bitezyqr/internal/auth/password"
	"github.com/abhayvishwakarma1111/bitezyqr/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	sessionTokenBytes = 32
	sessionTTL        = 7 * 24 * time.Hour

	minPasswordLength = 8
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("auth.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) CreateUser(ctx context.Context, req domain.CreateUserRequest) (domain.User, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	if len(strings.TrimSpace(req.Password)) < minPasswordLength {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	if !req.Role.Valid() {
		return domain.User{}, domain.ErrInvalidRole
	}
	if req.Role == domain.RoleStaff && req.RestaurantID == nil {
		return domain.User{}, domain.ErrInvalidRole
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = defaultDisplayName(email)
	}

	user := domain.User{
		ID:           s.genID.Generate(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hashed,
		Role:         req.Role,
		RestaurantID: req.RestaurantID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.InsertUser(ctx, s.db, &user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.User{}, domain.ErrUserExists
		}
		return domain.User{}, err
	}

	return user, nil
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindUserByEmail(ctx, s.db, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !password.Verify(req.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	rawToken, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := domain.Session{
		ID:           s.genID.Generate(),
		UserID:       user.ID,
		TokenHash:    hashToken(rawToken),
		Role:         user.Role,
		RestaurantID: user.RestaurantID,
		ExpiresAt:    now.Add(sessionTTL),
		LastSeenAt:   &now,
		CreatedAt:    now,
	}
	if err := s.repo.InsertSession(ctx, s.db, &session); err != nil {
		return nil, err
	}

	s.log.Info("user logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	return &domain.LoginResult{
		User:      *user,
		RawToken:  rawToken,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *Service) Logout(ctx context.Context, rawToken string) error {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return domain.ErrInvalidSession
	}

	session, err := s.repo.FindSessionByTokenHash(ctx, s.db, hashToken(token))
	if err != nil {
		return err
	}
	if session == nil {
		return domain.ErrInvalidSession
	}

	return s.repo.RevokeSession(ctx, s.db, session.ID, time.Now().UTC())
}

func (s *Service) Authenticate(ctx context.Context, rawToken string) (domain.Identity, error) {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return domain.Identity{}, domain.ErrInvalidSession
	}

	session, err := s.repo.FindSessionByTokenHash(ctx, s.db, hashToken(token))
	if err != nil {
		return domain.Identity{}, err
	}
	if session == nil || session.RevokedAt != nil {
		return domain.Identity{}, domain.ErrInvalidSession
	}

	now := time.Now().UTC()
	if now.After(session.ExpiresAt) {
		return domain.Identity{}, domain.ErrSessionExpired
	}

	user, err := s.repo.FindUserByID(ctx, s.db, session.UserID)
	if err != nil {
		return domain.Identity{}, err
	}
	if user == nil {
		return domain.Identity{}, domain.ErrInvalidSession
	}

	if err := s.repo.TouchSession(ctx, s.db, session.ID, now); err != nil {
		s.log.Warn("touch session failed", zap.Error(err))
	}

	return domain.Identity{
		UserID:       user.ID,
		Email:        user.Email,
		DisplayName:  user.DisplayName,
		Role:         session.Role,
		RestaurantID: session.RestaurantID,
		SessionID:    session.ID,
	}, nil
}

func normalizeEmail(value string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(value))
	if email == "" {
		return "", domain.ErrInvalidCredentials
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", domain.ErrInvalidCredentials
	}
	return email, nil
}

func defaultDisplayName(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return email
	}
	return email[:at]
}

func newSessionToken() (string, error) {
	raw := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
