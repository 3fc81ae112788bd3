package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/quillpost/quillpost-go/internal/crypto"
	"github.com/quillpost/quillpost-go/internal/model"
	"github.com/quillpost/quillpost-go/internal/repository"
)

// AuthService handles registration, login and session resolution.
type AuthService struct {
	repo       *repository.UserRepository
	jwtSecret  string
	jwtExpiry  time.Duration
	hashParams crypto.HashParams
}

// AuthOption customizes an AuthService.
type AuthOption func(*AuthService)

// WithHashParams overrides the PBKDF2 parameters used for new passwords.
func WithHashParams(p crypto.HashParams) AuthOption {
	return func(s *AuthService) { s.hashParams = p }
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *repository.UserRepository, secret string, expiry time.Duration, opts ...AuthOption) *AuthService {
	s := &AuthService{
		repo:       repo,
		jwtSecret:  secret,
		jwtExpiry:  expiry,
		hashParams: crypto.DefaultHashParams(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a new user account and returns a session bound to it.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.Session, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(req); err != nil {
		return model.Session{}, err
	}

	hash, err := crypto.HashPasswordWithParams(req.Password, s.hashParams)
	if err != nil {
		return model.Session{}, err
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.Session{}, ErrDuplicateEmail
		}
		return model.Session{}, err
	}

	slog.Info("user registered", "user_id", user.ID)
	return s.newSession(user)
}

// Login authenticates a user and returns a session bound to them.
// Unknown emails and wrong passwords are reported separately.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.Session, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validateStruct(req); err != nil {
		return model.Session{}, err
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.Session{}, ErrUserNotFound
		}
		return model.Session{}, err
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return model.Session{}, err
	}
	if !match {
		return model.Session{}, ErrInvalidPassword
	}

	return s.newSession(user)
}

// Identify resolves a session token to the identity it binds. Missing,
// forged or expired tokens and tokens for unknown users yield Anonymous.
func (s *AuthService) Identify(ctx context.Context, token string) model.Identity {
	if token == "" {
		return model.Anonymous
	}

	claims, err := crypto.ValidateToken(token, s.jwtSecret)
	if err != nil {
		return model.Anonymous
	}

	user, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			slog.Warn("resolving session user failed", "user_id", claims.UserID, "error", err)
		}
		return model.Anonymous
	}

	return identityOf(user)
}

// SessionTTL is how long issued session tokens stay valid.
func (s *AuthService) SessionTTL() time.Duration {
	return s.jwtExpiry
}

func (s *AuthService) newSession(user *model.User) (model.Session, error) {
	token, err := crypto.GenerateToken(user.ID, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.Session{}, err
	}
	return model.Session{Token: token, Identity: identityOf(user)}, nil
}

func identityOf(user *model.User) model.Identity {
	return model.Identity{UserID: user.ID, Email: user.Email, Name: user.Name}
}
