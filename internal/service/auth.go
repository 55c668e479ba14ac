// Package service provides the business logic for authentication and post
// management, delegating persistence to repository interfaces.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/junowong/bloglist/internal/models"
)

var (
	// ErrInvalidCredentials is returned by Login when the username is
	// unknown or the password does not match.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUserExists is returned by Register for a taken username.
	ErrUserExists = errors.New("user already exists")
)

// AuthRepository defines the persistence operations required by the
// authentication service.
type AuthRepository interface {
	// UserExists returns true if a user with the given username exists.
	UserExists(ctx context.Context, username string) (bool, error)
	// CreateUser stores a new user with the given password hash.
	CreateUser(ctx context.Context, username string, passwordHash []byte) error
	// PasswordHash returns the stored hash for the user, or sql.ErrNoRows.
	PasswordHash(ctx context.Context, username string) ([]byte, error)
	// SaveSession stores an issued token with its owner and expiry.
	SaveSession(ctx context.Context, token, username string, expiresAt int64) error
	// SessionUser resolves a token to a username, or sql.ErrNoRows.
	SessionUser(ctx context.Context, token string, now int64) (string, error)
}

// AuthService implements registration, login, and token resolution by
// delegating to an AuthRepository.
type AuthService struct {
	repo AuthRepository
	// sessionTTL is how long issued tokens stay valid.
	sessionTTL time.Duration
}

// NewAuthService constructs a new AuthService using the provided repository
// and token lifetime.
func NewAuthService(repo AuthRepository, sessionTTL time.Duration) *AuthService {
	return &AuthService{repo: repo, sessionTTL: sessionTTL}
}

// Register creates a new user with a bcrypt-hashed password.
// Returns ErrUserExists if the username is already taken.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	exists, err := s.repo.UserExists(ctx, username)
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if exists {
		return ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.CreateUser(ctx, username, hash)
}

// Login verifies the credentials and, on success, issues a fresh opaque
// bearer token valid for the configured session lifetime.
// Returns ErrInvalidCredentials when the username is unknown or the
// password does not match.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.Session, error) {
	hash, err := s.repo.PasswordHash(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token := uuid.NewString()
	expiresAt := time.Now().Add(s.sessionTTL).Unix()
	if err := s.repo.SaveSession(ctx, token, username, expiresAt); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	return &models.Session{Username: username, Token: token}, nil
}

// UserForToken resolves a bearer token to the username it was issued to.
// Returns ErrInvalidCredentials for unknown or expired tokens.
func (s *AuthService) UserForToken(ctx context.Context, token string) (string, error) {
	username, err := s.repo.SessionUser(ctx, token, time.Now().Unix())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup token: %w", err)
	}
	return username, nil
}
