// Package repository provides persistence implementations for authentication
// and post storage using a PostgreSQL database.
package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresAuthRepository implements user and session persistence using a
// PostgreSQL database.
type PostgresAuthRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresAuthRepository creates a new PostgresAuthRepository with the given
// database connection. db must be a valid *sql.DB connected to a PostgreSQL
// instance.
func NewPostgresAuthRepository(db *sql.DB) *PostgresAuthRepository {
	return &PostgresAuthRepository{DB: db}
}

// UserExists checks whether a user with the specified username exists in the
// database. It returns true if the user exists, false otherwise.
// If an error occurs during the query, it is returned.
func (s *PostgresAuthRepository) UserExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := s.DB.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`,
		username,
	).Scan(&exists)
	return exists, err
}

// CreateUser stores a new user with the given bcrypt password hash.
// If a user with the same username already exists, the ON CONFLICT DO NOTHING
// clause prevents an error. Returns any error encountered while executing the
// insertion.
func (s *PostgresAuthRepository) CreateUser(ctx context.Context, username string, passwordHash []byte) error {
	_, err := s.DB.ExecContext(
		ctx,
		`INSERT INTO users (username, password_hash) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		username, passwordHash,
	)
	return err
}

// PasswordHash retrieves the stored bcrypt hash for the given username.
// Returns sql.ErrNoRows if the user does not exist.
func (s *PostgresAuthRepository) PasswordHash(ctx context.Context, username string) ([]byte, error) {
	var hash []byte
	err := s.DB.QueryRowContext(
		ctx,
		`SELECT password_hash FROM users WHERE username = $1`,
		username,
	).Scan(&hash)
	if err != nil {
		return nil, err
	}
	return hash, nil
}

// SaveSession stores an issued bearer token with its owner and expiry.
//
//	ctx:       context for cancellation and deadlines
//	token:     the opaque bearer token
//	username:  the authenticated user the token belongs to
//	expiresAt: unix timestamp after which the token is invalid
func (s *PostgresAuthRepository) SaveSession(ctx context.Context, token, username string, expiresAt int64) error {
	_, err := s.DB.ExecContext(
		ctx,
		`INSERT INTO sessions (token, username, expires_at) VALUES ($1, $2, $3)`,
		token, username, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("SaveSession: %w", err)
	}
	return nil
}

// SessionUser resolves a bearer token to its username, ignoring expired
// tokens. Returns sql.ErrNoRows when the token is unknown or expired.
func (s *PostgresAuthRepository) SessionUser(ctx context.Context, token string, now int64) (string, error) {
	var username string
	err := s.DB.QueryRowContext(
		ctx,
		`SELECT username FROM sessions WHERE token = $1 AND expires_at >= $2`,
		token, now,
	).Scan(&username)
	if err != nil {
		return "", err
	}
	return username, nil
}
