// Package http provides HTTP handlers for user authentication and
// post management.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/junowong/bloglist/internal/models"
	"github.com/junowong/bloglist/internal/service"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Register creates a new user with the given credentials.
	Register(ctx context.Context, username, password string) error
	// Login verifies credentials and issues a session token.
	Login(ctx context.Context, username, password string) (*models.Session, error)
}

// AuthHandler handles HTTP requests for user registration and login.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
}

// CredentialsRequest represents the JSON payload for registration and login.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles user registration requests.
// It expects a JSON body with non-empty "username" and "password" fields.
// On success it responds with 201 and the created username.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := h.AuthService.Register(r.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, service.ErrUserExists) {
			http.Error(w, "user already exists", http.StatusConflict)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"username": req.Username,
	})
}

// Login handles login requests.
// It expects a JSON body with "username" and "password" fields and
// responds with the username and a bearer token on success, or 401
// when the credentials do not match.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	sess, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			http.Error(w, "invalid username or password", http.StatusUnauthorized)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(sess)
}
