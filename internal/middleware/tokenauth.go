// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const userKey ctxKey = "user"

// TokenValidator resolves a bearer token to the username it was issued to.
type TokenValidator interface {
	UserForToken(ctx context.Context, token string) (string, error)
}

// TokenAuth is a middleware that enforces bearer-token authentication.
//
// It extracts the token from the Authorization header ("Bearer <token>"),
// resolves it through the validator, and stores the resulting username in
// the request context so it can be used downstream as the authenticated
// user ID. Requests without a valid token are rejected with 401.
func TokenAuth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			username, err := validator.UserForToken(r.Context(), token)
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUsernameFromContext extracts the authenticated username from the
// request context. Returns an empty string if not found.
func GetUsernameFromContext(ctx context.Context) string {
	val := ctx.Value(userKey)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
