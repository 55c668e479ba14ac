// Package http provides HTTP routing and middleware configuration
// for the bloglist service.
package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/junowong/bloglist/internal/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the bloglist
// API. It applies JSON content-type enforcement and request logging, and
// mounts the auth and post endpoints under /api. Post creation and deletion
// require a valid bearer token.
//
// Routes:
//
//	POST   /api/users           → authHandler.Register
//	POST   /api/login           → authHandler.Login
//	GET    /api/blogs           → postHandler.List
//	POST   /api/blogs/{id}/like → postHandler.Like
//	POST   /api/blogs           → postHandler.Create (token required)
//	DELETE /api/blogs/{id}      → postHandler.Delete (token required)
func NewRouter(
	authHandler *AuthHandler,
	postHandler *PostHandler,
	validator middleware.TokenValidator,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	// Mount API routes
	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/users", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Get("/blogs", postHandler.List)
		r.Post("/blogs/{id}/like", postHandler.Like)

		// Protected group: requires valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(middleware.TokenAuth(validator))
			r.Post("/blogs", postHandler.Create)
			r.Delete("/blogs/{id}", postHandler.Delete)
		})
	})

	return r
}
