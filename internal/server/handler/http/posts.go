// Package http provides HTTP handlers for post management.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/junowong/bloglist/internal/middleware"
	"github.com/junowong/bloglist/internal/models"
	"github.com/junowong/bloglist/internal/service"
)

// PostService defines the interface for post operations required by the
// PostHandler.
type PostService interface {
	// List returns every stored post.
	List(ctx context.Context) ([]models.Post, error)
	// CreatePost stores a validated draft as a new post owned by the user.
	CreatePost(ctx context.Context, owner string, draft models.Draft) (*models.Post, error)
	// LikePost increments the like counter and returns the updated post.
	LikePost(ctx context.Context, id string) (*models.Post, error)
	// DeletePost removes the post if the user owns it.
	DeletePost(ctx context.Context, username, id string) error
}

// PostHandler handles HTTP requests for listing, creating, liking, and
// deleting posts.
type PostHandler struct {
	PostService PostService
}

// List handles GET /api/blogs requests.
// It responds with the full post list as a JSON array.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.List(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(posts)
}

// Create handles POST /api/blogs requests.
// The owner is the authenticated user from the request context. It responds
// with 400 when a required draft field is missing and 201 with the created
// post otherwise.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsernameFromContext(r.Context())

	var draft models.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), username, draft)
	if err != nil {
		if errors.Is(err, service.ErrMissingContent) {
			http.Error(w, "missing content", http.StatusBadRequest)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(post)
}

// Like handles POST /api/blogs/{id}/like requests.
// The increment happens server-side, so the returned post carries the
// authoritative count. Responds 404 for an unknown post.
func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	post, err := h.PostService.LikePost(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			http.Error(w, "post not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(post)
}

// Delete handles DELETE /api/blogs/{id} requests.
// Only the post's owner may delete it; anyone else gets 403.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsernameFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.PostService.DeletePost(r.Context(), username, id); err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			http.Error(w, "post not found", http.StatusNotFound)
		case errors.Is(err, service.ErrNotOwner):
			http.Error(w, "forbidden", http.StatusForbidden)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
