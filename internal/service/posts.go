package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/junowong/bloglist/internal/models"
)

var (
	// ErrMissingContent is returned by CreatePost when a required draft
	// field is empty.
	ErrMissingContent = errors.New("missing content")
	// ErrPostNotFound is returned when the referenced post does not exist.
	ErrPostNotFound = errors.New("post not found")
	// ErrNotOwner is returned by DeletePost when the acting user does not
	// own the post.
	ErrNotOwner = errors.New("not the post owner")
)

// PostRepository defines the persistence operations required by the
// post service.
type PostRepository interface {
	ListAll(ctx context.Context) ([]models.Post, error)
	Create(ctx context.Context, p models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	IncrementLikes(ctx context.Context, id string) (*models.Post, error)
	Delete(ctx context.Context, id string) error
}

// PostService implements post listing, creation, liking, and deletion by
// delegating to a PostRepository.
type PostService struct {
	repo PostRepository
}

// NewPostService constructs a new PostService using the provided repository.
func NewPostService(repo PostRepository) *PostService {
	return &PostService{repo: repo}
}

// List returns every stored post in insertion order.
func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	return s.repo.ListAll(ctx)
}

// CreatePost validates the draft and stores it as a new post owned by the
// given user, with a fresh ID and zero likes.
// Returns ErrMissingContent when the title or url is empty.
func (s *PostService) CreatePost(ctx context.Context, owner string, draft models.Draft) (*models.Post, error) {
	if draft.Title == "" || draft.URL == "" {
		return nil, ErrMissingContent
	}

	p := models.Post{
		ID:     uuid.NewString(),
		Title:  draft.Title,
		Author: draft.Author,
		URL:    draft.URL,
		Likes:  0,
		Owner:  owner,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return &p, nil
}

// LikePost increments the like counter of the post and returns the updated
// copy. The count comes back from the store, so the caller always sees the
// authoritative value. Returns ErrPostNotFound for an unknown ID.
func (s *PostService) LikePost(ctx context.Context, id string) (*models.Post, error) {
	p, err := s.repo.IncrementLikes(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("like post: %w", err)
	}
	return p, nil
}

// DeletePost removes the post if the acting user owns it.
// Returns ErrPostNotFound for an unknown ID and ErrNotOwner when the
// post belongs to someone else.
func (s *PostService) DeletePost(ctx context.Context, username, id string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPostNotFound
		}
		return fmt.Errorf("lookup post: %w", err)
	}
	if p.Owner != username {
		return ErrNotOwner
	}
	return s.repo.Delete(ctx, id)
}
