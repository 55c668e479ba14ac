package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/junowong/bloglist/internal/models"
)

// PostgresPostRepository implements post storage operations against a
// PostgreSQL database.
type PostgresPostRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository using the
// provided *sql.DB. db must be a valid connection to a PostgreSQL instance.
func NewPostgresPostRepository(db *sql.DB) *PostgresPostRepository {
	return &PostgresPostRepository{DB: db}
}

// ListAll fetches every post in insertion order.
//
//	ctx: context for cancellation and deadlines
//
// Returns a slice of models.Post or an error if the query or scanning fails.
func (s *PostgresPostRepository) ListAll(ctx context.Context) ([]models.Post, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, title, author, url, likes, owner FROM posts
	`)
	if err != nil {
		return nil, fmt.Errorf("ListAll: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Author, &p.URL, &p.Likes, &p.Owner); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// Create inserts a new post row.
func (s *PostgresPostRepository) Create(ctx context.Context, p models.Post) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO posts (id, title, author, url, likes, owner)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, p.ID, p.Title, p.Author, p.URL, p.Likes, p.Owner)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

// GetByID retrieves a single post by ID.
// Returns sql.ErrNoRows when the post does not exist.
func (s *PostgresPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var p models.Post
	err := s.DB.QueryRowContext(ctx, `
		SELECT id, title, author, url, likes, owner FROM posts WHERE id = $1
	`, id).Scan(&p.ID, &p.Title, &p.Author, &p.URL, &p.Likes, &p.Owner)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// IncrementLikes atomically bumps the like counter of a post and returns the
// updated row. The increment happens in the database so concurrent likes from
// different clients never overwrite each other.
// Returns sql.ErrNoRows when the post does not exist.
func (s *PostgresPostRepository) IncrementLikes(ctx context.Context, id string) (*models.Post, error) {
	var p models.Post
	err := s.DB.QueryRowContext(ctx, `
		UPDATE posts SET likes = likes + 1 WHERE id = $1
		RETURNING id, title, author, url, likes, owner
	`, id).Scan(&p.ID, &p.Title, &p.Author, &p.URL, &p.Likes, &p.Owner)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes a post row by ID.
func (s *PostgresPostRepository) Delete(ctx context.Context, id string) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	return err
}
