// Package api implements the HTTP client for the bloglist server API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/junowong/bloglist/internal/models"
)

var (
	// ErrUnauthorized is returned for 401 responses (bad credentials or
	// missing/expired token).
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalid is returned for 400 responses (rejected request body).
	ErrInvalid = errors.New("invalid request")
	// ErrForbidden is returned for 403 responses.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("not found")
)

const (
	apiLogin = "/api/login"
	apiBlogs = "/api/blogs"
)

// Client talks to the bloglist server. Once a token is set via SetToken it
// is attached as a bearer credential to every subsequent request.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
}

// New creates a Client for the server at baseURL. hc may be nil, in which
// case http.DefaultClient is used.
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{http: hc, baseURL: baseURL}
}

// SetToken attaches the bearer token to all subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// ClearToken drops the bearer token.
func (c *Client) ClearToken() {
	c.token = ""
}

// do issues a JSON request and decodes the response body into out (when out
// is non-nil). Non-2xx statuses are mapped to the package's sentinel errors.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusBadRequest:
		return ErrInvalid
	case resp.StatusCode == http.StatusForbidden:
		return ErrForbidden
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 300:
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Login exchanges credentials for a session.
// Returns ErrUnauthorized when the credentials do not match.
func (c *Client) Login(ctx context.Context, username, password string) (*models.Session, error) {
	var sess models.Session
	err := c.do(ctx, http.MethodPost, apiLogin, map[string]string{
		"username": username,
		"password": password,
	}, &sess)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// ListAll fetches the full post list.
func (c *Client) ListAll(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := c.do(ctx, http.MethodGet, apiBlogs, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Create submits a draft and returns the stored post.
// Returns ErrInvalid when the server rejects the draft.
func (c *Client) Create(ctx context.Context, draft models.Draft) (*models.Post, error) {
	var post models.Post
	if err := c.do(ctx, http.MethodPost, apiBlogs, draft, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Like asks the server to increment the post's like counter and returns the
// updated copy carrying the authoritative count.
func (c *Client) Like(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := c.do(ctx, http.MethodPost, apiBlogs+"/"+id+"/like", nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete removes the post. Returns ErrForbidden when the caller does not
// own it.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, apiBlogs+"/"+id, nil, nil)
}
