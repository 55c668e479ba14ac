// Package app wires the client stores to the server API. Each handler
// translates one user intent into API calls and store updates; failures are
// converted to notifications at the handler boundary and never escape to
// the renderer.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/junowong/bloglist/internal/client/api"
	"github.com/junowong/bloglist/internal/client/state"
	"github.com/junowong/bloglist/internal/models"
)

// genericErrorContent is shown for failures with no dedicated message.
const genericErrorContent = "some error happened..."

// API is the server collaborator consumed by the action handlers.
type API interface {
	SetToken(token string)
	ClearToken()
	Login(ctx context.Context, username, password string) (*models.Session, error)
	ListAll(ctx context.Context) ([]models.Post, error)
	Create(ctx context.Context, draft models.Draft) (*models.Post, error)
	Like(ctx context.Context, id string) (*models.Post, error)
	Delete(ctx context.Context, id string) error
}

// Confirmer asks the user a yes/no question before destructive actions.
type Confirmer interface {
	Confirm(message string) bool
}

// App owns the three client stores and dispatches user intents against the
// server. The renderer reads the stores; only App mutates them.
type App struct {
	api     API
	confirm Confirmer
	log     *zap.Logger

	// Session holds the authenticated identity, if any.
	Session *state.SessionStore
	// Posts mirrors the server's post list.
	Posts *state.Collection
	// Notices holds the transient user-facing message.
	Notices *state.Notifier
}

// New constructs an App. store backs session persistence, notificationTTL
// controls how long messages stay visible (zero selects the default), and
// logger may be zap.NewNop() for a silent client.
func New(apiClient API, confirm Confirmer, store state.Storage, notificationTTL time.Duration, logger *zap.Logger) *App {
	return &App{
		api:     apiClient,
		confirm: confirm,
		log:     logger,
		Session: state.NewSessionStore(store),
		Posts:   state.NewCollection(),
		Notices: state.NewNotifier(notificationTTL),
	}
}

// Restore brings back a persisted session at startup, attaching its token
// to the API client. Absence or a corrupt blob leaves the app logged out
// without surfacing anything to the user.
func (a *App) Restore() {
	sess := a.Session.Restore()
	if sess == nil {
		return
	}
	a.api.SetToken(sess.Token)
	a.log.Debug("session restored", zap.String("username", sess.Username))
}

// LoadPosts fetches the full post list and replaces the collection
// wholesale.
func (a *App) LoadPosts(ctx context.Context) {
	posts, err := a.api.ListAll(ctx)
	if err != nil {
		a.log.Warn("load posts failed", zap.Error(err))
		a.Notices.Set(genericErrorContent, state.SeverityError)
		return
	}
	a.Posts.ReplaceAll(posts)
}

// Login exchanges credentials for a session. On success the session is
// persisted, the token attached to the API client, and any stale
// notification cleared. Wrong credentials produce a timed "Wrong
// credentials" notification and leave the app logged out.
func (a *App) Login(ctx context.Context, username, password string) {
	sess, err := a.api.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			a.Notices.Set("Wrong credentials", state.SeverityError)
		} else {
			a.log.Warn("login failed", zap.Error(err))
			a.Notices.Set(genericErrorContent, state.SeverityError)
		}
		return
	}

	if err := a.Session.Set(*sess); err != nil {
		a.log.Warn("persisting session failed", zap.Error(err))
	}
	a.api.SetToken(sess.Token)
	a.Notices.Clear()
}

// Logout clears the session locally. No server call is made; the token
// simply stops being used.
func (a *App) Logout() {
	if err := a.Session.Clear(); err != nil {
		a.log.Warn("clearing persisted session failed", zap.Error(err))
	}
	a.api.ClearToken()
}

// CreatePost submits a draft. On success the post is appended to the
// collection and a success notification names the title and author. A
// rejected draft produces a "Missing Content" notification and leaves the
// collection unchanged.
func (a *App) CreatePost(ctx context.Context, draft models.Draft) {
	post, err := a.api.Create(ctx, draft)
	if err != nil {
		if errors.Is(err, api.ErrInvalid) {
			a.Notices.Set("Missing Content", state.SeverityError)
		} else {
			a.log.Warn("create post failed", zap.Error(err))
			a.Notices.Set(genericErrorContent, state.SeverityError)
		}
		return
	}

	a.Posts.Add(*post)
	a.Notices.Set(
		fmt.Sprintf("a new blog %s by %s added", post.Title, post.Author),
		state.SeverityInfo,
	)
}

// LikePost asks the server to bump the like counter and replaces the local
// entry with the returned copy, so the count is always the server's. An ID
// not present locally is ignored.
func (a *App) LikePost(ctx context.Context, id string) {
	if a.Posts.Get(id) == nil {
		return
	}

	post, err := a.api.Like(ctx, id)
	if err != nil {
		a.log.Warn("like post failed", zap.Error(err))
		a.Notices.Set(genericErrorContent, state.SeverityError)
		return
	}
	a.Posts.Replace(*post)
}

// DeletePost removes a post after the user confirms. Declining leaves the
// collection unchanged. Ownership is gated at render time (CanDelete); the
// server rejects anything that slips past with 403.
func (a *App) DeletePost(ctx context.Context, id string) {
	post := a.Posts.Get(id)
	if post == nil {
		return
	}

	msg := fmt.Sprintf("Remove blog %s by %s?", post.Title, post.Author)
	if !a.confirm.Confirm(msg) {
		return
	}

	if err := a.api.Delete(ctx, id); err != nil {
		a.log.Warn("delete post failed", zap.Error(err))
		a.Notices.Set(genericErrorContent, state.SeverityError)
		return
	}
	a.Posts.Remove(id)
}

// Visible is the render projection of the collection: posts sorted by
// likes descending.
func (a *App) Visible() []models.Post {
	return a.Posts.SortedByLikes()
}

// CanDelete reports whether the delete control should be shown for the
// post: only to a logged-in user who owns it.
func (a *App) CanDelete(p models.Post) bool {
	sess := a.Session.Current()
	return sess != nil && sess.Username == p.Owner
}
