package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/junowong/bloglist/internal/client/api"
	"github.com/junowong/bloglist/internal/client/state"
	"github.com/junowong/bloglist/internal/models"
)

// fakeAPI simulates the server: it holds accounts and posts in memory and
// honors the bearer token contract.
type fakeAPI struct {
	accounts map[string]string // username -> password
	posts    []models.Post
	token    string
	sessions map[string]string // token -> username
	nextID   int

	loginErr error
	listErr  error
	likeErr  error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		accounts: map[string]string{},
		sessions: map[string]string{},
	}
}

func (f *fakeAPI) SetToken(token string) { f.token = token }
func (f *fakeAPI) ClearToken()           { f.token = "" }

func (f *fakeAPI) Login(ctx context.Context, username, password string) (*models.Session, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	if pw, ok := f.accounts[username]; !ok || pw != password {
		return nil, api.ErrUnauthorized
	}
	token := fmt.Sprintf("tok-%s", username)
	f.sessions[token] = username
	return &models.Session{Username: username, Token: token}, nil
}

func (f *fakeAPI) ListAll(ctx context.Context) ([]models.Post, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Post(nil), f.posts...), nil
}

func (f *fakeAPI) Create(ctx context.Context, draft models.Draft) (*models.Post, error) {
	username, ok := f.sessions[f.token]
	if !ok {
		return nil, api.ErrUnauthorized
	}
	if draft.Title == "" || draft.URL == "" {
		return nil, api.ErrInvalid
	}
	f.nextID++
	p := models.Post{
		ID:     fmt.Sprintf("p%d", f.nextID),
		Title:  draft.Title,
		Author: draft.Author,
		URL:    draft.URL,
		Likes:  0,
		Owner:  username,
	}
	f.posts = append(f.posts, p)
	return &p, nil
}

func (f *fakeAPI) Like(ctx context.Context, id string) (*models.Post, error) {
	if f.likeErr != nil {
		return nil, f.likeErr
	}
	for i := range f.posts {
		if f.posts[i].ID == id {
			f.posts[i].Likes++
			p := f.posts[i]
			return &p, nil
		}
	}
	return nil, api.ErrNotFound
}

func (f *fakeAPI) Delete(ctx context.Context, id string) error {
	username, ok := f.sessions[f.token]
	if !ok {
		return api.ErrUnauthorized
	}
	for i := range f.posts {
		if f.posts[i].ID == id {
			if f.posts[i].Owner != username {
				return api.ErrForbidden
			}
			f.posts = append(f.posts[:i], f.posts[i+1:]...)
			return nil
		}
	}
	return api.ErrNotFound
}

// fakeConfirmer answers every confirmation with a fixed verdict.
type fakeConfirmer struct {
	answer bool
	asked  []string
}

func (f *fakeConfirmer) Confirm(message string) bool {
	f.asked = append(f.asked, message)
	return f.answer
}

func newTestApp(t *testing.T, server *fakeAPI, confirm *fakeConfirmer) *App {
	t.Helper()
	store := state.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	return New(server, confirm, store, 50*time.Millisecond, zap.NewNop())
}

func TestLogin_Valid(t *testing.T) {
	server := newFakeAPI()
	server.accounts["Juno Wong"] = "123123123"
	a := newTestApp(t, server, &fakeConfirmer{})

	a.Login(context.Background(), "Juno Wong", "123123123")

	sess := a.Session.Current()
	require.NotNil(t, sess)
	assert.Equal(t, "Juno Wong", sess.Username)
	assert.Equal(t, sess.Token, server.token, "token must be attached for subsequent calls")
	assert.Nil(t, a.Notices.Current())
}

func TestLogin_PersistsSession(t *testing.T) {
	server := newFakeAPI()
	server.accounts["Juno Wong"] = "123123123"
	store := state.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	a := New(server, &fakeConfirmer{}, store, 0, zap.NewNop())

	a.Login(context.Background(), "Juno Wong", "123123123")
	token := a.Session.Current().Token

	// A fresh App over the same storage simulates a reload.
	server.token = ""
	restarted := New(server, &fakeConfirmer{}, store, 0, zap.NewNop())
	restarted.Restore()

	sess := restarted.Session.Current()
	require.NotNil(t, sess)
	assert.Equal(t, "Juno Wong", sess.Username)
	assert.Equal(t, token, server.token, "restored token must be propagated to the API client")
}

func TestLogin_WrongCredentials(t *testing.T) {
	server := newFakeAPI()
	server.accounts["Juno Wong"] = "123123123"
	a := newTestApp(t, server, &fakeConfirmer{})

	a.Login(context.Background(), "Juno Wong", "wrong")

	assert.Nil(t, a.Session.Current())
	notice := a.Notices.Current()
	require.NotNil(t, notice)
	assert.Contains(t, notice.Content, "Wrong credentials")
	assert.Equal(t, state.SeverityError, notice.Severity)

	// The notification clears on its own.
	time.Sleep(150 * time.Millisecond)
	assert.Nil(t, a.Notices.Current())
}

func TestLogin_TransportFailure(t *testing.T) {
	server := newFakeAPI()
	server.loginErr = errors.New("connection refused")
	a := newTestApp(t, server, &fakeConfirmer{})

	a.Login(context.Background(), "Juno Wong", "123123123")

	assert.Nil(t, a.Session.Current())
	notice := a.Notices.Current()
	require.NotNil(t, notice)
	assert.Equal(t, state.SeverityError, notice.Severity)
}

func TestLogout(t *testing.T) {
	server := newFakeAPI()
	server.accounts["Juno Wong"] = "123123123"
	a := newTestApp(t, server, &fakeConfirmer{})

	a.Login(context.Background(), "Juno Wong", "123123123")
	a.Logout()

	assert.Nil(t, a.Session.Current())
	assert.Empty(t, server.token)
}

func TestLoadPosts(t *testing.T) {
	server := newFakeAPI()
	server.posts = []models.Post{
		{ID: "p1", Title: "Blog 1"},
		{ID: "p2", Title: "Blog 2"},
	}
	a := newTestApp(t, server, &fakeConfirmer{})

	a.LoadPosts(context.Background())

	assert.Len(t, a.Posts.All(), 2)
}

func TestLoadPosts_Failure(t *testing.T) {
	server := newFakeAPI()
	server.listErr = errors.New("connection refused")
	a := newTestApp(t, server, &fakeConfirmer{})

	a.LoadPosts(context.Background())

	assert.Empty(t, a.Posts.All())
	require.NotNil(t, a.Notices.Current())
}

func TestCreatePost_Valid(t *testing.T) {
	server := newFakeAPI()
	server.accounts["Juno Wong"] = "123123123"
	a := newTestApp(t, server, &fakeConfirmer{})
	a.Login(context.Background(), "Juno Wong", "123123123")

	a.CreatePost(context.Background(), models.Draft{
		Title: "Blog 1", Author: "Billie", URL: "www.billie.com",
	})

	posts := a.Posts.All()
	require.Len(t, posts, 1)
	assert.Equal(t, "Blog 1", posts[0].Title)
	assert.Equal(t, "Billie", posts[0].Author)
	assert.Equal(t, "www.billie.com", posts[0].URL)
	assert.Equal(t, 0, posts[0].Likes)

	notice := a.Notices.Current()
	require.NotNil(t, notice)
	assert.Equal(t, "a new blog Blog 1 by Billie added", notice.Content)
	assert.Equal(t, state.SeverityInfo, notice.Severity)
}

func TestCreatePost_MissingContent(t *testing.T) {
	server := newFakeAPI()
	server.accounts["Juno Wong"] = "123123123"
	a := newTestApp(t, server, &fakeConfirmer{})
	a.Login(context.Background(), "Juno Wong", "123123123")

	a.CreatePost(context.Background(), models.Draft{Author: "Billie"})

	assert.Empty(t, a.Posts.All(), "collection must be unchanged")
	notice := a.Notices.Current()
	require.NotNil(t, notice)
	assert.Contains(t, notice.Content, "Missing Content")
	assert.Equal(t, state.SeverityError, notice.Severity)
}

func TestLikePost_ReplacesWithServerCopy(t *testing.T) {
	server := newFakeAPI()
	server.posts = []models.Post{{ID: "p1", Title: "Blog 1", Likes: 4}}
	a := newTestApp(t, server, &fakeConfirmer{})
	a.LoadPosts(context.Background())

	a.LikePost(context.Background(), "p1")

	got := a.Posts.Get("p1")
	require.NotNil(t, got)
	assert.Equal(t, 5, got.Likes, "count comes from the server, not a local bump")
}

func TestLikePost_UnknownIDIgnored(t *testing.T) {
	server := newFakeAPI()
	server.likeErr = errors.New("should not be called")
	a := newTestApp(t, server, &fakeConfirmer{})

	a.LikePost(context.Background(), "ghost")

	assert.Nil(t, a.Notices.Current())
}

func TestDeletePost_Confirmed(t *testing.T) {
	server := newFakeAPI()
	server.accounts["Juno Wong"] = "123123123"
	confirm := &fakeConfirmer{answer: true}
	a := newTestApp(t, server, confirm)
	a.Login(context.Background(), "Juno Wong", "123123123")
	a.CreatePost(context.Background(), models.Draft{Title: "Blog 1", Author: "Billie", URL: "www.billie.com"})
	id := a.Posts.All()[0].ID

	a.DeletePost(context.Background(), id)

	assert.Empty(t, a.Posts.All())
	assert.Empty(t, server.posts)
	require.Len(t, confirm.asked, 1)
	assert.Contains(t, confirm.asked[0], "Blog 1")
}

func TestDeletePost_Declined(t *testing.T) {
	server := newFakeAPI()
	server.accounts["Juno Wong"] = "123123123"
	a := newTestApp(t, server, &fakeConfirmer{answer: false})
	a.Login(context.Background(), "Juno Wong", "123123123")
	a.CreatePost(context.Background(), models.Draft{Title: "Blog 1", Author: "Billie", URL: "www.billie.com"})
	id := a.Posts.All()[0].ID

	a.DeletePost(context.Background(), id)

	assert.Len(t, a.Posts.All(), 1, "declining must leave the collection unchanged")
	assert.Len(t, server.posts, 1)
}

func TestVisible_SortedByLikesDescending(t *testing.T) {
	server := newFakeAPI()
	for i, likes := range []int{5, 1, 9, 3} {
		server.posts = append(server.posts, models.Post{
			ID: fmt.Sprintf("p%d", i), Likes: likes,
		})
	}
	a := newTestApp(t, server, &fakeConfirmer{})
	a.LoadPosts(context.Background())

	var got []int
	for _, p := range a.Visible() {
		got = append(got, p.Likes)
	}
	assert.Equal(t, []int{9, 5, 3, 1}, got)
}

func TestScenario_LoginCreate(t *testing.T) {
	server := newFakeAPI()
	server.accounts["Juno Wong"] = "123123123"
	a := newTestApp(t, server, &fakeConfirmer{})

	a.Login(context.Background(), "Juno Wong", "123123123")
	a.CreatePost(context.Background(), models.Draft{
		Title: "Blog 1", Author: "Billie", URL: "www.billie.com",
	})

	posts := a.Posts.All()
	require.Len(t, posts, 1)
	assert.Equal(t, "Blog 1", posts[0].Title)
	assert.Equal(t, "Billie", posts[0].Author)
	assert.Equal(t, "www.billie.com", posts[0].URL)
	assert.Equal(t, 0, posts[0].Likes)
}

func TestScenario_LikedPostSortsFirst(t *testing.T) {
	server := newFakeAPI()
	server.accounts["Juno Wong"] = "123123123"
	a := newTestApp(t, server, &fakeConfirmer{})

	a.Login(context.Background(), "Juno Wong", "123123123")
	a.CreatePost(context.Background(), models.Draft{Title: "Blog 1", Author: "Billie", URL: "www.billie.com"})
	a.CreatePost(context.Background(), models.Draft{Title: "Blog 2", Author: "Christy", URL: "www.christy.com"})

	secondID := a.Posts.All()[1].ID
	a.LikePost(context.Background(), secondID)
	a.LikePost(context.Background(), secondID)

	second := a.Posts.Get(secondID)
	require.NotNil(t, second)
	assert.Equal(t, 2, second.Likes)
	assert.Equal(t, 0, a.Posts.All()[0].Likes)

	visible := a.Visible()
	assert.Equal(t, "Blog 2", visible[0].Title, "liked post must display first")
}

func TestScenario_DeleteGatedByOwnership(t *testing.T) {
	server := newFakeAPI()
	server.accounts["Juno Wong"] = "123123123"
	server.accounts["Testing2"] = "123123123"

	// User A creates a post.
	a := newTestApp(t, server, &fakeConfirmer{answer: true})
	a.Login(context.Background(), "Juno Wong", "123123123")
	a.CreatePost(context.Background(), models.Draft{Title: "Blog 1", Author: "Billie", URL: "www.billie.com"})

	// User B logs in on another client.
	b := newTestApp(t, server, &fakeConfirmer{answer: true})
	b.Login(context.Background(), "Testing2", "123123123")
	b.LoadPosts(context.Background())

	post := b.Posts.All()[0]
	assert.False(t, b.CanDelete(post), "delete control must not be exposed to non-owners")
	assert.True(t, a.CanDelete(post))

	// Even if B somehow triggers the delete, the server refuses and B's
	// collection keeps the entry.
	b.DeletePost(context.Background(), post.ID)
	assert.Len(t, server.posts, 1)
	assert.Len(t, b.Posts.All(), 1)
}
