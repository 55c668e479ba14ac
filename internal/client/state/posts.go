package state

import (
	"sort"
	"sync"

	"github.com/junowong/bloglist/internal/models"
)

// Collection is the in-memory post list mirrored from the server. It keeps
// insertion order; display order is a read-time projection (SortedByLikes).
type Collection struct {
	mu    sync.Mutex
	posts []models.Post
}

// NewCollection creates an empty Collection.
func NewCollection() *Collection {
	return &Collection{}
}

// ReplaceAll swaps the whole collection for the given list.
func (c *Collection) ReplaceAll(posts []models.Post) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.posts = append([]models.Post(nil), posts...)
}

// Add appends a post.
func (c *Collection) Add(p models.Post) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.posts = append(c.posts, p)
}

// Get returns the post with the given ID, or nil.
func (c *Collection) Get(id string) *models.Post {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.posts {
		if p.ID == id {
			found := p
			return &found
		}
	}
	return nil
}

// Replace swaps the entry matching p.ID for p. Returns false when no entry
// matches; the collection is left unchanged in that case.
func (c *Collection) Replace(p models.Post) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.posts {
		if c.posts[i].ID == p.ID {
			c.posts[i] = p
			return true
		}
	}
	return false
}

// Remove deletes the entry with the given ID. Returns false when no entry
// matches.
func (c *Collection) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.posts {
		if c.posts[i].ID == id {
			c.posts = append(c.posts[:i], c.posts[i+1:]...)
			return true
		}
	}
	return false
}

// All returns a copy of the collection in insertion order.
func (c *Collection) All() []models.Post {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Post(nil), c.posts...)
}

// SortedByLikes returns a copy sorted by likes descending, the order the
// renderer presents. The stored order is untouched.
func (c *Collection) SortedByLikes() []models.Post {
	out := c.All()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Likes > out[j].Likes
	})
	return out
}
