// Package models defines the core data structures for users, posts, and sessions.
package models

// User represents an application user with credentials.
type User struct {
	// Username is the login name chosen by the user.
	Username string
	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash []byte
}

// Post is a single blog entry as stored on the server and mirrored by clients.
type Post struct {
	// ID is the server-assigned unique identifier for the post.
	ID string `json:"id"`
	// Title is the headline of the post.
	Title string `json:"title"`
	// Author is the name of whoever wrote the linked blog.
	Author string `json:"author"`
	// URL points at the blog entry itself.
	URL string `json:"url"`
	// Likes is the number of likes the post has accumulated.
	Likes int `json:"likes"`
	// Owner is the username of the account that created the post.
	Owner string `json:"owner"`
}

// Draft holds the user-supplied fields of a post before the server
// assigns an ID and owner.
type Draft struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
}

// Session is the authenticated identity of a client: a username plus
// the opaque bearer token issued at login.
type Session struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}
