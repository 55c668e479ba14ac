package state

import (
	"encoding/json"
	"sync"

	"github.com/junowong/bloglist/internal/models"
)

// sessionKey is the fixed storage key for the persisted session blob.
const sessionKey = "session"

// SessionStore holds the current authenticated identity, if any, and keeps
// it persisted through a Storage collaborator. The session is either fully
// absent (logged out) or fully populated (logged in).
type SessionStore struct {
	mu      sync.Mutex
	store   Storage
	current *models.Session
}

// NewSessionStore creates a SessionStore persisting through store.
func NewSessionStore(store Storage) *SessionStore {
	return &SessionStore{store: store}
}

// Restore loads a previously persisted session, if one exists and parses.
// On absence or parse failure the store stays logged out and nil is
// returned; no error surfaces to the caller.
func (s *SessionStore) Restore() *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, ok := s.store.Get(sessionKey)
	if !ok {
		return nil
	}
	var sess models.Session
	if err := json.Unmarshal(blob, &sess); err != nil || sess.Username == "" || sess.Token == "" {
		return nil
	}
	s.current = &sess
	return &sess
}

// Set stores the session and persists it.
func (s *SessionStore) Set(sess models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := s.store.Set(sessionKey, blob); err != nil {
		return err
	}
	s.current = &sess
	return nil
}

// Clear logs out: the persisted blob is removed and the in-memory session
// dropped.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	return s.store.Remove(sessionKey)
}

// Current returns the active session, or nil when logged out.
func (s *SessionStore) Current() *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
