// Package state holds the client-side application state: the current
// session, the mirrored post collection, and the transient notification.
package state

import (
	"encoding/json"
	"os"
	"sync"
)

// Storage is the key-value persistence collaborator used to keep the
// session across client restarts.
type Storage interface {
	Get(key string) ([]byte, bool)
	Set(key string, blob []byte) error
	Remove(key string) error
}

// FileStore persists blobs as a JSON object in a single file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a FileStore backed by the given file path. The file
// is created on first Set.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (fs *FileStore) load() map[string]json.RawMessage {
	data := map[string]json.RawMessage{}
	b, err := os.ReadFile(fs.path)
	if err != nil {
		return data
	}
	// A corrupt file is treated as empty.
	_ = json.Unmarshal(b, &data)
	return data
}

func (fs *FileStore) save(data map[string]json.RawMessage) error {
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return os.WriteFile(fs.path, b, 0600)
}

// Get returns the blob stored under key, and whether it was present.
func (fs *FileStore) Get(key string) ([]byte, bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	blob, ok := fs.load()[key]
	return blob, ok
}

// Set stores the blob under key, overwriting any previous value.
func (fs *FileStore) Set(key string, blob []byte) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	data := fs.load()
	data[key] = blob
	return fs.save(data)
}

// Remove drops the blob stored under key, if any.
func (fs *FileStore) Remove(key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	data := fs.load()
	if _, ok := data[key]; !ok {
		return nil
	}
	delete(data, key)
	return fs.save(data)
}
