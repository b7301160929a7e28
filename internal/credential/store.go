package credential

import (
	"fmt"

	"github.com/stackseed-labs/stackseed/internal/config"
)

// Store persists a single credential.
type Store interface {
	// Load returns the saved credential, or "" when none has been saved.
	Load() (string, error)
	// Save persists value, replacing any previous credential.
	Save(value string) error
}

// FileStore keeps the credential under the api_key key of a config file.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the config file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultFileStore returns a store backed by ~/.stackseed/config.yaml.
func DefaultFileStore() *FileStore {
	return NewFileStore(config.FilePath())
}

// Path returns the config file backing the store.
func (s *FileStore) Path() string { return s.path }

// Load reads the config file once and returns its api_key value.
func (s *FileStore) Load() (string, error) {
	cfg, err := config.Open(s.path)
	if err != nil {
		return "", fmt.Errorf("loading credential: %w", err)
	}
	return cfg.Get(config.KeyAPIKey), nil
}

// Save writes value to the config file.
func (s *FileStore) Save(value string) error {
	cfg, err := config.Open(s.path)
	if err != nil {
		return fmt.Errorf("saving credential: %w", err)
	}
	if err := cfg.Set(config.KeyAPIKey, value); err != nil {
		return fmt.Errorf("saving credential: %w", err)
	}
	return nil
}

// MemoryStore is an in-process Store that never touches disk.
type MemoryStore struct {
	Value string
	Saves int
}

// Load returns the stored value.
func (m *MemoryStore) Load() (string, error) { return m.Value, nil }

// Save replaces the stored value.
func (m *MemoryStore) Save(value string) error {
	m.Value = value
	m.Saves++
	return nil
}
