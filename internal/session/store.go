// ABOUTME: Durable key/value store for the auth token and theme preference
// ABOUTME: One file per versioned key under the XDG config directory

package session

import (
	"os"
	"path/filepath"
	"strings"
)

// Versioned keys. A future incompatible format must bump the suffix so
// stale entries read as absent instead of being misinterpreted.
const (
	TokenKey = "token.v1"
	ThemeKey = "theme.v1"
)

// Store persists small string values across runs within one user profile.
// Values have no client-side expiry; token validity is decided by the
// server alone.
type Store struct {
	dir string
}

// New creates a store rooted at the given directory.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultConfigDir returns the default config directory following XDG spec.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "wardrobe")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "wardrobe")
}

// Get reads the value for key. Missing or unreadable entries are absent.
func (s *Store) Get(key string) (string, bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return "", false
	}
	value := strings.TrimSpace(string(data))
	if value == "" {
		return "", false
	}
	return value, true
}

// Set writes the value for key, creating the config directory on demand.
func (s *Store) Set(key, value string) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return err
	}
	return os.WriteFile(s.path(key), []byte(value), 0600)
}

// Remove deletes the entry for key. Removing an absent key is a no-op.
func (s *Store) Remove(key string) error {
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key)
}
