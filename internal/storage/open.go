package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/streakly/internal/storage/postgres"
	"github.com/julianstephens/streakly/internal/storage/sqlite"
)

// Open picks a backend from target: a postgres:// URL, a .json file, or
// (by default) an SQLite database path. The store is not loaded.
func Open(target string) (Provider, error) {
	switch {
	case postgres.IsConnString(target):
		if err := postgres.ValidateConnString(target); err != nil {
			return nil, err
		}
		return postgres.New(target), nil
	case strings.HasSuffix(strings.ToLower(target), ".json"):
		path, err := ExpandPath(target)
		if err != nil {
			return nil, err
		}
		return NewJSONStore(path), nil
	default:
		path, err := ExpandPath(target)
		if err != nil {
			return nil, err
		}
		return sqlite.New(path), nil
	}
}

// OpenConnString opens a PostgreSQL store from a connection string that came
// from a secret source (environment or OS keyring), where a password is allowed.
func OpenConnString(connStr string) (Provider, error) {
	if strings.TrimSpace(connStr) == "" {
		return nil, fmt.Errorf("%w: connection string cannot be empty", postgres.ErrInvalidConnectionString)
	}
	if err := postgres.ValidateConnString(connStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
		return nil, err
	}
	return postgres.New(connStr), nil
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

var (
	_ Provider  = (*sqlite.Store)(nil)
	_ Provider  = (*postgres.Store)(nil)
	_ Provider  = (*JSONStore)(nil)
	_ Versioned = (*sqlite.Store)(nil)
	_ Versioned = (*postgres.Store)(nil)
)
