package cli

import (
	"path/filepath"

	"github.com/julianstephens/streakly/internal/config"
	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/logger"
	"github.com/julianstephens/streakly/internal/storage"
	"github.com/julianstephens/streakly/internal/storage/sqlite"
)

// SecretLookup returns a stored PostgreSQL connection string, or "" if none.
type SecretLookup func() (string, error)

// OpenStore picks the backend in priority order: the --config flag,
// STREAKLY_DB_CONNECTION, STREAKLY_DB, a connection string kept in the OS
// keyring, then the default SQLite path. Only the secret sources may carry a
// password.
func OpenStore(cfg config.Config, flag string, lookup SecretLookup) (storage.Provider, error) {
	if flag == "" && cfg.DBConnection != "" {
		return storage.OpenConnString(cfg.DBConnection)
	}
	if flag == "" && cfg.DB == "" && lookup != nil {
		connStr, err := lookup()
		if err != nil {
			logger.Debug("Keyring lookup failed", "error", err)
		} else if connStr != "" {
			return storage.OpenConnString(connStr)
		}
	}
	return storage.Open(cfg.Target(flag))
}

// LogDir returns the directory logs are written under for a store target.
func LogDir(store storage.Provider) string {
	switch store.(type) {
	case *storage.JSONStore, *sqlite.Store:
		return filepath.Dir(store.GetConfigPath())
	}
	dir, err := storage.ExpandPath(filepath.Dir(constants.DefaultConfigPath))
	if err != nil {
		return "."
	}
	return dir
}
