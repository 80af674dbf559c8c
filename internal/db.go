package internal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/tursodatabase/go-libsql"

	"github.com/trknhr/neuron/internal/store"
)

// DefaultDBPath is <user cache dir>/neuron/neuron.db.
func DefaultDBPath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user cache dir: %w", err)
	}
	return filepath.Join(cacheDir, "neuron", "neuron.db"), nil
}

// DataSourceName turns a filesystem path into the URL form the libsql
// driver accepts. ":memory:" and values that already carry a scheme pass
// through unchanged.
func DataSourceName(dbPath string) string {
	if dbPath == ":memory:" || strings.Contains(dbPath, "://") || strings.HasPrefix(dbPath, "file:") {
		return dbPath
	}
	return "file:" + dbPath
}

// OpenDB opens (creating if needed) the libsql database at dbPath and
// applies the schema. An empty path selects DefaultDBPath.
func OpenDB(dbPath string) (*sql.DB, error) {
	if dbPath == "" {
		p, err := DefaultDBPath()
		if err != nil {
			return nil, err
		}
		dbPath = p
	}
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("libsql", DataSourceName(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err := store.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
