package storage

import (
	"path/filepath"
	"strings"

	"github.com/julianstephens/aura/internal/storage/postgres"
	"github.com/julianstephens/aura/internal/storage/sqlite"
)

var (
	_ Provider = (*MemoryStore)(nil)
	_ Provider = (*JSONStore)(nil)
	_ Provider = (*sqlite.Store)(nil)
	_ Provider = (*postgres.Store)(nil)
)

// Kind names a storage backend
type Kind string

const (
	KindMemory   Kind = "memory"
	KindJSON     Kind = "json"
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
)

// KindOf picks the backend for a --config value: ":memory:", a PostgreSQL
// URL or DSN, a *.json file, or otherwise a SQLite database path.
func KindOf(config string) Kind {
	switch {
	case config == MemoryPath:
		return KindMemory
	case postgres.IsConnString(config):
		return KindPostgres
	case strings.EqualFold(filepath.Ext(config), ".json"):
		return KindJSON
	default:
		return KindSQLite
	}
}

// New constructs, without opening, the Provider selected by config.
func New(config string) Provider {
	switch KindOf(config) {
	case KindMemory:
		return NewMemoryStore()
	case KindPostgres:
		return postgres.New(config)
	case KindJSON:
		return NewJSONStore(config)
	default:
		return sqlite.NewStore(config)
	}
}
