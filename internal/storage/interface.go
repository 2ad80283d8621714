package storage

// Provider is a string key-value store. Every backend offers last-write-wins
// semantics per key; SetMany applies its batch atomically.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Key-value access
	Get(key string) (string, bool, error)
	SetMany(values map[string]string) error
	Delete(keys ...string) error
	Keys(prefix string) ([]string, error)
	Clear() error

	// Utils
	GetConfigPath() string
}

// Set writes a single key.
func Set(p Provider, key, value string) error {
	return p.SetMany(map[string]string{key: value})
}
