package engine

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/julianstephens/aura/internal/constants"
	"github.com/julianstephens/aura/internal/errors"
	"github.com/julianstephens/aura/internal/logger"
	"github.com/julianstephens/aura/internal/storage"
)

// envelope is the persisted shape of every collection
type envelope[T any] struct {
	Version int `json:"version"`
	Items   []T `json:"items"`
}

// collection is a decoded list plus what is needed to write it back safely
type collection[T any] struct {
	key   string
	items []T
	warn  *Warning
	raw   string // undecodable payload, preserved on the next write
}

// loadCollection never fails on bad data: an undecodable payload becomes an
// empty list plus a Warning. Only store errors are returned.
func loadCollection[T any](p storage.Provider, key string) (*collection[T], error) {
	c := &collection[T]{key: key}

	raw, ok, err := p.Get(key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok || len(bytes.TrimSpace([]byte(raw))) == 0 {
		return c, nil
	}

	items, derr := decodeCollection[T](raw)
	if derr != nil {
		logger.Warn("Corrupt collection, treating as empty", "key", key, "error", derr)
		c.warn = &Warning{Key: key, Err: fmt.Errorf("%w: %v", errors.ErrCorruptData, derr)}
		c.raw = raw
		return c, nil
	}
	c.items = items
	return c, nil
}

func decodeCollection[T any](raw string) ([]T, error) {
	data := bytes.TrimSpace([]byte(raw))

	// Unversioned bare arrays predate the envelope
	if data[0] == '[' {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var env envelope[T]
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	if env.Version > constants.CollectionSchemaVersion {
		return nil, fmt.Errorf("unsupported collection version %d", env.Version)
	}
	return env.Items, nil
}

// warnings returns the load warning, if any, as a slice
func (c *collection[T]) warnings() []Warning {
	if c.warn == nil {
		return nil
	}
	return []Warning{*c.warn}
}

// batch encodes the collection for SetMany. A previously undecodable payload
// is copied to <key>.corrupt in the same batch.
func (c *collection[T]) batch() (map[string]string, error) {
	items := c.items
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(envelope[T]{Version: constants.CollectionSchemaVersion, Items: items})
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", c.key, err)
	}
	b := map[string]string{c.key: string(data)}
	if c.raw != "" {
		b[c.key+constants.CorruptSuffix] = c.raw
	}
	return b, nil
}

func (c *collection[T]) save(p storage.Provider) error {
	b, err := c.batch()
	if err != nil {
		return err
	}
	if err := p.SetMany(b); err != nil {
		return fmt.Errorf("write %s: %w", c.key, err)
	}
	c.raw = ""
	c.warn = nil
	return nil
}
