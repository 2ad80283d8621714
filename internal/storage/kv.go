package storage

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/julianstephens/aura/internal/logger"
)

// GetInt returns the integer stored at key, or def when the key is missing.
// An unparseable value also yields def and is logged, never returned as an error.
func GetInt(p Provider, key string, def int) (int, error) {
	raw, ok, err := p.Get(key)
	if err != nil {
		return def, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		logger.Warn("Unparseable integer in store, using default", "key", key, "value", raw, "default", def)
		return def, nil
	}
	return n, nil
}

func SetInt(p Provider, key string, value int) error {
	return Set(p, key, strconv.Itoa(value))
}

// GetString returns the string stored at key, or def when the key is missing.
func GetString(p Provider, key, def string) (string, error) {
	raw, ok, err := p.Get(key)
	if err != nil {
		return def, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return def, nil
	}
	return raw, nil
}

func SetString(p Provider, key, value string) error {
	return Set(p, key, value)
}

// GetBool follows the same fallback policy as GetInt.
func GetBool(p Provider, key string, def bool) (bool, error) {
	raw, ok, err := p.Get(key)
	if err != nil {
		return def, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return def, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		logger.Warn("Unparseable boolean in store, using default", "key", key, "value", raw, "default", def)
		return def, nil
	}
	return b, nil
}

func SetBool(p Provider, key string, value bool) error {
	return Set(p, key, strconv.FormatBool(value))
}

// GetJSON decodes the value at key into v. found is false when the key is missing,
// in which case v is untouched. Decode failures are returned to the caller, who
// decides how to degrade.
func GetJSON(p Provider, key string, v interface{}) (bool, error) {
	raw, ok, err := p.Get(key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return true, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func SetJSON(p Provider, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return Set(p, key, string(data))
}
