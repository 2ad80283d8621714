package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/julianstephens/aura/internal/constants"
)

type jsonFile struct {
	Version int               `json:"version"`
	Values  map[string]string `json:"values"`
}

// JSONStore persists the whole key space as one JSON document.
type JSONStore struct {
	path string
	mu   sync.RWMutex
	file *jsonFile
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.file = &jsonFile{
		Version: constants.CollectionSchemaVersion,
		Values:  make(map[string]string),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	f := &jsonFile{}
	if err := json.Unmarshal(data, f); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if f.Values == nil {
		f.Values = make(map[string]string)
	}

	s.mu.Lock()
	s.file = f
	s.mu.Unlock()
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

// save writes to a temp file in the same directory and renames it over the
// store so a crash never leaves a half-written document. Caller holds mu.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}

func (s *JSONStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.file == nil {
		return "", false, fmt.Errorf("storage not loaded")
	}
	v, ok := s.file.Values[key]
	return v, ok, nil
}

func (s *JSONStore) SetMany(values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return fmt.Errorf("storage not loaded")
	}

	prev := make(map[string]*string, len(values))
	for k, v := range values {
		if old, ok := s.file.Values[k]; ok {
			prev[k] = &old
		} else {
			prev[k] = nil
		}
		s.file.Values[k] = v
	}

	if err := s.save(); err != nil {
		// keep memory consistent with what is on disk
		for k, old := range prev {
			if old == nil {
				delete(s.file.Values, k)
			} else {
				s.file.Values[k] = *old
			}
		}
		return err
	}
	return nil
}

func (s *JSONStore) Delete(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return fmt.Errorf("storage not loaded")
	}

	removed := make(map[string]string)
	for _, k := range keys {
		if old, ok := s.file.Values[k]; ok {
			removed[k] = old
			delete(s.file.Values, k)
		}
	}
	if len(removed) == 0 {
		return nil
	}
	if err := s.save(); err != nil {
		for k, v := range removed {
			s.file.Values[k] = v
		}
		return err
	}
	return nil
}

func (s *JSONStore) Keys(prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.file == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	return sortedKeys(s.file.Values, prefix), nil
}

func (s *JSONStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return fmt.Errorf("storage not loaded")
	}
	old := s.file.Values
	s.file.Values = make(map[string]string)
	if err := s.save(); err != nil {
		s.file.Values = old
		return err
	}
	return nil
}
