package sqlite

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	dbPath := filepath.Join(t.TempDir(), "aura.db")
	store := NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	return store, func() { store.Close() }
}

func TestInitCreatesSchema(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	var n int
	if err := store.GetDB().QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='kv'").Scan(&n); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if n != 1 {
		t.Error("kv table was not created")
	}
}

func TestLoadRequiresInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Error("Load() on a missing database should fail")
	}
}

func TestGetSetDelete(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	if _, ok, err := store.Get("steps.value"); err != nil || ok {
		t.Fatalf("Get on empty store = ok %v, err %v", ok, err)
	}

	err := store.SetMany(map[string]string{
		"steps.value":         "1200",
		"steps.lastUpdateDay": "2024-05-01",
	})
	if err != nil {
		t.Fatalf("SetMany failed: %v", err)
	}

	v, ok, err := store.Get("steps.value")
	if err != nil || !ok || v != "1200" {
		t.Errorf("Get(steps.value) = %q, %v, %v", v, ok, err)
	}

	// Last write wins
	if err := store.SetMany(map[string]string{"steps.value": "1500"}); err != nil {
		t.Fatalf("SetMany failed: %v", err)
	}
	if v, _, _ := store.Get("steps.value"); v != "1500" {
		t.Errorf("Get after overwrite = %q, want 1500", v)
	}

	if err := store.Delete("steps.value", "not.there"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := store.Get("steps.value"); ok {
		t.Error("steps.value should be deleted")
	}
}

func TestKeysMatchesPrefixLiterally(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.SetMany(map[string]string{
		"goalAchieved.steps.2024-05-02":     "true",
		"goalAchieved.steps.2024-05-01":     "true",
		"goalAchieved.hydration.2024-05-01": "true",
		"goalachieved.other":                "true",
		"goal_x":                            "1",
		"habits":                            "[]",
	})
	if err != nil {
		t.Fatalf("SetMany failed: %v", err)
	}

	tests := []struct {
		prefix string
		want   []string
	}{
		{"goalAchieved.steps.", []string{"goalAchieved.steps.2024-05-01", "goalAchieved.steps.2024-05-02"}},
		{"goal_", []string{"goal_x"}},
		{"none", nil},
	}
	for _, tt := range tests {
		got, err := store.Keys(tt.prefix)
		if err != nil {
			t.Fatalf("Keys(%q) failed: %v", tt.prefix, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Keys(%q) = %v, want %v", tt.prefix, got, tt.want)
		}
	}
}

func TestClearAndReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "aura.db")
	store := NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.SetMany(map[string]string{"hydration.value": "3"}); err != nil {
		t.Fatalf("SetMany failed: %v", err)
	}
	store.Close()

	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("database file missing: %v", err)
	}

	reopened := NewStore(dbPath)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer reopened.Close()

	if v, ok, _ := reopened.Get("hydration.value"); !ok || v != "3" {
		t.Errorf("value did not persist: %q, %v", v, ok)
	}

	if err := reopened.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	keys, err := reopened.Keys("")
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("Keys after Clear = %v", keys)
	}
}

func TestSchemaStatus(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	current, latest, err := store.SchemaStatus()
	if err != nil {
		t.Fatalf("SchemaStatus failed: %v", err)
	}
	if current != latest || latest < 1 {
		t.Errorf("SchemaStatus = %d/%d, want up to date", current, latest)
	}

	closed := NewStore(filepath.Join(t.TempDir(), "closed.db"))
	if _, _, err := closed.SchemaStatus(); err == nil {
		t.Error("SchemaStatus on an unopened store should fail")
	}
}
