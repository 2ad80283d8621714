package migration

import (
	"database/sql"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) (*sql.DB, func()) {
	dbPath := filepath.Join(t.TempDir(), "aura-test.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	return db, func() { db.Close() }
}

// setupTestMigrations writes the given files to a temp dir and returns it with an fs.FS view of it
func setupTestMigrations(t *testing.T, files map[string]string) (string, fs.FS) {
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write test migration %s: %v", name, err)
		}
	}
	return dir, os.DirFS(dir)
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", name).Scan(&n); err != nil {
		t.Fatalf("sqlite_master query failed: %v", err)
	}
	return n == 1
}

func TestPlaceholder(t *testing.T) {
	tests := []struct {
		driver Driver
		n      int
		want   string
	}{
		{DriverSQLite, 1, "?"},
		{DriverSQLite, 3, "?"},
		{DriverPostgres, 1, "$1"},
		{DriverPostgres, 2, "$2"},
		{"", 1, "?"},
	}
	for _, tt := range tests {
		r := NewRunner(nil, nil, tt.driver)
		if got := r.placeholder(tt.n); got != tt.want {
			t.Errorf("placeholder(%q, %d) = %q, want %q", tt.driver, tt.n, got, tt.want)
		}
	}
}

func TestSetAndGetVersion(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	_, migrations := setupTestMigrations(t, map[string]string{
		"001_kv.sql": "CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT);",
	})
	runner := NewRunner(db, migrations, DriverSQLite)

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("fresh database version = %d, want 0", version)
	}

	if err := runner.SetVersion(4); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}
	version, err = runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 4 {
		t.Errorf("version = %d, want 4", version)
	}
}

func TestReadMigrationFilesSortsByVersion(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	_, migrations := setupTestMigrations(t, map[string]string{
		"003_history.sql": "CREATE TABLE history (id INTEGER);",
		"001_kv.sql":      "CREATE TABLE kv (key TEXT PRIMARY KEY);",
		"002_index.sql":   "CREATE INDEX kv_key ON kv(key);",
		"README.md":       "ignored",
	})
	runner := NewRunner(db, migrations, DriverSQLite)

	got, err := runner.ReadMigrationFiles()
	if err != nil {
		t.Fatalf("ReadMigrationFiles failed: %v", err)
	}

	wantNames := []string{"kv", "index", "history"}
	if len(got) != len(wantNames) {
		t.Fatalf("got %d migrations, want %d", len(got), len(wantNames))
	}
	for i, m := range got {
		if m.Version != i+1 || m.Name != wantNames[i] {
			t.Errorf("migration %d = (%d, %q), want (%d, %q)", i, m.Version, m.Name, i+1, wantNames[i])
		}
	}

	latest, err := runner.GetLatestVersion()
	if err != nil {
		t.Fatalf("GetLatestVersion failed: %v", err)
	}
	if latest != 3 {
		t.Errorf("GetLatestVersion = %d, want 3", latest)
	}
}

func TestReadMigrationFilesRejectsBadNames(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name:    "missing underscore",
			files:   map[string]string{"001kv.sql": "SELECT 1;"},
			wantErr: "invalid migration filename format",
		},
		{
			name:    "version zero",
			files:   map[string]string{"000_kv.sql": "SELECT 1;"},
			wantErr: "version must be at least 1",
		},
		{
			name:    "non-numeric version",
			files:   map[string]string{"abc_kv.sql": "SELECT 1;"},
			wantErr: "invalid version number",
		},
		{
			name: "duplicate version",
			files: map[string]string{
				"001_kv.sql":    "SELECT 1;",
				"001_other.sql": "SELECT 2;",
			},
			wantErr: "duplicate migration version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, cleanup := setupTestDB(t)
			defer cleanup()

			_, migrations := setupTestMigrations(t, tt.files)
			_, err := NewRunner(db, migrations, DriverSQLite).ReadMigrationFiles()
			if err == nil {
				t.Fatal("ReadMigrationFiles should have failed")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestApplyMigrations(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	dir, migrations := setupTestMigrations(t, map[string]string{
		"001_kv.sql": "CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT);",
	})
	runner := NewRunner(db, migrations, DriverSQLite)

	var logged []string
	count, err := runner.ApplyMigrations(func(msg string) { logged = append(logged, msg) })
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if count != 1 {
		t.Errorf("applied %d migrations, want 1", count)
	}
	if len(logged) == 0 {
		t.Error("expected progress messages")
	}
	if !tableExists(t, db, "kv") {
		t.Error("kv table was not created")
	}

	// Running again is a no-op
	count, err = runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations (no-op) failed: %v", err)
	}
	if count != 0 {
		t.Errorf("no-op run applied %d migrations", count)
	}

	// A new file is picked up incrementally
	if err := os.WriteFile(filepath.Join(dir, "002_archive.sql"), []byte("CREATE TABLE archive (day TEXT);"), 0644); err != nil {
		t.Fatalf("failed to write migration: %v", err)
	}
	count, err = runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations (incremental) failed: %v", err)
	}
	if count != 1 {
		t.Errorf("incremental run applied %d migrations, want 1", count)
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 2 {
		t.Errorf("version = %d, want 2", version)
	}
}

func TestApplyMigrationsRollsBackOnError(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	_, migrations := setupTestMigrations(t, map[string]string{
		"001_kv.sql": `
			CREATE TABLE kv (key TEXT PRIMARY KEY);
			NOT VALID SQL;
		`,
	})
	runner := NewRunner(db, migrations, DriverSQLite)

	if _, err := runner.ApplyMigrations(nil); err == nil {
		t.Fatal("ApplyMigrations should have failed on invalid SQL")
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("version after failed migration = %d, want 0", version)
	}
	if tableExists(t, db, "kv") {
		t.Error("kv table should not exist after rollback")
	}
}

func TestNewerDatabaseIsRejected(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	_, migrations := setupTestMigrations(t, map[string]string{
		"001_kv.sql": "CREATE TABLE kv (key TEXT PRIMARY KEY);",
	})
	runner := NewRunner(db, migrations, DriverSQLite)

	if err := runner.SetVersion(9); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}
	if err := runner.ValidateVersion(); err == nil {
		t.Error("ValidateVersion should reject a newer database")
	}
	if _, err := runner.ApplyMigrations(nil); err == nil {
		t.Error("ApplyMigrations should reject a newer database")
	}
}
