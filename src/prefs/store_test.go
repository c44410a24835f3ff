package prefs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// exerciseStore runs the common Store contract against s
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}

	if err := s.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "v2" {
		t.Errorf("Get() = %q, want %q", got, "v2")
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete error = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "never-set"); err != nil {
		t.Errorf("Delete(never-set) error = %v, want nil", err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	exerciseStore(t, s)

	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.json")

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	if err := s.Set(ctx, KeyColorScheme, "german"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file mode = %o, want 600", perm)
	}

	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() reopen error = %v", err)
	}
	got, err := reopened.Get(ctx, KeyColorScheme)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "german" {
		t.Errorf("Get() = %q, want %q", got, "german")
	}
}

func TestFileStoreCorruptDocument(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v, want corrupt file treated as empty", err)
	}
	if _, err := s.Get(ctx, KeySettings); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
	if err := s.Set(ctx, KeySettings, "{}"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), KeySettings) {
		t.Errorf("file not rewritten: %s", data)
	}
}

func TestFileStoreEmptyPath(t *testing.T) {
	if _, err := NewFileStore(""); err == nil {
		t.Error("NewFileStore(\"\") expected error")
	}
}

func TestSQLStoreSQLite(t *testing.T) {
	s, err := NewSQLStore(context.Background(), "sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("NewSQLStore() error = %v", err)
	}
	defer s.Close()

	if s.Driver() != "sqlite" {
		t.Errorf("Driver() = %q, want %q", s.Driver(), "sqlite")
	}
	exerciseStore(t, s)
}

func TestSQLStoreClosed(t *testing.T) {
	ctx := context.Background()
	s, err := NewSQLStore(ctx, "sqlite", ":memory:")
	if err != nil {
		t.Fatalf("NewSQLStore() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := s.Set(ctx, "k", "v"); err == nil {
		t.Error("Set() after Close expected error")
	}
	if _, err := s.Get(ctx, "k"); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Close error = %v, want not-ready error", err)
	}
}

func TestNewSQLStoreErrors(t *testing.T) {
	ctx := context.Background()
	if _, err := NewSQLStore(ctx, "oracle", "dsn"); err == nil {
		t.Error("unsupported driver expected error")
	}
	if _, err := NewSQLStore(ctx, "postgres", ""); err == nil {
		t.Error("postgres without dsn expected error")
	}
}

func TestNormalizeDriver(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "sqlite"},
		{"sqlite3", "sqlite"},
		{"SQLite", "sqlite"},
		{"turso", "libsql"},
		{"postgresql", "pgx"},
		{"pgsql", "pgx"},
		{"mariadb", "mysql"},
		{"mssql", "sqlserver"},
		{" sqlserver ", "sqlserver"},
		{"oracle", "oracle"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := normalizeDriver(tt.input); got != tt.want {
				t.Errorf("normalizeDriver(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsSupportedDriver(t *testing.T) {
	for _, driver := range []string{"", "sqlite", "turso", "postgres", "mariadb", "mssql"} {
		if !IsSupportedDriver(driver) {
			t.Errorf("IsSupportedDriver(%q) = false, want true", driver)
		}
	}
	for _, driver := range []string{"oracle", "mongodb"} {
		if IsSupportedDriver(driver) {
			t.Errorf("IsSupportedDriver(%q) = true, want false", driver)
		}
	}
}

func TestDialectPlaceholders(t *testing.T) {
	tests := []struct {
		driver      string
		placeholder string
	}{
		{"sqlite", "?"},
		{"libsql", "?"},
		{"mysql", "?"},
		{"pgx", "$1"},
		{"sqlserver", "@p1"},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			d, err := dialectFor(tt.driver)
			if err != nil {
				t.Fatalf("dialectFor() error = %v", err)
			}
			for name, q := range map[string]string{"get": d.get, "upsert": d.upsert, "delete": d.delete} {
				if !strings.Contains(q, tt.placeholder) {
					t.Errorf("%s query %q missing placeholder %q", name, q, tt.placeholder)
				}
			}
			if !strings.Contains(d.create, preferencesTable) {
				t.Errorf("create statement does not name %s table", preferencesTable)
			}
		})
	}
}

func TestRedisStorePrefixKey(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		key      string
		expected string
	}{
		{"with prefix", "homunculus:", KeyColorScheme, "homunculus:preferredColorScheme"},
		{"empty prefix", "", KeySettings, "theme-settings"},
		{"empty key", "prefix:", "", "prefix:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &RedisStore{prefix: tt.prefix}
			if got := s.prefixKey(tt.key); got != tt.expected {
				t.Errorf("prefixKey(%q) = %q, want %q", tt.key, got, tt.expected)
			}
		})
	}
}

func TestNewRedisStoreBadURL(t *testing.T) {
	_, err := NewRedisStore(context.Background(), &RedisConfig{URL: "ftp://localhost"})
	if err == nil {
		t.Error("NewRedisStore() with bad URL expected error")
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{"memory", &Config{Backend: "memory"}, false},
		{"file", &Config{Backend: "file", Path: filepath.Join(dir, "a.json")}, false},
		{"empty backend is file", &Config{Path: filepath.Join(dir, "b.json")}, false},
		{"sql", &Config{Backend: "sql", Driver: "sqlite", DSN: ":memory:"}, false},
		{"unknown", &Config{Backend: "etcd"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(ctx, tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("Open() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			defer s.Close()
			exerciseStore(t, s)
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Backend != BackendFile {
		t.Errorf("Backend = %q, want %q", cfg.Backend, BackendFile)
	}
	if cfg.Redis.Prefix != "homunculus:" {
		t.Errorf("Redis.Prefix = %q, want %q", cfg.Redis.Prefix, "homunculus:")
	}
}
