package prefs

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Store.Get when a key has never been written
var ErrNotFound = errors.New("preference not found")

// Store is a string key-value store for persisted preferences
type Store interface {
	// Get returns the stored value or ErrNotFound
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error
	// Delete removes key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error
	// Close releases backend resources
	Close() error
}

// Backend names
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQL    = "sql"
	BackendRedis  = "redis"
)

// Config selects and configures a Store backend
type Config struct {
	Backend string      `yaml:"backend"` // memory, file, sql, redis
	Path    string      `yaml:"path"`    // file backend: JSON document path
	Driver  string      `yaml:"driver"`  // sql backend: sqlite, libsql, postgres, mysql, mssql
	DSN     string      `yaml:"dsn"`     // sql backend connection string
	Redis   RedisConfig `yaml:"redis"`
}

// DefaultConfig returns the default storage configuration
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendFile,
		Path:    "preferences.json",
		Driver:  "sqlite",
		Redis: RedisConfig{
			Address: "localhost:6379",
			Prefix:  "homunculus:",
		},
	}
}

// Open creates the Store described by cfg
func Open(ctx context.Context, cfg *Config) (Store, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile, "":
		return NewFileStore(cfg.Path)
	case BackendSQL:
		return NewSQLStore(ctx, cfg.Driver, cfg.DSN)
	case BackendRedis:
		return NewRedisStore(ctx, &cfg.Redis)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s (supported: memory, file, sql, redis)", cfg.Backend)
	}
}
