package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"                   // MySQL/MariaDB
	_ "github.com/jackc/pgx/v5/stdlib"                   // PostgreSQL
	_ "github.com/microsoft/go-mssqldb"                  // MSSQL
	_ "github.com/tursodatabase/libsql-client-go/libsql" // libSQL/Turso
	_ "modernc.org/sqlite"                               // SQLite
)

const preferencesTable = "preferences"

// normalizeDriver maps config aliases to registered database/sql driver names
func normalizeDriver(driver string) string {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite", "sqlite2", "sqlite3":
		return "sqlite"
	case "libsql", "turso":
		return "libsql"
	case "postgres", "pgsql", "postgresql", "pgx":
		return "pgx"
	case "mysql", "mariadb":
		return "mysql"
	case "mssql", "sqlserver":
		return "sqlserver"
	default:
		return driver
	}
}

// IsSupportedDriver reports whether driver, or one of its aliases,
// names a database the SQL store can use
func IsSupportedDriver(driver string) bool {
	_, err := dialectFor(normalizeDriver(driver))
	return err == nil
}

// dialect holds the per-driver SQL text
type dialect struct {
	create string
	get    string
	upsert string
	delete string
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case "sqlite", "libsql":
		return dialect{
			create: `CREATE TABLE IF NOT EXISTS preferences (
				pref_key TEXT PRIMARY KEY,
				pref_value TEXT NOT NULL,
				updated_at TIMESTAMP NOT NULL
			)`,
			get: `SELECT pref_value FROM preferences WHERE pref_key = ?`,
			upsert: `INSERT INTO preferences (pref_key, pref_value, updated_at) VALUES (?, ?, ?)
				ON CONFLICT(pref_key) DO UPDATE SET pref_value = excluded.pref_value, updated_at = excluded.updated_at`,
			delete: `DELETE FROM preferences WHERE pref_key = ?`,
		}, nil
	case "pgx":
		return dialect{
			create: `CREATE TABLE IF NOT EXISTS preferences (
				pref_key TEXT PRIMARY KEY,
				pref_value TEXT NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL
			)`,
			get: `SELECT pref_value FROM preferences WHERE pref_key = $1`,
			upsert: `INSERT INTO preferences (pref_key, pref_value, updated_at) VALUES ($1, $2, $3)
				ON CONFLICT (pref_key) DO UPDATE SET pref_value = EXCLUDED.pref_value, updated_at = EXCLUDED.updated_at`,
			delete: `DELETE FROM preferences WHERE pref_key = $1`,
		}, nil
	case "mysql":
		return dialect{
			create: `CREATE TABLE IF NOT EXISTS preferences (
				pref_key VARCHAR(191) PRIMARY KEY,
				pref_value TEXT NOT NULL,
				updated_at DATETIME NOT NULL
			)`,
			get: `SELECT pref_value FROM preferences WHERE pref_key = ?`,
			upsert: `INSERT INTO preferences (pref_key, pref_value, updated_at) VALUES (?, ?, ?)
				ON DUPLICATE KEY UPDATE pref_value = VALUES(pref_value), updated_at = VALUES(updated_at)`,
			delete: `DELETE FROM preferences WHERE pref_key = ?`,
		}, nil
	case "sqlserver":
		return dialect{
			create: `IF OBJECT_ID(N'preferences', N'U') IS NULL
				CREATE TABLE preferences (
					pref_key NVARCHAR(191) PRIMARY KEY,
					pref_value NVARCHAR(MAX) NOT NULL,
					updated_at DATETIME2 NOT NULL
				)`,
			get: `SELECT pref_value FROM preferences WHERE pref_key = @p1`,
			upsert: `MERGE preferences AS t
				USING (SELECT @p1 AS pref_key, @p2 AS pref_value, @p3 AS updated_at) AS s
				ON t.pref_key = s.pref_key
				WHEN MATCHED THEN UPDATE SET pref_value = s.pref_value, updated_at = s.updated_at
				WHEN NOT MATCHED THEN INSERT (pref_key, pref_value, updated_at) VALUES (s.pref_key, s.pref_value, s.updated_at);`,
			delete: `DELETE FROM preferences WHERE pref_key = @p1`,
		}, nil
	default:
		return dialect{}, fmt.Errorf("unsupported database driver: %s (supported: sqlite, libsql, postgres, mysql, mssql)", driver)
	}
}

// SQLStore implements Store on a relational database
type SQLStore struct {
	db      *sql.DB
	driver  string
	dialect dialect
	now     func() time.Time
	mu      sync.RWMutex
	closed  bool
}

// NewSQLStore opens a connection, verifies it and creates the
// preferences table when missing
func NewSQLStore(ctx context.Context, driver, dsn string) (*SQLStore, error) {
	name := normalizeDriver(driver)
	d, err := dialectFor(name)
	if err != nil {
		return nil, err
	}
	if dsn == "" {
		if name != "sqlite" {
			return nil, fmt.Errorf("database driver %s requires a dsn", name)
		}
		dsn = "file:preferences.db"
	}

	db, err := sql.Open(name, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if name == "sqlite" {
		// modernc sqlite serializes writers; one connection keeps
		// in-memory databases shared between calls
		db.SetMaxOpenConns(1)
	}

	return newSQLStore(ctx, db, name, d)
}

func newSQLStore(ctx context.Context, db *sql.DB, driver string, d dialect) (*SQLStore, error) {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if driver == "sqlite" {
		if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set busy timeout: %w", err)
		}
	}

	if _, err := db.ExecContext(ctx, d.create); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create %s table: %w", preferencesTable, err)
	}

	return &SQLStore{
		db:      db,
		driver:  driver,
		dialect: d,
		now:     time.Now,
	}, nil
}

// Driver returns the normalized driver name
func (s *SQLStore) Driver() string {
	return s.driver
}

// Get retrieves a value
func (s *SQLStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", fmt.Errorf("database not ready")
	}

	var value string
	err := s.db.QueryRowContext(ctx, s.dialect.get, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to read preference %s: %w", key, err)
	}
	return value, nil
}

// Set inserts or replaces a value
func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return fmt.Errorf("database not ready")
	}

	if _, err := s.db.ExecContext(ctx, s.dialect.upsert, key, value, s.now().UTC()); err != nil {
		return fmt.Errorf("failed to write preference %s: %w", key, err)
	}
	return nil
}

// Delete removes a value
func (s *SQLStore) Delete(ctx context.Context, key string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return fmt.Errorf("database not ready")
	}

	if _, err := s.db.ExecContext(ctx, s.dialect.delete, key); err != nil {
		return fmt.Errorf("failed to delete preference %s: %w", key, err)
	}
	return nil
}

// Close closes the database connection
func (s *SQLStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
