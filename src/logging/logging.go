package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogType represents different log types
type LogType string

const (
	LogTypeServer LogType = "server"
	LogTypeAccess LogType = "access"
	LogTypeAudit  LogType = "audit"
)

// Config holds logging configuration
type Config struct {
	Level    string `yaml:"level"`     // debug, info, warn, error (default: info)
	Dir      string `yaml:"dir"`       // log directory; empty logs the server stream to stderr only
	MaxSize  int    `yaml:"max_size"`  // max log file size in MB (default: 10)
	MaxFiles int    `yaml:"max_files"` // max rotated files to keep (default: 5)
	Stdout   bool   `yaml:"stdout"`    // mirror the server stream to stdout
}

// DefaultConfig returns default logging configuration
func DefaultConfig() Config {
	return Config{
		Level:    "info",
		MaxSize:  10,
		MaxFiles: 5,
	}
}

// Manager owns the server, access and audit log streams
type Manager struct {
	mu      sync.Mutex
	cfg     Config
	closers []io.Closer
	server  *slog.Logger
	access  *slog.Logger
	audit   *AuditLogger
}

// NewManager opens the log streams described by cfg
func NewManager(cfg Config) (*Manager, error) {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = 10
	}
	if cfg.MaxFiles <= 0 {
		cfg.MaxFiles = 5
	}

	m := &Manager{cfg: cfg}
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	if cfg.Dir == "" {
		m.server = slog.New(slog.NewTextHandler(os.Stderr, opts))
		m.access = slog.New(slog.NewJSONHandler(io.Discard, nil))
		m.audit = NewAuditLogger(nil)
		return m, nil
	}

	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	var serverOut io.Writer = m.rotating(LogTypeServer)
	if cfg.Stdout {
		serverOut = io.MultiWriter(serverOut, os.Stdout)
	}
	m.server = slog.New(slog.NewJSONHandler(serverOut, opts))
	m.access = slog.New(slog.NewJSONHandler(m.rotating(LogTypeAccess), nil))
	m.audit = NewAuditLogger(m.rotating(LogTypeAudit))

	return m, nil
}

// rotating creates a lumberjack writer for a log type
func (m *Manager) rotating(t LogType) *lumberjack.Logger {
	w := &lumberjack.Logger{
		Filename:   m.Path(t),
		MaxSize:    m.cfg.MaxSize, // MB
		MaxBackups: m.cfg.MaxFiles,
		MaxAge:     30, // days
		Compress:   true,
	}
	m.closers = append(m.closers, w)
	return w
}

// Path returns the file path for a log type, or "" when logging to stderr
func (m *Manager) Path(t LogType) string {
	if m.cfg.Dir == "" {
		return ""
	}
	return filepath.Join(m.cfg.Dir, string(t)+".log")
}

// Server returns the application logger
func (m *Manager) Server() *slog.Logger {
	return m.server
}

// Access returns the HTTP access logger
func (m *Manager) Access() *slog.Logger {
	return m.access
}

// Audit returns the preference audit logger
func (m *Manager) Audit() *AuditLogger {
	return m.audit
}

// Close closes all log files
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []string
	for _, c := range m.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err.Error())
		}
	}
	m.closers = nil
	if len(errs) > 0 {
		return fmt.Errorf("close logs: %s", strings.Join(errs, "; "))
	}
	return nil
}

// ParseLevel maps a level name to a slog level (default: info)
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
