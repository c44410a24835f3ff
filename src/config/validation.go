package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/apimgr/homunculus/src/i18n"
	"github.com/apimgr/homunculus/src/prefs"
	"github.com/apimgr/homunculus/src/theme"
)

// Validate checks the configuration and returns every problem found,
// each wrapped with ErrInvalid
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var errs []error
	add := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...)))
	}

	if !IsValidPort(c.Server.Port) {
		add("server.port %d out of range", c.Server.Port)
	}

	switch strings.ToLower(c.Storage.Backend) {
	case prefs.BackendMemory, prefs.BackendRedis:
	case prefs.BackendFile, "":
		if c.Storage.Path == "" {
			add("storage.path is required for the file backend")
		}
	case prefs.BackendSQL:
		if !prefs.IsSupportedDriver(c.Storage.Driver) {
			add("storage.driver %q not supported", c.Storage.Driver)
		}
	default:
		add("storage.backend %q not supported", c.Storage.Backend)
	}

	if c.Theme.InitialScheme != "" && !theme.HasScheme(c.Theme.InitialScheme) {
		add("theme.initial_scheme %q is not a known scheme", c.Theme.InitialScheme)
	}

	if !i18n.IsValidLanguageCode(c.I18n.DefaultLanguage) {
		add("i18n.default_language %q not supported", c.I18n.DefaultLanguage)
	}

	if !IsValidLogLevel(c.Logging.Level) {
		add("logging.level %q not one of debug, info, warn, error", c.Logging.Level)
	}

	return errors.Join(errs...)
}

// IsValidPort validates a port number
func IsValidPort(port int) bool {
	return port > 0 && port <= 65535
}

// IsValidLogLevel reports whether level is a known log level
func IsValidLogLevel(level string) bool {
	switch strings.ToLower(level) {
	case "", "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}
