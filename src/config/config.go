package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/apimgr/homunculus/src/i18n"
	"github.com/apimgr/homunculus/src/logging"
	"github.com/apimgr/homunculus/src/prefs"
	"github.com/apimgr/homunculus/src/theme"
)

// Version info (set at build time)
var (
	Version   = "dev"
	BuildTime = ""
	GitCommit = ""
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid configuration")

// Config represents the complete application configuration
type Config struct {
	mu         sync.RWMutex
	configPath string

	Server  ServerConfig   `yaml:"server"`
	Storage prefs.Config   `yaml:"storage"`
	Theme   ThemeConfig    `yaml:"theme"`
	I18n    I18nConfig     `yaml:"i18n"`
	Logging logging.Config `yaml:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Address   string `yaml:"address"`
	Port      int    `yaml:"port"`
	AssetsDir string `yaml:"assets_dir"` // served under /static/
	LogoFile  string `yaml:"logo_file"`  // relative to assets_dir; placeholder when missing
	Metrics   bool   `yaml:"metrics"`    // expose /metrics
	GraphQL   bool   `yaml:"graphql"`    // expose /graphql
}

// ThemeConfig holds theme defaults
type ThemeConfig struct {
	// InitialScheme is used until the user picks a scheme
	InitialScheme string `yaml:"initial_scheme"`
}

// I18nConfig holds language settings
type I18nConfig struct {
	DefaultLanguage string `yaml:"default_language"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address:   "127.0.0.1",
			Port:      3000,
			AssetsDir: "assets",
			LogoFile:  "logo.png",
			Metrics:   true,
			GraphQL:   true,
		},
		Storage: *prefs.DefaultConfig(),
		Theme: ThemeConfig{
			InitialScheme: theme.DefaultSchemeID,
		},
		I18n: I18nConfig{
			DefaultLanguage: i18n.English,
		},
		Logging: logging.DefaultConfig(),
	}
}

// SetPath sets the config file path
func (c *Config) SetPath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.configPath = path
}

// GetPath returns the config file path
func (c *Config) GetPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.configPath
}

// GetAddress returns host:port for the HTTP listener
func (c *Config) GetAddress() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	host := c.Server.Address
	if strings.Contains(host, ":") && !strings.HasPrefix(host, "[") {
		host = "[" + host + "]"
	}
	return fmt.Sprintf("%s:%d", host, c.Server.Port)
}

// Load loads configuration from file. Keys absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.configPath = path

	return cfg, nil
}

// Save saves configuration to file
func (c *Config) Save(path string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// LoadOrCreate loads configuration from file or writes the defaults
// there when the file does not exist. The bool reports creation.
func LoadOrCreate(path string) (*Config, bool, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, false, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
		cfg.configPath = path
		if err := cfg.Save(path); err != nil {
			return nil, false, err
		}
		return cfg, true, nil
	}

	return nil, false, err
}
