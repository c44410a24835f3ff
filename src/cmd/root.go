// Package cmd implements the homunculus command line
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/apimgr/homunculus/src/config"
	"github.com/apimgr/homunculus/src/logging"
	"github.com/apimgr/homunculus/src/paths"
	"github.com/apimgr/homunculus/src/prefs"
	"github.com/apimgr/homunculus/src/provider"
)

// envPrefix namespaces environment overrides, e.g. HOMUNCULUS_SERVER_PORT
const envPrefix = "HOMUNCULUS"

// skipConfig marks commands that run without loading the config file
const skipConfig = "skip-config"

// createConfig marks commands that write the default config on first run
const createConfig = "create-config"

// app carries state shared by every command of one root
type app struct {
	v     *viper.Viper
	paths *paths.Paths
	cfg   *config.Config
}

// override copies one viper key into the config when it is set by
// environment or flag
type override struct {
	key   string
	apply func(c *config.Config, v *viper.Viper, key string)
}

var overrides = []override{
	{"server.address", func(c *config.Config, v *viper.Viper, k string) { c.Server.Address = v.GetString(k) }},
	{"server.port", func(c *config.Config, v *viper.Viper, k string) { c.Server.Port = v.GetInt(k) }},
	{"server.assets_dir", func(c *config.Config, v *viper.Viper, k string) { c.Server.AssetsDir = v.GetString(k) }},
	{"server.metrics", func(c *config.Config, v *viper.Viper, k string) { c.Server.Metrics = v.GetBool(k) }},
	{"server.graphql", func(c *config.Config, v *viper.Viper, k string) { c.Server.GraphQL = v.GetBool(k) }},
	{"storage.backend", func(c *config.Config, v *viper.Viper, k string) { c.Storage.Backend = v.GetString(k) }},
	{"storage.path", func(c *config.Config, v *viper.Viper, k string) { c.Storage.Path = v.GetString(k) }},
	{"storage.driver", func(c *config.Config, v *viper.Viper, k string) { c.Storage.Driver = v.GetString(k) }},
	{"storage.dsn", func(c *config.Config, v *viper.Viper, k string) { c.Storage.DSN = v.GetString(k) }},
	{"storage.redis.url", func(c *config.Config, v *viper.Viper, k string) { c.Storage.Redis.URL = v.GetString(k) }},
	{"storage.redis.address", func(c *config.Config, v *viper.Viper, k string) { c.Storage.Redis.Address = v.GetString(k) }},
	{"storage.redis.password", func(c *config.Config, v *viper.Viper, k string) { c.Storage.Redis.Password = v.GetString(k) }},
	{"storage.redis.prefix", func(c *config.Config, v *viper.Viper, k string) { c.Storage.Redis.Prefix = v.GetString(k) }},
	{"theme.initial_scheme", func(c *config.Config, v *viper.Viper, k string) { c.Theme.InitialScheme = v.GetString(k) }},
	{"i18n.default_language", func(c *config.Config, v *viper.Viper, k string) { c.I18n.DefaultLanguage = v.GetString(k) }},
	{"logging.level", func(c *config.Config, v *viper.Viper, k string) { c.Logging.Level = v.GetString(k) }},
	{"logging.dir", func(c *config.Config, v *viper.Viper, k string) { c.Logging.Dir = v.GetString(k) }},
}

// NewRootCommand builds the full command tree with its own viper
// instance
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New(), paths: paths.Default()}
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	root := &cobra.Command{
		Use:           paths.ProjectName,
		Short:         "Theme and preference service for the Homunculus analytics site",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipConfig] == "true" {
				return nil
			}
			return a.loadConfig(cmd.Annotations[createConfig] == "true", cmd.ErrOrStderr())
		},
	}

	pf := root.PersistentFlags()
	pf.StringP("config", "c", "", "config file path (default "+a.paths.ConfigFile()+")")
	pf.String("data-dir", "", "data directory for relative storage paths")
	pf.String("storage", "", "preference backend: memory, file, sql, redis")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("lang", "", "language: en, zh")
	_ = a.v.BindPFlag("config", pf.Lookup("config"))
	_ = a.v.BindPFlag("data_dir", pf.Lookup("data-dir"))
	_ = a.v.BindPFlag("storage.backend", pf.Lookup("storage"))
	_ = a.v.BindPFlag("logging.level", pf.Lookup("log-level"))
	_ = a.v.BindPFlag("i18n.default_language", pf.Lookup("lang"))

	root.AddCommand(
		a.serveCommand(),
		a.schemesCommand(),
		a.themeCommand(),
		a.i18nCommand(),
		a.tuiCommand(),
		a.versionCommand(),
		a.configCommand(),
	)
	return root
}

// Execute runs the root command against os.Args
func Execute() error {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return err
	}
	return nil
}

// configPath returns the --config flag, HOMUNCULUS_CONFIG or the
// platform default
func (a *app) configPath() string {
	if p := a.v.GetString("config"); p != "" {
		return p
	}
	return a.paths.ConfigFile()
}

// dataPaths returns the platform paths with the --data-dir override
// applied
func (a *app) dataPaths() *paths.Paths {
	p := *a.paths
	if d := a.v.GetString("data_dir"); d != "" {
		p.DataDir = d
	}
	return &p
}

// loadConfig reads the config file, layers environment and flag
// overrides on top and validates the result. A missing file is not an
// error; defaults are used instead, and written out when create is set.
func (a *app) loadConfig(create bool, stderr io.Writer) error {
	path := a.configPath()
	var cfg *config.Config
	if create {
		c, created, err := config.LoadOrCreate(path)
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintf(stderr, "Created default config: %s\n", path)
		}
		cfg = c
	} else {
		c, err := config.Load(path)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return err
			}
			c = config.DefaultConfig()
			c.SetPath(path)
		}
		cfg = c
	}

	for _, o := range overrides {
		if a.v.IsSet(o.key) {
			o.apply(cfg, a.v, o.key)
		}
	}

	dirs := a.dataPaths()
	if cfg.Storage.Path != "" && !filepath.IsAbs(cfg.Storage.Path) {
		cfg.Storage.Path = filepath.Join(dirs.DataDir, cfg.Storage.Path)
	}
	if strings.EqualFold(cfg.Storage.Backend, prefs.BackendSQL) &&
		isSQLite(cfg.Storage.Driver) && cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "file:" + dirs.DatabaseFile()
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

func isSQLite(driver string) bool {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite", "sqlite3":
		return true
	}
	return false
}

// session is the opened state a command works against
type session struct {
	logs     *logging.Manager
	store    prefs.Store
	provider *provider.Provider
}

// open builds logging, storage and a provider loaded with the stored
// preferences
func (a *app) open(ctx context.Context) (*session, error) {
	logs, err := logging.NewManager(a.cfg.Logging)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(a.cfg.Storage.Backend, prefs.BackendSQL) && isSQLite(a.cfg.Storage.Driver) {
		if err := os.MkdirAll(a.dataPaths().DataDir, 0755); err != nil {
			logs.Close()
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	store, err := prefs.Open(ctx, &a.cfg.Storage)
	if err != nil {
		logs.Close()
		return nil, fmt.Errorf("open %s storage: %w", a.cfg.Storage.Backend, err)
	}

	logger := logs.Server()
	persistence := prefs.NewPersistence(store, logger).WithDefaultScheme(a.cfg.Theme.InitialScheme)
	p := provider.New(persistence,
		provider.WithLogger(logger),
		provider.WithAudit(logs.Audit()),
	)
	p.Init(ctx)

	return &session{logs: logs, store: store, provider: p}, nil
}

// Close releases storage and log files
func (rt *session) Close() error {
	return errors.Join(rt.store.Close(), rt.logs.Close())
}

// cliContext tags ctx so audit entries record the command line as the
// change source
func cliContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return provider.WithSource(ctx, provider.SourceCLI)
}
