package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/apimgr/homunculus/src/config"
	"github.com/apimgr/homunculus/src/paths"
	"github.com/apimgr/homunculus/src/provider"
	"github.com/apimgr/homunculus/src/theme"
)

// testEnv is an isolated config file and data directory
type testEnv struct {
	dir        string
	configPath string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	return &testEnv{dir: dir, configPath: filepath.Join(dir, "homunculus.yml")}
}

// run executes one command line against a fresh root command
func (e *testEnv) run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root := NewRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", e.configPath, "--data-dir", e.dir}, args...))
	err = root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, stderr, err := e.run(t, args...)
	if err != nil {
		t.Fatalf("%v: %v (stderr: %s)", args, err, stderr)
	}
	return out
}

func (e *testEnv) snapshot(t *testing.T, args ...string) provider.Snapshot {
	t.Helper()
	out := e.mustRun(t, append(args, "theme", "get", "--format", "json")...)
	var snap provider.Snapshot
	if err := json.Unmarshal([]byte(out), &snap); err != nil {
		t.Fatalf("decode snapshot: %v\n%s", err, out)
	}
	return snap
}

func TestVersionCommand(t *testing.T) {
	e := newTestEnv(t)
	out := e.mustRun(t, "version")
	if !strings.Contains(out, "homunculus "+config.Version) {
		t.Errorf("version output = %q", out)
	}
	if !strings.Contains(out, "OS/Arch:") {
		t.Errorf("version output missing build info: %q", out)
	}
}

func TestVersionSkipsInvalidConfig(t *testing.T) {
	e := newTestEnv(t)
	if err := os.WriteFile(e.configPath, []byte("server: [broken"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, _, err := e.run(t, "version"); err != nil {
		t.Errorf("version with broken config: %v", err)
	}
	if _, _, err := e.run(t, "config", "show"); err == nil {
		t.Error("config show with broken config should fail")
	}
}

func TestConfigInit(t *testing.T) {
	e := newTestEnv(t)

	out := e.mustRun(t, "config", "init")
	if !strings.Contains(out, e.configPath) {
		t.Errorf("init output = %q", out)
	}
	info, err := os.Stat(e.configPath)
	if err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config mode = %v, want 0600", info.Mode().Perm())
	}

	if _, _, err := e.run(t, "config", "init"); err == nil {
		t.Error("second init should fail without --force")
	}
	e.mustRun(t, "config", "init", "--force")

	cfg, err := config.Load(e.configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("port = %d, want 3000", cfg.Server.Port)
	}
}

func TestConfigPath(t *testing.T) {
	e := newTestEnv(t)
	out := e.mustRun(t, "config", "path")
	if strings.TrimSpace(out) != e.configPath {
		t.Errorf("config path = %q, want %q", out, e.configPath)
	}
}

func showConfig(t *testing.T, e *testEnv, args ...string) *config.Config {
	t.Helper()
	out := e.mustRun(t, append(args, "config", "show")...)
	cfg := &config.Config{}
	if err := yaml.Unmarshal([]byte(out), cfg); err != nil {
		t.Fatalf("decode config show: %v\n%s", err, out)
	}
	return cfg
}

func TestConfigLayering(t *testing.T) {
	e := newTestEnv(t)
	file := "server:\n  port: 4000\n  address: 0.0.0.0\nstorage:\n  backend: memory\n"
	if err := os.WriteFile(e.configPath, []byte(file), 0600); err != nil {
		t.Fatal(err)
	}

	cfg := showConfig(t, e)
	if cfg.Server.Port != 4000 || cfg.Server.Address != "0.0.0.0" {
		t.Errorf("file values not applied: %+v", cfg.Server)
	}
	if !cfg.Server.Metrics {
		t.Error("keys absent from the file should keep defaults")
	}

	t.Setenv("HOMUNCULUS_SERVER_PORT", "5000")
	cfg = showConfig(t, e)
	if cfg.Server.Port != 5000 {
		t.Errorf("env port = %d, want 5000", cfg.Server.Port)
	}

	cfg = showConfig(t, e, "--storage", "file", "--log-level", "debug", "--lang", "zh")
	if cfg.Storage.Backend != "file" {
		t.Errorf("flag backend = %q, want file", cfg.Storage.Backend)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("flag log level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.I18n.DefaultLanguage != "zh" {
		t.Errorf("flag language = %q, want zh", cfg.I18n.DefaultLanguage)
	}
}

func TestConfigStoragePaths(t *testing.T) {
	e := newTestEnv(t)

	cfg := showConfig(t, e)
	if want := filepath.Join(e.dir, "preferences.json"); cfg.Storage.Path != want {
		t.Errorf("storage path = %q, want %q", cfg.Storage.Path, want)
	}

	cfg = showConfig(t, e, "--storage", "sql")
	if want := "file:" + filepath.Join(e.dir, "preferences.db"); cfg.Storage.DSN != want {
		t.Errorf("sqlite dsn = %q, want %q", cfg.Storage.DSN, want)
	}
}

func TestInvalidConfigRejected(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"log level", []string{"--log-level", "verbose"}},
		{"backend", []string{"--storage", "etcd"}},
		{"language", []string{"--lang", "xx"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t)
			_, _, err := e.run(t, append(tt.args, "theme", "get")...)
			if !errors.Is(err, config.ErrInvalid) {
				t.Errorf("error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestThemeGetDefaults(t *testing.T) {
	e := newTestEnv(t)
	snap := e.snapshot(t)
	if snap.Scheme.ID != theme.DefaultSchemeID {
		t.Errorf("scheme = %q, want %q", snap.Scheme.ID, theme.DefaultSchemeID)
	}
	if snap.Settings != theme.DefaultSettings() {
		t.Errorf("settings = %+v, want defaults", snap.Settings)
	}

	out := e.mustRun(t, "theme", "get")
	if !strings.Contains(out, "font size:     16px") {
		t.Errorf("text output = %q", out)
	}
}

func TestThemeInitialSchemeFromConfig(t *testing.T) {
	e := newTestEnv(t)
	if err := os.WriteFile(e.configPath, []byte("theme:\n  initial_scheme: byzantine\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if snap := e.snapshot(t); snap.Scheme.ID != "byzantine" {
		t.Errorf("scheme = %q, want byzantine", snap.Scheme.ID)
	}
}

func TestThemeSetPersists(t *testing.T) {
	e := newTestEnv(t)

	out := e.mustRun(t, "theme", "set", "estonian")
	if !strings.Contains(out, "scheme set to estonian") {
		t.Errorf("set output = %q", out)
	}

	snap := e.snapshot(t)
	if snap.SchemeID != "estonian" || snap.Scheme.ID != "estonian" {
		t.Errorf("persisted scheme = %q/%q, want estonian", snap.SchemeID, snap.Scheme.ID)
	}
	if _, err := os.Stat(filepath.Join(e.dir, "preferences.json")); err != nil {
		t.Errorf("preferences file not written: %v", err)
	}
}

func TestThemeSetUnknownScheme(t *testing.T) {
	e := newTestEnv(t)

	out, stderr, err := e.run(t, "theme", "set", "sepia")
	if err != nil {
		t.Fatalf("set unknown scheme: %v", err)
	}
	if !strings.Contains(stderr, `unknown scheme "sepia"`) {
		t.Errorf("stderr = %q", stderr)
	}
	if !strings.Contains(out, theme.DefaultSchemeID) {
		t.Errorf("out = %q", out)
	}

	snap := e.snapshot(t)
	if snap.SchemeID != "sepia" {
		t.Errorf("stored id = %q, want the raw id", snap.SchemeID)
	}
	if snap.Scheme.ID != theme.DefaultSchemeID {
		t.Errorf("resolved scheme = %q, want default", snap.Scheme.ID)
	}
}

func TestThemeApply(t *testing.T) {
	e := newTestEnv(t)

	e.mustRun(t, "theme", "apply", "--font-size", "18")
	e.mustRun(t, "theme", "apply", "--density", "compact", "--animations=false")

	s := e.snapshot(t).Settings
	if s.FontSize != 18 {
		t.Errorf("font size = %d, want 18 kept from the first apply", s.FontSize)
	}
	if s.Density != theme.DensityCompact {
		t.Errorf("density = %q, want compact", s.Density)
	}
	if s.Animations {
		t.Error("animations should be off")
	}
	if s.FontFamily != theme.DefaultSettings().FontFamily {
		t.Errorf("font family = %q, want default", s.FontFamily)
	}
}

func TestThemeApplyInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"font size", []string{"--font-size", "40"}, theme.ErrFontSize},
		{"font weight", []string{"--font-weight", "450"}, theme.ErrFontWeight},
		{"font family", []string{"--font-family", "Comic Sans"}, theme.ErrUnknownFontFamily},
		{"border radius", []string{"--border-radius", "-1"}, theme.ErrBorderRadius},
		{"contrast", []string{"--contrast", "max"}, theme.ErrContrast},
		{"density", []string{"--density", "roomy"}, theme.ErrDensity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t)
			_, _, err := e.run(t, append([]string{"theme", "apply"}, tt.args...)...)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			if s := e.snapshot(t).Settings; s != theme.DefaultSettings() {
				t.Errorf("rejected settings were stored: %+v", s)
			}
		})
	}
}

func TestThemeReset(t *testing.T) {
	e := newTestEnv(t)
	e.mustRun(t, "theme", "set", "german")
	e.mustRun(t, "theme", "apply", "--font-size", "20", "--contrast", "high")

	out := e.mustRun(t, "theme", "reset")
	if !strings.Contains(out, "German") && !strings.Contains(out, "german") {
		t.Errorf("reset output = %q", out)
	}

	snap := e.snapshot(t)
	if snap.Settings != theme.DefaultSettings() {
		t.Errorf("settings after reset = %+v", snap.Settings)
	}
	if snap.Scheme.ID != "german" {
		t.Errorf("reset changed the scheme to %q", snap.Scheme.ID)
	}
}

func TestThemeCSS(t *testing.T) {
	e := newTestEnv(t)
	e.mustRun(t, "theme", "apply", "--font-size", "14")

	out := e.mustRun(t, "theme", "css")
	for _, want := range []string{theme.CSSVarPrimary, theme.CSSVarFontSizeBase + ": 14px"} {
		if !strings.Contains(out, want) {
			t.Errorf("css missing %q:\n%s", want, out)
		}
	}
}

func TestMemoryStorageDoesNotPersist(t *testing.T) {
	e := newTestEnv(t)
	e.mustRun(t, "--storage", "memory", "theme", "set", "german")
	if snap := e.snapshot(t, "--storage", "memory"); snap.Scheme.ID != theme.DefaultSchemeID {
		t.Errorf("memory store kept %q across runs", snap.Scheme.ID)
	}
}

func TestSQLiteStorage(t *testing.T) {
	e := newTestEnv(t)
	e.mustRun(t, "--storage", "sql", "theme", "set", "blueOrange")
	e.mustRun(t, "--storage", "sql", "theme", "apply", "--border-radius", "12")

	snap := e.snapshot(t, "--storage", "sql")
	if snap.Scheme.ID != "blueOrange" {
		t.Errorf("scheme = %q, want blueOrange", snap.Scheme.ID)
	}
	if snap.Settings.BorderRadius != 12 {
		t.Errorf("border radius = %d, want 12", snap.Settings.BorderRadius)
	}
	if _, err := os.Stat(filepath.Join(e.dir, "preferences.db")); err != nil {
		t.Errorf("database not created in data dir: %v", err)
	}
}

func TestSchemesList(t *testing.T) {
	e := newTestEnv(t)
	e.mustRun(t, "theme", "set", "primalForest")

	out := e.mustRun(t, "schemes", "list")
	for _, s := range theme.ListSchemes() {
		if !strings.Contains(out, s.ID) {
			t.Errorf("table missing %q", s.ID)
		}
	}

	var rows []schemeRow
	if err := json.Unmarshal([]byte(e.mustRun(t, "schemes", "list", "-f", "json")), &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != len(theme.ListSchemes()) {
		t.Fatalf("rows = %d, want %d", len(rows), len(theme.ListSchemes()))
	}
	active := 0
	for _, r := range rows {
		if r.Active {
			active++
			if r.ID != "primalForest" {
				t.Errorf("active = %q, want primalForest", r.ID)
			}
		}
		if r.Light != theme.IsLight(r.ID) {
			t.Errorf("%s light = %v", r.ID, r.Light)
		}
	}
	if active != 1 {
		t.Errorf("active rows = %d, want 1", active)
	}

	if _, _, err := e.run(t, "schemes", "list", "-f", "xml"); err == nil {
		t.Error("unsupported format should fail")
	}
}

func TestSchemesShow(t *testing.T) {
	e := newTestEnv(t)

	out := e.mustRun(t, "schemes", "show", "neonCyberpunk")
	s := theme.GetSchemeByID("neonCyberpunk")
	for _, slot := range s.Slots {
		if !strings.Contains(out, slot.Hex) {
			t.Errorf("show missing slot %s %s", slot.Name, slot.Hex)
		}
	}

	out, stderr, err := e.run(t, "schemes", "show", "nope")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, `unknown scheme "nope"`) {
		t.Errorf("stderr = %q", stderr)
	}
	if !strings.Contains(out, "("+theme.DefaultSchemeID+")") {
		t.Errorf("fallback output = %q", out)
	}
}

func TestSchemesExport(t *testing.T) {
	e := newTestEnv(t)

	var all []theme.Scheme
	if err := json.Unmarshal([]byte(e.mustRun(t, "schemes", "export")), &all); err != nil {
		t.Fatal(err)
	}
	if len(all) != len(theme.ListSchemes()) {
		t.Errorf("exported %d schemes", len(all))
	}

	var some []theme.Scheme
	if err := yaml.Unmarshal([]byte(e.mustRun(t, "schemes", "export", "-f", "yaml", "german", "estonian")), &some); err != nil {
		t.Fatal(err)
	}
	if len(some) != 2 || some[0].ID != "german" || some[1].ID != "estonian" {
		t.Errorf("yaml export = %+v", some)
	}

	css := e.mustRun(t, "schemes", "export", "-f", "css")
	if !strings.Contains(css, `[data-theme="byzantine"]`) {
		t.Errorf("catalog css missing byzantine block")
	}
	css = e.mustRun(t, "schemes", "export", "-f", "css", "german")
	if strings.Contains(css, "byzantine") || !strings.Contains(css, `[data-theme="german"]`) {
		t.Errorf("single scheme css = %q", css)
	}

	if _, _, err := e.run(t, "schemes", "export", "nope"); err == nil {
		t.Error("unknown scheme should fail")
	}
	if _, _, err := e.run(t, "schemes", "export", "-f", "toml"); err == nil {
		t.Error("unsupported format should fail")
	}
}

func TestI18nCommand(t *testing.T) {
	e := newTestEnv(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"english key", []string{"i18n", "en", "themeSettings"}, "Theme Settings\n"},
		{"chinese key", []string{"i18n", "zh", "themeSettings"}, "主题设置\n"},
		{"unknown language is chinese", []string{"i18n", "fr", "themeSettings"}, "主题设置\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.mustRun(t, tt.args...); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	list := e.mustRun(t, "i18n", "en", "versionFeatures")
	if n := strings.Count(list, "\n"); n != 5 {
		t.Errorf("versionFeatures lines = %d, want 5", n)
	}

	if _, _, err := e.run(t, "i18n", "en", "no.such.key"); err == nil {
		t.Error("missing key should fail")
	}

	all := e.mustRun(t, "i18n", "en")
	if !strings.Contains(all, "appName = Homunculus\n") {
		t.Errorf("table output missing appName")
	}

	var table map[string]string
	if err := json.Unmarshal([]byte(e.mustRun(t, "i18n", "zh", "-f", "json")), &table); err != nil {
		t.Fatal(err)
	}
	if table["themeSettings"] != "主题设置" {
		t.Errorf("json themeSettings = %q", table["themeSettings"])
	}
}

func TestTUIRequiresTerminal(t *testing.T) {
	orig := isInteractive
	isInteractive = func() bool { return false }
	defer func() { isInteractive = orig }()

	e := newTestEnv(t)
	if _, _, err := e.run(t, "tui"); !errors.Is(err, errNotTerminal) {
		t.Errorf("error = %v, want errNotTerminal", err)
	}
}

func TestSettingsFromFlags(t *testing.T) {
	cmd := NewRootCommand()
	apply, _, err := cmd.Find([]string{"theme", "apply"})
	if err != nil {
		t.Fatal(err)
	}
	if err := apply.ParseFlags([]string{"--font-weight", "600", "--contrast", "high"}); err != nil {
		t.Fatal(err)
	}

	cur := theme.DefaultSettings()
	cur.FontSize = 19
	got, err := settingsFromFlags(apply, cur)
	if err != nil {
		t.Fatal(err)
	}
	want := cur
	want.FontWeight = 600
	want.Contrast = theme.ContrastHigh
	if got != want {
		t.Errorf("settingsFromFlags() = %+v, want %+v", got, want)
	}
}

func TestStartupBanner(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.Metrics = false
	a := &app{cfg: cfg}

	b := a.startupBanner(&session{provider: provider.New(nil)})
	if b.URL != "http://127.0.0.1:3000" {
		t.Errorf("URL = %q", b.URL)
	}
	for _, r := range b.Routes {
		if r.Path == "/metrics" {
			t.Error("metrics route listed while disabled")
		}
	}
	found := false
	for _, d := range b.Details {
		if d.Label == "Scheme" && d.Value == theme.DefaultSchemeID {
			found = true
		}
	}
	if !found {
		t.Errorf("details missing active scheme: %+v", b.Details)
	}
}

func TestLoadConfigCreate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf", "homunculus.yml")
	newApp := func() *app {
		a := &app{v: viper.New(), paths: &paths.Paths{ConfigDir: dir, DataDir: dir, LogDir: dir}}
		a.v.Set("config", path)
		return a
	}

	var stderr bytes.Buffer
	if err := newApp().loadConfig(false, &stderr); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("plain load wrote %s", path)
	}

	a := newApp()
	if err := a.loadConfig(true, &stderr); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config not created: %v", err)
	}
	if !strings.Contains(stderr.String(), "Created default config") {
		t.Errorf("stderr = %q", stderr.String())
	}
	if a.cfg.GetPath() != path {
		t.Errorf("config path = %q, want %q", a.cfg.GetPath(), path)
	}

	stderr.Reset()
	if err := newApp().loadConfig(true, &stderr); err != nil {
		t.Fatal(err)
	}
	if stderr.Len() != 0 {
		t.Errorf("existing config reported as created: %q", stderr.String())
	}
}
