package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// Project identity used to build directory names
const (
	ProjectOrg  = "apimgr"
	ProjectName = "homunculus"
)

// Paths represents OS-specific paths for the application
type Paths struct {
	ConfigDir string
	DataDir   string
	LogDir    string
}

// goos is used for testing - allows overriding runtime.GOOS
var goos = runtime.GOOS

// homeDir is used for testing - allows overriding the home directory
var homeDir = func() string {
	h, _ := os.UserHomeDir()
	return h
}

// Default returns the paths for this project at the current privilege level
func Default() *Paths {
	return Get(ProjectOrg, ProjectName, IsPrivileged())
}

// Get returns OS-specific paths based on OS and privilege level
func Get(org, name string, privileged bool) *Paths {
	switch goos {
	case "darwin":
		return getDarwinPaths(org, name, privileged)
	case "windows":
		return getWindowsPaths(org, name, privileged)
	default:
		return getUnixPaths(org, name, privileged)
	}
}

// getUnixPaths returns Linux and BSD paths
func getUnixPaths(org, name string, privileged bool) *Paths {
	if privileged {
		etc := "/etc"
		data := "/var/lib"
		if goos == "freebsd" || goos == "openbsd" || goos == "netbsd" {
			etc = "/usr/local/etc"
			data = "/var/db"
		}
		return &Paths{
			ConfigDir: filepath.Join(etc, org, name),
			DataDir:   filepath.Join(data, org, name),
			LogDir:    filepath.Join("/var/log", org, name),
		}
	}

	home := homeDir()
	return &Paths{
		ConfigDir: filepath.Join(home, ".config", org, name),
		DataDir:   filepath.Join(home, ".local/share", org, name),
		LogDir:    filepath.Join(home, ".local/log", org, name),
	}
}

// getDarwinPaths returns macOS paths
func getDarwinPaths(org, name string, privileged bool) *Paths {
	if privileged {
		base := filepath.Join("/Library/Application Support", org, name)
		return &Paths{
			ConfigDir: base,
			DataDir:   filepath.Join(base, "data"),
			LogDir:    filepath.Join("/Library/Logs", org, name),
		}
	}

	home := homeDir()
	base := filepath.Join(home, "Library/Application Support", org, name)
	return &Paths{
		ConfigDir: base,
		DataDir:   base,
		LogDir:    filepath.Join(home, "Library/Logs", org, name),
	}
}

// getWindowsPaths returns Windows paths
func getWindowsPaths(org, name string, privileged bool) *Paths {
	if privileged {
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = "C:\\ProgramData"
		}
		base := filepath.Join(programData, org, name)
		return &Paths{
			ConfigDir: base,
			DataDir:   filepath.Join(base, "data"),
			LogDir:    filepath.Join(base, "logs"),
		}
	}

	appData := os.Getenv("AppData")
	localAppData := os.Getenv("LocalAppData")
	if appData == "" {
		appData = filepath.Join(homeDir(), "AppData", "Roaming")
		localAppData = filepath.Join(homeDir(), "AppData", "Local")
	}
	data := filepath.Join(localAppData, org, name)
	return &Paths{
		ConfigDir: filepath.Join(appData, org, name),
		DataDir:   data,
		LogDir:    filepath.Join(data, "logs"),
	}
}

// IsPrivileged returns true if running as root
func IsPrivileged() bool {
	if goos == "windows" {
		return false
	}
	return os.Getuid() == 0
}

// ConfigFile returns the path to the YAML config file
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, ProjectName+".yml")
}

// PreferencesFile returns the default file-backed preference store path
func (p *Paths) PreferencesFile() string {
	return filepath.Join(p.DataDir, "preferences.json")
}

// DatabaseFile returns the default SQLite preference database path
func (p *Paths) DatabaseFile() string {
	return filepath.Join(p.DataDir, "preferences.db")
}

// EnsureDirs creates all directories
func (p *Paths) EnsureDirs() error {
	for _, dir := range []string{p.ConfigDir, p.DataDir, p.LogDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
