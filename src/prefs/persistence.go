package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/apimgr/homunculus/src/theme"
)

// Storage keys
const (
	KeyColorScheme = "preferredColorScheme"
	KeySettings    = "theme-settings"
)

// SettingsVersion is the current version of the settings record
const SettingsVersion = 2

// Preferences is the persisted pair loaded at startup
type Preferences struct {
	SchemeID string         `json:"schemeId"`
	Settings theme.Settings `json:"settings"`
}

// settingsRecord is the on-disk settings envelope
type settingsRecord struct {
	Version  int             `json:"version"`
	Settings json.RawMessage `json:"settings"`
}

// Persistence reads and writes theme preferences through a Store.
// Reads never fail: missing or damaged data falls back to defaults.
type Persistence struct {
	store         Store
	logger        *slog.Logger
	defaultScheme string
}

// NewPersistence creates a Persistence over store. A nil logger uses slog.Default.
func NewPersistence(store Store, logger *slog.Logger) *Persistence {
	if logger == nil {
		logger = slog.Default()
	}
	return &Persistence{store: store, logger: logger, defaultScheme: theme.DefaultSchemeID}
}

// WithDefaultScheme sets the scheme id returned when none is stored
func (p *Persistence) WithDefaultScheme(id string) *Persistence {
	if id != "" {
		p.defaultScheme = id
	}
	return p
}

// Store returns the underlying store
func (p *Persistence) Store() Store {
	return p.store
}

// Load returns the stored scheme id and settings, substituting defaults
// for anything missing or unreadable. The scheme id is returned as stored;
// resolving unknown ids is left to the scheme registry.
func (p *Persistence) Load(ctx context.Context) Preferences {
	return Preferences{
		SchemeID: p.LoadScheme(ctx),
		Settings: p.LoadSettings(ctx),
	}
}

// LoadScheme returns the stored scheme id or the default id
func (p *Persistence) LoadScheme(ctx context.Context) string {
	id, err := p.store.Get(ctx, KeyColorScheme)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			p.logger.Warn("failed to load color scheme, using default", "error", err)
		}
		return p.defaultScheme
	}
	if id == "" {
		return p.defaultScheme
	}
	return id
}

// LoadSettings returns the stored settings or defaults
func (p *Persistence) LoadSettings(ctx context.Context) theme.Settings {
	raw, err := p.store.Get(ctx, KeySettings)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			p.logger.Warn("failed to load theme settings, using defaults", "error", err)
		}
		return theme.DefaultSettings()
	}

	s, err := DecodeSettings([]byte(raw))
	if err != nil {
		p.logger.Warn("failed to parse theme settings, using defaults", "error", err)
		return theme.DefaultSettings()
	}
	if verr := s.Validate(); verr != nil {
		p.logger.Warn("stored theme settings out of range, normalizing", "error", verr)
		s = s.Normalize()
	}
	return s
}

// SaveScheme stores the scheme id exactly as given
func (p *Persistence) SaveScheme(ctx context.Context, id string) error {
	if err := p.store.Set(ctx, KeyColorScheme, id); err != nil {
		return fmt.Errorf("failed to save color scheme: %w", err)
	}
	return nil
}

// SaveSettings stores settings as a versioned record
func (p *Persistence) SaveSettings(ctx context.Context, s theme.Settings) error {
	data, err := EncodeSettings(s)
	if err != nil {
		return err
	}
	if err := p.store.Set(ctx, KeySettings, string(data)); err != nil {
		return fmt.Errorf("failed to save theme settings: %w", err)
	}
	return nil
}

// Clear removes both stored preferences
func (p *Persistence) Clear(ctx context.Context) error {
	return errors.Join(
		p.store.Delete(ctx, KeyColorScheme),
		p.store.Delete(ctx, KeySettings),
	)
}

// EncodeSettings encodes settings as the current versioned record
func EncodeSettings(s theme.Settings) ([]byte, error) {
	inner, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode theme settings: %w", err)
	}
	data, err := json.Marshal(settingsRecord{Version: SettingsVersion, Settings: inner})
	if err != nil {
		return nil, fmt.Errorf("failed to encode theme settings: %w", err)
	}
	return data, nil
}

// DecodeSettings parses a settings record. Version 1 records are the bare
// settings object; later versions wrap it in {"version":N,"settings":{...}}.
// Fields absent from the record keep their default values. The result is
// not validated.
func DecodeSettings(data []byte) (theme.Settings, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return theme.Settings{}, fmt.Errorf("settings record is not a JSON object: %w", err)
	}

	body := data
	if _, ok := fields["version"]; ok {
		var rec settingsRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return theme.Settings{}, fmt.Errorf("invalid settings envelope: %w", err)
		}
		if rec.Version < 2 {
			return theme.Settings{}, fmt.Errorf("unsupported settings version %d", rec.Version)
		}
		if len(rec.Settings) == 0 || string(rec.Settings) == "null" {
			return theme.DefaultSettings(), nil
		}
		body = rec.Settings
	}

	s := theme.DefaultSettings()
	if err := json.Unmarshal(body, &s); err != nil {
		return theme.Settings{}, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}
