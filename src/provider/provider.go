package provider

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/apimgr/homunculus/src/logging"
	"github.com/apimgr/homunculus/src/metrics"
	"github.com/apimgr/homunculus/src/prefs"
	"github.com/apimgr/homunculus/src/theme"
)

// Snapshot is a consistent view of the provider state
type Snapshot struct {
	// SchemeID is the id last selected, exactly as given
	SchemeID  string         `json:"schemeId"`
	Scheme    theme.Scheme   `json:"scheme"`
	Settings  theme.Settings `json:"settings"`
	Resolved  theme.Resolved `json:"resolved"`
	UpdatedAt time.Time      `json:"updatedAt"`
	// Seq increases by one on every change
	Seq uint64 `json:"seq"`
}

// Provider is the single owner of the live theme state. It loads stored
// preferences once, re-resolves the theme on every change, pushes the
// result to a style sink, persists it and notifies subscribers.
// All methods are safe for concurrent use.
type Provider struct {
	// changeMu serializes changes together with their notifications
	changeMu    sync.Mutex
	mu          sync.RWMutex
	initOnce    sync.Once
	persistence *prefs.Persistence
	sink        theme.StyleSink
	logger      *slog.Logger
	audit       *logging.AuditLogger
	now         func() time.Time

	schemeID  string
	scheme    theme.Scheme
	settings  theme.Settings
	resolved  theme.Resolved
	updatedAt time.Time
	seq       uint64

	subMu sync.Mutex
	subs  []subscription
}

type subscription struct {
	id string
	fn func(Snapshot)
}

// Option configures a Provider
type Option func(*Provider)

// WithSink sets the style sink that receives resolved variables
func WithSink(sink theme.StyleSink) Option {
	return func(p *Provider) { p.sink = sink }
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithAudit sets the audit logger for preference changes
func WithAudit(audit *logging.AuditLogger) Option {
	return func(p *Provider) { p.audit = audit }
}

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		if now != nil {
			p.now = now
		}
	}
}

// New creates a provider in the default state. Call Init to load stored
// preferences. A nil persistence keeps state in memory only.
func New(persistence *prefs.Persistence, opts ...Option) *Provider {
	if persistence == nil {
		persistence = prefs.NewPersistence(prefs.NewMemoryStore(), nil)
	}
	p := &Provider{
		persistence: persistence,
		logger:      slog.Default(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.setLocked(theme.DefaultSchemeID, theme.DefaultSettings())
	return p
}

// Init loads stored preferences and applies them. Only the first call
// has any effect.
func (p *Provider) Init(ctx context.Context) {
	p.initOnce.Do(func() {
		p.changeMu.Lock()
		defer p.changeMu.Unlock()

		loaded := p.persistence.Load(ctx)

		p.mu.Lock()
		p.setLocked(loaded.SchemeID, loaded.Settings.Normalize())
		snap := p.snapshotLocked()
		p.mu.Unlock()

		p.logger.Info("theme initialized", "scheme", snap.Scheme.ID, "stored_scheme", loaded.SchemeID)
		metrics.SetActiveScheme(snap.Scheme.ID, theme.SchemeIDs())
		p.notify(snap)
	})
}

// setLocked updates state, re-resolves and pushes to the sink. Caller holds mu.
func (p *Provider) setLocked(schemeID string, settings theme.Settings) {
	p.schemeID = schemeID
	p.scheme = theme.GetSchemeByID(schemeID)
	p.settings = settings
	p.resolved = theme.Resolve(p.scheme, p.settings)
	p.updatedAt = p.now()
	p.seq++
	p.resolved.ApplyTo(p.sink)
}

func (p *Provider) snapshotLocked() Snapshot {
	return Snapshot{
		SchemeID:  p.schemeID,
		Scheme:    theme.GetSchemeByID(p.scheme.ID),
		Settings:  p.settings,
		Resolved:  p.resolved,
		UpdatedAt: p.updatedAt,
		Seq:       p.seq,
	}
}

// SetColorScheme selects a scheme. Unknown ids resolve to the default
// scheme; the id is persisted as given.
func (p *Provider) SetColorScheme(ctx context.Context, id string) Snapshot {
	p.Init(ctx)

	p.changeMu.Lock()
	defer p.changeMu.Unlock()

	p.mu.Lock()
	from := p.schemeID
	p.setLocked(id, p.settings)
	snap := p.snapshotLocked()
	err := p.persistence.SaveScheme(ctx, id)
	p.mu.Unlock()

	if err != nil {
		metrics.PersistErrors.WithLabelValues(prefs.KeyColorScheme).Inc()
		p.logger.Warn("failed to persist color scheme", "scheme", id, "error", err)
	}
	if snap.Scheme.ID != id {
		p.logger.Warn("unknown color scheme, using fallback", "requested", id, "scheme", snap.Scheme.ID)
	}
	metrics.SchemeChanges.WithLabelValues(snap.Scheme.ID).Inc()
	metrics.SetActiveScheme(snap.Scheme.ID, theme.SchemeIDs())
	p.audit.LogSchemeChange(SourceFrom(ctx), from, id, err)

	p.notify(snap)
	return snap
}

// ApplySettings replaces the active settings. Out-of-range values are
// normalized before use.
func (p *Provider) ApplySettings(ctx context.Context, s theme.Settings) Snapshot {
	return p.applySettings(ctx, s, false)
}

// ResetSettings restores the default settings
func (p *Provider) ResetSettings(ctx context.Context) Snapshot {
	return p.applySettings(ctx, theme.DefaultSettings(), true)
}

func (p *Provider) applySettings(ctx context.Context, s theme.Settings, reset bool) Snapshot {
	p.Init(ctx)

	if err := s.Validate(); err != nil {
		p.logger.Warn("normalizing theme settings", "error", err)
		s = s.Normalize()
	}

	p.changeMu.Lock()
	defer p.changeMu.Unlock()

	p.mu.Lock()
	p.setLocked(p.schemeID, s)
	snap := p.snapshotLocked()
	err := p.persistence.SaveSettings(ctx, s)
	p.mu.Unlock()

	if err != nil {
		metrics.PersistErrors.WithLabelValues(prefs.KeySettings).Inc()
		p.logger.Warn("failed to persist theme settings", "error", err)
	}
	metrics.SettingsApplied.Inc()
	p.audit.LogSettingsApply(SourceFrom(ctx), s, reset, err)

	p.notify(snap)
	return snap
}

// SchemeID returns the id last selected, as given
func (p *Provider) SchemeID() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.schemeID
}

// Scheme returns the active scheme
func (p *Provider) Scheme() theme.Scheme {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return theme.GetSchemeByID(p.scheme.ID)
}

// Settings returns the active settings
func (p *Provider) Settings() theme.Settings {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.settings
}

// Resolved returns the active resolved theme
func (p *Provider) Resolved() theme.Resolved {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.resolved
}

// Schemes returns the scheme catalog
func (p *Provider) Schemes() []theme.Scheme {
	return theme.ListSchemes()
}

// Snapshot returns the full state under one lock
func (p *Provider) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshotLocked()
}

// Subscribe registers fn to receive a snapshot after every change.
// Callbacks run synchronously on the changing goroutine, in
// registration order, and see changes in Seq order. A callback may read
// the provider but must not change it. The returned func removes the
// subscription.
func (p *Provider) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	id := uuid.NewString()

	p.subMu.Lock()
	p.subs = append(p.subs, subscription{id: id, fn: fn})
	metrics.Subscribers.Set(float64(len(p.subs)))
	p.subMu.Unlock()

	return func() {
		p.subMu.Lock()
		defer p.subMu.Unlock()
		for i, s := range p.subs {
			if s.id == id {
				p.subs = append(p.subs[:i:i], p.subs[i+1:]...)
				break
			}
		}
		metrics.Subscribers.Set(float64(len(p.subs)))
	}
}

func (p *Provider) notify(snap Snapshot) {
	p.subMu.Lock()
	subs := make([]subscription, len(p.subs))
	copy(subs, p.subs)
	p.subMu.Unlock()

	for _, s := range subs {
		s.fn(snap)
	}
}
