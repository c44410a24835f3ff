package provider

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/apimgr/homunculus/src/logging"
	"github.com/apimgr/homunculus/src/prefs"
	"github.com/apimgr/homunculus/src/theme"
)

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (string, error) { return "", errors.New("unavailable") }
func (brokenStore) Set(context.Context, string, string) error   { return errors.New("unavailable") }
func (brokenStore) Delete(context.Context, string) error        { return errors.New("unavailable") }
func (brokenStore) Close() error                                { return nil }

func newFileProvider(t *testing.T, path string, opts ...Option) *Provider {
	t.Helper()
	store, err := prefs.NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	p := New(prefs.NewPersistence(store, nil), opts...)
	p.Init(context.Background())
	return p
}

func TestSchemeSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.json")

	first := newFileProvider(t, path)
	if got := first.Scheme().ID; got != theme.DefaultSchemeID {
		t.Fatalf("initial scheme = %q, want %q", got, theme.DefaultSchemeID)
	}
	if first.Resolved().Palette.Mode != theme.ModeLight {
		t.Errorf("initial mode = %q, want light", first.Resolved().Palette.Mode)
	}

	snap := first.SetColorScheme(ctx, "neonCyberpunk")
	if snap.Scheme.ID != "neonCyberpunk" {
		t.Errorf("snapshot scheme = %q, want neonCyberpunk", snap.Scheme.ID)
	}
	if snap.Resolved.Palette.Mode != theme.ModeDark {
		t.Errorf("mode = %q, want dark", snap.Resolved.Palette.Mode)
	}

	second := newFileProvider(t, path)
	if got := second.Scheme().ID; got != "neonCyberpunk" {
		t.Errorf("reloaded scheme = %q, want neonCyberpunk", got)
	}
	if second.Settings() != theme.DefaultSettings() {
		t.Errorf("reloaded settings = %+v, want defaults", second.Settings())
	}
}

func TestSettingsSurviveRestart(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.json")

	s := theme.DefaultSettings()
	s.FontSize = 18
	s.Density = theme.DensityComfortable
	s.Animations = false

	newFileProvider(t, path).ApplySettings(ctx, s)

	reloaded := newFileProvider(t, path)
	if reloaded.Settings() != s {
		t.Errorf("Settings() = %+v, want %+v", reloaded.Settings(), s)
	}
	r := reloaded.Resolved()
	if r.Transition != "0s" {
		t.Errorf("Transition = %q, want 0s", r.Transition)
	}
	if r.Components.Toolbar.MinHeight != "72px" {
		t.Errorf("toolbar height = %q, want 72px", r.Components.Toolbar.MinHeight)
	}
}

func TestUnknownSchemeFallsBack(t *testing.T) {
	ctx := context.Background()
	store := prefs.NewMemoryStore()
	p := New(prefs.NewPersistence(store, nil))
	p.Init(ctx)

	p.SetColorScheme(ctx, "german")
	snap := p.SetColorScheme(ctx, "doesNotExist")

	if snap.Scheme.ID != theme.DefaultSchemeID {
		t.Errorf("scheme = %q, want default", snap.Scheme.ID)
	}
	if snap.SchemeID != "doesNotExist" {
		t.Errorf("SchemeID = %q, want raw id", snap.SchemeID)
	}
	raw, _ := store.Get(ctx, prefs.KeyColorScheme)
	if raw != "doesNotExist" {
		t.Errorf("persisted id = %q, want raw id", raw)
	}
}

func TestLegacySchemeID(t *testing.T) {
	ctx := context.Background()
	legacy := []theme.LegacyScheme{theme.LegacyDeepOcean, theme.LegacyEarth, theme.LegacyEarthForest}

	for _, l := range legacy {
		t.Run(string(l), func(t *testing.T) {
			store := prefs.NewMemoryStore()
			_ = store.Set(ctx, prefs.KeyColorScheme, string(l))

			p := New(prefs.NewPersistence(store, nil))
			p.Init(ctx)
			if got := p.Scheme().ID; got != theme.DefaultSchemeID {
				t.Errorf("Init with %q: Scheme().ID = %q, want %q", l, got, theme.DefaultSchemeID)
			}

			snap := p.SetColorScheme(ctx, string(l))
			if want := theme.GetSchemeByID(string(l)).ID; snap.Scheme.ID != want {
				t.Errorf("SetColorScheme(%q) = %q, registry gives %q", l, snap.Scheme.ID, want)
			}
			if snap.SchemeID != string(l) {
				t.Errorf("SchemeID = %q, want raw id %q", snap.SchemeID, l)
			}
		})
	}
}

func TestSinkReceivesTheme(t *testing.T) {
	ctx := context.Background()
	doc := theme.NewDocument()
	p := New(nil, WithSink(doc))

	if got := doc.Attribute(theme.AttrTheme); got != theme.DefaultSchemeID {
		t.Errorf("data-theme before Init = %q, want default", got)
	}

	p.Init(ctx)
	p.SetColorScheme(ctx, "estonian")

	if got := doc.Attribute(theme.AttrTheme); got != "estonian" {
		t.Errorf("data-theme = %q, want estonian", got)
	}
	if got := doc.Property(theme.CSSVarPrimary); got != p.Resolved().Palette.Primary {
		t.Errorf("%s = %q, want %q", theme.CSSVarPrimary, got, p.Resolved().Palette.Primary)
	}

	s := theme.DefaultSettings()
	s.Contrast = theme.ContrastHigh
	s.Density = theme.DensityCompact
	p.ApplySettings(ctx, s)

	if !doc.HasClass(theme.ClassHighContrast) {
		t.Error("high-contrast class not set")
	}
	if got := doc.Attribute(theme.AttrDensity); got != theme.DensityCompact {
		t.Errorf("data-density = %q, want compact", got)
	}

	p.ResetSettings(ctx)
	if doc.HasClass(theme.ClassHighContrast) {
		t.Error("high-contrast class still set after reset")
	}
}

func TestApplySettingsNormalizes(t *testing.T) {
	ctx := context.Background()
	p := New(nil)

	s := theme.DefaultSettings()
	s.FontSize = 99
	s.Density = "cramped"
	got := p.ApplySettings(ctx, s).Settings

	if got.FontSize != theme.MaxFontSize {
		t.Errorf("FontSize = %d, want %d", got.FontSize, theme.MaxFontSize)
	}
	if got.Density != theme.DensityNormal {
		t.Errorf("Density = %q, want normal", got.Density)
	}
}

func TestPersistenceFailureDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	p := New(prefs.NewPersistence(brokenStore{}, nil), WithAudit(logging.NewAuditLogger(&buf)))
	p.Init(ctx)

	if got := p.Scheme().ID; got != theme.DefaultSchemeID {
		t.Errorf("scheme after failed load = %q, want default", got)
	}

	snap := p.SetColorScheme(ctx, "byzantine")
	if snap.Scheme.ID != "byzantine" {
		t.Errorf("scheme = %q, want byzantine despite write failure", snap.Scheme.ID)
	}
	if !strings.Contains(buf.String(), `"success":false`) {
		t.Errorf("audit log does not record failure: %s", buf.String())
	}
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	p := New(nil)
	p.Init(ctx)

	var order []string
	var got []Snapshot
	unsubA := p.Subscribe(func(s Snapshot) {
		order = append(order, "a")
		got = append(got, s)
	})
	unsubB := p.Subscribe(func(Snapshot) { order = append(order, "b") })

	p.SetColorScheme(ctx, "german")
	if strings.Join(order, ",") != "a,b" {
		t.Errorf("notification order = %v, want [a b]", order)
	}
	if len(got) != 1 || got[0].Scheme.ID != "german" {
		t.Fatalf("snapshots = %+v", got)
	}

	unsubA()
	unsubA()
	p.ApplySettings(ctx, theme.DefaultSettings())
	if strings.Join(order, ",") != "a,b,b" {
		t.Errorf("order after unsubscribe = %v, want [a b b]", order)
	}

	unsubB()
	p.ResetSettings(ctx)
	if len(order) != 3 {
		t.Errorf("callbacks after unsubscribing all = %v", order)
	}
}

func TestSubscriberMayReadProvider(t *testing.T) {
	ctx := context.Background()
	p := New(nil)
	var seen string
	p.Subscribe(func(Snapshot) { seen = p.Scheme().ID })

	p.SetColorScheme(ctx, "primalForest")
	if seen != "primalForest" {
		t.Errorf("scheme read in callback = %q, want primalForest", seen)
	}
}

func TestInitRunsOnce(t *testing.T) {
	ctx := context.Background()
	store := prefs.NewMemoryStore()
	_ = store.Set(ctx, prefs.KeyColorScheme, "german")
	p := New(prefs.NewPersistence(store, nil))

	p.Init(ctx)
	p.SetColorScheme(ctx, "earthPulse")
	_ = store.Set(ctx, prefs.KeyColorScheme, "byzantine")
	p.Init(ctx)

	if got := p.Scheme().ID; got != "earthPulse" {
		t.Errorf("second Init reloaded state: scheme = %q", got)
	}
}

func TestSnapshotConsistent(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := New(nil, WithClock(func() time.Time { return fixed }))
	snap := p.SetColorScheme(context.Background(), "blueOrange")

	if snap.UpdatedAt != fixed {
		t.Errorf("UpdatedAt = %v, want %v", snap.UpdatedAt, fixed)
	}
	if snap.Resolved != theme.Resolve(theme.GetSchemeByID("blueOrange"), snap.Settings) {
		t.Error("snapshot resolved theme does not match Resolve")
	}
	if len(p.Schemes()) != len(theme.ListSchemes()) {
		t.Errorf("Schemes() = %d entries", len(p.Schemes()))
	}
}

func TestConcurrentChanges(t *testing.T) {
	ctx := context.Background()
	p := New(nil, WithSink(theme.NewDocument()))
	ids := theme.SchemeIDs()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p.SetColorScheme(ctx, ids[i%len(ids)])
			s := theme.DefaultSettings()
			s.FontSize = theme.MinFontSize + i%5
			p.ApplySettings(ctx, s)
			_ = p.Snapshot()
		}(i)
	}
	wg.Wait()

	snap := p.Snapshot()
	if snap.Resolved != theme.Resolve(snap.Scheme, snap.Settings) {
		t.Error("final state is not consistent")
	}
}

func TestConcurrentNotificationsOrdered(t *testing.T) {
	ctx := context.Background()
	p := New(nil)
	p.Init(ctx)
	ids := theme.SchemeIDs()

	var mu sync.Mutex
	var seen []Snapshot
	p.Subscribe(func(s Snapshot) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	})

	const workers = 16
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				if j%2 == 0 {
					p.SetColorScheme(ctx, ids[(i+j)%len(ids)])
					continue
				}
				s := theme.DefaultSettings()
				s.BorderRadius = (i + j) % (theme.MaxBorderRadius + 1)
				p.ApplySettings(ctx, s)
			}
		}(i)
	}
	wg.Wait()

	if len(seen) != workers*10 {
		t.Fatalf("got %d notifications, want %d", len(seen), workers*10)
	}
	for i := 1; i < len(seen); i++ {
		if seen[i].Seq != seen[i-1].Seq+1 {
			t.Fatalf("notification %d has seq %d after %d", i, seen[i].Seq, seen[i-1].Seq)
		}
	}

	last := seen[len(seen)-1]
	final := p.Snapshot()
	if last.Seq != final.Seq {
		t.Errorf("last notified seq = %d, provider seq = %d", last.Seq, final.Seq)
	}
	if last.Scheme.ID != final.Scheme.ID || last.Settings != final.Settings {
		t.Errorf("subscriber left on %s/%+v, provider on %s/%+v",
			last.Scheme.ID, last.Settings, final.Scheme.ID, final.Settings)
	}
}

func TestSource(t *testing.T) {
	if got := SourceFrom(context.Background()); got != "unknown" {
		t.Errorf("SourceFrom(empty) = %q", got)
	}
	if got := SourceFrom(WithSource(context.Background(), SourceTUI)); got != SourceTUI {
		t.Errorf("SourceFrom() = %q, want %q", got, SourceTUI)
	}
}
