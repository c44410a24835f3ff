package logging

import (
	"crypto/rand"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// AuditAction represents an audit action type
type AuditAction string

const (
	AuditActionSchemeChange  AuditAction = "SCHEME_CHANGE"
	AuditActionSettingsApply AuditAction = "SETTINGS_APPLY"
	AuditActionSettingsReset AuditAction = "SETTINGS_RESET"
)

// AuditEntry is one line of the audit log.
// IDs use ULID format: audit_01HQXYZ...
type AuditEntry struct {
	ID        string                 `json:"id"`
	Timestamp time.Time              `json:"timestamp"`
	Action    AuditAction            `json:"action"`
	Source    string                 `json:"source,omitempty"` // http, graphql, cli, tui
	From      string                 `json:"from,omitempty"`
	To        string                 `json:"to,omitempty"`
	Success   bool                   `json:"success"`
	Error     string                 `json:"error,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// AuditLogger records preference changes as JSON lines
type AuditLogger struct {
	mu      sync.Mutex
	out     io.Writer
	entropy io.Reader
	now     func() time.Time
}

// NewAuditLogger creates an audit logger writing to out. A nil out
// discards entries.
func NewAuditLogger(out io.Writer) *AuditLogger {
	if out == nil {
		out = io.Discard
	}
	return &AuditLogger{
		out:     out,
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// generateAuditID generates a ULID-based audit ID. Caller holds mu.
func (l *AuditLogger) generateAuditID(t time.Time) string {
	id := ulid.MustNew(ulid.Timestamp(t), l.entropy)
	return "audit_" + id.String()
}

// Log writes an audit entry, filling in ID and timestamp when unset
func (l *AuditLogger) Log(entry AuditEntry) AuditEntry {
	if l == nil {
		return entry
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = l.now().UTC()
	}
	if entry.ID == "" {
		entry.ID = l.generateAuditID(entry.Timestamp)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return entry
	}
	l.out.Write(append(data, '\n'))
	return entry
}

// LogSchemeChange records a color scheme selection
func (l *AuditLogger) LogSchemeChange(source, from, to string, err error) AuditEntry {
	return l.Log(withError(AuditEntry{
		Action: AuditActionSchemeChange,
		Source: source,
		From:   from,
		To:     to,
	}, err))
}

// LogSettingsApply records a settings application. reset marks a return
// to defaults.
func (l *AuditLogger) LogSettingsApply(source string, settings interface{}, reset bool, err error) AuditEntry {
	action := AuditActionSettingsApply
	if reset {
		action = AuditActionSettingsReset
	}
	return l.Log(withError(AuditEntry{
		Action:   action,
		Source:   source,
		Metadata: map[string]interface{}{"settings": settings},
	}, err))
}

func withError(e AuditEntry, err error) AuditEntry {
	e.Success = err == nil
	if err != nil {
		e.Error = err.Error()
	}
	return e
}
