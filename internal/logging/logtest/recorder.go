// Package logtest provides an in-memory logger for asserting on emitted
// diagnostics in tests.
package logtest

import (
	"context"
	"maps"
	"sync"

	"github.com/goliatone/go-coopsite/pkg/interfaces"
)

// Entry is a single recorded log call.
type Entry struct {
	Level   string
	Message string
	Args    []any
	Fields  map[string]any
}

// Recorder captures log entries. Loggers derived through WithFields share
// the same entry buffer.
type Recorder struct {
	mu      *sync.Mutex
	entries *[]Entry
	fields  map[string]any
}

var (
	_ interfaces.Logger         = (*Recorder)(nil)
	_ interfaces.FieldsLogger   = (*Recorder)(nil)
	_ interfaces.LoggerProvider = (*Recorder)(nil)
)

// New returns an empty recorder.
func New() *Recorder {
	return &Recorder{mu: &sync.Mutex{}, entries: &[]Entry{}}
}

func (r *Recorder) Trace(msg string, args ...any) { r.record("trace", msg, args) }
func (r *Recorder) Debug(msg string, args ...any) { r.record("debug", msg, args) }
func (r *Recorder) Info(msg string, args ...any)  { r.record("info", msg, args) }
func (r *Recorder) Warn(msg string, args ...any)  { r.record("warn", msg, args) }
func (r *Recorder) Error(msg string, args ...any) { r.record("error", msg, args) }
func (r *Recorder) Fatal(msg string, args ...any) { r.record("fatal", msg, args) }

func (r *Recorder) WithContext(context.Context) interfaces.Logger { return r }

func (r *Recorder) WithFields(fields map[string]any) interfaces.Logger {
	merged := maps.Clone(r.fields)
	if merged == nil {
		merged = map[string]any{}
	}
	maps.Copy(merged, fields)
	return &Recorder{mu: r.mu, entries: r.entries, fields: merged}
}

// GetLogger lets the recorder stand in as a provider.
func (r *Recorder) GetLogger(string) interfaces.Logger { return r }

// Entries returns a copy of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(*r.entries))
	copy(out, *r.entries)
	return out
}

// Messages returns the recorded messages for level, or all when level is empty.
func (r *Recorder) Messages(level string) []string {
	var out []string
	for _, entry := range r.Entries() {
		if level == "" || entry.Level == level {
			out = append(out, entry.Message)
		}
	}
	return out
}

func (r *Recorder) record(level, msg string, args []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.entries = append(*r.entries, Entry{
		Level:   level,
		Message: msg,
		Args:    append([]any(nil), args...),
		Fields:  maps.Clone(r.fields),
	})
}
