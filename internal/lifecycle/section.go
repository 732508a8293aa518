// Package lifecycle runs the per-section fetch and render cycle.
//
// A section starts Loading with its default view. Load performs one fetch and
// moves to Ready or Failed; both states render through the same builder, so a
// snapshot always carries a complete view. Results that arrive after the
// section was unmounted, after the context was cancelled, or after a newer Load
// started are dropped.
package lifecycle

import (
	"context"
	"errors"
	"sync"

	"github.com/goliatone/go-coopsite/internal/locale"
	"github.com/goliatone/go-coopsite/internal/logging"
	"github.com/goliatone/go-coopsite/pkg/interfaces"
)

// State is the position of a section in its fetch cycle.
type State string

const (
	Loading State = "loading"
	Ready   State = "ready"
	Failed  State = "failed"
)

// Fetcher retrieves the remote record for lang. A nil record with a nil
// error means the CMS had nothing for this section.
type Fetcher[R any] func(ctx context.Context, lang locale.Code) (*R, error)

// Builder renders the view for a remote record, nil meaning defaults only.
type Builder[R any, V any] func(remote *R, lang locale.Code) V

// Snapshot is the observable state of a section.
type Snapshot[V any] struct {
	Section string
	State   State
	Lang    locale.Code
	View    V
	// Err is the fetch error for Failed snapshots. It is diagnostic only.
	Err error
}

// Option configures a Section.
type Option func(*options)

type options struct {
	logger interfaces.Logger
}

// WithLogger sets the logger used for fetch diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Section owns the fetch result and view model of one page section.
type Section[R any, V any] struct {
	name   string
	fetch  Fetcher[R]
	build  Builder[R, V]
	logger interfaces.Logger

	mu         sync.Mutex
	generation uint64
	mounted    bool
	current    Snapshot[V]
}

// New returns a mounted section in the Loading state showing the primary
// language defaults.
func New[R any, V any](name string, fetch Fetcher[R], build Builder[R, V], opts ...Option) *Section[R, V] {
	cfg := options{logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	s := &Section[R, V]{
		name:    name,
		fetch:   fetch,
		build:   build,
		logger:  cfg.logger,
		mounted: true,
	}
	s.current = s.loading(locale.Primary)
	return s
}

// Name returns the section name.
func (s *Section[R, V]) Name() string {
	return s.name
}

// Snapshot returns the current state.
func (s *Section[R, V]) Snapshot() Snapshot[V] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Mounted reports whether results are still applied.
func (s *Section[R, V]) Mounted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mounted
}

// Unmount stops the section from applying results, including those of a
// fetch already in flight.
func (s *Section[R, V]) Unmount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mounted = false
	s.generation++
}

// Load fetches the section for lang and returns the resulting snapshot. If
// the result is discarded the returned snapshot is the one left in place,
// which is always renderable.
func (s *Section[R, V]) Load(ctx context.Context, lang locale.Code) Snapshot[V] {
	if ctx == nil {
		ctx = context.Background()
	}
	lang = locale.Normalize(string(lang))

	s.mu.Lock()
	if !s.mounted {
		current := s.current
		s.mu.Unlock()
		return current
	}
	s.generation++
	generation := s.generation
	if s.current.Lang != lang || s.current.State != Loading {
		s.current = s.loading(lang)
	}
	s.mu.Unlock()

	logger := logging.WithFields(s.logger.WithContext(ctx), map[string]any{
		"section": s.name,
		"lang":    lang.String(),
	})

	var (
		remote *R
		err    error
	)
	if s.fetch != nil {
		remote, err = s.fetch(ctx, lang)
	}

	next := Snapshot[V]{Section: s.name, Lang: lang}
	if err != nil {
		next.State = Failed
		next.Err = err
		next.View = s.build(nil, lang)
		logger.Warn("section.fetch.failed", "error", err)
	} else {
		next.State = Ready
		next.View = s.build(remote, lang)
		logger.Debug("section.fetch.ready", "remote", remote != nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case !s.mounted:
		logger.Debug("section.fetch.discarded", "reason", "unmounted")
		return s.current
	case generation != s.generation:
		logger.Debug("section.fetch.discarded", "reason", "superseded")
		return s.current
	case ctx.Err() != nil:
		logger.Debug("section.fetch.discarded", "reason", "cancelled")
		return s.current
	}
	s.current = next
	return next
}

func (s *Section[R, V]) loading(lang locale.Code) Snapshot[V] {
	return Snapshot[V]{
		Section: s.name,
		State:   Loading,
		Lang:    lang,
		View:    s.build(nil, lang),
	}
}

// Status summarizes a snapshot without its view. Error stays out of the
// encoded form; fetch failures reach the logger, not the visitor.
type Status struct {
	Section string `json:"section"`
	State   State  `json:"state"`
	Error   string `json:"-"`
}

// Status returns the summary of the snapshot.
func (s Snapshot[V]) Status() Status {
	status := Status{Section: s.Section, State: s.State}
	if s.Err != nil {
		status.Error = s.Err.Error()
	}
	return status
}

// Failure reports whether the snapshot carries a fetch error, unwrapping to
// target when given.
func (s Snapshot[V]) Failure(target error) bool {
	if s.State != Failed || s.Err == nil {
		return false
	}
	if target == nil {
		return true
	}
	return errors.Is(s.Err, target)
}
