package locale

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-coopsite/internal/logging"
	"github.com/goliatone/go-coopsite/pkg/interfaces"
)

// ChangeEvent is delivered to subscribers after the current language changes.
type ChangeEvent struct {
	Previous   Code
	Current    Code
	OccurredAt time.Time
}

// State holds the current language for one consumer tree (a server, a CLI
// run, a test). It is passed explicitly rather than kept in a package var.
type State struct {
	mu          sync.RWMutex
	current     Code
	logger      interfaces.Logger
	broadcaster *changeBroadcaster
	now         func() time.Time
}

// StateOption configures a State.
type StateOption func(*State)

// WithLogger sets the diagnostic logger used for rejected codes.
func WithLogger(logger interfaces.Logger) StateOption {
	return func(s *State) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the timestamp source for change events.
func WithClock(now func() time.Time) StateOption {
	return func(s *State) {
		if now != nil {
			s.now = now
		}
	}
}

// NewState starts at requested, or Primary when requested is not supported.
func NewState(requested string, opts ...StateOption) *State {
	s := &State{
		logger:      logging.NoOp(),
		broadcaster: newChangeBroadcaster(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	code, ok := Parse(requested)
	if !ok {
		if requested != "" {
			s.logger.Warn("locale.state.init_substituted", "requested", requested, "lang", Primary.String())
		}
		code = Primary
	}
	s.current = code
	return s
}

// Current returns the active language. A nil State reports Primary.
func (s *State) Current() Code {
	if s == nil {
		return Primary
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set switches the language. Unsupported codes leave the current value in
// place and are only reported through the logger; Set reports whether the
// value was accepted.
func (s *State) Set(raw string) bool {
	if s == nil {
		return false
	}
	code, ok := Parse(raw)
	if !ok {
		s.logger.Warn("locale.state.rejected", "requested", raw, "lang", s.Current().String())
		return false
	}

	s.mu.Lock()
	previous := s.current
	s.current = code
	s.mu.Unlock()

	if previous != code {
		s.broadcaster.Broadcast(ChangeEvent{
			Previous:   previous,
			Current:    code,
			OccurredAt: s.now().UTC(),
		})
	}
	return true
}

// Subscribe delivers change events until ctx is cancelled.
func (s *State) Subscribe(ctx context.Context) (<-chan ChangeEvent, error) {
	return s.broadcaster.Subscribe(ctx)
}

type changeBroadcaster struct {
	mu       sync.Mutex
	watchers map[uint64]chan ChangeEvent
	nextID   uint64
}

func newChangeBroadcaster() *changeBroadcaster {
	return &changeBroadcaster{watchers: make(map[uint64]chan ChangeEvent)}
}

func (b *changeBroadcaster) Subscribe(ctx context.Context) (<-chan ChangeEvent, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if ctx.Err() != nil {
		ch := make(chan ChangeEvent)
		close(ch)
		return ch, nil
	}
	ch := make(chan ChangeEvent, 1)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.watchers[id] = ch
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.watchers, id)
		close(ch)
		b.mu.Unlock()
	}()
	return ch, nil
}

// Broadcast never blocks; a subscriber that has not drained its previous
// event only misses intermediate values, Current stays authoritative.
func (b *changeBroadcaster) Broadcast(evt ChangeEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.watchers {
		select {
		case ch <- evt:
		default:
		}
	}
}
