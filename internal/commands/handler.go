package commands

import (
	"context"
	"time"

	"github.com/goliatone/go-coopsite/internal/logging"
	"github.com/goliatone/go-coopsite/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// DefaultTimeout bounds a command run when no WithTimeout option is given.
const DefaultTimeout = 30 * time.Second

// Status is the outcome category of a command run.
type Status string

const (
	StatusSuccess      Status = "success"
	StatusInvalid      Status = "invalid"
	StatusFailed       Status = "failed"
	StatusContextError Status = "context_error"
)

// Outcome describes a finished command run and is handed to observers.
type Outcome struct {
	Command   string
	Operation string
	Status    Status
	Duration  time.Duration
	Err       error
}

// HandlerOption configures a Handler.
type HandlerOption[T command.Message] func(*Handler[T])

// Handler wraps a command function with message validation, a timeout,
// structured logging and go-errors categorisation. It satisfies
// command.Commander[T].
type Handler[T command.Message] struct {
	exec      command.CommandFunc[T]
	logger    interfaces.Logger
	timeout   time.Duration
	operation string
	observers []func(Outcome)
	now       func() time.Time
}

// NewHandler panics when fn is nil.
func NewHandler[T command.Message](fn command.CommandFunc[T], opts ...HandlerOption[T]) *Handler[T] {
	if fn == nil {
		panic("commands: handler function cannot be nil")
	}
	h := &Handler[T]{
		exec:    fn,
		logger:  logging.NoOp(),
		timeout: DefaultTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Execute validates msg, then runs the wrapped function under the handler
// timeout. Returned errors always carry a go-errors category.
func (h *Handler[T]) Execute(ctx context.Context, msg T) error {
	if ctx == nil {
		ctx = context.Background()
	}
	started := h.now()
	outcome := Outcome{Command: command.GetMessageType(msg), Operation: h.operation}

	fields := map[string]any{"command": outcome.Command}
	if h.operation != "" {
		fields["operation"] = h.operation
	}
	logger := logging.WithFields(h.logger, fields)

	finish := func(status Status, err error) error {
		outcome.Status = status
		outcome.Err = err
		outcome.Duration = h.now().Sub(started)
		for _, observe := range h.observers {
			observe(outcome)
		}
		return err
	}

	if err := command.ValidateMessage(msg); err != nil {
		logger.Debug("command.execute.invalid", "error", err)
		return finish(StatusInvalid, wrapValidationError(err))
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return finish(StatusContextError, wrapContextError(err))
	}

	logger.Debug("command.execute.start")
	if err := h.exec(ctx, msg); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && err == ctxErr {
			logger.Error("command.execute.context_error", "error", err)
			return finish(StatusContextError, wrapContextError(err))
		}
		logger.Error("command.execute.failed", "error", err)
		return finish(StatusFailed, wrapExecuteError(err))
	}
	if err := ctx.Err(); err != nil {
		logger.Error("command.execute.context_error", "error", err)
		return finish(StatusContextError, wrapContextError(err))
	}

	logger.Info("command.execute.success", "duration_ms", h.now().Sub(started).Milliseconds())
	return finish(StatusSuccess, nil)
}

// WithTimeout overrides DefaultTimeout. Zero or negative disables it.
func WithTimeout[T command.Message](timeout time.Duration) HandlerOption[T] {
	return func(h *Handler[T]) {
		if timeout < 0 {
			timeout = 0
		}
		h.timeout = timeout
	}
}

// WithLogger injects the logger used during execution.
func WithLogger[T command.Message](logger interfaces.Logger) HandlerOption[T] {
	return func(h *Handler[T]) {
		if logger == nil {
			logger = logging.NoOp()
		}
		h.logger = logger
	}
}

// WithOperation sets an operation name emitted with every log entry.
func WithOperation[T command.Message](operation string) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.operation = operation
	}
}

// WithObserver registers a callback invoked once per run.
func WithObserver[T command.Message](observe func(Outcome)) HandlerOption[T] {
	return func(h *Handler[T]) {
		if observe != nil {
			h.observers = append(h.observers, observe)
		}
	}
}

func withClock[T command.Message](now func() time.Time) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.now = now
	}
}
