package logging

import (
	"maps"

	"github.com/goliatone/go-coopsite/pkg/interfaces"
)

// Logger is re-exported so callers inside internal/ can avoid importing
// pkg/interfaces for the common case.
type Logger = interfaces.Logger

// WithFields attaches fields when the logger supports interfaces.FieldsLogger
// and returns it unchanged otherwise.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(maps.Clone(fields))
	}
	return logger
}
