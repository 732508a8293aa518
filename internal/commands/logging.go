package commands

import (
	"strings"

	"github.com/goliatone/go-coopsite/internal/logging"
	"github.com/goliatone/go-coopsite/pkg/interfaces"
)

// Logger returns the logger for command handlers of one module, tagged with
// a component field.
func Logger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, "coopsite.commands."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
