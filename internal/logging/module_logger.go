package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-coopsite/pkg/interfaces"
)

const (
	rootModule     = "coopsite"
	localeModule   = "coopsite.locale"
	sectionsModule = "coopsite.sections"
	sanityModule   = "coopsite.sanity"
	contactModule  = "coopsite.contact"
	httpModule     = "coopsite.http"
	blogModule     = "coopsite.blog"
)

const (
	fieldSection  = "section"
	fieldLanguage = "lang"
	fieldPage     = "page"
)

// ModuleLogger returns the logger registered for module, annotated with a
// module field. A nil provider yields a no-op logger.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	module = strings.TrimSpace(module)
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// RootLogger returns the top level runtime logger.
func RootLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, rootModule)
}

// LocaleLogger is used by the language state for rejected codes.
func LocaleLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, localeModule)
}

// SectionsLogger is used by section loaders.
func SectionsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, sectionsModule)
}

// SanityLogger is used by the CMS client.
func SanityLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, sanityModule)
}

// ContactLogger is used by the contact submission command.
func ContactLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, contactModule)
}

// HTTPLogger is used by the public API handlers and middleware.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// BlogLogger is used by the blog post loader.
func BlogLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, blogModule)
}

// WithSectionContext adds the page, section and language of a render pass.
// Empty values are skipped.
func WithSectionContext(logger interfaces.Logger, page, section, lang string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(page); trimmed != "" {
		fields[fieldPage] = trimmed
	}
	if trimmed := strings.TrimSpace(section); trimmed != "" {
		fields[fieldSection] = trimmed
	}
	if trimmed := strings.TrimSpace(lang); trimmed != "" {
		fields[fieldLanguage] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
