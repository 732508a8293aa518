package coopsite

import (
	"context"
	"net/http"
	"strings"

	"github.com/goliatone/go-coopsite/internal/contact"
	"github.com/goliatone/go-coopsite/internal/di"
	"github.com/goliatone/go-coopsite/internal/locale"
	"github.com/goliatone/go-coopsite/internal/sections"
	"github.com/goliatone/go-coopsite/internal/site"
	"github.com/goliatone/go-coopsite/pkg/interfaces"
)

// SiteService exports the page rendering service.
type SiteService = *site.Service

// ContactService exports the contact form service.
type ContactService = *contact.Service

// Page names one public page.
type Page = sections.Page

// Language is a supported content language.
type Language = locale.Code

const (
	English = locale.English
	Dutch   = locale.Dutch
)

const (
	PageHome    = sections.PageHome
	PageAbout   = sections.PageAbout
	PagePilot   = sections.PagePilot
	PageContact = sections.PageContact
	PageBlog    = sections.PageBlog
)

// Module is the top level site runtime façade.
type Module struct {
	container *di.Container
}

// New constructs the site runtime using cfg and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Site returns the page rendering service.
func (m *Module) Site() SiteService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.SiteService()
}

// Contact returns the contact form service.
func (m *Module) Contact() ContactService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.ContactService()
}

// Handler returns the JSON API router.
func (m *Module) Handler() http.Handler {
	return m.container.Handler()
}

// Logger returns the root module logger.
func (m *Module) Logger() interfaces.Logger {
	return m.container.Logger()
}

// Render builds the view model for page in the resolved language. A blank
// lang renders the module's default language.
func (m *Module) Render(ctx context.Context, page Page, lang string) (any, error) {
	if strings.TrimSpace(lang) == "" {
		return m.Site().Render(ctx, page, m.DefaultLanguage())
	}
	code, err := ParseLanguage(lang)
	if err != nil {
		return nil, err
	}
	return m.Site().Render(ctx, page, code)
}

// DefaultLanguage is served to requests that carry no usable preference.
func (m *Module) DefaultLanguage() Language {
	return m.container.LanguageState().Current()
}

// SetDefaultLanguage switches the default language. Unsupported codes are
// logged and leave the current default in place.
func (m *Module) SetDefaultLanguage(raw string) bool {
	return m.container.LanguageState().Set(raw)
}

// Close releases resources opened by the module.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
