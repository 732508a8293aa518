// Package site composes page view models. Every page is a set of sections
// loaded concurrently through the lifecycle package and rendered with the
// static defaults whenever the CMS has nothing or fails.
package site

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-coopsite/internal/blog"
	"github.com/goliatone/go-coopsite/internal/lifecycle"
	"github.com/goliatone/go-coopsite/internal/locale"
	"github.com/goliatone/go-coopsite/internal/logging"
	"github.com/goliatone/go-coopsite/internal/navigation"
	"github.com/goliatone/go-coopsite/internal/sanity"
	"github.com/goliatone/go-coopsite/internal/sections"
	"github.com/goliatone/go-coopsite/pkg/interfaces"
)

var (
	// ErrPostNotFound is returned when neither the CMS nor the bundled posts
	// know a slug.
	ErrPostNotFound = errors.New("site: post not found")
	// ErrUnknownPage is returned by Render for names outside sections.Pages.
	ErrUnknownPage = errors.New("site: unknown page")
)

// Option configures a Service.
type Option func(*Service)

// WithQuerier sets the CMS read interface. Without one every section renders
// its defaults in the Ready state.
func WithQuerier(querier interfaces.ContentQuerier) Option {
	return func(s *Service) {
		s.querier = querier
	}
}

func WithImages(images sections.ImageURLBuilder) Option {
	return func(s *Service) {
		s.images = images
	}
}

func WithNavigator(nav *navigation.Navigator) Option {
	return func(s *Service) {
		if nav != nil {
			s.nav = nav
		}
	}
}

func WithCatalog(catalog *blog.Catalog) Option {
	return func(s *Service) {
		if catalog != nil {
			s.catalog = catalog
		}
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithConcurrency caps the number of section fetches in flight per page.
func WithConcurrency(limit int) Option {
	return func(s *Service) {
		s.limit = limit
	}
}

// WithContactForm reports whether the contact form accepts submissions.
func WithContactForm(enabled func() bool) Option {
	return func(s *Service) {
		s.contactEnabled = enabled
	}
}

// Service renders pages.
type Service struct {
	querier        interfaces.ContentQuerier
	images         sections.ImageURLBuilder
	nav            *navigation.Navigator
	catalog        *blog.Catalog
	logger         interfaces.Logger
	limit          int
	contactEnabled func() bool
}

// NewService applies opts and fills in the default navigator and the
// bundled blog catalog.
func NewService(opts ...Option) (*Service, error) {
	s := &Service{logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.nav == nil {
		s.nav = navigation.NewDefault("")
	}
	if s.catalog == nil {
		catalog, err := blog.NewCatalog(blog.WithImages(s.images), blog.WithLogger(s.logger))
		if err != nil {
			return nil, fmt.Errorf("site: load blog catalog: %w", err)
		}
		s.catalog = catalog
	}
	return s, nil
}

// Navigator returns the URL builder used for links.
func (s *Service) Navigator() *navigation.Navigator {
	return s.nav
}

// Render returns the view model of a named page with default blog
// listing options.
func (s *Service) Render(ctx context.Context, page sections.Page, lang locale.Code) (any, error) {
	switch page {
	case sections.PageHome:
		return s.Home(ctx, lang), nil
	case sections.PageAbout:
		return s.About(ctx, lang), nil
	case sections.PagePilot:
		return s.Pilot(ctx, lang), nil
	case sections.PageContact:
		return s.Contact(ctx, lang), nil
	case sections.PageBlog:
		return s.Blog(ctx, lang, BlogOptions{}), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPage, page)
}

// section wraps a section builder so it resolves against the service image
// builder.
func section[R any, V any](s *Service, name string, fetch lifecycle.Fetcher[R], build func(*R, sections.Resolver) V) *lifecycle.Section[R, V] {
	return lifecycle.New[R, V](name, fetch, func(remote *R, lang locale.Code) V {
		return build(remote, sections.NewResolver(lang, s.images))
	}, lifecycle.WithLogger(s.logger))
}

// run loads every section of one page render and unmounts them afterwards.
func (s *Service) run(ctx context.Context, page sections.Page, lang locale.Code, loaders ...lifecycle.Loader) Meta {
	group := lifecycle.NewGroup(s.limit, loaders...)
	defer group.Unmount()

	logger := logging.WithSectionContext(s.logger, string(page), "", lang.String())
	statuses := group.Load(ctx, lang)
	meta := Meta{
		Page:       page,
		Lang:       lang,
		Sections:   statuses,
		Notices:    []string{},
		Alternates: map[locale.Code]string{},
	}
	for _, status := range statuses {
		if status.State == lifecycle.Failed {
			meta.Notices = append(meta.Notices, notice(status.Section))
		}
	}
	if len(meta.Notices) > 0 {
		logger.Info("site.page.degraded", "failed_sections", len(meta.Notices))
	}
	if page != "" {
		if alternates, err := s.nav.Alternates(page); err == nil {
			meta.Alternates = alternates
		} else {
			logger.Warn("site.page.alternates_failed", "error", err)
		}
	}
	return meta
}

func notice(section string) string {
	return fmt.Sprintf("%s content is unavailable right now; showing default content", section)
}

// layoutSections are loaded with every page.
type layoutSections struct {
	nav    *lifecycle.Section[sections.NavigationContent, sections.NavigationLabels]
	footer *lifecycle.Section[sections.FooterContent, sections.Footer]
}

func (s *Service) layoutSections() layoutSections {
	return layoutSections{
		nav:    section(s, "navigation", documentFetcher[sections.NavigationContent](s.querier, sanity.TypeNavigation), sections.BuildNavigation),
		footer: section(s, "footer", documentFetcher[sections.FooterContent](s.querier, sanity.TypeFooter), sections.BuildFooter),
	}
}

func (l layoutSections) loaders() []lifecycle.Loader {
	return []lifecycle.Loader{l.nav, l.footer}
}

func (s *Service) layout(lang locale.Code, active sections.Page, l layoutSections) Layout {
	labels := l.nav.Snapshot().View
	links, err := s.nav.Links(lang, labels, active)
	if err != nil {
		s.logger.Warn("site.navigation.failed", "error", err)
		links = []navigation.Link{}
	}
	return Layout{
		Navigation: links,
		Labels:     labels,
		Footer:     l.footer.Snapshot().View,
	}
}

func (s *Service) hero(page sections.Page, docType string) *lifecycle.Section[sections.HeroContent, sections.Hero] {
	return section(s, "hero", fieldFetcher[sections.HeroContent](s.querier, docType, "hero"),
		func(remote *sections.HeroContent, r sections.Resolver) sections.Hero {
			return sections.BuildHero(page, remote, r)
		})
}

func (s *Service) faq(page sections.Page, docType string) *lifecycle.Section[sections.FAQContent, sections.FAQ] {
	return section(s, "faq", fieldFetcher[sections.FAQContent](s.querier, docType, "faq"),
		func(remote *sections.FAQContent, r sections.Resolver) sections.FAQ {
			return sections.BuildFAQ(page, remote, r)
		})
}
