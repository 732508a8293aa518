// Package navigation builds localized site URLs on top of go-urlkit.
package navigation

import (
	"fmt"
	"strings"
	"sync"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-coopsite/internal/locale"
	"github.com/goliatone/go-coopsite/internal/sections"
)

const (
	// SiteGroup is the primary language route group.
	SiteGroup = "site"
	// PostRoute is the route name of a single blog post.
	PostRoute = "post"
	slugParam = "slug"
)

var routePaths = map[string]string{
	string(sections.PageHome):    "/",
	string(sections.PageAbout):   "/about",
	string(sections.PagePilot):   "/pilot",
	string(sections.PageBlog):    "/blog",
	string(sections.PageContact): "/contact",
	PostRoute:                    "/blog/:slug",
}

// Routes returns the route configuration: a "site" group for the primary
// language and one child group per other language, prefixed with its code.
func Routes(baseURL string) *urlkit.Config {
	site := urlkit.GroupConfig{
		Name:    SiteGroup,
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		Paths:   clonePaths(),
	}
	for _, code := range locale.Supported() {
		if code == locale.Primary {
			continue
		}
		site.Groups = append(site.Groups, urlkit.GroupConfig{
			Name:  code.String(),
			Path:  "/" + code.String(),
			Paths: clonePaths(),
		})
	}
	return &urlkit.Config{Groups: []urlkit.GroupConfig{site}}
}

func clonePaths() map[string]string {
	out := make(map[string]string, len(routePaths))
	for name, path := range routePaths {
		out[name] = path
	}
	return out
}

// Link is a resolved menu entry.
type Link struct {
	Page   sections.Page `json:"page"`
	Label  string        `json:"label"`
	Href   string        `json:"href"`
	Active bool          `json:"active"`
}

// Navigator resolves routes per language.
type Navigator struct {
	manager *urlkit.RouteManager

	mu     sync.RWMutex
	groups map[locale.Code]*urlkit.Group
}

// New wraps manager. The manager must declare the groups produced by Routes.
func New(manager *urlkit.RouteManager) *Navigator {
	return &Navigator{
		manager: manager,
		groups:  make(map[locale.Code]*urlkit.Group),
	}
}

// NewDefault builds a navigator over Routes(baseURL).
func NewDefault(baseURL string) *Navigator {
	return New(urlkit.NewRouteManager(Routes(baseURL)))
}

// URL builds route for lang.
func (n *Navigator) URL(lang locale.Code, route string, params map[string]any, query map[string]string) (string, error) {
	group, err := n.group(locale.Normalize(string(lang)))
	if err != nil {
		return "", err
	}
	builder, err := safeBuilder(group, route)
	if err != nil {
		return "", err
	}
	for key, value := range params {
		builder.WithParam(key, value)
	}
	for key, value := range query {
		builder.WithQuery(key, value)
	}
	return builder.Build()
}

// PageURL builds the URL of page for lang.
func (n *Navigator) PageURL(lang locale.Code, page sections.Page) (string, error) {
	return n.URL(lang, string(page), nil, nil)
}

// PostURL builds the URL of a blog post.
func (n *Navigator) PostURL(lang locale.Code, slug string) (string, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return "", fmt.Errorf("navigation: post slug is required")
	}
	return n.URL(lang, PostRoute, map[string]any{slugParam: slug}, nil)
}

// Links returns the main menu for lang with active marked.
func (n *Navigator) Links(lang locale.Code, labels sections.NavigationLabels, active sections.Page) ([]Link, error) {
	pages := sections.Pages()
	links := make([]Link, 0, len(pages))
	for _, page := range pages {
		href, err := n.PageURL(lang, page)
		if err != nil {
			return nil, err
		}
		links = append(links, Link{
			Page:   page,
			Label:  labels.For(page),
			Href:   href,
			Active: page == active,
		})
	}
	return links, nil
}

// Alternates returns the URL of page in every supported language.
func (n *Navigator) Alternates(page sections.Page) (map[locale.Code]string, error) {
	out := make(map[locale.Code]string, len(locale.Supported()))
	for _, code := range locale.Supported() {
		href, err := n.PageURL(code, page)
		if err != nil {
			return nil, err
		}
		out[code] = href
	}
	return out, nil
}

func (n *Navigator) group(lang locale.Code) (*urlkit.Group, error) {
	if n == nil || n.manager == nil {
		return nil, fmt.Errorf("navigation: route manager not configured")
	}
	n.mu.RLock()
	group, ok := n.groups[lang]
	n.mu.RUnlock()
	if ok {
		return group, nil
	}

	group, err := lookupGroup(n.manager, SiteGroup)
	if err != nil {
		return nil, err
	}
	if lang != locale.Primary {
		group, err = lookupChildGroup(group, lang.String())
		if err != nil {
			return nil, err
		}
	}

	n.mu.Lock()
	n.groups[lang] = group
	n.mu.Unlock()
	return group, nil
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("navigation: route %q not found: %v", route, rec)
		}
	}()
	builder = group.Builder(route)
	return builder, nil
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("navigation: route group %q not found", name)
		}
	}()
	return manager.Group(name), nil
}

func lookupChildGroup(parent *urlkit.Group, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("navigation: child group %q not found", name)
		}
	}()
	return parent.Group(name), nil
}
