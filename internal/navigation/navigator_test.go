package navigation

import (
	"testing"

	"github.com/goliatone/go-coopsite/internal/locale"
	"github.com/goliatone/go-coopsite/internal/sections"
)

const base = "https://stroomkring.coop"

func TestPageURLPerLanguage(t *testing.T) {
	nav := NewDefault(base + "/")

	en, err := nav.PageURL(locale.English, sections.PageAbout)
	if err != nil {
		t.Fatalf("PageURL en: %v", err)
	}
	if en != base+"/about" {
		t.Fatalf("unexpected en url %q", en)
	}

	du, err := nav.PageURL(locale.Dutch, sections.PageAbout)
	if err != nil {
		t.Fatalf("PageURL du: %v", err)
	}
	if du != base+"/du/about" {
		t.Fatalf("unexpected du url %q", du)
	}

	coerced, err := nav.PageURL(locale.Code("fr"), sections.PagePilot)
	if err != nil {
		t.Fatalf("PageURL fr: %v", err)
	}
	if coerced != base+"/pilot" {
		t.Fatalf("unsupported language should use primary routes, got %q", coerced)
	}
}

func TestPostURL(t *testing.T) {
	nav := NewDefault(base)

	got, err := nav.PostURL(locale.Dutch, "zon-op-school")
	if err != nil {
		t.Fatalf("PostURL: %v", err)
	}
	if got != base+"/du/blog/zon-op-school" {
		t.Fatalf("unexpected post url %q", got)
	}
	if _, err := nav.PostURL(locale.English, "  "); err == nil {
		t.Fatalf("expected error for empty slug")
	}
}

func TestLinks(t *testing.T) {
	nav := NewDefault(base)
	labels := sections.BuildNavigation(nil, sections.NewResolver(locale.Dutch, nil))

	links, err := nav.Links(locale.Dutch, labels, sections.PagePilot)
	if err != nil {
		t.Fatalf("Links: %v", err)
	}
	if len(links) != len(sections.Pages()) {
		t.Fatalf("expected %d links, got %d", len(sections.Pages()), len(links))
	}
	for _, link := range links {
		if link.Active != (link.Page == sections.PagePilot) {
			t.Fatalf("unexpected active flag on %+v", link)
		}
		if link.Label == "" || link.Href == "" {
			t.Fatalf("link should be complete: %+v", link)
		}
	}
	if links[1].Label != "Over ons" || links[1].Href != base+"/du/about" {
		t.Fatalf("unexpected about link %+v", links[1])
	}
}

func TestAlternates(t *testing.T) {
	nav := NewDefault(base)
	alternates, err := nav.Alternates(sections.PageContact)
	if err != nil {
		t.Fatalf("Alternates: %v", err)
	}
	if alternates[locale.English] != base+"/contact" || alternates[locale.Dutch] != base+"/du/contact" {
		t.Fatalf("unexpected alternates %v", alternates)
	}
}

func TestNilNavigator(t *testing.T) {
	var nav *Navigator
	if _, err := nav.PageURL(locale.English, sections.PageHome); err == nil {
		t.Fatalf("expected error from nil navigator")
	}
}
