package site

import (
	"context"
	"strings"

	"github.com/goliatone/go-coopsite/internal/blog"
	"github.com/goliatone/go-coopsite/internal/lifecycle"
	"github.com/goliatone/go-coopsite/internal/locale"
	"github.com/goliatone/go-coopsite/internal/navigation"
	"github.com/goliatone/go-coopsite/internal/sanity"
	"github.com/goliatone/go-coopsite/internal/sections"
)

// Meta describes how a page render went.
type Meta struct {
	Page     sections.Page      `json:"page"`
	Lang     locale.Code        `json:"lang"`
	Sections []lifecycle.Status `json:"sections"`
	// Notices are visitor-facing notes for sections that fell back to
	// defaults after a failed fetch.
	Notices    []string               `json:"notices"`
	Alternates map[locale.Code]string `json:"alternates"`
}

// Layout is the chrome shared by every page.
type Layout struct {
	Navigation []navigation.Link         `json:"navigation"`
	Labels     sections.NavigationLabels `json:"labels"`
	Footer     sections.Footer           `json:"footer"`
}

type HomePage struct {
	Hero         sections.Hero         `json:"hero"`
	Stats        sections.Stats        `json:"stats"`
	Features     sections.CardGrid     `json:"features"`
	Testimonials sections.Testimonials `json:"testimonials"`
	FAQ          sections.FAQ          `json:"faq"`
	CTA          sections.CallToAction `json:"cta"`
	Layout       Layout                `json:"layout"`
	Meta         Meta                  `json:"meta"`
}

// Home renders the landing page.
func (s *Service) Home(ctx context.Context, lang locale.Code) HomePage {
	lang = locale.Normalize(string(lang))
	hero := s.hero(sections.PageHome, sanity.TypeHome)
	stats := section(s, "stats", fieldFetcher[sections.StatsContent](s.querier, sanity.TypeHome, "stats"), sections.BuildStats)
	features := section(s, "features", fieldFetcher[sections.CardGridContent](s.querier, sanity.TypeHome, "features"), sections.BuildFeatures)
	testimonials := section(s, "testimonials", fieldFetcher[sections.TestimonialsContent](s.querier, sanity.TypeHome, "testimonials"), sections.BuildTestimonials)
	faq := s.faq(sections.PageHome, sanity.TypeHome)
	cta := section(s, "cta", fieldFetcher[sections.CallToActionContent](s.querier, sanity.TypeHome, "cta"), sections.BuildCallToAction)
	layout := s.layoutSections()

	meta := s.run(ctx, sections.PageHome, lang, append([]lifecycle.Loader{hero, stats, features, testimonials, faq, cta}, layout.loaders()...)...)
	return HomePage{
		Hero:         hero.Snapshot().View,
		Stats:        stats.Snapshot().View,
		Features:     features.Snapshot().View,
		Testimonials: testimonials.Snapshot().View,
		FAQ:          faq.Snapshot().View,
		CTA:          cta.Snapshot().View,
		Layout:       s.layout(lang, sections.PageHome, layout),
		Meta:         meta,
	}
}

type AboutPage struct {
	Hero    sections.Hero     `json:"hero"`
	Mission sections.Mission  `json:"mission"`
	Values  sections.CardGrid `json:"values"`
	Team    sections.Team     `json:"team"`
	Layout  Layout            `json:"layout"`
	Meta    Meta              `json:"meta"`
}

// About renders the cooperative page.
func (s *Service) About(ctx context.Context, lang locale.Code) AboutPage {
	lang = locale.Normalize(string(lang))
	hero := s.hero(sections.PageAbout, sanity.TypeAbout)
	mission := section(s, "mission", fieldFetcher[sections.MissionContent](s.querier, sanity.TypeAbout, "mission"), sections.BuildMission)
	values := section(s, "values", fieldFetcher[sections.CardGridContent](s.querier, sanity.TypeAbout, "values"), sections.BuildValues)
	team := section(s, "team", fieldFetcher[sections.TeamContent](s.querier, sanity.TypeAbout, "team"), sections.BuildTeam)
	layout := s.layoutSections()

	meta := s.run(ctx, sections.PageAbout, lang, append([]lifecycle.Loader{hero, mission, values, team}, layout.loaders()...)...)
	return AboutPage{
		Hero:    hero.Snapshot().View,
		Mission: mission.Snapshot().View,
		Values:  values.Snapshot().View,
		Team:    team.Snapshot().View,
		Layout:  s.layout(lang, sections.PageAbout, layout),
		Meta:    meta,
	}
}

type PilotPage struct {
	Hero     sections.Hero     `json:"hero"`
	Impact   sections.Impact   `json:"impact"`
	Projects sections.Projects `json:"projects"`
	FAQ      sections.FAQ      `json:"faq"`
	Layout   Layout            `json:"layout"`
	Meta     Meta              `json:"meta"`
}

// Pilot renders the pilot projects page.
func (s *Service) Pilot(ctx context.Context, lang locale.Code) PilotPage {
	lang = locale.Normalize(string(lang))
	hero := s.hero(sections.PagePilot, sanity.TypePilot)
	impact := section(s, "impact", fieldFetcher[sections.ImpactContent](s.querier, sanity.TypePilot, "impact"), sections.BuildImpact)
	projects := section(s, "projects", fieldFetcher[sections.ProjectsContent](s.querier, sanity.TypePilot, "projects"), sections.BuildProjects)
	faq := s.faq(sections.PagePilot, sanity.TypePilot)
	layout := s.layoutSections()

	meta := s.run(ctx, sections.PagePilot, lang, append([]lifecycle.Loader{hero, impact, projects, faq}, layout.loaders()...)...)
	return PilotPage{
		Hero:     hero.Snapshot().View,
		Impact:   impact.Snapshot().View,
		Projects: projects.Snapshot().View,
		FAQ:      faq.Snapshot().View,
		Layout:   s.layout(lang, sections.PagePilot, layout),
		Meta:     meta,
	}
}

type ContactPage struct {
	Hero    sections.Hero           `json:"hero"`
	Details sections.ContactDetails `json:"details"`
	Form    sections.ContactForm    `json:"form"`
	// FormEnabled is false when submissions are switched off; the form then
	// shows its unavailable message.
	FormEnabled bool   `json:"formEnabled"`
	Layout      Layout `json:"layout"`
	Meta        Meta   `json:"meta"`
}

// Contact renders the contact page.
func (s *Service) Contact(ctx context.Context, lang locale.Code) ContactPage {
	lang = locale.Normalize(string(lang))
	hero := s.hero(sections.PageContact, sanity.TypeContact)
	details := section(s, "details", fieldFetcher[sections.ContactDetailsContent](s.querier, sanity.TypeContact, "details"), sections.BuildContactDetails)
	form := section(s, "form", fieldFetcher[sections.ContactFormContent](s.querier, sanity.TypeContact, "form"), sections.BuildContactForm)
	layout := s.layoutSections()

	meta := s.run(ctx, sections.PageContact, lang, append([]lifecycle.Loader{hero, details, form}, layout.loaders()...)...)
	return ContactPage{
		Hero:        hero.Snapshot().View,
		Details:     details.Snapshot().View,
		Form:        form.Snapshot().View,
		FormEnabled: s.contactEnabled != nil && s.contactEnabled(),
		Layout:      s.layout(lang, sections.PageContact, layout),
		Meta:        meta,
	}
}

// BlogOptions selects the listing page.
type BlogOptions struct {
	Query   blog.Query
	Page    int
	PerPage int
}

type BlogPage struct {
	Hero       sections.Hero       `json:"hero"`
	Labels     sections.BlogLabels `json:"labels"`
	Posts      blog.Page           `json:"posts"`
	Categories []string            `json:"categories"`
	Query      BlogQuery           `json:"query"`
	Layout     Layout              `json:"layout"`
	Meta       Meta                `json:"meta"`
}

// BlogQuery echoes the applied filters.
type BlogQuery struct {
	Category string `json:"category"`
	Tag      string `json:"tag"`
	Search   string `json:"q"`
}

// Blog renders the post listing. Categories are computed over every post,
// before filtering.
func (s *Service) Blog(ctx context.Context, lang locale.Code, opts BlogOptions) BlogPage {
	lang = locale.Normalize(string(lang))
	hero := s.hero(sections.PageBlog, sanity.TypeBlog)
	labels := section(s, "labels", fieldFetcher[sections.BlogLabelsContent](s.querier, sanity.TypeBlog, "labels"), sections.BuildBlogLabels)
	posts := lifecycle.New[[]*blog.PostContent, []blog.Post]("posts",
		rawFetcher[[]*blog.PostContent](s.querier, sanity.PostsQuery, nil),
		func(remote *[]*blog.PostContent, lang locale.Code) []blog.Post {
			if remote == nil {
				return s.catalog.Fallback(lang)
			}
			return s.catalog.Build(*remote, lang)
		},
		lifecycle.WithLogger(s.logger),
	)
	layout := s.layoutSections()

	meta := s.run(ctx, sections.PageBlog, lang, append([]lifecycle.Loader{hero, labels, posts}, layout.loaders()...)...)
	all := posts.Snapshot().View
	return BlogPage{
		Hero:       hero.Snapshot().View,
		Labels:     labels.Snapshot().View,
		Posts:      blog.Paginate(blog.Filter(all, opts.Query), opts.Page, opts.PerPage),
		Categories: blog.Categories(all),
		Query: BlogQuery{
			Category: strings.TrimSpace(opts.Query.Category),
			Tag:      strings.TrimSpace(opts.Query.Tag),
			Search:   strings.TrimSpace(opts.Query.Search),
		},
		Layout: s.layout(lang, sections.PageBlog, layout),
		Meta:   meta,
	}
}

type PostPage struct {
	Post   blog.Post           `json:"post"`
	Labels sections.BlogLabels `json:"labels"`
	Layout Layout              `json:"layout"`
	Meta   Meta                `json:"meta"`
}

type postView struct {
	post  blog.Post
	found bool
}

// Post renders one blog post. The CMS version wins; otherwise the bundled
// post with the same slug is used.
func (s *Service) Post(ctx context.Context, lang locale.Code, slug string) (PostPage, error) {
	lang = locale.Normalize(string(lang))
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return PostPage{}, ErrPostNotFound
	}
	post := lifecycle.New[blog.PostContent, postView]("post",
		rawFetcher[blog.PostContent](s.querier, sanity.PostBySlugQuery, map[string]any{"slug": slug}),
		func(remote *blog.PostContent, lang locale.Code) postView {
			found, ok := s.catalog.Post(remote, lang, slug)
			return postView{post: found, found: ok}
		},
		lifecycle.WithLogger(s.logger),
	)
	labels := section(s, "labels", fieldFetcher[sections.BlogLabelsContent](s.querier, sanity.TypeBlog, "labels"), sections.BuildBlogLabels)
	layout := s.layoutSections()

	meta := s.run(ctx, sections.PageBlog, lang, append([]lifecycle.Loader{post, labels}, layout.loaders()...)...)
	view := post.Snapshot().View
	if !view.found {
		return PostPage{}, ErrPostNotFound
	}
	alternates := make(map[locale.Code]string, len(locale.Supported()))
	for _, code := range locale.Supported() {
		if href, err := s.nav.PostURL(code, view.post.Slug); err == nil {
			alternates[code] = href
		}
	}
	meta.Alternates = alternates
	return PostPage{
		Post:   view.post,
		Labels: labels.Snapshot().View,
		Layout: s.layout(lang, sections.PageBlog, layout),
		Meta:   meta,
	}, nil
}
