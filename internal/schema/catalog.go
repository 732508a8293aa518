package schema

import (
	"github.com/goliatone/go-coopsite/internal/sections"
)

// Document and object type names.
const (
	Home              = "home"
	About             = "about"
	Pilot             = "pilot"
	Contact           = "contact"
	Blog              = "blog"
	Post              = "post"
	Author            = "author"
	Footer            = "footer"
	Navigation        = "navigation"
	ContactSubmission = "contactSubmission"

	LocaleString = "localeString"
	LocaleText   = "localeText"
	LocaleBlock  = "localeBlock"
	CTA          = "cta"
	Image        = "image"
	Hero         = "hero"
	CardGrid     = "cardGrid"
	Stats        = "stats"
	Testimonials = "testimonials"
	FAQ          = "faq"
	CallToAction = "callToAction"
)

// Submission statuses stored on contactSubmission documents.
const (
	SubmissionNew      = "new"
	SubmissionRead     = "read"
	SubmissionAnswered = "answered"
)

func icons() []string {
	out := []string{}
	for _, icon := range sections.Icons() {
		out = append(out, string(icon))
	}
	return out
}

var catalog = []Type{
	// objects
	{Name: LocaleString, Title: "Localized string", Kind: KindObject, Fields: localeFields(TypeString)},
	{Name: LocaleText, Title: "Localized text", Kind: KindObject, Fields: localeFields(TypeText)},
	{Name: LocaleBlock, Title: "Localized rich text", Kind: KindObject, Fields: localeFields(TypeBlock)},
	{Name: CTA, Title: "Call to action link", Kind: KindObject, Fields: []Field{
		required(localeString("label")),
		required(str("href")),
	}},
	{Name: Image, Title: "Image", Kind: KindObject, Fields: []Field{
		{Name: "asset", Type: TypeReference, To: "sanity.imageAsset"},
		str("url"),
		localeString("alt"),
	}},
	{Name: Hero, Title: "Hero", Kind: KindObject, Fields: []Field{
		localeString("eyebrow"),
		required(localeString("title")),
		localeText("subtitle"),
		object("primaryCta", CTA),
		object("secondaryCta", CTA),
		image("image"),
	}},
	{Name: Stats, Title: "Stat counters", Kind: KindObject, Fields: []Field{
		localeString("heading"),
		list("items", Field{Name: "stat", Type: TypeObject, Fields: []Field{
			required(localeString("value")),
			localeString("suffix"),
			required(localeString("label")),
		}}),
	}},
	{Name: CardGrid, Title: "Card grid", Kind: KindObject, Fields: []Field{
		localeString("heading"),
		localeText("intro"),
		list("items", Field{Name: "card", Type: TypeObject, Fields: []Field{
			enum("icon", icons()...),
			required(localeString("title")),
			localeText("description"),
		}}),
	}},
	{Name: Testimonials, Title: "Testimonials", Kind: KindObject, Fields: []Field{
		localeString("heading"),
		list("items", Field{Name: "testimonial", Type: TypeObject, Fields: []Field{
			required(localeText("quote")),
			required(localeString("author")),
			localeString("role"),
			image("image"),
		}}),
	}},
	{Name: FAQ, Title: "Frequently asked questions", Kind: KindObject, Fields: []Field{
		localeString("heading"),
		list("items", Field{Name: "question", Type: TypeObject, Fields: []Field{
			required(localeString("question")),
			required(localeText("answer")),
		}}),
	}},
	{Name: CallToAction, Title: "Closing call to action", Kind: KindObject, Fields: []Field{
		required(localeString("title")),
		localeText("body"),
		object("button", CTA),
	}},

	// documents
	{Name: Home, Title: "Home page", Kind: KindDocument, Singleton: true, Fields: []Field{
		object("hero", Hero),
		object("stats", Stats),
		object("features", CardGrid),
		object("testimonials", Testimonials),
		object("faq", FAQ),
		object("cta", CallToAction),
	}},
	{Name: About, Title: "About page", Kind: KindDocument, Singleton: true, Fields: []Field{
		object("hero", Hero),
		{Name: "mission", Type: TypeObject, Fields: []Field{localeString("title"), localeText("body")}},
		object("values", CardGrid),
		{Name: "team", Type: TypeObject, Fields: []Field{
			localeString("heading"),
			list("members", Field{Name: "member", Type: TypeObject, Fields: []Field{
				required(str("name")),
				localeString("role"),
				localeText("bio"),
				image("image"),
			}}),
		}},
	}},
	{Name: Pilot, Title: "Pilot projects page", Kind: KindDocument, Singleton: true, Fields: []Field{
		object("hero", Hero),
		{Name: "impact", Type: TypeObject, Fields: []Field{
			localeString("heading"),
			localeText("intro"),
			list("items", Field{Name: "impactItem", Type: TypeObject, Fields: []Field{
				enum("type", string(sections.ImpactStat), string(sections.ImpactText)),
				required(localeString("value")),
				localeString("label"),
				enum("icon", icons()...),
			}}),
		}},
		{Name: "projects", Type: TypeObject, Fields: []Field{
			localeString("heading"),
			list("projects", Field{Name: "project", Type: TypeObject, Fields: []Field{
				required(localeString("title")),
				localeString("location"),
				enum("status", string(sections.ProjectPlanned), string(sections.ProjectActive), string(sections.ProjectCompleted)),
				str("capacity"),
				localeText("description"),
				image("image"),
			}}),
		}},
		object("faq", FAQ),
	}},
	{Name: Contact, Title: "Contact page", Kind: KindDocument, Singleton: true, Fields: []Field{
		object("hero", Hero),
		{Name: "details", Type: TypeObject, Fields: []Field{
			localeString("heading"),
			{Name: "email", Type: TypeEmail},
			str("phone"),
			localeText("address"),
			localeString("officeHours"),
		}},
		{Name: "form", Type: TypeObject, Fields: []Field{
			localeString("heading"),
			localeString("nameLabel"),
			localeString("emailLabel"),
			localeString("messageLabel"),
			localeString("submitLabel"),
			localeText("successMessage"),
			localeText("errorMessage"),
			localeText("unavailableMessage"),
		}},
	}},
	{Name: Blog, Title: "Blog page", Kind: KindDocument, Singleton: true, Fields: []Field{
		object("hero", Hero),
		{Name: "labels", Type: TypeObject, Fields: []Field{
			localeString("searchPlaceholder"),
			localeString("allCategories"),
			localeString("readMore"),
			localeString("empty"),
			localeString("previous"),
			localeString("next"),
			localeString("publishedOn"),
		}},
	}},
	{Name: Post, Title: "Blog post", Kind: KindDocument, Fields: []Field{
		required(localeString("title")),
		required(Field{Name: "slug", Type: TypeSlug}),
		localeText("excerpt"),
		localeString("category"),
		list("tags", str("tag")),
		{Name: "author", Type: TypeReference, To: Author},
		{Name: "publishedAt", Type: TypeDatetime},
		image("mainImage"),
		object("body", LocaleBlock),
	}},
	{Name: Author, Title: "Author", Kind: KindDocument, Fields: []Field{
		required(str("name")),
		localeString("role"),
		localeText("bio"),
		image("image"),
	}},
	{Name: Footer, Title: "Footer", Kind: KindDocument, Singleton: true, Fields: []Field{
		localeString("tagline"),
		localeString("copyright"),
		localeString("newsletterHeading"),
		localeText("newsletterBody"),
		list("links", object("link", CTA)),
		list("social", Field{Name: "socialLink", Type: TypeObject, Fields: []Field{
			required(enum("platform",
				string(sections.SocialFacebook),
				string(sections.SocialInstagram),
				string(sections.SocialLinkedIn),
				string(sections.SocialX),
				string(sections.SocialYouTube),
			)),
			required(Field{Name: "href", Type: TypeURL}),
		}}),
	}},
	{Name: Navigation, Title: "Navigation", Kind: KindDocument, Singleton: true, Fields: []Field{
		localeString("home"),
		localeString("about"),
		localeString("pilot"),
		localeString("blog"),
		localeString("contact"),
		localeString("languageSwitch"),
	}},
	{Name: ContactSubmission, Title: "Contact submission", Kind: KindDocument, Fields: []Field{
		required(Field{Name: "name", Type: TypeString, Min: 1, Max: 120}),
		required(Field{Name: "email", Type: TypeEmail}),
		required(Field{Name: "message", Type: TypeText, Min: 10, Max: 5000}),
		required(enum("language", languages()...)),
		required(Field{Name: "submittedAt", Type: TypeDatetime}),
		str("reference"),
		enum("status", SubmissionNew, SubmissionRead, SubmissionAnswered),
	}},
}

func localeFields(fieldType FieldType) []Field {
	codes := languages()
	fields := make([]Field, 0, len(codes))
	for _, code := range codes {
		fields = append(fields, Field{Name: code, Type: fieldType})
	}
	return fields
}

var index = func() map[string]int {
	out := make(map[string]int, len(catalog))
	for i, t := range catalog {
		out[t.Name] = i
	}
	return out
}()

// Catalog returns every declared type, objects first.
func Catalog() []Type {
	out := make([]Type, len(catalog))
	for i, t := range catalog {
		out[i] = t.clone()
	}
	return out
}

// Documents returns only the document types.
func Documents() []Type {
	out := []Type{}
	for _, t := range catalog {
		if t.Kind == KindDocument {
			out = append(out, t.clone())
		}
	}
	return out
}

// Lookup finds a type by name.
func Lookup(name string) (Type, bool) {
	i, ok := index[name]
	if !ok {
		return Type{}, false
	}
	return catalog[i].clone(), true
}
