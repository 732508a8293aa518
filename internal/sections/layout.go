package sections

import (
	"github.com/goliatone/go-coopsite/internal/locale"
	"github.com/goliatone/go-coopsite/internal/localized"
)

// NavigationContent holds the CMS menu labels.
type NavigationContent struct {
	Home           localized.Field `json:"home"`
	About          localized.Field `json:"about"`
	Pilot          localized.Field `json:"pilot"`
	Blog           localized.Field `json:"blog"`
	Contact        localized.Field `json:"contact"`
	LanguageSwitch localized.Field `json:"languageSwitch"`
}

// NavigationLabels holds the resolved menu labels.
type NavigationLabels struct {
	Home           string `json:"home"`
	About          string `json:"about"`
	Pilot          string `json:"pilot"`
	Blog           string `json:"blog"`
	Contact        string `json:"contact"`
	LanguageSwitch string `json:"languageSwitch"`
}

// For returns the label of page.
func (n NavigationLabels) For(page Page) string {
	switch page {
	case PageAbout:
		return n.About
	case PagePilot:
		return n.Pilot
	case PageBlog:
		return n.Blog
	case PageContact:
		return n.Contact
	default:
		return n.Home
	}
}

// BuildNavigation resolves the menu labels.
func BuildNavigation(remote *NavigationContent, r Resolver) NavigationLabels {
	fallback := navigationDefaults.For(r.Lang())
	if remote == nil {
		return fallback
	}
	return NavigationLabels{
		Home:           r.String(remote.Home, fallback.Home),
		About:          r.String(remote.About, fallback.About),
		Pilot:          r.String(remote.Pilot, fallback.Pilot),
		Blog:           r.String(remote.Blog, fallback.Blog),
		Contact:        r.String(remote.Contact, fallback.Contact),
		LanguageSwitch: r.String(remote.LanguageSwitch, fallback.LanguageSwitch),
	}
}

// SocialLinkContent is one CMS social profile.
type SocialLinkContent struct {
	Platform localized.Field `json:"platform"`
	Href     localized.Field `json:"href"`
}

// SocialLink is a resolved social profile.
type SocialLink struct {
	Platform SocialPlatform `json:"platform"`
	Href     string         `json:"href"`
}

// FooterContent is the CMS footer document.
type FooterContent struct {
	Tagline           localized.Field      `json:"tagline"`
	Copyright         localized.Field      `json:"copyright"`
	NewsletterHeading localized.Field      `json:"newsletterHeading"`
	NewsletterBody    localized.Field      `json:"newsletterBody"`
	Links             []*LinkContent       `json:"links"`
	Social            []*SocialLinkContent `json:"social"`
}

// Footer is the resolved footer.
type Footer struct {
	Tagline           string       `json:"tagline"`
	Copyright         string       `json:"copyright"`
	NewsletterHeading string       `json:"newsletterHeading"`
	NewsletterBody    string       `json:"newsletterBody"`
	Links             []Link       `json:"links"`
	Social            []SocialLink `json:"social"`
}

// BuildFooter resolves the footer.
func BuildFooter(remote *FooterContent, r Resolver) Footer {
	fallback := footerDefaults.For(r.Lang())
	if remote == nil {
		remote = &FooterContent{}
	}
	return Footer{
		Tagline:           r.String(remote.Tagline, fallback.Tagline),
		Copyright:         r.String(remote.Copyright, fallback.Copyright),
		NewsletterHeading: r.String(remote.NewsletterHeading, fallback.NewsletterHeading),
		NewsletterBody:    r.String(remote.NewsletterBody, fallback.NewsletterBody),
		Links:             buildLinks(remote.Links, fallback.Links, r),
		Social: mergeList(remote.Social, fallback.Social, func(item *SocialLinkContent, d SocialLink) SocialLink {
			if item == nil {
				return d
			}
			return SocialLink{
				Platform: ParseSocialPlatform(r.String(item.Platform, string(d.Platform)), d.Platform),
				Href:     r.String(item.Href, d.Href),
			}
		}),
	}
}

var navigationDefaults = Defaults[NavigationLabels]{
	locale.English: {
		Home:           "Home",
		About:          "About",
		Pilot:          "Pilot projects",
		Blog:           "Blog",
		Contact:        "Contact",
		LanguageSwitch: "Nederlands",
	},
	locale.Dutch: {
		Home:           "Home",
		About:          "Over ons",
		Pilot:          "Pilotprojecten",
		Blog:           "Blog",
		Contact:        "Contact",
		LanguageSwitch: "English",
	},
}

var footerDefaults = Defaults[Footer]{
	locale.English: {
		Tagline:           "Stroomkring energy cooperative. Local power, shared by neighbours.",
		Copyright:         "© Stroomkring U.A. All rights reserved.",
		NewsletterHeading: "Stay in the loop",
		NewsletterBody:    "A short update every month on projects, meetings and results.",
		Links: []Link{
			{Label: "Statutes", Href: "/docs/statutes.pdf"},
			{Label: "Privacy", Href: "/privacy"},
			{Label: "Annual report", Href: "/docs/annual-report.pdf"},
		},
		Social: []SocialLink{
			{Platform: SocialFacebook, Href: "https://facebook.com/stroomkring"},
			{Platform: SocialInstagram, Href: "https://instagram.com/stroomkring"},
			{Platform: SocialLinkedIn, Href: "https://linkedin.com/company/stroomkring"},
		},
	},
	locale.Dutch: {
		Tagline:           "Energiecoöperatie Stroomkring. Lokale stroom, gedeeld door buren.",
		Copyright:         "© Stroomkring U.A. Alle rechten voorbehouden.",
		NewsletterHeading: "Blijf op de hoogte",
		NewsletterBody:    "Elke maand een korte update over projecten, bijeenkomsten en resultaten.",
		Links: []Link{
			{Label: "Statuten", Href: "/docs/statutes.pdf"},
			{Label: "Privacy", Href: "/du/privacy"},
			{Label: "Jaarverslag", Href: "/docs/annual-report.pdf"},
		},
		Social: []SocialLink{
			{Platform: SocialFacebook, Href: "https://facebook.com/stroomkring"},
			{Platform: SocialInstagram, Href: "https://instagram.com/stroomkring"},
			{Platform: SocialLinkedIn, Href: "https://linkedin.com/company/stroomkring"},
		},
	},
}
