package sections

import (
	"github.com/goliatone/go-coopsite/internal/imageurl"
	"github.com/goliatone/go-coopsite/internal/locale"
	"github.com/goliatone/go-coopsite/internal/localized"
)

// Page identifies a site page.
type Page string

const (
	PageHome    Page = "home"
	PageAbout   Page = "about"
	PagePilot   Page = "pilot"
	PageContact Page = "contact"
	PageBlog    Page = "blog"
)

// Pages lists pages in navigation order.
func Pages() []Page {
	return []Page{PageHome, PageAbout, PagePilot, PageBlog, PageContact}
}

// HeroContent is the CMS hero block.
type HeroContent struct {
	Eyebrow      localized.Field `json:"eyebrow"`
	Title        localized.Field `json:"title"`
	Subtitle     localized.Field `json:"subtitle"`
	PrimaryCTA   *LinkContent    `json:"primaryCta"`
	SecondaryCTA *LinkContent    `json:"secondaryCta"`
	Image        *ImageContent   `json:"image"`
}

// Hero is the resolved page banner.
type Hero struct {
	Eyebrow      string `json:"eyebrow"`
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle"`
	PrimaryCTA   Link   `json:"primaryCta"`
	SecondaryCTA Link   `json:"secondaryCta"`
	Image        Image  `json:"image"`
}

var heroImage = imageurl.Options{Width: 1600, Height: 900, Fit: imageurl.FitCrop, AutoFormat: true}

// DefaultHero returns the built-in hero for page.
func DefaultHero(page Page, lang locale.Code) Hero {
	defaults, ok := heroDefaults[page]
	if !ok {
		defaults = heroDefaults[PageHome]
	}
	return defaults.For(lang)
}

// BuildHero resolves remote against the page's default hero.
func BuildHero(page Page, remote *HeroContent, r Resolver) Hero {
	fallback := DefaultHero(page, r.Lang())
	if remote == nil {
		return fallback
	}
	return Hero{
		Eyebrow:      r.String(remote.Eyebrow, fallback.Eyebrow),
		Title:        r.String(remote.Title, fallback.Title),
		Subtitle:     r.String(remote.Subtitle, fallback.Subtitle),
		PrimaryCTA:   buildLink(remote.PrimaryCTA, fallback.PrimaryCTA, r),
		SecondaryCTA: buildLink(remote.SecondaryCTA, fallback.SecondaryCTA, r),
		Image:        r.Image(remote.Image, fallback.Image, heroImage),
	}
}

var heroDefaults = map[Page]Defaults[Hero]{
	PageHome: {
		locale.English: {
			Eyebrow:      "Community energy",
			Title:        "Power that belongs to the neighbourhood",
			Subtitle:     "We are a cooperative of residents who generate, share and store renewable energy together.",
			PrimaryCTA:   Link{Label: "Become a member", Href: "/contact"},
			SecondaryCTA: Link{Label: "See our pilots", Href: "/pilot"},
			Image:        Image{URL: "/static/images/hero-home.jpg", Alt: "Solar panels on a row of terraced houses"},
		},
		locale.Dutch: {
			Eyebrow:      "Energie van de buurt",
			Title:        "Stroom die van de wijk is",
			Subtitle:     "Wij zijn een coöperatie van bewoners die samen duurzame energie opwekken, delen en opslaan.",
			PrimaryCTA:   Link{Label: "Word lid", Href: "/du/contact"},
			SecondaryCTA: Link{Label: "Bekijk onze pilots", Href: "/du/pilot"},
			Image:        Image{URL: "/static/images/hero-home.jpg", Alt: "Zonnepanelen op een rij rijtjeshuizen"},
		},
	},
	PageAbout: {
		locale.English: {
			Eyebrow:      "About us",
			Title:        "Owned by members, run by neighbours",
			Subtitle:     "Since 2019 our members have pooled savings and rooftops to build a local energy system.",
			PrimaryCTA:   Link{Label: "Meet the team", Href: "/about#team"},
			SecondaryCTA: Link{Label: "Contact us", Href: "/contact"},
			Image:        Image{URL: "/static/images/hero-about.jpg", Alt: "Members at the annual general meeting"},
		},
		locale.Dutch: {
			Eyebrow:      "Over ons",
			Title:        "Van de leden, gerund door buren",
			Subtitle:     "Sinds 2019 bundelen onze leden spaargeld en daken voor een lokaal energiesysteem.",
			PrimaryCTA:   Link{Label: "Ontmoet het team", Href: "/du/about#team"},
			SecondaryCTA: Link{Label: "Neem contact op", Href: "/du/contact"},
			Image:        Image{URL: "/static/images/hero-about.jpg", Alt: "Leden tijdens de jaarvergadering"},
		},
	},
	PagePilot: {
		locale.English: {
			Eyebrow:      "Pilot projects",
			Title:        "Testing the energy system of tomorrow",
			Subtitle:     "Shared batteries, smart charging and solar on public roofs, measured and reported openly.",
			PrimaryCTA:   Link{Label: "Join a pilot", Href: "/contact"},
			SecondaryCTA: Link{Label: "Read the results", Href: "/blog"},
			Image:        Image{URL: "/static/images/hero-pilot.jpg", Alt: "Community battery installed next to a school"},
		},
		locale.Dutch: {
			Eyebrow:      "Pilotprojecten",
			Title:        "Het energiesysteem van morgen testen",
			Subtitle:     "Gedeelde batterijen, slim laden en zon op publieke daken, open gemeten en gerapporteerd.",
			PrimaryCTA:   Link{Label: "Doe mee aan een pilot", Href: "/du/contact"},
			SecondaryCTA: Link{Label: "Lees de resultaten", Href: "/du/blog"},
			Image:        Image{URL: "/static/images/hero-pilot.jpg", Alt: "Buurtbatterij naast een school"},
		},
	},
	PageContact: {
		locale.English: {
			Eyebrow:      "Contact",
			Title:        "Let's talk energy",
			Subtitle:     "Questions about membership, a pilot or your roof? We answer within two working days.",
			PrimaryCTA:   Link{Label: "Send a message", Href: "#contact-form"},
			SecondaryCTA: Link{Label: "Read the FAQ", Href: "/#faq"},
			Image:        Image{URL: "/static/images/hero-contact.jpg", Alt: "Volunteers at the cooperative office"},
		},
		locale.Dutch: {
			Eyebrow:      "Contact",
			Title:        "Laten we over energie praten",
			Subtitle:     "Vragen over lidmaatschap, een pilot of je dak? We antwoorden binnen twee werkdagen.",
			PrimaryCTA:   Link{Label: "Stuur een bericht", Href: "#contact-form"},
			SecondaryCTA: Link{Label: "Lees de veelgestelde vragen", Href: "/du/#faq"},
			Image:        Image{URL: "/static/images/hero-contact.jpg", Alt: "Vrijwilligers op het kantoor van de coöperatie"},
		},
	},
	PageBlog: {
		locale.English: {
			Eyebrow:      "Blog",
			Title:        "News from the cooperative",
			Subtitle:     "Project updates, member stories and practical energy tips.",
			PrimaryCTA:   Link{Label: "Latest posts", Href: "#posts"},
			SecondaryCTA: Link{Label: "Subscribe", Href: "#newsletter"},
			Image:        Image{URL: "/static/images/hero-blog.jpg", Alt: "Wind turbine above the polder"},
		},
		locale.Dutch: {
			Eyebrow:      "Blog",
			Title:        "Nieuws van de coöperatie",
			Subtitle:     "Projectupdates, verhalen van leden en praktische energietips.",
			PrimaryCTA:   Link{Label: "Nieuwste berichten", Href: "#posts"},
			SecondaryCTA: Link{Label: "Abonneer", Href: "#newsletter"},
			Image:        Image{URL: "/static/images/hero-blog.jpg", Alt: "Windturbine boven de polder"},
		},
	},
}
