package sections

import (
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-coopsite/internal/imageurl"
	"github.com/goliatone/go-coopsite/internal/locale"
	"github.com/goliatone/go-coopsite/internal/localized"
)

// StatContent is one CMS counter.
type StatContent struct {
	Value  localized.Field `json:"value"`
	Suffix localized.Field `json:"suffix"`
	Label  localized.Field `json:"label"`
}

// StatsContent is the CMS counter strip.
type StatsContent struct {
	Heading localized.Field `json:"heading"`
	Items   []*StatContent  `json:"items"`
}

// Stat is a resolved counter. Target and Decimals describe the number the
// counter animates towards; Target is zero when Value is not numeric.
type Stat struct {
	Value    string  `json:"value"`
	Suffix   string  `json:"suffix"`
	Label    string  `json:"label"`
	Target   float64 `json:"target"`
	Decimals int     `json:"decimals"`
}

// Stats is the resolved counter strip.
type Stats struct {
	Heading string `json:"heading"`
	Items   []Stat `json:"items"`
}

// separators are the group and decimal marks used when writing numbers.
type separators struct {
	group   string
	decimal string
}

var numberSeparators = map[locale.Code]separators{
	locale.English: {group: ",", decimal: "."},
	locale.Dutch:   {group: ".", decimal: ","},
}

// ParseCounter extracts the animation target from a display value written
// in lang, such as "1,250" or "3.5" in English and "1.250" or "3,5" in Dutch.
// Group separators are ignored.
func ParseCounter(value string, lang locale.Code) (target float64, decimals int, ok bool) {
	marks, found := numberSeparators[lang]
	if !found {
		marks = numberSeparators[locale.Primary]
	}
	cleaned := strings.ReplaceAll(strings.TrimSpace(value), marks.group, "")
	cleaned = strings.Replace(cleaned, marks.decimal, ".", 1)
	if cleaned == "" {
		return 0, 0, false
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, 0, false
	}
	if dot := strings.IndexByte(cleaned, '.'); dot >= 0 {
		decimals = len(cleaned) - dot - 1
	}
	return parsed, decimals, true
}

func newStat(lang locale.Code, value, suffix, label string) Stat {
	stat := Stat{Value: value, Suffix: suffix, Label: label}
	if target, decimals, ok := ParseCounter(value, lang); ok {
		stat.Target = target
		stat.Decimals = decimals
	}
	return stat
}

// BuildStats resolves the home counters.
func BuildStats(remote *StatsContent, r Resolver) Stats {
	fallback := statsDefaults.For(r.Lang())
	if remote == nil {
		remote = &StatsContent{}
	}
	return Stats{
		Heading: r.String(remote.Heading, fallback.Heading),
		Items: mergeList(remote.Items, fallback.Items, func(item *StatContent, d Stat) Stat {
			if item == nil {
				return d
			}
			return newStat(
				r.Lang(),
				r.String(item.Value, d.Value),
				r.String(item.Suffix, d.Suffix),
				r.String(item.Label, d.Label),
			)
		}),
	}
}

// BuildFeatures resolves the home feature cards.
func BuildFeatures(remote *CardGridContent, r Resolver) CardGrid {
	return buildCardGrid(remote, featuresDefaults.For(r.Lang()), r)
}

// TestimonialContent is one CMS quote.
type TestimonialContent struct {
	Quote  localized.Field `json:"quote"`
	Author localized.Field `json:"author"`
	Role   localized.Field `json:"role"`
	Image  *ImageContent   `json:"image"`
}

// TestimonialsContent is the CMS carousel.
type TestimonialsContent struct {
	Heading localized.Field       `json:"heading"`
	Items   []*TestimonialContent `json:"items"`
}

// Testimonial is a resolved quote.
type Testimonial struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
	Role   string `json:"role"`
	Image  Image  `json:"image"`
}

// Testimonials is the resolved carousel.
type Testimonials struct {
	Heading string        `json:"heading"`
	Items   []Testimonial `json:"items"`
}

var portraitImage = imageurl.Options{Width: 160, Height: 160, Fit: imageurl.FitCrop, AutoFormat: true}

// BuildTestimonials resolves the home carousel.
func BuildTestimonials(remote *TestimonialsContent, r Resolver) Testimonials {
	fallback := testimonialsDefaults.For(r.Lang())
	if remote == nil {
		remote = &TestimonialsContent{}
	}
	return Testimonials{
		Heading: r.String(remote.Heading, fallback.Heading),
		Items: mergeList(remote.Items, fallback.Items, func(item *TestimonialContent, d Testimonial) Testimonial {
			if item == nil {
				return d
			}
			return Testimonial{
				Quote:  r.String(item.Quote, d.Quote),
				Author: r.String(item.Author, d.Author),
				Role:   r.String(item.Role, d.Role),
				Image:  r.Image(item.Image, d.Image, portraitImage),
			}
		}),
	}
}

// CallToActionContent is a CMS closing banner.
type CallToActionContent struct {
	Title  localized.Field `json:"title"`
	Body   localized.Field `json:"body"`
	Button *LinkContent    `json:"button"`
}

// CallToAction is a resolved closing banner.
type CallToAction struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Button Link   `json:"button"`
}

// BuildCallToAction resolves the home closing banner.
func BuildCallToAction(remote *CallToActionContent, r Resolver) CallToAction {
	fallback := callToActionDefaults.For(r.Lang())
	if remote == nil {
		return fallback
	}
	return CallToAction{
		Title:  r.String(remote.Title, fallback.Title),
		Body:   r.String(remote.Body, fallback.Body),
		Button: buildLink(remote.Button, fallback.Button, r),
	}
}

var statsDefaults = Defaults[Stats]{
	locale.English: {
		Heading: "Our cooperative in numbers",
		Items: []Stat{
			newStat(locale.English, "1,250", "+", "members"),
			newStat(locale.English, "4.8", " MWp", "solar capacity"),
			newStat(locale.English, "38", "", "shared rooftops"),
			newStat(locale.English, "2,100", " t", "CO2 avoided per year"),
		},
	},
	locale.Dutch: {
		Heading: "Onze coöperatie in cijfers",
		Items: []Stat{
			newStat(locale.Dutch, "1.250", "+", "leden"),
			newStat(locale.Dutch, "4,8", " MWp", "zonnevermogen"),
			newStat(locale.Dutch, "38", "", "gedeelde daken"),
			newStat(locale.Dutch, "2.100", " t", "CO2 vermeden per jaar"),
		},
	},
}

var featuresDefaults = Defaults[CardGrid]{
	locale.English: {
		Heading: "What we do",
		Intro:   "From rooftops to batteries, every project is owned and steered by members.",
		Items: []Card{
			{Icon: IconSun, Title: "Shared solar", Description: "Panels on schools, sports halls and homes, financed by members."},
			{Icon: IconBattery, Title: "Neighbourhood storage", Description: "Community batteries keep daytime sun available in the evening."},
			{Icon: IconUsers, Title: "Local ownership", Description: "One member, one vote. Profits stay in the neighbourhood."},
			{Icon: IconChart, Title: "Fair tariffs", Description: "Transparent prices based on what we produce together."},
		},
	},
	locale.Dutch: {
		Heading: "Wat we doen",
		Intro:   "Van daken tot batterijen: elk project is van de leden en wordt door hen gestuurd.",
		Items: []Card{
			{Icon: IconSun, Title: "Gedeelde zonne-energie", Description: "Panelen op scholen, sporthallen en woningen, gefinancierd door leden."},
			{Icon: IconBattery, Title: "Opslag in de wijk", Description: "Buurtbatterijen houden de zon van overdag beschikbaar in de avond."},
			{Icon: IconUsers, Title: "Lokaal eigendom", Description: "Eén lid, één stem. De opbrengst blijft in de buurt."},
			{Icon: IconChart, Title: "Eerlijke tarieven", Description: "Transparante prijzen op basis van wat we samen opwekken."},
		},
	},
}

var testimonialsDefaults = Defaults[Testimonials]{
	locale.English: {
		Heading: "What members say",
		Items: []Testimonial{
			{
				Quote:  "Our street went from talking about energy prices to producing our own power.",
				Author: "Anouk de Vries",
				Role:   "Member since 2020",
				Image:  Image{URL: "/static/images/member-anouk.jpg", Alt: "Portrait of Anouk"},
			},
			{
				Quote:  "The shared battery pilot halved the evening peak in our block.",
				Author: "Samir El Amrani",
				Role:   "Pilot participant",
				Image:  Image{URL: "/static/images/member-samir.jpg", Alt: "Portrait of Samir"},
			},
			{
				Quote:  "I could not fit panels on my roof, so I invested in the school roof instead.",
				Author: "Greet Jansen",
				Role:   "Member since 2022",
				Image:  Image{URL: "/static/images/member-greet.jpg", Alt: "Portrait of Greet"},
			},
		},
	},
	locale.Dutch: {
		Heading: "Wat leden zeggen",
		Items: []Testimonial{
			{
				Quote:  "Onze straat ging van praten over energieprijzen naar zelf stroom opwekken.",
				Author: "Anouk de Vries",
				Role:   "Lid sinds 2020",
				Image:  Image{URL: "/static/images/member-anouk.jpg", Alt: "Portret van Anouk"},
			},
			{
				Quote:  "De pilot met de gedeelde batterij halveerde de avondpiek in ons blok.",
				Author: "Samir El Amrani",
				Role:   "Pilotdeelnemer",
				Image:  Image{URL: "/static/images/member-samir.jpg", Alt: "Portret van Samir"},
			},
			{
				Quote:  "Op mijn dak pasten geen panelen, dus investeerde ik in het dak van de school.",
				Author: "Greet Jansen",
				Role:   "Lid sinds 2022",
				Image:  Image{URL: "/static/images/member-greet.jpg", Alt: "Portret van Greet"},
			},
		},
	},
}

var callToActionDefaults = Defaults[CallToAction]{
	locale.English: {
		Title:  "Ready to join?",
		Body:   "Membership starts at one share of 50 euros and gives you a vote in every decision.",
		Button: Link{Label: "Become a member", Href: "/contact"},
	},
	locale.Dutch: {
		Title:  "Doe je mee?",
		Body:   "Lidmaatschap begint bij één aandeel van 50 euro en geeft je een stem in elk besluit.",
		Button: Link{Label: "Word lid", Href: "/du/contact"},
	},
}
