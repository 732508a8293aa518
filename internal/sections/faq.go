package sections

import (
	"github.com/goliatone/go-coopsite/internal/locale"
	"github.com/goliatone/go-coopsite/internal/localized"
)

// QuestionContent is one CMS accordion entry.
type QuestionContent struct {
	Question localized.Field `json:"question"`
	Answer   localized.Field `json:"answer"`
}

// FAQContent is a CMS accordion.
type FAQContent struct {
	Heading localized.Field    `json:"heading"`
	Items   []*QuestionContent `json:"items"`
}

// Question is a resolved accordion entry.
type Question struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQ is a resolved accordion.
type FAQ struct {
	Heading string     `json:"heading"`
	Items   []Question `json:"items"`
}

// DefaultFAQ returns the accordion for page; pages without their own
// questions share the home set.
func DefaultFAQ(page Page, lang locale.Code) FAQ {
	defaults, ok := faqDefaults[page]
	if !ok {
		defaults = faqDefaults[PageHome]
	}
	return defaults.For(lang)
}

// BuildFAQ resolves remote against the page's default accordion.
func BuildFAQ(page Page, remote *FAQContent, r Resolver) FAQ {
	fallback := DefaultFAQ(page, r.Lang())
	if remote == nil {
		remote = &FAQContent{}
	}
	return FAQ{
		Heading: r.String(remote.Heading, fallback.Heading),
		Items: mergeList(remote.Items, fallback.Items, func(item *QuestionContent, d Question) Question {
			if item == nil {
				return d
			}
			return Question{
				Question: r.String(item.Question, d.Question),
				Answer:   r.String(item.Answer, d.Answer),
			}
		}),
	}
}

var faqDefaults = map[Page]Defaults[FAQ]{
	PageHome: {
		locale.English: {
			Heading: "Frequently asked questions",
			Items: []Question{
				{Question: "Who can become a member?", Answer: "Anyone living or working in the municipality can buy a share and become a member."},
				{Question: "Do I need solar panels on my own roof?", Answer: "No. Members invest in shared installations and benefit from the yield together."},
				{Question: "What happens to the profits?", Answer: "Members decide each year how much is paid out and how much goes to new projects."},
				{Question: "Can I leave the cooperative?", Answer: "Yes. Shares can be returned at their nominal value with three months notice."},
			},
		},
		locale.Dutch: {
			Heading: "Veelgestelde vragen",
			Items: []Question{
				{Question: "Wie kan lid worden?", Answer: "Iedereen die in de gemeente woont of werkt kan een aandeel kopen en lid worden."},
				{Question: "Heb ik zonnepanelen op mijn eigen dak nodig?", Answer: "Nee. Leden investeren in gedeelde installaties en delen samen in de opbrengst."},
				{Question: "Wat gebeurt er met de winst?", Answer: "De leden bepalen elk jaar hoeveel wordt uitgekeerd en hoeveel naar nieuwe projecten gaat."},
				{Question: "Kan ik de coöperatie verlaten?", Answer: "Ja. Aandelen kunnen met drie maanden opzegtermijn tegen nominale waarde worden teruggegeven."},
			},
		},
	},
	PagePilot: {
		locale.English: {
			Heading: "About the pilots",
			Items: []Question{
				{Question: "How are pilot households selected?", Answer: "We look for a mix of homes on one grid segment and invite residents who sign up."},
				{Question: "Does joining a pilot cost anything?", Answer: "No. Equipment is funded by the cooperative and project grants."},
				{Question: "What data do you collect?", Answer: "Only aggregated quarter-hour meter readings, shared with the grid operator under contract."},
			},
		},
		locale.Dutch: {
			Heading: "Over de pilots",
			Items: []Question{
				{Question: "Hoe worden pilothuishoudens gekozen?", Answer: "We zoeken een mix van woningen op één netsegment en nodigen bewoners uit die zich aanmelden."},
				{Question: "Kost meedoen aan een pilot iets?", Answer: "Nee. De apparatuur wordt betaald door de coöperatie en projectsubsidies."},
				{Question: "Welke gegevens verzamelen jullie?", Answer: "Alleen geaggregeerde kwartierwaarden van de meter, onder contract gedeeld met de netbeheerder."},
			},
		},
	},
}
