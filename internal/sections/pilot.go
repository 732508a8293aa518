package sections

import (
	"github.com/goliatone/go-coopsite/internal/imageurl"
	"github.com/goliatone/go-coopsite/internal/locale"
	"github.com/goliatone/go-coopsite/internal/localized"
)

// ImpactItemContent is one CMS impact entry.
type ImpactItemContent struct {
	Type  localized.Field `json:"type"`
	Value localized.Field `json:"value"`
	Label localized.Field `json:"label"`
	Icon  localized.Field `json:"icon"`
}

// ImpactContent is the CMS pilot impact block.
type ImpactContent struct {
	Heading localized.Field      `json:"heading"`
	Intro   localized.Field      `json:"intro"`
	Items   []*ImpactItemContent `json:"items"`
}

// ImpactItem is a resolved impact entry. Stat items render Value as a
// figure; text items render it as a sentence.
type ImpactItem struct {
	Kind  ImpactKind `json:"type"`
	Value string     `json:"value"`
	Label string     `json:"label"`
	Icon  Icon       `json:"icon"`
}

// Impact is the resolved pilot impact block.
type Impact struct {
	Heading string       `json:"heading"`
	Intro   string       `json:"intro"`
	Items   []ImpactItem `json:"items"`
}

// BuildImpact resolves the pilot impact block.
func BuildImpact(remote *ImpactContent, r Resolver) Impact {
	fallback := impactDefaults.For(r.Lang())
	if remote == nil {
		remote = &ImpactContent{}
	}
	return Impact{
		Heading: r.String(remote.Heading, fallback.Heading),
		Intro:   r.String(remote.Intro, fallback.Intro),
		Items: mergeList(remote.Items, fallback.Items, func(item *ImpactItemContent, d ImpactItem) ImpactItem {
			if item == nil {
				return d
			}
			return ImpactItem{
				Kind:  ParseImpactKind(r.String(item.Type, string(d.Kind)), d.Kind),
				Value: r.String(item.Value, d.Value),
				Label: r.String(item.Label, d.Label),
				Icon:  ParseIcon(r.String(item.Icon, string(d.Icon)), d.Icon),
			}
		}),
	}
}

// ProjectContent is one CMS pilot project.
type ProjectContent struct {
	Title       localized.Field `json:"title"`
	Location    localized.Field `json:"location"`
	Status      localized.Field `json:"status"`
	Capacity    localized.Field `json:"capacity"`
	Description localized.Field `json:"description"`
	Image       *ImageContent   `json:"image"`
}

// ProjectsContent is the CMS project list.
type ProjectsContent struct {
	Heading  localized.Field   `json:"heading"`
	Projects []*ProjectContent `json:"projects"`
}

// Project is a resolved pilot project.
type Project struct {
	Title       string        `json:"title"`
	Location    string        `json:"location"`
	Status      ProjectStatus `json:"status"`
	Capacity    string        `json:"capacity"`
	Description string        `json:"description"`
	Image       Image         `json:"image"`
}

// Projects is the resolved project list.
type Projects struct {
	Heading  string    `json:"heading"`
	Projects []Project `json:"projects"`
}

var projectImage = imageurl.Options{Width: 800, Height: 533, Fit: imageurl.FitCrop, AutoFormat: true}

// BuildProjects resolves the pilot project list.
func BuildProjects(remote *ProjectsContent, r Resolver) Projects {
	fallback := projectsDefaults.For(r.Lang())
	if remote == nil {
		remote = &ProjectsContent{}
	}
	return Projects{
		Heading: r.String(remote.Heading, fallback.Heading),
		Projects: mergeList(remote.Projects, fallback.Projects, func(item *ProjectContent, d Project) Project {
			if item == nil {
				return d
			}
			return Project{
				Title:       r.String(item.Title, d.Title),
				Location:    r.String(item.Location, d.Location),
				Status:      ParseProjectStatus(r.String(item.Status, string(d.Status)), d.Status),
				Capacity:    r.String(item.Capacity, d.Capacity),
				Description: r.String(item.Description, d.Description),
				Image:       r.Image(item.Image, d.Image, projectImage),
			}
		}),
	}
}

var impactDefaults = Defaults[Impact]{
	locale.English: {
		Heading: "Pilot impact so far",
		Intro:   "Measured across all pilot sites over the last twelve months.",
		Items: []ImpactItem{
			{Kind: ImpactStat, Value: "340", Label: "households taking part", Icon: IconHome},
			{Kind: ImpactStat, Value: "1.2 GWh", Label: "renewable energy shared", Icon: IconSun},
			{Kind: ImpactStat, Value: "46%", Label: "lower evening peak", Icon: IconBattery},
			{Kind: ImpactStat, Value: "610 t", Label: "CO2 avoided", Icon: IconLeaf},
			{Kind: ImpactText, Value: "Results are shared with the grid operator and published openly.", Label: "Open data", Icon: IconChart},
		},
	},
	locale.Dutch: {
		Heading: "Impact van de pilots tot nu toe",
		Intro:   "Gemeten over alle pilotlocaties in de afgelopen twaalf maanden.",
		Items: []ImpactItem{
			{Kind: ImpactStat, Value: "340", Label: "deelnemende huishoudens", Icon: IconHome},
			{Kind: ImpactStat, Value: "1,2 GWh", Label: "gedeelde duurzame energie", Icon: IconSun},
			{Kind: ImpactStat, Value: "46%", Label: "lagere avondpiek", Icon: IconBattery},
			{Kind: ImpactStat, Value: "610 t", Label: "CO2 vermeden", Icon: IconLeaf},
			{Kind: ImpactText, Value: "Resultaten worden gedeeld met de netbeheerder en openbaar gepubliceerd.", Label: "Open data", Icon: IconChart},
		},
	},
}

var projectsDefaults = Defaults[Projects]{
	locale.English: {
		Heading: "Our pilot projects",
		Projects: []Project{
			{Title: "School roof solar", Location: "De Linde primary school", Status: ProjectCompleted, Capacity: "180 kWp", Description: "540 panels financed by 210 members, supplying the school and 60 nearby homes.", Image: Image{URL: "/static/images/project-school.jpg", Alt: "Solar panels on the school roof"}},
			{Title: "Neighbourhood battery", Location: "Parkstraat", Status: ProjectActive, Capacity: "250 kWh", Description: "A shared battery that stores midday surplus for the evening peak.", Image: Image{URL: "/static/images/project-battery.jpg", Alt: "Battery cabinet in the street"}},
			{Title: "Smart charging hub", Location: "Station square", Status: ProjectPlanned, Capacity: "12 chargers", Description: "Electric car charging that follows local solar production.", Image: Image{URL: "/static/images/project-charging.jpg", Alt: "Charging points near the station"}},
		},
	},
	locale.Dutch: {
		Heading: "Onze pilotprojecten",
		Projects: []Project{
			{Title: "Zon op het schooldak", Location: "Basisschool De Linde", Status: ProjectCompleted, Capacity: "180 kWp", Description: "540 panelen gefinancierd door 210 leden, voor de school en 60 woningen in de buurt.", Image: Image{URL: "/static/images/project-school.jpg", Alt: "Zonnepanelen op het schooldak"}},
			{Title: "Buurtbatterij", Location: "Parkstraat", Status: ProjectActive, Capacity: "250 kWh", Description: "Een gedeelde batterij die het middagoverschot bewaart voor de avondpiek.", Image: Image{URL: "/static/images/project-battery.jpg", Alt: "Batterijkast in de straat"}},
			{Title: "Slim laadplein", Location: "Stationsplein", Status: ProjectPlanned, Capacity: "12 laadpunten", Description: "Elektrisch laden dat de lokale zonneproductie volgt.", Image: Image{URL: "/static/images/project-charging.jpg", Alt: "Laadpunten bij het station"}},
		},
	},
}
