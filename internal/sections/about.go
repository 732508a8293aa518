package sections

import (
	"github.com/goliatone/go-coopsite/internal/imageurl"
	"github.com/goliatone/go-coopsite/internal/locale"
	"github.com/goliatone/go-coopsite/internal/localized"
)

// MissionContent is the CMS mission statement.
type MissionContent struct {
	Title localized.Field `json:"title"`
	Body  localized.Field `json:"body"`
}

// Mission is the resolved mission statement.
type Mission struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// BuildMission resolves the about page mission.
func BuildMission(remote *MissionContent, r Resolver) Mission {
	fallback := missionDefaults.For(r.Lang())
	if remote == nil {
		return fallback
	}
	return Mission{
		Title: r.String(remote.Title, fallback.Title),
		Body:  r.String(remote.Body, fallback.Body),
	}
}

// BuildValues resolves the about page value cards.
func BuildValues(remote *CardGridContent, r Resolver) CardGrid {
	return buildCardGrid(remote, valuesDefaults.For(r.Lang()), r)
}

// MemberContent is one CMS team member.
type MemberContent struct {
	Name  localized.Field `json:"name"`
	Role  localized.Field `json:"role"`
	Bio   localized.Field `json:"bio"`
	Image *ImageContent   `json:"image"`
}

// TeamContent is the CMS team grid.
type TeamContent struct {
	Heading localized.Field  `json:"heading"`
	Members []*MemberContent `json:"members"`
}

// Member is a resolved team member.
type Member struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Bio   string `json:"bio"`
	Image Image  `json:"image"`
}

// Team is the resolved team grid.
type Team struct {
	Heading string   `json:"heading"`
	Members []Member `json:"members"`
}

var memberImage = imageurl.Options{Width: 480, Height: 480, Fit: imageurl.FitCrop, AutoFormat: true}

// BuildTeam resolves the about page team grid.
func BuildTeam(remote *TeamContent, r Resolver) Team {
	fallback := teamDefaults.For(r.Lang())
	if remote == nil {
		remote = &TeamContent{}
	}
	return Team{
		Heading: r.String(remote.Heading, fallback.Heading),
		Members: mergeList(remote.Members, fallback.Members, func(item *MemberContent, d Member) Member {
			if item == nil {
				return d
			}
			return Member{
				Name:  r.String(item.Name, d.Name),
				Role:  r.String(item.Role, d.Role),
				Bio:   r.String(item.Bio, d.Bio),
				Image: r.Image(item.Image, d.Image, memberImage),
			}
		}),
	}
}

var missionDefaults = Defaults[Mission]{
	locale.English: {
		Title: "Our mission",
		Body:  "We want every household in the neighbourhood to take part in the energy transition, whether they own a roof or not. Energy produced here should benefit the people who live here.",
	},
	locale.Dutch: {
		Title: "Onze missie",
		Body:  "We willen dat elk huishouden in de wijk meedoet aan de energietransitie, met of zonder eigen dak. Energie die hier wordt opgewekt hoort ten goede te komen aan de mensen die hier wonen.",
	},
}

var valuesDefaults = Defaults[CardGrid]{
	locale.English: {
		Heading: "What we stand for",
		Intro:   "Four principles guide every decision the members take.",
		Items: []Card{
			{Icon: IconUsers, Title: "Democratic", Description: "One member, one vote, regardless of the number of shares."},
			{Icon: IconLeaf, Title: "Sustainable", Description: "Only renewable sources, with materials chosen for a long life."},
			{Icon: IconHome, Title: "Local", Description: "Projects within walking distance and suppliers from the region."},
			{Icon: IconChart, Title: "Transparent", Description: "Open books, open data and an annual report for everyone."},
		},
	},
	locale.Dutch: {
		Heading: "Waar we voor staan",
		Intro:   "Vier principes sturen elk besluit dat de leden nemen.",
		Items: []Card{
			{Icon: IconUsers, Title: "Democratisch", Description: "Eén lid, één stem, ongeacht het aantal aandelen."},
			{Icon: IconLeaf, Title: "Duurzaam", Description: "Alleen hernieuwbare bronnen, met materialen die lang meegaan."},
			{Icon: IconHome, Title: "Lokaal", Description: "Projecten op loopafstand en leveranciers uit de regio."},
			{Icon: IconChart, Title: "Transparant", Description: "Open boeken, open data en een jaarverslag voor iedereen."},
		},
	},
}

var teamDefaults = Defaults[Team]{
	locale.English: {
		Heading: "The board",
		Members: []Member{
			{Name: "Marloes Bakker", Role: "Chair", Bio: "Urban planner who started the cooperative with her neighbours.", Image: Image{URL: "/static/images/team-marloes.jpg", Alt: "Marloes Bakker"}},
			{Name: "Tom Verhoeven", Role: "Treasurer", Bio: "Keeps the books and the member shares in order.", Image: Image{URL: "/static/images/team-tom.jpg", Alt: "Tom Verhoeven"}},
			{Name: "Yara Haddad", Role: "Projects", Bio: "Electrical engineer coordinating the pilot installations.", Image: Image{URL: "/static/images/team-yara.jpg", Alt: "Yara Haddad"}},
		},
	},
	locale.Dutch: {
		Heading: "Het bestuur",
		Members: []Member{
			{Name: "Marloes Bakker", Role: "Voorzitter", Bio: "Stedenbouwkundige die de coöperatie met haar buren oprichtte.", Image: Image{URL: "/static/images/team-marloes.jpg", Alt: "Marloes Bakker"}},
			{Name: "Tom Verhoeven", Role: "Penningmeester", Bio: "Houdt de boeken en de ledenaandelen op orde.", Image: Image{URL: "/static/images/team-tom.jpg", Alt: "Tom Verhoeven"}},
			{Name: "Yara Haddad", Role: "Projecten", Bio: "Elektrotechnicus die de pilotinstallaties coördineert.", Image: Image{URL: "/static/images/team-yara.jpg", Alt: "Yara Haddad"}},
		},
	},
}
