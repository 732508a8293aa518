package sections

import "github.com/goliatone/go-coopsite/internal/localized"

// CardContent is an icon card in a CMS grid.
type CardContent struct {
	Icon        localized.Field `json:"icon"`
	Title       localized.Field `json:"title"`
	Description localized.Field `json:"description"`
}

// Card is a resolved icon card.
type Card struct {
	Icon        Icon   `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CardGridContent is a headed list of cards.
type CardGridContent struct {
	Heading localized.Field `json:"heading"`
	Intro   localized.Field `json:"intro"`
	Items   []*CardContent  `json:"items"`
}

// CardGrid is a resolved card list.
type CardGrid struct {
	Heading string `json:"heading"`
	Intro   string `json:"intro"`
	Items   []Card `json:"items"`
}

func buildCard(remote *CardContent, fallback Card, r Resolver) Card {
	if remote == nil {
		return fallback
	}
	return Card{
		Icon:        ParseIcon(r.String(remote.Icon, string(fallback.Icon)), fallback.Icon),
		Title:       r.String(remote.Title, fallback.Title),
		Description: r.String(remote.Description, fallback.Description),
	}
}

func buildCardGrid(remote *CardGridContent, fallback CardGrid, r Resolver) CardGrid {
	if remote == nil {
		return buildCardGrid(&CardGridContent{}, fallback, r)
	}
	return CardGrid{
		Heading: r.String(remote.Heading, fallback.Heading),
		Intro:   r.String(remote.Intro, fallback.Intro),
		Items: mergeList(remote.Items, fallback.Items, func(item *CardContent, d Card) Card {
			return buildCard(item, d, r)
		}),
	}
}
