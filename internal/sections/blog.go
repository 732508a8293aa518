package sections

import (
	"github.com/goliatone/go-coopsite/internal/locale"
	"github.com/goliatone/go-coopsite/internal/localized"
)

// BlogLabelsContent holds the CMS blog listing strings.
type BlogLabelsContent struct {
	SearchPlaceholder localized.Field `json:"searchPlaceholder"`
	AllCategories     localized.Field `json:"allCategories"`
	ReadMore          localized.Field `json:"readMore"`
	Empty             localized.Field `json:"empty"`
	Previous          localized.Field `json:"previous"`
	Next              localized.Field `json:"next"`
	PublishedOn       localized.Field `json:"publishedOn"`
}

// BlogLabels holds the resolved blog listing strings.
type BlogLabels struct {
	SearchPlaceholder string `json:"searchPlaceholder"`
	AllCategories     string `json:"allCategories"`
	ReadMore          string `json:"readMore"`
	Empty             string `json:"empty"`
	Previous          string `json:"previous"`
	Next              string `json:"next"`
	PublishedOn       string `json:"publishedOn"`
}

// BuildBlogLabels resolves the blog listing strings.
func BuildBlogLabels(remote *BlogLabelsContent, r Resolver) BlogLabels {
	fallback := blogLabelsDefaults.For(r.Lang())
	if remote == nil {
		return fallback
	}
	return BlogLabels{
		SearchPlaceholder: r.String(remote.SearchPlaceholder, fallback.SearchPlaceholder),
		AllCategories:     r.String(remote.AllCategories, fallback.AllCategories),
		ReadMore:          r.String(remote.ReadMore, fallback.ReadMore),
		Empty:             r.String(remote.Empty, fallback.Empty),
		Previous:          r.String(remote.Previous, fallback.Previous),
		Next:              r.String(remote.Next, fallback.Next),
		PublishedOn:       r.String(remote.PublishedOn, fallback.PublishedOn),
	}
}

var blogLabelsDefaults = Defaults[BlogLabels]{
	locale.English: {
		SearchPlaceholder: "Search posts",
		AllCategories:     "All categories",
		ReadMore:          "Read more",
		Empty:             "No posts match your search.",
		Previous:          "Previous",
		Next:              "Next",
		PublishedOn:       "Published on",
	},
	locale.Dutch: {
		SearchPlaceholder: "Zoek berichten",
		AllCategories:     "Alle categorieën",
		ReadMore:          "Lees meer",
		Empty:             "Geen berichten gevonden.",
		Previous:          "Vorige",
		Next:              "Volgende",
		PublishedOn:       "Gepubliceerd op",
	},
}
