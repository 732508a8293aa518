package sections

import (
	"strings"

	"github.com/goliatone/go-coopsite/internal/imageurl"
	"github.com/goliatone/go-coopsite/internal/locale"
	"github.com/goliatone/go-coopsite/internal/localized"
)

// ImageURLBuilder turns CMS asset references into URLs.
type ImageURLBuilder interface {
	URL(ref string, opts imageurl.Options) (string, error)
}

// Resolver carries what a build pass needs besides the content itself.
type Resolver struct {
	lang   locale.Code
	images ImageURLBuilder
}

// NewResolver normalizes lang; images may be nil, in which case remote
// images only win when they carry a direct URL.
func NewResolver(lang locale.Code, images ImageURLBuilder) Resolver {
	return Resolver{lang: locale.Normalize(string(lang)), images: images}
}

// Lang returns the resolution language.
func (r Resolver) Lang() locale.Code {
	if r.lang == "" {
		return locale.Primary
	}
	return r.lang
}

// String resolves a single field.
func (r Resolver) String(field localized.Field, fallback string) string {
	return localized.Resolve(field, r.Lang(), fallback)
}

// Defaults holds one default record per language. Lookups for a language
// without its own record use the primary language record.
type Defaults[T any] map[locale.Code]T

// For returns the default record for lang.
func (d Defaults[T]) For(lang locale.Code) T {
	if value, ok := d[lang]; ok {
		return value
	}
	return d[locale.Primary]
}

// mergeList merges remote items onto defaults by position. A nil remote
// slice yields a copy of the defaults; remote items beyond the defaults are
// built against the zero value.
func mergeList[R any, V any](remote []*R, defaults []V, build func(*R, V) V) []V {
	if remote == nil {
		out := make([]V, len(defaults))
		copy(out, defaults)
		return out
	}
	size := len(defaults)
	if len(remote) > size {
		size = len(remote)
	}
	out := make([]V, size)
	for i := range out {
		var fallback V
		if i < len(defaults) {
			fallback = defaults[i]
		}
		if i < len(remote) {
			out[i] = build(remote[i], fallback)
			continue
		}
		out[i] = fallback
	}
	return out
}

// LinkContent is a CMS link.
type LinkContent struct {
	Label localized.Field `json:"label"`
	Href  localized.Field `json:"href"`
}

// Link is a resolved link.
type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

func buildLink(remote *LinkContent, fallback Link, r Resolver) Link {
	if remote == nil {
		return fallback
	}
	return Link{
		Label: r.String(remote.Label, fallback.Label),
		Href:  r.String(remote.Href, fallback.Href),
	}
}

func buildLinks(remote []*LinkContent, defaults []Link, r Resolver) []Link {
	return mergeList(remote, defaults, func(item *LinkContent, fallback Link) Link {
		return buildLink(item, fallback, r)
	})
}

// AssetReference points at an uploaded CMS asset.
type AssetReference struct {
	Ref string `json:"_ref"`
}

// ImageContent is a CMS image field. URL is accepted for content that links
// external images directly.
type ImageContent struct {
	Asset *AssetReference `json:"asset"`
	URL   localized.Field `json:"url"`
	Alt   localized.Field `json:"alt"`
}

// Image is a resolved image.
type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// Image resolves remote against fallback. An asset that cannot be turned
// into a URL keeps the fallback URL.
func (r Resolver) Image(remote *ImageContent, fallback Image, opts imageurl.Options) Image {
	if remote == nil {
		return fallback
	}
	out := Image{
		URL: fallback.URL,
		Alt: r.String(remote.Alt, fallback.Alt),
	}
	if remote.Asset != nil && r.images != nil {
		if built, err := r.images.URL(remote.Asset.Ref, opts); err == nil && built != "" {
			out.URL = built
			return out
		}
	}
	if direct := strings.TrimSpace(r.String(remote.URL, "")); direct != "" {
		out.URL = direct
	}
	return out
}
