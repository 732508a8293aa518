// Package blog holds the blog listing: posts from the CMS or the embedded
// fallback set, rendering, filtering and pagination.
package blog

import (
	"bytes"
	"encoding/json"
	"html"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-slug"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-coopsite/internal/imageurl"
	"github.com/goliatone/go-coopsite/internal/locale"
	"github.com/goliatone/go-coopsite/internal/localized"
	"github.com/goliatone/go-coopsite/internal/sections"
)

const wordsPerMinute = 200

// Post is a render-ready blog post.
type Post struct {
	Slug           string         `json:"slug"`
	Title          string         `json:"title"`
	Excerpt        string         `json:"excerpt"`
	Category       string         `json:"category"`
	Tags           []string       `json:"tags"`
	Author         string         `json:"author"`
	PublishedAt    time.Time      `json:"publishedAt"`
	Image          sections.Image `json:"image"`
	Body           string         `json:"body"`
	ReadingMinutes int            `json:"readingMinutes"`
}

func (p Post) clone() Post {
	p.Tags = append([]string{}, p.Tags...)
	return p
}

// PostContent is a post as returned by the posts query.
type PostContent struct {
	Slug        string                 `json:"slug"`
	Title       localized.Field        `json:"title"`
	Excerpt     localized.Field        `json:"excerpt"`
	Category    localized.Field        `json:"category"`
	Tags        []string               `json:"tags"`
	Author      localized.Field        `json:"author"`
	PublishedAt string                 `json:"publishedAt"`
	MainImage   *sections.ImageContent `json:"mainImage"`
	// Body is markdown text, rich-text blocks, or either keyed by language.
	Body json.RawMessage `json:"body"`
}

var postImage = imageurl.Options{Width: 1200, Height: 675, Fit: imageurl.FitCrop, AutoFormat: true}

var defaultPostImage = sections.Image{URL: "/static/images/post-placeholder.jpg", Alt: ""}

func (c *Catalog) buildPost(remote *PostContent, r sections.Resolver) (Post, bool) {
	if remote == nil {
		return Post{}, false
	}
	title := strings.TrimSpace(r.String(remote.Title, ""))
	postSlug := normalizeSlug(remote.Slug, title)
	if postSlug == "" {
		return Post{}, false
	}
	if title == "" {
		title = postSlug
	}

	post := Post{
		Slug:        postSlug,
		Title:       title,
		Excerpt:     r.String(remote.Excerpt, ""),
		Category:    r.String(remote.Category, ""),
		Tags:        cleanTags(remote.Tags),
		Author:      r.String(remote.Author, c.defaultAuthor),
		PublishedAt: parseDate(remote.PublishedAt),
		Image:       r.Image(remote.MainImage, defaultPostImage, postImage),
	}
	post.Body = c.renderBody(remote.Body, r.Lang())
	post.ReadingMinutes = readingMinutes(post.Body)
	if post.Excerpt == "" {
		post.Excerpt = excerpt(post.Body)
	}
	return post, true
}

func (c *Catalog) renderBody(raw json.RawMessage, lang locale.Code) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	switch raw[0] {
	case '"':
		var markdown string
		if err := json.Unmarshal(raw, &markdown); err != nil {
			return ""
		}
		rendered, err := c.renderer.Markdown([]byte(markdown))
		if err != nil {
			c.logger.Warn("blog.body.render_failed", "error", err)
			return ""
		}
		return rendered
	case '[':
		var blocks []Block
		if err := json.Unmarshal(raw, &blocks); err != nil {
			c.logger.Warn("blog.body.decode_failed", "error", err)
			return ""
		}
		return c.renderer.Blocks(blocks)
	case '{':
		var byLang map[string]json.RawMessage
		if err := json.Unmarshal(raw, &byLang); err != nil {
			return ""
		}
		for _, key := range bodyLanguages(byLang, lang) {
			if rendered := c.renderBody(byLang[key], lang); rendered != "" {
				return rendered
			}
		}
	}
	return ""
}

// bodyLanguages orders keys: lang, the primary language, then the rest
// sorted. Non-language keys such as _type are skipped.
func bodyLanguages(values map[string]json.RawMessage, lang locale.Code) []string {
	var rest []string
	for key := range values {
		if _, ok := locale.Parse(key); !ok {
			continue
		}
		if key != lang.String() && key != locale.Primary.String() {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append([]string{lang.String(), locale.Primary.String()}, rest...)
}

func normalizeSlug(candidate, title string) string {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		candidate = title
	}
	if candidate == "" {
		return ""
	}
	if normalized, err := slug.Normalize(candidate); err == nil && normalized != "" {
		return normalized
	}
	return strings.ToLower(strings.Join(strings.Fields(candidate), "-"))
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		key := strings.ToLower(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}
	return out
}

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"}

func parseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}

func readingMinutes(body string) int {
	words := len(strings.Fields(stripTags(body)))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

const excerptRunes = 160

func excerpt(body string) string {
	text := strings.Join(strings.Fields(stripTags(body)), " ")
	if utf8.RuneCountInString(text) <= excerptRunes {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:excerptRunes])
	if space := strings.LastIndexByte(cut, ' '); space > 0 {
		cut = cut[:space]
	}
	return cut + "…"
}

var textPolicy = func() *bluemonday.Policy {
	policy := bluemonday.StrictPolicy()
	policy.AddSpaceWhenStrippingTag(true)
	return policy
}()

func stripTags(body string) string {
	return html.UnescapeString(textPolicy.Sanitize(body))
}
