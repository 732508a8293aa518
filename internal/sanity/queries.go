package sanity

import (
	"fmt"
	"regexp"
)

// Document types queried by the site.
const (
	TypeHome              = "home"
	TypeAbout             = "about"
	TypePilot             = "pilot"
	TypeContact           = "contact"
	TypeBlog              = "blog"
	TypePost              = "post"
	TypeAuthor            = "author"
	TypeFooter            = "footer"
	TypeNavigation        = "navigation"
	TypeContactSubmission = "contactSubmission"
)

var fieldPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SectionQuery selects one field of the first document of docType. Field
// names cannot be query parameters, so they are checked against a strict
// identifier pattern.
func SectionQuery(docType, field string) (string, map[string]any, error) {
	if !fieldPattern.MatchString(field) {
		return "", nil, fmt.Errorf("sanity: invalid field name %q", field)
	}
	return fmt.Sprintf(`*[_type == $type][0].%s`, field), map[string]any{"type": docType}, nil
}

// DocumentQuery selects the first document of docType.
func DocumentQuery(docType string) (string, map[string]any) {
	return `*[_type == $type][0]`, map[string]any{"type": docType}
}

const postProjection = `{
  "slug": slug.current,
  title,
  excerpt,
  category,
  tags,
  "author": author->name,
  publishedAt,
  mainImage,
  body
}`

// PostsQuery lists published posts, newest first.
const PostsQuery = `*[_type == "post" && defined(slug.current) && !(_id in path("drafts.**"))] | order(publishedAt desc)` + postProjection

// PostBySlugQuery selects one post by its slug; pass the slug as $slug.
const PostBySlugQuery = `*[_type == "post" && slug.current == $slug][0]` + postProjection
