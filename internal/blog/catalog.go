package blog

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-coopsite/internal/locale"
	"github.com/goliatone/go-coopsite/internal/logging"
	"github.com/goliatone/go-coopsite/internal/sections"
	"github.com/goliatone/go-coopsite/pkg/interfaces"
)

//go:embed posts/*.md
var embeddedPosts embed.FS

const postsGlob = "posts/*.md"

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the catalog logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithImages sets the builder used for remote post images.
func WithImages(images sections.ImageURLBuilder) Option {
	return func(c *Catalog) {
		c.images = images
	}
}

// WithSource replaces the embedded fallback posts. Files are read from
// posts/<slug>.<lang>.md inside source.
func WithSource(source fs.FS) Option {
	return func(c *Catalog) {
		if source != nil {
			c.source = source
		}
	}
}

// WithDefaultAuthor sets the author shown when a post names none.
func WithDefaultAuthor(author string) Option {
	return func(c *Catalog) {
		if strings.TrimSpace(author) != "" {
			c.defaultAuthor = strings.TrimSpace(author)
		}
	}
}

// Catalog builds post lists from CMS content, falling back to the bundled
// posts when the CMS has none.
type Catalog struct {
	renderer      *Renderer
	images        sections.ImageURLBuilder
	logger        interfaces.Logger
	source        fs.FS
	defaultAuthor string
	fallback      map[locale.Code][]Post
}

// NewCatalog loads and renders the fallback posts.
func NewCatalog(opts ...Option) (*Catalog, error) {
	c := &Catalog{
		renderer:      NewRenderer(),
		logger:        logging.NoOp(),
		source:        embeddedPosts,
		defaultAuthor: "Stroomkring",
		fallback:      make(map[locale.Code][]Post),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if err := c.loadFallback(); err != nil {
		return nil, err
	}
	return c, nil
}

// Renderer exposes the post renderer.
func (c *Catalog) Renderer() *Renderer {
	return c.renderer
}

// Fallback returns a copy of the bundled posts for lang, newest first.
func (c *Catalog) Fallback(lang locale.Code) []Post {
	posts, ok := c.fallback[lang]
	if !ok {
		posts = c.fallback[locale.Primary]
	}
	return clonePosts(posts)
}

// Build resolves remote posts for lang. When no remote post survives
// resolution the fallback set is returned instead.
func (c *Catalog) Build(remote []*PostContent, lang locale.Code) []Post {
	lang = locale.Normalize(string(lang))
	r := sections.NewResolver(lang, c.images)
	posts := make([]Post, 0, len(remote))
	seen := make(map[string]struct{}, len(remote))
	for _, item := range remote {
		post, ok := c.buildPost(item, r)
		if !ok {
			continue
		}
		if _, dup := seen[post.Slug]; dup {
			continue
		}
		seen[post.Slug] = struct{}{}
		posts = append(posts, post)
	}
	if len(posts) == 0 {
		return c.Fallback(lang)
	}
	sortPosts(posts)
	return posts
}

// Post resolves a single remote post, falling back to the bundled post
// with the same slug.
func (c *Catalog) Post(remote *PostContent, lang locale.Code, postSlug string) (Post, bool) {
	lang = locale.Normalize(string(lang))
	if post, ok := c.buildPost(remote, sections.NewResolver(lang, c.images)); ok {
		return post, true
	}
	return Find(c.Fallback(lang), postSlug)
}

// Find returns the post with slug.
func Find(posts []Post, postSlug string) (Post, bool) {
	postSlug = strings.TrimSpace(postSlug)
	for _, post := range posts {
		if post.Slug == postSlug {
			return post.clone(), true
		}
	}
	return Post{}, false
}

type frontMatter struct {
	Title    string   `yaml:"title"`
	Slug     string   `yaml:"slug"`
	Excerpt  string   `yaml:"excerpt"`
	Category string   `yaml:"category"`
	Tags     []string `yaml:"tags"`
	Author   string   `yaml:"author"`
	Date     string   `yaml:"date"`
	Image    string   `yaml:"image"`
	ImageAlt string   `yaml:"image_alt"`
	Draft    bool     `yaml:"draft"`
}

func (c *Catalog) loadFallback() error {
	files, err := fs.Glob(c.source, postsGlob)
	if err != nil {
		return fmt.Errorf("blog: list fallback posts: %w", err)
	}
	sort.Strings(files)
	for _, file := range files {
		post, lang, err := c.loadFile(file)
		if err != nil {
			return err
		}
		if post == nil {
			continue
		}
		c.fallback[lang] = append(c.fallback[lang], *post)
	}
	for lang := range c.fallback {
		sortPosts(c.fallback[lang])
	}
	c.logger.Debug("blog.fallback.loaded", "files", len(files))
	return nil
}

func (c *Catalog) loadFile(file string) (*Post, locale.Code, error) {
	name := strings.TrimSuffix(path.Base(file), ".md")
	dot := strings.LastIndexByte(name, '.')
	if dot <= 0 {
		return nil, "", fmt.Errorf("blog: fallback post %s must be named <slug>.<lang>.md", file)
	}
	lang, err := locale.Validate(name[dot+1:])
	if err != nil {
		return nil, "", fmt.Errorf("blog: fallback post %s: %w", file, err)
	}

	source, err := fs.ReadFile(c.source, file)
	if err != nil {
		return nil, "", fmt.Errorf("blog: read %s: %w", file, err)
	}
	var meta frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, "", fmt.Errorf("blog: parse frontmatter %s: %w", file, err)
	}
	if meta.Draft {
		return nil, lang, nil
	}

	rendered, err := c.renderer.Markdown(body)
	if err != nil {
		return nil, "", fmt.Errorf("blog: %s: %w", file, err)
	}
	title := strings.TrimSpace(meta.Title)
	postSlug := normalizeSlug(meta.Slug, title)
	if postSlug == "" {
		postSlug = normalizeSlug(name[:dot], "")
	}
	author := strings.TrimSpace(meta.Author)
	if author == "" {
		author = c.defaultAuthor
	}
	post := &Post{
		Slug:        postSlug,
		Title:       title,
		Excerpt:     strings.TrimSpace(meta.Excerpt),
		Category:    strings.TrimSpace(meta.Category),
		Tags:        cleanTags(meta.Tags),
		Author:      author,
		PublishedAt: parseDate(meta.Date),
		Image:       defaultPostImage,
		Body:        rendered,
	}
	if meta.Image != "" {
		post.Image = sections.Image{URL: meta.Image, Alt: meta.ImageAlt}
	}
	if post.Title == "" {
		post.Title = postSlug
	}
	if post.Excerpt == "" {
		post.Excerpt = excerpt(rendered)
	}
	post.ReadingMinutes = readingMinutes(rendered)
	return post, lang, nil
}

func sortPosts(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].PublishedAt.Equal(posts[j].PublishedAt) {
			return posts[i].PublishedAt.After(posts[j].PublishedAt)
		}
		return posts[i].Slug < posts[j].Slug
	})
}

func clonePosts(posts []Post) []Post {
	out := make([]Post, len(posts))
	for i, post := range posts {
		out[i] = post.clone()
	}
	return out
}
