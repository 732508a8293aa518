package blog

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Renderer turns post bodies into sanitized HTML.
type Renderer struct {
	engine goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer returns a renderer with GFM enabled. Raw HTML in markdown is
// passed through goldmark and then scrubbed by the UGC policy.
func NewRenderer() *Renderer {
	return &Renderer{
		engine: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Linkify),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
		policy: newPostPolicy(),
	}
}

func newPostPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("figure", "figcaption")
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// Markdown renders markdown source.
func (r *Renderer) Markdown(source []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.engine.Convert(source, &buf); err != nil {
		return "", fmt.Errorf("blog: render markdown: %w", err)
	}
	return r.policy.Sanitize(buf.String()), nil
}

// Sanitize scrubs already rendered HTML.
func (r *Renderer) Sanitize(raw string) string {
	return r.policy.Sanitize(raw)
}

// Span is a run of text inside a rich-text block.
type Span struct {
	Type  string   `json:"_type"`
	Text  string   `json:"text"`
	Marks []string `json:"marks"`
}

// MarkDef annotates spans, such as links.
type MarkDef struct {
	Key  string `json:"_key"`
	Type string `json:"_type"`
	Href string `json:"href"`
}

// Block is one rich-text block as stored by the CMS.
type Block struct {
	Type     string    `json:"_type"`
	Style    string    `json:"style"`
	ListItem string    `json:"listItem"`
	Level    int       `json:"level"`
	Children []Span    `json:"children"`
	MarkDefs []MarkDef `json:"markDefs"`
}

var blockTags = map[string]string{
	"":           "p",
	"normal":     "p",
	"h2":         "h2",
	"h3":         "h3",
	"h4":         "h4",
	"blockquote": "blockquote",
}

var decoratorTags = map[string]string{
	"strong":         "strong",
	"em":             "em",
	"code":           "code",
	"underline":      "u",
	"strike-through": "del",
	"strike":         "del",
}

// Blocks renders rich-text blocks. Non-text blocks are skipped and
// consecutive list items are grouped into one list.
func (r *Renderer) Blocks(blocks []Block) string {
	var out strings.Builder
	openList := ""
	closeList := func() {
		if openList != "" {
			out.WriteString("</" + openList + ">")
			openList = ""
		}
	}

	for _, block := range blocks {
		if block.Type != "" && block.Type != "block" {
			continue
		}
		if block.ListItem != "" {
			list := "ul"
			if block.ListItem == "number" {
				list = "ol"
			}
			if list != openList {
				closeList()
				out.WriteString("<" + list + ">")
				openList = list
			}
			out.WriteString("<li>" + renderSpans(block) + "</li>")
			continue
		}
		closeList()
		tag, ok := blockTags[block.Style]
		if !ok {
			tag = "p"
		}
		out.WriteString("<" + tag + ">" + renderSpans(block) + "</" + tag + ">")
	}
	closeList()
	return r.policy.Sanitize(out.String())
}

func renderSpans(block Block) string {
	links := make(map[string]string, len(block.MarkDefs))
	for _, def := range block.MarkDefs {
		if def.Type == "link" && strings.TrimSpace(def.Href) != "" {
			links[def.Key] = def.Href
		}
	}

	var out strings.Builder
	for _, span := range block.Children {
		if span.Type != "" && span.Type != "span" {
			continue
		}
		text := strings.ReplaceAll(html.EscapeString(span.Text), "\n", "<br>")
		for _, mark := range span.Marks {
			if tag, ok := decoratorTags[mark]; ok {
				text = "<" + tag + ">" + text + "</" + tag + ">"
				continue
			}
			if href, ok := links[mark]; ok {
				text = `<a href="` + html.EscapeString(href) + `">` + text + "</a>"
			}
		}
		out.WriteString(text)
	}
	return out.String()
}
