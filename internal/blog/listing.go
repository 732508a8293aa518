package blog

import (
	"sort"
	"strings"
)

const (
	// DefaultPerPage is the page size when none is requested.
	DefaultPerPage = 6
	// MaxPerPage caps the requested page size.
	MaxPerPage = 50
)

// Query narrows a post list. Empty fields match everything.
type Query struct {
	Category string
	Tag      string
	Search   string
}

// Filter returns the posts matching q, keeping their order. Matching is
// case-insensitive; Search looks at the title, excerpt, category and tags.
func Filter(posts []Post, q Query) []Post {
	category := strings.ToLower(strings.TrimSpace(q.Category))
	if category == "all" {
		category = ""
	}
	tag := strings.ToLower(strings.TrimSpace(q.Tag))
	terms := strings.Fields(strings.ToLower(q.Search))

	out := make([]Post, 0, len(posts))
	for _, post := range posts {
		if category != "" && strings.ToLower(post.Category) != category {
			continue
		}
		if tag != "" && !hasTag(post, tag) {
			continue
		}
		if !matchesTerms(post, terms) {
			continue
		}
		out = append(out, post.clone())
	}
	return out
}

func hasTag(post Post, tag string) bool {
	for _, candidate := range post.Tags {
		if strings.ToLower(candidate) == tag {
			return true
		}
	}
	return false
}

func matchesTerms(post Post, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	haystack := strings.ToLower(strings.Join(append([]string{post.Title, post.Excerpt, post.Category}, post.Tags...), " "))
	for _, term := range terms {
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}

// Page is one page of a post list.
type Page struct {
	Posts       []Post `json:"posts"`
	Page        int    `json:"page"`
	PerPage     int    `json:"perPage"`
	Total       int    `json:"total"`
	TotalPages  int    `json:"totalPages"`
	HasPrevious bool   `json:"hasPrevious"`
	HasNext     bool   `json:"hasNext"`
}

// Paginate slices posts. perPage outside [1, MaxPerPage] is replaced by
// DefaultPerPage or MaxPerPage; page is clamped to [1, TotalPages]. An empty
// list has one empty page.
func Paginate(posts []Post, page, perPage int) Page {
	switch {
	case perPage <= 0:
		perPage = DefaultPerPage
	case perPage > MaxPerPage:
		perPage = MaxPerPage
	}
	total := len(posts)
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * perPage
	end := start + perPage
	if end > total {
		end = total
	}
	out := make([]Post, 0, end-start)
	for _, post := range posts[start:end] {
		out = append(out, post.clone())
	}
	return Page{
		Posts:       out,
		Page:        page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  totalPages,
		HasPrevious: page > 1,
		HasNext:     page < totalPages,
	}
}

// Categories lists distinct categories sorted by name. The first spelling
// seen wins when categories differ only in case.
func Categories(posts []Post) []string {
	seen := make(map[string]struct{}, len(posts))
	out := make([]string, 0, len(posts))
	for _, post := range posts {
		category := strings.TrimSpace(post.Category)
		key := strings.ToLower(category)
		if category == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, category)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}
