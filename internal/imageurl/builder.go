// Package imageurl builds CDN URLs for CMS image asset references.
package imageurl

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const defaultBaseURL = "https://cdn.sanity.io"

var (
	// ErrInvalidReference is returned for references that do not follow the
	// image-<id>-<width>x<height>-<format> layout.
	ErrInvalidReference = errors.New("imageurl: invalid asset reference")
	// ErrNotConfigured is returned when no project or dataset is set.
	ErrNotConfigured = errors.New("imageurl: project and dataset are required")
)

// Asset is a parsed image reference.
type Asset struct {
	ID     string
	Width  int
	Height int
	Format string
}

// Fit controls how the CDN fits the image into the requested box.
type Fit string

const (
	FitClip  Fit = "clip"
	FitCrop  Fit = "crop"
	FitFill  Fit = "fill"
	FitMax   Fit = "max"
	FitScale Fit = "scale"
)

// Options are optional transformations appended as query parameters.
type Options struct {
	Width   int
	Height  int
	Fit     Fit
	Quality int
	// AutoFormat lets the CDN pick webp/avif when the client supports it.
	AutoFormat bool
}

// Builder turns asset references into CDN URLs for one project/dataset.
type Builder struct {
	ProjectID string
	Dataset   string
	BaseURL   string
	Defaults  Options
}

// Parse splits a reference such as image-Tb9Ew8CXIwaY6R1kjMvI0uRR-2000x3000-jpg.
func Parse(ref string) (Asset, error) {
	ref = strings.TrimSpace(ref)
	parts := strings.Split(ref, "-")
	if len(parts) != 4 || parts[0] != "image" || parts[1] == "" || parts[3] == "" {
		return Asset{}, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}
	dimensions := strings.SplitN(parts[2], "x", 2)
	if len(dimensions) != 2 {
		return Asset{}, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}
	width, err := strconv.Atoi(dimensions[0])
	if err != nil || width <= 0 {
		return Asset{}, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}
	height, err := strconv.Atoi(dimensions[1])
	if err != nil || height <= 0 {
		return Asset{}, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}
	return Asset{ID: parts[1], Width: width, Height: height, Format: parts[3]}, nil
}

// Configured reports whether the builder can produce URLs.
func (b Builder) Configured() bool {
	return strings.TrimSpace(b.ProjectID) != "" && strings.TrimSpace(b.Dataset) != ""
}

// URL builds the CDN URL for ref. Zero-valued opts fields inherit Defaults.
func (b Builder) URL(ref string, opts Options) (string, error) {
	if !b.Configured() {
		return "", ErrNotConfigured
	}
	asset, err := Parse(ref)
	if err != nil {
		return "", err
	}

	base := strings.TrimRight(strings.TrimSpace(b.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	filename := fmt.Sprintf("%s-%dx%d.%s", asset.ID, asset.Width, asset.Height, asset.Format)
	endpoint, err := url.JoinPath(base, "images", strings.TrimSpace(b.ProjectID), strings.TrimSpace(b.Dataset), filename)
	if err != nil {
		return "", err
	}

	query := b.merge(opts).values()
	if len(query) == 0 {
		return endpoint, nil
	}
	return endpoint + "?" + query.Encode(), nil
}

func (b Builder) merge(opts Options) Options {
	merged := b.Defaults
	if opts.Width > 0 {
		merged.Width = opts.Width
	}
	if opts.Height > 0 {
		merged.Height = opts.Height
	}
	if opts.Fit != "" {
		merged.Fit = opts.Fit
	}
	if opts.Quality > 0 {
		merged.Quality = opts.Quality
	}
	if opts.AutoFormat {
		merged.AutoFormat = true
	}
	return merged
}

func (o Options) values() url.Values {
	query := url.Values{}
	if o.Width > 0 {
		query.Set("w", strconv.Itoa(o.Width))
	}
	if o.Height > 0 {
		query.Set("h", strconv.Itoa(o.Height))
	}
	if o.Fit != "" {
		query.Set("fit", string(o.Fit))
	}
	if o.Quality > 0 && o.Quality <= 100 {
		query.Set("q", strconv.Itoa(o.Quality))
	}
	if o.AutoFormat {
		query.Set("auto", "format")
	}
	return query
}
