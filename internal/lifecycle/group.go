package lifecycle

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-coopsite/internal/locale"
)

// Loader is the type-erased view of a Section used by Group.
type Loader interface {
	Name() string
	LoadStatus(ctx context.Context, lang locale.Code) Status
	Unmount()
}

// LoadStatus loads the section and returns only its status.
func (s *Section[R, V]) LoadStatus(ctx context.Context, lang locale.Code) Status {
	return s.Load(ctx, lang).Status()
}

// Group loads independent sections concurrently.
type Group struct {
	loaders []Loader
	limit   int
}

// NewGroup returns a group over loaders. A limit above zero caps the number
// of concurrent fetches.
func NewGroup(limit int, loaders ...Loader) *Group {
	g := &Group{limit: limit}
	for _, loader := range loaders {
		if loader != nil {
			g.loaders = append(g.loaders, loader)
		}
	}
	return g
}

// Add appends a loader.
func (g *Group) Add(loader Loader) {
	if loader != nil {
		g.loaders = append(g.loaders, loader)
	}
}

// Load runs every loader and returns their statuses in registration order.
// Sections complete in any order; one section failing never affects another.
func (g *Group) Load(ctx context.Context, lang locale.Code) []Status {
	statuses := make([]Status, len(g.loaders))
	var eg errgroup.Group
	if g.limit > 0 {
		eg.SetLimit(g.limit)
	}
	for i, loader := range g.loaders {
		eg.Go(func() error {
			statuses[i] = loader.LoadStatus(ctx, lang)
			return nil
		})
	}
	_ = eg.Wait()
	return statuses
}

// Unmount unmounts every loader.
func (g *Group) Unmount() {
	for _, loader := range g.loaders {
		loader.Unmount()
	}
}
