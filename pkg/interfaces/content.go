package interfaces

import "context"

// ContentQuerier runs a read-only structured query against the headless CMS
// and decodes the result into out. found is false when the CMS answered with
// a null result.
type ContentQuerier interface {
	Query(ctx context.Context, query string, params map[string]any, out any) (found bool, err error)
}

// DocumentCreator creates a single document in the headless CMS and returns
// the stored representation.
type DocumentCreator interface {
	Create(ctx context.Context, document map[string]any) (map[string]any, error)
}

// ContentStore bundles the read and write capabilities of the CMS client.
type ContentStore interface {
	ContentQuerier
	DocumentCreator
}
