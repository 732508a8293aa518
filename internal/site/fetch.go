package site

import (
	"context"

	"github.com/goliatone/go-coopsite/internal/lifecycle"
	"github.com/goliatone/go-coopsite/internal/locale"
	"github.com/goliatone/go-coopsite/internal/sanity"
	"github.com/goliatone/go-coopsite/pkg/interfaces"
)

// query runs one CMS query into a fresh R. A nil querier or a null result
// yields (nil, nil) so the section renders its defaults as Ready.
func query[R any](ctx context.Context, q interfaces.ContentQuerier, groq string, params map[string]any) (*R, error) {
	if q == nil {
		return nil, nil
	}
	var out R
	found, err := q.Query(ctx, groq, params, &out)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &out, nil
}

func fieldFetcher[R any](q interfaces.ContentQuerier, docType, field string) lifecycle.Fetcher[R] {
	return func(ctx context.Context, _ locale.Code) (*R, error) {
		groq, params, err := sanity.SectionQuery(docType, field)
		if err != nil {
			return nil, err
		}
		return query[R](ctx, q, groq, params)
	}
}

func documentFetcher[R any](q interfaces.ContentQuerier, docType string) lifecycle.Fetcher[R] {
	return func(ctx context.Context, _ locale.Code) (*R, error) {
		groq, params := sanity.DocumentQuery(docType)
		return query[R](ctx, q, groq, params)
	}
}

func rawFetcher[R any](q interfaces.ContentQuerier, groq string, params map[string]any) lifecycle.Fetcher[R] {
	return func(ctx context.Context, _ locale.Code) (*R, error) {
		return query[R](ctx, q, groq, params)
	}
}
