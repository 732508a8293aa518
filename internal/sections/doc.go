// Package sections builds render-ready view models for every page section.
//
// Each section pairs a sparse Remote type, decoded from the CMS, with a fully
// populated View type and language-keyed defaults. Build functions are pure:
// a nil remote (fetch pending or failed) yields the defaults, a partial remote
// is merged field by field through localized.Resolve, and list fields merge
// positionally. Views never contain nil slices so they encode without nulls.
package sections
