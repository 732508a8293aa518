// Package http exposes the public JSON API of the site on a chi router.
//
// Routes:
//   - GET  /healthz
//   - GET  /api/pages/{page} for home, about, pilot and contact
//   - GET  /api/blog with category, tag, q, page and per_page
//   - GET  /api/blog/{slug}
//   - POST /api/contact
//   - GET  /api/schema and /api/schema/{type}
//
// Every request resolves its language from the lang query parameter, the
// language cookie or Accept-Language, in that order.
package http
