package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goliatone/go-coopsite/internal/contact"
	"github.com/goliatone/go-coopsite/internal/locale"
	"github.com/goliatone/go-coopsite/internal/logging/logtest"
	"github.com/goliatone/go-coopsite/internal/navigation"
	"github.com/goliatone/go-coopsite/internal/sections"
	"github.com/goliatone/go-coopsite/internal/site"
)

type recordingWriter struct {
	docs []map[string]any
	err  error
}

func (w *recordingWriter) Create(_ context.Context, doc map[string]any) (map[string]any, error) {
	if w.err != nil {
		return nil, w.err
	}
	w.docs = append(w.docs, doc)
	return doc, nil
}

type fixture struct {
	handler  http.Handler
	writer   *recordingWriter
	recorder *logtest.Recorder
}

func newFixture(t *testing.T, writer *recordingWriter) fixture {
	t.Helper()
	pages, err := site.NewService(site.WithNavigator(navigation.NewDefault("https://stroomkring.coop")))
	if err != nil {
		t.Fatalf("site.NewService() error = %v", err)
	}
	recorder := logtest.New()
	opts := []Option{WithLogger(recorder)}
	if writer != nil {
		opts = append(opts, WithContact(contact.NewService(contact.NewMemoryRepository(), writer)))
	}
	return fixture{handler: New(pages, opts...).Router(), writer: writer, recorder: recorder}
}

func (f fixture) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestHealthz(t *testing.T) {
	f := newFixture(t, nil)
	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("unexpected health response %d %s", rec.Code, rec.Body.String())
	}
	if len(f.recorder.Messages("info")) == 0 {
		t.Fatal("expected request log entry")
	}
}

func TestPageLanguageNegotiation(t *testing.T) {
	f := newFixture(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/pages/home?lang=du", nil)
	rec := f.do(t, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("Content-Language") != "du" {
		t.Fatalf("expected du content language, got %q", rec.Header().Get("Content-Language"))
	}
	if !strings.Contains(rec.Header().Get("Vary"), "Accept-Language") {
		t.Fatalf("expected Vary header, got %q", rec.Header().Get("Vary"))
	}
	if cookie := rec.Result().Cookies(); len(cookie) != 1 || cookie[0].Name != locale.CookieName || cookie[0].Value != "du" {
		t.Fatalf("expected language cookie, got %+v", cookie)
	}
	page := decode[site.HomePage](t, rec)
	if page.Hero.Title != sections.DefaultHero(sections.PageHome, locale.Dutch).Title {
		t.Fatalf("expected Dutch hero, got %q", page.Hero.Title)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/pages/about", nil)
	req.Header.Set("Accept-Language", "nl-BE,nl;q=0.9,en;q=0.5")
	rec = f.do(t, req)
	if rec.Header().Get("Content-Language") != "du" || len(rec.Result().Cookies()) != 0 {
		t.Fatalf("Accept-Language should pick du without setting a cookie")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/pages/pilot?lang=fr", nil)
	rec = f.do(t, req)
	if rec.Header().Get("Content-Language") != "en" {
		t.Fatalf("unsupported language should fall back to en, got %q", rec.Header().Get("Content-Language"))
	}
}

func TestLanguageStateSuppliesFallback(t *testing.T) {
	pages, err := site.NewService()
	if err != nil {
		t.Fatalf("site.NewService() error = %v", err)
	}
	recorder := logtest.New()
	state := locale.NewState("fr", locale.WithLogger(recorder))
	handler := New(pages, WithLanguageState(state)).Router()

	serve := func(target string) string {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		return rec.Header().Get("Content-Language")
	}

	if got := serve("/api/pages/home"); got != "en" {
		t.Fatalf("unsupported configured language should serve en, got %q", got)
	}
	if warnings := recorder.Messages("warn"); len(warnings) != 1 {
		t.Fatalf("expected a warning for the configured language, got %v", warnings)
	}

	state.Set("du")
	if got := serve("/api/pages/home"); got != "du" {
		t.Fatalf("expected state language du, got %q", got)
	}
	if got := serve("/api/pages/home?lang=en"); got != "en" {
		t.Fatalf("query should override the state language, got %q", got)
	}
}

func TestUnknownPage(t *testing.T) {
	f := newFixture(t, nil)
	for _, path := range []string{"/api/pages/pricing", "/api/pages/blog", "/api/missing"} {
		rec := f.do(t, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, rec.Code)
		}
		if decode[errorResponse](t, rec).Error != "not_found" {
			t.Fatalf("%s: expected not_found error", path)
		}
	}
}

func TestBlogListingAndPost(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/api/blog?per_page=1&page=2", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	listing := decode[site.BlogPage](t, rec)
	if listing.Posts.Page != 2 || listing.Posts.PerPage != 1 || len(listing.Posts.Posts) != 1 || listing.Posts.Total != 3 {
		t.Fatalf("unexpected listing %+v", listing.Posts)
	}

	rec = f.do(t, httptest.NewRequest(http.MethodGet, "/api/blog?tag=storage&per_page=oops", nil))
	listing = decode[site.BlogPage](t, rec)
	if listing.Posts.Total != 1 || listing.Query.Tag != "storage" {
		t.Fatalf("unexpected tag listing %+v", listing)
	}

	rec = f.do(t, httptest.NewRequest(http.MethodGet, "/api/blog/school-roof-solar?lang=du", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	post := decode[site.PostPage](t, rec)
	if post.Post.Title != "Het schooldak levert stroom" {
		t.Fatalf("unexpected post %+v", post.Post)
	}

	rec = f.do(t, httptest.NewRequest(http.MethodGet, "/api/blog/not-a-post", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func contactRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/contact?lang=du", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestContactSubmit(t *testing.T) {
	f := newFixture(t, &recordingWriter{})

	rec := f.do(t, contactRequest(`{"name": "Ada", "email": "ada@example.com", "message": "Count me in for the battery pilot."}`))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	receipt := decode[contact.Receipt](t, rec)
	if receipt.Status != contact.StatusSent || receipt.Reference == "" {
		t.Fatalf("unexpected receipt %+v", receipt)
	}
	if len(f.writer.docs) != 1 || f.writer.docs[0]["language"] != "du" {
		t.Fatalf("expected one du document, got %+v", f.writer.docs)
	}
}

func TestContactValidation(t *testing.T) {
	f := newFixture(t, &recordingWriter{})

	rec := f.do(t, contactRequest(`{"name": "", "email": "nope", "message": "short"}`))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	payload := decode[errorResponse](t, rec)
	if payload.Error != "validation_failed" || len(payload.Issues) != 3 {
		t.Fatalf("unexpected payload %+v", payload)
	}
	if payload.Issues[0].Location != "/email" {
		t.Fatalf("issues should be sorted by field, got %+v", payload.Issues)
	}

	rec = f.do(t, contactRequest(`{"name": "Ada", "unknown": true}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown fields, got %d", rec.Code)
	}
	if len(f.writer.docs) != 0 {
		t.Fatal("invalid submissions must not reach the CMS")
	}
}

func TestContactDisabledAndDeliveryFailure(t *testing.T) {
	disabled := newFixture(t, nil)
	rec := disabled.do(t, contactRequest(`{"name": "Ada", "email": "ada@example.com", "message": "Count me in for the pilot."}`))
	if rec.Code != http.StatusServiceUnavailable || decode[errorResponse](t, rec).Error != "contact_disabled" {
		t.Fatalf("expected contact_disabled, got %d %s", rec.Code, rec.Body.String())
	}

	failing := newFixture(t, &recordingWriter{err: errors.New("cms down")})
	rec = failing.do(t, contactRequest(`{"name": "Ada", "email": "ada@example.com", "message": "Count me in for the pilot."}`))
	if rec.Code != http.StatusBadGateway || decode[errorResponse](t, rec).Error != "delivery_failed" {
		t.Fatalf("expected delivery_failed, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestSchemaEndpoints(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/api/schema", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	catalog := decode[schemaResponse](t, rec)
	if len(catalog.Types) == 0 || catalog.JSONSchemas["contactSubmission"] == nil {
		t.Fatalf("unexpected schema catalog")
	}

	rec = f.do(t, httptest.NewRequest(http.MethodGet, "/api/schema/post", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"const":"post"`) {
		t.Fatalf("unexpected post schema %d %s", rec.Code, rec.Body.String())
	}
	rec = f.do(t, httptest.NewRequest(http.MethodGet, "/api/schema/page", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestOpenAPIDocument(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/api/openapi.json", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	doc := decode[map[string]any](t, rec)
	if doc["openapi"] != "3.1.0" {
		t.Fatalf("unexpected openapi version %v", doc["openapi"])
	}
	paths, _ := doc["paths"].(map[string]any)
	if _, ok := paths["/api/contact"]; !ok {
		t.Fatalf("expected contact path in %v", paths)
	}
}
