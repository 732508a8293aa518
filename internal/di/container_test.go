package di

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-coopsite/internal/contact"
	"github.com/goliatone/go-coopsite/internal/logging/gologger"
	"github.com/goliatone/go-coopsite/internal/logging/logtest"
	"github.com/goliatone/go-coopsite/internal/runtimeconfig"
	"github.com/goliatone/go-coopsite/pkg/testsupport"
)

type recordingWriter struct {
	docs []map[string]any
}

func (w *recordingWriter) Create(_ context.Context, doc map[string]any) (map[string]any, error) {
	w.docs = append(w.docs, doc)
	return doc, nil
}

func testConfig() runtimeconfig.Config {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = false
	return cfg
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.Driver = "mongo"

	_, err := NewContainer(cfg)
	if !errors.Is(err, runtimeconfig.ErrStorageDriverUnknown) {
		t.Fatalf("expected ErrStorageDriverUnknown, got %v", err)
	}
}

func TestNewContainerOfflineDefaults(t *testing.T) {
	container, err := NewContainer(testConfig())
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	t.Cleanup(func() { _ = container.Close() })

	if container.SanityClient() != nil {
		t.Fatal("expected no content client without a project id")
	}
	if container.Images().Configured() {
		t.Fatal("expected unconfigured image builder")
	}
	if _, ok := container.Submissions().(*contact.MemoryRepository); !ok {
		t.Fatalf("expected memory repository, got %T", container.Submissions())
	}
	if container.ContactService().Enabled() {
		t.Fatal("contact must be disabled without a document writer")
	}

	rec := httptest.NewRecorder()
	container.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/pages/home?lang=du", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Language"); got != "du" {
		t.Fatalf("expected du content language, got %q", got)
	}
}

func TestConfiguredDefaultLanguageServesRequests(t *testing.T) {
	recorder := logtest.New()
	cfg := testConfig()
	cfg.Site.DefaultLanguage = "du"

	container, err := NewContainer(cfg, WithLoggerProvider(recorder))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	serve := func() string {
		rec := httptest.NewRecorder()
		container.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/pages/home", nil))
		return rec.Header().Get("Content-Language")
	}
	if got := serve(); got != "du" {
		t.Fatalf("expected configured default du, got %q", got)
	}

	if container.LanguageState().Set("xx") {
		t.Fatal("expected unsupported code to be rejected")
	}
	rejected := 0
	for _, msg := range recorder.Messages("warn") {
		if msg == "locale.state.rejected" {
			rejected++
		}
	}
	if rejected != 1 {
		t.Fatalf("expected one rejection warning, got %v", recorder.Messages("warn"))
	}
	if got := serve(); got != "du" {
		t.Fatalf("rejected code must keep du, got %q", got)
	}

	if !container.LanguageState().Set("en") {
		t.Fatal("expected en to be accepted")
	}
	if got := serve(); got != "en" {
		t.Fatalf("expected en after switching, got %q", got)
	}
}

func TestConfigureLoggerProviderUsesGoLoggerAdapter(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "json"

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if _, ok := container.LoggerProvider().(*gologger.Provider); !ok {
		t.Fatalf("expected go-logger provider, got %T", container.LoggerProvider())
	}
}

func TestLoggerProviderOverrideWins(t *testing.T) {
	recorder := logtest.New()
	container, err := NewContainer(runtimeconfig.DefaultConfig(), WithLoggerProvider(recorder))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.LoggerProvider() != recorder {
		t.Fatalf("expected recorder provider, got %T", container.LoggerProvider())
	}
}

func TestSanityConfigWiresClientAndImages(t *testing.T) {
	cfg := testConfig()
	cfg.Sanity.ProjectID = "abc123"
	cfg.Sanity.Dataset = "production"
	cfg.Sanity.Token = "secret"

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.SanityClient() == nil || !container.SanityClient().Configured() {
		t.Fatal("expected configured content client")
	}
	if !container.Images().Configured() {
		t.Fatal("expected image builder for the dataset")
	}
	if !container.ContactService().Enabled() {
		t.Fatal("expected contact enabled with a token")
	}
}

func TestContactSubmissionPersistsToSQLite(t *testing.T) {
	db := testsupport.NewBunDB(t, "di_contact")
	writer := &recordingWriter{}
	now := time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)

	container, err := NewContainer(testConfig(),
		WithBunDB(db),
		WithDocumentWriter(writer),
		WithClock(func() time.Time { return now }),
	)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if _, ok := container.Submissions().(*contact.BunRepository); !ok {
		t.Fatalf("expected bun repository, got %T", container.Submissions())
	}

	body := `{"name": "Ada", "email": "ada@example.com", "message": "Please add me to the battery pilot list."}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	container.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(writer.docs) != 1 {
		t.Fatalf("expected one stored document, got %d", len(writer.docs))
	}

	records, total, err := container.Submissions().List(context.Background(), contact.ListOptions{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 1 || len(records) != 1 || records[0].Status != contact.StatusSent {
		t.Fatalf("unexpected submissions total=%d records=%+v", total, records)
	}

	if err := container.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		t.Fatalf("caller-owned db must stay open: %v", err)
	}
}

func TestOpenDatabaseRejectsMemoryDriver(t *testing.T) {
	if _, err := OpenDatabase(runtimeconfig.StorageConfig{Driver: "memory"}); !errors.Is(err, runtimeconfig.ErrStorageDriverUnknown) {
		t.Fatalf("expected ErrStorageDriverUnknown, got %v", err)
	}
}

func TestOpenDatabaseSQLite(t *testing.T) {
	db, err := OpenDatabase(runtimeconfig.StorageConfig{Driver: "sqlite", DSN: testsupport.SQLiteMemoryDSN("di_open")})
	if err != nil {
		t.Fatalf("OpenDatabase() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := db.PingContext(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
