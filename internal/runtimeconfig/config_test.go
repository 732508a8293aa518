package runtimeconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-coopsite/internal/locale"
	"github.com/goliatone/go-coopsite/internal/runtimeconfig"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
	if cfg.StorageDriver() != runtimeconfig.DriverMemory {
		t.Fatalf("expected memory driver, got %q", cfg.StorageDriver())
	}
	if cfg.DefaultLanguage() != locale.Primary {
		t.Fatalf("expected primary language, got %q", cfg.DefaultLanguage())
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{"relative base url", func(c *runtimeconfig.Config) { c.Site.BaseURL = "/coop" }, runtimeconfig.ErrSiteBaseURLInvalid},
		{"unsupported language", func(c *runtimeconfig.Config) { c.Site.DefaultLanguage = "fr" }, runtimeconfig.ErrDefaultLanguageUnsupported},
		{"project without dataset", func(c *runtimeconfig.Config) { c.Sanity.ProjectID = "abc123" }, runtimeconfig.ErrSanityDatasetRequired},
		{"negative sanity timeout", func(c *runtimeconfig.Config) { c.Sanity.Timeout = -time.Second }, runtimeconfig.ErrSanityTimeoutInvalid},
		{"unknown driver", func(c *runtimeconfig.Config) { c.Storage.Driver = "mongo" }, runtimeconfig.ErrStorageDriverUnknown},
		{"sqlite without dsn", func(c *runtimeconfig.Config) { c.Storage.Driver = "sqlite" }, runtimeconfig.ErrStorageDSNRequired},
		{"cache without ttl", func(c *runtimeconfig.Config) { c.Cache.TTL = 0 }, runtimeconfig.ErrCacheTTLInvalid},
		{"blank http addr", func(c *runtimeconfig.Config) { c.HTTP.Addr = " " }, runtimeconfig.ErrHTTPAddrRequired},
		{"contact without token", func(c *runtimeconfig.Config) {
			c.Sanity.ProjectID = "abc123"
			c.Sanity.Dataset = "production"
		}, runtimeconfig.ErrContactRequiresWriter},
		{"missing logging provider", func(c *runtimeconfig.Config) { c.Logging.Provider = "" }, runtimeconfig.ErrLoggingProviderRequired},
		{"unknown logging provider", func(c *runtimeconfig.Config) { c.Logging.Provider = "syslog" }, runtimeconfig.ErrLoggingProviderUnknown},
		{"invalid logging level", func(c *runtimeconfig.Config) { c.Logging.Level = "loud" }, runtimeconfig.ErrLoggingLevelInvalid},
		{"invalid logging format", func(c *runtimeconfig.Config) { c.Logging.Format = "xml" }, runtimeconfig.ErrLoggingFormatInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestConfigValidate_SkipsLoggingWhenFeatureDisabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = false
	cfg.Logging.Provider = "syslog"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_AllowsDisabledContactWithoutToken(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Sanity.ProjectID = "abc123"
	cfg.Sanity.Dataset = "production"
	cfg.Features.Contact = false

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestDecodeOverlaysFile(t *testing.T) {
	raw := []byte(`
site:
  base_url: https://example.coop
  default_language: du
sanity:
  project_id: abc123
  dataset: production
  token: secret
  timeout: 3s
storage:
  driver: sqlite
  dsn: file:coop.db
logging:
  focus: [coopsite.http, coopsite.sanity]
`)
	cfg, err := runtimeconfig.Decode(raw, runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}

	want := runtimeconfig.DefaultConfig()
	want.Site.BaseURL = "https://example.coop"
	want.Site.DefaultLanguage = "du"
	want.Sanity.ProjectID = "abc123"
	want.Sanity.Dataset = "production"
	want.Sanity.Token = "secret"
	want.Sanity.Timeout = 3 * time.Second
	want.Storage = runtimeconfig.StorageConfig{Driver: "sqlite", DSN: "file:coop.db"}
	want.Logging.Focus = []string{"coopsite.http", "coopsite.sanity"}

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.DefaultLanguage() != locale.Dutch {
		t.Fatalf("expected dutch default, got %q", cfg.DefaultLanguage())
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := runtimeconfig.Decode([]byte("sanity:\n  projectid: abc\n"), runtimeconfig.DefaultConfig())
	if err == nil {
		t.Fatal("expected unknown key error")
	}
}

func TestDecodeEmptyDocumentKeepsBase(t *testing.T) {
	cfg, err := runtimeconfig.Decode(nil, runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if diff := cmp.Diff(runtimeconfig.DefaultConfig(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvFromOverlaysPrefixedVariables(t *testing.T) {
	cfg, err := runtimeconfig.LoadEnvFrom(map[string]string{
		"COOPSITE_HTTP_ADDR":             ":9090",
		"COOPSITE_CACHE_TTL":             "30s",
		"COOPSITE_FEATURES_CONTACT":      "false",
		"COOPSITE_LOGGING_FOCUS":         "coopsite.http,coopsite.contact",
		"COOPSITE_SITE_DEFAULT_LANGUAGE": "du",
		"HTTP_ADDR":                      ":1",
	}, runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("LoadEnvFrom() error: %v", err)
	}

	if cfg.HTTP.Addr != ":9090" {
		t.Fatalf("expected :9090, got %q", cfg.HTTP.Addr)
	}
	if cfg.Cache.TTL != 30*time.Second {
		t.Fatalf("expected 30s ttl, got %v", cfg.Cache.TTL)
	}
	if cfg.Features.Contact {
		t.Fatal("expected contact feature disabled")
	}
	if diff := cmp.Diff([]string{"coopsite.http", "coopsite.contact"}, cfg.Logging.Focus); diff != "" {
		t.Fatalf("focus mismatch (-want +got):\n%s", diff)
	}
	if cfg.Site.BaseURL != runtimeconfig.DefaultConfig().Site.BaseURL {
		t.Fatalf("expected base url preserved, got %q", cfg.Site.BaseURL)
	}
}

func TestLoadEnvFromReportsParseErrors(t *testing.T) {
	_, err := runtimeconfig.LoadEnvFrom(map[string]string{"COOPSITE_CACHE_TTL": "soon"}, runtimeconfig.DefaultConfig())
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadReadsFileAndValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coopsite.yaml")
	if err := os.WriteFile(path, []byte("storage:\n  driver: postgres\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("COOPSITE_STORAGE_DSN", "")

	_, err := runtimeconfig.Load(path)
	if !errors.Is(err, runtimeconfig.ErrStorageDSNRequired) {
		t.Fatalf("expected ErrStorageDSNRequired, got %v", err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := runtimeconfig.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), runtimeconfig.DefaultConfig()); err == nil {
		t.Fatal("expected missing file error")
	}
}
