package runtimeconfig

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-coopsite/internal/locale"
)

var ErrSiteBaseURLInvalid = errors.New("coopsite config: site base url must be absolute")
var ErrDefaultLanguageUnsupported = errors.New("coopsite config: default language is not supported")

// ErrSanityDatasetRequired indicates a project id without a dataset.
var ErrSanityDatasetRequired = errors.New("coopsite config: sanity dataset is required when a project id is set")
var ErrSanityTimeoutInvalid = errors.New("coopsite config: sanity timeout must be zero or positive")

var ErrStorageDriverUnknown = errors.New("coopsite config: storage driver is invalid")
var ErrStorageDSNRequired = errors.New("coopsite config: storage dsn is required for sql drivers")

// ErrCacheTTLInvalid ensures an enabled cache has a usable expiry.
var ErrCacheTTLInvalid = errors.New("coopsite config: cache ttl must be positive when cache is enabled")
var ErrHTTPAddrRequired = errors.New("coopsite config: http address is required")
var ErrContactRequiresWriter = errors.New("coopsite config: contact feature requires a sanity token")
var ErrLoggingProviderRequired = errors.New("coopsite config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("coopsite config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("coopsite config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("coopsite config: logging format is invalid")

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config aggregates everything the site runtime needs to start.
type Config struct {
	Site     SiteConfig    `yaml:"site" envPrefix:"SITE_"`
	Sanity   SanityConfig  `yaml:"sanity" envPrefix:"SANITY_"`
	Storage  StorageConfig `yaml:"storage" envPrefix:"STORAGE_"`
	Cache    CacheConfig   `yaml:"cache" envPrefix:"CACHE_"`
	HTTP     HTTPConfig    `yaml:"http" envPrefix:"HTTP_"`
	Contact  ContactConfig `yaml:"contact" envPrefix:"CONTACT_"`
	Logging  LoggingConfig `yaml:"logging" envPrefix:"LOGGING_"`
	Features Features      `yaml:"features" envPrefix:"FEATURES_"`
}

// SiteConfig captures public URL and language settings.
type SiteConfig struct {
	BaseURL         string `yaml:"base_url" env:"BASE_URL"`
	DefaultLanguage string `yaml:"default_language" env:"DEFAULT_LANGUAGE"`
	// Concurrency bounds section fetches per page render. Zero means unbounded.
	Concurrency int `yaml:"concurrency" env:"CONCURRENCY"`
}

// SanityConfig identifies the headless content dataset.
type SanityConfig struct {
	ProjectID  string        `yaml:"project_id" env:"PROJECT_ID"`
	Dataset    string        `yaml:"dataset" env:"DATASET"`
	APIVersion string        `yaml:"api_version" env:"API_VERSION"`
	UseCDN     bool          `yaml:"use_cdn" env:"USE_CDN"`
	Token      string        `yaml:"token" env:"TOKEN"`
	BaseURL    string        `yaml:"base_url" env:"BASE_URL"`
	Timeout    time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

// Configured reports whether reads against the dataset are possible.
func (s SanityConfig) Configured() bool {
	return strings.TrimSpace(s.ProjectID) != "" && strings.TrimSpace(s.Dataset) != ""
}

// StorageConfig selects where contact submissions are recorded.
type StorageConfig struct {
	Driver string `yaml:"driver" env:"DRIVER"`
	DSN    string `yaml:"dsn" env:"DSN"`
}

// CacheConfig captures read-through cache behaviour for submissions.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" env:"ENABLED"`
	TTL     time.Duration `yaml:"ttl" env:"TTL"`
}

// HTTPConfig controls the API listener.
type HTTPConfig struct {
	Addr            string        `yaml:"addr" env:"ADDR"`
	CacheControl    string        `yaml:"cache_control" env:"CACHE_CONTROL"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

// ContactConfig controls contact form delivery.
type ContactConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider" env:"PROVIDER"`
	Level     string   `yaml:"level" env:"LEVEL"`
	Format    string   `yaml:"format" env:"FORMAT"`
	AddSource bool     `yaml:"add_source" env:"ADD_SOURCE"`
	Focus     []string `yaml:"focus" env:"FOCUS"`
}

// Features toggles optional functionality.
type Features struct {
	Contact bool `yaml:"contact" env:"CONTACT"`
	Logger  bool `yaml:"logger" env:"LOGGER"`
}

// DefaultConfig returns settings suitable for a local offline run.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			BaseURL:         "https://stroomkring.coop",
			DefaultLanguage: string(locale.Primary),
			Concurrency:     4,
		},
		Sanity: SanityConfig{
			APIVersion: "2024-01-01",
			UseCDN:     true,
			Timeout:    10 * time.Second,
		},
		Storage: StorageConfig{
			Driver: DriverMemory,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     time.Minute,
		},
		HTTP: HTTPConfig{
			Addr:            ":8080",
			CacheControl:    "public, max-age=60",
			ShutdownTimeout: 10 * time.Second,
		},
		Contact: ContactConfig{
			Timeout: 15 * time.Second,
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "console",
		},
		Features: Features{
			Contact: true,
			Logger:  true,
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if base := strings.TrimSpace(cfg.Site.BaseURL); base != "" {
		parsed, err := url.Parse(base)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("%w: %s", ErrSiteBaseURLInvalid, base)
		}
	}
	if lang := strings.TrimSpace(cfg.Site.DefaultLanguage); lang != "" {
		if _, ok := locale.Parse(lang); !ok {
			return fmt.Errorf("%w: %s", ErrDefaultLanguageUnsupported, lang)
		}
	}
	if strings.TrimSpace(cfg.Sanity.ProjectID) != "" && strings.TrimSpace(cfg.Sanity.Dataset) == "" {
		return ErrSanityDatasetRequired
	}
	if cfg.Sanity.Timeout < 0 {
		return ErrSanityTimeoutInvalid
	}
	switch driver := normalize(cfg.Storage.Driver); driver {
	case "", DriverMemory:
	case DriverSQLite, DriverPostgres:
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return fmt.Errorf("%w: %s", ErrStorageDSNRequired, driver)
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, driver)
	}
	if cfg.Cache.Enabled && cfg.Cache.TTL <= 0 {
		return ErrCacheTTLInvalid
	}
	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		return ErrHTTPAddrRequired
	}
	if cfg.Features.Contact && cfg.Sanity.Configured() && strings.TrimSpace(cfg.Sanity.Token) == "" {
		return ErrContactRequiresWriter
	}
	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

// StorageDriver returns the normalised driver name, defaulting to memory.
func (cfg Config) StorageDriver() string {
	if driver := normalize(cfg.Storage.Driver); driver != "" {
		return driver
	}
	return DriverMemory
}

// DefaultLanguage returns the configured fallback language.
func (cfg Config) DefaultLanguage() locale.Code {
	if code, ok := locale.Parse(cfg.Site.DefaultLanguage); ok {
		return code
	}
	return locale.Primary
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
