package coopsite

import "github.com/goliatone/go-coopsite/internal/runtimeconfig"

var (
	ErrSiteBaseURLInvalid         = runtimeconfig.ErrSiteBaseURLInvalid
	ErrDefaultLanguageUnsupported = runtimeconfig.ErrDefaultLanguageUnsupported
	ErrSanityDatasetRequired      = runtimeconfig.ErrSanityDatasetRequired
	ErrStorageDriverUnknown       = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired         = runtimeconfig.ErrStorageDSNRequired
	ErrLoggingProviderRequired    = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config        = runtimeconfig.Config
	SiteConfig    = runtimeconfig.SiteConfig
	SanityConfig  = runtimeconfig.SanityConfig
	StorageConfig = runtimeconfig.StorageConfig
	CacheConfig   = runtimeconfig.CacheConfig
	HTTPConfig    = runtimeconfig.HTTPConfig
	ContactConfig = runtimeconfig.ContactConfig
	LoggingConfig = runtimeconfig.LoggingConfig
	Features      = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig layers the optional YAML file and COOPSITE_* variables over
// the defaults.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.Load(path)
}
