package di

import (
	"context"
	"fmt"
	"net/http"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-coopsite/internal/blog"
	"github.com/goliatone/go-coopsite/internal/contact"
	httpapi "github.com/goliatone/go-coopsite/internal/http"
	"github.com/goliatone/go-coopsite/internal/imageurl"
	"github.com/goliatone/go-coopsite/internal/locale"
	"github.com/goliatone/go-coopsite/internal/logging"
	"github.com/goliatone/go-coopsite/internal/logging/gologger"
	"github.com/goliatone/go-coopsite/internal/navigation"
	"github.com/goliatone/go-coopsite/internal/runtimeconfig"
	"github.com/goliatone/go-coopsite/internal/sanity"
	"github.com/goliatone/go-coopsite/internal/sections"
	"github.com/goliatone/go-coopsite/internal/site"
	"github.com/goliatone/go-coopsite/pkg/interfaces"
)

const setupTimeout = 30 * time.Second

// Container wires the site runtime from configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	bunDB         *bun.DB
	ownsDB        bool
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	httpClient *http.Client
	querier    interfaces.ContentQuerier
	writer     interfaces.DocumentCreator
	clock      func() time.Time

	sanityClient *sanity.Client
	images       imageurl.Builder

	language *locale.State

	submissions contact.Repository
	contactSvc  *contact.Service
	siteSvc     *site.Service
	api         *httpapi.API
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider built from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithBunDB supplies the database used for contact submissions. The caller
// keeps ownership of the handle.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default cache service.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithHTTPClient sets the transport used by the content client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Container) {
		c.httpClient = client
	}
}

// WithContentQuerier replaces the content read client.
func WithContentQuerier(querier interfaces.ContentQuerier) Option {
	return func(c *Container) {
		c.querier = querier
	}
}

// WithDocumentWriter replaces the client that stores contact documents.
func WithDocumentWriter(writer interfaces.DocumentCreator) Option {
	return func(c *Container) {
		c.writer = writer
	}
}

func WithSubmissionRepository(repo contact.Repository) Option {
	return func(c *Container) {
		c.submissions = repo
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Container) {
		c.clock = now
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogger(); err != nil {
		return nil, err
	}
	c.language = locale.NewState(cfg.Site.DefaultLanguage, locale.WithLogger(logging.LocaleLogger(c.loggerProvider)))
	c.configureContent()

	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()
	if err := c.configureStorage(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err := c.configureServices(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) configureLogger() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}
	provider, err := gologger.NewProvider(gologger.Config{
		Level:     c.Config.Logging.Level,
		Format:    c.Config.Logging.Format,
		AddSource: c.Config.Logging.AddSource,
		Focus:     c.Config.Logging.Focus,
	})
	if err != nil {
		return fmt.Errorf("di: configure logger: %w", err)
	}
	c.loggerProvider = provider
	return nil
}

func (c *Container) configureContent() {
	sanityCfg := c.Config.Sanity
	if !sanityCfg.Configured() {
		return
	}
	c.images = imageurl.Builder{
		ProjectID: sanityCfg.ProjectID,
		Dataset:   sanityCfg.Dataset,
		Defaults:  imageurl.Options{AutoFormat: true},
	}
	if c.querier != nil && c.writer != nil {
		return
	}

	options := []sanity.Option{sanity.WithLogger(logging.SanityLogger(c.loggerProvider))}
	if c.httpClient != nil {
		options = append(options, sanity.WithHTTPClient(c.httpClient))
	}
	c.sanityClient = sanity.NewClient(sanity.Config{
		ProjectID:  sanityCfg.ProjectID,
		Dataset:    sanityCfg.Dataset,
		APIVersion: sanityCfg.APIVersion,
		UseCDN:     sanityCfg.UseCDN,
		Token:      sanityCfg.Token,
		BaseURL:    sanityCfg.BaseURL,
		Timeout:    sanityCfg.Timeout,
	}, options...)

	if c.querier == nil {
		c.querier = c.sanityClient
	}
	if c.writer == nil && sanityCfg.Token != "" {
		c.writer = c.sanityClient
	}
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}
	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.Config.Cache.TTL > 0 {
			cfg.TTL = c.Config.Cache.TTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}
	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureStorage(ctx context.Context) error {
	if c.submissions != nil {
		return nil
	}
	if c.bunDB == nil && c.Config.StorageDriver() != runtimeconfig.DriverMemory {
		db, err := OpenDatabase(c.Config.Storage)
		if err != nil {
			return err
		}
		c.bunDB = db
		c.ownsDB = true
	}
	if c.bunDB == nil {
		c.submissions = contact.NewMemoryRepository()
		return nil
	}

	if err := contact.CreateTables(ctx, c.bunDB); err != nil {
		return fmt.Errorf("di: create contact tables: %w", err)
	}
	c.configureCacheDefaults()
	if c.cacheService != nil {
		c.submissions = contact.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	} else {
		c.submissions = contact.NewBunRepository(c.bunDB)
	}
	return nil
}

func (c *Container) configureServices() error {
	contactOpts := []contact.Option{
		contact.WithLogger(logging.ContactLogger(c.loggerProvider)),
		contact.WithTimeout(c.Config.Contact.Timeout),
		contact.WithEnabled(c.Config.Features.Contact),
	}
	if c.clock != nil {
		contactOpts = append(contactOpts, contact.WithClock(c.clock))
	}
	c.contactSvc = contact.NewService(c.submissions, c.writer, contactOpts...)

	var images sections.ImageURLBuilder
	if c.images.Configured() {
		images = c.images
	}
	catalog, err := blog.NewCatalog(
		blog.WithImages(images),
		blog.WithLogger(logging.BlogLogger(c.loggerProvider)),
	)
	if err != nil {
		return fmt.Errorf("di: load blog catalog: %w", err)
	}

	siteOpts := []site.Option{
		site.WithImages(images),
		site.WithNavigator(navigation.NewDefault(c.Config.Site.BaseURL)),
		site.WithCatalog(catalog),
		site.WithLogger(logging.SectionsLogger(c.loggerProvider)),
		site.WithConcurrency(c.Config.Site.Concurrency),
		site.WithContactForm(c.contactSvc.Enabled),
	}
	if c.querier != nil {
		siteOpts = append(siteOpts, site.WithQuerier(c.querier))
	}
	svc, err := site.NewService(siteOpts...)
	if err != nil {
		return fmt.Errorf("di: build site service: %w", err)
	}
	c.siteSvc = svc

	c.api = httpapi.New(svc,
		httpapi.WithLogger(logging.HTTPLogger(c.loggerProvider)),
		httpapi.WithContact(c.contactSvc),
		httpapi.WithCacheControl(c.Config.HTTP.CacheControl),
		httpapi.WithLanguageState(c.language),
	)
	return nil
}

// LoggerProvider returns the active provider, nil when logging is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Logger returns the root module logger.
func (c *Container) Logger() interfaces.Logger {
	return logging.RootLogger(c.loggerProvider)
}

// LanguageState returns the language served when a request or render call
// names none.
func (c *Container) LanguageState() *locale.State {
	return c.language
}

func (c *Container) SiteService() *site.Service {
	return c.siteSvc
}

func (c *Container) ContactService() *contact.Service {
	return c.contactSvc
}

func (c *Container) Submissions() contact.Repository {
	return c.submissions
}

// SanityClient returns the content client, nil when no dataset is configured.
func (c *Container) SanityClient() *sanity.Client {
	return c.sanityClient
}

func (c *Container) Images() imageurl.Builder {
	return c.images
}

// Handler returns the HTTP router.
func (c *Container) Handler() http.Handler {
	return c.api.Router()
}

// Close releases the database handle when the container opened it.
func (c *Container) Close() error {
	if c == nil || c.bunDB == nil || !c.ownsDB {
		return nil
	}
	err := c.bunDB.Close()
	c.bunDB = nil
	return err
}
