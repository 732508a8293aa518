package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/goliatone/go-coopsite/internal/contact"
	"github.com/goliatone/go-coopsite/internal/locale"
	"github.com/goliatone/go-coopsite/internal/logging"
	"github.com/goliatone/go-coopsite/internal/site"
	"github.com/goliatone/go-coopsite/pkg/interfaces"
)

const tracerName = "github.com/goliatone/go-coopsite/internal/http"

// APIVersion is reported in the OpenAPI document.
const APIVersion = "1.0.0"

// Option configures an API.
type Option func(*API)

func WithLogger(logger interfaces.Logger) Option {
	return func(api *API) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// WithContact enables POST /api/contact.
func WithContact(svc *contact.Service) Option {
	return func(api *API) {
		api.contact = svc
	}
}

// WithLanguageState sets the language served when a request carries no
// usable preference.
func WithLanguageState(state *locale.State) Option {
	return func(api *API) {
		if state != nil {
			api.language = state
		}
	}
}

// WithCacheControl sets the Cache-Control header of content responses.
func WithCacheControl(value string) Option {
	return func(api *API) {
		api.cacheControl = value
	}
}

// API serves the public JSON endpoints.
type API struct {
	site         *site.Service
	contact      *contact.Service
	logger       interfaces.Logger
	cacheControl string
	tracer       trace.Tracer
	language     *locale.State
}

// New returns an API over the page service.
func New(pages *site.Service, opts ...Option) *API {
	api := &API{
		site:         pages,
		logger:       logging.NoOp(),
		cacheControl: "public, max-age=60",
		tracer:       otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// Router returns the chi router with every route and middleware mounted.
func (api *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(api.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", api.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Use(api.negotiateLanguage)
		r.Get("/pages/{page}", api.handlePage)
		r.Get("/blog", api.handleBlog)
		r.Get("/blog/{slug}", api.handlePost)
		r.Post("/contact", api.handleContact)
		r.Get("/schema", api.handleSchema)
		r.Get("/schema/{type}", api.handleSchemaType)
		r.Get("/openapi.json", api.handleOpenAPI)
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method_not_allowed"})
	})
	return r
}

// negotiateLanguage stores the request language in the context and
// persists an explicit ?lang= choice as a cookie.
func (api *API) negotiateLanguage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code, fromQuery := locale.FromRequest(r, api.language.Current())
		if fromQuery {
			locale.SetCookie(w, code)
		}
		w.Header().Set("Content-Language", code.String())
		w.Header().Add("Vary", "Accept-Language")
		next.ServeHTTP(w, r.WithContext(locale.WithCode(r.Context(), code)))
	})
}

func (api *API) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		ctx, span := api.tracer.Start(r.Context(), r.Method+" "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", r.Method),
				attribute.String("url.path", r.URL.Path),
			),
		)
		defer span.End()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		span.SetAttributes(attribute.Int("http.response.status_code", status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}

		logger := logging.WithFields(api.logger.WithContext(ctx), map[string]any{
			"request_id": middleware.GetReqID(ctx),
			"remote_ip":  r.RemoteAddr,
		})
		logger.Info("http.request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(started).Milliseconds(),
		)
	})
}
