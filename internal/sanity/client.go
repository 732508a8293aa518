// Package sanity talks to the headless CMS over its HTTP query and mutation
// APIs.
package sanity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/goliatone/go-coopsite/internal/logging"
	"github.com/goliatone/go-coopsite/pkg/interfaces"
)

const (
	// DefaultAPIVersion pins the query API dialect.
	DefaultAPIVersion = "2024-01-01"
	defaultTimeout    = 10 * time.Second
	maxErrorBody      = 4 << 10
)

var (
	// ErrNotConfigured is returned when no project id or dataset is set.
	ErrNotConfigured = errors.New("sanity: project id and dataset are required")
	// ErrMissingToken is returned by writes without a token.
	ErrMissingToken = errors.New("sanity: write token is required")
	// ErrEmptyMutation is returned when a mutation yields no document.
	ErrEmptyMutation = errors.New("sanity: mutation returned no document")
)

var tracer = otel.Tracer("github.com/goliatone/go-coopsite/internal/sanity")

// StatusError reports a non-2xx API response.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("sanity: unexpected status %d", e.Status)
	}
	return fmt.Sprintf("sanity: unexpected status %d: %s", e.Status, body)
}

// Config describes one project dataset.
type Config struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	// UseCDN routes reads through the cached API edge.
	UseCDN bool
	Token  string
	// BaseURL overrides the derived API host.
	BaseURL string
	Timeout time.Duration
}

// Configured reports whether reads can be issued.
func (c Config) Configured() bool {
	return strings.TrimSpace(c.ProjectID) != "" && strings.TrimSpace(c.Dataset) != ""
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient replaces the transport client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client implements interfaces.ContentStore.
type Client struct {
	cfg    Config
	http   *http.Client
	logger interfaces.Logger
}

var _ interfaces.ContentStore = (*Client)(nil)

// NewClient returns a client for cfg. An unconfigured client is valid; every
// call on it fails with ErrNotConfigured.
func NewClient(cfg Config, opts ...Option) *Client {
	if strings.TrimSpace(cfg.APIVersion) == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	c := &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Configured reports whether the client can issue requests.
func (c *Client) Configured() bool {
	return c != nil && c.cfg.Configured()
}

// Query runs a GROQ query and decodes its result into out. A null result
// reports found=false and leaves out untouched.
func (c *Client) Query(ctx context.Context, query string, params map[string]any, out any) (bool, error) {
	if !c.Configured() {
		return false, ErrNotConfigured
	}
	ctx, span := tracer.Start(ctx, "sanity.query", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("sanity.dataset", c.cfg.Dataset),
		attribute.Bool("sanity.cdn", c.cfg.UseCDN),
	)

	endpoint, err := c.endpoint(c.cfg.UseCDN, "query")
	if err != nil {
		return false, fail(span, err)
	}
	values := url.Values{}
	values.Set("query", query)
	for name, value := range params {
		encoded, err := json.Marshal(value)
		if err != nil {
			return false, fail(span, fmt.Errorf("sanity: encode param %s: %w", name, err))
		}
		values.Set("$"+strings.TrimPrefix(name, "$"), string(encoded))
	}
	endpoint.RawQuery = values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return false, fail(span, err)
	}
	req.Header.Set("Accept", "application/json")
	c.authorize(req)

	var payload struct {
		Result json.RawMessage `json:"result"`
	}
	if err := c.do(req, &payload); err != nil {
		c.logger.WithContext(ctx).Warn("sanity.query.failed", "error", err)
		return false, fail(span, err)
	}

	raw := bytes.TrimSpace(payload.Result)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		span.SetAttributes(attribute.Bool("sanity.found", false))
		return false, nil
	}
	span.SetAttributes(attribute.Bool("sanity.found", true))
	if out == nil {
		return true, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fail(span, fmt.Errorf("sanity: decode result: %w", err))
	}
	return true, nil
}

// Create stores document and returns the stored version.
func (c *Client) Create(ctx context.Context, document map[string]any) (map[string]any, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(c.cfg.Token) == "" {
		return nil, ErrMissingToken
	}
	ctx, span := tracer.Start(ctx, "sanity.create", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	docType, _ := document["_type"].(string)
	span.SetAttributes(
		attribute.String("sanity.dataset", c.cfg.Dataset),
		attribute.String("sanity.document_type", docType),
	)

	endpoint, err := c.endpoint(false, "mutate")
	if err != nil {
		return nil, fail(span, err)
	}
	endpoint.RawQuery = url.Values{
		"returnDocuments": []string{"true"},
		"visibility":      []string{"sync"},
	}.Encode()

	body, err := json.Marshal(map[string]any{
		"mutations": []map[string]any{{"create": document}},
	})
	if err != nil {
		return nil, fail(span, fmt.Errorf("sanity: encode mutation: %w", err))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fail(span, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	var payload struct {
		TransactionID string `json:"transactionId"`
		Results       []struct {
			ID        string         `json:"id"`
			Operation string         `json:"operation"`
			Document  map[string]any `json:"document"`
		} `json:"results"`
	}
	if err := c.do(req, &payload); err != nil {
		c.logger.WithContext(ctx).Error("sanity.create.failed", "type", docType, "error", err)
		return nil, fail(span, err)
	}
	if len(payload.Results) == 0 {
		return nil, fail(span, ErrEmptyMutation)
	}
	result := payload.Results[0]
	created := result.Document
	if created == nil {
		created = map[string]any{}
	}
	if _, ok := created["_id"]; !ok && result.ID != "" {
		created["_id"] = result.ID
	}
	c.logger.WithContext(ctx).Info("sanity.create.success", "type", docType, "transaction", payload.TransactionID)
	return created, nil
}

func (c *Client) endpoint(cdn bool, action string) (*url.URL, error) {
	base := strings.TrimRight(strings.TrimSpace(c.cfg.BaseURL), "/")
	if base == "" {
		host := "api.sanity.io"
		if cdn {
			host = "apicdn.sanity.io"
		}
		base = fmt.Sprintf("https://%s.%s", strings.TrimSpace(c.cfg.ProjectID), host)
	}
	version := "v" + strings.TrimPrefix(strings.TrimSpace(c.cfg.APIVersion), "v")
	raw, err := url.JoinPath(base, version, "data", action, strings.TrimSpace(c.cfg.Dataset))
	if err != nil {
		return nil, fmt.Errorf("sanity: build endpoint: %w", err)
	}
	return url.Parse(raw)
}

func (c *Client) authorize(req *http.Request) {
	if token := strings.TrimSpace(c.cfg.Token); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sanity: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Status: resp.StatusCode, Body: string(body)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("sanity: decode response: %w", err)
	}
	return nil
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
