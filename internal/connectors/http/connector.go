// Package http implements a connector that reads FRMR documents from a
// raw HTTP base URL, such as raw.githubusercontent.com.
package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
	"github.com/custodia-labs/frmr-oscal/internal/core/ports/driven"
)

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 30 * time.Second

// ErrBaseURLRequired indicates no base URL was configured.
var ErrBaseURLRequired = errors.New("http: base URL is required")

// Config holds the parsed configuration for a raw HTTP source.
type Config struct {
	BaseURL string

	// Files are listed when the consolidated document is not available.
	Files []string

	Timeout time.Duration
}

// ParseConfig builds a Config from source settings.
func ParseConfig(settings domain.SourceSettings) (*Config, error) {
	base := strings.TrimRight(settings.HTTP.BaseURL, "/")
	if base == "" {
		return nil, ErrBaseURLRequired
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("http: invalid base URL %q", settings.HTTP.BaseURL)
	}

	cfg := &Config{BaseURL: base, Files: settings.HTTP.Files, Timeout: settings.Timeout}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return cfg, nil
}

// Connector fetches documents with plain GET requests.
type Connector struct {
	config *Config
	client *resty.Client
}

// New creates a new HTTP connector.
func New(cfg *Config) *Connector {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	return &Connector{config: cfg, client: client}
}

// Type returns the connector type identifier.
func (c *Connector) Type() string {
	return string(domain.SourceHTTP)
}

// List probes for the consolidated document and falls back to the
// configured file list when it is absent.
func (c *Connector) List(ctx context.Context) ([]string, error) {
	resp, err := c.client.R().SetContext(ctx).Head(documentPath(domain.DefaultConsolidatedFile))
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", domain.DefaultConsolidatedFile, err)
	}
	if resp.StatusCode() == nethttp.StatusOK {
		return []string{domain.DefaultConsolidatedFile}, nil
	}
	if resp.StatusCode() != nethttp.StatusNotFound {
		return nil, fmt.Errorf("probe %s: unexpected status %s", domain.DefaultConsolidatedFile, resp.Status())
	}

	files := make([]string, len(c.config.Files))
	copy(files, c.config.Files)
	return files, nil
}

// Fetch downloads one document. Failures are classified rather than returned.
func (c *Connector) Fetch(ctx context.Context, name string) domain.FetchResult {
	resp, err := c.client.R().SetContext(ctx).Get(documentPath(name))
	if err != nil {
		return domain.FetchFailed(classifyTransport(err), name, err)
	}

	if kind, failed := classifyStatus(resp.StatusCode()); failed {
		return domain.FetchFailed(kind, name, fmt.Errorf("GET %s: %s", resp.Request.URL, resp.Status()))
	}

	return domain.Fetched(domain.RawDocument{
		Name:    name,
		URI:     c.config.BaseURL + documentPath(name),
		Content: resp.Body(),
		Metadata: map[string]any{
			"etag": resp.Header().Get("ETag"),
		},
	})
}

// Close releases resources.
func (c *Connector) Close() error {
	return nil
}

// documentPath escapes each segment of name.
func documentPath(name string) string {
	segments := strings.Split(strings.TrimLeft(name, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return "/" + strings.Join(segments, "/")
}

func classifyStatus(code int) (domain.FailureKind, bool) {
	switch {
	case code >= 200 && code < 300:
		return "", false
	case code == nethttp.StatusNotFound:
		return domain.FailureNotFound, true
	case code == nethttp.StatusTooManyRequests, code == nethttp.StatusRequestTimeout, code >= 500:
		return domain.FailureTransient, true
	default:
		return domain.FailurePermanent, true
	}
}

// classifyTransport treats network failures as transient and a cancelled
// context as permanent.
func classifyTransport(err error) domain.FailureKind {
	if errors.Is(err, context.Canceled) {
		return domain.FailurePermanent
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.As(err, &netErr) {
		return domain.FailureTransient
	}
	return domain.FailurePermanent
}
