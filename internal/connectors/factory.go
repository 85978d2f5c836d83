package connectors

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/spf13/afero"

	"github.com/custodia-labs/frmr-oscal/internal/connectors/filesystem"
	"github.com/custodia-labs/frmr-oscal/internal/connectors/github"
	httpconn "github.com/custodia-labs/frmr-oscal/internal/connectors/http"
	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
	"github.com/custodia-labs/frmr-oscal/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.ConnectorFactory = (*Factory)(nil)

// Builder creates a connector from source settings.
type Builder func(ctx context.Context, settings domain.SourceSettings) (driven.Connector, error)

// Factory creates connectors by source type.
type Factory struct {
	mu       sync.RWMutex
	builders map[string]Builder
}

// Option configures the built-in builders.
type Option func(*options)

type options struct {
	fs         afero.Fs
	getenv     func(string) string
	githubOpts []github.ClientOption
}

// WithFs sets the filesystem used by the filesystem connector.
func WithFs(fsys afero.Fs) Option {
	return func(o *options) { o.fs = fsys }
}

// WithGetenv sets the environment lookup used for credentials.
func WithGetenv(getenv func(string) string) Option {
	return func(o *options) { o.getenv = getenv }
}

// WithGitHubOptions passes client options to the GitHub connector.
func WithGitHubOptions(opts ...github.ClientOption) Option {
	return func(o *options) { o.githubOpts = append(o.githubOpts, opts...) }
}

// NewFactory creates a factory with the github, http and filesystem
// connectors registered.
func NewFactory(opts ...Option) *Factory {
	o := options{fs: afero.NewOsFs(), getenv: os.Getenv}
	for _, opt := range opts {
		opt(&o)
	}

	f := &Factory{builders: make(map[string]Builder)}
	f.Register(string(domain.SourceGitHub), func(ctx context.Context, s domain.SourceSettings) (driven.Connector, error) {
		cfg, err := github.ParseConfig(s, o.getenv)
		if err != nil {
			return nil, err
		}
		return github.New(ctx, cfg, o.githubOpts...)
	})
	f.Register(string(domain.SourceHTTP), func(_ context.Context, s domain.SourceSettings) (driven.Connector, error) {
		cfg, err := httpconn.ParseConfig(s)
		if err != nil {
			return nil, err
		}
		return httpconn.New(cfg), nil
	})
	f.Register(string(domain.SourceFilesystem), func(_ context.Context, s domain.SourceSettings) (driven.Connector, error) {
		cfg, err := filesystem.ParseConfig(s)
		if err != nil {
			return nil, err
		}
		return filesystem.New(o.fs, cfg), nil
	})
	return f
}

// Register adds or replaces the builder for a source type.
func (f *Factory) Register(sourceType string, builder Builder) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.builders[sourceType] = builder
}

// Create returns a connector for the settings' source type.
func (f *Factory) Create(ctx context.Context, settings domain.SourceSettings) (driven.Connector, error) {
	f.mu.RLock()
	builder, ok := f.builders[string(settings.Type)]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: source %q", domain.ErrUnsupportedType, settings.Type)
	}

	conn, err := builder(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("create %s connector: %w", settings.Type, err)
	}
	return conn, nil
}

// SupportedTypes returns the registered source types, sorted.
func (f *Factory) SupportedTypes() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	types := make([]string, 0, len(f.builders))
	for t := range f.builders {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
