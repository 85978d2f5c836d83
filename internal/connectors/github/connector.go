package github

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
	"github.com/custodia-labs/frmr-oscal/internal/core/ports/driven"
)

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Connector fetches FRMR documents from a GitHub repository.
type Connector struct {
	config *Config
	client *Client
	mu     sync.Mutex
	closed bool
}

// New creates a new GitHub connector.
func New(ctx context.Context, cfg *Config, opts ...ClientOption) (*Connector, error) {
	client, err := NewClient(ctx, cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Connector{config: cfg, client: client}, nil
}

// Type returns the connector type identifier.
func (c *Connector) Type() string {
	return string(domain.SourceGitHub)
}

// List returns the documents at the repository root.
func (c *Connector) List(ctx context.Context) ([]string, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	entries, err := c.client.ListDirectory(ctx, c.config.Owner, c.config.Repo, "", c.config.Ref)
	if err != nil {
		return nil, fmt.Errorf("list %s/%s: %w", c.config.Owner, c.config.Repo, err)
	}
	return selectDocuments(entries), nil
}

// Fetch downloads one document. Failures are classified rather than returned.
func (c *Connector) Fetch(ctx context.Context, name string) domain.FetchResult {
	if err := c.checkOpen(); err != nil {
		return domain.FetchFailed(domain.FailurePermanent, name, err)
	}

	content, err := c.client.GetFileContent(ctx, c.config.Owner, c.config.Repo, name, c.config.Ref)
	if err != nil {
		return domain.FetchFailed(Classify(err), name, err)
	}

	return domain.Fetched(domain.RawDocument{
		Name:    name,
		URI:     buildFileURI(c.config.Owner, c.config.Repo, c.config.Ref, name),
		Content: content,
		Metadata: map[string]any{
			"owner": c.config.Owner,
			"repo":  c.config.Repo,
			"ref":   c.config.Ref,
		},
	})
}

// Close releases resources.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *Connector) checkOpen() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return domain.ErrConnectorClosed
	}
	return nil
}
