package driven

import (
	"context"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
)

// Connector fetches FRMR documents from a source.
// Each connector type (github, http, filesystem) implements this interface.
type Connector interface {
	// Type returns the connector type identifier.
	Type() string

	// List returns the names of the documents to process, in processing order.
	// When the source carries the consolidated document, only that name is returned.
	List(ctx context.Context) ([]string, error)

	// Fetch retrieves one document by name.
	// Failures are reported in the result, never as a panic or error return,
	// so the caller can decide whether to retry or skip.
	Fetch(ctx context.Context, name string) domain.FetchResult

	// Close releases resources.
	Close() error
}

// ConnectorFactory creates connectors from source settings.
type ConnectorFactory interface {
	// Create returns a Connector for the given settings.
	// Returns ErrUnsupportedType if the source type is unknown.
	Create(ctx context.Context, settings domain.SourceSettings) (Connector, error)

	// SupportedTypes returns all registered connector types.
	SupportedTypes() []string
}
