package driving

import (
	"context"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
)

// InspectService reports what a source contains without publishing anything.
type InspectService interface {
	// Inspect fetches every document and reports its dialect, version and control count.
	Inspect(ctx context.Context) ([]DocumentSummary, error)
}

// DocumentSummary describes one fetched document.
type DocumentSummary struct {
	// Name is the document name as listed by the connector.
	Name string

	// Dialect is the detected document dialect.
	Dialect domain.Dialect

	// Version is the version declared by the document, if any.
	Version string

	// Controls is the number of controls the document yields.
	Controls int

	// Error is set when the document could not be fetched or parsed.
	Error string
}
