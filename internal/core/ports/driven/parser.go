package driven

import (
	"context"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
)

// SchemaParser extracts normalised controls from a document of one dialect.
// Both dialect variants share the ParseResult output contract.
type SchemaParser interface {
	// Dialect returns the dialect this parser handles.
	Dialect() domain.Dialect

	// Parse walks the document and returns its controls.
	// seen holds raw requirement IDs already accepted in this run; parsers whose
	// deduplication is run-scoped consult and extend it, others ignore it.
	Parse(ctx context.Context, doc *domain.SourceDocument, seen domain.IDSet) (*domain.ParseResult, error)
}

// ParserRegistry selects the parser for a document's detected dialect.
type ParserRegistry interface {
	// Inspect detects the dialect and version of a raw document.
	// Returns ErrMalformedDocument if the content is not a JSON object.
	Inspect(raw *domain.RawDocument) (*domain.SourceDocument, error)

	// Parse dispatches to the parser registered for doc.Dialect.
	// Returns ErrUnsupportedType if no parser is registered.
	Parse(ctx context.Context, doc *domain.SourceDocument, seen domain.IDSet) (*domain.ParseResult, error)

	// Register adds a parser to the registry.
	Register(parser SchemaParser)
}
