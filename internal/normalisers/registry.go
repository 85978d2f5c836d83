package normalisers

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
	"github.com/custodia-labs/frmr-oscal/internal/core/ports/driven"
	"github.com/custodia-labs/frmr-oscal/internal/normalisers/consolidated"
	"github.com/custodia-labs/frmr-oscal/internal/normalisers/frmr"
	"github.com/custodia-labs/frmr-oscal/internal/normalisers/legacy"
)

// Ensure Registry implements the interface.
var _ driven.ParserRegistry = (*Registry)(nil)

// Registry dispatches documents to the parser for their dialect.
type Registry struct {
	mu      sync.RWMutex
	parsers map[domain.Dialect]driven.SchemaParser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[domain.Dialect]driven.SchemaParser)}
}

// Default returns a registry with both dialect parsers registered.
func Default(titles domain.GroupTitles) *Registry {
	r := NewRegistry()
	r.Register(consolidated.New(titles))
	r.Register(legacy.New(titles))
	return r
}

// Register adds a parser, replacing any parser for the same dialect.
func (r *Registry) Register(parser driven.SchemaParser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsers[parser.Dialect()] = parser
}

// Inspect detects the dialect and version of a raw document.
func (r *Registry) Inspect(raw *domain.RawDocument) (*domain.SourceDocument, error) {
	return frmr.Inspect(raw)
}

// Parse dispatches to the parser registered for doc.Dialect.
func (r *Registry) Parse(ctx context.Context, doc *domain.SourceDocument, seen domain.IDSet) (*domain.ParseResult, error) {
	if doc == nil {
		return nil, domain.ErrInvalidInput
	}
	r.mu.RLock()
	parser, ok := r.parsers[doc.Dialect]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: no parser for dialect %q", domain.ErrUnsupportedType, doc.Dialect)
	}
	return parser.Parse(ctx, doc, seen)
}
