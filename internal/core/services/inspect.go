package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
	"github.com/custodia-labs/frmr-oscal/internal/core/ports/driven"
	"github.com/custodia-labs/frmr-oscal/internal/core/ports/driving"
)

// Ensure InspectService implements the interface.
var _ driving.InspectService = (*InspectService)(nil)

// InspectService reports dialect, version and control count per document.
type InspectService struct {
	connector driven.Connector
	registry  driven.ParserRegistry
}

// NewInspectService creates an inspect service.
func NewInspectService(connector driven.Connector, registry driven.ParserRegistry) *InspectService {
	return &InspectService{connector: connector, registry: registry}
}

// Inspect fetches every listed document once. Per-document failures are
// reported in the summary rather than returned.
func (s *InspectService) Inspect(ctx context.Context) ([]driving.DocumentSummary, error) {
	names, err := s.connector.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	summaries := make([]driving.DocumentSummary, 0, len(names))
	for _, name := range names {
		summaries = append(summaries, s.inspect(ctx, name))
	}
	return summaries, nil
}

func (s *InspectService) inspect(ctx context.Context, name string) driving.DocumentSummary {
	summary := driving.DocumentSummary{Name: name}

	result := s.connector.Fetch(ctx, name)
	if err := result.Err(); err != nil {
		summary.Error = err.Error()
		return summary
	}

	doc, err := s.registry.Inspect(result.Document)
	if err != nil {
		summary.Error = err.Error()
		return summary
	}
	summary.Dialect = doc.Dialect
	summary.Version = doc.Version

	parsed, err := s.registry.Parse(ctx, doc, domain.NewIDSet())
	if err != nil {
		summary.Error = err.Error()
		return summary
	}
	summary.Controls = len(parsed.Records)
	return summary
}
