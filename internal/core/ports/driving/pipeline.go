package driving

import (
	"context"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
)

// Pipeline runs one end-to-end publication: fetch, parse, aggregate,
// build, detect changes and write.
type Pipeline interface {
	// Run executes the pipeline.
	// Returns ErrNoControls, and writes nothing, when no control was extracted.
	Run(ctx context.Context) (*domain.RunReport, error)
}
