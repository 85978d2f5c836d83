package driven

import (
	"context"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
)

// PublicationLedger keeps an append-only history of published artifacts.
type PublicationLedger interface {
	// Record appends entries for one publication.
	Record(ctx context.Context, records []domain.PublicationRecord) error

	// List returns entries for a version, newest first.
	// An empty version lists every entry.
	List(ctx context.Context, version string) ([]domain.PublicationRecord, error)

	// Close releases resources.
	Close() error
}
