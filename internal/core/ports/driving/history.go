package driving

import (
	"context"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
)

// HistoryService exposes the publication ledger.
type HistoryService interface {
	// List returns publication records for a version, newest first.
	// An empty version lists all records.
	List(ctx context.Context, version string) ([]domain.PublicationRecord, error)
}
