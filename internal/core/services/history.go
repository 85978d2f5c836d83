package services

import (
	"context"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
	"github.com/custodia-labs/frmr-oscal/internal/core/ports/driven"
	"github.com/custodia-labs/frmr-oscal/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService reads the publication ledger.
type HistoryService struct {
	ledger driven.PublicationLedger
}

// NewHistoryService creates a history service.
func NewHistoryService(ledger driven.PublicationLedger) *HistoryService {
	return &HistoryService{ledger: ledger}
}

// List returns publication records for a version, newest first.
func (s *HistoryService) List(ctx context.Context, version string) ([]domain.PublicationRecord, error) {
	return s.ledger.List(ctx, version)
}
