package memory

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
	"github.com/custodia-labs/frmr-oscal/internal/core/ports/driven"
)

// Ensure Ledger implements the interface.
var _ driven.PublicationLedger = (*Ledger)(nil)

// Ledger is an in-memory implementation of driven.PublicationLedger.
type Ledger struct {
	mu      sync.RWMutex
	records []domain.PublicationRecord
	nextID  int64
}

// NewLedger creates a new in-memory ledger.
func NewLedger() *Ledger {
	return &Ledger{nextID: 1}
}

// Record appends entries, assigning increasing IDs.
func (l *Ledger) Record(_ context.Context, records []domain.PublicationRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range records {
		r.ID = l.nextID
		l.nextID++
		if r.RecordedAt.IsZero() {
			r.RecordedAt = time.Now()
		}
		l.records = append(l.records, r)
	}
	return nil
}

// List returns entries for version, newest first. An empty version lists all.
func (l *Ledger) List(_ context.Context, version string) ([]domain.PublicationRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []domain.PublicationRecord
	for i := len(l.records) - 1; i >= 0; i-- {
		if version == "" || l.records[i].Version == version {
			out = append(out, l.records[i])
		}
	}
	return out, nil
}

// Close releases resources.
func (l *Ledger) Close() error {
	return nil
}
