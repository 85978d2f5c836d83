package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"go.uber.org/zap"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
	"github.com/custodia-labs/frmr-oscal/internal/core/ports/driven"
	"github.com/custodia-labs/frmr-oscal/internal/logger"
)

// Publisher builds the catalog, profiles and CSV for a control set and
// writes them to the artifact store.
type Publisher struct {
	store    driven.ArtifactStore
	detector *ChangeDetector
}

// NewPublisher creates a publisher.
func NewPublisher(store driven.ArtifactStore, detector *ChangeDetector) *Publisher {
	return &Publisher{store: store, detector: detector}
}

type artifact struct {
	data   []byte
	report domain.ArtifactReport
}

// Publish stamps every artifact before writing any, then writes them in
// order: catalog, low, moderate and high profiles, CSV.
func (p *Publisher) Publish(ctx context.Context, set *domain.ControlSet) ([]domain.ArtifactReport, error) {
	if set == nil || set.Len() == 0 {
		return nil, domain.ErrNoControls
	}

	catalog := BuildCatalog(set)
	pending := make([]artifact, 0, 5)

	a, err := p.stamp(ctx, set.Version, domain.ArtifactCatalog, catalog, catalog.Catalog.UUID, set.Len())
	if err != nil {
		return nil, err
	}
	pending = append(pending, a)

	for _, profile := range BuildProfiles(set, catalog.Catalog.UUID) {
		name := domain.ProfileArtifact(profile.Level)
		a, err := p.stamp(ctx, set.Version, name, profile, profile.Profile.UUID, len(profile.ControlIDs()))
		if err != nil {
			return nil, err
		}
		pending = append(pending, a)
	}

	csv := ProjectCSV(set)
	pending = append(pending, artifact{
		data: csv,
		report: domain.ArtifactReport{
			Name:        domain.ArtifactCSV,
			ContentHash: contentHash(csv),
			Controls:    set.Len(),
		},
	})

	reports := make([]domain.ArtifactReport, 0, len(pending))
	for _, a := range pending {
		if err := p.store.Write(ctx, set.Version, a.report.Name, a.data); err != nil {
			return reports, fmt.Errorf("write %s: %w", a.report.Name, err)
		}
		logger.L().Info("artifact written",
			zap.String("artifact", a.report.Name),
			zap.String("status", statusLabel(a.report.Status)),
			zap.Int("controls", a.report.Controls),
		)
		reports = append(reports, a.report)
	}
	return reports, nil
}

func (p *Publisher) stamp(ctx context.Context, version, name string, doc domain.Publishable, id string, controls int) (artifact, error) {
	status, canonical, err := p.detector.Stamp(ctx, version, name, doc)
	if err != nil {
		return artifact{}, err
	}
	data, err := MarshalArtifact(doc)
	if err != nil {
		return artifact{}, fmt.Errorf("marshal %s: %w", name, err)
	}
	return artifact{
		data: data,
		report: domain.ArtifactReport{
			Name:        name,
			UUID:        id,
			Status:      status,
			Timestamps:  doc.Meta().Timestamps(),
			ContentHash: contentHash(canonical),
			Controls:    controls,
		},
	}, nil
}

func contentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func statusLabel(status domain.PublicationStatus) string {
	if status == "" {
		return "projection"
	}
	return string(status)
}
