package services

import (
	"time"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
)

// VersionDateLayout is the fallback version format when no document declares one.
const VersionDateLayout = "2006-01-02"

// Aggregator merges parse results from every document of a run.
type Aggregator struct {
	records   []domain.GroupedControl
	index     map[string]int
	impacts   domain.ImpactMap
	following domain.FollowingInfo
	versions  []string
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		index:     make(map[string]int),
		impacts:   make(domain.ImpactMap),
		following: make(domain.FollowingInfo),
	}
}

// Add merges one document's result. A control whose ID was already
// aggregated replaces the earlier record in place. Impact and guidance
// entries from later documents win.
func (a *Aggregator) Add(version string, result *domain.ParseResult) {
	if version != "" {
		a.versions = append(a.versions, version)
	}
	if result == nil {
		return
	}

	for _, rec := range result.Records {
		if i, ok := a.index[rec.Control.ID]; ok {
			a.records[i] = rec
			continue
		}
		a.index[rec.Control.ID] = len(a.records)
		a.records = append(a.records, rec)
	}
	for id, impact := range result.Impacts {
		a.impacts[id] = impact
	}
	for id, items := range result.Following {
		a.following[id] = items
	}
}

// Version returns the greatest declared version, compared as plain
// strings, or today's date when no document declared one.
func (a *Aggregator) Version(today time.Time) string {
	latest := ""
	for _, v := range a.versions {
		if v > latest {
			latest = v
		}
	}
	if latest == "" {
		return today.Format(VersionDateLayout)
	}
	return latest
}

// ControlSet returns the aggregated controls.
func (a *Aggregator) ControlSet(today time.Time) *domain.ControlSet {
	records := make([]domain.GroupedControl, len(a.records))
	copy(records, a.records)

	return &domain.ControlSet{
		Version:   a.Version(today),
		Records:   records,
		Impacts:   a.impacts,
		Following: a.following,
	}
}
