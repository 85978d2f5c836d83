package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
	"github.com/custodia-labs/frmr-oscal/internal/core/ports/driven"
	"github.com/custodia-labs/frmr-oscal/internal/logger"
)

// Metadata keys excluded from content comparison.
const (
	keyPublished    = "published"
	keyLastModified = "last-modified"
)

// envelopeKeys are the top-level keys wrapping an artifact body.
var envelopeKeys = []string{"catalog", "profile"}

// ChangeDetector decides publication timestamps by comparing a candidate
// artifact with the one already published for the same version.
// It assumes a single writer per version.
type ChangeDetector struct {
	store driven.ArtifactStore
	now   func() time.Time
}

// ChangeOption configures a ChangeDetector.
type ChangeOption func(*ChangeDetector)

// WithClock sets the time source used for new timestamps.
func WithClock(now func() time.Time) ChangeOption {
	return func(d *ChangeDetector) { d.now = now }
}

// NewChangeDetector creates a change detector reading snapshots from store.
func NewChangeDetector(store driven.ArtifactStore, opts ...ChangeOption) *ChangeDetector {
	d := &ChangeDetector{store: store, now: time.Now}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Snapshot reads the published artifact for version.
// Returns nil when none exists, when it belongs to another version, or
// when it cannot be read; the last case is logged.
func (d *ChangeDetector) Snapshot(ctx context.Context, version, name string) *domain.Snapshot {
	data, err := d.store.Read(ctx, version, name)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		logger.Warn("could not read existing %s: %v", name, err)
		return nil
	}

	snap, err := Canonicalize(data, version)
	if errors.Is(err, domain.ErrVersionMismatch) {
		logger.Debug("existing %s: %v", name, err)
		return nil
	}
	if err != nil {
		logger.Warn("could not read existing %s: %v", name, err)
		return nil
	}
	return snap
}

// Stamp sets the artifact's timestamps and returns its status and canonical content.
//
//   - No snapshot: published and last-modified are now.
//   - Same content: both are carried over.
//   - Different content: published is carried over, last-modified is now.
func (d *ChangeDetector) Stamp(ctx context.Context, version, name string, artifact domain.Publishable) (domain.PublicationStatus, []byte, error) {
	meta := artifact.Meta()
	meta.SetTimestamps(domain.Timestamps{})

	data, err := MarshalArtifact(artifact)
	if err != nil {
		return "", nil, fmt.Errorf("marshal %s: %w", name, err)
	}
	candidate, err := Canonicalize(data, "")
	if err != nil {
		return "", nil, fmt.Errorf("canonicalize %s: %w", name, err)
	}

	now := d.now().Format(domain.TimestampLayout)
	snap := d.Snapshot(ctx, version, name)
	if snap == nil {
		meta.SetTimestamps(domain.Timestamps{Published: now, LastModified: now})
		return domain.StatusNew, candidate.Canonical, nil
	}

	published := snap.Timestamps.Published
	if published == "" {
		published = now
	}

	if bytes.Equal(candidate.Canonical, snap.Canonical) {
		lastModified := snap.Timestamps.LastModified
		if lastModified == "" {
			lastModified = published
		}
		meta.SetTimestamps(domain.Timestamps{Published: published, LastModified: lastModified})
		return domain.StatusUnchanged, candidate.Canonical, nil
	}

	meta.SetTimestamps(domain.Timestamps{Published: published, LastModified: now})
	return domain.StatusChanged, candidate.Canonical, nil
}

// Canonicalize extracts the timestamps of a serialised artifact and
// re-serialises it without them, with sorted keys. When version is not
// empty, an artifact of another version yields ErrVersionMismatch.
func Canonicalize(data []byte, version string) (*domain.Snapshot, error) {
	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	var meta map[string]any
	for _, key := range envelopeKeys {
		if body, ok := root[key].(map[string]any); ok {
			meta, _ = body["metadata"].(map[string]any)
			break
		}
	}
	if meta == nil {
		return nil, fmt.Errorf("%w: no artifact metadata", domain.ErrMalformedDocument)
	}

	if version != "" {
		if v, _ := meta["version"].(string); v != version {
			return nil, fmt.Errorf("%w: published %q, building %q", domain.ErrVersionMismatch, v, version)
		}
	}

	snap := &domain.Snapshot{}
	snap.Timestamps.Published, _ = meta[keyPublished].(string)
	snap.Timestamps.LastModified, _ = meta[keyLastModified].(string)
	delete(meta, keyPublished)
	delete(meta, keyLastModified)

	canonical, err := json.Marshal(root)
	if err != nil {
		return nil, err
	}
	snap.Canonical = canonical
	return snap, nil
}

// MarshalArtifact serialises an artifact with two-space indentation and
// without HTML escaping.
func MarshalArtifact(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
