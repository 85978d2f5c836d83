package domain

import "time"

// Artifact file names within a version directory.
const (
	ArtifactCatalog = "catalog.json"
	ArtifactCSV     = "Requirements_Paramified.csv"
)

// ProfileArtifact returns the file name of the profile for a level.
func ProfileArtifact(level ImpactLevel) string {
	return "20x_" + string(level) + "_profile.json"
}

// Timestamps are the publication timestamp fields of an artifact.
type Timestamps struct {
	Published    string
	LastModified string
}

// Snapshot is a previously published artifact of the same version.
type Snapshot struct {
	// Timestamps are the timestamps read from the published artifact.
	Timestamps Timestamps

	// Canonical is the artifact content without timestamps, serialised with sorted keys.
	Canonical []byte
}

// PublicationStatus describes how an artifact relates to its previous publication.
type PublicationStatus string

// Publication statuses.
const (
	// StatusNew indicates no artifact existed for this version.
	StatusNew PublicationStatus = "new"

	// StatusChanged indicates content differed from the published artifact.
	StatusChanged PublicationStatus = "changed"

	// StatusUnchanged indicates content matched; timestamps were carried over.
	StatusUnchanged PublicationStatus = "unchanged"
)

// ArtifactReport summarises one written artifact.
type ArtifactReport struct {
	// Name is the artifact file name.
	Name string

	// UUID is the artifact identity; empty for the CSV projection.
	UUID string

	// Status is the change status; empty for the CSV projection.
	Status PublicationStatus

	// Timestamps are the timestamps written.
	Timestamps Timestamps

	// ContentHash is the SHA-256 of the canonical content (hex).
	ContentHash string

	// Controls is the number of controls in the artifact.
	Controls int
}

// SkippedDocument records a document that did not contribute to the run.
type SkippedDocument struct {
	Name   string
	Reason string
}

// RunReport is the outcome of one pipeline run.
type RunReport struct {
	// Version is the published version.
	Version string

	// Location is where artifacts were written.
	Location string

	// Documents is the number of documents that were parsed.
	Documents int

	// Controls is the total number of controls.
	Controls int

	// GroupCounts holds the number of controls per group ID.
	GroupCounts map[string]int

	// Artifacts lists every written artifact in write order.
	Artifacts []ArtifactReport

	// Skipped lists documents that were fetched or listed but not used.
	Skipped []SkippedDocument
}

// PublicationRecord is one ledger entry for a published artifact.
type PublicationRecord struct {
	ID           int64
	Version      string
	Artifact     string
	UUID         string
	ContentHash  string
	Published    string
	LastModified string
	Status       PublicationStatus
	RecordedAt   time.Time
}
