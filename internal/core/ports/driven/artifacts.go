package driven

import "context"

// ArtifactStore reads and writes published artifacts.
// Artifacts are grouped in one location per version.
type ArtifactStore interface {
	// Read returns the published artifact, or ErrNotFound if it does not exist.
	Read(ctx context.Context, version, name string) ([]byte, error)

	// Write stores the artifact, replacing any previous content.
	Write(ctx context.Context, version, name string, data []byte) error

	// Location returns a human-readable location for a version (e.g., a directory path).
	Location(version string) string
}
