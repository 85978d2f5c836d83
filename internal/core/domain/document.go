package domain

// Dialect identifies which FRMR schema family a document follows.
type Dialect string

// Supported dialects.
const (
	// DialectConsolidated is the single-document format (FRMR.documentation.json, v0.9.0-beta+).
	DialectConsolidated Dialect = "consolidated"

	// DialectLegacy is the multi-file format (one FRMR.<CODE>.*.json per standard).
	DialectLegacy Dialect = "legacy"
)

// IsValid returns true if the dialect is recognised.
func (d Dialect) IsValid() bool {
	switch d {
	case DialectConsolidated, DialectLegacy:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (d Dialect) String() string {
	return string(d)
}

// SourceDocument is a fetched document after dialect detection.
// It is immutable once built and lives for a single run.
type SourceDocument struct {
	// Name is the originating file name.
	Name string

	// URI is the original location.
	URI string

	// Content is the raw JSON bytes.
	Content []byte

	// Dialect is the detected schema dialect.
	Dialect Dialect

	// Version is the extracted document version, empty if none was found.
	Version string
}
