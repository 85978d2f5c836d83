// Package domain defines the core business entities for frmr-oscal.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawDocument: Opaque bytes fetched by a connector
//   - SourceDocument: A fetched document with its detected dialect and version
//   - Control: A normalised, dialect-independent control
//   - CatalogDocument / ProfileDocument: The published OSCAL artifacts
//   - RunReport: The outcome of one pipeline run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
