// Package normalisers provides the FRMR schema parsers and the registry
// that selects one per document. Each parser handles one dialect and
// produces the same ParseResult contract.
//
// Parsers are registered with the Registry at startup.
package normalisers
