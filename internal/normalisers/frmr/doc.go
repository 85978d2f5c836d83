// Package frmr holds the rules shared by both FRMR dialect parsers:
// dialect detection, version extraction, identifier normalisation,
// prose cleaning, statement and impact resolution, and record shaping.
//
// Documents are read with gjson so that object key order, which carries
// meaning for themes and indicators, is preserved.
package frmr
