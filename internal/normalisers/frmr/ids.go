package frmr

import "strings"

// Identifier prefixes.
const (
	KSIPrefix = "KSI-"
	FRRPrefix = "FRR-"
)

// NormalizeID converts a hierarchical FRMR identifier to a control ID.
// The prefix is stripped when present, and the remaining dash-separated
// segments are lowercased and rejoined. A single remaining segment is
// lowercased with underscores turned into dashes.
//
//	NormalizeID("KSI-CNA-RNT", KSIPrefix)  // "cna-rnt"
//	NormalizeID("KSI-SCN-TR-01", KSIPrefix) // "scn-tr-01"
func NormalizeID(raw, prefix string) string {
	remainder := strings.TrimPrefix(raw, prefix)
	if segments := strings.Split(remainder, "-"); len(segments) >= 2 {
		return strings.ToLower(remainder)
	}
	return strings.ReplaceAll(strings.ToLower(remainder), "_", "-")
}

// NormalizeFRRID converts an FRR requirement identifier to a control ID.
// IDs carrying the FRR- prefix with at least two remaining segments follow
// NormalizeID. Otherwise the ID is built from the standard code and the
// last dash-delimited segment of the raw ID.
//
//	NormalizeFRRID("FRR-ADS-01", "ADS") // "ads-01"
//	NormalizeFRRID("FRR-01", "ADS")     // "ads-01"
func NormalizeFRRID(raw, standard string) string {
	if strings.HasPrefix(raw, FRRPrefix) {
		remainder := raw[len(FRRPrefix):]
		if len(strings.Split(remainder, "-")) >= 2 {
			return strings.ToLower(remainder)
		}
	}
	segments := strings.Split(raw, "-")
	return strings.ToLower(standard) + "-" + strings.ToLower(segments[len(segments)-1])
}
