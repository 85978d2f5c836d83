package frmr

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
)

// Top-level section keys.
const (
	SectionInfo = "info"
	SectionKSI  = "KSI"
	SectionFRR  = "FRR"
	SectionFRD  = "FRD"
	SectionData = "data"
)

// consolidatedMarkers are top-level keys only the consolidated dialect carries.
var consolidatedMarkers = []string{SectionFRD, SectionKSI}

// Detect classifies a document by shape.
// A string info.version means consolidated and an array info.releases means
// legacy. Failing both, a top-level FRD or KSI key means consolidated.
// Anything else is treated as legacy.
func Detect(doc gjson.Result) domain.Dialect {
	info := doc.Get(SectionInfo)
	if info.IsObject() {
		if info.Get("version").Type == gjson.String {
			return domain.DialectConsolidated
		}
		if info.Get("releases").IsArray() {
			return domain.DialectLegacy
		}
	}
	for _, key := range consolidatedMarkers {
		if doc.Get(key).Exists() {
			return domain.DialectConsolidated
		}
	}
	return domain.DialectLegacy
}

// ExtractVersion returns the version a document declares.
// Consolidated documents carry info.version. Legacy documents carry
// info.releases; the release with the greatest published_date wins, and
// the first release is used when none is dated. Returns empty string when
// no version is found.
func ExtractVersion(doc gjson.Result) string {
	info := doc.Get(SectionInfo)
	if !info.IsObject() {
		return ""
	}

	if v := info.Get("version"); v.Type == gjson.String {
		return v.Str
	}

	releases := info.Get("releases").Array()
	if len(releases) == 0 {
		return ""
	}

	var latest gjson.Result
	latestDate := ""
	found := false
	for _, release := range releases {
		date := release.Get("published_date")
		if !truthy(date) {
			continue
		}
		if !found || date.String() > latestDate {
			latest, latestDate, found = release, date.String(), true
		}
	}
	if !found {
		latest = releases[0]
	}
	return latest.Get(fieldID).String()
}

// Inspect parses raw content and returns the detected source document.
// Returns ErrMalformedDocument if the content is not a JSON object.
func Inspect(raw *domain.RawDocument) (*domain.SourceDocument, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	doc, err := Parse(raw.Content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", raw.Name, err)
	}
	return &domain.SourceDocument{
		Name:    raw.Name,
		URI:     raw.URI,
		Content: raw.Content,
		Dialect: Detect(doc),
		Version: ExtractVersion(doc),
	}, nil
}

// Parse validates content as a JSON object and returns its root.
func Parse(content []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(content) {
		return gjson.Result{}, fmt.Errorf("%w: invalid JSON", domain.ErrMalformedDocument)
	}
	doc := gjson.ParseBytes(content)
	if !doc.IsObject() {
		return gjson.Result{}, fmt.Errorf("%w: root is not an object", domain.ErrMalformedDocument)
	}
	return doc, nil
}
