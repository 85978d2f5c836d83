// Package legacy parses the multi-file FRMR dialect (v0.4.0-alpha),
// where each standard or the KSI family ships as its own FRMR.<CODE>.*.json.
package legacy

import (
	"context"
	"path"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
	"github.com/custodia-labs/frmr-oscal/internal/core/ports/driven"
	"github.com/custodia-labs/frmr-oscal/internal/logger"
	"github.com/custodia-labs/frmr-oscal/internal/normalisers/frmr"
)

// Ensure Parser implements the interface.
var _ driven.SchemaParser = (*Parser)(nil)

// KSIFilePrefix marks a KSI document by name.
const KSIFilePrefix = "FRMR.KSI."

// standardPattern extracts the standard code from a file name (e.g., FRMR.ADS.authorization-data-sharing.json).
var standardPattern = regexp.MustCompile(`FRMR\.([A-Z]{3})\.`)

// Parser extracts controls from one legacy document.
type Parser struct {
	titles domain.GroupTitles
}

// New creates a legacy parser using titles as the group title fallback.
func New(titles domain.GroupTitles) *Parser {
	return &Parser{titles: titles}
}

// Dialect returns the dialect this parser handles.
func (p *Parser) Dialect() domain.Dialect {
	return domain.DialectLegacy
}

// Parse extracts KSI indicators or FRR requirements depending on the
// document kind. Requirement IDs are deduplicated within the document only,
// so seen is not consulted.
func (p *Parser) Parse(_ context.Context, doc *domain.SourceDocument, _ domain.IDSet) (*domain.ParseResult, error) {
	if doc == nil {
		return nil, domain.ErrInvalidInput
	}
	root, err := frmr.Parse(doc.Content)
	if err != nil {
		return nil, err
	}

	result := domain.NewParseResult()
	name := path.Base(doc.Name)
	hasKSI := root.Get(frmr.SectionKSI).Exists()
	hasFRR := root.Get(frmr.SectionFRR).Exists()

	switch {
	case strings.HasPrefix(name, KSIFilePrefix) || (hasKSI && !hasFRR):
		p.parseKSI(root.Get(frmr.SectionKSI), result)
	case hasFRR:
		p.parseFRR(root, name, result)
	default:
		logger.Debug("%s: neither KSI nor FRR content", name)
	}
	return result, nil
}

func (p *Parser) parseKSI(ksi gjson.Result, result *domain.ParseResult) {
	if !ksi.IsObject() {
		return
	}
	ksi.ForEach(func(key, section gjson.Result) bool {
		if !section.IsObject() || !section.Get("indicators").Exists() {
			return true
		}
		groupID := key.Str
		groupTitle := frmr.GroupTitle(p.titles, groupID,
			frmr.StringField(section, "name"), frmr.StringField(section, "theme"))

		section.Get("indicators").ForEach(func(_, indicator gjson.Result) bool {
			id := frmr.StringField(indicator, "id")
			if !strings.HasPrefix(id, frmr.KSIPrefix) || frmr.Retired(indicator) {
				result.Skipped++
				return true
			}
			statement := frmr.StringField(indicator, "statement")
			if statement == "" {
				result.Skipped++
				return true
			}
			frmr.Shape(result, frmr.Record{
				ControlID:  frmr.NormalizeID(id, frmr.KSIPrefix),
				GroupID:    groupID,
				GroupTitle: groupTitle,
				Statement:  statement,
				Impact:     frmr.ResolveLegacyImpact(indicator),
				Raw:        indicator,
			})
			return true
		})
		return true
	})
}

func (p *Parser) parseFRR(root gjson.Result, name string, result *domain.ParseResult) {
	match := standardPattern.FindStringSubmatch(name)
	if match == nil {
		logger.Warn("%s: no standard code in file name, skipping FRR content", name)
		return
	}
	code := match[1]

	requirements := root.Get(frmr.SectionFRR + "." + code)
	if !requirements.IsObject() {
		return
	}
	groupTitle := frmr.GroupTitle(p.titles, code, frmr.StringField(root.Get(frmr.SectionInfo), "name"))
	seen := domain.NewIDSet()

	requirements.ForEach(func(_, section gjson.Result) bool {
		reqs := section.Get("requirements")
		if !section.IsObject() || !reqs.IsArray() {
			return true
		}
		reqs.ForEach(func(_, req gjson.Result) bool {
			id := frmr.StringField(req, "id")
			if !strings.HasPrefix(id, frmr.FRRPrefix) || seen.Has(id) || frmr.Retired(req) {
				result.Skipped++
				return true
			}
			statement := frmr.StringField(req, "statement")
			if statement == "" {
				result.Skipped++
				return true
			}
			if frmr.Shape(result, frmr.Record{
				ControlID:  frmr.NormalizeFRRID(id, code),
				GroupID:    code,
				GroupTitle: groupTitle,
				Statement:  statement,
				Impact:     frmr.ResolveLegacyImpact(req),
				Raw:        req,
			}) {
				seen.Add(id)
			}
			return true
		})
		return true
	})
}
