// Package consolidated parses the single-document FRMR dialect
// (FRMR.documentation.json, v0.9.0-beta and later).
package consolidated

import (
	"context"

	"github.com/tidwall/gjson"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
	"github.com/custodia-labs/frmr-oscal/internal/core/ports/driven"
	"github.com/custodia-labs/frmr-oscal/internal/logger"
	"github.com/custodia-labs/frmr-oscal/internal/normalisers/frmr"
)

// Ensure Parser implements the interface.
var _ driven.SchemaParser = (*Parser)(nil)

// DefaultMaxDepth bounds FRR sub-section nesting below a standard's FRR node.
const DefaultMaxDepth = 8

// Keys never treated as FRR sub-sections.
var skipSectionKeys = map[string]bool{
	frmr.SectionInfo: true,
	frmr.SectionData: true,
	"front_matter":   true,
}

// Top-level keys never treated as standards.
var skipTopLevelKeys = map[string]bool{
	frmr.SectionInfo: true,
	frmr.SectionFRD:  true,
	frmr.SectionKSI:  true,
}

// Parser extracts KSI indicators and FRR requirements from a consolidated document.
type Parser struct {
	titles   domain.GroupTitles
	level    domain.ImpactLevel
	maxDepth int
}

// Option configures a Parser.
type Option func(*Parser)

// WithStatementLevel sets the impact level whose statement is preferred
// for varies_by_level records. Defaults to moderate.
func WithStatementLevel(level domain.ImpactLevel) Option {
	return func(p *Parser) { p.level = level }
}

// WithMaxDepth bounds FRR traversal depth.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) { p.maxDepth = depth }
}

// New creates a consolidated parser using titles as the group title fallback.
func New(titles domain.GroupTitles, opts ...Option) *Parser {
	p := &Parser{
		titles:   titles,
		level:    domain.ImpactModerate,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Dialect returns the dialect this parser handles.
func (p *Parser) Dialect() domain.Dialect {
	return domain.DialectConsolidated
}

// Parse walks the KSI section and every standard carrying an FRR section.
// FRR requirement IDs are deduplicated against seen, which the caller
// shares across the run.
func (p *Parser) Parse(_ context.Context, doc *domain.SourceDocument, seen domain.IDSet) (*domain.ParseResult, error) {
	if doc == nil {
		return nil, domain.ErrInvalidInput
	}
	root, err := frmr.Parse(doc.Content)
	if err != nil {
		return nil, err
	}
	if seen == nil {
		seen = domain.NewIDSet()
	}

	result := domain.NewParseResult()
	if ksi := root.Get(frmr.SectionKSI); ksi.Exists() {
		p.parseKSI(ksi, result)
	}
	p.parseFRR(root, seen, result)

	return result, nil
}

func (p *Parser) parseKSI(section gjson.Result, result *domain.ParseResult) {
	themes := section
	if data := section.Get(frmr.SectionData); data.Exists() {
		themes = data
	}
	if !themes.IsObject() {
		return
	}

	themes.ForEach(func(key, theme gjson.Result) bool {
		if key.Str == frmr.SectionInfo || key.Str == frmr.SectionData || !theme.IsObject() {
			return true
		}

		groupID := frmr.StringField(theme, "short_name")
		if groupID == "" {
			groupID = key.Str
		}
		groupTitle := frmr.GroupTitle(p.titles, groupID,
			frmr.StringField(theme, "name"), frmr.StringField(theme, "theme"))

		indicators := theme.Get("indicators")
		if !indicators.IsObject() {
			return true
		}

		indicators.ForEach(func(id, indicator gjson.Result) bool {
			if !indicator.IsObject() || frmr.Retired(indicator) {
				result.Skipped++
				return true
			}
			statement := frmr.ResolveStatement(indicator, p.level)
			if statement == "" {
				logger.Debug("skipping indicator %s: no statement", id.Str)
				result.Skipped++
				return true
			}
			frmr.Shape(result, frmr.Record{
				ControlID:  frmr.NormalizeID(id.Str, frmr.KSIPrefix),
				GroupID:    groupID,
				GroupTitle: groupTitle,
				Statement:  statement,
				Impact:     frmr.ResolveImpact(indicator),
				Raw:        indicator,
			})
			return true
		})
		return true
	})
}

// standard is one FRR-bearing section of the document.
type standard struct {
	code  string
	title string
}

func (p *Parser) parseFRR(root gjson.Result, seen domain.IDSet, result *domain.ParseResult) {
	root.ForEach(func(key, value gjson.Result) bool {
		if skipTopLevelKeys[key.Str] || !value.IsObject() {
			return true
		}

		var frr, info gjson.Result
		switch {
		case key.Str == frmr.SectionFRR:
			frr, info = value, root.Get(frmr.SectionInfo)
		case value.Get(frmr.SectionFRR).Exists():
			frr, info = value.Get(frmr.SectionFRR), value.Get(frmr.SectionInfo)
		case value.Get(frmr.SectionData).IsObject():
			frr, info = value.Get(frmr.SectionData+"."+frmr.SectionFRR), value.Get(frmr.SectionInfo)
		}
		if !frr.IsObject() || len(frr.Map()) == 0 {
			return true
		}

		code := frmr.StringField(info, "short_name")
		if code == "" {
			code = key.Str
		}
		std := standard{
			code:  code,
			title: frmr.GroupTitle(p.titles, code, frmr.StringField(info, "name")),
		}
		p.visit(std, frr, "", 0, seen, result)
		return true
	})
}

// visit walks an FRR node. A node with a requirements list yields its
// elements. A node below the root with a statement field is itself a
// requirement keyed by its parent key. Any other node is descended into,
// through its data child when it has one.
func (p *Parser) visit(std standard, node gjson.Result, key string, depth int, seen domain.IDSet, result *domain.ParseResult) {
	if depth > p.maxDepth {
		logger.Warn("%s: FRR nesting deeper than %d at %q, not descending", std.code, p.maxDepth, key)
		return
	}

	if reqs := node.Get("requirements"); reqs.IsArray() {
		reqs.ForEach(func(_, req gjson.Result) bool {
			p.accept(std, req, "", seen, result)
			return true
		})
		return
	}

	if depth > 0 && node.Get("statement").Exists() {
		p.accept(std, node, key, seen, result)
		return
	}

	children := node
	if data := node.Get(frmr.SectionData); data.IsObject() {
		children = data
	}
	children.ForEach(func(k, child gjson.Result) bool {
		if !skipSectionKeys[k.Str] && child.IsObject() {
			p.visit(std, child, k.Str, depth+1, seen, result)
		}
		return true
	})
}

func (p *Parser) accept(std standard, req gjson.Result, key string, seen domain.IDSet, result *domain.ParseResult) {
	if !req.IsObject() {
		result.Skipped++
		return
	}

	rawID := key
	if id := req.Get("id"); id.Exists() {
		rawID = id.String()
	}
	if rawID == "" || seen.Has(rawID) || frmr.Retired(req) {
		result.Skipped++
		return
	}

	statement := frmr.ResolveStatement(req, p.level)
	if statement == "" {
		logger.Debug("skipping requirement %s: no statement", rawID)
		result.Skipped++
		return
	}

	if frmr.Shape(result, frmr.Record{
		ControlID:  frmr.NormalizeFRRID(rawID, std.code),
		GroupID:    std.code,
		GroupTitle: std.title,
		Statement:  statement,
		Impact:     frmr.ResolveImpact(req),
		Raw:        req,
	}) {
		seen.Add(rawID)
	}
}
