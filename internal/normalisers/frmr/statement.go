package frmr

import (
	"github.com/tidwall/gjson"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
)

// Record field names.
const (
	fieldStatement = "statement"
	fieldVaries    = "varies_by_level"
	fieldImpact    = "impact"
	fieldRetired   = "retired"
	fieldName      = "name"
	fieldID        = "id"
	fieldFollowing = "following_information"
)

// statementFallback is the order levels are tried when the requested
// level yields no statement.
var statementFallback = []domain.ImpactLevel{domain.ImpactModerate, domain.ImpactLow, domain.ImpactHigh}

// ResolveStatement returns the statement text of a record.
// A direct statement wins. Otherwise varies_by_level is consulted for the
// requested level, then moderate, low and high, and the first non-empty
// statement is returned. Returns empty string when none resolves.
func ResolveStatement(rec gjson.Result, level domain.ImpactLevel) string {
	if stmt := stringField(rec, fieldStatement); stmt != "" {
		return stmt
	}

	varies := rec.Get(fieldVaries)
	if !varies.IsObject() {
		return ""
	}

	for _, lvl := range append([]domain.ImpactLevel{level}, statementFallback...) {
		if stmt := levelStatement(varies.Get(lvl.String())); stmt != "" {
			return stmt
		}
	}
	return ""
}

// levelStatement reads a varies_by_level entry, which is either a bare
// string or an object wrapping a statement field.
func levelStatement(entry gjson.Result) string {
	switch {
	case entry.Type == gjson.String:
		return entry.Str
	case entry.IsObject():
		return stringField(entry, fieldStatement)
	default:
		return ""
	}
}

// Following returns the record's guidance strings in order.
// Non-string entries are ignored.
func Following(rec gjson.Result) []string {
	list := rec.Get(fieldFollowing)
	if !list.IsArray() {
		return nil
	}
	var items []string
	list.ForEach(func(_, item gjson.Result) bool {
		if item.Type == gjson.String {
			items = append(items, item.Str)
		}
		return true
	})
	return items
}

// Retired reports whether the record is flagged as retired.
func Retired(rec gjson.Result) bool {
	return truthy(rec.Get(fieldRetired))
}

func stringField(rec gjson.Result, key string) string {
	v := rec.Get(key)
	if v.Type != gjson.String {
		return ""
	}
	return v.Str
}

// truthy follows JSON-value truthiness: false, null, 0, "" and empty
// containers are false.
func truthy(v gjson.Result) bool {
	switch v.Type {
	case gjson.True:
		return true
	case gjson.Number:
		return v.Num != 0
	case gjson.String:
		return v.Str != ""
	case gjson.JSON:
		return (v.IsArray() && len(v.Array()) > 0) || (v.IsObject() && len(v.Map()) > 0)
	default:
		return false
	}
}
