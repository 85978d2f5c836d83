package frmr

import (
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
)

// Record is a located indicator or requirement ready to be shaped.
type Record struct {
	// ControlID is the normalised control identifier.
	ControlID string

	// GroupID is the theme or standard code.
	GroupID string

	// GroupTitle is the resolved group name.
	GroupTitle string

	// Statement is the resolved, uncleaned statement text.
	Statement string

	// Impact is the resolved level applicability.
	Impact domain.Impact

	// Raw is the source object.
	Raw gjson.Result
}

// Shape builds the control for a record and adds it to result.
// The statement becomes the first part, followed by one item part per
// guidance string. A record whose ID normalised to empty is counted as
// skipped and Shape reports false.
func Shape(result *domain.ParseResult, rec Record) bool {
	if rec.ControlID == "" {
		result.Skipped++
		return false
	}

	following := Following(rec.Raw)

	parts := make([]domain.Part, 0, 1+len(following))
	parts = append(parts, domain.Part{
		ID:    rec.ControlID + "_smt",
		Name:  domain.PartStatement,
		Prose: CleanProse(rec.Statement),
	})
	for i, item := range following {
		parts = append(parts, domain.Part{
			ID:    rec.ControlID + "_smt.item." + strconv.Itoa(i+1),
			Name:  domain.PartItem,
			Prose: CleanProse(item),
		})
	}

	result.Add(domain.GroupedControl{
		GroupID:    rec.GroupID,
		GroupTitle: rec.GroupTitle,
		Control: domain.Control{
			ID:    rec.ControlID,
			Title: Title(stringField(rec.Raw, fieldName), rec.ControlID),
			Parts: parts,
		},
	}, rec.Impact, following)
	return true
}

// StringField returns a string-typed field of obj, or empty string.
func StringField(obj gjson.Result, key string) string {
	return stringField(obj, key)
}
