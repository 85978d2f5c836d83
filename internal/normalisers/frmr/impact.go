package frmr

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
)

// OptionalMarker excludes a level from a varies_by_level record when
// present in that level's statement, with or without emphasis markup.
const OptionalMarker = "Optional:"

// ResolveImpact decides which levels a record applies to.
//
//  1. A non-empty varies_by_level object: each level present as a key
//     applies unless its statement carries OptionalMarker.
//  2. A direct statement: all levels apply.
//  3. An explicit impact object: its flags are used, missing levels are false.
//  4. Otherwise no level applies.
func ResolveImpact(rec gjson.Result) domain.Impact {
	varies := rec.Get(fieldVaries)
	if varies.IsObject() && len(varies.Map()) > 0 {
		var impact domain.Impact
		for _, level := range domain.ImpactLevels() {
			entry := varies.Get(level.String())
			if !entry.Exists() {
				continue
			}
			impact.Set(level, !optional(levelStatement(entry)))
		}
		return impact
	}

	if stringField(rec, fieldStatement) != "" {
		return domain.AllLevels()
	}

	return explicitImpact(rec)
}

// ResolveLegacyImpact applies legacy precedence: an explicit impact
// object wins, and ResolveImpact decides otherwise.
func ResolveLegacyImpact(rec gjson.Result) domain.Impact {
	if rec.Get(fieldImpact).IsObject() {
		return explicitImpact(rec)
	}
	return ResolveImpact(rec)
}

func explicitImpact(rec gjson.Result) domain.Impact {
	var impact domain.Impact
	flags := rec.Get(fieldImpact)
	if !flags.IsObject() {
		return impact
	}
	for _, level := range domain.ImpactLevels() {
		impact.Set(level, truthy(flags.Get(level.String())))
	}
	return impact
}

func optional(statement string) bool {
	if statement == "" {
		return false
	}
	return strings.Contains(statement, OptionalMarker) ||
		strings.Contains(CleanProse(statement), OptionalMarker)
}
