package frmr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
)

func TestResolveImpact(t *testing.T) {
	tests := []struct {
		name string
		rec  string
		want domain.Impact
	}{
		{
			name: "direct statement applies to all levels",
			rec:  `{"statement": "Do the thing."}`,
			want: domain.AllLevels(),
		},
		{
			name: "optional low excluded",
			rec: `{"varies_by_level": {
				"low": {"statement": "**Optional:** Do the thing."},
				"moderate": {"statement": "Do the thing."}
			}}`,
			want: domain.Impact{Moderate: true},
		},
		{
			name: "optional moderate excluded, others governed by their own text",
			rec: `{"varies_by_level": {
				"low": "Do the thing.",
				"moderate": "Optional: Do the thing.",
				"high": {"statement": "Do the thing."}
			}}`,
			want: domain.Impact{Low: true, High: true},
		},
		{
			name: "level without statement still applies",
			rec:  `{"varies_by_level": {"high": {}}}`,
			want: domain.Impact{High: true},
		},
		{
			name: "varies wins over direct statement",
			rec:  `{"statement": "x", "varies_by_level": {"low": "x"}}`,
			want: domain.Impact{Low: true},
		},
		{
			name: "empty varies falls through to statement",
			rec:  `{"statement": "x", "varies_by_level": {}}`,
			want: domain.AllLevels(),
		},
		{
			name: "explicit impact flags, missing levels false",
			rec:  `{"impact": {"low": true, "high": false}}`,
			want: domain.Impact{Low: true},
		},
		{
			name: "nothing resolvable",
			rec:  `{"name": "x"}`,
			want: domain.Impact{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveImpact(gjson.Parse(tt.rec)))
		})
	}
}

func TestResolveLegacyImpact(t *testing.T) {
	t.Run("explicit impact wins over statement", func(t *testing.T) {
		rec := gjson.Parse(`{"statement": "x", "impact": {"moderate": true, "high": true}}`)
		assert.Equal(t, domain.Impact{Moderate: true, High: true}, ResolveLegacyImpact(rec))
	})

	t.Run("statement without impact applies to all", func(t *testing.T) {
		rec := gjson.Parse(`{"statement": "x"}`)
		assert.Equal(t, domain.AllLevels(), ResolveLegacyImpact(rec))
	})
}

func TestResolveStatement(t *testing.T) {
	tests := []struct {
		name  string
		rec   string
		level domain.ImpactLevel
		want  string
	}{
		{"direct", `{"statement": "direct"}`, domain.ImpactModerate, "direct"},
		{"requested level object", `{"varies_by_level": {"high": {"statement": "h"}, "moderate": {"statement": "m"}}}`, domain.ImpactHigh, "h"},
		{"requested level string", `{"varies_by_level": {"low": "l"}}`, domain.ImpactLow, "l"},
		{"fallback order moderate first", `{"varies_by_level": {"low": "l", "moderate": "m"}}`, domain.ImpactHigh, "m"},
		{"fallback to low", `{"varies_by_level": {"low": "l", "high": "h"}}`, domain.ImpactModerate, "l"},
		{"empty requested level falls through", `{"varies_by_level": {"high": {"statement": ""}, "low": "l"}}`, domain.ImpactHigh, "l"},
		{"empty direct statement uses varies", `{"statement": "", "varies_by_level": {"moderate": "m"}}`, domain.ImpactModerate, "m"},
		{"nothing", `{"name": "x"}`, domain.ImpactModerate, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveStatement(gjson.Parse(tt.rec), tt.level))
		})
	}
}

func TestRetired(t *testing.T) {
	tests := []struct {
		name string
		json string
		want bool
	}{
		{"true", `{"retired": true}`, true},
		{"false", `{"retired": false}`, false},
		{"absent", `{}`, false},
		{"empty object", `{"retired": {}}`, false},
		{"empty array", `{"retired": []}`, false},
		{"object", `{"retired": {"date": "2025-01-01"}}`, true},
		{"array", `{"retired": ["2025"]}`, true},
		{"zero", `{"retired": 0}`, false},
		{"string", `{"retired": "yes"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Retired(gjson.Parse(tt.json)))
		})
	}
}

func TestFollowing(t *testing.T) {
	rec := gjson.Parse(`{"following_information": ["first", 2, "second"]}`)
	assert.Equal(t, []string{"first", "second"}, Following(rec))
	assert.Nil(t, Following(gjson.Parse(`{}`)))
}
