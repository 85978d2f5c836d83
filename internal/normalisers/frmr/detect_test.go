package frmr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want domain.Dialect
	}{
		{"string info.version", `{"info": {"version": "0.9.0-beta"}}`, domain.DialectConsolidated},
		{"releases list", `{"info": {"releases": []}, "KSI": {}}`, domain.DialectLegacy},
		{"version wins over releases", `{"info": {"version": "1", "releases": []}}`, domain.DialectConsolidated},
		{"KSI marker", `{"info": {}, "KSI": {}}`, domain.DialectConsolidated},
		{"FRD marker", `{"FRD": {}}`, domain.DialectConsolidated},
		{"numeric version with marker", `{"info": {"version": 1}, "KSI": {}}`, domain.DialectConsolidated},
		{"numeric version without marker", `{"info": {"version": 1}}`, domain.DialectLegacy},
		// Shapes matching no rule fall back to legacy.
		{"FRR only", `{"FRR": {"ADS": {}}}`, domain.DialectLegacy},
		{"empty object", `{}`, domain.DialectLegacy},
		{"info not an object", `{"info": "x"}`, domain.DialectLegacy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(gjson.Parse(tt.doc)))
		})
	}
}

func TestExtractVersion(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"consolidated", `{"info": {"version": "0.9.0-beta"}}`, "0.9.0-beta"},
		{
			name: "latest published release",
			doc: `{"info": {"releases": [
				{"id": "25.05A", "published_date": "2025-05-01"},
				{"id": "25.06A", "published_date": "2025-06-15"},
				{"id": "25.07A", "published_date": ""}
			]}}`,
			want: "25.06A",
		},
		{"first release when none dated", `{"info": {"releases": [{"id": "draft"}, {"id": "other"}]}}`, "draft"},
		{"empty releases", `{"info": {"releases": []}}`, ""},
		{"no info", `{"KSI": {}}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractVersion(gjson.Parse(tt.doc)))
		})
	}
}

func TestInspect(t *testing.T) {
	t.Run("detects dialect and version", func(t *testing.T) {
		raw := &domain.RawDocument{
			Name:    "FRMR.documentation.json",
			URI:     "file:///tmp/FRMR.documentation.json",
			Content: []byte(`{"info": {"version": "0.9.0-beta"}, "KSI": {}}`),
		}

		doc, err := Inspect(raw)
		require.NoError(t, err)
		assert.Equal(t, raw.Name, doc.Name)
		assert.Equal(t, raw.URI, doc.URI)
		assert.Equal(t, domain.DialectConsolidated, doc.Dialect)
		assert.Equal(t, "0.9.0-beta", doc.Version)
	})

	t.Run("nil document", func(t *testing.T) {
		_, err := Inspect(nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := Inspect(&domain.RawDocument{Name: "bad.json", Content: []byte(`{"info":`)})
		assert.ErrorIs(t, err, domain.ErrMalformedDocument)
		assert.Contains(t, err.Error(), "bad.json")
	})

	t.Run("root is not an object", func(t *testing.T) {
		_, err := Inspect(&domain.RawDocument{Name: "list.json", Content: []byte(`[1, 2]`)})
		assert.ErrorIs(t, err, domain.ErrMalformedDocument)
	})
}
