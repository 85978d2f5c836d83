package consolidated

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
	"github.com/custodia-labs/frmr-oscal/internal/normalisers/frmr"
)

const documentation = `{
	"info": {"version": "0.9.0-beta"},
	"FRD": {"data": {}},
	"KSI": {
		"info": {"name": "Key Security Indicators"},
		"data": {
			"CNA": {
				"id": "KSI-CNA",
				"name": "Cloud Native Architecture",
				"short_name": "CNA",
				"indicators": {
					"KSI-CNA-RNT": {"name": "Restrict Network Traffic", "statement": "Restrict traffic."},
					"KSI-CNA-MAS": {"name": "Minimize Attack Surface", "statement": "Minimize surface."},
					"KSI-CNA-OLD": {"name": "Old", "statement": "Retired.", "retired": true},
					"KSI-CNA-NIL": {"name": "Empty"}
				}
			}
		}
	},
	"ADS": {
		"info": {"name": "Authorization Data Sharing", "short_name": "ADS"},
		"FRR": {
			"base": {
				"requirements": [
					{"id": "FRR-ADS-01", "name": "Share", "statement": "Share data.", "following_information": ["_first_", "second"]},
					{"id": "FRR-ADS-01", "statement": "Duplicate."}
				]
			},
			"low": {
				"FRR-ADS-PBI": {"name": "Public Info", "statement": "Publish info."}
			}
		}
	},
	"SCN": {
		"info": {"short_name": "SCN"},
		"data": {
			"FRR": {
				"data": {
					"TR": {"requirements": [{"id": "FRR-SCN-TR-01", "statement": "Transform."}]}
				}
			}
		}
	}
}`

func parse(t *testing.T, p *Parser, content string, seen domain.IDSet) *domain.ParseResult {
	t.Helper()
	result, err := p.Parse(context.Background(), &domain.SourceDocument{
		Name:    "FRMR.documentation.json",
		Content: []byte(content),
		Dialect: domain.DialectConsolidated,
	}, seen)
	require.NoError(t, err)
	return result
}

func ids(result *domain.ParseResult) []string {
	out := make([]string, 0, len(result.Records))
	for _, rec := range result.Records {
		out = append(out, rec.Control.ID)
	}
	return out
}

func TestDialect(t *testing.T) {
	assert.Equal(t, domain.DialectConsolidated, New(nil).Dialect())
}

func TestParse_Documentation(t *testing.T) {
	result := parse(t, New(frmr.DefaultGroupTitles()), documentation, domain.NewIDSet())

	assert.Equal(t, []string{"cna-rnt", "cna-mas", "ads-01", "ads-pbi", "scn-tr-01"}, ids(result))
	assert.Equal(t, 3, result.Skipped)

	t.Run("KSI group", func(t *testing.T) {
		rec := result.Records[0]
		assert.Equal(t, "CNA", rec.GroupID)
		assert.Equal(t, "Cloud Native Architecture", rec.GroupTitle)
		assert.Equal(t, "Restrict Network Traffic", rec.Control.Title)
		assert.Equal(t, "Restrict traffic.", rec.Control.Statement())
		assert.Equal(t, domain.AllLevels(), result.Impacts["cna-rnt"])
		assert.Equal(t, domain.AllLevels(), result.Impacts["cna-mas"])
	})

	t.Run("FRR requirements list", func(t *testing.T) {
		rec := result.Records[2]
		assert.Equal(t, "ADS", rec.GroupID)
		assert.Equal(t, "Authorization Data Sharing", rec.GroupTitle)
		assert.Equal(t, "Share data.", rec.Control.Statement())
		require.Len(t, rec.Control.Parts, 3)
		assert.Equal(t, "ads-01_smt.item.1", rec.Control.Parts[1].ID)
		assert.Equal(t, "first", rec.Control.Parts[1].Prose)
		assert.Equal(t, []string{"_first_", "second"}, result.Following["ads-01"])
	})

	t.Run("FRR requirement keyed by ID", func(t *testing.T) {
		rec := result.Records[3]
		assert.Equal(t, "Public Info", rec.Control.Title)
		assert.Equal(t, "Publish info.", rec.Control.Statement())
	})

	t.Run("FRR nested under data", func(t *testing.T) {
		rec := result.Records[4]
		assert.Equal(t, "SCN", rec.GroupID)
		assert.Equal(t, "SCN", rec.GroupTitle)
		assert.Equal(t, "SCN-TR-01", rec.Control.Title)
	})
}

func TestParse_OptionalLevel(t *testing.T) {
	doc := `{
		"info": {"version": "1.0"},
		"KSI": {"data": {"SVC": {"indicators": {
			"KSI-SVC-OPT": {"varies_by_level": {
				"low": {"statement": "**Optional:** Do it."},
				"moderate": {"statement": "Do it."}
			}}
		}}}}
	}`

	result := parse(t, New(frmr.DefaultGroupTitles()), doc, nil)

	require.Len(t, result.Records, 1)
	rec := result.Records[0]
	assert.Equal(t, "svc-opt", rec.Control.ID)
	assert.Equal(t, "Service Configuration", rec.GroupTitle)
	assert.Equal(t, "Do it.", rec.Control.Statement())
	assert.NotContains(t, rec.Control.Statement(), frmr.OptionalMarker)
	assert.Equal(t, domain.Impact{Moderate: true}, result.Impacts["svc-opt"])
}

func TestParse_KSIWithoutDataKey(t *testing.T) {
	doc := `{"KSI": {
		"info": {"name": "ignored"},
		"IAM": {"theme": "Identity", "indicators": {"KSI-IAM-01": {"statement": "x"}}}
	}}`

	result := parse(t, New(nil), doc, nil)

	require.Len(t, result.Records, 1)
	assert.Equal(t, "iam-01", result.Records[0].Control.ID)
	assert.Equal(t, "Identity", result.Records[0].GroupTitle)
}

func TestParse_InjectedTitles(t *testing.T) {
	doc := `{"KSI": {"data": {"CNA": {"indicators": {"KSI-CNA-01": {"statement": "x"}}}}}}`

	result := parse(t, New(domain.TitleTable{"CNA": "Custom Title"}), doc, nil)

	require.Len(t, result.Records, 1)
	assert.Equal(t, "Custom Title", result.Records[0].GroupTitle)
}

func TestParse_TopLevelFRR(t *testing.T) {
	doc := `{
		"info": {"version": "1.0", "name": "Requirements", "short_name": "VDR"},
		"FRR": {"low": {"requirements": [{"id": "VDR-01", "statement": "x"}]}}
	}`

	result := parse(t, New(nil), doc, nil)

	require.Len(t, result.Records, 1)
	rec := result.Records[0]
	assert.Equal(t, "vdr-01", rec.Control.ID)
	assert.Equal(t, "VDR", rec.GroupID)
	assert.Equal(t, "Requirements", rec.GroupTitle)
}

func TestParse_DedupSharedAcrossDocuments(t *testing.T) {
	p := New(nil)
	seen := domain.NewIDSet()

	first := parse(t, p, documentation, seen)
	second := parse(t, p, documentation, seen)

	assert.Len(t, first.Records, 5)
	// KSI indicators are not deduplicated; FRR requirements are.
	assert.Equal(t, []string{"cna-rnt", "cna-mas"}, ids(second))
	assert.True(t, seen.Has("FRR-ADS-01"))
	assert.True(t, seen.Has("FRR-ADS-PBI"))
}

func TestParse_RejectedIDNotMarkedSeen(t *testing.T) {
	doc := `{"ADS": {"FRR": {"a": {"requirements": [
		{"id": "FRR-ADS-01"},
		{"id": "FRR-ADS-01", "statement": "Second wins."}
	]}}}}`

	result := parse(t, New(nil), doc, nil)

	require.Len(t, result.Records, 1)
	assert.Equal(t, "Second wins.", result.Records[0].Control.Statement())
}

func TestParse_EmptyNormalisedID(t *testing.T) {
	doc := `{"KSI": {"data": {"CNA": {"indicators": {
		"KSI-": {"statement": "Bare prefix."},
		"KSI-CNA-01": {"statement": "Kept."}
	}}}}}`

	result := parse(t, New(nil), doc, nil)

	assert.Equal(t, []string{"cna-01"}, ids(result))
	assert.Equal(t, 1, result.Skipped)
}

func TestParse_UnprefixedRequirementID(t *testing.T) {
	doc := `{"SCN": {"FRR": {"a": {"requirements": [
		{"id": "CUSTOM-9", "statement": "x"},
		{"id": "FRR-01", "statement": "y"}
	]}}}}`
	seen := domain.NewIDSet()

	result := parse(t, New(nil), doc, seen)

	assert.Equal(t, []string{"scn-9", "scn-01"}, ids(result))
	assert.True(t, seen.Has("CUSTOM-9"))
}

func TestParse_DepthBound(t *testing.T) {
	doc := `{"ADS": {"FRR": {"a": {"b": {"c": {"requirements": [{"id": "FRR-ADS-01", "statement": "x"}]}}}}}}`

	t.Run("within bound", func(t *testing.T) {
		result := parse(t, New(nil), doc, nil)
		assert.Equal(t, []string{"ads-01"}, ids(result))
	})

	t.Run("beyond bound", func(t *testing.T) {
		result := parse(t, New(nil, WithMaxDepth(2)), doc, nil)
		assert.Empty(t, result.Records)
	})
}

func TestParse_StatementLevel(t *testing.T) {
	doc := `{"KSI": {"data": {"CNA": {"indicators": {"KSI-CNA-01": {"varies_by_level": {
		"low": "Low text.", "high": "High text."
	}}}}}}}`

	result := parse(t, New(nil, WithStatementLevel(domain.ImpactHigh)), doc, nil)

	require.Len(t, result.Records, 1)
	assert.Equal(t, "High text.", result.Records[0].Control.Statement())
}

func TestParse_Errors(t *testing.T) {
	p := New(nil)

	_, err := p.Parse(context.Background(), nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = p.Parse(context.Background(), &domain.SourceDocument{Content: []byte("not json")}, nil)
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
}
