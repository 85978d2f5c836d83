package services

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
)

func TestProjectCSV(t *testing.T) {
	data := string(ProjectCSV(sampleSet()))

	want := `"Control Part","OSCAL_ID","ParamifiedProse"` + "\r\n" +
		`"CNA-RNT","cna-rnt_smt","Restrict traffic."` + "\r\n" +
		`"ADS-01","ads-01_smt","Share data:` + "\n• first\n• second\"\r\n" +
		`"ADS-02","ads-02_smt","Low only."` + "\r\n"
	assert.Equal(t, want, data)
}

func TestProjectCSV_Readable(t *testing.T) {
	set := &domain.ControlSet{
		Records: []domain.GroupedControl{
			grouped("CNA", "", control("cna-q", `Use "quoted", text.`)),
		},
	}

	rows, err := csv.NewReader(strings.NewReader(string(ProjectCSV(set)))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, CSVHeader, rows[0])
	assert.Equal(t, []string{"CNA-Q", "cna-q_smt", `Use "quoted", text.`}, rows[1])
}

func TestProjectCSV_HeaderOnly(t *testing.T) {
	data := string(ProjectCSV(&domain.ControlSet{}))
	assert.Equal(t, `"Control Part","OSCAL_ID","ParamifiedProse"`+"\r\n", data)
}

func TestAssembleProse(t *testing.T) {
	tests := []struct {
		name string
		c    domain.Control
		want string
	}{
		{"statement only", control("x", "Do it."), "Do it."},
		{"items after sentence", control("x", "Do it.", "a", "b"), "Do it.\n• a\n• b"},
		{"colon trims trailing space", control("x", "Include:  \n", "a"), "Include:\n• a"},
		{"non-colon keeps trailing space", control("x", "Do it. ", "a"), "Do it. \n• a"},
		{"empty statement", control("x", "", "a", "b"), "• a\n• b"},
		{"no parts", domain.Control{ID: "x"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AssembleProse(tt.c))
		})
	}
}
