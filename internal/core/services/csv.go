package services

import (
	"bytes"
	"strings"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
)

// CSVHeader is the header row of the parameterisation table.
var CSVHeader = []string{"Control Part", "OSCAL_ID", "ParamifiedProse"}

// ProjectCSV flattens controls into the parameterisation table, one row
// per control, every field quoted, rows terminated by CRLF.
func ProjectCSV(set *domain.ControlSet) []byte {
	var buf bytes.Buffer
	writeQuotedRow(&buf, CSVHeader)
	for _, rec := range set.Records {
		c := rec.Control
		writeQuotedRow(&buf, []string{strings.ToUpper(c.ID), c.ID + "_smt", AssembleProse(c)})
	}
	return buf.Bytes()
}

// AssembleProse returns the statement followed by a bullet per item part.
// The bullets start on a new line; a statement ending in a colon loses its
// trailing whitespace first.
func AssembleProse(c domain.Control) string {
	var items []string
	for _, part := range c.Parts {
		if part.Name == domain.PartItem {
			items = append(items, "• "+part.Prose)
		}
	}

	prose := c.Statement()
	if len(items) == 0 {
		return prose
	}
	if prose != "" {
		trimmed := strings.TrimRight(prose, " \t\r\n\v\f")
		if strings.HasSuffix(trimmed, ":") {
			prose = trimmed + "\n"
		} else {
			prose += "\n"
		}
	}
	return prose + strings.Join(items, "\n")
}

func writeQuotedRow(buf *bytes.Buffer, fields []string) {
	for i, field := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(field, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteString("\r\n")
}
