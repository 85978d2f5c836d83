package frmr

import (
	"regexp"
	"strings"
)

var (
	boldPattern     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	wrappedPattern  = regexp.MustCompile(`_([A-Za-z0-9][A-Za-z0-9\s]*[A-Za-z0-9])_`)
	leadingPattern  = regexp.MustCompile(`\b_([A-Za-z0-9][A-Za-z0-9\s]*[A-Za-z0-9])\b`)
	trailingPattern = regexp.MustCompile(`\b([A-Za-z0-9][A-Za-z0-9\s]*[A-Za-z0-9])_\b`)
)

// CleanProse strips decorative markup from free text.
// The steps run in order: trim, unwrap one pair of double quotes, unwrap one
// pair of single quotes, drop bold markers, then drop emphasis underscores
// (fully wrapped, leading only, trailing only).
func CleanProse(text string) string {
	if text == "" {
		return text
	}

	text = strings.TrimSpace(text)
	text = unwrap(text, '"')
	text = unwrap(text, '\'')

	text = boldPattern.ReplaceAllString(text, "$1")
	text = wrappedPattern.ReplaceAllString(text, "$1")
	text = leadingPattern.ReplaceAllString(text, "$1")
	text = trailingPattern.ReplaceAllString(text, "$1")

	return text
}

func unwrap(text string, quote byte) string {
	if len(text) >= 2 && text[0] == quote && text[len(text)-1] == quote {
		return text[1 : len(text)-1]
	}
	return text
}

// Title returns the cleaned name, or the upper-cased control ID when the
// name is blank or cleans to nothing.
func Title(name, controlID string) string {
	if strings.TrimSpace(name) != "" {
		if cleaned := CleanProse(name); cleaned != "" {
			return cleaned
		}
	}
	return strings.ToUpper(controlID)
}
