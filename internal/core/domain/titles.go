package domain

// GroupTitles resolves a human-readable title for a theme or standard code.
// It is the fallback used when a document does not name a group itself.
type GroupTitles interface {
	// Lookup returns the title for code and whether one is known.
	Lookup(code string) (string, bool)
}

// TitleTable is a map-backed GroupTitles.
type TitleTable map[string]string

// Lookup implements GroupTitles.
func (t TitleTable) Lookup(code string) (string, bool) {
	title, ok := t[code]
	return title, ok && title != ""
}

// Merge returns a new table with entries from other overriding t.
func (t TitleTable) Merge(other TitleTable) TitleTable {
	merged := make(TitleTable, len(t)+len(other))
	for k, v := range t {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}
