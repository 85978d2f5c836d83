package domain

// OSCALVersion is the OSCAL schema version written into every artifact.
const OSCALVersion = "1.1.2"

// TimestampLayout is the textual format of published and last-modified fields.
const TimestampLayout = "2006-01-02T15:04:05.000000-07:00"

// Metadata is the OSCAL metadata block shared by catalogs and profiles.
// Published and LastModified are the only fields that vary between runs
// over identical input.
type Metadata struct {
	Title        string `json:"title"`
	Published    string `json:"published,omitempty"`
	LastModified string `json:"last-modified,omitempty"`
	Version      string `json:"version"`
	OSCALVersion string `json:"oscal-version"`
}

// Timestamps returns the publication timestamps.
func (m *Metadata) Timestamps() Timestamps {
	return Timestamps{Published: m.Published, LastModified: m.LastModified}
}

// SetTimestamps replaces the publication timestamps.
func (m *Metadata) SetTimestamps(ts Timestamps) {
	m.Published = ts.Published
	m.LastModified = ts.LastModified
}

// Group is a catalog group of controls.
type Group struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Controls []Control `json:"controls"`
}

// Catalog is an OSCAL catalog.
type Catalog struct {
	UUID     string   `json:"uuid"`
	Metadata Metadata `json:"metadata"`
	Groups   []Group  `json:"groups"`
}

// CatalogDocument is the top-level envelope written to catalog.json.
type CatalogDocument struct {
	Catalog Catalog `json:"catalog"`
}

// Meta returns the metadata block.
func (d *CatalogDocument) Meta() *Metadata {
	return &d.Catalog.Metadata
}

// IncludeControls selects catalog controls by ID.
type IncludeControls struct {
	WithIDs []string `json:"with-ids"`
}

// Import references the catalog a profile selects from.
type Import struct {
	Href            string            `json:"href"`
	IncludeControls []IncludeControls `json:"include-controls"`
}

// Profile is an OSCAL profile for one impact level.
type Profile struct {
	UUID     string   `json:"uuid"`
	Metadata Metadata `json:"metadata"`
	Imports  []Import `json:"imports"`
}

// ProfileDocument is the top-level envelope written to a profile file.
type ProfileDocument struct {
	Profile Profile `json:"profile"`

	// Level is the impact level this profile selects. Not serialised.
	Level ImpactLevel `json:"-"`
}

// Meta returns the metadata block.
func (d *ProfileDocument) Meta() *Metadata {
	return &d.Profile.Metadata
}

// ControlIDs returns the selected control IDs.
func (d *ProfileDocument) ControlIDs() []string {
	var ids []string
	for _, imp := range d.Profile.Imports {
		for _, inc := range imp.IncludeControls {
			ids = append(ids, inc.WithIDs...)
		}
	}
	return ids
}

// Publishable is an artifact whose metadata carries publication timestamps.
type Publishable interface {
	Meta() *Metadata
}
