package domain

// ImpactLevel is one of the three FedRAMP impact levels.
type ImpactLevel string

// Impact levels.
const (
	ImpactLow      ImpactLevel = "low"
	ImpactModerate ImpactLevel = "moderate"
	ImpactHigh     ImpactLevel = "high"
)

// ImpactLevels returns all levels in canonical order.
func ImpactLevels() []ImpactLevel {
	return []ImpactLevel{ImpactLow, ImpactModerate, ImpactHigh}
}

// String returns the string representation.
func (l ImpactLevel) String() string {
	return string(l)
}

// Title returns the capitalised level name (e.g., "Moderate").
func (l ImpactLevel) Title() string {
	switch l {
	case ImpactLow:
		return "Low"
	case ImpactModerate:
		return "Moderate"
	case ImpactHigh:
		return "High"
	default:
		return string(l)
	}
}

// Impact records which levels a control applies to.
type Impact struct {
	Low      bool
	Moderate bool
	High     bool
}

// AllLevels returns an Impact that applies to every level.
func AllLevels() Impact {
	return Impact{Low: true, Moderate: true, High: true}
}

// Applies reports whether the impact includes the given level.
func (i Impact) Applies(level ImpactLevel) bool {
	switch level {
	case ImpactLow:
		return i.Low
	case ImpactModerate:
		return i.Moderate
	case ImpactHigh:
		return i.High
	default:
		return false
	}
}

// Set marks a level as applicable or not.
func (i *Impact) Set(level ImpactLevel, applies bool) {
	switch level {
	case ImpactLow:
		i.Low = applies
	case ImpactModerate:
		i.Moderate = applies
	case ImpactHigh:
		i.High = applies
	}
}

// ImpactMap maps control IDs to their impact applicability.
// A missing entry means the control applies to no level.
type ImpactMap map[string]Impact

// FollowingInfo maps control IDs to their ordered guidance strings.
type FollowingInfo map[string][]string

// Part names used in control parts.
const (
	PartStatement = "statement"
	PartItem      = "item"
)

// Part is a named piece of control prose.
type Part struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Prose string `json:"prose"`
}

// Control is the normalised, dialect-independent unit produced by parsing.
// Parts[0] is always the statement part.
type Control struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Parts []Part `json:"parts"`
}

// Statement returns the statement prose, or empty string if the control has no parts.
func (c Control) Statement() string {
	if len(c.Parts) == 0 {
		return ""
	}
	return c.Parts[0].Prose
}

// GroupedControl is a control together with the group it belongs to.
type GroupedControl struct {
	// GroupID is the theme or standard code (e.g., "CNA", "ADS").
	GroupID string

	// GroupTitle is the human-readable group name.
	GroupTitle string

	// Control is the normalised control.
	Control Control
}

// ParseResult is the common output contract of every schema parser.
type ParseResult struct {
	// Records are the controls in document order.
	Records []GroupedControl

	// Impacts holds impact applicability per control ID.
	Impacts ImpactMap

	// Following holds guidance strings per control ID.
	Following FollowingInfo

	// Skipped counts records dropped as malformed, retired or duplicate.
	Skipped int
}

// NewParseResult creates an empty ParseResult with initialised maps.
func NewParseResult() *ParseResult {
	return &ParseResult{
		Impacts:   make(ImpactMap),
		Following: make(FollowingInfo),
	}
}

// Add appends a record with its impact and optional guidance.
func (r *ParseResult) Add(rec GroupedControl, impact Impact, following []string) {
	r.Records = append(r.Records, rec)
	r.Impacts[rec.Control.ID] = impact
	if len(following) > 0 {
		r.Following[rec.Control.ID] = following
	}
}

// ControlSet is the aggregated output of all documents in a run.
type ControlSet struct {
	// Version is the resolved publication version.
	Version string

	// Records are the controls in aggregation order, unique by control ID.
	Records []GroupedControl

	// Impacts holds impact applicability per control ID.
	Impacts ImpactMap

	// Following holds guidance strings per control ID.
	Following FollowingInfo
}

// Len returns the number of controls.
func (s *ControlSet) Len() int {
	return len(s.Records)
}

// IDSet tracks raw record IDs that have already been accepted.
type IDSet map[string]struct{}

// NewIDSet creates an empty IDSet.
func NewIDSet() IDSet {
	return make(IDSet)
}

// Has reports whether id has been accepted.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Add marks id as accepted.
func (s IDSet) Add(id string) {
	s[id] = struct{}{}
}
