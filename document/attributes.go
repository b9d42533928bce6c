package document

import "strings"

// Section names one of the attribute lists a variant owns.
type Section string

const (
	SectionSpecifications   Section = "specifications"
	SectionMeasurementSpecs Section = "measurement_specs"
	SectionStyleSpecs       Section = "style_specs"
	SectionFeatures         Section = "features"
	SectionUserGuide        Section = "user_guide"
	SectionItemDetails      Section = "item_details"
)

// Sections lists every attribute section in display order.
var Sections = []Section{
	SectionSpecifications,
	SectionMeasurementSpecs,
	SectionStyleSpecs,
	SectionFeatures,
	SectionUserGuide,
	SectionItemDetails,
}

// Valid reports whether s is one of the known sections.
func (s Section) Valid() bool {
	for _, known := range Sections {
		if s == known {
			return true
		}
	}
	return false
}

// ParseSection returns the section named by raw, ignoring case and surrounding space.
func ParseSection(raw string) (Section, bool) {
	s := Section(strings.ToLower(strings.TrimSpace(raw)))
	return s, s.Valid()
}

// AttributeEntry is one named fact about a variant, e.g. "Depth" -> "12 inch".
type AttributeEntry struct {
	ID        *int64 `json:"id,omitempty"`
	Name      string `json:"name"`
	Value     string `json:"value"`
	SortOrder int    `json:"sort_order"`
	IsActive  *bool  `json:"is_active,omitempty"`
}

// Active returns IsActive, defaulting to true when unset.
func (e AttributeEntry) Active() bool {
	return e.IsActive == nil || *e.IsActive
}

// SameName compares attribute names the way templates match them.
func SameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// AttributeDocument is the outbound form of an AttributeEntry.
type AttributeDocument struct {
	ID        *int64 `json:"id,omitempty"`
	Name      string `json:"name"`
	Value     string `json:"value"`
	SortOrder int    `json:"sort_order"`
	IsActive  bool   `json:"is_active"`
}
