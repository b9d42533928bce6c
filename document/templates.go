package document

import (
	"cmp"
	"slices"
	"strings"
)

// TemplateEntry is one recommended field of a category template section.
type TemplateEntry struct {
	FieldName string `json:"field_name"`
	SortOrder int    `json:"sort_order"`
}

// TemplateRow is a template entry as served by the catalog API.
type TemplateRow struct {
	Section   Section `json:"section"`
	FieldName string  `json:"field_name"`
	SortOrder int     `json:"sort_order"`
}

// TemplatePage is one page of the paginated template listing.
type TemplatePage struct {
	Total     int           `json:"total"`
	Templates []TemplateRow `json:"templates"`
}

// CategoryDefaults maps a section to the default fields a category injects.
type CategoryDefaults map[Section][]TemplateEntry

// TemplateIndex maps every section to its ordered template.
// Treat it as a value: build a new one instead of editing a shared index.
type TemplateIndex map[Section][]TemplateEntry

// EmptyIndex returns an index holding an empty template for every section.
func EmptyIndex() TemplateIndex {
	idx := make(TemplateIndex, len(Sections))
	for _, s := range Sections {
		idx[s] = []TemplateEntry{}
	}
	return idx
}

// BuildIndex groups rows by section and orders each bucket by sort order.
// Rows with the same sort order keep their fetch order; unknown sections are dropped.
func BuildIndex(rows []TemplateRow) TemplateIndex {
	idx := EmptyIndex()
	for _, r := range rows {
		if !r.Section.Valid() {
			continue
		}
		idx[r.Section] = append(idx[r.Section], TemplateEntry{FieldName: r.FieldName, SortOrder: r.SortOrder})
	}
	for s, entries := range idx {
		slices.SortStableFunc(entries, func(a, b TemplateEntry) int { return cmp.Compare(a.SortOrder, b.SortOrder) })
		idx[s] = entries
	}
	return idx
}

// Template returns the entries for s, never nil.
func (idx TemplateIndex) Template(s Section) []TemplateEntry {
	if t, ok := idx[s]; ok && t != nil {
		return t
	}
	return []TemplateEntry{}
}

// Empty reports whether no section carries a template.
func (idx TemplateIndex) Empty() bool {
	for _, t := range idx {
		if len(t) > 0 {
			return false
		}
	}
	return true
}

// Lookup finds the first template entry whose field name matches name.
func Lookup(template []TemplateEntry, name string) (TemplateEntry, bool) {
	key := strings.TrimSpace(name)
	for _, t := range template {
		if SameName(t.FieldName, key) {
			return t, true
		}
	}
	return TemplateEntry{}, false
}
