// Package attributes orders and completes variant attribute lists against
// category templates.
package attributes

import (
	"cmp"
	"slices"
	"strings"

	"github.com/mytheresa/catalog-editor/document"
)

// Reconcile returns entries in display order for the given template.
//
// Entries whose name matches a template field come first, ordered by the
// template's sort order; the rest follow ordered by their own sort order.
// Equal keys keep their input order, so reconciling twice changes nothing.
// With an empty template the list is ordered by sort order alone.
// The section is accepted so callers can reconcile uniformly; ordering does
// not depend on it.
func Reconcile(entries []document.AttributeEntry, section document.Section, template []document.TemplateEntry) []document.AttributeEntry {
	out := slices.Clone(entries)
	if out == nil {
		out = []document.AttributeEntry{}
	}
	if len(template) == 0 {
		slices.SortStableFunc(out, func(a, b document.AttributeEntry) int {
			return cmp.Compare(a.SortOrder, b.SortOrder)
		})
		return out
	}

	rank := templateRanks(template)
	type keyed struct {
		templated bool
		order     int
	}
	key := func(e document.AttributeEntry) keyed {
		if r, ok := rank[normalize(e.Name)]; ok {
			return keyed{templated: true, order: r}
		}
		return keyed{order: e.SortOrder}
	}
	slices.SortStableFunc(out, func(a, b document.AttributeEntry) int {
		ka, kb := key(a), key(b)
		if ka.templated != kb.templated {
			if ka.templated {
				return -1
			}
			return 1
		}
		return cmp.Compare(ka.order, kb.order)
	})
	return out
}

// MergeDefaults appends an empty entry for every default field missing from
// entries. Existing entries are never removed or rewritten. A new entry takes
// the template's sort order for its name, or the list length when the name is
// not templated.
func MergeDefaults(entries []document.AttributeEntry, template []document.TemplateEntry, defaults []document.TemplateEntry) []document.AttributeEntry {
	out := slices.Clone(entries)
	if out == nil {
		out = []document.AttributeEntry{}
	}
	present := make(map[string]bool, len(out))
	for _, e := range out {
		present[normalize(e.Name)] = true
	}
	for _, d := range defaults {
		name := strings.TrimSpace(d.FieldName)
		if name == "" || present[normalize(name)] {
			continue
		}
		order := len(out)
		if t, ok := document.Lookup(template, name); ok {
			order = t.SortOrder
		}
		out = append(out, document.AttributeEntry{Name: name, Value: "", SortOrder: order})
		present[normalize(name)] = true
	}
	return out
}

// ApplyTemplateOrder copies the template's sort order onto entries whose name
// matches a template field. Names and values are left alone.
func ApplyTemplateOrder(entries []document.AttributeEntry, template []document.TemplateEntry) []document.AttributeEntry {
	out := slices.Clone(entries)
	if len(template) == 0 {
		return out
	}
	rank := templateRanks(template)
	for i := range out {
		if r, ok := rank[normalize(out[i].Name)]; ok {
			out[i].SortOrder = r
		}
	}
	return out
}

// Recommended reports which template fields are missing from entries.
func Recommended(entries []document.AttributeEntry, template []document.TemplateEntry) []string {
	present := make(map[string]bool, len(entries))
	for _, e := range entries {
		present[normalize(e.Name)] = true
	}
	var missing []string
	for _, t := range template {
		if !present[normalize(t.FieldName)] {
			missing = append(missing, t.FieldName)
		}
	}
	return missing
}

// templateRanks maps a normalized field name to the sort order of its first
// template entry.
func templateRanks(template []document.TemplateEntry) map[string]int {
	rank := make(map[string]int, len(template))
	for _, t := range template {
		k := normalize(t.FieldName)
		if _, seen := rank[k]; !seen {
			rank[k] = t.SortOrder
		}
	}
	return rank
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
