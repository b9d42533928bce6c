package editor

import (
	"slices"
	"strings"

	"github.com/mytheresa/catalog-editor/document"
)

// VariantStatus classifies current against its last saved state.
//
// Cheap media checks run first; the comparison of outbound projections is
// authoritative and catches attribute, pricing and stock edits. Reordering
// images without changing the set of URLs does not count as a change.
func VariantStatus(current, original *Variant) document.ChangeStatus {
	if original == nil {
		return document.StatusNew
	}
	if original.ID == nil && current.ID != nil {
		return document.StatusModified
	}
	if len(current.Images) != len(original.Images) ||
		strings.TrimSpace(current.MainImage) != strings.TrimSpace(original.MainImage) ||
		strings.TrimSpace(current.VideoURL) != strings.TrimSpace(original.VideoURL) ||
		!slices.Equal(sortedImageURLs(current), sortedImageURLs(original)) {
		return document.StatusModified
	}
	if !Equal(comparisonProjection(current), comparisonProjection(original)) {
		return document.StatusModified
	}
	return document.StatusUnchanged
}

// VariantChanged reports whether current differs from original. A variant
// with no original is new and therefore changed.
func VariantChanged(current, original *Variant) bool {
	return VariantStatus(current, original) != document.StatusUnchanged
}

// comparisonProjection is the full outbound projection without the image
// list, whose content is already covered by the media checks.
func comparisonProjection(v *Variant) document.VariantDocument {
	doc := BuildVariantPayload(v)
	doc.Images = nil
	return doc
}

func sortedImageURLs(v *Variant) []string {
	urls := make([]string, len(v.Images))
	for i, img := range v.Images {
		urls[i] = strings.TrimSpace(img.URL)
	}
	slices.Sort(urls)
	return urls
}

// matchOriginal finds the saved counterpart of the variant at position i.
// Variants are matched by id; a variant that gained an id since the snapshot
// is paired with the id-less original at the same position.
func matchOriginal(current *Variant, i int, originals []Variant) *Variant {
	if current.ID == nil {
		return nil
	}
	for j := range originals {
		if originals[j].ID != nil && *originals[j].ID == *current.ID {
			return &originals[j]
		}
	}
	if i < len(originals) && originals[i].ID == nil {
		return &originals[i]
	}
	return nil
}

type productField struct {
	name  string
	value func(p *Product) any
}

// productFields is the outbound value of every patchable scalar field. The
// same projection feeds change detection and the save payload.
var productFields = []productField{
	{document.FieldTitle, func(p *Product) any { return strings.TrimSpace(p.Title) }},
	{document.FieldSlug, func(p *Product) any { return strings.TrimSpace(p.Slug) }},
	{document.FieldSKU, func(p *Product) any { return strings.TrimSpace(p.SKU) }},
	{document.FieldShortDescription, func(p *Product) any { return p.ShortDescription }},
	{document.FieldDescription, func(p *Product) any { return p.Description }},
	{document.FieldCategoryID, func(p *Product) any { return cloneID(p.CategoryID) }},
	{document.FieldSubcategoryID, func(p *Product) any { return cloneID(p.SubcategoryID) }},
	{document.FieldMaterialID, func(p *Product) any { return cloneID(p.MaterialID) }},
	{document.FieldBrand, func(p *Product) any { return strings.TrimSpace(p.Brand) }},
	{document.FieldDimensions, func(p *Product) any { return strings.TrimSpace(p.Dimensions) }},
	{document.FieldWeight, func(p *Product) any { return parseNumber(p.Weight) }},
	{document.FieldWarranty, func(p *Product) any { return strings.TrimSpace(p.Warranty) }},
	{document.FieldAssemblyRequired, func(p *Product) any { return p.AssemblyRequired }},
	{document.FieldDeliveryEstimate, func(p *Product) any { return strings.TrimSpace(p.DeliveryEstimate) }},
	{document.FieldIsFeatured, func(p *Product) any { return p.IsFeatured }},
	{document.FieldIsActive, func(p *Product) any { return p.IsActive }},
	{document.FieldMarketingOffers, func(p *Product) any { return cleanOffers(p.MarketingOffers) }},
}

// ChangedProductFields lists the scalar fields whose outbound value differs
// between current and original. Every field counts as changed when there is
// no original.
func ChangedProductFields(current, original *Product) []string {
	var changed []string
	for _, f := range productFields {
		if original == nil || !Equal(f.value(current), f.value(original)) {
			changed = append(changed, f.name)
		}
	}
	return changed
}

// ProductFieldsChanged reports whether any scalar field or the marketing
// offers differ.
func ProductFieldsChanged(current, original *Product) bool {
	return len(ChangedProductFields(current, original)) > 0
}

func cleanOffers(offers []string) []string {
	out := make([]string, 0, len(offers))
	for _, o := range offers {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
