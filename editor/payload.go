package editor

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mytheresa/catalog-editor/document"
)

// BuildVariantPayload projects v to its full wire form.
//
// Unparseable prices become null and unparseable stock becomes 0. Entries of
// every section except specifications are dropped when their trimmed name or
// value is empty; specifications are sent as they are, blank rows included.
func BuildVariantPayload(v *Variant) document.VariantDocument {
	doc := document.VariantDocument{
		VariantCore:   MinimalVariantPayload(v),
		DiscountPrice: parseNumber(v.DiscountPrice),
		Images:        make([]document.ImageDocument, 0, len(v.Images)),
		MainImage:     optionalString(v.MainImage),
		VideoURL:      optionalString(v.VideoURL),
	}
	for _, img := range v.Images {
		url := strings.TrimSpace(img.URL)
		if url == "" {
			continue
		}
		doc.Images = append(doc.Images, document.ImageDocument{
			ID:        cloneID(img.ID),
			URL:       url,
			SortOrder: len(doc.Images),
		})
	}
	doc.Specifications = passthroughEntries(v.Specifications)
	doc.MeasurementSpecs = filterEntries(v.MeasurementSpecs)
	doc.StyleSpecs = filterEntries(v.StyleSpecs)
	doc.Features = filterEntries(v.Features)
	doc.UserGuide = filterEntries(v.UserGuide)
	doc.ItemDetails = filterEntries(v.ItemDetails)
	return doc
}

// MinimalVariantPayload projects v to the fields sent for an unchanged
// variant: identity, color, SKU, size, pattern, quality, price, stock, flags
// and subcategories. Images and attribute sections are never included.
func MinimalVariantPayload(v *Variant) document.VariantCore {
	subcategories := make([]int64, len(v.SubcategoryIDs))
	copy(subcategories, v.SubcategoryIDs)
	return document.VariantCore{
		ID:             cloneID(v.ID),
		ColorID:        cloneID(v.ColorID),
		SKU:            strings.TrimSpace(v.SKU),
		Size:           strings.TrimSpace(v.Size),
		Pattern:        strings.TrimSpace(v.Pattern),
		Quality:        strings.TrimSpace(v.Quality),
		Price:          parseNumber(v.Price),
		Stock:          parseStock(v.Stock),
		IsActive:       boolOr(v.IsActive, true),
		InStock:        boolOr(v.InStock, true),
		SubcategoryIDs: subcategories,
	}
}

// ProjectVariant classifies v against original and builds the matching
// projection: minimal when unchanged, full otherwise.
func ProjectVariant(v, original *Variant) document.VariantProjection {
	status := VariantStatus(v, original)
	if status == document.StatusUnchanged {
		minimal := MinimalVariantPayload(v)
		return document.VariantProjection{Status: status, Minimal: &minimal}
	}
	full := BuildVariantPayload(v)
	return document.VariantProjection{Status: status, Full: &full}
}

// BuildSavePayload builds the body of a save call.
//
// For a new product every field, variant and list is sent in full. For an
// existing one only the scalar fields that differ from original are sent;
// every variant is sent, since an omitted variant is deleted by the server,
// and the bullet points and recommendations are sent only when they differ.
// Neither product is modified.
func BuildSavePayload(current, original *Product, isNew bool) document.SaveDocument {
	doc := document.SaveDocument{
		Fields:   make(map[string]any),
		Variants: make([]document.VariantProjection, 0, len(current.Variants)),
	}
	create := isNew || original == nil

	var changed []string
	if create {
		changed = ChangedProductFields(current, nil)
	} else {
		changed = ChangedProductFields(current, original)
	}
	for _, name := range changed {
		for _, f := range productFields {
			if f.name == name {
				doc.Fields[name] = f.value(current)
				break
			}
		}
	}

	for i := range current.Variants {
		var orig *Variant
		if !create {
			orig = matchOriginal(&current.Variants[i], i, original.Variants)
		}
		doc.Variants = append(doc.Variants, ProjectVariant(&current.Variants[i], orig))
	}

	bullets := cleanBullets(current.BulletPoints)
	if create || !Equal(bullets, cleanBullets(original.BulletPoints)) {
		doc.BulletPoints = &bullets
	}
	recs := cleanRecommendations(current.Recommendations)
	if create || !Equal(recs, cleanRecommendations(original.Recommendations)) {
		doc.Recommendations = &recs
	}
	return doc
}

func passthroughEntries(in []document.AttributeEntry) []document.AttributeDocument {
	out := make([]document.AttributeDocument, 0, len(in))
	for _, e := range in {
		out = append(out, document.AttributeDocument{
			ID:        cloneID(e.ID),
			Name:      e.Name,
			Value:     e.Value,
			SortOrder: e.SortOrder,
			IsActive:  e.Active(),
		})
	}
	return out
}

func filterEntries(in []document.AttributeEntry) []document.AttributeDocument {
	out := make([]document.AttributeDocument, 0, len(in))
	for _, e := range in {
		name, value := strings.TrimSpace(e.Name), strings.TrimSpace(e.Value)
		if name == "" || value == "" {
			continue
		}
		out = append(out, document.AttributeDocument{
			ID:        cloneID(e.ID),
			Name:      name,
			Value:     value,
			SortOrder: e.SortOrder,
			IsActive:  e.Active(),
		})
	}
	return out
}

func cleanBullets(in []document.BulletPoint) []document.BulletPoint {
	out := make([]document.BulletPoint, 0, len(in))
	for _, b := range in {
		text := strings.TrimSpace(b.Text)
		if text == "" {
			continue
		}
		out = append(out, document.BulletPoint{ID: cloneID(b.ID), Text: text, SortOrder: len(out)})
	}
	return out
}

func cleanRecommendations(in []int64) []int64 {
	out := make([]int64, 0, len(in))
	seen := make(map[int64]bool, len(in))
	for _, id := range in {
		if id <= 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// parseNumber coerces form input to a number; blank or malformed input is nil.
func parseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	f := d.InexactFloat64()
	// out-of-range input such as "1e400" overflows and is not encodable
	if math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func parseStock(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return int(d.IntPart())
	}
	return 0
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
