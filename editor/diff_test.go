package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mytheresa/catalog-editor/document"
)

func TestVariantStatus(t *testing.T) {
	testCases := []struct {
		name     string
		mutate   func(v *Variant)
		original func(v *Variant) *Variant
		expected document.ChangeStatus
	}{
		{
			name:     "No original means new",
			original: func(*Variant) *Variant { return nil },
			expected: document.StatusNew,
		},
		{
			name:     "Identical copy is unchanged",
			expected: document.StatusUnchanged,
		},
		{
			name: "Original without id but current with one is modified",
			original: func(v *Variant) *Variant {
				o := v.Clone()
				o.ID = nil
				return &o
			},
			expected: document.StatusModified,
		},
		{
			name:     "Image count differs",
			mutate:   func(v *Variant) { v.Images = v.Images[:1] },
			expected: document.StatusModified,
		},
		{
			name:     "Main image differs",
			mutate:   func(v *Variant) { v.MainImage = "https://cdn.example.com/b.jpg" },
			expected: document.StatusModified,
		},
		{
			name:     "Video added",
			mutate:   func(v *Variant) { v.VideoURL = "https://cdn.example.com/v.mp4" },
			expected: document.StatusModified,
		},
		{
			name:     "Blank video equals no video",
			mutate:   func(v *Variant) { v.VideoURL = "  " },
			expected: document.StatusUnchanged,
		},
		{
			name:     "Image swapped for another URL",
			mutate:   func(v *Variant) { v.Images[1].URL = "https://cdn.example.com/z.jpg" },
			expected: document.StatusModified,
		},
		{
			name: "Images reordered with the same URLs",
			mutate: func(v *Variant) {
				v.Images[0], v.Images[1] = v.Images[1], v.Images[0]
			},
			expected: document.StatusUnchanged,
		},
		{
			name:     "Attribute value edited",
			mutate:   func(v *Variant) { v.Specifications[1].Value = "Lacquered" },
			expected: document.StatusModified,
		},
		{
			name:     "Price edited",
			mutate:   func(v *Variant) { v.Price = "119.90" },
			expected: document.StatusModified,
		},
		{
			name:     "Price reformatted to the same number",
			mutate:   func(v *Variant) { v.Price = "129.9" },
			expected: document.StatusUnchanged,
		},
		{
			name:     "Stock edited",
			mutate:   func(v *Variant) { v.Stock = "11" },
			expected: document.StatusModified,
		},
		{
			name:     "Blank feature row added is filtered out",
			mutate:   func(v *Variant) { v.Features = append(v.Features, attr("", "", 1)) },
			expected: document.StatusUnchanged,
		},
		{
			name:     "Blank specification row added counts",
			mutate:   func(v *Variant) { v.Specifications = append(v.Specifications, attr("", "", 2)) },
			expected: document.StatusModified,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			saved := sampleProduct().Variants[0]
			current := saved.Clone()
			if tc.mutate != nil {
				tc.mutate(&current)
			}
			original := &saved
			if tc.original != nil {
				original = tc.original(&saved)
			}

			assert.Equal(t, tc.expected, VariantStatus(&current, original))
			assert.Equal(t, tc.expected != document.StatusUnchanged, VariantChanged(&current, original))
		})
	}
}

func TestVariantStatusDoesNotMutate(t *testing.T) {
	saved := sampleProduct().Variants[0]
	current := saved.Clone()
	current.Images[0], current.Images[1] = current.Images[1], current.Images[0]
	before := current.Clone()

	VariantStatus(&current, &saved)

	assert.Equal(t, before, current)
}

func TestChangedProductFields(t *testing.T) {
	testCases := []struct {
		name     string
		mutate   func(p *Product)
		expected []string
	}{
		{
			name:     "Nothing changed",
			mutate:   func(*Product) {},
			expected: nil,
		},
		{
			name:     "Weight only",
			mutate:   func(p *Product) { p.Weight = "8" },
			expected: []string{document.FieldWeight},
		},
		{
			name:     "Weight reformatted is unchanged",
			mutate:   func(p *Product) { p.Weight = "7.50" },
			expected: nil,
		},
		{
			name:     "Unparseable weight becomes null",
			mutate:   func(p *Product) { p.Weight = "heavy" },
			expected: []string{document.FieldWeight},
		},
		{
			name: "Several scalar fields",
			mutate: func(p *Product) {
				p.Title = "Oak Table"
				p.MaterialID = nil
				p.IsFeatured = true
			},
			expected: []string{document.FieldTitle, document.FieldMaterialID, document.FieldIsFeatured},
		},
		{
			name:     "Surrounding whitespace on the title is ignored",
			mutate:   func(p *Product) { p.Title = "  Oak Side Table " },
			expected: nil,
		},
		{
			name:     "Marketing offers compared structurally",
			mutate:   func(p *Product) { p.MarketingOffers = append(p.MarketingOffers, "10% off") },
			expected: []string{document.FieldMarketingOffers},
		},
		{
			name:     "Variant edits do not touch product fields",
			mutate:   func(p *Product) { p.Variants[0].Price = "1" },
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			original := sampleProduct()
			current := original.Clone()
			tc.mutate(current)

			assert.Equal(t, tc.expected, ChangedProductFields(current, original))
			assert.Equal(t, len(tc.expected) > 0, ProductFieldsChanged(current, original))
		})
	}
}

func TestChangedProductFieldsWithoutOriginal(t *testing.T) {
	assert.Equal(t, document.ProductFields, ChangedProductFields(sampleProduct(), nil))
}

func TestMatchOriginal(t *testing.T) {
	originals := sampleProduct().Variants

	byID := Variant{ID: idPtr(101)}
	assert.Same(t, &originals[1], matchOriginal(&byID, 0, originals))

	unsaved := Variant{}
	assert.Nil(t, matchOriginal(&unsaved, 0, originals))

	pending := []Variant{{SKU: "pending"}}
	justSaved := Variant{ID: idPtr(555)}
	assert.Same(t, &pending[0], matchOriginal(&justSaved, 0, pending))

	unknown := Variant{ID: idPtr(999)}
	assert.Nil(t, matchOriginal(&unknown, 0, originals))
}
