package editor

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"

	"github.com/brunoga/deep/v2"
	"github.com/shopspring/decimal"

	"github.com/mytheresa/catalog-editor/document"
)

// Image is one entry of a variant's ordered image list.
type Image struct {
	ID  *int64
	URL string
}

// Variant is the editable form of a product variant. Price, discount and
// stock hold raw form input and are coerced only when a payload is built.
type Variant struct {
	ID             *int64
	ColorID        *int64
	SKU            string
	Size           string
	Pattern        string
	Quality        string
	Price          string
	DiscountPrice  string
	Stock          string
	IsActive       *bool
	InStock        *bool
	SubcategoryIDs []int64
	Images         []Image
	MainImage      string
	VideoURL       string

	Specifications   []document.AttributeEntry
	MeasurementSpecs []document.AttributeEntry
	StyleSpecs       []document.AttributeEntry
	Features         []document.AttributeEntry
	UserGuide        []document.AttributeEntry
	ItemDetails      []document.AttributeEntry
}

// Section returns the attribute list of v for s.
func (v *Variant) Section(s document.Section) []document.AttributeEntry {
	if p := v.sectionPtr(s); p != nil {
		return *p
	}
	return nil
}

// SetSection replaces the attribute list of v for s.
func (v *Variant) SetSection(s document.Section, entries []document.AttributeEntry) {
	if p := v.sectionPtr(s); p != nil {
		*p = entries
	}
}

func (v *Variant) sectionPtr(s document.Section) *[]document.AttributeEntry {
	switch s {
	case document.SectionSpecifications:
		return &v.Specifications
	case document.SectionMeasurementSpecs:
		return &v.MeasurementSpecs
	case document.SectionStyleSpecs:
		return &v.StyleSpecs
	case document.SectionFeatures:
		return &v.Features
	case document.SectionUserGuide:
		return &v.UserGuide
	case document.SectionItemDetails:
		return &v.ItemDetails
	}
	return nil
}

// Product is the working copy of the product being edited.
type Product struct {
	ID               *int64
	Title            string
	Slug             string
	SKU              string
	ShortDescription string
	Description      string
	CategoryID       *int64
	SubcategoryID    *int64
	MaterialID       *int64
	Brand            string
	Dimensions       string
	Weight           string
	Warranty         string
	AssemblyRequired bool
	DeliveryEstimate string
	IsFeatured       bool
	IsActive         bool
	MarketingOffers  []string
	BulletPoints     []document.BulletPoint
	Recommendations  []int64
	Variants         []Variant
}

// Clone returns a deep copy of p that shares no memory with it.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	return mustCopy(p)
}

// Clone returns a deep copy of v.
func (v Variant) Clone() Variant {
	return *mustCopy(&v)
}

// mustCopy deep-copies working-copy data. These types hold only plain values,
// pointers and slices, so a copy error is a programming error.
func mustCopy[T any](src *T) *T {
	c, err := deep.Copy(src)
	if err != nil {
		panic(fmt.Sprintf("editor: deep copy %T: %v", src, err))
	}
	return c
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

// FromDocument hydrates a working copy from a catalog API document.
func FromDocument(doc *document.ProductDocument) *Product {
	if doc == nil {
		return nil
	}
	id := doc.ID
	p := &Product{
		ID:               &id,
		Title:            doc.Title,
		Slug:             doc.Slug,
		SKU:              doc.SKU,
		ShortDescription: doc.ShortDescription,
		Description:      doc.Description,
		CategoryID:       cloneID(doc.CategoryID),
		SubcategoryID:    cloneID(doc.SubcategoryID),
		MaterialID:       cloneID(doc.MaterialID),
		Brand:            doc.Brand,
		Dimensions:       doc.Dimensions,
		Weight:           formatNumber(doc.Weight),
		Warranty:         doc.Warranty,
		AssemblyRequired: doc.AssemblyRequired,
		DeliveryEstimate: doc.DeliveryEstimate,
		IsFeatured:       doc.IsFeatured,
		IsActive:         doc.IsActive,
		MarketingOffers:  slices.Clone(doc.MarketingOffers),
		Recommendations:  slices.Clone(doc.Recommendations),
		Variants:         make([]Variant, 0, len(doc.Variants)),
	}
	for _, b := range doc.BulletPoints {
		b.ID = cloneID(b.ID)
		p.BulletPoints = append(p.BulletPoints, b)
	}
	for i := range doc.Variants {
		p.Variants = append(p.Variants, variantFromDocument(&doc.Variants[i]))
	}
	return p
}

func variantFromDocument(d *document.VariantDocument) Variant {
	active, inStock := d.IsActive, d.InStock
	v := Variant{
		ID:             cloneID(d.ID),
		ColorID:        cloneID(d.ColorID),
		SKU:            d.SKU,
		Size:           d.Size,
		Pattern:        d.Pattern,
		Quality:        d.Quality,
		Price:          formatNumber(d.Price),
		DiscountPrice:  formatNumber(d.DiscountPrice),
		Stock:          strconv.Itoa(d.Stock),
		IsActive:       &active,
		InStock:        &inStock,
		SubcategoryIDs: slices.Clone(d.SubcategoryIDs),
	}
	if d.MainImage != nil {
		v.MainImage = *d.MainImage
	}
	if d.VideoURL != nil {
		v.VideoURL = *d.VideoURL
	}
	images := slices.Clone(d.Images)
	slices.SortStableFunc(images, func(a, b document.ImageDocument) int { return cmp.Compare(a.SortOrder, b.SortOrder) })
	for _, img := range images {
		v.Images = append(v.Images, Image{ID: cloneID(img.ID), URL: img.URL})
	}
	for _, s := range document.Sections {
		docs := d.Section(s)
		entries := make([]document.AttributeEntry, 0, len(docs))
		for _, a := range docs {
			active := a.IsActive
			entries = append(entries, document.AttributeEntry{
				ID:        cloneID(a.ID),
				Name:      a.Name,
				Value:     a.Value,
				SortOrder: a.SortOrder,
				IsActive:  &active,
			})
		}
		v.SetSection(s, entries)
	}
	return v
}

func formatNumber(f *float64) string {
	if f == nil {
		return ""
	}
	return decimal.NewFromFloat(*f).String()
}
