package catalog

import (
	"fmt"
	"math"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/mytheresa/catalog-editor/document"
	"github.com/mytheresa/catalog-editor/models"
)

// toDocument maps a stored product to the shape the editor consumes.
func toDocument(p *models.Product) document.ProductDocument {
	doc := document.ProductDocument{
		ID:               p.ID,
		Title:            p.Title,
		Slug:             p.Slug,
		SKU:              p.SKU,
		ShortDescription: p.ShortDescription,
		Description:      p.Description,
		CategoryID:       p.CategoryID,
		SubcategoryID:    p.SubcategoryID,
		MaterialID:       p.MaterialID,
		Brand:            p.Brand,
		Dimensions:       p.Dimensions,
		Weight:           nullFloat(p.Weight),
		Warranty:         p.Warranty,
		AssemblyRequired: p.AssemblyRequired,
		DeliveryEstimate: p.DeliveryEstimate,
		IsFeatured:       p.IsFeatured,
		IsActive:         p.IsActive,
		MarketingOffers:  []string(p.MarketingOffers),
		BulletPoints:     make([]document.BulletPoint, len(p.BulletPoints)),
		Recommendations:  make([]int64, len(p.Recommendations)),
		Variants:         make([]document.VariantDocument, len(p.Variants)),
	}
	if doc.MarketingOffers == nil {
		doc.MarketingOffers = []string{}
	}
	for i, b := range p.BulletPoints {
		doc.BulletPoints[i] = document.BulletPoint{ID: ptr(b.ID), Text: b.Text, SortOrder: b.SortOrder}
	}
	for i, r := range p.Recommendations {
		doc.Recommendations[i] = r.RecommendedProductID
	}
	for i := range p.Variants {
		doc.Variants[i] = variantDocument(&p.Variants[i])
	}
	return doc
}

func variantDocument(v *models.Variant) document.VariantDocument {
	doc := document.VariantDocument{
		VariantCore: document.VariantCore{
			ID:             ptr(v.ID),
			ColorID:        v.ColorID,
			SKU:            v.SKU,
			Size:           v.Size,
			Pattern:        v.Pattern,
			Quality:        v.Quality,
			Price:          nullFloat(v.Price),
			Stock:          v.Stock,
			IsActive:       v.IsActive,
			InStock:        v.InStock,
			SubcategoryIDs: []int64(v.SubcategoryIDs),
		},
		DiscountPrice: nullFloat(v.DiscountPrice),
		Images:        make([]document.ImageDocument, len(v.Images)),
		MainImage:     v.MainImage,
		VideoURL:      v.VideoURL,
	}
	if doc.SubcategoryIDs == nil {
		doc.SubcategoryIDs = []int64{}
	}
	for i, img := range v.Images {
		doc.Images[i] = document.ImageDocument{ID: ptr(img.ID), URL: img.URL, SortOrder: img.SortOrder}
	}

	sections := make(map[document.Section][]document.AttributeDocument, len(document.Sections))
	for _, a := range v.Attributes {
		s := document.Section(a.Section)
		sections[s] = append(sections[s], document.AttributeDocument{
			ID: ptr(a.ID), Name: a.Name, Value: a.Value, SortOrder: a.SortOrder, IsActive: a.IsActive,
		})
	}
	section := func(s document.Section) []document.AttributeDocument {
		if sections[s] == nil {
			return []document.AttributeDocument{}
		}
		return sections[s]
	}
	doc.Specifications = section(document.SectionSpecifications)
	doc.MeasurementSpecs = section(document.SectionMeasurementSpecs)
	doc.StyleSpecs = section(document.SectionStyleSpecs)
	doc.Features = section(document.SectionFeatures)
	doc.UserGuide = section(document.SectionUserGuide)
	doc.ItemDetails = section(document.SectionItemDetails)
	return doc
}

// productFromRequest builds a new product from a create call.
func productFromRequest(req *document.SaveRequest) (*models.Product, error) {
	p := &models.Product{IsActive: true}
	for name, raw := range req.Fields {
		if _, _, err := applyField(p, name, raw); err != nil {
			return nil, err
		}
	}
	for _, in := range req.Variants {
		p.Variants = append(p.Variants, variantFromInput(in))
	}
	if req.BulletPoints != nil {
		p.BulletPoints = bulletPoints(*req.BulletPoints)
	}
	if req.Recommendations != nil {
		p.Recommendations = recommendations(*req.Recommendations)
	}
	return p, nil
}

// patchFromRequest translates an update call into a repository patch.
func patchFromRequest(req *document.SaveRequest) (models.ProductPatch, error) {
	patch := models.ProductPatch{Columns: make(map[string]any, len(req.Fields))}
	var scratch models.Product
	for name, raw := range req.Fields {
		column, value, err := applyField(&scratch, name, raw)
		if err != nil {
			return models.ProductPatch{}, err
		}
		patch.Columns[column] = value
	}
	for _, in := range req.Variants {
		patch.Variants = append(patch.Variants, models.VariantPatch{Variant: variantFromInput(in), Full: in.Full()})
	}
	if req.BulletPoints != nil {
		bullets := bulletPoints(*req.BulletPoints)
		patch.BulletPoints = &bullets
	}
	if req.Recommendations != nil {
		recs := recommendations(*req.Recommendations)
		patch.Recommendations = &recs
	}
	return patch, nil
}

// applyField decodes one JSON field onto p and returns the column and value
// to write.
func applyField(p *models.Product, name string, raw any) (string, any, error) {
	var err error
	switch name {
	case document.FieldTitle:
		p.Title, err = asString(name, raw)
		return name, p.Title, err
	case document.FieldSlug:
		p.Slug, err = asString(name, raw)
		return name, p.Slug, err
	case document.FieldSKU:
		p.SKU, err = asString(name, raw)
		return name, p.SKU, err
	case document.FieldShortDescription:
		p.ShortDescription, err = asString(name, raw)
		return name, p.ShortDescription, err
	case document.FieldDescription:
		p.Description, err = asString(name, raw)
		return name, p.Description, err
	case document.FieldBrand:
		p.Brand, err = asString(name, raw)
		return name, p.Brand, err
	case document.FieldDimensions:
		p.Dimensions, err = asString(name, raw)
		return name, p.Dimensions, err
	case document.FieldWarranty:
		p.Warranty, err = asString(name, raw)
		return name, p.Warranty, err
	case document.FieldDeliveryEstimate:
		p.DeliveryEstimate, err = asString(name, raw)
		return name, p.DeliveryEstimate, err
	case document.FieldCategoryID:
		p.CategoryID, err = asID(name, raw)
		return name, p.CategoryID, err
	case document.FieldSubcategoryID:
		p.SubcategoryID, err = asID(name, raw)
		return name, p.SubcategoryID, err
	case document.FieldMaterialID:
		p.MaterialID, err = asID(name, raw)
		return name, p.MaterialID, err
	case document.FieldWeight:
		p.Weight, err = asDecimal(name, raw)
		return name, p.Weight, err
	case document.FieldAssemblyRequired:
		p.AssemblyRequired, err = asBool(name, raw)
		return name, p.AssemblyRequired, err
	case document.FieldIsFeatured:
		p.IsFeatured, err = asBool(name, raw)
		return name, p.IsFeatured, err
	case document.FieldIsActive:
		p.IsActive, err = asBool(name, raw)
		return name, p.IsActive, err
	case document.FieldMarketingOffers:
		p.MarketingOffers, err = asStrings(name, raw)
		return name, p.MarketingOffers, err
	}
	return "", nil, fmt.Errorf("unknown field %q", name)
}

func variantFromInput(in document.VariantInput) models.Variant {
	v := models.Variant{
		ColorID:        in.ColorID,
		SKU:            in.SKU,
		Size:           in.Size,
		Pattern:        in.Pattern,
		Quality:        in.Quality,
		Price:          nullDecimal(in.Price),
		DiscountPrice:  nullDecimal(in.DiscountPrice),
		Stock:          in.Stock,
		IsActive:       in.IsActive,
		InStock:        in.InStock,
		SubcategoryIDs: pq.Int64Array(in.SubcategoryIDs),
		MainImage:      in.MainImage,
		VideoURL:       in.VideoURL,
	}
	if in.ID != nil {
		v.ID = *in.ID
	}
	if in.Images != nil {
		for _, img := range *in.Images {
			v.Images = append(v.Images, models.VariantImage{URL: img.URL, SortOrder: img.SortOrder})
		}
	}
	for _, s := range document.Sections {
		entries := in.Section(s)
		if entries == nil {
			continue
		}
		for _, a := range *entries {
			v.Attributes = append(v.Attributes, models.VariantAttribute{
				Section: string(s), Name: a.Name, Value: a.Value, SortOrder: a.SortOrder, IsActive: a.IsActive,
			})
		}
	}
	return v
}

func bulletPoints(in []document.BulletPoint) []models.BulletPoint {
	out := make([]models.BulletPoint, len(in))
	for i, b := range in {
		out[i] = models.BulletPoint{Text: b.Text, SortOrder: b.SortOrder}
	}
	return out
}

func recommendations(ids []int64) []models.Recommendation {
	out := make([]models.Recommendation, len(ids))
	for i, id := range ids {
		out[i] = models.Recommendation{RecommendedProductID: id, SortOrder: i}
	}
	return out
}

func asString(name string, raw any) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	}
	return "", fmt.Errorf("%s: expected a string", name)
}

func asID(name string, raw any) (*int64, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case float64:
		if v > 0 && v == math.Trunc(v) {
			id := int64(v)
			return &id, nil
		}
	}
	return nil, fmt.Errorf("%s: expected a positive integer id", name)
}

func asDecimal(name string, raw any) (decimal.NullDecimal, error) {
	switch v := raw.(type) {
	case nil:
		return decimal.NullDecimal{}, nil
	case float64:
		return decimal.NewNullDecimal(decimal.NewFromFloat(v)), nil
	}
	return decimal.NullDecimal{}, fmt.Errorf("%s: expected a number", name)
}

func asBool(name string, raw any) (bool, error) {
	if v, ok := raw.(bool); ok {
		return v, nil
	}
	return false, fmt.Errorf("%s: expected a boolean", name)
}

func asStrings(name string, raw any) (pq.StringArray, error) {
	if raw == nil {
		return pq.StringArray{}, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected a list of strings", name)
	}
	out := make(pq.StringArray, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s: expected a list of strings", name)
		}
		out = append(out, s)
	}
	return out, nil
}

func nullDecimal(f *float64) decimal.NullDecimal {
	if f == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(*f))
}

func nullFloat(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	f := d.Decimal.InexactFloat64()
	return &f
}

func ptr[T any](v T) *T {
	return &v
}
