package document

// Product scalar field keys, shared by the save patch and the catalog API.
const (
	FieldTitle            = "title"
	FieldSlug             = "slug"
	FieldSKU              = "sku"
	FieldShortDescription = "short_description"
	FieldDescription      = "description"
	FieldCategoryID       = "category_id"
	FieldSubcategoryID    = "subcategory_id"
	FieldMaterialID       = "material_id"
	FieldBrand            = "brand"
	FieldDimensions       = "dimensions"
	FieldWeight           = "weight"
	FieldWarranty         = "warranty"
	FieldAssemblyRequired = "assembly_required"
	FieldDeliveryEstimate = "delivery_estimate"
	FieldIsFeatured       = "is_featured"
	FieldIsActive         = "is_active"
	FieldMarketingOffers  = "marketing_offers"
)

// ProductFields lists every patchable scalar field of a product.
var ProductFields = []string{
	FieldTitle,
	FieldSlug,
	FieldSKU,
	FieldShortDescription,
	FieldDescription,
	FieldCategoryID,
	FieldSubcategoryID,
	FieldMaterialID,
	FieldBrand,
	FieldDimensions,
	FieldWeight,
	FieldWarranty,
	FieldAssemblyRequired,
	FieldDeliveryEstimate,
	FieldIsFeatured,
	FieldIsActive,
	FieldMarketingOffers,
}

// ImageDocument is one entry of a variant's ordered image list.
type ImageDocument struct {
	ID        *int64 `json:"id,omitempty"`
	URL       string `json:"url"`
	SortOrder int    `json:"sort_order"`
}

// BulletPoint is one marketing bullet shown on the product page.
type BulletPoint struct {
	ID        *int64 `json:"id,omitempty"`
	Text      string `json:"text"`
	SortOrder int    `json:"sort_order"`
}

// VariantCore carries the fields sent for every variant, changed or not.
type VariantCore struct {
	ID             *int64   `json:"id,omitempty"`
	ColorID        *int64   `json:"color_id"`
	SKU            string   `json:"sku"`
	Size           string   `json:"size"`
	Pattern        string   `json:"pattern"`
	Quality        string   `json:"quality"`
	Price          *float64 `json:"price"`
	Stock          int      `json:"stock"`
	IsActive       bool     `json:"is_active"`
	InStock        bool     `json:"in_stock"`
	SubcategoryIDs []int64  `json:"subcategory_ids"`
}

// VariantDocument is the full wire form of a variant.
type VariantDocument struct {
	VariantCore
	DiscountPrice    *float64            `json:"discount_price"`
	Images           []ImageDocument     `json:"images"`
	MainImage        *string             `json:"main_image"`
	VideoURL         *string             `json:"video_url"`
	Specifications   []AttributeDocument `json:"specifications"`
	MeasurementSpecs []AttributeDocument `json:"measurement_specs"`
	StyleSpecs       []AttributeDocument `json:"style_specs"`
	Features         []AttributeDocument `json:"features"`
	UserGuide        []AttributeDocument `json:"user_guide"`
	ItemDetails      []AttributeDocument `json:"item_details"`
}

// Section returns the attribute list of d for s.
func (d *VariantDocument) Section(s Section) []AttributeDocument {
	switch s {
	case SectionSpecifications:
		return d.Specifications
	case SectionMeasurementSpecs:
		return d.MeasurementSpecs
	case SectionStyleSpecs:
		return d.StyleSpecs
	case SectionFeatures:
		return d.Features
	case SectionUserGuide:
		return d.UserGuide
	case SectionItemDetails:
		return d.ItemDetails
	}
	return nil
}

// ProductDocument is the product shape returned by the catalog API.
type ProductDocument struct {
	ID               int64             `json:"id"`
	Title            string            `json:"title"`
	Slug             string            `json:"slug"`
	SKU              string            `json:"sku"`
	ShortDescription string            `json:"short_description"`
	Description      string            `json:"description"`
	CategoryID       *int64            `json:"category_id"`
	SubcategoryID    *int64            `json:"subcategory_id"`
	MaterialID       *int64            `json:"material_id"`
	Brand            string            `json:"brand"`
	Dimensions       string            `json:"dimensions"`
	Weight           *float64          `json:"weight"`
	Warranty         string            `json:"warranty"`
	AssemblyRequired bool              `json:"assembly_required"`
	DeliveryEstimate string            `json:"delivery_estimate"`
	IsFeatured       bool              `json:"is_featured"`
	IsActive         bool              `json:"is_active"`
	MarketingOffers  []string          `json:"marketing_offers"`
	BulletPoints     []BulletPoint     `json:"bullet_points"`
	Recommendations  []int64           `json:"recommendations"`
	Variants         []VariantDocument `json:"variants"`
}
