package models

import (
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog.
// Prices live on the variants; the product carries the descriptive fields.
type Product struct {
	ID               int64  `gorm:"primaryKey"`
	Title            string `gorm:"not null"`
	Slug             string `gorm:"index"`
	SKU              string `gorm:"column:sku"`
	ShortDescription string
	Description      string
	CategoryID       *int64    `gorm:"index"`
	Category         *Category `gorm:"foreignKey:CategoryID"`
	SubcategoryID    *int64
	MaterialID       *int64
	Brand            string
	Dimensions       string
	Weight           decimal.NullDecimal `gorm:"type:decimal(10,3)"`
	Warranty         string
	AssemblyRequired bool `gorm:"not null"`
	DeliveryEstimate string
	IsFeatured       bool             `gorm:"not null"`
	IsActive         bool             `gorm:"not null"`
	MarketingOffers  pq.StringArray   `gorm:"type:text[]"`
	BulletPoints     []BulletPoint    `gorm:"foreignKey:ProductID"`
	Recommendations  []Recommendation `gorm:"foreignKey:ProductID"`
	Variants         []Variant        `gorm:"foreignKey:ProductID"`
}

func (p *Product) TableName() string {
	return "products"
}

// Variant is a purchasable version of a product.
type Variant struct {
	ID             int64 `gorm:"primaryKey"`
	ProductID      int64 `gorm:"not null;index"`
	ColorID        *int64
	SKU            string `gorm:"column:sku"`
	Size           string
	Pattern        string
	Quality        string
	Price          decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	DiscountPrice  decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	Stock          int                 `gorm:"not null"`
	IsActive       bool                `gorm:"not null"`
	InStock        bool                `gorm:"not null"`
	SubcategoryIDs pq.Int64Array       `gorm:"type:bigint[]"`
	MainImage      *string
	VideoURL       *string
	Images         []VariantImage     `gorm:"foreignKey:VariantID"`
	Attributes     []VariantAttribute `gorm:"foreignKey:VariantID"`
}

func (v *Variant) TableName() string {
	return "product_variants"
}

type VariantImage struct {
	ID        int64  `gorm:"primaryKey"`
	VariantID int64  `gorm:"not null;index"`
	URL       string `gorm:"column:url;not null"`
	SortOrder int    `gorm:"not null"`
}

func (i *VariantImage) TableName() string {
	return "variant_images"
}

// VariantAttribute is one row of a variant attribute section. All six
// sections share the table and are told apart by Section.
type VariantAttribute struct {
	ID        int64  `gorm:"primaryKey"`
	VariantID int64  `gorm:"not null;index:idx_attribute_variant_section"`
	Section   string `gorm:"size:32;not null;index:idx_attribute_variant_section"`
	Name      string
	Value     string
	SortOrder int  `gorm:"not null"`
	IsActive  bool `gorm:"not null"`
}

func (a *VariantAttribute) TableName() string {
	return "variant_attributes"
}

type BulletPoint struct {
	ID        int64  `gorm:"primaryKey"`
	ProductID int64  `gorm:"not null;index"`
	Text      string `gorm:"not null"`
	SortOrder int    `gorm:"not null"`
}

func (b *BulletPoint) TableName() string {
	return "product_bullet_points"
}

// Recommendation links a product to a cross-sell product.
type Recommendation struct {
	ID                   int64 `gorm:"primaryKey"`
	ProductID            int64 `gorm:"not null;index"`
	RecommendedProductID int64 `gorm:"not null"`
	SortOrder            int   `gorm:"not null"`
}

func (r *Recommendation) TableName() string {
	return "product_recommendations"
}

// AllModels lists every table for migrations.
func AllModels() []any {
	return []any{
		&Category{},
		&CategoryTemplate{},
		&Product{},
		&Variant{},
		&VariantImage{},
		&VariantAttribute{},
		&BulletPoint{},
		&Recommendation{},
	}
}
