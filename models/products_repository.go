package models

import (
	"context"
	"errors"
	"slices"

	"gorm.io/gorm"
)

type ProductsRepository struct {
	db *gorm.DB
}

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

type ProductFilters struct {
	CategoryCode  string
	PriceLessThan *float64
}

// ProductPatch is a partial update of a product. Columns holds only the
// product columns to overwrite. Variants is the complete variant list: saved
// variants missing from it are deleted. Nil lists are left untouched.
type ProductPatch struct {
	Columns         map[string]any
	Variants        []VariantPatch
	BulletPoints    *[]BulletPoint
	Recommendations *[]Recommendation
}

// VariantPatch carries one variant of a patch. Without Full only the core
// columns of a saved variant are written and its media and attributes stay.
type VariantPatch struct {
	Variant Variant
	Full    bool
}

var (
	variantCoreColumns = []string{
		"color_id", "sku", "size", "pattern", "quality", "price",
		"stock", "is_active", "in_stock", "subcategory_ids",
	}
	variantMediaColumns = []string{"discount_price", "main_image", "video_url"}
)

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

func (r *ProductsRepository) GetFilteredProducts(ctx context.Context, offset, limit int, filters ProductFilters) ([]Product, int64, error) {
	var products []Product
	var total int64

	query := r.db.WithContext(ctx).Model(&Product{}).
		Joins("LEFT JOIN categories ON categories.id = products.category_id")

	// Filter
	if filters.CategoryCode != "" {
		query = query.Where("categories.code = ?", filters.CategoryCode)
	}
	if filters.PriceLessThan != nil {
		query = query.Where(
			"EXISTS (SELECT 1 FROM product_variants pv WHERE pv.product_id = products.id AND pv.price < ?)",
			*filters.PriceLessThan,
		)
	}

	// Count total after filtering
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Apply pagination; gorm refuses Preload together with Count
	if err := query.
		Preload("Category").
		Preload("Variants", orderByID).
		Order("products.id").Offset(offset).Limit(limit).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *ProductsRepository) GetByID(ctx context.Context, id int64) (*Product, error) {
	return getProduct(r.db.WithContext(ctx), id)
}

// Create inserts p together with its variants, media, attributes, bullet
// points and recommendations.
func (r *ProductsRepository) Create(ctx context.Context, p *Product) (*Product, error) {
	var out *Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		var err error
		out, err = getProduct(tx, p.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies patch to product id in one transaction and returns the
// stored result.
func (r *ProductsRepository) Update(ctx context.Context, id int64, patch ProductPatch) (*Product, error) {
	var out *Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Product
		if err := tx.Select("id").First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		if len(patch.Columns) > 0 {
			if err := tx.Model(&Product{ID: id}).Updates(patch.Columns).Error; err != nil {
				return err
			}
		}
		if err := applyVariants(tx, id, patch.Variants); err != nil {
			return err
		}
		if patch.BulletPoints != nil {
			if err := tx.Where("product_id = ?", id).Delete(&BulletPoint{}).Error; err != nil {
				return err
			}
			if err := createAll(tx, *patch.BulletPoints, func(b *BulletPoint) { b.ID, b.ProductID = 0, id }); err != nil {
				return err
			}
		}
		if patch.Recommendations != nil {
			if err := tx.Where("product_id = ?", id).Delete(&Recommendation{}).Error; err != nil {
				return err
			}
			if err := createAll(tx, *patch.Recommendations, func(rec *Recommendation) { rec.ID, rec.ProductID = 0, id }); err != nil {
				return err
			}
		}

		var err error
		out, err = getProduct(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func applyVariants(tx *gorm.DB, productID int64, patches []VariantPatch) error {
	var savedIDs []int64
	if err := tx.Model(&Variant{}).Where("product_id = ?", productID).Pluck("id", &savedIDs).Error; err != nil {
		return err
	}

	kept := make([]int64, 0, len(patches))
	for _, p := range patches {
		if p.Variant.ID != 0 && slices.Contains(savedIDs, p.Variant.ID) {
			kept = append(kept, p.Variant.ID)
		}
	}
	var removed []int64
	for _, id := range savedIDs {
		if !slices.Contains(kept, id) {
			removed = append(removed, id)
		}
	}
	if len(removed) > 0 {
		if err := deleteVariantChildren(tx, removed); err != nil {
			return err
		}
		if err := tx.Delete(&Variant{}, removed).Error; err != nil {
			return err
		}
	}

	for _, p := range patches {
		v := p.Variant
		v.ProductID = productID
		if v.ID == 0 || !slices.Contains(savedIDs, v.ID) {
			v.ID = 0
			v.Images = slices.Clone(v.Images)
			for i := range v.Images {
				v.Images[i].ID = 0
			}
			v.Attributes = slices.Clone(v.Attributes)
			for i := range v.Attributes {
				v.Attributes[i].ID = 0
			}
			if err := tx.Create(&v).Error; err != nil {
				return err
			}
			continue
		}

		columns := variantCoreColumns
		if p.Full {
			columns = append(slices.Clone(variantCoreColumns), variantMediaColumns...)
		}
		images, attrs := v.Images, v.Attributes
		v.Images, v.Attributes = nil, nil
		if err := tx.Model(&Variant{ID: v.ID}).Select(columns).Updates(&v).Error; err != nil {
			return err
		}
		if !p.Full {
			continue
		}
		if err := deleteVariantChildren(tx, []int64{v.ID}); err != nil {
			return err
		}
		if err := createAll(tx, images, func(img *VariantImage) { img.ID, img.VariantID = 0, v.ID }); err != nil {
			return err
		}
		if err := createAll(tx, attrs, func(a *VariantAttribute) { a.ID, a.VariantID = 0, v.ID }); err != nil {
			return err
		}
	}
	return nil
}

func deleteVariantChildren(tx *gorm.DB, variantIDs []int64) error {
	if err := tx.Where("variant_id IN ?", variantIDs).Delete(&VariantImage{}).Error; err != nil {
		return err
	}
	return tx.Where("variant_id IN ?", variantIDs).Delete(&VariantAttribute{}).Error
}

// createAll inserts rows after prepare has pointed each one at its parent.
func createAll[T any](tx *gorm.DB, rows []T, prepare func(*T)) error {
	if len(rows) == 0 {
		return nil
	}
	out := slices.Clone(rows)
	for i := range out {
		prepare(&out[i])
	}
	return tx.Create(&out).Error
}

func getProduct(db *gorm.DB, id int64) (*Product, error) {
	var product Product
	if err := db.
		Preload("Category").
		Preload("Variants", orderByID).
		Preload("Variants.Images", orderBySortOrder).
		Preload("Variants.Attributes", orderBySortOrder).
		Preload("BulletPoints", orderBySortOrder).
		Preload("Recommendations", orderBySortOrder).
		First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err // Other DB error
	}
	return &product, nil
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

func orderBySortOrder(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order").Order("id")
}
