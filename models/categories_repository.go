package models

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrCategoryNotFound is returned when a category is not found.
var ErrCategoryNotFound = errors.New("category not found")

type CategoriesRepository struct {
	db *gorm.DB
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{db: db}
}

func (r *CategoriesRepository) GetAllCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := r.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory inserts category and the templates it carries.
func (r *CategoriesRepository) CreateCategory(ctx context.Context, category *Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// GetTemplates returns one page of a category's templates ordered by section
// and sort order, with the total count.
func (r *CategoriesRepository) GetTemplates(ctx context.Context, categoryID int64, offset, limit int) ([]CategoryTemplate, int64, error) {
	if err := r.exists(ctx, categoryID); err != nil {
		return nil, 0, err
	}

	var templates []CategoryTemplate
	var total int64
	query := r.db.WithContext(ctx).Model(&CategoryTemplate{}).Where("category_id = ?", categoryID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("section").Order("sort_order").Order("id").
		Offset(offset).Limit(limit).Find(&templates).Error; err != nil {
		return nil, 0, err
	}
	return templates, total, nil
}

// GetDefaults returns the templates flagged as defaults for a category.
func (r *CategoriesRepository) GetDefaults(ctx context.Context, categoryID int64) ([]CategoryTemplate, error) {
	if err := r.exists(ctx, categoryID); err != nil {
		return nil, err
	}

	var templates []CategoryTemplate
	if err := r.db.WithContext(ctx).
		Where("category_id = ? AND is_default = ?", categoryID, true).
		Order("section").Order("sort_order").Order("id").
		Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *CategoriesRepository) exists(ctx context.Context, id int64) error {
	var c Category
	if err := r.db.WithContext(ctx).Select("id").First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}
