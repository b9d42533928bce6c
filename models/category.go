package models

// Category represents a product category.
// It includes a unique code, a human-readable name and the attribute
// templates its products are edited against.
type Category struct {
	ID        int64              `gorm:"primaryKey"`
	Code      string             `gorm:"uniqueIndex;not null"`
	Name      string             `gorm:"not null"`
	Templates []CategoryTemplate `gorm:"foreignKey:CategoryID"`
}

func (c *Category) TableName() string {
	return "categories"
}

// CategoryTemplate is one recommended field of a category. Default templates
// are also injected into new variants.
type CategoryTemplate struct {
	ID         int64  `gorm:"primaryKey"`
	CategoryID int64  `gorm:"not null;index:idx_template_category_section"`
	Section    string `gorm:"size:32;not null;index:idx_template_category_section"`
	FieldName  string `gorm:"not null"`
	SortOrder  int    `gorm:"not null"`
	IsDefault  bool   `gorm:"not null"`
}

func (t *CategoryTemplate) TableName() string {
	return "category_spec_templates"
}
