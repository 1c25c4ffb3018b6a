package models

// DefaultCategoryColor is assigned when a category is created without a color.
const DefaultCategoryColor = "#3B82F6"

// CategoryModel represents a post category.
// Slug is derived from Name and kept in sync on rename.
type CategoryModel struct {
	Base
	Name        string `json:"name"        gorm:"uniqueIndex;not null"`
	Description string `json:"description"`
	Slug        string `json:"slug"        gorm:"uniqueIndex;not null"`
	Color       string `json:"color"       gorm:"default:'#3B82F6'"`

	Posts []PostModel `json:"posts,omitempty" gorm:"foreignKey:CategoryID"`
}

func (CategoryModel) TableName() string { return "categories" }
