// internal/domain/product/category_service.go
package product

import (
	"fmt"

	"gorm.io/gorm"
)

// CategoryService handles category management
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new category service
func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// ListCategories returns all categories ordered by name
func (s *CategoryService) ListCategories() ([]Category, error) {
	var categories []Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve categories: %w", err)
	}
	return categories, nil
}

// CreateCategory creates a category with the given name
func (s *CategoryService) CreateCategory(name string) (*Category, error) {
	category := Category{Name: name}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

// UpdateCategory renames a category
func (s *CategoryService) UpdateCategory(id, name string) (*Category, error) {
	var category Category
	if err := s.db.Where("id = ?", id).First(&category).Error; err != nil {
		return nil, fmt.Errorf("category not found")
	}

	if err := s.db.Model(&category).Update("name", name).Error; err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return &category, nil
}

// DeleteCategory soft-deletes a category; its products keep a dangling
// category_id until reassigned
func (s *CategoryService) DeleteCategory(id string) error {
	result := s.db.Where("id = ?", id).Delete(&Category{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("category not found")
	}
	return nil
}
