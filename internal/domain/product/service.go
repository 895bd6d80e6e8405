// internal/domain/product/service.go
package product

import (
	"fmt"

	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles catalog business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new product service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ListProductsRequest represents catalog listing filters
type ListProductsRequest struct {
	CategoryID string
	Search     string
	Page       int
	Limit      int
}

// ListProductsResponse represents a page of catalog items
type ListProductsResponse struct {
	Products   []Product `json:"products"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}

// CreateProductRequest represents admin product creation
type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	ImageURL    string  `json:"image_url"`
	CategoryID  *string `json:"category_id"`
	Stock       int     `json:"stock" binding:"gte=0"`
}

// UpdateProductRequest represents admin product updates; nil fields are untouched
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"image_url"`
	CategoryID  *string  `json:"category_id"`
	Stock       *int     `json:"stock"`
	IsActive    *bool    `json:"is_active"`
}

// ListProducts returns active products with optional category and text filters
func (s *Service) ListProducts(req *ListProductsRequest) (*ListProductsResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	query := s.db.Model(&Product{}).Where("is_active = ?", true)

	if req.CategoryID != "" {
		query = query.Where("category_id = ?", req.CategoryID)
	}

	if req.Search != "" {
		pattern := "%" + req.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	var products []Product
	offset := (req.Page - 1) * req.Limit
	err := query.Preload("Category").
		Order("created_at DESC").
		Offset(offset).Limit(req.Limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))

	return &ListProductsResponse{
		Products:   products,
		Total:      total,
		Page:       req.Page,
		Limit:      req.Limit,
		TotalPages: totalPages,
	}, nil
}

// GetProduct returns one product by ID
func (s *Service) GetProduct(id string) (*Product, error) {
	var prod Product
	err := s.db.Preload("Category").Where("id = ?", id).First(&prod).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	return &prod, nil
}

// CreateProduct creates a new catalog item
func (s *Service) CreateProduct(req *CreateProductRequest) (*Product, error) {
	if req.CategoryID != nil {
		var category Category
		if err := s.db.Where("id = ?", *req.CategoryID).First(&category).Error; err != nil {
			return nil, fmt.Errorf("category not found")
		}
	}

	prod := Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
		Stock:       req.Stock,
		IsActive:    true,
	}

	if err := s.db.Create(&prod).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return &prod, nil
}

// UpdateProduct applies the non-nil fields of the request
func (s *Service) UpdateProduct(id string, req *UpdateProductRequest) (*Product, error) {
	var prod Product
	if err := s.db.Where("id = ?", id).First(&prod).Error; err != nil {
		return nil, fmt.Errorf("product not found")
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("price cannot be negative")
		}
		updates["price"] = *req.Price
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.CategoryID != nil {
		var category Category
		if err := s.db.Where("id = ?", *req.CategoryID).First(&category).Error; err != nil {
			return nil, fmt.Errorf("category not found")
		}
		updates["category_id"] = *req.CategoryID
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, fmt.Errorf("stock cannot be negative")
		}
		updates["stock"] = *req.Stock
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(&prod).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	return s.GetProduct(id)
}

// DeleteProduct soft-deletes a catalog item
func (s *Service) DeleteProduct(id string) error {
	result := s.db.Where("id = ?", id).Delete(&Product{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product not found")
	}
	return nil
}
