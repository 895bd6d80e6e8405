// internal/domain/review/service.go
package review

import (
	"fmt"

	"gorm.io/gorm"
)

// Service handles product review logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new review service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreateReviewRequest represents review submission
type CreateReviewRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

// UpdateReviewRequest represents review edits by the author
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

// RatingSummary aggregates a product's ratings
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// ListByProduct returns a product's reviews, newest first
func (s *Service) ListByProduct(productID string) ([]Review, error) {
	var reviews []Review
	err := s.db.Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reviews: %w", err)
	}
	return reviews, nil
}

// Create adds a review by the given user
func (s *Service) Create(userID string, req *CreateReviewRequest) (*Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}

	rev := Review{
		ProductID: req.ProductID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.db.Create(&rev).Error; err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return &rev, nil
}

// Update edits a review; only its author may do so
func (s *Service) Update(id, userID string, req *UpdateReviewRequest) (*Review, error) {
	var rev Review
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&rev).Error; err != nil {
		return nil, fmt.Errorf("review not found")
	}

	updates := map[string]interface{}{}
	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			return nil, fmt.Errorf("rating must be between 1 and 5")
		}
		updates["rating"] = *req.Rating
	}
	if req.Comment != nil {
		updates["comment"] = *req.Comment
	}

	if len(updates) > 0 {
		if err := s.db.Model(&rev).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update review: %w", err)
		}
	}
	return &rev, nil
}

// Delete removes a review; only its author may do so
func (s *Service) Delete(id, userID string) error {
	result := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&Review{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("review not found")
	}
	return nil
}

// MarkHelpful increments a review's helpful counter
func (s *Service) MarkHelpful(id string) error {
	result := s.db.Model(&Review{}).
		Where("id = ?", id).
		UpdateColumn("helpful_count", gorm.Expr("helpful_count + 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to mark review helpful: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("review not found")
	}
	return nil
}

// GetRatingSummary returns the product's average rating and review count
func (s *Service) GetRatingSummary(productID string) (*RatingSummary, error) {
	var summary RatingSummary
	err := s.db.Model(&Review{}).
		Where("product_id = ?", productID).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Scan(&summary).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	return &summary, nil
}
