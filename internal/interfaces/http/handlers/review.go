// internal/interfaces/http/handlers/review.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/storefront-backend/internal/domain/review"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

// ReviewHandler handles product review endpoints
type ReviewHandler struct {
	reviewService *review.Service
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{
		reviewService: review.NewService(db),
	}
}

// ListProductReviews handles GET /products/:id/reviews
func (h *ReviewHandler) ListProductReviews(c *gin.Context) {
	productID := c.Param("id")

	reviews, err := h.reviewService.ListByProduct(productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve reviews",
		})
		return
	}

	summary, err := h.reviewService.GetRatingSummary(productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve rating summary",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"reviews": reviews,
			"summary": summary,
		},
	})
}

// CreateReview handles POST /reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	var req review.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	r, err := h.reviewService.Create(userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Review submitted",
		"data":    r,
	})
}

// UpdateReview handles PUT /reviews/:id
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	var req review.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	r, err := h.reviewService.Update(c.Param("id"), userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Review updated",
		"data":    r,
	})
}

// DeleteReview handles DELETE /reviews/:id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	if err := h.reviewService.Delete(c.Param("id"), userID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Review deleted",
	})
}

// MarkReviewHelpful handles POST /reviews/:id/helpful
func (h *ReviewHandler) MarkReviewHelpful(c *gin.Context) {
	if err := h.reviewService.MarkHelpful(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Review marked helpful",
	})
}
