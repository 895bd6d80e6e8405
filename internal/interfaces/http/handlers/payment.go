// internal/interfaces/http/handlers/payment.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/payment"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

// PaymentHandler handles payment endpoints
type PaymentHandler struct {
	stripeService *payment.StripeService
	config        *config.Config
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(cfg *config.Config) *PaymentHandler {
	return &PaymentHandler{
		stripeService: payment.NewStripeService(cfg),
		config:        cfg,
	}
}

// CreatePaymentIntent handles POST /payment/intent
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	if _, exists := middleware.GetUserIDFromContext(c); !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	var req payment.CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if email, ok := middleware.GetUserEmailFromContext(c); ok && req.CustomerEmail == "" {
		req.CustomerEmail = email
	}

	resp, err := h.stripeService.CreatePaymentIntent(&req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to create payment intent",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"payment_intent_id": resp.PaymentIntentID,
			"client_secret":     resp.ClientSecret,
			"publishable_key":   h.config.Stripe.PublishableKey,
		},
	})
}
