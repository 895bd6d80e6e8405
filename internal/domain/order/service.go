// internal/domain/order/service.go
package order

import (
	"fmt"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/commerce"
	"gorm.io/gorm"
)

// Shipping is free above this subtotal, flat-rate otherwise
const (
	freeShippingThreshold = 100.0
	flatShippingRate      = 10.0
	taxRate               = 0.08
)

// Service handles order business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CheckoutRequest represents order placement data supplied at checkout
type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"required"`
	PaymentIntentID string `json:"payment_intent_id" binding:"required"`
	Notes           string `json:"notes"`
}

// Totals breaks down an order's charges
type Totals struct {
	Subtotal     float64 `json:"subtotal"`
	ShippingCost float64 `json:"shipping_cost"`
	TaxAmount    float64 `json:"tax_amount"`
	Total        float64 `json:"total"`
}

// CalculateTotals derives the charge breakdown for a cart subtotal:
// free shipping above the threshold, flat rate below, tax on the subtotal
func CalculateTotals(subtotal float64) Totals {
	shipping := flatShippingRate
	if subtotal > freeShippingThreshold {
		shipping = 0
	}
	tax := subtotal * taxRate

	return Totals{
		Subtotal:     subtotal,
		ShippingCost: shipping,
		TaxAmount:    tax,
		Total:        subtotal + shipping + tax,
	}
}

// CreateFromCart places an order for the given cart lines, snapshotting
// each line into an order item. The caller clears the cart afterwards.
func (s *Service) CreateFromCart(userID string, lines []commerce.CartLine, req *CheckoutRequest) (*Order, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	var subtotal float64
	for _, line := range lines {
		subtotal += line.UnitPrice * float64(line.Quantity)
	}
	totals := CalculateTotals(subtotal)

	newOrder := Order{
		UserID:          userID,
		Status:          StatusProcessing,
		Subtotal:        totals.Subtotal,
		ShippingCost:    totals.ShippingCost,
		TaxAmount:       totals.TaxAmount,
		Total:           totals.Total,
		PaymentStatus:   PaymentStatusSucceeded,
		PaymentMethod:   "card",
		PaymentIntentID: req.PaymentIntentID,
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newOrder).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		items := make([]OrderItem, len(lines))
		for i, line := range lines {
			items[i] = OrderItem{
				OrderID:   newOrder.ID,
				ProductID: line.ProductID,
				Name:      line.Name,
				Price:     line.UnitPrice,
				Quantity:  line.Quantity,
			}
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}

		newOrder.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &newOrder, nil
}

// ListByUser returns the user's orders, newest first
func (s *Service) ListByUser(userID string) ([]Order, error) {
	var orders []Order
	err := s.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}
	return orders, nil
}

// GetByID returns one order. Non-admin callers only see their own.
func (s *Service) GetByID(id, userID string, isAdmin bool) (*Order, error) {
	var ord Order
	query := s.db.Preload("Items").Where("id = ?", id)
	if !isAdmin {
		query = query.Where("user_id = ?", userID)
	}

	if err := query.First(&ord).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}
	return &ord, nil
}

// ListAll returns every order for the admin back-office, newest first
func (s *Service) ListAll() ([]Order, error) {
	var orders []Order
	err := s.db.Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus moves an order to a new fulfillment status
func (s *Service) UpdateStatus(id, status string) (*Order, error) {
	if !isValidStatus(status) {
		return nil, fmt.Errorf("invalid order status: %s", status)
	}

	var ord Order
	if err := s.db.Where("id = ?", id).First(&ord).Error; err != nil {
		return nil, fmt.Errorf("order not found")
	}

	if err := s.db.Model(&ord).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return s.GetByID(id, "", true)
}

func isValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}
