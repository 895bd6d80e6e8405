// internal/domain/order/entity.go
package order

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order status values
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// Payment status values
const (
	PaymentStatusPending   = "pending"
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusFailed    = "failed"
)

// Order represents a placed order with its item snapshots
type Order struct {
	ID              string         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          string         `gorm:"type:uuid;not null;index" json:"user_id"`
	Status          string         `gorm:"not null;default:'pending';size:50" json:"status"`
	Subtotal        float64        `gorm:"not null" json:"subtotal"`
	ShippingCost    float64        `gorm:"not null" json:"shipping_cost"`
	TaxAmount       float64        `gorm:"not null" json:"tax_amount"`
	Total           float64        `gorm:"not null" json:"total"`
	PaymentStatus   string         `gorm:"size:50" json:"payment_status"`
	PaymentMethod   string         `gorm:"size:50" json:"payment_method"`
	PaymentIntentID string         `gorm:"size:255" json:"payment_intent_id"`
	ShippingAddress string         `gorm:"size:500" json:"shipping_address"`
	Notes           string         `gorm:"size:1000" json:"notes"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items,omitempty"`
}

// TableName overrides the table name
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate assigns the order ID
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

// OrderItem is a denormalized snapshot of one purchased line; name and
// price are captured at order time and never re-read from the catalog
type OrderItem struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   string    `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID string    `gorm:"type:uuid;not null;index" json:"product_id"`
	Name      string    `gorm:"size:255" json:"name"`
	Price     float64   `gorm:"not null" json:"price"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name
func (OrderItem) TableName() string {
	return "order_items"
}

// BeforeCreate assigns the item ID
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}
