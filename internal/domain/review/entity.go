// internal/domain/review/entity.go
package review

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is one customer's rating of a product
type Review struct {
	ID           string         `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID    string         `gorm:"type:uuid;not null;index" json:"product_id"`
	UserID       string         `gorm:"type:uuid;not null;index" json:"user_id"`
	Rating       int            `gorm:"not null" json:"rating"`
	Comment      string         `gorm:"type:text" json:"comment"`
	HelpfulCount int            `gorm:"default:0" json:"helpful_count"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Review) TableName() string {
	return "reviews"
}

// BeforeCreate assigns the review ID
func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
