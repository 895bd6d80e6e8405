// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/your-org/storefront-backend/internal/domain/commerce"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/domain/review"
)

// Migration handles database migrations
type Migration struct {
	db  *gorm.DB
	log *logrus.Logger
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, log *logrus.Logger) *Migration {
	return &Migration{
		db:  db,
		log: log,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	m.log.Info("Running database auto-migrations")

	// Dependency order: referenced tables first
	models := []interface{}{
		&product.Category{},
		&product.Product{},

		&commerce.CartRow{},
		&commerce.WishlistRow{},

		&order.Order{},
		&order.OrderItem{},

		&review.Review{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	m.log.Info("Database auto-migrations completed")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_category_active ON products(category_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		"CREATE INDEX IF NOT EXISTS idx_cart_items_user ON cart_items(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_wishlist_items_user ON wishlist_items(user_id)",

		"CREATE INDEX IF NOT EXISTS idx_orders_user_status ON orders(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",

		"CREATE INDEX IF NOT EXISTS idx_reviews_product_created ON reviews(product_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_reviews_user ON reviews(user_id)",
	}

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			m.log.WithError(err).Warn("Failed to create index")
		}
	}

	return nil
}

// SeedInitialData inserts starter catalog data. Intended for development
// environments only; every insert is idempotent.
func (m *Migration) SeedInitialData() error {
	m.log.Info("Seeding initial data")

	if err := m.seedCategories(); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	if err := m.seedProducts(); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	return nil
}

func (m *Migration) seedCategories() error {
	names := []string{"Electronics", "Clothing", "Books", "Home & Garden"}

	for _, name := range names {
		var existing product.Category
		err := m.db.Where("name = ?", name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := m.db.Create(&product.Category{Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}

func (m *Migration) seedProducts() error {
	var count int64
	if err := m.db.Model(&product.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var electronics product.Category
	if err := m.db.Where("name = ?", "Electronics").First(&electronics).Error; err != nil {
		return err
	}
	var books product.Category
	if err := m.db.Where("name = ?", "Books").First(&books).Error; err != nil {
		return err
	}

	products := []product.Product{
		{
			Name:        "Wireless Headphones",
			Description: "Over-ear wireless headphones with active noise cancellation",
			Price:       129.99,
			ImageURL:    "https://images.example.com/products/wireless-headphones.jpg",
			CategoryID:  &electronics.ID,
			Stock:       50,
			IsActive:    true,
		},
		{
			Name:        "Mechanical Keyboard",
			Description: "Compact 75% mechanical keyboard with hot-swappable switches",
			Price:       89.50,
			ImageURL:    "https://images.example.com/products/mechanical-keyboard.jpg",
			CategoryID:  &electronics.ID,
			Stock:       35,
			IsActive:    true,
		},
		{
			Name:        "The Pragmatic Programmer",
			Description: "20th anniversary edition, hardcover",
			Price:       44.95,
			ImageURL:    "https://images.example.com/products/pragmatic-programmer.jpg",
			CategoryID:  &books.ID,
			Stock:       120,
			IsActive:    true,
		},
	}

	for i := range products {
		if err := m.db.Create(&products[i]).Error; err != nil {
			return err
		}
	}

	m.log.WithField("count", len(products)).Info("Seeded catalog products")
	return nil
}
