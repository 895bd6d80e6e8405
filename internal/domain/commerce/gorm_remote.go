// internal/domain/commerce/gorm_remote.go
package commerce

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRow is a user's persisted cart line
type CartRow struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_user_product" json:"user_id"`
	ProductID string    `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_user_product" json:"product_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (CartRow) TableName() string {
	return "cart_items"
}

// BeforeCreate assigns the row ID
func (r *CartRow) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// WishlistRow is a user's persisted wishlist entry
type WishlistRow struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_items_user_product" json:"user_id"`
	ProductID string    `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_items_user_product" json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name
func (WishlistRow) TableName() string {
	return "wishlist_items"
}

// BeforeCreate assigns the row ID
func (r *WishlistRow) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// GormRemoteStore implements RemoteStore on Postgres
type GormRemoteStore struct {
	db *gorm.DB
}

// NewGormRemoteStore creates a Postgres-backed remote store
func NewGormRemoteStore(db *gorm.DB) *GormRemoteStore {
	return &GormRemoteStore{db: db}
}

// UpsertCartLine inserts or updates one cart row on the
// (user_id, product_id) conflict target, writing the resulting quantity
func (s *GormRemoteStore) UpsertCartLine(ctx context.Context, userID, productID string, quantity int) error {
	row := CartRow{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   quantity,
			"updated_at": time.Now().UTC(),
		}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert cart row: %w", err)
	}
	return nil
}

// UpdateCartQuantity replaces the quantity of an existing cart row.
// Updating a missing row affects nothing and is not an error.
func (s *GormRemoteStore) UpdateCartQuantity(ctx context.Context, userID, productID string, quantity int) error {
	err := s.db.WithContext(ctx).Model(&CartRow{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", quantity).Error
	if err != nil {
		return fmt.Errorf("failed to update cart quantity: %w", err)
	}
	return nil
}

// DeleteCartLine removes one cart row
func (s *GormRemoteStore) DeleteCartLine(ctx context.Context, userID, productID string) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&CartRow{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete cart row: %w", err)
	}
	return nil
}

// ClearCart removes every cart row belonging to the user
func (s *GormRemoteStore) ClearCart(ctx context.Context, userID string) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&CartRow{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear cart rows: %w", err)
	}
	return nil
}

// cartFetchRow carries one joined cart row out of the database
type cartFetchRow struct {
	ID        string
	ProductID string
	Quantity  int
	Name      string
	Price     float64
	ImageURL  string
}

// FetchCart returns the user's cart rows joined with product data
func (s *GormRemoteStore) FetchCart(ctx context.Context, userID string) ([]CartLine, error) {
	var rows []cartFetchRow
	err := s.db.WithContext(ctx).Table("cart_items").
		Select("cart_items.id, cart_items.product_id, cart_items.quantity, products.name, products.price, products.image_url").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.user_id = ?", userID).
		Where("products.deleted_at IS NULL").
		Order("cart_items.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cart rows: %w", err)
	}

	lines := make([]CartLine, len(rows))
	for i, row := range rows {
		lines[i] = CartLine{
			LineID:    row.ID,
			ProductID: row.ProductID,
			Name:      row.Name,
			UnitPrice: row.Price,
			ImageRef:  row.ImageURL,
			Quantity:  row.Quantity,
		}
	}
	return lines, nil
}

// InsertWishlistEntry adds one wishlist row
func (s *GormRemoteStore) InsertWishlistEntry(ctx context.Context, userID, productID string) error {
	row := WishlistRow{
		UserID:    userID,
		ProductID: productID,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert wishlist row: %w", err)
	}
	return nil
}

// DeleteWishlistEntry removes one wishlist row
func (s *GormRemoteStore) DeleteWishlistEntry(ctx context.Context, userID, productID string) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&WishlistRow{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete wishlist row: %w", err)
	}
	return nil
}

// wishlistFetchRow carries one joined wishlist row out of the database
type wishlistFetchRow struct {
	ProductID string
	Name      string
	Price     float64
	ImageURL  string
}

// FetchWishlist returns the user's wishlist rows joined with product data
func (s *GormRemoteStore) FetchWishlist(ctx context.Context, userID string) ([]WishlistEntry, error) {
	var rows []wishlistFetchRow
	err := s.db.WithContext(ctx).Table("wishlist_items").
		Select("wishlist_items.product_id, products.name, products.price, products.image_url").
		Joins("JOIN products ON products.id = wishlist_items.product_id").
		Where("wishlist_items.user_id = ?", userID).
		Where("products.deleted_at IS NULL").
		Order("wishlist_items.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch wishlist rows: %w", err)
	}

	entries := make([]WishlistEntry, len(rows))
	for i, row := range rows {
		entries[i] = WishlistEntry{
			ProductID: row.ProductID,
			Name:      row.Name,
			UnitPrice: row.Price,
			ImageRef:  row.ImageURL,
		}
	}
	return entries, nil
}
