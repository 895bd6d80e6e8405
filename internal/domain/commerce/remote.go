// internal/domain/commerce/remote.go
package commerce

import "context"

// RemoteStore is the per-user persistence API backing cross-device
// cart/wishlist sync. Rows are keyed (userID, productID). Every write
// issued through it by the store is best-effort: the store never reads
// a write's result back into local state, it only logs failures.
type RemoteStore interface {
	// UpsertCartLine writes the resulting quantity for a cart row,
	// inserting or updating on the (userID, productID) conflict target.
	UpsertCartLine(ctx context.Context, userID, productID string, quantity int) error

	// UpdateCartQuantity replaces the quantity of an existing cart row
	UpdateCartQuantity(ctx context.Context, userID, productID string, quantity int) error

	// DeleteCartLine removes one cart row
	DeleteCartLine(ctx context.Context, userID, productID string) error

	// ClearCart removes every cart row belonging to the user
	ClearCart(ctx context.Context, userID string) error

	// FetchCart returns the user's cart rows joined with product data,
	// in insertion order
	FetchCart(ctx context.Context, userID string) ([]CartLine, error)

	// InsertWishlistEntry adds one wishlist row
	InsertWishlistEntry(ctx context.Context, userID, productID string) error

	// DeleteWishlistEntry removes one wishlist row
	DeleteWishlistEntry(ctx context.Context, userID, productID string) error

	// FetchWishlist returns the user's wishlist rows joined with product data
	FetchWishlist(ctx context.Context, userID string) ([]WishlistEntry, error)
}
