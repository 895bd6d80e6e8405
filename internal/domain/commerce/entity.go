// internal/domain/commerce/entity.go
package commerce

// CartLine represents one product's presence in the active cart.
// Name, UnitPrice and ImageRef are a display snapshot captured at
// add-time; they are never re-fetched from the catalog.
type CartLine struct {
	LineID    string  `json:"line_id"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	ImageRef  string  `json:"image_ref"`
	Quantity  int     `json:"quantity"`
}

// WishlistEntry represents one product marked as favorited
type WishlistEntry struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	ImageRef  string  `json:"image_ref"`
}

// User is the identity marker attached to a store after authentication.
// Metadata carries profile claims from the identity provider; the role
// marker is derived from it.
type User struct {
	ID       string            `json:"id"`
	Email    string            `json:"email"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Role markers derived from profile metadata. RoleCustomer is assigned
// when metadata carries no role.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Role derives the role marker from profile metadata
func (u *User) Role() string {
	if u == nil {
		return ""
	}
	if role, ok := u.Metadata["role"]; ok && role != "" {
		return role
	}
	return RoleCustomer
}
