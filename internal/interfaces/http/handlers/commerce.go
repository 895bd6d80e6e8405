// internal/interfaces/http/handlers/commerce.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/commerce"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

// CommerceHandler exposes the per-session cart and wishlist state
type CommerceHandler struct {
	manager *commerce.Manager
	config  *config.Config
}

// NewCommerceHandler creates a new commerce handler
func NewCommerceHandler(manager *commerce.Manager, cfg *config.Config) *CommerceHandler {
	return &CommerceHandler{
		manager: manager,
		config:  cfg,
	}
}

// AddCartItemRequest represents an add-to-cart submission. Display
// fields are snapshotted into the cart line as sent.
type AddCartItemRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	UnitPrice float64 `json:"unit_price" binding:"gte=0"`
	ImageRef  string  `json:"image_ref"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItemRequest represents a quantity change for a cart line
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// AddWishlistItemRequest represents a wishlist addition
type AddWishlistItemRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	UnitPrice float64 `json:"unit_price" binding:"gte=0"`
	ImageRef  string  `json:"image_ref"`
}

// GetCart handles GET /cart
func (h *CommerceHandler) GetCart(c *gin.Context) {
	store, ok := h.sessionStore(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"items": store.CartLines(),
			"total": store.CartTotal(),
		},
	})
}

// AddCartItem handles POST /cart/items
func (h *CommerceHandler) AddCartItem(c *gin.Context) {
	store, ok := h.sessionStore(c)
	if !ok {
		return
	}

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := store.AddCartLine(c.Request.Context(), commerce.CartLine{
		ProductID: req.ProductID,
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		ImageRef:  req.ImageRef,
		Quantity:  req.Quantity,
	}); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart",
		"data": gin.H{
			"items": store.CartLines(),
			"total": store.CartTotal(),
		},
	})
}

// UpdateCartItem handles PUT /cart/items/:productId
func (h *CommerceHandler) UpdateCartItem(c *gin.Context) {
	store, ok := h.sessionStore(c)
	if !ok {
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	store.UpdateCartQuantity(c.Request.Context(), c.Param("productId"), req.Quantity)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated",
		"data": gin.H{
			"items": store.CartLines(),
			"total": store.CartTotal(),
		},
	})
}

// RemoveCartItem handles DELETE /cart/items/:productId
func (h *CommerceHandler) RemoveCartItem(c *gin.Context) {
	store, ok := h.sessionStore(c)
	if !ok {
		return
	}

	store.RemoveCartLine(c.Request.Context(), c.Param("productId"))

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart",
		"data": gin.H{
			"items": store.CartLines(),
			"total": store.CartTotal(),
		},
	})
}

// ClearCart handles DELETE /cart
func (h *CommerceHandler) ClearCart(c *gin.Context) {
	store, ok := h.sessionStore(c)
	if !ok {
		return
	}

	store.ClearCart(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared",
	})
}

// GetWishlist handles GET /wishlist
func (h *CommerceHandler) GetWishlist(c *gin.Context) {
	store, ok := h.sessionStore(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"items": store.WishlistEntries(),
		},
	})
}

// AddWishlistItem handles POST /wishlist/items
func (h *CommerceHandler) AddWishlistItem(c *gin.Context) {
	store, ok := h.sessionStore(c)
	if !ok {
		return
	}

	var req AddWishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	store.AddWishlistEntry(c.Request.Context(), commerce.WishlistEntry{
		ProductID: req.ProductID,
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		ImageRef:  req.ImageRef,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to wishlist",
		"data": gin.H{
			"items": store.WishlistEntries(),
		},
	})
}

// RemoveWishlistItem handles DELETE /wishlist/items/:productId
func (h *CommerceHandler) RemoveWishlistItem(c *gin.Context) {
	store, ok := h.sessionStore(c)
	if !ok {
		return
	}

	store.RemoveWishlistEntry(c.Request.Context(), c.Param("productId"))

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from wishlist",
		"data": gin.H{
			"items": store.WishlistEntries(),
		},
	})
}

// Login handles POST /session/login. Requires a valid token; the
// session's collections are replaced with the account's server-side
// copies.
func (h *CommerceHandler) Login(c *gin.Context) {
	store, ok := h.sessionStore(c)
	if !ok {
		return
	}

	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}
	email, _ := middleware.GetUserEmailFromContext(c)

	var metadata map[string]string
	if raw, ok := c.Get("user_metadata"); ok {
		if m, ok := raw.(map[string]string); ok {
			metadata = m
		}
	}

	store.SetUser(c.Request.Context(), &commerce.User{
		ID:       userID,
		Email:    email,
		Metadata: metadata,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Signed in",
		"data": gin.H{
			"role":     store.Role(),
			"cart":     store.CartLines(),
			"wishlist": store.WishlistEntries(),
		},
	})
}

// Logout handles POST /session/logout. The cart and wishlist stay as
// they are; only the identity markers are cleared.
func (h *CommerceHandler) Logout(c *gin.Context) {
	store, ok := h.sessionStore(c)
	if !ok {
		return
	}

	store.SetUser(c.Request.Context(), nil)

	c.JSON(http.StatusOK, gin.H{
		"message": "Signed out",
		"data": gin.H{
			"cart":     store.CartLines(),
			"wishlist": store.WishlistEntries(),
		},
	})
}

// sessionStore resolves the commerce store for the request's session,
// minting a session ID when the client has none
func (h *CommerceHandler) sessionStore(c *gin.Context) (*commerce.Store, bool) {
	sessionID := h.getOrCreateSessionID(c)

	store, err := h.manager.Store(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load session state",
		})
		return nil, false
	}
	return store, true
}

func (h *CommerceHandler) getOrCreateSessionID(c *gin.Context) string {
	return getOrCreateSessionID(c, h.config.IsProduction())
}

// getOrCreateSessionID reads the session ID from the X-Session-ID
// header or the session cookie, minting and setting one when absent
func getOrCreateSessionID(c *gin.Context, secureCookie bool) string {
	if sessionID := c.GetHeader("X-Session-ID"); sessionID != "" {
		return sessionID
	}

	sessionID, err := c.Cookie("session_id")
	if err != nil || sessionID == "" {
		sessionID = uuid.New().String()
		c.SetCookie("session_id", sessionID, 86400*30, "/", "", secureCookie, true)
	}

	return sessionID
}
