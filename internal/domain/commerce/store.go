// internal/domain/commerce/store.go
package commerce

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/pkg/tasks"
)

// Store holds one session's cart and wishlist. Local reads and writes
// are synchronous and immediately consistent: the in-memory collections
// and the LocalStorage mirror are committed before an operation
// returns. Remote writes are optimistic fire-and-forget tasks; their
// outcome never changes local state and is only ever logged. The
// remote copy becomes authoritative exactly once, at login, when
// SetUser replaces local contents with the fetched rows.
//
// The collections are mutated only through the methods below; callers
// must never modify returned slices in place.
type Store struct {
	mu        sync.Mutex
	sessionID string
	cart      []CartLine
	wishlist  []WishlistEntry
	user      *User
	role      string

	local  LocalStorage
	remote RemoteStore
	runner *tasks.Runner
	log    *logrus.Entry
}

// NewStore creates an empty store for the given session
func NewStore(sessionID string, local LocalStorage, remote RemoteStore, runner *tasks.Runner, log *logrus.Entry) *Store {
	return &Store{
		sessionID: sessionID,
		cart:      []CartLine{},
		wishlist:  []WishlistEntry{},
		local:     local,
		remote:    remote,
		runner:    runner,
		log:       log.WithField("session_id", sessionID),
	}
}

// hydrate loads both collections from LocalStorage. Called once, before
// the store is handed out; a missing key leaves the collection empty.
func (s *Store) hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cartData, err := s.local.Load(ctx, cartKey(s.sessionID))
	if err != nil {
		return fmt.Errorf("failed to hydrate cart: %w", err)
	}
	if cartData != nil {
		if err := json.Unmarshal(cartData, &s.cart); err != nil {
			return fmt.Errorf("failed to decode stored cart: %w", err)
		}
	}

	wishlistData, err := s.local.Load(ctx, wishlistKey(s.sessionID))
	if err != nil {
		return fmt.Errorf("failed to hydrate wishlist: %w", err)
	}
	if wishlistData != nil {
		if err := json.Unmarshal(wishlistData, &s.wishlist); err != nil {
			return fmt.Errorf("failed to decode stored wishlist: %w", err)
		}
	}

	return nil
}

// AddCartLine adds a line to the cart. If a line for the same product
// already exists its quantity grows by line.Quantity and the existing
// display fields win; otherwise the line is appended in order. The
// remote upsert carries the resulting quantity, not the delta.
func (s *Store) AddCartLine(ctx context.Context, line CartLine) error {
	if line.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	resulting := line.Quantity
	merged := false
	for i := range s.cart {
		if s.cart[i].ProductID == line.ProductID {
			s.cart[i].Quantity += line.Quantity
			resulting = s.cart[i].Quantity
			merged = true
			break
		}
	}
	if !merged {
		if line.LineID == "" {
			line.LineID = uuid.New().String()
		}
		s.cart = append(s.cart, line)
	}

	s.persistCartLocked(ctx)

	if user := s.user; user != nil {
		productID := line.ProductID
		s.runner.Dispatch("cart.upsert", func(ctx context.Context) error {
			return s.remote.UpsertCartLine(ctx, user.ID, productID, resulting)
		})
	}

	return nil
}

// RemoveCartLine removes the line for the product; absent is a no-op
func (s *Store) RemoveCartLine(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.cart[:0]
	for _, line := range s.cart {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	s.cart = kept

	s.persistCartLocked(ctx)

	if user := s.user; user != nil {
		s.runner.Dispatch("cart.delete", func(ctx context.Context) error {
			return s.remote.DeleteCartLine(ctx, user.ID, productID)
		})
	}
}

// UpdateCartQuantity sets the line's quantity to exactly quantity,
// replacing rather than adding. A quantity of zero or less removes the
// line, keeping the quantity >= 1 invariant.
func (s *Store) UpdateCartQuantity(ctx context.Context, productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveCartLine(ctx, productID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart {
		if s.cart[i].ProductID == productID {
			s.cart[i].Quantity = quantity
			break
		}
	}

	s.persistCartLocked(ctx)

	if user := s.user; user != nil {
		s.runner.Dispatch("cart.update", func(ctx context.Context) error {
			return s.remote.UpdateCartQuantity(ctx, user.ID, productID, quantity)
		})
	}
}

// ClearCart empties the cart, removes the local mirror and, when a
// user is set, bulk-deletes the user's remote cart rows
func (s *Store) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = []CartLine{}

	if err := s.local.Delete(ctx, cartKey(s.sessionID)); err != nil {
		s.log.WithError(err).Warn("failed to clear local cart mirror")
	}

	if user := s.user; user != nil {
		s.runner.Dispatch("cart.clear", func(ctx context.Context) error {
			return s.remote.ClearCart(ctx, user.ID)
		})
	}
}

// CartTotal returns the sum of unit price times quantity over all lines
func (s *Store) CartTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, line := range s.cart {
		total += line.UnitPrice * float64(line.Quantity)
	}
	return total
}

// CartLines returns a copy of the cart in insertion order
func (s *Store) CartLines() []CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]CartLine, len(s.cart))
	copy(lines, s.cart)
	return lines
}

// AddWishlistEntry appends the entry unless the product is already
// wishlisted; a duplicate add changes nothing, locally or remotely
func (s *Store) AddWishlistEntry(ctx context.Context, entry WishlistEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.wishlist {
		if existing.ProductID == entry.ProductID {
			return
		}
	}
	s.wishlist = append(s.wishlist, entry)

	s.persistWishlistLocked(ctx)

	if user := s.user; user != nil {
		productID := entry.ProductID
		s.runner.Dispatch("wishlist.insert", func(ctx context.Context) error {
			return s.remote.InsertWishlistEntry(ctx, user.ID, productID)
		})
	}
}

// RemoveWishlistEntry removes the entry for the product; absent is a no-op
func (s *Store) RemoveWishlistEntry(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.wishlist[:0]
	for _, entry := range s.wishlist {
		if entry.ProductID != productID {
			kept = append(kept, entry)
		}
	}
	s.wishlist = kept

	s.persistWishlistLocked(ctx)

	if user := s.user; user != nil {
		s.runner.Dispatch("wishlist.delete", func(ctx context.Context) error {
			return s.remote.DeleteWishlistEntry(ctx, user.ID, productID)
		})
	}
}

// IsWishlisted reports whether the product has a wishlist entry
func (s *Store) IsWishlisted(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range s.wishlist {
		if entry.ProductID == productID {
			return true
		}
	}
	return false
}

// WishlistEntries returns a copy of the wishlist in insertion order
func (s *Store) WishlistEntries() []WishlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]WishlistEntry, len(s.wishlist))
	copy(entries, s.wishlist)
	return entries
}

// SetUser attaches or clears the session's identity marker.
//
// A non-nil user triggers reconciliation: the remote cart and wishlist
// are fetched and replace local contents wholesale, including anything
// accumulated anonymously before login. Each fetch guards its replace:
// on failure the corresponding local collection is left untouched.
//
// A nil user (logout) only clears the identity and role markers. The
// collections are intentionally kept; clearing the cart on logout is
// the caller's decision.
func (s *Store) SetUser(ctx context.Context, user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = user
	s.role = user.Role()

	if user == nil {
		return
	}

	lines, err := s.remote.FetchCart(ctx, user.ID)
	if err != nil {
		s.log.WithError(err).Warn("failed to fetch remote cart, keeping local state")
	} else {
		s.cart = lines
		s.persistCartLocked(ctx)
	}

	entries, err := s.remote.FetchWishlist(ctx, user.ID)
	if err != nil {
		s.log.WithError(err).Warn("failed to fetch remote wishlist, keeping local state")
	} else {
		s.wishlist = entries
		s.persistWishlistLocked(ctx)
	}
}

// User returns the current identity marker, nil when anonymous
func (s *Store) User() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Role returns the role marker set at login, empty when anonymous
func (s *Store) Role() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role
}

// persistCartLocked rewrites the cart's local mirror. Failures are
// logged and swallowed: in-memory state stays authoritative.
func (s *Store) persistCartLocked(ctx context.Context) {
	data, err := json.Marshal(s.cart)
	if err != nil {
		s.log.WithError(err).Warn("failed to encode cart")
		return
	}
	if err := s.local.Save(ctx, cartKey(s.sessionID), data); err != nil {
		s.log.WithError(err).Warn("failed to persist cart locally")
	}
}

func (s *Store) persistWishlistLocked(ctx context.Context) {
	data, err := json.Marshal(s.wishlist)
	if err != nil {
		s.log.WithError(err).Warn("failed to encode wishlist")
		return
	}
	if err := s.local.Save(ctx, wishlistKey(s.sessionID), data); err != nil {
		s.log.WithError(err).Warn("failed to persist wishlist locally")
	}
}
