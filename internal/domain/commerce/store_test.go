package commerce

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/pkg/tasks"
)

// =====================
// Fakes
// =====================

type memoryStorage struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{data: make(map[string][]byte)}
}

func (m *memoryStorage) Load(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return value, nil
}

func (m *memoryStorage) Save(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memoryStorage) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

type remoteCall struct {
	op        string
	userID    string
	productID string
	quantity  int
}

type fakeRemote struct {
	mu       sync.Mutex
	calls    []remoteCall
	cart     []CartLine
	wishlist []WishlistEntry
	failWith error
	fetchErr error
}

func (f *fakeRemote) record(call remoteCall) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.failWith
}

func (f *fakeRemote) recorded() []remoteCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	calls := make([]remoteCall, len(f.calls))
	copy(calls, f.calls)
	return calls
}

func (f *fakeRemote) UpsertCartLine(ctx context.Context, userID, productID string, quantity int) error {
	return f.record(remoteCall{op: "upsert", userID: userID, productID: productID, quantity: quantity})
}

func (f *fakeRemote) UpdateCartQuantity(ctx context.Context, userID, productID string, quantity int) error {
	return f.record(remoteCall{op: "update", userID: userID, productID: productID, quantity: quantity})
}

func (f *fakeRemote) DeleteCartLine(ctx context.Context, userID, productID string) error {
	return f.record(remoteCall{op: "delete", userID: userID, productID: productID})
}

func (f *fakeRemote) ClearCart(ctx context.Context, userID string) error {
	return f.record(remoteCall{op: "clear", userID: userID})
}

func (f *fakeRemote) FetchCart(ctx context.Context, userID string) ([]CartLine, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.cart, nil
}

func (f *fakeRemote) InsertWishlistEntry(ctx context.Context, userID, productID string) error {
	return f.record(remoteCall{op: "wishlist.insert", userID: userID, productID: productID})
}

func (f *fakeRemote) DeleteWishlistEntry(ctx context.Context, userID, productID string) error {
	return f.record(remoteCall{op: "wishlist.delete", userID: userID, productID: productID})
}

func (f *fakeRemote) FetchWishlist(ctx context.Context, userID string) ([]WishlistEntry, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.wishlist, nil
}

func newTestStore(t *testing.T) (*Store, *memoryStorage, *fakeRemote, *tasks.Runner) {
	t.Helper()
	log, _ := logrustest.NewNullLogger()
	runner := tasks.NewRunner(logrus.NewEntry(log))
	local := newMemoryStorage()
	remote := &fakeRemote{}
	store := NewStore("sess-1", local, remote, runner, logrus.NewEntry(log))
	return store, local, remote, runner
}

func line(productID, name string, price float64, qty int) CartLine {
	return CartLine{ProductID: productID, Name: name, UnitPrice: price, Quantity: qty}
}

// =====================
// Cart
// =====================

func TestStore_AddCartLine_MergesQuantity(t *testing.T) {
	store, _, _, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddCartLine(ctx, line("p1", "Lamp", 10, 1)))
	require.NoError(t, store.AddCartLine(ctx, CartLine{ProductID: "p1", Name: "Renamed", UnitPrice: 99, Quantity: 2}))

	lines := store.CartLines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	// Display fields from the first add win on merge
	assert.Equal(t, "Lamp", lines[0].Name)
	assert.Equal(t, 10.0, lines[0].UnitPrice)
}

func TestStore_AddCartLine_AssignsLineID(t *testing.T) {
	store, _, _, _ := newTestStore(t)

	require.NoError(t, store.AddCartLine(context.Background(), line("p1", "Lamp", 10, 1)))

	assert.NotEmpty(t, store.CartLines()[0].LineID)
}

func TestStore_AddCartLine_RejectsNonPositiveQuantity(t *testing.T) {
	store, _, _, _ := newTestStore(t)

	err := store.AddCartLine(context.Background(), line("p1", "Lamp", 10, 0))

	require.Error(t, err)
	assert.Empty(t, store.CartLines())
}

func TestStore_CartTotal(t *testing.T) {
	store, _, _, _ := newTestStore(t)
	ctx := context.Background()

	assert.Equal(t, 0.0, store.CartTotal())

	require.NoError(t, store.AddCartLine(ctx, line("p1", "Lamp", 10, 2)))
	require.NoError(t, store.AddCartLine(ctx, line("p2", "Vase", 15.5, 1)))

	assert.Equal(t, 35.5, store.CartTotal())
}

func TestStore_UpdateCartQuantity_ReplacesNotAdds(t *testing.T) {
	store, _, _, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddCartLine(ctx, line("p1", "Lamp", 10, 1)))
	store.UpdateCartQuantity(ctx, "p1", 5)

	lines := store.CartLines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestStore_UpdateCartQuantity_NonPositiveRemovesLine(t *testing.T) {
	store, _, _, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddCartLine(ctx, line("p1", "Lamp", 10, 2)))
	store.UpdateCartQuantity(ctx, "p1", 0)

	assert.Empty(t, store.CartLines())
}

func TestStore_RemoveCartLine_AbsentIsNoop(t *testing.T) {
	store, _, _, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddCartLine(ctx, line("p1", "Lamp", 10, 1)))
	store.RemoveCartLine(ctx, "missing")

	assert.Len(t, store.CartLines(), 1)
}

func TestStore_AddRemoveScenario(t *testing.T) {
	store, _, _, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddCartLine(ctx, line("p1", "Lamp", 29.99, 1)))
	require.NoError(t, store.AddCartLine(ctx, line("p1", "Lamp", 29.99, 1)))

	lines := store.CartLines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.InDelta(t, 59.98, store.CartTotal(), 1e-9)

	store.RemoveCartLine(ctx, "p1")
	assert.Empty(t, store.CartLines())
	assert.Equal(t, 0.0, store.CartTotal())
}

func TestStore_ClearCart(t *testing.T) {
	store, local, _, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddCartLine(ctx, line("p1", "Lamp", 10, 2)))
	store.ClearCart(ctx)

	assert.Empty(t, store.CartLines())
	assert.Equal(t, 0.0, store.CartTotal())

	stored, err := local.Load(ctx, cartKey("sess-1"))
	require.NoError(t, err)
	assert.Nil(t, stored, "local mirror should be removed on clear")
}

func TestStore_PersistenceRoundTrip(t *testing.T) {
	store, local, _, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddCartLine(ctx, line("p1", "Lamp", 10, 2)))
	require.NoError(t, store.AddCartLine(ctx, line("p2", "Vase", 15.5, 1)))
	store.UpdateCartQuantity(ctx, "p2", 4)

	stored, err := local.Load(ctx, cartKey("sess-1"))
	require.NoError(t, err)
	require.NotNil(t, stored)

	var persisted []CartLine
	require.NoError(t, json.Unmarshal(stored, &persisted))
	assert.Equal(t, store.CartLines(), persisted)
}

// =====================
// Wishlist
// =====================

func TestStore_Wishlist_Deduplicates(t *testing.T) {
	store, _, _, _ := newTestStore(t)
	ctx := context.Background()

	store.AddWishlistEntry(ctx, WishlistEntry{ProductID: "p1", Name: "Lamp", UnitPrice: 10})
	store.AddWishlistEntry(ctx, WishlistEntry{ProductID: "p1", Name: "Lamp", UnitPrice: 10})

	assert.Len(t, store.WishlistEntries(), 1)
}

func TestStore_Wishlist_RemovalCorrectness(t *testing.T) {
	store, _, _, _ := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"1", "2", "3"} {
		store.AddWishlistEntry(ctx, WishlistEntry{ProductID: id})
	}
	store.RemoveWishlistEntry(ctx, "2")

	entries := store.WishlistEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "1", entries[0].ProductID)
	assert.Equal(t, "3", entries[1].ProductID)
	assert.True(t, store.IsWishlisted("1"))
	assert.False(t, store.IsWishlisted("2"))
}

// =====================
// Remote sync
// =====================

func TestStore_AnonymousMutationsSkipRemote(t *testing.T) {
	store, _, remote, runner := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddCartLine(ctx, line("p1", "Lamp", 10, 1)))
	store.RemoveCartLine(ctx, "p1")
	store.AddWishlistEntry(ctx, WishlistEntry{ProductID: "p2"})
	runner.Wait()

	assert.Empty(t, remote.recorded())
}

func TestStore_AddCartLine_UpsertCarriesResultingQuantity(t *testing.T) {
	store, _, remote, runner := newTestStore(t)
	ctx := context.Background()

	store.SetUser(ctx, &User{ID: "u1"})

	require.NoError(t, store.AddCartLine(ctx, line("p1", "Lamp", 10, 1)))
	runner.Wait()
	require.NoError(t, store.AddCartLine(ctx, line("p1", "Lamp", 10, 1)))
	runner.Wait()

	calls := remote.recorded()
	require.Len(t, calls, 2)
	assert.Equal(t, remoteCall{op: "upsert", userID: "u1", productID: "p1", quantity: 1}, calls[0])
	assert.Equal(t, remoteCall{op: "upsert", userID: "u1", productID: "p1", quantity: 2}, calls[1])
}

func TestStore_RemoteFailure_DoesNotAffectLocalState(t *testing.T) {
	store, _, remote, runner := newTestStore(t)
	remote.failWith = errors.New("connection refused")
	ctx := context.Background()

	store.SetUser(ctx, &User{ID: "u1"})
	require.NoError(t, store.AddCartLine(ctx, line("p1", "Lamp", 10, 1)))
	runner.Wait()

	lines := store.CartLines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestStore_ClearCart_IssuesRemoteBulkDelete(t *testing.T) {
	store, _, remote, runner := newTestStore(t)
	ctx := context.Background()

	store.SetUser(ctx, &User{ID: "u1"})
	store.ClearCart(ctx)
	runner.Wait()

	calls := remote.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, remoteCall{op: "clear", userID: "u1"}, calls[0])
}

// =====================
// Authentication reconciliation
// =====================

func TestStore_SetUser_ReplacesLocalState(t *testing.T) {
	store, local, remote, _ := newTestStore(t)
	ctx := context.Background()

	// Guest accumulates state before logging in
	require.NoError(t, store.AddCartLine(ctx, line("guest-product", "Guest Lamp", 5, 1)))
	store.AddWishlistEntry(ctx, WishlistEntry{ProductID: "guest-wish"})

	remote.cart = []CartLine{{LineID: "l1", ProductID: "p9", Name: "Desk", UnitPrice: 120, Quantity: 2}}
	remote.wishlist = []WishlistEntry{{ProductID: "p8", Name: "Chair", UnitPrice: 60}}

	store.SetUser(ctx, &User{ID: "u1"})

	// Replace, not merge: the guest cart is gone
	lines := store.CartLines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p9", lines[0].ProductID)

	entries := store.WishlistEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, "p8", entries[0].ProductID)

	// Local mirror reflects the fetched state
	stored, err := local.Load(ctx, cartKey("sess-1"))
	require.NoError(t, err)
	var persisted []CartLine
	require.NoError(t, json.Unmarshal(stored, &persisted))
	assert.Equal(t, lines, persisted)
}

func TestStore_SetUser_FetchFailureKeepsLocalState(t *testing.T) {
	store, _, remote, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddCartLine(ctx, line("p1", "Lamp", 10, 1)))
	remote.fetchErr = errors.New("timeout")

	store.SetUser(ctx, &User{ID: "u1"})

	lines := store.CartLines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p1", lines[0].ProductID)
}

func TestStore_SetUser_DerivesRoleMarker(t *testing.T) {
	store, _, _, _ := newTestStore(t)
	ctx := context.Background()

	store.SetUser(ctx, &User{ID: "u1"})
	assert.Equal(t, RoleCustomer, store.Role())

	store.SetUser(ctx, &User{ID: "u2", Metadata: map[string]string{"role": "admin"}})
	assert.Equal(t, "admin", store.Role())
}

func TestStore_Logout_KeepsCollections(t *testing.T) {
	store, _, remote, _ := newTestStore(t)
	ctx := context.Background()

	remote.cart = []CartLine{{LineID: "l1", ProductID: "p1", Name: "Lamp", UnitPrice: 10, Quantity: 1}}
	store.SetUser(ctx, &User{ID: "u1"})
	store.SetUser(ctx, nil)

	assert.Nil(t, store.User())
	assert.Empty(t, store.Role())
	// Collections survive logout; clearing is the caller's call
	assert.Len(t, store.CartLines(), 1)
}

func TestStore_MutationsAfterLogout_SkipRemote(t *testing.T) {
	store, _, remote, runner := newTestStore(t)
	ctx := context.Background()

	store.SetUser(ctx, &User{ID: "u1"})
	store.SetUser(ctx, nil)

	require.NoError(t, store.AddCartLine(ctx, line("p1", "Lamp", 10, 1)))
	runner.Wait()

	assert.Empty(t, remote.recorded())
}
