package commerce

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/pkg/tasks"
)

func newTestManager(t *testing.T) (*Manager, *memoryStorage) {
	t.Helper()
	log, _ := logrustest.NewNullLogger()
	runner := tasks.NewRunner(logrus.NewEntry(log))
	local := newMemoryStorage()
	return NewManager(local, &fakeRemote{}, runner, logrus.NewEntry(log)), local
}

func TestManager_HydratesFromLocalStorage(t *testing.T) {
	manager, local := newTestManager(t)
	ctx := context.Background()

	persisted := []CartLine{{LineID: "l1", ProductID: "p1", Name: "Lamp", UnitPrice: 10, Quantity: 2}}
	data, err := json.Marshal(persisted)
	require.NoError(t, err)
	require.NoError(t, local.Save(ctx, cartKey("sess-1"), data))

	store, err := manager.Store(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, persisted, store.CartLines())
}

func TestManager_MissingKeysMeanEmptyCollections(t *testing.T) {
	manager, _ := newTestManager(t)

	store, err := manager.Store(context.Background(), "fresh")
	require.NoError(t, err)
	assert.Empty(t, store.CartLines())
	assert.Empty(t, store.WishlistEntries())
}

func TestManager_ReturnsSameInstancePerSession(t *testing.T) {
	manager, _ := newTestManager(t)
	ctx := context.Background()

	first, err := manager.Store(ctx, "sess-1")
	require.NoError(t, err)
	second, err := manager.Store(ctx, "sess-1")
	require.NoError(t, err)
	other, err := manager.Store(ctx, "sess-2")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)
}

func TestManager_HydratesOnceNotOnEveryLookup(t *testing.T) {
	manager, local := newTestManager(t)
	ctx := context.Background()

	store, err := manager.Store(ctx, "sess-1")
	require.NoError(t, err)
	require.NoError(t, store.AddCartLine(ctx, line("p1", "Lamp", 10, 1)))

	// Corrupt the mirror after hydration; the cached store must not re-read it
	require.NoError(t, local.Save(ctx, cartKey("sess-1"), []byte("not json")))

	again, err := manager.Store(ctx, "sess-1")
	require.NoError(t, err)
	assert.Len(t, again.CartLines(), 1)
}
