// internal/domain/commerce/manager.go
package commerce

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/pkg/tasks"
)

// Manager hands out one Store per session. A session's store is
// hydrated from LocalStorage exactly once and then cached for the
// process lifetime; every later lookup gets the same instance.
type Manager struct {
	mu     sync.Mutex
	stores map[string]*Store

	local  LocalStorage
	remote RemoteStore
	runner *tasks.Runner
	log    *logrus.Entry
}

// NewManager creates a session store manager
func NewManager(local LocalStorage, remote RemoteStore, runner *tasks.Runner, log *logrus.Entry) *Manager {
	return &Manager{
		stores: make(map[string]*Store),
		local:  local,
		remote: remote,
		runner: runner,
		log:    log,
	}
}

// Store returns the session's store, hydrating it on first access
func (m *Manager) Store(ctx context.Context, sessionID string) (*Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if store, ok := m.stores[sessionID]; ok {
		return store, nil
	}

	store := NewStore(sessionID, m.local, m.remote, m.runner, m.log)
	if err := store.hydrate(ctx); err != nil {
		return nil, err
	}

	m.stores[sessionID] = store
	return store, nil
}
