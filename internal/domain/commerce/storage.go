// internal/domain/commerce/storage.go
package commerce

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LocalStorage is the durable key-value mirror of a session's cart and
// wishlist. It is rewritten on every mutation and read once when the
// session's store is hydrated. A missing key means an empty collection.
// Keys are store-private; nothing else should write to them.
type LocalStorage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

func wishlistKey(sessionID string) string {
	return fmt.Sprintf("wishlist:session:%s", sessionID)
}

// sessionTTL keeps abandoned session mirrors from accumulating forever
const sessionTTL = 30 * 24 * time.Hour

// RedisStorage implements LocalStorage on Redis
type RedisStorage struct {
	client *redis.Client
}

// NewRedisStorage creates a Redis-backed local storage
func NewRedisStorage(client *redis.Client) *RedisStorage {
	return &RedisStorage{client: client}
}

// Load returns the stored value, or nil when the key is absent
func (s *RedisStorage) Load(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return value, nil
}

// Save writes the value, refreshing the session TTL
func (s *RedisStorage) Save(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// Delete removes the key; deleting an absent key is not an error
func (s *RedisStorage) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
