package comments

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ErrKeyNotFound signals that a ledger key has never been written.
var ErrKeyNotFound = errors.New("key not found")

// Storage is the durable key-to-string mapping the ledger persists into.
// Implementations must tolerate absent keys by returning ErrKeyNotFound.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type redisStorage struct {
	client *redis.Client
}

// NewRedisStorage creates a Storage backed by a redis key-value store.
func NewRedisStorage(client *redis.Client) Storage {
	return &redisStorage{client: client}
}

func (s *redisStorage) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return value, nil
}

func (s *redisStorage) Set(ctx context.Context, key, value string) error {
	// Comments persist for as long as the storage itself does; no TTL.
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}
