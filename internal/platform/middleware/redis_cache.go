package middleware

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCacheStore is a CacheStore backed by Redis, used when the server runs
// with more than one replica so cached report payloads are shared. Errors are
// treated as cache misses; the cache never makes a request fail.
type RedisCacheStore struct {
	client *redis.Client
	prefix string
}

// NewRedisCacheStore connects to the given Redis address and returns a store
// namespaced by prefix.
func NewRedisCacheStore(addr, prefix string) *RedisCacheStore {
	return &RedisCacheStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		prefix: prefix,
	}
}

// Ping verifies the Redis connection.
func (s *RedisCacheStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisCacheStore) key(key string) string {
	return s.prefix + ":" + key
}

// Get retrieves a value, treating any Redis error as a miss.
func (s *RedisCacheStore) Get(key string) ([]byte, bool) {
	data, err := s.client.Get(context.Background(), s.key(key)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores a value with the given TTL.
func (s *RedisCacheStore) Set(key string, value []byte, ttl time.Duration) {
	s.client.Set(context.Background(), s.key(key), value, ttl)
}

// Delete removes a single entry.
func (s *RedisCacheStore) Delete(key string) {
	s.client.Del(context.Background(), s.key(key))
}

// Clear removes every entry under the store's prefix.
func (s *RedisCacheStore) Clear() {
	ctx := context.Background()
	iter := s.client.Scan(ctx, 0, s.prefix+":*", 0).Iterator()
	for iter.Next(ctx) {
		s.client.Del(ctx, iter.Val())
	}
}

// Close releases the underlying Redis connection.
func (s *RedisCacheStore) Close() error {
	return s.client.Close()
}
