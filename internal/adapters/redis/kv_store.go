package redis

// Package redis provides Redis-based adapters for the auth session manager.

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const scanBatch = 100

// KVStore is a Redis-backed ports.KeyValueStore.
// Every key is namespaced with prefix so durable and ephemeral stores can share a server.
type KVStore struct {
	client redis.UniversalClient
	prefix string
}

// NewKVStore creates a Redis key/value store without a key prefix.
func NewKVStore(client redis.UniversalClient) *KVStore {
	return &KVStore{client: client}
}

// NewKVStoreWithPrefix creates a Redis key/value store with a custom key prefix.
func NewKVStoreWithPrefix(client redis.UniversalClient, prefix string) *KVStore {
	return &KVStore{
		client: client,
		prefix: prefix,
	}
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, errors.New("key cannot be empty")
	}

	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return data, true, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	if ttl < 0 {
		ttl = 0
	}
	if err := s.client.Set(ctx, s.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// SetMany writes all entries inside MULTI/EXEC so readers never see a partial pair.
func (s *KVStore) SetMany(ctx context.Context, entries map[string][]byte) error {
	for key := range entries {
		if key == "" {
			return errors.New("key cannot be empty")
		}
	}
	if len(entries) == 0 {
		return nil
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, value := range entries {
			pipe.Set(ctx, s.prefix+key, value, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis multi set: %w", err)
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, key := range keys {
		if key != "" {
			full = append(full, s.prefix+key)
		}
	}
	if len(full) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// DeletePrefix scans for matching keys and removes them batch by batch.
// It is not atomic with respect to concurrent writers.
func (s *KVStore) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	pattern := escapeGlob(s.prefix+prefix) + "*"
	removed := 0

	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return removed, fmt.Errorf("redis scan: %w", err)
		}
		if len(keys) > 0 {
			n, delErr := s.client.Del(ctx, keys...).Result()
			if delErr != nil {
				return removed, fmt.Errorf("redis del: %w", delErr)
			}
			removed += int(n)
		}
		cursor = next
		if cursor == 0 {
			return removed, nil
		}
	}
}

// Health pings the server.
func (s *KVStore) Health(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

var globReplacer = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

func escapeGlob(s string) string {
	return globReplacer.Replace(s)
}
