package memory

// Package memory provides in-process adapters, used for tests and for the
// ephemeral challenge store when no Redis is configured.

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

type entry struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
}

// KVStore is an in-memory ports.KeyValueStore. It is safe for concurrent use.
type KVStore struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// NewKVStore creates an empty store using the system clock.
func NewKVStore() *KVStore {
	return NewKVStoreWithClock(time.Now)
}

// NewKVStoreWithClock creates an empty store whose TTLs are evaluated against now.
func NewKVStoreWithClock(now func() time.Time) *KVStore {
	return &KVStore{
		entries: make(map[string]entry),
		now:     now,
	}
}

func (s *KVStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, errors.New("key cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		delete(s.entries, key)
		return nil, false, nil
	}
	return append([]byte(nil), e.value...), true, nil
}

func (s *KVStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.entries[key] = e
	return nil
}

func (s *KVStore) SetMany(_ context.Context, entries map[string][]byte) error {
	for key := range entries {
		if key == "" {
			return errors.New("key cannot be empty")
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range entries {
		s.entries[key] = entry{value: append([]byte(nil), value...)}
	}
	return nil
}

func (s *KVStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.entries, key)
	}
	return nil
}

func (s *KVStore) DeletePrefix(_ context.Context, prefix string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of stored keys, expired ones included.
func (s *KVStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
