// Package cache stores raw upstream responses for a short time.
package cache

import (
	"context"
	"sync"
	"time"
)

// Cache is a byte-oriented key/value store with expiry. Implementations treat backend failures as
// misses: a broken cache must never fail a page render.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// Noop disables caching.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (Noop) Set(context.Context, string, []byte, time.Duration) {}

type memoryEntry struct {
	value   []byte
	expires time.Time
}

// Memory is an in-process cache used when no redis instance is configured.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemory creates an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry), now: time.Now}
}

// Get returns a copy of the cached value if it has not expired.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if m.now().After(entry.expires) {
		delete(m.entries, key)
		return nil, false
	}
	return append([]byte(nil), entry.value...), true
}

// Set stores value until ttl elapses. Non-positive TTLs are ignored.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{value: append([]byte(nil), value...), expires: m.now().Add(ttl)}
}
