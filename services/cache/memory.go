package cache

import (
	"sync"
	"time"
)

type entry struct {
	value    []byte
	storedAt time.Time
	ttl      time.Duration
}

// MemoryService implements CacheService with an in-process map.
// Expired entries are treated as absent but only removed when overwritten
// or deleted; at the target scale (a handful of players and categories)
// unbounded growth is acceptable.
type MemoryService struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemoryService creates a new in-memory cache service
func NewMemoryService() *MemoryService {
	return &MemoryService{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// NewMemoryServiceWithClock creates an in-memory cache with an injected
// clock, used by tests to simulate TTL expiry
func NewMemoryServiceWithClock(now func() time.Time) *MemoryService {
	return &MemoryService{
		entries: make(map[string]entry),
		now:     now,
	}
}

// Get retrieves a value, returning ErrCacheMiss for absent or expired keys
func (m *MemoryService) Get(key string) ([]byte, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrCacheMiss
	}
	if e.ttl > 0 && m.now().Sub(e.storedAt) >= e.ttl {
		return nil, ErrCacheMiss
	}

	value := make([]byte, len(e.value))
	copy(value, e.value)
	return value, nil
}

// Set stores a value, overwriting any existing entry and stamping the
// current time. A non-positive expiration means the entry never expires.
func (m *MemoryService) Set(key string, value []byte, expiration time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	m.mu.Lock()
	m.entries[key] = entry{
		value:    stored,
		storedAt: m.now(),
		ttl:      expiration,
	}
	m.mu.Unlock()
	return nil
}

// Delete removes a value from the cache
func (m *MemoryService) Delete(key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}
