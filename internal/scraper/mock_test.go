package scraper

import (
	"time"

	"rtanks/ratingsworker/services/cache"
)

// MockCacheService implements a simple in-memory cache for testing
type MockCacheService struct {
	cache map[string][]byte
	sets  int
}

var _ cache.CacheService = (*MockCacheService)(nil)

func NewMockCacheService() *MockCacheService {
	return &MockCacheService{
		cache: make(map[string][]byte),
	}
}

func (m *MockCacheService) Get(key string) ([]byte, error) {
	if val, ok := m.cache[key]; ok {
		return val, nil
	}
	return nil, cache.ErrCacheMiss
}

func (m *MockCacheService) Set(key string, value []byte, expiration time.Duration) error {
	m.cache[key] = value
	m.sets++
	return nil
}

func (m *MockCacheService) Delete(key string) error {
	delete(m.cache, key)
	return nil
}

// MockFetcher serves canned pages keyed by URL
type MockFetcher struct {
	pages  map[string]string
	calls  int
	closed bool
}

var _ Fetcher = (*MockFetcher)(nil)

func NewMockFetcher() *MockFetcher {
	return &MockFetcher{pages: make(map[string]string)}
}

func (m *MockFetcher) FetchPage(url string) (string, bool) {
	m.calls++
	page, ok := m.pages[url]
	return page, ok
}

func (m *MockFetcher) Close() error {
	m.closed = true
	return nil
}
