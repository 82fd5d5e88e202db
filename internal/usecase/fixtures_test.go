package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/bellavista/orderbot/internal/domain"
)

func testCatalog() []domain.CatalogEntry {
	return []domain.CatalogEntry{
		{ID: "1", Name: "Margherita Pizza", Price: 12.99, Category: "Pizza", Available: true,
			Ingredients: []string{"tomato", "mozzarella", "basil"}},
		{ID: "2", Name: "Pepperoni Pizza", Price: 14.99, Category: "Pizza", Available: true},
		{ID: "3", Name: "BBQ Chicken Pizza", Price: 15.99, Category: "Pizza", Available: true},
		{ID: "4", Name: "Caesar Salad", Price: 8.99, Category: "Salads", Available: true},
		{ID: "5", Name: "Garden Salad", Price: 7.99, Category: "Salads", Available: true},
		{ID: "6", Name: "Greek Salad", Price: 9.49, Category: "Salads", Available: false},
		{ID: "7", Name: "Spaghetti Carbonara", Price: 13.49, Category: "Pasta", Available: true},
		{ID: "8", Name: "Fish and Chips", Price: 15.99, Category: "Seafood", Available: true},
		{ID: "9", Name: "Seafood Platter", Price: 24.99, Category: "Seafood", Available: true},
		{ID: "10", Name: "Tiramisu", Price: 6.99, Category: "Desserts", Available: true,
			Description: "Espresso-soaked ladyfingers with mascarpone"},
		{ID: "11", Name: "Coca Cola", Price: 2.49, Category: "Beverages", Available: true},
		{ID: "12", Name: "Orange Juice", Price: 3.49, Category: "Beverages", Available: true},
		{ID: "13", Name: "Garlic Bread", Price: 5.49, Category: "Appetizers", Available: true},
		{ID: "14", Name: "Lobster Thermidor", Price: 39.99, Category: "Seafood", Available: false},
	}
}

func testSnapshot() domain.Snapshot {
	return domain.Snapshot{Entries: testCatalog(), FetchedAt: time.Unix(1700000000, 0)}
}

func degradedSnapshot() domain.Snapshot {
	return domain.Snapshot{Degraded: true, FallbackNames: domain.FallbackMenuNames}
}

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	mu        sync.Mutex
	data      map[string][]byte
	getError  error
	setError  error
	setCalled bool
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{
		data: make(map[string][]byte),
	}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getError != nil {
		return nil, m.getError
	}
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalled = true
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// MockCatalogClient is a mock implementation of domain.CatalogClient
type MockCatalogClient struct {
	mu      sync.Mutex
	entries []domain.CatalogEntry
	err     error
	delay   time.Duration
	calls   int
}

func (m *MockCatalogClient) FetchMenu(ctx context.Context) ([]domain.CatalogEntry, error) {
	m.mu.Lock()
	m.calls++
	entries, err, delay := m.entries, m.err, m.delay
	m.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (m *MockCatalogClient) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// countingRecorder tallies recorder events for assertions
type countingRecorder struct {
	mu          sync.Mutex
	extractions map[string]int
	resolutions map[string]int
	fetches     map[string]int
	durations   int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{
		extractions: make(map[string]int),
		resolutions: make(map[string]int),
		fetches:     make(map[string]int),
	}
}

func (r *countingRecorder) Extraction(action string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extractions[action]++
}

func (r *countingRecorder) Resolution(tier string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolutions[tier]++
}

func (r *countingRecorder) CatalogFetch(result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetches[result]++
}

func (r *countingRecorder) ChatDuration(time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.durations++
}

func fixedClock() time.Time {
	return fixedNow
}
