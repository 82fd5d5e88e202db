package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// CatalogClient defines the interface for fetching the menu from the catalog service
type CatalogClient interface {
	FetchMenu(ctx context.Context) ([]CatalogEntry, error)
}
