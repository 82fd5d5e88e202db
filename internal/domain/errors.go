package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCatalogUnavailable is returned when no catalog snapshot could be obtained
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrCatalogAPIFailure is returned when the catalog service request fails
	ErrCatalogAPIFailure = errors.New("catalog API request failed")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")

	// ErrSessionNotFound is returned when a session id has no stored history
	ErrSessionNotFound = errors.New("session not found")
)
