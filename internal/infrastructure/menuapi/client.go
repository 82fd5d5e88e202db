package menuapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/bellavista/orderbot/internal/domain"
)

const (
	maxAttempts = 3

	menuQuery = `query { menuItems { id name description price category available ingredients } }`
)

// Options configures the catalog client
type Options struct {
	Timeout time.Duration
	// RequestsPerMinute bounds outbound fetches; zero means 60
	RequestsPerMinute int
	Logger            *zap.Logger
}

// Client fetches the menu from the restaurant GraphQL API
type Client struct {
	httpClient  *http.Client
	endpoint    string
	rateLimiter *rate.Limiter
	logger      *zap.Logger
	backoff     func(attempt int) time.Duration
}

// NewClient creates a new GraphQL catalog client
func NewClient(endpoint string, opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	perMinute := opts.RequestsPerMinute
	if perMinute <= 0 {
		perMinute = 60
	}
	limiter := rate.NewLimiter(rate.Limit(float64(perMinute)/60), 10) // burst of 10 requests

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		endpoint:    endpoint,
		rateLimiter: limiter,
		logger:      logger.Named("menuapi"),
		backoff:     exponentialBackoff,
	}
}

// exponentialBackoff returns the wait before retrying after the given attempt: 500ms, 1s, 2s
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// doRequest posts the menu query with proper headers
func (c *Client) doRequest(ctx context.Context, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "BellaVistaOrderBot/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogAPIFailure, err)
	}

	return resp, nil
}

// FetchMenu retrieves every menu item, available or not.
// Transport failures, 5xx and 429 are retried; other 4xx and GraphQL errors are not.
func (c *Client) FetchMenu(ctx context.Context) ([]domain.CatalogEntry, error) {
	payload, err := json.Marshal(graphQLRequest{Query: menuQuery})
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if err := c.sleep(ctx, c.backoff(attempt-1)); err != nil {
				return nil, err
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			c.logger.Warn("rate limiter error", zap.Error(err))
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, payload)
		if err != nil {
			c.logger.Warn("menu request failed", zap.Int("attempt", attempt), zap.Error(err))
			lastErr = err
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			c.logger.Warn("menu API error",
				zap.Int("attempt", attempt),
				zap.Int("status", resp.StatusCode),
				zap.ByteString("body", body),
			)
			lastErr = fmt.Errorf("%w: status %d", domain.ErrCatalogAPIFailure, resp.StatusCode)
			if !retryable(resp.StatusCode) {
				return nil, lastErr
			}
			continue
		}

		entries, err := decodeMenu(body)
		if err != nil {
			c.logger.Error("invalid menu response", zap.Error(err))
			return nil, err
		}

		c.logger.Debug("menu fetched", zap.Int("items", len(entries)), zap.Int("attempt", attempt))
		return entries, nil
	}

	c.logger.Error("all menu fetch attempts failed", zap.Error(lastErr))
	return nil, lastErr
}

func retryable(status int) bool {
	return status >= http.StatusInternalServerError || status == http.StatusTooManyRequests
}

func (c *Client) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
