package menuapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/bellavista/orderbot/internal/domain"
)

const menuBody = `{"data":{"menuItems":[
	{"id":"1","name":"Margherita Pizza","description":null,"price":12.99,"category":"Pizza","available":true,"ingredients":["tomato","mozzarella"]},
	{"id":2,"name":"Greek Salad","description":"Feta and olives","price":9.49,"category":"Salads","available":false,"ingredients":[]}
]}}`

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c := NewClient(url, Options{Timeout: 2 * time.Second, RequestsPerMinute: 6000, Logger: zaptest.NewLogger(t)})
	c.backoff = func(int) time.Duration { return 0 }
	return c
}

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:4000/graphql", Options{})

	assert.NotNil(t, client)
	assert.Equal(t, "http://localhost:4000/graphql", client.endpoint)
	assert.Equal(t, 10*time.Second, client.httpClient.Timeout)
	assert.NotNil(t, client.rateLimiter)
	assert.NotNil(t, client.logger)
}

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 500 * time.Millisecond},
		{2, 1000 * time.Millisecond},
		{3, 2000 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.expected.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, exponentialBackoff(tt.attempt))
		})
	}
}

func TestFetchMenu_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		raw, _ := io.ReadAll(r.Body)
		var req graphQLRequest
		require.NoError(t, json.Unmarshal(raw, &req))
		assert.Contains(t, req.Query, "menuItems")
		assert.Contains(t, req.Query, "ingredients")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(menuBody))
	}))
	defer server.Close()

	entries, err := newTestClient(t, server.URL).FetchMenu(context.Background())

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.CatalogEntry{
		ID: "1", Name: "Margherita Pizza", Price: 12.99, Category: "Pizza", Available: true,
		Ingredients: []string{"tomato", "mozzarella"},
	}, entries[0])
	assert.Equal(t, "2", entries[1].ID)
	assert.False(t, entries[1].Available)
	assert.Equal(t, "Feta and olives", entries[1].Description)
}

func TestFetchMenu_ServerError_Retries(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(menuBody))
	}))
	defer server.Close()

	entries, err := newTestClient(t, server.URL).FetchMenu(context.Background())

	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestFetchMenu_AllRetriesFail(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	entries, err := newTestClient(t, server.URL).FetchMenu(context.Background())

	assert.Nil(t, entries)
	assert.ErrorIs(t, err, domain.ErrCatalogAPIFailure)
	assert.Equal(t, int32(maxAttempts), atomic.LoadInt32(&attempts))
}

func TestFetchMenu_ClientError_NoRetry(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).FetchMenu(context.Background())

	assert.ErrorIs(t, err, domain.ErrCatalogAPIFailure)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts)) // Should not retry 4xx errors
}

func TestFetchMenu_TooManyRequests_Retries(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(menuBody))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).FetchMenu(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))
}

func TestFetchMenu_GraphQLErrors_NoRetry(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		_, _ = w.Write([]byte(`{"errors":[{"message":"Cannot query field"}],"data":null}`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).FetchMenu(context.Background())

	assert.ErrorIs(t, err, domain.ErrCatalogAPIFailure)
	assert.Contains(t, err.Error(), "Cannot query field")
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}

func TestFetchMenu_MissingData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).FetchMenu(context.Background())

	assert.ErrorIs(t, err, domain.ErrCatalogAPIFailure)
}

func TestFetchMenu_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	client.backoff = exponentialBackoff

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := client.FetchMenu(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFetchMenu_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestClient(t, url).FetchMenu(context.Background())

	assert.ErrorIs(t, err, domain.ErrCatalogAPIFailure)
}
