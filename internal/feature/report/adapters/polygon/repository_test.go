package polygon

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ouchsaray/ai-stock-trader/internal/shared/daterange"
)

var testRange = daterange.DateRange{Start: "2025-03-07", End: "2025-03-09"}

func TestNewPolygonMarket_Defaults(t *testing.T) {
	t.Parallel()

	market := NewPolygonMarket(Config{APIKey: "k"}, &http.Client{})

	require.NotNil(t, market)
	assert.Equal(t, DefaultBaseURL, market.cfg.BaseURL)
	assert.Equal(t, DefaultTimeout, market.cfg.Timeout)
	assert.Equal(t, "k", market.cfg.APIKey)
}

func TestPolygonMarket_GetAggregates_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify request path and parameters
		assert.Equal(t, "/v2/aggs/ticker/AAPL/range/1/day/2025-03-07/2025-03-09", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("adjusted"))
		assert.Equal(t, "asc", r.URL.Query().Get("sort"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
			"ticker": "AAPL",
			"queryCount": 2,
			"resultsCount": 2,
			"adjusted": true,
			"results": [
				{"v": 1000, "vw": 170.5, "o": 170, "c": 171, "h": 172, "l": 169, "t": 1741305600000, "n": 10},
				{"v": 2000, "vw": 171.5, "o": 171, "c": 173, "h": 174, "l": 170, "t": 1741564800000, "n": 20}
			],
			"status": "OK",
			"request_id": "abc",
			"count": 2
		}`))
	}))
	defer server.Close()

	market := NewPolygonMarket(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5 * time.Second}, server.Client())

	s, err := market.GetAggregates(context.Background(), "AAPL", testRange)
	require.NoError(t, err)

	assert.Equal(t, "AAPL", s.Ticker)
	assert.Equal(t, 2, s.ResultsCount)
	require.Len(t, s.Results, 2)
	assert.Equal(t, 170.0, s.Results[0].Open)
	assert.Equal(t, 173.0, s.Results[1].Close)
	assert.Equal(t, int64(1741305600000), s.Results[0].Timestamp)
	assert.NotContains(t, string(s.Raw), "\n", "raw body is compacted")
	assert.True(t, strings.HasPrefix(string(s.Raw), `{"ticker":"AAPL","queryCount":2`))
}

func TestPolygonMarket_GetAggregates_UnknownTicker(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ticker":"BADTIC","queryCount":0,"resultsCount":0,"adjusted":true,"status":"OK","request_id":"x"}`))
	}))
	defer server.Close()

	market := NewPolygonMarket(Config{APIKey: "k", BaseURL: server.URL}, server.Client())

	s, err := market.GetAggregates(context.Background(), "BADTIC", testRange)
	require.NoError(t, err)
	assert.Equal(t, 0, s.ResultsCount)
	assert.Empty(t, s.Results)
}

func TestPolygonMarket_GetAggregates_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		body        string
		errContains string
	}{
		{
			name:        "http error with message",
			status:      http.StatusForbidden,
			body:        `{"status":"NOT_AUTHORIZED","request_id":"x","message":"You are not entitled to this data."}`,
			errContains: "polygon http 403: You are not entitled to this data.",
		},
		{
			name:        "http error without body",
			status:      http.StatusInternalServerError,
			body:        ``,
			errContains: "polygon http 500: Internal Server Error",
		},
		{
			name:        "error status in 200 body",
			status:      http.StatusOK,
			body:        `{"status":"ERROR","error":"Unknown API Key"}`,
			errContains: "polygon: Unknown API Key",
		},
		{
			name:        "invalid json",
			status:      http.StatusOK,
			body:        `{invalid`,
			errContains: "decode response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			market := NewPolygonMarket(Config{APIKey: "k", BaseURL: server.URL}, server.Client())

			s, err := market.GetAggregates(context.Background(), "AAPL", testRange)
			require.Error(t, err)
			assert.Nil(t, s)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestPolygonMarket_GetAggregates_TransportErrorHidesKey(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	market := NewPolygonMarket(Config{APIKey: "secret-key", BaseURL: baseURL}, &http.Client{Timeout: time.Second})

	_, err := market.GetAggregates(context.Background(), "AAPL", testRange)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "secret-key")
}

func TestPolygonMarket_GetAggregates_ContextCanceled(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	market := NewPolygonMarket(Config{APIKey: "k", BaseURL: server.URL}, server.Client())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := market.GetAggregates(ctx, "AAPL", testRange)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPolygonMarket_GetAggregates_ConfigTimeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	// HTTPクライアント側にはタイムアウトを設定しない
	market := NewPolygonMarket(Config{APIKey: "k", BaseURL: server.URL, Timeout: 50 * time.Millisecond}, server.Client())

	start := time.Now()
	_, err := market.GetAggregates(context.Background(), "AAPL", testRange)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}
