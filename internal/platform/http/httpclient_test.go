package http

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient(t *testing.T) {
	t.Parallel()

	c := NewHTTPClient(7 * time.Second)

	assert.Equal(t, 7*time.Second, c.Timeout)
	lt, ok := c.Transport.(*loggingTransport)
	require.True(t, ok)
	tr, ok := lt.next.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, 100, tr.MaxIdleConns)
}

func TestRedactURL(t *testing.T) {
	t.Parallel()

	u, err := url.Parse("https://api.polygon.io/v2/aggs/ticker/AAPL/range/1/day/2025-03-07/2025-03-09?adjusted=true&apiKey=secret")
	require.NoError(t, err)

	got := RedactURL(u)
	assert.NotContains(t, got, "secret")
	assert.Contains(t, got, "apiKey=REDACTED")
	assert.Contains(t, got, "adjusted=true")
	assert.Contains(t, u.String(), "secret", "input URL is untouched")

	assert.Equal(t, "", RedactURL(nil))
}

func TestLoggingTransport_LogsWithoutSecrets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	c := &http.Client{Transport: &loggingTransport{next: http.DefaultTransport}}
	res, err := c.Get(server.URL + "/x?apiKey=secret")
	require.NoError(t, err)
	_ = res.Body.Close()

	assert.Equal(t, http.StatusTeapot, res.StatusCode)
	assert.Contains(t, buf.String(), "status=418")
	assert.NotContains(t, buf.String(), "secret")
}
