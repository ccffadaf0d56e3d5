// Package polygon provides a client for the Polygon.io aggregates API.
package polygon

import "time"

const (
	// DefaultBaseURL is the public Polygon.io endpoint.
	DefaultBaseURL = "https://api.polygon.io"
	// DefaultTimeout bounds a single aggregates request.
	DefaultTimeout = 10 * time.Second
)

// Config holds configuration for the Polygon.io API client.
type Config struct {
	APIKey  string        // API key for authentication
	BaseURL string        // Base URL for the API (e.g., "https://api.polygon.io")
	Timeout time.Duration // HTTP request timeout
}

// withDefaults fills empty fields.
func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}
