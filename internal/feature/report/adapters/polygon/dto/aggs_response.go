// Package dto defines the Polygon.io response payloads.
package dto

// AggsResponse is the body of GET /v2/aggs/ticker/{ticker}/range/1/day/{from}/{to}.
type AggsResponse struct {
	Ticker       string   `json:"ticker"`
	QueryCount   int      `json:"queryCount"`
	ResultsCount int      `json:"resultsCount"`
	Adjusted     bool     `json:"adjusted"`
	Results      []AggBar `json:"results"`
	Status       string   `json:"status"` // "OK", "DELAYED", "ERROR", "NOT_AUTHORIZED"
	RequestID    string   `json:"request_id"`
	Count        int      `json:"count"`
	Error        string   `json:"error,omitempty"`
	Message      string   `json:"message,omitempty"`
}

// AggBar is one aggregate window.
type AggBar struct {
	Volume       float64 `json:"v"`
	VWAP         float64 `json:"vw"`
	Open         float64 `json:"o"`
	Close        float64 `json:"c"`
	High         float64 `json:"h"`
	Low          float64 `json:"l"`
	Timestamp    int64   `json:"t"`
	Transactions int64   `json:"n"`
}
