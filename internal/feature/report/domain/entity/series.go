// Package entity defines the domain types of the report feature.
package entity

import "encoding/json"

// Bar is one daily aggregate as returned by the market-data provider.
type Bar struct {
	Open         float64 `json:"o"`
	High         float64 `json:"h"`
	Low          float64 `json:"l"`
	Close        float64 `json:"c"`
	Volume       float64 `json:"v"`
	VWAP         float64 `json:"vw,omitempty"`
	Timestamp    int64   `json:"t"` // Unix ms
	Transactions int64   `json:"n,omitempty"`
}

// PriceSeries is the daily price series of one ticker over a date range.
// Raw keeps the provider's response body so it can be handed to the report
// model unchanged.
type PriceSeries struct {
	Ticker       string          `json:"ticker"`
	ResultsCount int             `json:"results_count"`
	Results      []Bar           `json:"results"`
	Raw          json.RawMessage `json:"raw"`
}

// SeriesResult is the outcome of fetching one ticker: either a validated
// series, or a reason why the ticker was rejected.
type SeriesResult struct {
	Ticker string
	Series *PriceSeries
	Reason string
}

// Valid reports whether the result carries usable data.
func (r SeriesResult) Valid() bool {
	return r.Series != nil && r.Reason == ""
}
