// Package dto defines data transfer objects for the tickers HTTP API.
package dto

// AddTickersRequest is the body of POST /v1/tickers.
type AddTickersRequest struct {
	Input string `json:"input" binding:"required"` // 自由入力（例: "TSLA, PLTR ASTS"）
}

// SelectionResponse is the current selection of a session.
type SelectionResponse struct {
	Tickers   []string `json:"tickers"`
	Max       int      `json:"max"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
}

// AddTickersResponse reports what an add request changed.
type AddTickersResponse struct {
	Tickers      []string `json:"tickers"`
	Max          int      `json:"max"`
	Added        []string `json:"added"`
	Invalid      []string `json:"invalid"`
	LimitReached bool     `json:"limit_reached"`
	Warnings     []string `json:"warnings"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
