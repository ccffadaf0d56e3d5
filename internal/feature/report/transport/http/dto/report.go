// Package dto defines data transfer objects for the report HTTP API.
package dto

import "time"

// ReportResponse is the body of a successful POST /v1/report.
type ReportResponse struct {
	Tickers     []string  `json:"tickers"`
	Report      string    `json:"report"`
	ReportHTML  string    `json:"report_html"`
	Warnings    []string  `json:"warnings"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
