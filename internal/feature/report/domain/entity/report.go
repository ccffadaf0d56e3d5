package entity

import "time"

// Report is a generated prediction report.
type Report struct {
	Text        string    // model output as returned
	HTML        string    // rendered fragment
	Tickers     []string  // tickers the report covers
	GeneratedAt time.Time // UTC
}
