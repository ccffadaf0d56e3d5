// Package entity defines the domain models for the tickers feature.
package entity

import "strings"

// DefaultMaxTickers is the selection capacity used when none is configured.
const DefaultMaxTickers = 3

// Selection is the ordered, deduplicated, capacity-bounded set of tickers
// a session has chosen. Tickers are stored in canonical (uppercase) form.
type Selection struct {
	Tickers []string `json:"tickers"`
	Max     int      `json:"max"`
}

// NewSelection returns an empty selection. A non-positive max falls back to DefaultMaxTickers.
func NewSelection(max int) Selection {
	if max <= 0 {
		max = DefaultMaxTickers
	}
	return Selection{Tickers: []string{}, Max: max}
}

// Len returns the number of selected tickers.
func (s *Selection) Len() int {
	return len(s.Tickers)
}

// IsFull reports whether no more tickers can be added.
func (s *Selection) IsFull() bool {
	return len(s.Tickers) >= s.Max
}

// Contains reports whether ticker is already selected, ignoring case.
func (s *Selection) Contains(ticker string) bool {
	upper := strings.ToUpper(strings.TrimSpace(ticker))
	for _, t := range s.Tickers {
		if t == upper {
			return true
		}
	}
	return false
}

// Clear empties the selection and keeps its capacity.
func (s *Selection) Clear() {
	s.Tickers = []string{}
}

// AddResult reports the outcome of adding a batch of candidates.
type AddResult struct {
	Added        []string // tickers appended, in order
	Invalid      []string // candidates rejected by format validation
	LimitReached bool     // processing stopped because the selection was full
}

// LimitCheck is the arithmetic answer to "how many of these fit?".
type LimitCheck struct {
	CanAdd         int  // how many of the requested tickers fit, never negative
	Exceeded       bool // more were requested than there is room for
	AvailableSlots int  // max - current, may be negative
}
