package entity

import (
	"time"

	"github.com/ouchsaray/ai-stock-trader/internal/shared/daterange"
)

// Session is the per-visitor state: the ticker selection and the date
// window computed when the session started.
type Session struct {
	ID        string              `json:"id"`
	Selection Selection           `json:"selection"`
	Range     daterange.DateRange `json:"range"`
	CreatedAt time.Time           `json:"created_at"`
}

// NewSession creates an empty session whose date window is fixed for its lifetime.
func NewSession(id string, maxTickers int, r daterange.DateRange, now time.Time) *Session {
	return &Session{
		ID:        id,
		Selection: NewSelection(maxTickers),
		Range:     r,
		CreatedAt: now,
	}
}
