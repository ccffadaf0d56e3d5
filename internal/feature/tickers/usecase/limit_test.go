package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ouchsaray/ai-stock-trader/internal/feature/tickers/domain/entity"
	"github.com/ouchsaray/ai-stock-trader/internal/feature/tickers/usecase"
)

func TestCheckTickerLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                    string
		current, requested, max int
		want                    entity.LimitCheck
	}{
		{"partial room", 2, 3, 3, entity.LimitCheck{CanAdd: 1, Exceeded: true, AvailableSlots: 1}},
		{"plenty of room", 0, 2, 3, entity.LimitCheck{CanAdd: 2, Exceeded: false, AvailableSlots: 3}},
		{"exact fit", 1, 2, 3, entity.LimitCheck{CanAdd: 2, Exceeded: false, AvailableSlots: 2}},
		{"full", 3, 1, 3, entity.LimitCheck{CanAdd: 0, Exceeded: true, AvailableSlots: 0}},
		{"over capacity", 4, 1, 3, entity.LimitCheck{CanAdd: 0, Exceeded: true, AvailableSlots: -1}},
		{"nothing requested", 1, 0, 3, entity.LimitCheck{CanAdd: 0, Exceeded: false, AvailableSlots: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, usecase.CheckTickerLimit(tt.current, tt.requested, tt.max))
		})
	}
}

func TestAddCandidates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		existing   []string
		candidates []string
		wantSel    []string
		wantResult entity.AddResult
	}{
		{
			name:       "stops at capacity",
			existing:   []string{},
			candidates: []string{"tsla", "pltr", "ASTS", "nvda"},
			wantSel:    []string{"TSLA", "PLTR", "ASTS"},
			wantResult: entity.AddResult{Added: []string{"TSLA", "PLTR", "ASTS"}, Invalid: []string{}, LimitReached: true},
		},
		{
			name:       "invalid recorded and skipped",
			existing:   []string{},
			candidates: []string{"TOOLONG", "AAPL", "12"},
			wantSel:    []string{"AAPL"},
			wantResult: entity.AddResult{Added: []string{"AAPL"}, Invalid: []string{"TOOLONG", "12"}},
		},
		{
			name:       "duplicates skipped silently",
			existing:   []string{"AAPL"},
			candidates: []string{"aapl", "MSFT", "msft"},
			wantSel:    []string{"AAPL", "MSFT"},
			wantResult: entity.AddResult{Added: []string{"MSFT"}, Invalid: []string{}},
		},
		{
			name:       "already full",
			existing:   []string{"A", "B", "C"},
			candidates: []string{"D"},
			wantSel:    []string{"A", "B", "C"},
			wantResult: entity.AddResult{Added: []string{}, Invalid: []string{}, LimitReached: true},
		},
		{
			name:       "invalid after capacity is not inspected",
			existing:   []string{"A", "B"},
			candidates: []string{"C", "123"},
			wantSel:    []string{"A", "B", "C"},
			wantResult: entity.AddResult{Added: []string{"C"}, Invalid: []string{}, LimitReached: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sel := entity.NewSelection(3)
			sel.Tickers = append(sel.Tickers, tt.existing...)

			got := usecase.AddCandidates(&sel, tt.candidates)

			assert.Equal(t, tt.wantResult, got)
			assert.Equal(t, tt.wantSel, sel.Tickers)
			assert.LessOrEqual(t, sel.Len(), sel.Max)
		})
	}
}
