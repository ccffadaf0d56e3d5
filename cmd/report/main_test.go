package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectTickers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		max  int
		want []string
	}{
		{"single argument list", []string{"tsla, pltr"}, 3, []string{"TSLA", "PLTR"}},
		{"separate arguments", []string{"tsla", "PLTR", "asts"}, 3, []string{"TSLA", "PLTR", "ASTS"}},
		{"invalid skipped", []string{"AAPL", "123", "TOOLONG"}, 3, []string{"AAPL"}},
		{"duplicates removed", []string{"aapl", "AAPL", "msft"}, 3, []string{"AAPL", "MSFT"}},
		{"limit applied after dedupe", []string{"A", "a", "B", "C", "D"}, 3, []string{"A", "B", "C"}},
		{"nothing usable", []string{"123", ","}, 3, []string{}},
		{"no arguments", nil, 3, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, selectTickers(tt.args, tt.max))
		})
	}
}
