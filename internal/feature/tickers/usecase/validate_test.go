package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ouchsaray/ai-stock-trader/internal/feature/tickers/usecase"
)

func TestIsValidTicker(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"four letters", "TSLA", true},
		{"single letter", "A", true},
		{"five letters", "GOOGL", true},
		{"lowercase", "tsla", true},
		{"mixed case", "aApL", true},
		{"surrounding spaces", "  AAPL  ", true},
		{"tabs and newline", "\tMSFT\n", true},
		{"empty", "", false},
		{"only spaces", "   ", false},
		{"six letters", "TOOLONG", false},
		{"digits", "123", false},
		{"digit inside", "TS1A", false},
		{"dot", "BRK.B", false},
		{"hyphen", "BF-B", false},
		{"inner space", "TS LA", false},
		{"non latin letter", "ÄPPL", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, usecase.IsValidTicker(tt.input))
		})
	}
}

func TestIsValidTicker_AllLetterStringsUpToFive(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"a", "ab", "abc", "abcd", "abcde", "Z", "zZ", "QqQ", "wxyZ", "VwXyZ"} {
		assert.True(t, usecase.IsValidTicker(s), s)
		assert.True(t, usecase.IsValidTicker(" "+s+" "), s)
	}
	for _, s := range []string{"abcdef", "a1", "a!", "a,b", "1"} {
		assert.False(t, usecase.IsValidTicker(s), s)
	}
}

func TestParseTickerInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"comma and space", "TSLA, PLTR, ASTS", []string{"TSLA", "PLTR", "ASTS"}},
		{"comma only", "TSLA,PLTR,ASTS", []string{"TSLA", "PLTR", "ASTS"}},
		{"space only", "TSLA PLTR ASTS", []string{"TSLA", "PLTR", "ASTS"}},
		{"mixed separators", "TSLA, PLTR ASTS", []string{"TSLA", "PLTR", "ASTS"}},
		{"lowercase uppercased", "tsla, pltr", []string{"TSLA", "PLTR"}},
		{"double comma", "TSLA,, PLTR", []string{"TSLA", "PLTR"}},
		{"leading and trailing spaces", "  TSLA   PLTR  ", []string{"TSLA", "PLTR"}},
		{"leading comma", ",TSLA", []string{"TSLA"}},
		{"invalid tokens are kept", "TSLA, 123, TOOLONG", []string{"TSLA", "123", "TOOLONG"}},
		{"tab and newline", "TSLA\tPLTR\nASTS", []string{"TSLA", "PLTR", "ASTS"}},
		{"vertical tab and form feed", "TSLA\vPLTR\fASTS", []string{"TSLA", "PLTR", "ASTS"}},
		{"no-break space", "TSLA\u00a0PLTR", []string{"TSLA", "PLTR"}},
		{"em space", "TSLA\u2003PLTR", []string{"TSLA", "PLTR"}},
		{"ideographic space", "TSLA\u3000PLTR", []string{"TSLA", "PLTR"}},
		{"byte order mark", "\ufeffTSLA,\ufeffPLTR", []string{"TSLA", "PLTR"}},
		{"empty", "", []string{}},
		{"only separators", " , ,  ", []string{}},
		{"only unicode spaces", "\u00a0\u3000", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := usecase.ParseTickerInput(tt.input)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterValidTickers(t *testing.T) {
	t.Parallel()

	valid, invalid := usecase.FilterValidTickers([]string{"TSLA", "TOOLONG", "aapl", "123"})
	assert.Equal(t, []string{"TSLA", "AAPL"}, valid)
	assert.Equal(t, []string{"TOOLONG", "123"}, invalid)

	valid, invalid = usecase.FilterValidTickers([]string{"TSLA", "AAPL", "PLTR"})
	assert.Equal(t, []string{"TSLA", "AAPL", "PLTR"}, valid)
	assert.Empty(t, invalid)

	valid, invalid = usecase.FilterValidTickers(nil)
	assert.Empty(t, valid)
	assert.Empty(t, invalid)
}

func TestRemoveDuplicateTickers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		tickers  []string
		existing []string
		want     []string
	}{
		{"case-insensitive duplicates", []string{"tsla", "TSLA"}, nil, []string{"TSLA"}},
		{"already tracked", []string{"AAPL"}, []string{"aapl"}, []string{}},
		{"keeps order", []string{"PLTR", "tsla", "pltr", "ASTS"}, []string{"ASTS"}, []string{"PLTR", "TSLA"}},
		{"empty input", []string{}, []string{"AAPL"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, usecase.RemoveDuplicateTickers(tt.tickers, tt.existing...))
		})
	}
}
