package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"canonical unchanged", "2025-02-15", "2025-02-15"},
		{"day first slash", "15/02/2025", "2025-02-15"},
		{"day first dash", "15-02-2025", "2025-02-15"},
		{"single digit day and month", "5/2/2025", "2025-02-05"},
		{"two digit year", "15/02/25", "2025-02-15"},
		{"year first", "2025/2/5", "2025-02-05"},
		{"month name", "Feb 15, 2025", "2025-02-15"},
		{"full month name", "February 15 2025", "2025-02-15"},
		{"month name with ordinal", "Feb 1st, 2025", "2025-02-01"},
		{"day before month name", "15 Feb 2025", "2025-02-15"},
		{"day before month with ordinal", "3rd March 2025", "2025-03-03"},
		{"abbreviated with period", "Dec. 24, 2025", "2025-12-24"},
		{"surrounding whitespace", "  15/02/2025  ", "2025-02-15"},
		{"unknown month word", "Smarch 5, 2025", "Smarch 5, 2025"},
		{"month out of range", "15/13/2025", "15/13/2025"},
		{"day out of range", "32/01/2025", "32/01/2025"},
		{"free text unchanged", "next Tuesday", "next Tuesday"},
		{"empty unchanged", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDate(tt.input))
		})
	}
}

func TestNormalizeDateIdempotent(t *testing.T) {
	inputs := []string{"15/02/2025", "Feb 15, 2025", "2025-02-15", "garbage"}
	for _, in := range inputs {
		once := NormalizeDate(in)
		assert.Equal(t, once, NormalizeDate(once), "normalizing twice must be stable for %q", in)
	}
}

func TestParseAmount(t *testing.T) {
	n, ok := parseAmount("1,200.50")
	assert.True(t, ok)
	assert.Equal(t, 1200.50, n)

	_, ok = parseAmount("12o0")
	assert.False(t, ok)

	_, ok = parseAmount("")
	assert.False(t, ok)
}
