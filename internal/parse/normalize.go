// Package parse implements the order-text intake pipeline: a rule-based
// local extractor, an optional hosted language-model extractor, field
// normalization, and the missing-field completeness check, unified behind
// one Parse call.
package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	reCanonicalDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reDayFirstDate  = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{2}|\d{4})$`)
	reYearFirstDate = regexp.MustCompile(`^(\d{4})[/-](\d{1,2})[/-](\d{1,2})$`)
	reMonthNameDate = regexp.MustCompile(`^([A-Za-z]+)\.?\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})$`)
	reDayMonthDate  = regexp.MustCompile(`^(\d{1,2})(?:st|nd|rd|th)?\s+([A-Za-z]+)\.?,?\s+(\d{4})$`)
)

// months maps the first three letters of a month token to its number.
var months = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// NormalizeDate converts heterogeneous date spellings to canonical
// YYYY-MM-DD. Two-digit years are treated as 20YY. If no known shape
// matches, the input is returned unchanged; the caller treats an
// unrecognized date as best effort.
func NormalizeDate(value string) string {
	s := strings.TrimSpace(value)
	if s == "" || reCanonicalDate.MatchString(s) {
		return value
	}

	if m := reDayFirstDate.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year := m[3]
		if len(year) == 2 {
			year = "20" + year
		}
		return formatDate(year, month, day, value)
	}

	if m := reYearFirstDate.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return formatDate(m[1], month, day, value)
	}

	if m := reMonthNameDate.FindStringSubmatch(s); m != nil {
		month, ok := monthNumber(m[1])
		if !ok {
			return value
		}
		day, _ := strconv.Atoi(m[2])
		return formatDate(m[3], month, day, value)
	}

	if m := reDayMonthDate.FindStringSubmatch(s); m != nil {
		month, ok := monthNumber(m[2])
		if !ok {
			return value
		}
		day, _ := strconv.Atoi(m[1])
		return formatDate(m[3], month, day, value)
	}

	return value
}

// monthNumber resolves a month token by its first three letters,
// case-insensitively.
func monthNumber(token string) (int, bool) {
	t := strings.ToLower(token)
	if len(t) < 3 {
		return 0, false
	}
	n, ok := months[t[:3]]
	return n, ok
}

// formatDate zero-pads into YYYY-MM-DD, falling back to the original value
// when the components are out of range.
func formatDate(year string, month, day int, original string) string {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return original
	}
	return fmt.Sprintf("%s-%02d-%02d", year, month, day)
}

// parseAmount converts a numeral with optional thousands separators into a
// float. A value that does not parse cleanly reports ok=false so the field
// stays unset.
func parseAmount(s string) (float64, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if cleaned == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
