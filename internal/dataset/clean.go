package dataset

import (
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order when cleaning date cells. The joined
// export mixes ISO dates with the dd/mm/yyyy convention of the upstream
// planning tool.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"02-01-2006",
	time.RFC3339,
}

// CleanCompletion normalizes a raw completion cell into a fraction.
// Percent-formatted strings ("70%", "0,7%") are stripped of the percent
// sign, comma decimal separators are replaced, and the result is divided
// by 100. Bare numerics parse directly, accepting either decimal
// separator. Unparseable input yields nil: a missing completion is
// excluded from averages rather than counted as zero.
func CleanCompletion(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	percent := strings.Contains(s, "%")
	s = strings.ReplaceAll(s, "%", "")
	s = strings.ReplaceAll(s, ",", ".")

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	if percent {
		v /= 100
	}
	return &v
}

// CleanCost normalizes a raw cost cell. Unlike completion, a cost that
// fails to parse becomes 0: the table treats an absent cost as no cost
// incurred.
func CleanCost(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	// Cost columns occasionally carry the same comma-decimal convention
	// as completion. Only rewrite the comma when it is clearly a decimal
	// separator, not a thousands separator.
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// CleanDate parses a raw date cell against the known layouts. Failure
// yields nil, never an error.
func CleanDate(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
