// Package scrape acquires historical draw data: it fetches result pages from
// ordered provider groups with first-success-wins fallback, parses them with
// one of two strategies (print-layout text or generic HTML tables), and
// normalizes the results into deduplicated, date-sorted draw records.
package scrape

import (
	"strings"
	"time"
)

// dateLayouts are tried in priority order against comma-stripped text.
// Providers publish dates as "Saturday January 4, 2025" or "January 4, 2025";
// commas are removed before matching so one layout covers both spellings.
var dateLayouts = []string{
	"Monday January 2 2006",
	"January 2 2006",
}

// isoDate is the canonical calendar-date key format (YYYY-MM-DD).
const isoDate = "2006-01-02"

// ParseDate normalizes free-form text containing a calendar date into an ISO
// YYYY-MM-DD string. The second return value is false when no known format
// matches; that is a normal outcome, not an error, and callers skip the
// candidate.
func ParseDate(text string) (string, bool) {
	t := strings.Join(strings.Fields(strings.ReplaceAll(text, ",", " ")), " ")
	if t == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, t); err == nil {
			return parsed.Format(isoDate), true
		}
	}
	return "", false
}
