package scrape

import "testing"

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"weekday long form", "Saturday January 4, 2025", "2025-01-04", true},
		{"weekday with commas", "Saturday, January 4, 2025", "2025-01-04", true},
		{"month day year", "January 4, 2025", "2025-01-04", true},
		{"no comma", "January 4 2025", "2025-01-04", true},
		{"two digit day", "Friday December 27, 2024", "2024-12-27", true},
		{"padded whitespace", "  January   4,  2025  ", "2025-01-04", true},
		{"numeric date", "04/01/2025", "", false},
		{"iso date", "2025-01-04", "", false},
		{"no date at all", "Lotto 6/49 winning numbers", "", false},
		{"empty", "", "", false},
		{"month only", "January", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.in)
			if ok != tt.ok {
				t.Fatalf("ParseDate(%q) ok = %v, expected %v", tt.in, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("ParseDate(%q) = %q, expected %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseDateNeverPanicsOnGarbage(t *testing.T) {
	inputs := []string{
		"January 99, 2025", "January -4, 2025", ", , ,", "\x00\x01", "4",
	}
	for _, in := range inputs {
		if got, ok := ParseDate(in); ok {
			t.Errorf("ParseDate(%q) unexpectedly parsed to %q", in, got)
		}
	}
}
