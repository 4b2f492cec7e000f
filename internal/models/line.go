package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Generation methods recorded against history rows.
const (
	MethodQuickPick = "Quick Pick"
	MethodTopProb   = "Bonus (Top Prob)"
)

// SmartMethod returns the method label for a smart pick with the given
// weighting flavor, e.g. "Smart:balanced".
func SmartMethod(flavor string) string {
	return "Smart:" + flavor
}

// Line is one generated set of numbers, sorted ascending.
type Line struct {
	Numbers []int  `json:"numbers"`
	Method  string `json:"method"`
}

// String renders the numbers zero-padded and space-separated ("01 05 12 ...").
func (l Line) String() string {
	parts := make([]string, len(l.Numbers))
	for i, n := range l.Numbers {
		parts[i] = fmt.Sprintf("%02d", n)
	}
	return strings.Join(parts, " ")
}

// GenerationRecord is one persisted history row. The column set
// (timestamp, app_version, game, method, seed, line) is a contract shared
// with CSV exports; Seed is carried for schema compatibility but unused.
type GenerationRecord struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	AppVersion string    `json:"app_version"`
	Game       string    `json:"game"`
	Method     string    `json:"method"`
	Seed       string    `json:"seed"`
	Line       string    `json:"line"`
}

// FormatLine renders numbers as the space-separated integer string stored in
// the Line column (no zero padding, matching the persisted-history format).
func FormatLine(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, " ")
}

// Validate checks that the record carries the fields every history row needs.
func (r *GenerationRecord) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("generation record ID must not be empty")
	}
	if r.Timestamp.IsZero() {
		return fmt.Errorf("generation record timestamp must be set")
	}
	if r.Game == "" {
		return fmt.Errorf("generation record game must not be empty")
	}
	if r.Method == "" {
		return fmt.Errorf("generation record method must not be empty")
	}
	if r.Line == "" {
		return fmt.Errorf("generation record line must not be empty")
	}
	return nil
}
