package models

import (
	"errors"
	"fmt"
)

// DrawRecord is one historical drawing. Date is the canonical ISO calendar
// date (YYYY-MM-DD) and the unique key within a draw list. Main holds the
// drawn numbers in the order the source listed them. Bonus is 0 when the
// source did not expose a bonus number (valid numbers start at 1).
//
// Records live in memory only, for the lifetime of one update cycle; the next
// update replaces them wholesale.
type DrawRecord struct {
	Date  string `json:"date"`
	Main  []int  `json:"main"`
	Bonus int    `json:"bonus,omitempty"`
}

// HasBonus reports whether the source exposed a bonus number for this draw.
func (d *DrawRecord) HasBonus() bool {
	return d.Bonus != 0
}

// Validate checks the record against a game's dimensions: the date is
// present, Main has exactly numbersDrawn distinct values, and every number
// is within [1, maxNumber].
func (d *DrawRecord) Validate(numbersDrawn, maxNumber int) error {
	if d.Date == "" {
		return errors.New("draw date must not be empty")
	}
	if len(d.Main) != numbersDrawn {
		return fmt.Errorf("draw %s: expected %d main numbers, got %d", d.Date, numbersDrawn, len(d.Main))
	}
	seen := make(map[int]bool, len(d.Main))
	for _, n := range d.Main {
		if n < 1 || n > maxNumber {
			return fmt.Errorf("draw %s: number %d out of range [1, %d]", d.Date, n, maxNumber)
		}
		if seen[n] {
			return fmt.Errorf("draw %s: duplicate number %d", d.Date, n)
		}
		seen[n] = true
	}
	if d.Bonus != 0 && (d.Bonus < 1 || d.Bonus > maxNumber) {
		return fmt.Errorf("draw %s: bonus %d out of range [1, %d]", d.Date, d.Bonus, maxNumber)
	}
	return nil
}
