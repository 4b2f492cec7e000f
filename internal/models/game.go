// Package models defines the core domain entities for the lottogen application.
// These models represent lottery games, their result sources, historical draws,
// and the statistics derived from them. All models include built-in validation
// to ensure data integrity throughout the application.
//
// Terminology:
//   - Game: a lottery product (e.g. Lotto 6/49), defined by how many main
//     numbers are drawn and the inclusive upper bound of the number universe.
//   - SourceGroup: one results provider with its candidate URLs and the parser
//     strategy its pages require. Group order encodes fallback priority.
//   - Draw: one historical drawing, keyed by its calendar date.
package models

import (
	"errors"
	"fmt"
)

// ParserStrategy selects which parsing strategy a source group's pages need.
// The set is closed: dispatch happens over these two variants only.
type ParserStrategy string

const (
	// StrategyPrintLayout parses the flattened visible text of print-friendly
	// result pages, splitting on month-name tokens.
	StrategyPrintLayout ParserStrategy = "print"
	// StrategyGenericTable walks every HTML table row looking for a date cell
	// plus enough in-range numbers.
	StrategyGenericTable ParserStrategy = "generic"
)

// Valid reports whether s is a known parser strategy.
func (s ParserStrategy) Valid() bool {
	return s == StrategyPrintLayout || s == StrategyGenericTable
}

// SourceGroup is one results provider: a display label, the ordered candidate
// URLs (mirrors/variants of the same provider), and the parser strategy for
// its pages. Groups are never reordered at runtime; their position in
// Game.Sources is the fallback priority.
type SourceGroup struct {
	Label    string         `mapstructure:"label" json:"label"`
	URLs     []string       `mapstructure:"urls" json:"urls"`
	Strategy ParserStrategy `mapstructure:"parser" json:"parser"`
}

// Validate checks that the source group is usable.
func (g *SourceGroup) Validate() error {
	if g.Label == "" {
		return errors.New("source group label must not be empty")
	}
	if len(g.URLs) == 0 {
		return fmt.Errorf("source group %q has no URLs", g.Label)
	}
	for _, u := range g.URLs {
		if u == "" {
			return fmt.Errorf("source group %q contains an empty URL", g.Label)
		}
	}
	if !g.Strategy.Valid() {
		return fmt.Errorf("source group %q has unknown parser strategy %q", g.Label, g.Strategy)
	}
	return nil
}

// Game identifies a lottery game and where its past results come from.
type Game struct {
	Name         string        `mapstructure:"name" json:"name"`
	NumbersDrawn int           `mapstructure:"numbers_drawn" json:"numbers_drawn"`
	MaxNumber    int           `mapstructure:"max_number" json:"max_number"`
	Sources      []SourceGroup `mapstructure:"sources" json:"sources"`
	InfoURL      string        `mapstructure:"info_url" json:"info_url,omitempty"`
}

// Validate checks the game definition. The 1 <= NumbersDrawn < MaxNumber
// invariant guarantees a line of distinct numbers always exists.
func (g *Game) Validate() error {
	if g.Name == "" {
		return errors.New("game name must not be empty")
	}
	if g.NumbersDrawn < 1 {
		return fmt.Errorf("game %q: numbers_drawn must be at least 1", g.Name)
	}
	if g.NumbersDrawn >= g.MaxNumber {
		return fmt.Errorf("game %q: numbers_drawn (%d) must be less than max_number (%d)",
			g.Name, g.NumbersDrawn, g.MaxNumber)
	}
	if len(g.Sources) == 0 {
		return fmt.Errorf("game %q has no result sources", g.Name)
	}
	for i := range g.Sources {
		if err := g.Sources[i].Validate(); err != nil {
			return fmt.Errorf("game %q: %w", g.Name, err)
		}
	}
	return nil
}
