package models

import "testing"

func validGame() Game {
	return Game{
		Name:         "Lotto 6/49",
		NumbersDrawn: 6,
		MaxNumber:    49,
		Sources: []SourceGroup{
			{Label: "WCLC", URLs: []string{"https://example.com"}, Strategy: StrategyPrintLayout},
		},
	}
}

func TestGameValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Game)
		wantErr bool
	}{
		{"valid", func(g *Game) {}, false},
		{"empty name", func(g *Game) { g.Name = "" }, true},
		{"zero drawn", func(g *Game) { g.NumbersDrawn = 0 }, true},
		{"drawn equals max", func(g *Game) { g.NumbersDrawn = g.MaxNumber }, true},
		{"no sources", func(g *Game) { g.Sources = nil }, true},
		{"source without urls", func(g *Game) { g.Sources[0].URLs = nil }, true},
		{"source with empty url", func(g *Game) { g.Sources[0].URLs = []string{""} }, true},
		{"source without label", func(g *Game) { g.Sources[0].Label = "" }, true},
		{"unknown strategy", func(g *Game) { g.Sources[0].Strategy = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := validGame()
			tt.mutate(&g)
			err := g.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParserStrategyValid(t *testing.T) {
	if !StrategyPrintLayout.Valid() || !StrategyGenericTable.Valid() {
		t.Error("expected both known strategies to be valid")
	}
	if ParserStrategy("").Valid() || ParserStrategy("xpath").Valid() {
		t.Error("expected unknown strategies to be invalid")
	}
}

func TestDrawRecordValidate(t *testing.T) {
	tests := []struct {
		name    string
		record  DrawRecord
		wantErr bool
	}{
		{"valid", DrawRecord{Date: "2025-01-04", Main: []int{1, 5, 12, 23, 34, 47}, Bonus: 9}, false},
		{"valid without bonus", DrawRecord{Date: "2025-01-04", Main: []int{1, 5, 12, 23, 34, 47}}, false},
		{"no date", DrawRecord{Main: []int{1, 5, 12, 23, 34, 47}}, true},
		{"too few numbers", DrawRecord{Date: "2025-01-04", Main: []int{1, 5}}, true},
		{"out of range", DrawRecord{Date: "2025-01-04", Main: []int{1, 5, 12, 23, 34, 50}}, true},
		{"duplicate", DrawRecord{Date: "2025-01-04", Main: []int{1, 5, 12, 23, 34, 5}}, true},
		{"bad bonus", DrawRecord{Date: "2025-01-04", Main: []int{1, 5, 12, 23, 34, 47}, Bonus: 99}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate(6, 49)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDrawRecordHasBonus(t *testing.T) {
	with := DrawRecord{Date: "2025-01-04", Main: []int{1, 2, 3, 4, 5, 6}, Bonus: 9}
	without := DrawRecord{Date: "2025-01-04", Main: []int{1, 2, 3, 4, 5, 6}}
	if !with.HasBonus() || without.HasBonus() {
		t.Error("HasBonus should reflect whether a bonus number is present")
	}
}

func TestLineString(t *testing.T) {
	l := Line{Numbers: []int{1, 5, 12, 23, 34, 47}}
	if got, want := l.String(), "01 05 12 23 34 47"; got != want {
		t.Errorf("Line.String() = %q, expected %q", got, want)
	}
}

func TestFormatLine(t *testing.T) {
	if got, want := FormatLine([]int{1, 5, 12}), "1 5 12"; got != want {
		t.Errorf("FormatLine() = %q, expected %q", got, want)
	}
}

func TestSmartMethod(t *testing.T) {
	if got := SmartMethod("overdue"); got != "Smart:overdue" {
		t.Errorf("SmartMethod() = %q", got)
	}
}

func TestStatsSnapshotOverdueGap(t *testing.T) {
	snap := StatsSnapshot{
		MaxNumber:  6,
		SampleSize: 3,
		LastSeen:   []int{0, 1, 2, 2, 3, 3, 0},
	}
	if gap := snap.OverdueGap(1); gap != 3 {
		t.Errorf("expected gap 3 for number 1, got %d", gap)
	}
	if gap := snap.OverdueGap(4); gap != 1 {
		t.Errorf("expected gap 1 for number 4, got %d", gap)
	}
	// Never seen gets the maximal synthetic gap.
	if gap := snap.OverdueGap(6); gap != 4 {
		t.Errorf("expected gap 4 for never-seen number 6, got %d", gap)
	}
}
