// Package stats aggregates a draw history into per-number statistics and
// turns those statistics into sampling weights.
//
// The engine makes a single pass over the draws with a 1-based position
// counter, accumulating each number's frequency and the position it was last
// seen at. From that pass it derives three full orderings over 1..maxNumber:
//
//	hot     — frequency descending (most drawn first)
//	cold    — frequency ascending (least drawn first)
//	overdue — recency gap descending, where a number never seen in the
//	          window gets the maximal synthetic gap sampleSize+1
//
// Every number appears exactly once in each ordering, zero-frequency numbers
// included; ties break by ascending number so the orderings are
// deterministic. The weighting model then maps hot and overdue ranks to
// normalized scores in (0, 1] and blends them per flavor into a strictly
// positive weight per number.
package stats

import (
	"sort"

	"github.com/serc-ps/lottogen/internal/models"
)

// Compute analyzes a chronologically sorted draw list and returns a fresh
// snapshot. With lookback > 0 only the trailing lookback draws are analyzed
// (by position, not by date). An empty draw list yields nil: "no history" is
// an expected state, not an error.
func Compute(draws []models.DrawRecord, maxNumber, lookback int) *models.StatsSnapshot {
	if len(draws) == 0 {
		return nil
	}
	if lookback > 0 && len(draws) > lookback {
		draws = draws[len(draws)-lookback:]
	}

	freq := make([]int, maxNumber+1)
	lastSeen := make([]int, maxNumber+1)
	pos := 0
	for _, d := range draws {
		pos++
		for _, n := range d.Main {
			if n < 1 || n > maxNumber {
				continue
			}
			freq[n]++
			lastSeen[n] = pos
		}
	}

	snap := &models.StatsSnapshot{
		MaxNumber:  maxNumber,
		SampleSize: pos,
		Frequency:  freq,
		LastSeen:   lastSeen,
	}
	snap.Hot = rankNumbers(maxNumber, func(a, b int) bool { return freq[a] > freq[b] })
	snap.Cold = rankNumbers(maxNumber, func(a, b int) bool { return freq[a] < freq[b] })
	snap.Overdue = rankNumbers(maxNumber, func(a, b int) bool {
		return snap.OverdueGap(a) > snap.OverdueGap(b)
	})
	return snap
}

// rankNumbers orders 1..maxNumber by the comparison key. The stable sort over
// an ascending seed makes ties resolve by ascending number.
func rankNumbers(maxNumber int, less func(a, b int) bool) []int {
	nums := make([]int, maxNumber)
	for i := range nums {
		nums[i] = i + 1
	}
	sort.SliceStable(nums, func(i, j int) bool { return less(nums[i], nums[j]) })
	return nums
}
