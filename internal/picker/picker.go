// Package picker generates lottery lines: uniform quick picks, weighted
// smart picks sampled without replacement, and the deterministic
// top-probability bonus line.
package picker

import (
	"math/rand/v2"
	"sort"
)

// QuickPick returns numbersDrawn distinct numbers drawn uniformly from
// [1, maxNumber], sorted ascending.
func QuickPick(rng *rand.Rand, maxNumber, numbersDrawn int) []int {
	perm := rng.Perm(maxNumber)
	line := make([]int, numbersDrawn)
	for i := 0; i < numbersDrawn; i++ {
		line[i] = perm[i] + 1
	}
	sort.Ints(line)
	return line
}

// SmartPick draws numbersDrawn distinct numbers by weighted sampling without
// replacement: each pick is proportional to current weight, and a picked
// number's weight drops to zero so it cannot be redrawn. The weight vector is
// copied per call, so one vector can back any number of independent lines
// (and concurrent callers never alias each other's mutation).
//
// weights is indexed by number with index 0 unused; all weights for
// 1..maxNumber must be strictly positive on entry. Returns the picks sorted
// ascending.
func SmartPick(rng *rand.Rand, weights []float64, numbersDrawn int) []int {
	w := make([]float64, len(weights))
	copy(w, weights)

	picks := make([]int, 0, numbersDrawn)
	for len(picks) < numbersDrawn {
		total := 0.0
		for _, v := range w[1:] {
			total += v
		}
		if total <= 0 {
			break
		}

		r := rng.Float64() * total
		cum := 0.0
		chosen := len(w) - 1
		for n := 1; n < len(w); n++ {
			cum += w[n]
			if r < cum {
				chosen = n
				break
			}
		}

		picks = append(picks, chosen)
		w[chosen] = 0
	}

	sort.Ints(picks)
	return picks
}

// TopProbability deterministically returns the numbersDrawn highest-weighted
// numbers, sorted ascending. Ties break by ascending number, so two calls
// with the same weight vector always return identical output. The caller is
// responsible for only invoking this when statistics exist; the selector
// itself has no notion of "no data".
func TopProbability(weights []float64, numbersDrawn int) []int {
	nums := make([]int, len(weights)-1)
	for i := range nums {
		nums[i] = i + 1
	}
	sort.SliceStable(nums, func(i, j int) bool {
		return weights[nums[i]] > weights[nums[j]]
	})

	line := make([]int, numbersDrawn)
	copy(line, nums[:numbersDrawn])
	sort.Ints(line)
	return line
}
