package stats

import "github.com/serc-ps/lottogen/internal/models"

// Weighting flavors. An unrecognized flavor falls back to balanced.
const (
	FlavorBalanced = "balanced"
	FlavorHot      = "hot"
	FlavorOverdue  = "overdue"
)

// Flavors lists the known weighting flavors.
func Flavors() []string {
	return []string{FlavorBalanced, FlavorHot, FlavorOverdue}
}

// Weights converts a snapshot's rankings into a dense weight vector indexed
// by number (index 0 unused). Rank r over N numbers maps to the normalized
// score (N+1-r)/N, so rank 1 scores 1.0 and the worst rank scores 1/N. Every
// number starts at weight 1.0 and gains flavor-dependent bonuses:
//
//	hot      +2.0·hotScore +0.5·overdueScore
//	overdue  +2.0·overdueScore +0.5·hotScore
//	balanced +1.0·hotScore +1.0·overdueScore
//
// All weights are strictly positive. The vector is recomputed per request and
// owned by the caller; sampling may mutate it freely.
func Weights(snap *models.StatsSnapshot, flavor string) []float64 {
	total := snap.MaxNumber

	hotRank := make([]int, total+1)
	overdueRank := make([]int, total+1)
	for i, n := range snap.Hot {
		hotRank[n] = i + 1
	}
	for i, n := range snap.Overdue {
		overdueRank[n] = i + 1
	}

	weights := make([]float64, total+1)
	for n := 1; n <= total; n++ {
		hotScore := float64(total+1-hotRank[n]) / float64(total)
		overdueScore := float64(total+1-overdueRank[n]) / float64(total)

		w := 1.0
		switch flavor {
		case FlavorHot:
			w += 2.0*hotScore + 0.5*overdueScore
		case FlavorOverdue:
			w += 2.0*overdueScore + 0.5*hotScore
		default:
			w += 1.0*hotScore + 1.0*overdueScore
		}
		weights[n] = w
	}
	return weights
}
