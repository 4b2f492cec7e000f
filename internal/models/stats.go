package models

// StatsSnapshot is the immutable result of analyzing one draw list. It is
// created fresh per update cycle (or lookback change) and replaced wholesale;
// nothing mutates a snapshot after it is computed.
//
// Frequency and LastSeen are dense arrays of length MaxNumber+1 with index 0
// unused, so Frequency[n] reads naturally for number n. LastSeen holds the
// 1-based position of the draw a number last appeared in, or 0 if it never
// appeared within the analyzed window.
//
// Hot, Cold and Overdue are full orderings: each is a permutation of
// 1..MaxNumber, including numbers with zero frequency. Ties break by
// ascending number so rankings are deterministic.
type StatsSnapshot struct {
	MaxNumber  int   `json:"max_number"`
	SampleSize int   `json:"sample_size"`
	Frequency  []int `json:"frequency"`
	LastSeen   []int `json:"last_seen"`
	Hot        []int `json:"hot"`
	Cold       []int `json:"cold"`
	Overdue    []int `json:"overdue"`
}

// OverdueGap returns the number of draws elapsed since n last appeared.
// For a number never seen in the window the gap is SampleSize+1, the maximal
// synthetic gap, which ranks it as most overdue.
func (s *StatsSnapshot) OverdueGap(n int) int {
	current := s.SampleSize + 1
	if s.LastSeen[n] == 0 {
		return current
	}
	return current - s.LastSeen[n]
}
