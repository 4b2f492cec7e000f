// Package updater orchestrates the update cycle: fetch every game's history
// through the fallback chain, compute fresh statistics, and swap the results
// in atomically per game.
//
// A cycle is network-bound and long-running, so callers run it on a
// background goroutine and drain progress through the supplied sink. Only one
// cycle runs at a time per Updater; a second concurrent Run fails fast with
// ErrUpdateInFlight rather than queueing.
package updater

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/serc-ps/lottogen/internal/models"
	"github.com/serc-ps/lottogen/internal/scrape"
	"github.com/serc-ps/lottogen/internal/stats"
)

// ErrUpdateInFlight is returned when Run is called while another update cycle
// is still running.
var ErrUpdateInFlight = errors.New("update already in flight")

// Result is one game's outcome from an update cycle. Stats is nil when no
// source yielded draws; Source then holds "none" or "offline".
type Result struct {
	Draws  []models.DrawRecord
	Stats  *models.StatsSnapshot
	Source string
}

// Updater runs update cycles and holds the latest per-game results.
type Updater struct {
	fetcher *scrape.Fetcher

	runMu   sync.Mutex // serializes cycles
	stateMu sync.RWMutex
	results map[string]*Result
}

// New creates an Updater backed by the given fetcher.
func New(fetcher *scrape.Fetcher) *Updater {
	return &Updater{
		fetcher: fetcher,
		results: make(map[string]*Result),
	}
}

// Run executes one update cycle over the given games. Each game's draws are
// fetched through its fallback chain, analyzed with the given lookback
// (0 = all draws), and stored; readers see either the previous result or the
// new one, never a partial state. Progress lines flow to the sink in
// emission order.
func (u *Updater) Run(ctx context.Context, games []models.Game, lookback int, progress scrape.ProgressFunc) error {
	if !u.runMu.TryLock() {
		return ErrUpdateInFlight
	}
	defer u.runMu.Unlock()

	if progress == nil {
		progress = func(string) {}
	}

	for i := range games {
		game := &games[i]
		if ctx.Err() != nil {
			return ctx.Err()
		}
		progress(fmt.Sprintf("--- %s ---", game.Name))

		draws, source := u.fetcher.FetchWithFallback(ctx, game, progress)
		result := &Result{Draws: draws, Source: source}

		if len(draws) == 0 {
			switch source {
			case scrape.SourceOffline:
				progress(fmt.Sprintf("Network capability unavailable; skipped all sources for %s.", game.Name))
			default:
				progress(fmt.Sprintf("No draws found from any source for %s.", game.Name))
			}
			u.store(game.Name, result)
			continue
		}

		progress(fmt.Sprintf("Using source: %s — %d draws total after dedupe.", source, len(draws)))
		result.Stats = stats.Compute(draws, game.MaxNumber, lookback)
		u.store(game.Name, result)
		logStats(game.Name, result.Stats, progress)
	}
	return nil
}

// Snapshot returns the latest result for a game, if an update has produced
// one.
func (u *Updater) Snapshot(game string) (*Result, bool) {
	u.stateMu.RLock()
	defer u.stateMu.RUnlock()
	r, ok := u.results[game]
	return r, ok
}

func (u *Updater) store(game string, r *Result) {
	u.stateMu.Lock()
	u.results[game] = r
	u.stateMu.Unlock()
}

// logStats emits the per-game summary lines: sample size plus the top of the
// hot, cold and overdue rankings.
func logStats(game string, snap *models.StatsSnapshot, progress scrape.ProgressFunc) {
	if snap == nil {
		progress(fmt.Sprintf("%s: no stats available.", game))
		return
	}
	progress(fmt.Sprintf("%s: sample size = %d draws.", game, snap.SampleSize))
	progress(fmt.Sprintf("%s HOT (top10): %s", game, rankedWithCounts(snap.Hot, snap.Frequency, 10)))
	progress(fmt.Sprintf("%s COLD (bottom10): %s", game, rankedWithCounts(snap.Cold, snap.Frequency, 10)))
	progress(fmt.Sprintf("%s OVERDUE (top10): %s", game, joinNumbers(snap.Overdue, 10)))
}

func rankedWithCounts(ranking, freq []int, limit int) string {
	if limit > len(ranking) {
		limit = len(ranking)
	}
	parts := make([]string, limit)
	for i := 0; i < limit; i++ {
		n := ranking[i]
		parts[i] = fmt.Sprintf("%d(%d)", n, freq[n])
	}
	return strings.Join(parts, ", ")
}

func joinNumbers(ranking []int, limit int) string {
	if limit > len(ranking) {
		limit = len(ranking)
	}
	parts := make([]string, limit)
	for i := 0; i < limit; i++ {
		parts[i] = fmt.Sprintf("%d", ranking[i])
	}
	return strings.Join(parts, ", ")
}
