package updater

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/serc-ps/lottogen/internal/models"
	"github.com/serc-ps/lottogen/internal/scrape"
)

const printBody = `<html><body>
<p>Saturday January 4, 2025 01 05 12 23 34 47 09</p>
<p>Saturday January 11, 2025 03 08 19 28 40 44 21</p>
<p>Saturday January 18, 2025 02 06 17 29 38 45 13</p>
</body></html>`

func testGame(url string) models.Game {
	return models.Game{
		Name:         "Test 6/49",
		NumbersDrawn: 6,
		MaxNumber:    49,
		Sources: []models.SourceGroup{
			{Label: "Primary", URLs: []string{url}, Strategy: models.StrategyPrintLayout},
		},
	}
}

func TestRunComputesSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, printBody)
	}))
	defer srv.Close()

	u := New(scrape.NewFetcher(2*time.Second, 0, "lottogen-test"))

	var progress []string
	err := u.Run(context.Background(), []models.Game{testGame(srv.URL)}, 0, func(msg string) {
		progress = append(progress, msg)
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	result, ok := u.Snapshot("Test 6/49")
	if !ok {
		t.Fatal("expected a snapshot after the update")
	}
	if result.Source != "Primary" {
		t.Errorf("expected source Primary, got %q", result.Source)
	}
	if len(result.Draws) != 3 {
		t.Errorf("expected 3 draws, got %d", len(result.Draws))
	}
	if result.Stats == nil || result.Stats.SampleSize != 3 {
		t.Errorf("expected stats over 3 draws, got %+v", result.Stats)
	}

	// Progress carries the game banner and the per-game summary, in order.
	joined := strings.Join(progress, "\n")
	if !strings.Contains(joined, "--- Test 6/49 ---") {
		t.Errorf("expected a game banner in progress, got:\n%s", joined)
	}
	if !strings.Contains(joined, "Using source: Primary — 3 draws total after dedupe.") {
		t.Errorf("expected a source summary in progress, got:\n%s", joined)
	}
	if !strings.Contains(joined, "sample size = 3 draws") {
		t.Errorf("expected a stats summary in progress, got:\n%s", joined)
	}
}

func TestRunLookback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, printBody)
	}))
	defer srv.Close()

	u := New(scrape.NewFetcher(2*time.Second, 0, "lottogen-test"))
	if err := u.Run(context.Background(), []models.Game{testGame(srv.URL)}, 2, nil); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	result, _ := u.Snapshot("Test 6/49")
	if result.Stats == nil || result.Stats.SampleSize != 2 {
		t.Fatalf("expected stats over the trailing 2 draws, got %+v", result.Stats)
	}
	// All 3 draws are kept even though only 2 were analyzed.
	if len(result.Draws) != 3 {
		t.Errorf("expected 3 draws cached, got %d", len(result.Draws))
	}
}

func TestRunNoSourceYield(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	u := New(scrape.NewFetcher(2*time.Second, 0, "lottogen-test"))

	var progress []string
	err := u.Run(context.Background(), []models.Game{testGame(srv.URL)}, 0, func(msg string) {
		progress = append(progress, msg)
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	result, ok := u.Snapshot("Test 6/49")
	if !ok {
		t.Fatal("expected a result even when no source yields draws")
	}
	if result.Source != scrape.SourceNone {
		t.Errorf("expected source %q, got %q", scrape.SourceNone, result.Source)
	}
	if result.Stats != nil {
		t.Errorf("expected no stats, got %+v", result.Stats)
	}
	if !strings.Contains(strings.Join(progress, "\n"), "No draws found from any source") {
		t.Errorf("expected a no-draws note in progress, got: %v", progress)
	}
}

func TestRunOffline(t *testing.T) {
	u := New(scrape.NewOfflineFetcher())
	if err := u.Run(context.Background(), []models.Game{testGame("https://unused.example")}, 0, nil); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	result, ok := u.Snapshot("Test 6/49")
	if !ok {
		t.Fatal("expected a result in offline mode")
	}
	if result.Source != scrape.SourceOffline {
		t.Errorf("expected source %q, got %q", scrape.SourceOffline, result.Source)
	}
}

func TestRunSerializesCycles(t *testing.T) {
	u := New(scrape.NewOfflineFetcher())

	// Hold the cycle lock as a running update would.
	if !u.runMu.TryLock() {
		t.Fatal("failed to take the cycle lock")
	}
	defer u.runMu.Unlock()

	err := u.Run(context.Background(), []models.Game{testGame("https://unused.example")}, 0, nil)
	if err != ErrUpdateInFlight {
		t.Fatalf("expected ErrUpdateInFlight, got %v", err)
	}
}

func TestRunReplacesSnapshotAtomically(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, printBody)
	}))
	defer good.Close()

	u := New(scrape.NewFetcher(2*time.Second, 0, "lottogen-test"))
	if err := u.Run(context.Background(), []models.Game{testGame(good.URL)}, 0, nil); err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	first, _ := u.Snapshot("Test 6/49")

	if err := u.Run(context.Background(), []models.Game{testGame(good.URL)}, 1, nil); err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	second, _ := u.Snapshot("Test 6/49")

	if first == second {
		t.Error("expected the second update to install a fresh result")
	}
	if second.Stats.SampleSize != 1 {
		t.Errorf("expected the new snapshot to reflect the new lookback, got %d", second.Stats.SampleSize)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	u := New(scrape.NewOfflineFetcher())
	err := u.Run(ctx, []models.Game{testGame("https://unused.example")}, 0, nil)
	if err == nil {
		t.Fatal("expected an error from a cancelled update")
	}
}
