package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/serc-ps/lottogen/internal/models"
)

// Source labels returned by FetchWithFallback when no provider yielded data.
const (
	// SourceNone means every group was tried and none yielded a single draw.
	SourceNone = "none"
	// SourceOffline means the fetcher has no network capability and no group
	// was attempted at all.
	SourceOffline = "offline"
)

// ProgressFunc receives human-readable status lines, one per URL attempt and
// one per group-level outcome, in emission order. Fire and forget.
type ProgressFunc func(msg string)

// Fetcher retrieves historical draws by walking a game's source groups in
// priority order. URLs within a group are fetched sequentially with a small
// pause between requests to keep provider load low; the first group that
// yields at least one deduplicated draw wins and no further groups are tried.
type Fetcher struct {
	client    *http.Client
	userAgent string
	pause     time.Duration
}

// NewFetcher creates a fetcher with a bounded per-request timeout and an
// inter-request pause.
func NewFetcher(timeout, pause time.Duration, userAgent string) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		pause:     pause,
	}
}

// NewOfflineFetcher creates a fetcher without network capability. Every fetch
// reports the "offline" outcome immediately.
func NewOfflineFetcher() *Fetcher {
	return &Fetcher{}
}

// FetchWithFallback attempts each of the game's source groups in order and
// returns the first group's deduplicated draws together with its label.
// A failed URL (network error, non-2xx status, unreadable body) is reported
// via progress and skipped; it never aborts the owning group. A group
// yielding zero draws is not an error either, fallback just moves on. When
// every group comes up empty the result is (nil, "none"); an offline fetcher
// returns (nil, "offline") without attempting anything. Cancellation is
// checked between URL fetches.
func (f *Fetcher) FetchWithFallback(ctx context.Context, game *models.Game, progress ProgressFunc) ([]models.DrawRecord, string) {
	if progress == nil {
		progress = func(string) {}
	}
	if f.client == nil {
		return nil, SourceOffline
	}

	for _, group := range game.Sources {
		parse, ok := ParserFor(group.Strategy)
		if !ok {
			progress(fmt.Sprintf("[%s] Unknown parser strategy %q; skipping group", group.Label, group.Strategy))
			continue
		}

		var raw []models.DrawRecord
		for _, pageURL := range group.URLs {
			if ctx.Err() != nil {
				progress(fmt.Sprintf("[%s] Cancelled", group.Label))
				return nil, SourceNone
			}

			doc, err := f.fetchDocument(ctx, pageURL)
			if err != nil {
				progress(fmt.Sprintf("[%s] Error %s: %v", group.Label, pageURL, err))
				continue
			}

			parsed := parse(doc, game.MaxNumber, game.NumbersDrawn)
			progress(fmt.Sprintf("[%s] Parsed %d draws from %s", group.Label, len(parsed), hostOf(pageURL)))
			raw = append(raw, parsed...)

			if f.pause > 0 {
				time.Sleep(f.pause)
			}
		}

		draws := Dedupe(raw)
		if len(draws) > 0 {
			progress(fmt.Sprintf("[%s] %d draws after dedupe", group.Label, len(draws)))
			return draws, group.Label
		}
		progress(fmt.Sprintf("[%s] No draws parsed; trying next source", group.Label))
	}
	return nil, SourceNone
}

// fetchDocument GETs one page and parses it into a queryable document.
// goquery parses best-effort, so malformed HTML degrades gracefully rather
// than failing the URL.
func (f *Fetcher) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	return doc, nil
}

func hostOf(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return pageURL
	}
	return u.Host
}
