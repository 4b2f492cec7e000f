// Command lottogen generates lottery number suggestions, optionally grounded
// in historical draw statistics fetched from the configured result sources.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/serc-ps/lottogen/internal/config"
	"github.com/serc-ps/lottogen/internal/logger"
	"github.com/serc-ps/lottogen/internal/models"
	"github.com/serc-ps/lottogen/internal/picker"
	"github.com/serc-ps/lottogen/internal/scrape"
	"github.com/serc-ps/lottogen/internal/stats"
	"github.com/serc-ps/lottogen/internal/storage"
	"github.com/serc-ps/lottogen/internal/telegram"
	"github.com/serc-ps/lottogen/internal/updater"
)

const appVersion = "2.3.1"

var (
	configPath  = flag.String("config", "", "Path to configuration file (empty = built-in defaults)")
	gameName    = flag.String("game", "Lotto 6/49", "Game to generate lines for")
	method      = flag.String("method", "quick", "Generation method: quick or smart")
	flavor      = flag.String("flavor", "", "Smart-pick flavor: balanced, hot or overdue (default from config)")
	lineCount   = flag.Int("lines", 0, "Number of lines to generate (default from config)")
	lookback    = flag.Int("lookback", -1, "Analyze only the most recent N draws, 0 = all (default from config)")
	saveHistory = flag.Bool("save", false, "Save generated lines to the history database")
	showHistory = flag.Bool("history", false, "Print recent saved generations and exit")
	exportPath  = flag.String("export", "", "Export saved generations to a CSV file and exit")
	importPath  = flag.String("import", "", "Import generations from a CSV file and exit")
	showOdds    = flag.Bool("odds", false, "Print the game's odds and exit")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	if *configPath != "" {
		logger.Info("Configuration loaded from %s", *configPath)
	}

	game, err := cfg.Game(*gameName)
	if err != nil {
		logger.Fatal("%v", err)
	}

	if *showOdds {
		fmt.Print(oddsText(game))
		return
	}
	if *showHistory || *exportPath != "" || *importPath != "" {
		runHistoryCommand(cfg)
		return
	}

	flavorName := cfg.Generator.Flavor
	if *flavor != "" {
		flavorName = *flavor
	}
	lines := cfg.Generator.Lines
	if *lineCount > 0 {
		lines = *lineCount
	}
	look := cfg.Generator.Lookback
	if *lookback >= 0 {
		look = *lookback
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	fetcher := scrape.NewFetcher(cfg.Fetch.Timeout, cfg.Fetch.RequestPause, cfg.Fetch.UserAgent)
	if cfg.Fetch.Offline {
		fetcher = scrape.NewOfflineFetcher()
	}
	upd := updater.New(fetcher)

	result := runUpdate(ctx, upd, game, look)

	var generated []models.Line
	switch *method {
	case "quick":
		generated = quickPick(game, result, lines)
	case "smart":
		generated = smartPick(game, result, flavorName, lines)
	default:
		logger.Fatal("Unknown method %q: use quick or smart", *method)
	}

	fmt.Printf("%s — %s\n", game.Name, generated[0].Method)
	row := 0
	for _, l := range generated {
		if l.Method == models.MethodTopProb {
			fmt.Printf("%s: %s\n", l.Method, l.String())
			continue
		}
		row++
		fmt.Printf("Line %d: %s\n", row, l.String())
	}

	if *saveHistory || cfg.Storage.SaveHistory {
		if err := persist(cfg, game.Name, generated); err != nil {
			logger.Error("Failed to save generation history: %v", err)
		}
	}

	if cfg.Telegram.Enabled {
		notify(cfg, game.Name, result, generated)
	}
}

// runUpdate executes one update cycle for the game on a background worker and
// drains progress into the log as it arrives.
func runUpdate(ctx context.Context, upd *updater.Updater, game *models.Game, lookback int) *updater.Result {
	progressCh := make(chan string, 64)
	errCh := make(chan error, 1)

	go func() {
		errCh <- upd.Run(ctx, []models.Game{*game}, lookback, func(msg string) {
			progressCh <- msg
		})
		close(progressCh)
	}()

	for msg := range progressCh {
		logger.Info("%s", msg)
	}
	if err := <-errCh; err != nil {
		logger.Fatal("Update failed: %v", err)
	}

	result, ok := upd.Snapshot(game.Name)
	if !ok {
		logger.Fatal("Update produced no result for %s", game.Name)
	}
	return result
}

func quickPick(game *models.Game, result *updater.Result, lines int) []models.Line {
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))

	out := make([]models.Line, 0, lines+1)
	for i := 0; i < lines; i++ {
		out = append(out, models.Line{
			Numbers: picker.QuickPick(rng, game.MaxNumber, game.NumbersDrawn),
			Method:  models.MethodQuickPick,
		})
	}
	if result.Stats != nil {
		weights := stats.Weights(result.Stats, stats.FlavorBalanced)
		out = append(out, models.Line{
			Numbers: picker.TopProbability(weights, game.NumbersDrawn),
			Method:  models.MethodTopProb,
		})
	} else {
		logger.Warn("No draw history available (source: %s); skipping the top-probability bonus line", result.Source)
	}
	return out
}

func smartPick(game *models.Game, result *updater.Result, flavor string, lines int) []models.Line {
	if result.Stats == nil {
		logger.Fatal("Smart pick needs draw history, but none is available for %s (source: %s)", game.Name, result.Source)
	}
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	weights := stats.Weights(result.Stats, flavor)

	out := make([]models.Line, 0, lines+1)
	for i := 0; i < lines; i++ {
		out = append(out, models.Line{
			Numbers: picker.SmartPick(rng, weights, game.NumbersDrawn),
			Method:  models.SmartMethod(flavor),
		})
	}
	out = append(out, models.Line{
		Numbers: picker.TopProbability(weights, game.NumbersDrawn),
		Method:  models.MethodTopProb,
	})
	return out
}

func persist(cfg *config.Config, game string, lines []models.Line) error {
	store, err := storage.New(cfg.Storage.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	now := time.Now()
	records := make([]models.GenerationRecord, 0, len(lines))
	for _, l := range lines {
		records = append(records, models.GenerationRecord{
			Timestamp:  now,
			AppVersion: appVersion,
			Game:       game,
			Method:     l.Method,
			Line:       models.FormatLine(l.Numbers),
		})
	}
	if err := store.Append(records); err != nil {
		return err
	}
	logger.Info("Saved %d line(s) to history", len(records))
	return nil
}

func notify(cfg *config.Config, game string, result *updater.Result, lines []models.Line) {
	client, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID,
		cfg.Telegram.MaxRetries, cfg.Telegram.RetryDelayBase)
	if err != nil {
		logger.Error("Failed to initialize Telegram client: %v", err)
		return
	}
	if err := client.SendUpdateSummary(game, result.Source, result.Stats); err != nil {
		logger.Error("Failed to send update summary: %v", err)
	}
	if err := client.SendLines(game, lines); err != nil {
		logger.Error("Failed to send generated lines: %v", err)
	}
}

// runHistoryCommand handles the -history, -export and -import modes.
func runHistoryCommand(cfg *config.Config) {
	store, err := storage.New(cfg.Storage.DBPath)
	if err != nil {
		logger.Fatal("Failed to open history database: %v", err)
	}
	defer store.Close()

	switch {
	case *importPath != "":
		f, err := os.Open(*importPath)
		if err != nil {
			logger.Fatal("Failed to open import file: %v", err)
		}
		defer f.Close()
		n, err := store.ImportCSV(f)
		if err != nil {
			logger.Fatal("Import failed: %v", err)
		}
		fmt.Printf("Imported %d record(s)\n", n)

	case *exportPath != "":
		f, err := os.Create(*exportPath)
		if err != nil {
			logger.Fatal("Failed to create export file: %v", err)
		}
		defer f.Close()
		if err := store.ExportCSV(f); err != nil {
			logger.Fatal("Export failed: %v", err)
		}
		fmt.Printf("Exported history to %s\n", *exportPath)

	default:
		records, err := store.Recent(cfg.Storage.RecentLimit)
		if err != nil {
			logger.Fatal("Failed to read history: %v", err)
		}
		if len(records) == 0 {
			fmt.Println("No history yet.")
			return
		}
		for _, r := range records {
			fmt.Printf("%s  %-12s %-16s %s\n",
				r.Timestamp.Format("2006-01-02 15:04:05"), r.Game, r.Method, r.Line)
		}
	}
}

// oddsText renders the game's jackpot odds. The weighting model describes
// past frequency and recency only; it does not change true odds.
func oddsText(game *models.Game) string {
	odds := combinations(game.MaxNumber, game.NumbersDrawn)
	return fmt.Sprintf(
		"%s: selects %d numbers from 1–%d.\n"+
			"Jackpot odds per line: 1 in %d.\n\n"+
			"Smart Picks use historical frequencies and overdue gaps to weight numbers.\n"+
			"This does NOT change true odds. Play responsibly.\n",
		game.Name, game.NumbersDrawn, game.MaxNumber, odds)
}

// combinations computes C(n, k) without overflow for lottery-sized inputs.
func combinations(n, k int) int64 {
	if k > n-k {
		k = n - k
	}
	result := int64(1)
	for i := 1; i <= k; i++ {
		result = result * int64(n-k+i) / int64(i)
	}
	return result
}
