// Package telegram delivers generated lines and update summaries to a
// configured chat via the Telegram Bot API, with linear-backoff retries for
// transient delivery failures. Delivery is optional; the rest of the
// application works identically without a configured client.
package telegram

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/serc-ps/lottogen/internal/models"
)

// Client handles Telegram delivery.
type Client struct {
	bot            *tgbotapi.BotAPI
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration
}

// NewClient creates a Telegram client for the given bot token and chat.
func NewClient(botToken, chatID string, maxRetries int, retryDelayBase time.Duration) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}

	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelayBase <= 0 {
		retryDelayBase = time.Second
	}

	return &Client{
		bot:            bot,
		chatID:         chatIDInt,
		maxRetries:     maxRetries,
		retryDelayBase: retryDelayBase,
	}, nil
}

// SendLines delivers a batch of generated lines for one game.
func (c *Client) SendLines(game string, lines []models.Line) error {
	return c.send(formatLines(game, lines))
}

// SendUpdateSummary delivers the outcome of an update cycle for one game.
func (c *Client) SendUpdateSummary(game, source string, snap *models.StatsSnapshot) error {
	return c.send(formatSummary(game, source, snap))
}

// send delivers one plain-text message with linear-backoff retries.
func (c *Client) send(text string) error {
	msg := tgbotapi.NewMessage(c.chatID, text)

	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		_, err := c.bot.Send(msg)
		if err == nil {
			return nil
		}
		lastErr = err
		time.Sleep(c.retryDelayBase * time.Duration(i+1))
	}
	return fmt.Errorf("failed to send message after %d retries: %w", c.maxRetries, lastErr)
}

// formatLines renders generated lines as one message, one line per row.
func formatLines(game string, lines []models.Line) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s — generated lines\n", game)
	row := 0
	for _, l := range lines {
		if l.Method == models.MethodTopProb {
			fmt.Fprintf(&b, "%s: %s\n", l.Method, l.String())
			continue
		}
		row++
		fmt.Fprintf(&b, "Line %d (%s): %s\n", row, l.Method, l.String())
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatSummary renders an update outcome. A nil snapshot means no source
// yielded draws; the message names the outcome ("none" or "offline") so the
// reader knows stats-dependent picks are unavailable.
func formatSummary(game, source string, snap *models.StatsSnapshot) string {
	if snap == nil {
		return fmt.Sprintf("%s: no history available (source: %s)", game, source)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s history updated from %s\n", game, source)
	fmt.Fprintf(&b, "Sample size: %d draws\n", snap.SampleSize)
	fmt.Fprintf(&b, "Hot: %s\n", topOf(snap.Hot, 5))
	fmt.Fprintf(&b, "Overdue: %s", topOf(snap.Overdue, 5))
	return b.String()
}

func topOf(ranking []int, limit int) string {
	if limit > len(ranking) {
		limit = len(ranking)
	}
	parts := make([]string, limit)
	for i := 0; i < limit; i++ {
		parts[i] = strconv.Itoa(ranking[i])
	}
	return strings.Join(parts, ", ")
}
