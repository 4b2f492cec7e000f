// Package config loads application configuration from YAML with environment
// variable overrides. The default configuration carries the built-in game
// catalog (Lotto 6/49 and Lotto Max) with their WCLC → OLG → ALC source
// fallback chains, so the binary is usable with no config file at all.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/serc-ps/lottogen/internal/models"
)

// Config represents the complete application configuration.
type Config struct {
	Fetch     FetchConfig     `mapstructure:"fetch"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Games     []models.Game   `mapstructure:"games"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// FetchConfig holds the network behavior of the history fetcher.
type FetchConfig struct {
	Timeout      time.Duration `mapstructure:"timeout"`
	RequestPause time.Duration `mapstructure:"request_pause"`
	UserAgent    string        `mapstructure:"user_agent"`
	Offline      bool          `mapstructure:"offline"`
}

// GeneratorConfig holds line-generation behavior.
type GeneratorConfig struct {
	Lines    int    `mapstructure:"lines"`
	Flavor   string `mapstructure:"flavor"`
	Lookback int    `mapstructure:"lookback"` // 0 = analyze all draws
}

// TelegramConfig holds optional Telegram delivery configuration.
type TelegramConfig struct {
	BotToken       string        `mapstructure:"bot_token"`
	ChatID         string        `mapstructure:"chat_id"`
	Enabled        bool          `mapstructure:"enabled"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryDelayBase time.Duration `mapstructure:"retry_delay_base"`
}

// StorageConfig holds generation-history persistence configuration.
type StorageConfig struct {
	DBPath      string `mapstructure:"db_path"`
	SaveHistory bool   `mapstructure:"save_history"`
	RecentLimit int    `mapstructure:"recent_limit"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from the given file plus environment variables.
// An empty path skips the file and yields defaults only.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("LOTTOGEN")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Slice-of-struct defaults don't survive viper's SetDefault, so the game
	// catalog default is applied after unmarshal.
	if len(cfg.Games) == 0 {
		cfg.Games = DefaultGames()
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("fetch.timeout", "15s")
	v.SetDefault("fetch.request_pause", "200ms")
	v.SetDefault("fetch.user_agent", "LottoGen/2.3.1")
	v.SetDefault("fetch.offline", false)

	v.SetDefault("generator.lines", 3)
	v.SetDefault("generator.flavor", "balanced")
	v.SetDefault("generator.lookback", 0)

	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.max_retries", 3)
	v.SetDefault("telegram.retry_delay_base", "1s")

	v.SetDefault("storage.db_path", "")
	v.SetDefault("storage.save_history", false)
	v.SetDefault("storage.recent_limit", 200)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// DefaultGames returns the built-in game catalog with each game's source
// groups in fallback priority order.
func DefaultGames() []models.Game {
	return []models.Game{
		{
			Name:         "Lotto 6/49",
			NumbersDrawn: 6,
			MaxNumber:    49,
			InfoURL:      "https://www.olg.ca/en/lottery/play-lotto-649-encore/past-results.html",
			Sources: []models.SourceGroup{
				{
					Label: "WCLC",
					URLs: []string{
						"https://www.wclc.com/winning-numbers/lotto-649-extra.htm?channel=print",
						"https://www.wclc.com/winning-numbers/lotto-649-extra.htm?channel=print&printMode=true",
					},
					Strategy: models.StrategyPrintLayout,
				},
				{
					Label: "OLG",
					URLs: []string{
						"https://www.olg.ca/en/lottery/play-lotto-649-encore/past-results.html",
						"https://lottery.olg.ca/en-ca/winning-numbers/lotto-6-49",
					},
					Strategy: models.StrategyGenericTable,
				},
				{
					Label: "ALC",
					URLs: []string{
						"https://www.alc.ca/content/alc/en/winning-numbers.html",
					},
					Strategy: models.StrategyGenericTable,
				},
			},
		},
		{
			Name:         "Lotto Max",
			NumbersDrawn: 7,
			MaxNumber:    50,
			InfoURL:      "https://www.olg.ca/en/lottery/play-lotto-max-encore/past-results.html",
			Sources: []models.SourceGroup{
				{
					Label: "WCLC",
					URLs: []string{
						"https://www.wclc.com/winning-numbers/lotto-max-extra.htm?channel=print",
						"https://www.wclc.com/winning-numbers/lotto-max-extra.htm?channel=print&printMode=true",
					},
					Strategy: models.StrategyPrintLayout,
				},
				{
					Label: "OLG",
					URLs: []string{
						"https://www.olg.ca/en/lottery/play-lotto-max-encore/past-results.html",
						"https://lottery.olg.ca/en-ca/winning-numbers/lotto-max",
					},
					Strategy: models.StrategyGenericTable,
				},
				{
					Label: "ALC",
					URLs: []string{
						"https://www.alc.ca/content/alc/en/winning-numbers.html",
					},
					Strategy: models.StrategyGenericTable,
				},
			},
		},
	}
}

// Validate checks that all configuration values are usable.
func (c *Config) Validate() error {
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch.timeout must be positive")
	}
	if c.Fetch.RequestPause < 0 {
		return fmt.Errorf("fetch.request_pause must not be negative")
	}
	if c.Fetch.UserAgent == "" {
		return fmt.Errorf("fetch.user_agent is required")
	}

	if c.Generator.Lines < 1 {
		return fmt.Errorf("generator.lines must be at least 1")
	}
	validFlavors := map[string]bool{"balanced": true, "hot": true, "overdue": true}
	if !validFlavors[c.Generator.Flavor] {
		return fmt.Errorf("generator.flavor must be one of: balanced, hot, overdue")
	}
	if c.Generator.Lookback < 0 {
		return fmt.Errorf("generator.lookback must not be negative")
	}

	if len(c.Games) == 0 {
		return fmt.Errorf("at least one game must be configured")
	}
	names := make(map[string]bool, len(c.Games))
	for i := range c.Games {
		if err := c.Games[i].Validate(); err != nil {
			return err
		}
		if names[c.Games[i].Name] {
			return fmt.Errorf("duplicate game name %q", c.Games[i].Name)
		}
		names[c.Games[i].Name] = true
	}

	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}

	if c.Storage.RecentLimit < 1 {
		return fmt.Errorf("storage.recent_limit must be at least 1")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}

// Game returns the configured game with the given name.
func (c *Config) Game(name string) (*models.Game, error) {
	for i := range c.Games {
		if c.Games[i].Name == name {
			return &c.Games[i], nil
		}
	}
	return nil, fmt.Errorf("unknown game %q", name)
}
