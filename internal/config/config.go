package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		BaseURL     string `yaml:"base_url"`
		ListingsURL string `yaml:"listings_url"`
		Origin      string `yaml:"origin"`
		Referer     string `yaml:"referer"`
		UserAgent   string `yaml:"user_agent"`
		IndexSymbol string `yaml:"index_symbol"`
	} `yaml:"data_source"`
	Pipeline struct {
		Workers       int    `yaml:"workers"`
		ProgressEvery int    `yaml:"progress_every"`
		CandleLength  int    `yaml:"candle_length"`
		IndicatorSet  string `yaml:"indicator_set"`
	} `yaml:"pipeline"`
	Output struct {
		Dir           string `yaml:"dir"`
		TechnicalFile string `yaml:"technical_file"`
		MetadataFile  string `yaml:"metadata_file"`
	} `yaml:"output"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("API_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("LISTINGS_URL"); v != "" {
		cfg.DataSource.ListingsURL = v
	}
	if v := os.Getenv("API_ORIGIN"); v != "" {
		cfg.DataSource.Origin = v
	}
	if v := os.Getenv("API_REFERER"); v != "" {
		cfg.DataSource.Referer = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("PIPELINE_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Pipeline.Workers = n
		}
	}
	if v := os.Getenv("INDICATOR_SET"); v != "" {
		cfg.Pipeline.IndicatorSet = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}

	// Defaults
	if cfg.DataSource.IndexSymbol == "" {
		cfg.DataSource.IndexSymbol = "VNINDEX"
	}
	if cfg.DataSource.UserAgent == "" {
		cfg.DataSource.UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
	}
	if cfg.Pipeline.Workers == 0 {
		cfg.Pipeline.Workers = 20
	}
	if cfg.Pipeline.ProgressEvery == 0 {
		cfg.Pipeline.ProgressEvery = 50
	}
	if cfg.Pipeline.CandleLength == 0 {
		cfg.Pipeline.CandleLength = 210
	}
	if cfg.Pipeline.IndicatorSet == "" {
		cfg.Pipeline.IndicatorSet = "full"
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "data"
	}
	if cfg.Output.TechnicalFile == "" {
		cfg.Output.TechnicalFile = "technical_analysis.arrow"
	}
	if cfg.Output.MetadataFile == "" {
		cfg.Output.MetadataFile = "metadata.json"
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 0 17 * * *"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.DataSource.BaseURL == "" {
		return fmt.Errorf("data_source.base_url is required")
	}
	if c.DataSource.ListingsURL == "" {
		return fmt.Errorf("data_source.listings_url is required")
	}
	if c.Pipeline.Workers <= 0 {
		return fmt.Errorf("pipeline.workers must be positive")
	}
	if c.Pipeline.CandleLength <= 0 {
		return fmt.Errorf("pipeline.candle_length must be positive")
	}
	return nil
}
