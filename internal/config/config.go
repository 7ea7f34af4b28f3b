package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// MaxDays is the longest price history the feed is asked for.
const MaxDays = 365

// CronParser accepts six-field specs with seconds, plus descriptors like @daily.
var CronParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Config holds all application configuration.
type Config struct {
	Output struct {
		DataFile string `yaml:"data_file"`
	} `yaml:"output"`
	Feeds struct {
		CoinGeckoURL  string        `yaml:"coingecko_url"`
		CoinbaseURL   string        `yaml:"coinbase_url"`
		BinanceURL    string        `yaml:"binance_url"`
		CoinID        string        `yaml:"coin_id"`
		VsCurrency    string        `yaml:"vs_currency"`
		Days          int           `yaml:"days"`
		CoinbasePair  string        `yaml:"coinbase_pair"`
		BinanceSymbol string        `yaml:"binance_symbol"`
		Timeout       time.Duration `yaml:"timeout"`
	} `yaml:"feeds"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	S3 struct {
		Bucket         string `yaml:"bucket"`
		Key            string `yaml:"key"`
		Region         string `yaml:"region"`
		Endpoint       string `yaml:"endpoint"`
		AccessKey      string `yaml:"access_key"`
		SecretKey      string `yaml:"secret_key"`
		ForcePathStyle bool   `yaml:"force_path_style"`
		CacheControl   string `yaml:"cache_control"`
	} `yaml:"s3"`
	Schedule struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides. A missing file is not an error.
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

	// .env never overrides variables already set in the environment.
	_ = godotenv.Load()

	applyEnvOverrides(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.Output.DataFile, "DATA_FILE")
	setStr(&cfg.Feeds.CoinGeckoURL, "COINGECKO_URL")
	setStr(&cfg.Feeds.CoinbaseURL, "COINBASE_URL")
	setStr(&cfg.Feeds.BinanceURL, "BINANCE_URL")
	setDuration(&cfg.Feeds.Timeout, "FEED_TIMEOUT")
	setStr(&cfg.Telegram.BotToken, "TELEGRAM_BOT_TOKEN")
	setStr(&cfg.Telegram.ChatID, "TELEGRAM_CHAT_ID")
	setStr(&cfg.Database.SQLitePath, "SQLITE_PATH")
	setStr(&cfg.S3.Bucket, "S3_BUCKET")
	setStr(&cfg.S3.Key, "S3_KEY")
	setStr(&cfg.S3.Region, "S3_REGION")
	setStr(&cfg.S3.Endpoint, "S3_ENDPOINT")
	setStr(&cfg.S3.AccessKey, "S3_ACCESS_KEY")
	setStr(&cfg.S3.SecretKey, "S3_SECRET_KEY")
	setBool(&cfg.S3.ForcePathStyle, "S3_FORCE_PATH_STYLE")
	setStr(&cfg.Schedule.Cron, "FETCH_CRON")
	setStr(&cfg.Proxy, "HTTPS_PROXY")
}

func applyDefaults(cfg *Config) {
	if cfg.Output.DataFile == "" {
		cfg.Output.DataFile = "data.json"
	}
	if cfg.Feeds.CoinGeckoURL == "" {
		cfg.Feeds.CoinGeckoURL = "https://api.coingecko.com"
	}
	if cfg.Feeds.CoinbaseURL == "" {
		cfg.Feeds.CoinbaseURL = "https://api.coinbase.com"
	}
	if cfg.Feeds.BinanceURL == "" {
		cfg.Feeds.BinanceURL = "https://api.binance.com"
	}
	if cfg.Feeds.CoinID == "" {
		cfg.Feeds.CoinID = "bitcoin"
	}
	if cfg.Feeds.VsCurrency == "" {
		cfg.Feeds.VsCurrency = "usd"
	}
	if cfg.Feeds.Days == 0 {
		cfg.Feeds.Days = MaxDays
	}
	if cfg.Feeds.CoinbasePair == "" {
		cfg.Feeds.CoinbasePair = "BTC-USD"
	}
	if cfg.Feeds.BinanceSymbol == "" {
		cfg.Feeds.BinanceSymbol = "BTCUSDT"
	}
	if cfg.Feeds.Timeout == 0 {
		cfg.Feeds.Timeout = 30 * time.Second
	}
	if cfg.S3.Bucket != "" && cfg.S3.Key == "" {
		cfg.S3.Key = "data.json"
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Output.DataFile == "" {
		return fmt.Errorf("output.data_file is required")
	}
	if c.Feeds.CoinGeckoURL == "" || c.Feeds.CoinbaseURL == "" || c.Feeds.BinanceURL == "" {
		return fmt.Errorf("feeds: all feed URLs are required")
	}
	if c.Feeds.Days <= 0 || c.Feeds.Days > MaxDays {
		return fmt.Errorf("feeds.days must be between 1 and %d", MaxDays)
	}
	if c.Feeds.Timeout <= 0 {
		return fmt.Errorf("feeds.timeout must be positive")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	if c.S3.Bucket != "" && c.S3.Region == "" {
		return fmt.Errorf("s3.region is required when s3.bucket is set")
	}
	if c.Schedule.Cron != "" {
		if _, err := CronParser.Parse(c.Schedule.Cron); err != nil {
			return fmt.Errorf("schedule.cron: %w", err)
		}
	}
	return nil
}

// TelegramEnabled reports whether run reports should be sent.
func (c *Config) TelegramEnabled() bool { return c.Telegram.BotToken != "" }

// S3Enabled reports whether the document should be uploaded.
func (c *Config) S3Enabled() bool { return c.S3.Bucket != "" }

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
