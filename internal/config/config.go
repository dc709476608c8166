package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"productbot/assistant/internal/domain"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Telegram TelegramConfig       `mapstructure:"telegram"`
	Sheets   SheetsConfig         `mapstructure:"sheets"`
	Tables   []domain.TableConfig `mapstructure:"tables"`
	Sync     SyncConfig           `mapstructure:"sync"`
	Redis    RedisConfig          `mapstructure:"redis"`
	Log      LogConfig            `mapstructure:"log"`
}

// TelegramConfig holds Bot API configuration
type TelegramConfig struct {
	Token       string `mapstructure:"token"`
	APIEndpoint string `mapstructure:"api_endpoint"` // Optional, e.g. a proxying worker
	Timeout     int    `mapstructure:"timeout"`      // Long-poll timeout in seconds
	GroupURL    string `mapstructure:"group_url"`
	Debug       bool   `mapstructure:"debug"`
}

const (
	SheetsBackendAPI  = "api"
	SheetsBackendREST = "rest"
)

// SheetsConfig holds Google Sheets access configuration
type SheetsConfig struct {
	Backend              string `mapstructure:"backend"`
	CredentialsFile      string `mapstructure:"credentials_file"`
	APIKey               string `mapstructure:"api_key"`
	BaseURL              string `mapstructure:"base_url"`
	Timeout              int    `mapstructure:"timeout"`
	MaxRequestsPerSecond int    `mapstructure:"max_requests_per_second"`
	SpreadsheetID        string `mapstructure:"spreadsheet_id"`
}

// SyncConfig holds catalog refresh settings
type SyncConfig struct {
	Interval    int `mapstructure:"interval"` // Seconds between passes
	Concurrency int `mapstructure:"concurrency"`
}

// RedisConfig holds connection details of the optional snapshot mirror
type RedisConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	Database  int    `mapstructure:"database"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var ErrMissingToken = errors.New("telegram.token is required")

// Load loads configuration from YAML file with environment variable overrides
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) normalize() error {
	if strings.TrimSpace(c.Telegram.Token) == "" {
		return ErrMissingToken
	}

	switch c.Sheets.Backend {
	case SheetsBackendAPI, SheetsBackendREST:
	default:
		return fmt.Errorf("unknown sheets.backend %q", c.Sheets.Backend)
	}

	for i := range c.Tables {
		table := &c.Tables[i]
		kind, err := domain.ParseTableKind(table.Kind.String())
		if err != nil {
			return fmt.Errorf("tables[%d]: %w", i, err)
		}
		table.Kind = kind
		if table.Name == "" {
			table.Name = kind.String()
		}
		if table.SpreadsheetID == "" {
			table.SpreadsheetID = c.Sheets.SpreadsheetID
		}
		if strings.TrimSpace(table.Range) == "" {
			return fmt.Errorf("tables[%d] %s: range is required", i, table.Name)
		}
	}

	if c.Sync.Interval <= 0 {
		return fmt.Errorf("sync.interval must be positive, got %d", c.Sync.Interval)
	}
	if c.Sync.Concurrency <= 0 {
		c.Sync.Concurrency = 1
	}
	if c.Sheets.MaxRequestsPerSecond <= 0 {
		c.Sheets.MaxRequestsPerSecond = 1
	}

	return nil
}

// SyncInterval returns the period between catalog refresh passes
func (c *Config) SyncInterval() time.Duration {
	return time.Duration(c.Sync.Interval) * time.Second
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.api_endpoint", "")
	v.SetDefault("telegram.timeout", 60)
	v.SetDefault("telegram.group_url", "")
	v.SetDefault("telegram.debug", false)

	v.SetDefault("sheets.backend", SheetsBackendAPI)
	v.SetDefault("sheets.credentials_file", "credentials.json")
	v.SetDefault("sheets.api_key", "")
	v.SetDefault("sheets.base_url", "https://sheets.googleapis.com")
	v.SetDefault("sheets.timeout", 30)
	v.SetDefault("sheets.max_requests_per_second", 5)
	v.SetDefault("sheets.spreadsheet_id", "")

	v.SetDefault("tables", []map[string]any{
		{"name": "videos", "range": "Videos!A2:C", "kind": "videos"},
		{"name": "instructions", "range": "Instructions!A2:B", "kind": "instructions"},
		{"name": "catalog", "range": "Catalog!A2:H", "kind": "catalog"},
	})

	v.SetDefault("sync.interval", 300)
	v.SetDefault("sync.concurrency", 3)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.key_prefix", "productbot:catalog:")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}
