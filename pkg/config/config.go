package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Backend struct {
		// Type selects the snapshot backend: "clickhouse" persists every
		// fetch cycle, "memory" keeps only the cached row-set in-process.
		Type     string        `yaml:"type"`
		CacheTTL time.Duration `yaml:"cache_ttl"`
	} `yaml:"backend"`
	Fetch struct {
		Interval        time.Duration `yaml:"interval"`
		HistoryDays     int           `yaml:"history_days"`
		ReferenceSeries string        `yaml:"reference_series"`
	} `yaml:"fetch"`
	FRED struct {
		APIKey           string        `yaml:"api_key"`
		BaseURL          string        `yaml:"base_url"`
		ObservationStart string        `yaml:"observation_start"`
		Timeout          time.Duration `yaml:"timeout"`
		MaxRPS           float64       `yaml:"max_rps"`
	} `yaml:"fred"`
	SpotProvider struct {
		BaseURL        string        `yaml:"base_url"`
		LatestTimeout  time.Duration `yaml:"latest_timeout"`
		HistoryTimeout time.Duration `yaml:"history_timeout"`
	} `yaml:"spot_provider"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Cache struct {
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Kafka struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		LogTopic     string   `yaml:"log_topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
	} `yaml:"kafka"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("FRED_API_KEY"); v != "" {
		c.FRED.APIKey = v
	}
	if v := os.Getenv("BACKEND"); v != "" {
		c.Backend.Type = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("CLICKHOUSE_HOST"); v != "" {
		c.ClickHouse.Host = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Fetch.Interval <= 0 {
		c.Fetch.Interval = 6 * time.Hour
	}
	if c.Fetch.HistoryDays <= 0 {
		c.Fetch.HistoryDays = 35
	}
	if c.Fetch.ReferenceSeries == "" {
		c.Fetch.ReferenceSeries = "FEDFUNDS"
	}
	if c.Backend.CacheTTL <= 0 {
		// The memory variant has no durable store to fall back on, so the
		// cached row-set must outlive the refresh interval.
		if c.Backend.Type == "memory" {
			c.Backend.CacheTTL = 2 * c.Fetch.Interval
		} else {
			c.Backend.CacheTTL = time.Hour
		}
	}
	if c.FRED.BaseURL == "" {
		c.FRED.BaseURL = "https://api.stlouisfed.org/fred"
	}
	if c.FRED.ObservationStart == "" {
		c.FRED.ObservationStart = "2020-01-01"
	}
	if c.FRED.Timeout <= 0 {
		c.FRED.Timeout = 10 * time.Second
	}
	if c.FRED.MaxRPS <= 0 {
		c.FRED.MaxRPS = 2
	}
	if c.SpotProvider.BaseURL == "" {
		c.SpotProvider.BaseURL = "https://api.exchangerate.host"
	}
	if c.SpotProvider.LatestTimeout <= 0 {
		c.SpotProvider.LatestTimeout = 10 * time.Second
	}
	if c.SpotProvider.HistoryTimeout <= 0 {
		c.SpotProvider.HistoryTimeout = 15 * time.Second
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Backend.Type == "" {
		return fmt.Errorf("backend.type is required")
	}
	if c.Backend.Type != "clickhouse" && c.Backend.Type != "memory" {
		return fmt.Errorf("backend.type must be 'clickhouse' or 'memory', got '%s'", c.Backend.Type)
	}
	if c.FRED.APIKey == "" {
		return fmt.Errorf("fred.api_key is required")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	return nil
}
