// Package config loads and validates crawlbench configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultConcurrency is used when the configured value is missing or invalid.
const DefaultConcurrency = 10

// Config captures all configuration knobs loaded via Viper.
type Config struct {
	Crawl    CrawlConfig    `mapstructure:"crawl"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Input    InputConfig    `mapstructure:"input"`
	Output   OutputConfig   `mapstructure:"output"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// CrawlConfig governs orchestration behavior.
type CrawlConfig struct {
	Concurrency int    `mapstructure:"concurrency"`
	UserAgent   string `mapstructure:"user_agent"`
}

// HTTPConfig configures request deadlines.
type HTTPConfig struct {
	TimeoutSeconds       int `mapstructure:"timeout_seconds"`
	ClientTimeoutSeconds int `mapstructure:"client_timeout_seconds"`
}

// InputConfig locates the newline-delimited URL list.
type InputConfig struct {
	Path string `mapstructure:"path"`
}

// OutputConfig locates the JSON report.
type OutputConfig struct {
	Path string `mapstructure:"path"`
}

// MetricsConfig controls the optional metrics/health listener.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// DatabaseConfig controls the optional run-history store.
type DatabaseConfig struct {
	DSN   string `mapstructure:"dsn"`
	Table string `mapstructure:"table"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CRAWLBENCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("crawl.concurrency", DefaultConcurrency)
	v.SetDefault("crawl.user_agent", "crawlbench/0.1")
	v.SetDefault("http.timeout_seconds", 10)
	v.SetDefault("http.client_timeout_seconds", 15)
	v.SetDefault("input.path", "urls.txt")
	v.SetDefault("output.path", "results.json")
	v.SetDefault("database.table", "crawl_runs")
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits. An invalid
// concurrency is not an error; EffectiveConcurrency falls back instead so a
// bad flag value cannot abort a benchmark run.
func (c Config) Validate() error {
	if c.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("http.timeout_seconds must be > 0")
	}
	if c.HTTP.ClientTimeoutSeconds < c.HTTP.TimeoutSeconds {
		return fmt.Errorf("http.client_timeout_seconds must be >= http.timeout_seconds")
	}
	if c.Input.Path == "" {
		return fmt.Errorf("input.path is required")
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output.path is required")
	}
	return nil
}

// EffectiveConcurrency returns the configured concurrency, or the documented
// default of 10 when the value is missing, non-numeric (cast to 0) or
// otherwise not positive.
func (c Config) EffectiveConcurrency() int {
	if c.Crawl.Concurrency <= 0 {
		return DefaultConcurrency
	}
	return c.Crawl.Concurrency
}

// Timeout converts the per-request deadline into a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// ClientTimeout converts the client-level ceiling into a duration.
func (c Config) ClientTimeout() time.Duration {
	return time.Duration(c.HTTP.ClientTimeoutSeconds) * time.Second
}
