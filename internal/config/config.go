// Package config holds crawl settings. Values come from, in increasing
// priority: defaults, an optional YAML file, the environment (.env is
// loaded first), and command-line flags applied by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Validation errors.
var (
	ErrConfigNotFound  = errors.New("configuration file not found")
	ErrNoSeeds         = errors.New("no seed URLs configured")
	ErrInvalidWorkers  = errors.New("invalid workers: must be positive")
	ErrInvalidMaxPages = errors.New("invalid maxPages: must be non-negative")
	ErrInvalidStrategy = errors.New("invalid strategy: want bfs, dfs or mixedNN")
	ErrInvalidTimeout  = errors.New("invalid fetch timeout: must be positive")
	ErrInvalidBodySize = errors.New("invalid max body bytes: must be positive")
	ErrInvalidRate     = errors.New("invalid maxPerHost: must be non-negative")
)

// Config is the full crawl configuration.
type Config struct {
	Seeds           []string      `yaml:"seeds"`
	MaxPages        int           `yaml:"max_pages"`
	Workers         int           `yaml:"workers"`
	Strategy        string        `yaml:"strategy"`
	RequestsPerHost float64       `yaml:"requests_per_host"`
	UserAgent       string        `yaml:"user_agent"`
	FetchTimeout    time.Duration `yaml:"fetch_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`

	ReportPath  string `yaml:"report_path"`
	MetricsAddr string `yaml:"metrics_addr"`

	Scope   ScopeConfig   `yaml:"scope"`
	Mongo   MongoConfig   `yaml:"mongo"`
	Logging LoggingConfig `yaml:"logging"`
}

// ScopeConfig extends the built-in scope tables.
type ScopeConfig struct {
	ExtraDomains   []string `yaml:"extra_domains"`
	ExtraTraps     []string `yaml:"extra_traps"`
	ExtraLowValue  []string `yaml:"extra_low_value_prefixes"`
	ExtraRedundant []string `yaml:"extra_redundant"`
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Default returns the settings used when nothing else is configured.
func Default() Config {
	return Config{
		Seeds: []string{
			"https://www.ics.uci.edu",
			"https://www.cs.uci.edu",
			"https://www.informatics.uci.edu",
			"https://www.stat.uci.edu",
		},
		MaxPages:        5000,
		Workers:         32,
		Strategy:        "bfs",
		RequestsPerHost: 2.0,
		UserAgent:       "ICSCrawler/0.3",
		FetchTimeout:    15 * time.Second,
		MaxBodyBytes:    1 << 20,
		ReportPath:      "report.md",
		MetricsAddr:     ":2112",
		Logging:         LoggingConfig{Level: "info"},
	}
}

// LoadFile overlays the YAML file at path onto Default().
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, ErrConfigNotFound
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Load reads path (if non-empty) and then applies the environment. A .env
// file in the working directory is loaded when present.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = LoadFile(path); err != nil {
			return cfg, err
		}
	}
	_ = godotenv.Load()
	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

// ApplyEnv overrides fields from MONGODB_URI, MONGO_DB, CRAWLER_USER_AGENT,
// CRAWLER_LOG_LEVEL and CRAWLER_SEEDS (comma separated).
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("MONGODB_URI"); v != "" {
		c.Mongo.URI = v
	}
	if v := getenv("MONGO_DB"); v != "" {
		c.Mongo.Database = v
	}
	if v := getenv("CRAWLER_USER_AGENT"); v != "" {
		c.UserAgent = v
	}
	if v := getenv("CRAWLER_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := getenv("CRAWLER_SEEDS"); v != "" {
		var seeds []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				seeds = append(seeds, s)
			}
		}
		if len(seeds) > 0 {
			c.Seeds = seeds
		}
	}
}

// Validate checks ranges. It returns the first problem found.
func (c Config) Validate() error {
	if len(c.Seeds) == 0 {
		return ErrNoSeeds
	}
	if c.Workers <= 0 {
		return ErrInvalidWorkers
	}
	if c.MaxPages < 0 {
		return ErrInvalidMaxPages
	}
	if !validStrategy(c.Strategy) {
		return fmt.Errorf("%w: %q", ErrInvalidStrategy, c.Strategy)
	}
	if c.FetchTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxBodyBytes <= 0 {
		return ErrInvalidBodySize
	}
	if c.RequestsPerHost < 0 {
		return ErrInvalidRate
	}
	return nil
}

func validStrategy(s string) bool {
	s = strings.ToLower(s)
	switch {
	case s == "bfs", s == "dfs":
		return true
	case strings.HasPrefix(s, "mixed"):
		_, err := strconv.Atoi(s[len("mixed"):])
		return err == nil
	}
	return false
}
