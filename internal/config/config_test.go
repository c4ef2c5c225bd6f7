package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Len(t, cfg.Seeds, 4)
	assert.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "crawl.yaml")
	data := `
seeds:
  - https://www.ics.uci.edu/
workers: 4
max_pages: 100
strategy: mixed30
fetch_timeout: 3s
scope:
  extra_traps: ["/wiki/"]
mongo:
  database: test
logging:
  level: debug
  json: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://www.ics.uci.edu/"}, cfg.Seeds)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 100, cfg.MaxPages)
	assert.Equal(t, "mixed30", cfg.Strategy)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
	assert.Equal(t, []string{"/wiki/"}, cfg.Scope.ExtraTraps)
	assert.Equal(t, "test", cfg.Mongo.Database)
	assert.Equal(t, LoggingConfig{Level: "debug", JSON: true}, cfg.Logging)
	// untouched fields keep defaults
	assert.Equal(t, ":2112", cfg.MetricsAddr)
	require.NoError(t, cfg.Validate())
}

func TestLoadFileErrors(t *testing.T) {
	t.Parallel()

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrConfigNotFound)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("workers: [1, 2"), 0o600))
	_, err = LoadFile(bad)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrConfigNotFound))
}

func TestApplyEnv(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"MONGODB_URI":        "mongodb://localhost:27017",
		"MONGO_DB":           "crawl",
		"CRAWLER_USER_AGENT": "TestBot/1.0",
		"CRAWLER_SEEDS":      " https://cs.uci.edu/ , ,https://stat.uci.edu/",
	}
	cfg := Default()
	cfg.ApplyEnv(func(k string) string { return env[k] })

	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "crawl", cfg.Mongo.Database)
	assert.Equal(t, "TestBot/1.0", cfg.UserAgent)
	assert.Equal(t, []string{"https://cs.uci.edu/", "https://stat.uci.edu/"}, cfg.Seeds)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"no seeds", func(c *Config) { c.Seeds = nil }, ErrNoSeeds},
		{"zero workers", func(c *Config) { c.Workers = 0 }, ErrInvalidWorkers},
		{"negative pages", func(c *Config) { c.MaxPages = -1 }, ErrInvalidMaxPages},
		{"bad strategy", func(c *Config) { c.Strategy = "random" }, ErrInvalidStrategy},
		{"bad mixed", func(c *Config) { c.Strategy = "mixedX" }, ErrInvalidStrategy},
		{"zero timeout", func(c *Config) { c.FetchTimeout = 0 }, ErrInvalidTimeout},
		{"zero body", func(c *Config) { c.MaxBodyBytes = 0 }, ErrInvalidBodySize},
		{"negative rate", func(c *Config) { c.RequestsPerHost = -1 }, ErrInvalidRate},
		{"unlimited pages ok", func(c *Config) { c.MaxPages = 0 }, nil},
		{"dfs ok", func(c *Config) { c.Strategy = "DFS" }, nil},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
