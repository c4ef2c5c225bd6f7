package crawler

import (
	"math/rand"
	"strconv"
	"strings"
	"time"

	"ics-crawler/internal/config"
	"ics-crawler/internal/frontier"
)

type Options struct {
	Seeds           []string
	MaxPages        int // unique-page budget; 0 = unlimited
	Workers         int
	Strategy        string
	RequestsPerHost float64
	UserAgent       string
	FetchTimeout    time.Duration
	MaxBodyBytes    int64
	ReportPath      string // markdown report; "" = don't write
	MetricsAddr     string // "" = no metrics server
	ProgressEvery   time.Duration
	mixPct          int // 0 = pure BFS, 100 = pure DFS
}

// OptionsFromConfig copies the crawl-driver fields out of cfg.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Seeds:           cfg.Seeds,
		MaxPages:        cfg.MaxPages,
		Workers:         cfg.Workers,
		Strategy:        cfg.Strategy,
		RequestsPerHost: cfg.RequestsPerHost,
		UserAgent:       cfg.UserAgent,
		FetchTimeout:    cfg.FetchTimeout,
		MaxBodyBytes:    cfg.MaxBodyBytes,
		ReportPath:      cfg.ReportPath,
		MetricsAddr:     cfg.MetricsAddr,
		ProgressEvery:   time.Minute,
	}
}

func (o *Options) initStrategy() {
	s := strings.ToLower(o.Strategy)
	switch {
	case s == "bfs":
		o.mixPct = 0
	case s == "dfs":
		o.mixPct = 100
	case strings.HasPrefix(s, "mixed"):
		if n, err := strconv.Atoi(s[5:]); err == nil {
			o.mixPct = min(max(n, 0), 100)
		}
	default:
		o.mixPct = 0
	}
}

// SelectURL pops from front or back according to mixPct.
func (o *Options) SelectURL(q *frontier.Queue, rng *rand.Rand) (string, bool) {
	switch {
	case o.mixPct == 0: // BFS
		return q.PopFront()
	case o.mixPct == 100: // DFS
		return q.PopBack()
	default: // mixed
		if rng.Intn(100) < o.mixPct {
			return q.PopBack()
		}
		return q.PopFront()
	}
}

// -----------------------------------------------------------------------------
// helper called by engine once
// -----------------------------------------------------------------------------
func (o *Options) prepare() *rand.Rand {
	o.initStrategy()
	if o.Workers <= 0 {
		o.Workers = 1
	}
	if o.FetchTimeout <= 0 {
		o.FetchTimeout = 15 * time.Second
	}
	if o.MaxBodyBytes <= 0 {
		o.MaxBodyBytes = 1 << 20
	}
	if o.UserAgent == "" {
		o.UserAgent = "ICSCrawler/0.3"
	}
	if o.ProgressEvery <= 0 {
		o.ProgressEvery = time.Minute
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
