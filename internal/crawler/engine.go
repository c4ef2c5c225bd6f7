// internal/crawler/engine.go
package crawler

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ics-crawler/internal/config"
	"ics-crawler/internal/frontier"
	"ics-crawler/internal/hostman"
	"ics-crawler/internal/scope"
	"ics-crawler/internal/scraper"
	"ics-crawler/internal/stats"
	"ics-crawler/internal/storage"
)

// ErrNoSeedsInScope is returned by Run when every seed is rejected by the
// scope filter.
var ErrNoSeedsInScope = errors.New("no in-scope seeds")

// PageStore persists crawl output.
type PageStore interface {
	SavePage(ctx context.Context, rec storage.PageRecord) error
	SaveReport(ctx context.Context, r stats.Report) error
}

// Engine drives one crawl session: a dispatcher feeding N workers from a
// shared frontier, all of them sharing one scraper and one aggregator.
type Engine struct {
	opts    Options
	rng     *rand.Rand
	filter  *scope.Filter
	stats   *stats.Aggregator
	scraper *scraper.Scraper
	fetcher Fetcher
	hosts   *hostman.Manager
	store   PageStore
	queue   *frontier.Queue
	visited *frontier.Visited
	logger  *zap.Logger

	inflight atomic.Int64
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithFetcher replaces the HTTP fetcher.
func WithFetcher(f Fetcher) EngineOption {
	return func(e *Engine) { e.fetcher = f }
}

// WithStore sets where page and report records go.
func WithStore(s PageStore) EngineOption {
	return func(e *Engine) { e.store = s }
}

// WithEngineLogger sets the logger.
func WithEngineLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine wires the crawl driver around a scope filter and aggregator.
func NewEngine(opts Options, filter *scope.Filter, agg *stats.Aggregator, eopts ...EngineOption) *Engine {
	rng := opts.prepare()
	e := &Engine{
		opts:    opts,
		rng:     rng,
		filter:  filter,
		stats:   agg,
		hosts:   hostman.New(opts.RequestsPerHost),
		store:   storage.Noop(),
		queue:   frontier.NewQueue(),
		visited: frontier.NewVisited(),
		logger:  zap.NewNop(),
	}
	for _, o := range eopts {
		o(e)
	}
	if e.fetcher == nil {
		e.fetcher = NewHTTPFetcher(opts.FetchTimeout, opts.UserAgent, opts.MaxBodyBytes)
	}
	e.scraper = scraper.New(filter, agg,
		scraper.WithPageLimit(opts.MaxPages),
		scraper.WithLogger(e.logger),
	)
	return e
}

// Run crawls until the page budget is used, the frontier runs dry, or ctx
// is cancelled, then writes the report. Pages already being processed when
// ctx is cancelled are allowed to finish.
func (e *Engine) Run(ctx context.Context) (stats.Report, error) {
	for _, s := range e.opts.Seeds {
		if reason := e.filter.Classify(s); reason != scope.ReasonNone {
			e.logger.Warn("seed out of scope", zap.String("seed", s), zap.Stringer("reason", reason))
			continue
		}
		if e.visited.AddIfAbsent(s) {
			e.queue.Enqueue(s)
		}
	}
	if e.queue.Size() == 0 {
		return stats.Report{}, ErrNoSeedsInScope
	}

	stopMetrics := e.serveMetrics()
	defer stopMetrics()

	jobs := make(chan string, e.opts.Workers*2)
	g := new(errgroup.Group)

	// ----- Dispatcher --------------------------------------------------------
	g.Go(func() error {
		defer close(jobs)
		return e.dispatch(ctx, jobs)
	})

	// ----- Workers -----------------------------------------------------------
	for i := 0; i < e.opts.Workers; i++ {
		g.Go(func() error {
			e.runWorker(ctx, jobs)
			return nil
		})
	}

	// ----- Progress ticker ---------------------------------------------------
	start := time.Now()
	ticker := time.NewTicker(e.opts.ProgressEvery)
	tickDone := make(chan struct{})
	go func() {
		for {
			select {
			case <-tickDone:
				return
			case t := <-ticker.C:
				e.logger.Info("progress",
					zap.Duration("elapsed", t.Sub(start).Round(time.Second)),
					zap.Int("unique", e.stats.UniquePages()),
					zap.Int("queued", e.queue.Size()),
					zap.Int64("inflight", e.inflight.Load()),
					zap.Int("hosts", e.hosts.Hosts()))
			}
		}
	}()

	err := g.Wait()
	ticker.Stop()
	close(tickDone)

	report := e.stats.Report()
	e.logger.Info("crawl finished",
		zap.Int("unique", report.UniquePages),
		zap.Int("visited", e.visited.Size()),
		zap.Int("queued_never_visited", e.queue.Size()),
		zap.Int("total_queued", e.queue.TotalQueued()),
		zap.Duration("took", time.Since(start).Round(time.Millisecond)))

	if werr := e.writeReport(ctx, report); werr != nil {
		err = errors.Join(err, werr)
	}
	return report, err
}

// dispatch pops URLs in strategy order, waits on the host's token bucket and
// hands them to workers. It returns when there is nothing left to do.
func (e *Engine) dispatch(ctx context.Context, jobs chan<- string) error {
	for {
		if ctx.Err() != nil || e.scraper.LimitReached() {
			return nil
		}

		u, ok := e.opts.SelectURL(e.queue, e.rng)
		if !ok {
			// Workers enqueue before they decrement inflight, so an idle
			// pool plus an empty queue means the frontier is exhausted.
			if e.inflight.Load() == 0 && e.queue.Size() == 0 {
				return nil
			}
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(20 * time.Millisecond):
			}
			continue
		}

		parsed, err := url.Parse(u)
		if err != nil {
			continue
		}
		if err := e.hosts.Wait(ctx, parsed); err != nil {
			continue
		}

		e.inflight.Add(1)
		select {
		case jobs <- u:
		case <-ctx.Done():
			e.inflight.Add(-1)
			return nil
		}
	}
}

func (e *Engine) writeReport(ctx context.Context, report stats.Report) error {
	var errs []error
	if e.opts.ReportPath != "" {
		f, err := os.Create(e.opts.ReportPath)
		if err != nil {
			errs = append(errs, fmt.Errorf("create report: %w", err))
		} else {
			if err := stats.WriteMarkdown(f, report); err != nil {
				errs = append(errs, fmt.Errorf("write report: %w", err))
			}
			if err := f.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close report: %w", err))
			}
			e.logger.Info("report written", zap.String("path", e.opts.ReportPath))
		}
	}

	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := e.store.SaveReport(saveCtx, report); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// -----------------------------------------------------------------------
// METRICS SERVER  →  http://localhost:2112/metrics
// -----------------------------------------------------------------------
func (e *Engine) serveMetrics() func() {
	if e.opts.MetricsAddr == "" {
		return func() {}
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: e.opts.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.logger.Warn("metrics server", zap.Error(err))
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

// Run is the process entry-point: it builds every collaborator from cfg,
// crawls, and closes the store.
func Run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	store, err := storage.New(ctx, cfg.Mongo.URI, cfg.Mongo.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = store.Close(closeCtx)
	}()
	logger = logger.With(zap.String("session", store.Session()))
	logger.Info("crawl session", zap.Bool("persisting", store.Enabled()))

	filter := scope.New(
		scope.WithLogger(logger),
		scope.WithDomains(cfg.Scope.ExtraDomains...),
		scope.WithTraps(cfg.Scope.ExtraTraps...),
		scope.WithLowValuePrefixes(cfg.Scope.ExtraLowValue...),
		scope.WithRedundant(cfg.Scope.ExtraRedundant...),
	)
	agg := stats.New(stats.DefaultTopWords)

	e := NewEngine(OptionsFromConfig(cfg), filter, agg,
		WithStore(store),
		WithEngineLogger(logger),
	)
	_, err = e.Run(ctx)
	return err
}
