// internal/scraper/scraper.go
package scraper

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"ics-crawler/internal/metrics"
	"ics-crawler/internal/parser"
	"ics-crawler/internal/scope"
	"ics-crawler/internal/stats"
	"ics-crawler/internal/tokenizer"
)

// FetchResult is what the fetch layer hands over for one request.
// Content is only meaningful when Status is 200.
type FetchResult struct {
	URL     string // effective URL after redirects; "" means the requested URL
	Status  int
	Err     error
	Content []byte
}

// PageParser turns raw page bytes into text and anchors.
type PageParser interface {
	Parse(content []byte) (parser.Document, error)
}

// Outcome is the full result of processing one fetched page.
type Outcome struct {
	Links     []string // in-scope absolute links for the frontier
	Canonical string   // fragment-stripped effective URL
	Host      string
	Title     string
	Words     int  // tokens after stopword removal
	InScope   bool // the page itself passed the scope filter
	Recorded  bool // the page was new to the statistics
}

// Scraper is the per-page entry point called by crawl workers. It is safe
// for concurrent use.
type Scraper struct {
	filter    *scope.Filter
	stats     *stats.Aggregator
	extractor *Extractor
	parser    PageParser
	limit     int
	logger    *zap.Logger
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithParser replaces the default goquery/x-net-html parser.
func WithParser(p PageParser) Option {
	return func(s *Scraper) { s.parser = p }
}

// WithPageLimit stops link output once limit unique pages are recorded.
// 0 means no limit.
func WithPageLimit(limit int) Option {
	return func(s *Scraper) { s.limit = limit }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Scraper) {
		if l != nil {
			s.logger = l
		}
	}
}

// New wires a Scraper around a shared filter and aggregator.
func New(filter *scope.Filter, agg *stats.Aggregator, opts ...Option) *Scraper {
	s := &Scraper{
		filter: filter,
		stats:  agg,
		parser: parser.HTML{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.extractor = NewExtractor(filter, s.logger)
	return s
}

// OnPageFetched processes one fetched page and returns the in-scope links
// found on it.
func (s *Scraper) OnPageFetched(requestedURL string, res FetchResult) []string {
	return s.Process(requestedURL, res).Links
}

// Process is OnPageFetched with the page details the crawl driver persists.
// Non-200 responses and empty bodies yield a zero Outcome.
func (s *Scraper) Process(requestedURL string, res FetchResult) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("page processing panicked", zap.String("url", requestedURL), zap.Any("panic", r))
			out = Outcome{}
		}
	}()

	if res.Status != http.StatusOK || len(res.Content) == 0 {
		if res.Err != nil {
			s.logger.Debug("fetch failed", zap.String("url", requestedURL), zap.Int("status", res.Status), zap.Error(res.Err))
		}
		return Outcome{}
	}
	if s.LimitReached() {
		return Outcome{}
	}

	pageURL := res.URL
	if pageURL == "" {
		pageURL = requestedURL
	}

	doc, err := s.parser.Parse(res.Content)
	if err != nil {
		s.logger.Warn("cannot parse page", zap.String("url", pageURL), zap.Error(err))
		return Outcome{}
	}

	out.Canonical = scope.Canonical(pageURL)
	out.Title = doc.Title

	out.InScope = s.filter.IsInScope(pageURL)
	if out.InScope && !s.stats.Seen(pageURL) {
		tokens := tokenizer.Tokenize(doc.Text)
		out.Words = len(tokens)

		recorded, err := s.stats.RecordPageCapped(pageURL, tokens, s.limit)
		switch {
		case errors.Is(err, stats.ErrBudgetExhausted):
			return Outcome{}
		case err != nil:
			s.logger.Warn("cannot record page", zap.String("url", pageURL), zap.Error(err))
		case recorded:
			metrics.PagesRecorded.Inc()
			out.Recorded = true
			out.Host, _ = scope.Host(pageURL)
		}
	}

	out.Links = s.extractor.ExtractLinks(pageURL, doc.Hrefs)
	return out
}

// LimitReached reports whether the injected page budget is used up.
func (s *Scraper) LimitReached() bool {
	return s.limit > 0 && s.stats.UniquePages() >= s.limit
}
