package scraper

import (
	"go.uber.org/zap"

	"ics-crawler/internal/metrics"
	"ics-crawler/internal/parser"
	"ics-crawler/internal/scope"
)

// Extractor turns a page's raw anchors into in-scope absolute URLs.
type Extractor struct {
	filter *scope.Filter
	logger *zap.Logger
}

// NewExtractor returns an Extractor backed by filter.
func NewExtractor(filter *scope.Filter, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{filter: filter, logger: logger}
}

// ExtractLinks resolves hrefs against pageURL, drops fragments and keeps the
// ones the scope filter accepts. Order is preserved and duplicates are kept;
// deduplication is the frontier's job.
func (e *Extractor) ExtractLinks(pageURL string, hrefs []string) []string {
	links := make([]string, 0, len(hrefs))
	if len(hrefs) == 0 {
		return links
	}

	res, err := parser.NewResolver(pageURL)
	if err != nil {
		e.logger.Debug("cannot resolve against page url", zap.String("page", pageURL), zap.Error(err))
		return links
	}

	for _, href := range hrefs {
		if href == "" {
			continue
		}
		abs := res.Resolve(href)
		if abs == "" {
			metrics.LinksRejected.WithLabelValues("unresolvable").Inc()
			continue
		}
		if reason := e.filter.Classify(abs); reason != scope.ReasonNone {
			metrics.LinksRejected.WithLabelValues(reason.String()).Inc()
			e.logger.Debug("link rejected", zap.String("url", abs), zap.Stringer("reason", reason))
			continue
		}
		links = append(links, abs)
	}
	metrics.LinksExtracted.Add(float64(len(links)))
	return links
}
