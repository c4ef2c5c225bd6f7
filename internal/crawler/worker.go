package crawler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"ics-crawler/internal/storage"
)

// -----------------------------------------------------------------------------
// runWorker handles the whole life-cycle for one goroutine. It drains jobs
// until the dispatcher closes the channel. Jobs still buffered when ctx is
// cancelled are dropped; a job that has started always finishes so its
// statistics land in one piece.
// -----------------------------------------------------------------------------
func (e *Engine) runWorker(ctx context.Context, jobs <-chan string) {
	for u := range jobs {
		if ctx.Err() == nil {
			e.crawlOne(ctx, u)
		}
		e.inflight.Add(-1)
	}
}

func (e *Engine) crawlOne(ctx context.Context, u string) {
	// the fetch outlives cancellation; FetchTimeout still bounds it
	res := e.fetcher.Fetch(context.WithoutCancel(ctx), u)
	if res.URL != "" && res.URL != u {
		// redirected: don't fetch the target again later
		e.visited.Add(res.URL)
	}

	out := e.scraper.Process(u, res)
	if out.Recorded {
		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		err := e.store.SavePage(saveCtx, storage.PageRecord{
			URL:       out.Canonical,
			Host:      out.Host,
			Title:     out.Title,
			Words:     out.Words,
			Links:     len(out.Links),
			FetchedAt: time.Now().UTC(),
		})
		cancel()
		if err != nil {
			e.logger.Warn("save page", zap.String("url", out.Canonical), zap.Error(err))
		}
	}

	for _, l := range out.Links {
		if e.visited.AddIfAbsent(l) {
			e.queue.Enqueue(l)
		}
	}
}
