package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	PagesFetched = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "crawler_pages_fetched_total",
		Help: "Total number of pages fetched, any status",
	})
	BytesFetched = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "crawler_bytes_fetched_total",
		Help: "Total bytes downloaded",
	})
	FetchStatus = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "crawler_fetch_status_total",
		Help: "Fetch results by HTTP status code (0 = transport error)",
	}, []string{"code"})
	PagesRecorded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "crawler_pages_recorded_total",
		Help: "Unique in-scope pages added to the corpus statistics",
	})
	LinksExtracted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "crawler_links_extracted_total",
		Help: "In-scope links handed back to the frontier",
	})
	LinksRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "crawler_links_rejected_total",
		Help: "Candidate links rejected by the scope filter, by rule",
	}, []string{"reason"})
)

func init() {
	prometheus.MustRegister(PagesFetched, BytesFetched, FetchStatus, PagesRecorded, LinksExtracted, LinksRejected)
}
