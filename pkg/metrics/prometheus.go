package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	UploadsProcessed *prometheus.CounterVec
	RowsNormalized   *prometheus.CounterVec
	DiffEntries      *prometheus.CounterVec
	DraftsRendered   *prometheus.CounterVec
	ProcessingTime   prometheus.Histogram
	ErrorsCount      *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		UploadsProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_processed_total",
			Help:      "The total number of processed spreadsheet uploads",
		}, []string{"stream"}),
		RowsNormalized: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_normalized_total",
			Help:      "The total number of normalized sheet rows",
		}, []string{"stream"}),
		DiffEntries: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diff_entries_total",
			Help:      "Diff classifications produced per upload",
		}, []string{"stream", "kind"}),
		DraftsRendered: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "drafts_rendered_total",
			Help:      "The total number of rendered drafts",
		}, []string{"stream"}),
		ProcessingTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upload_processing_time_seconds",
			Help:      "Time taken to process uploads",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
