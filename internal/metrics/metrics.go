package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "musicstream",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by method, path and status code.",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "musicstream",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration in seconds.",
		Buckets:   []float64{0.05, 0.1, 0.3, 0.5, 1, 2, 5, 10, 30},
	}, []string{"method", "path"})

	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "musicstream",
		Name:      "track_cache_hits_total",
		Help:      "Total track metadata cache hits.",
	})

	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "musicstream",
		Name:      "track_cache_misses_total",
		Help:      "Total track metadata cache misses.",
	})

	CacheEntries = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "musicstream",
		Name:      "track_cache_entries",
		Help:      "Current number of entries in the track metadata cache.",
	})

	ResolutionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "musicstream",
		Name:      "resolutions_total",
		Help:      "Total track format resolutions attempted.",
	})

	ResolutionFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "musicstream",
		Name:      "resolution_failures_total",
		Help:      "Total track format resolutions that failed.",
	})

	ResolutionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "musicstream",
		Name:      "resolution_duration_seconds",
		Help:      "Duration of track format resolutions in seconds.",
		Buckets:   []float64{0.1, 0.3, 0.5, 1, 2, 5, 10, 15},
	})

	ActiveStreams = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "musicstream",
		Name:      "active_streams",
		Help:      "Number of audio streams currently being relayed.",
	})

	StreamStartsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "musicstream",
		Name:      "stream_starts_total",
		Help:      "Total audio streams started by kind (full or range).",
	}, []string{"kind"})

	StreamCompletionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "musicstream",
		Name:      "stream_completions_total",
		Help:      "Total audio streams relayed to completion by kind.",
	}, []string{"kind"})

	StreamFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "musicstream",
		Name:      "stream_failures_total",
		Help:      "Total audio streams aborted before completion.",
	})

	StreamBytesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "musicstream",
		Name:      "stream_bytes_total",
		Help:      "Total audio bytes relayed to clients.",
	})
)

func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		CacheHitsTotal,
		CacheMissesTotal,
		CacheEntries,
		ResolutionsTotal,
		ResolutionFailuresTotal,
		ResolutionDuration,
		ActiveStreams,
		StreamStartsTotal,
		StreamCompletionsTotal,
		StreamFailuresTotal,
		StreamBytesTotal,
	)
}
