package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "airsense_predictions_total",
			Help: "Total predictions produced, by action",
		},
		[]string{"action"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "airsense_http_requests_total",
			Help: "Total HTTP requests served",
		},
		[]string{"route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "airsense_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	SnapshotRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "airsense_snapshot_runs_total",
			Help: "Total scheduler snapshot runs, by outcome",
		},
		[]string{"status"},
	)

	FeatureFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "airsense_feature_fetches_total",
			Help: "Total live feature fetches, by outcome",
		},
		[]string{"status"},
	)

	RateLimitDeniedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "airsense_rate_limit_denied_total",
			Help: "Total requests denied by the rate limiter",
		},
	)
)
