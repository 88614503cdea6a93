// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReviewsTotal counts review runs by mode and outcome stage.
	ReviewsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mamba_reviews_total",
			Help: "Review runs by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	// InsightRequestsTotal counts POST /insights requests by response status.
	InsightRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mamba_insight_requests_total",
			Help: "Insight submissions by HTTP status code",
		},
		[]string{"code"},
	)

	// InsightsStoredTotal counts insights processed by the worker pool.
	InsightsStoredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mamba_insights_stored_total",
			Help: "Insights persisted by the worker pool, by result",
		},
		[]string{"result"},
	)

	// InsightQueueDepth reports insights waiting for a worker.
	InsightQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mamba_insight_queue_depth",
		Help: "Insights queued and not yet picked up by a worker",
	})
)
