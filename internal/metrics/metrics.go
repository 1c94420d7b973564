// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EvaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "namecast_evaluations_total",
			Help: "Total number of names evaluated",
		},
		[]string{"source"},
	)

	EvaluationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "namecast_evaluation_duration_seconds",
			Help:    "Duration of a full name evaluation in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	// OracleCalls counts language-model oracle calls by kind and outcome.
	OracleCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "namecast_oracle_calls_total",
			Help: "Total number of oracle calls by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	CollaboratorFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "namecast_collaborator_failures_total",
			Help: "Total number of degraded sub-evaluations by collaborator",
		},
		[]string{"collaborator"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "namecast_cache_lookups_total",
			Help: "Total number of oracle cache lookups by result",
		},
		[]string{"result"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "namecast_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"route", "status"},
	)
)
