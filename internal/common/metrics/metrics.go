// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChatRepliesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_replies_total",
			Help: "Total number of chat replies by matching rule",
		},
		[]string{"rule"},
	)

	ChatRequestsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_requests_rejected_total",
			Help: "Total number of chat requests rejected before answering",
		},
		[]string{"error_code"},
	)

	ChatMalformedBodies = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_malformed_bodies_total",
			Help: "Chat requests whose body was replaced by an empty message",
		},
	)

	ChatRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chat_request_duration_seconds",
			Help:    "Duration of chat request handling in seconds",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		},
		[]string{"route"},
	)

	ChatRequestsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_requests_active",
			Help: "Number of chat requests currently being handled",
		},
	)
)
