package ai

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generationRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chronicle_ai_requests_total",
			Help: "Total number of requests to the narrative generation API.",
		},
		[]string{"model", "status"},
	)
	generationRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chronicle_ai_request_duration_seconds",
			Help:    "Histogram of narrative generation request durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"model"},
	)
	generationPromptTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chronicle_ai_prompt_tokens",
			Help:    "Histogram of prompt token counts.",
			Buckets: prometheus.LinearBuckets(250, 250, 20),
		},
		[]string{"model"},
	)
	generationCompletionTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chronicle_ai_completion_tokens",
			Help:    "Histogram of completion token counts.",
			Buckets: prometheus.LinearBuckets(100, 100, 20),
		},
		[]string{"model"},
	)
)
