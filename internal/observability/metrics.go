package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	answerRequestsTotal   *prometheus.CounterVec
	answerDurationSeconds prometheus.Histogram
	revealSessionsTotal   *prometheus.CounterVec
	httpRequestsTotal     *prometheus.CounterVec
	httpLatencySeconds    *prometheus.HistogramVec
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		answerRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quraniq_answer_requests_total",
			Help: "Answer pipeline runs grouped by outcome.",
		}, []string{"outcome"})

		answerDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "quraniq_answer_duration_seconds",
			Help:    "End-to-end duration of the answer pipeline.",
			Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 15.0},
		})

		revealSessionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quraniq_reveal_sessions_total",
			Help: "Reveal websocket sessions grouped by how they ended.",
		}, []string{"result"})

		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quraniq_http_requests_total",
			Help: "HTTP requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "quraniq_http_latency_seconds",
			Help:    "Latency distribution for HTTP requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "route"})

		prometheus.MustRegister(
			answerRequestsTotal,
			answerDurationSeconds,
			revealSessionsTotal,
			httpRequestsTotal,
			httpLatencySeconds,
		)
	})
}

// AnswerRequests exposes the answer outcome counter.
func AnswerRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return answerRequestsTotal
}

// AnswerDuration exposes the pipeline duration histogram.
func AnswerDuration() prometheus.Histogram {
	RegisterMetrics()
	return answerDurationSeconds
}

// RevealSessions exposes the reveal session counter.
func RevealSessions() *prometheus.CounterVec {
	RegisterMetrics()
	return revealSessionsTotal
}

// HTTPRequests exposes the request counter.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the request latency histogram.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}
