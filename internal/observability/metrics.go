package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "resume_builder"

// Collectors shared by the server and CLI. Register them with RegisterCollectors.
var (
	// Mutations counts section store mutations by op (add, update, set), section and result
	Mutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "mutations_total", Help: "Section store mutations by operation, section, and result."},
		[]string{"op", "section", "result"},
	)
	// Submits counts submit attempts by result
	Submits = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "submits_total", Help: "Submit attempts by result."},
		[]string{"result"},
	)
	// SubmitDuration observes the time spent writing a document to the sink
	SubmitDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Namespace: namespace, Name: "submit_duration_seconds", Help: "Time spent writing documents to the sink.", Buckets: prometheus.DefBuckets},
	)
	// SessionsActive is the number of open editing sessions
	SessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{Namespace: namespace, Name: "sessions_active", Help: "Open editing sessions."},
	)
	// RateLimitRejected counts requests rejected by the rate limiter
	RateLimitRejected = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_rejected_total", Help: "Requests rejected by the rate limiter."},
	)
)

// RegisterCollectors registers every collector with reg
func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(Mutations)
	reg.MustRegister(Submits)
	reg.MustRegister(SubmitDuration)
	reg.MustRegister(SessionsActive)
	reg.MustRegister(RateLimitRejected)
}

// Result returns the result label for err
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
