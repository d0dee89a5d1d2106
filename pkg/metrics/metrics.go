package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	ContactSubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Total number of contact form submissions by outcome (count)",
		},
		[]string{"outcome"},
	)

	ContactDispatchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "contact_dispatch_duration_ms",
			Help:    "Email dispatch duration for contact submissions in milliseconds",
			Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
		},
		[]string{"status"},
	)

	RateLimitRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_requests_total",
			Help: "Requests seen by the per-IP API throttle (count)",
		},
		[]string{"status"},
	)

	CircuitBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Requests passed through a circuit breaker (count)",
		},
		[]string{"name", "result"},
	)

	registerOnce sync.Once
)

// Register registers every collector with the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ContactSubmissionsTotal)
		prometheus.MustRegister(ContactDispatchDuration)
		prometheus.MustRegister(RateLimitRequestsTotal)
		prometheus.MustRegister(CircuitBreakerState)
		prometheus.MustRegister(CircuitBreakerRequests)
	})
}
