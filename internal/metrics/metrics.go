package metrics

import (
	"encoding/json"
	"net/http"

	"github.com/ErlanBelekov/events-client/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// API client metrics

	APIRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "events_client",
		Name:      "api_request_duration_seconds",
		Help:      "Latency of calls to the events API.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"method", "route", "status"})

	APIRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "events_client",
		Name:      "api_requests_total",
		Help:      "Total calls to the events API. status is \"error\" when no response arrived.",
	}, []string{"method", "route", "status"})

	// View-model metrics

	AttendanceTogglesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "events_client",
		Name:      "attendance_toggles_total",
		Help:      "Attendance toggles by action (join/leave) and outcome.",
	}, []string{"action", "outcome"})

	AttendanceTogglesDeduplicated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "events_client",
		Name:      "attendance_toggles_deduplicated_total",
		Help:      "Toggles that joined an in-flight toggle for the same event.",
	})

	// Session metrics

	SessionChecksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "events_client",
		Name:      "session_checks_total",
		Help:      "Credential validity checks by outcome.",
	}, []string{"outcome"})

	// Reference API server HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "events_api",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "events_api",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})

	HTTPRequestsInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "events_api",
		Name:      "http_requests_in_flight",
		Help:      "Requests currently being served.",
	})
)

func Register() {
	prometheus.MustRegister(
		APIRequestDuration,
		APIRequestsTotal,
		AttendanceTogglesTotal,
		AttendanceTogglesDeduplicated,
		SessionChecksTotal,
		HTTPRequestDuration,
		HTTPRequestsTotal,
		HTTPRequestsInFlight,
	)
}

// NewServer serves /metrics plus liveness and readiness backed by checker.
func NewServer(addr string, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Liveness(r.Context()))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Readiness(r.Context()))
	})
	return &http.Server{Addr: addr, Handler: mux}
}

func writeHealth(w http.ResponseWriter, result health.HealthResult) {
	status := http.StatusOK
	if result.Status != "up" {
		status = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(result)
}
