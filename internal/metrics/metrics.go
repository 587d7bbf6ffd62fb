package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns its own registry so servers and tests never collide on the
// global default one.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	checkoutOutcomes *prometheus.CounterVec
	ordersCreated    prometheus.Counter
	authAttempts     *prometheus.CounterVec
}

func New(service string) *Metrics {
	constLabels := prometheus.Labels{"service": service}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "http_requests_total",
				Help:        "Total number of HTTP requests",
				ConstLabels: constLabels,
			},
			[]string{"method", "endpoint", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "http_request_duration_seconds",
				Help:        "HTTP request duration in seconds",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: constLabels,
			},
			[]string{"method", "endpoint"},
		),
		checkoutOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "checkout_attempts_total",
				Help:        "Checkout attempts by outcome and payment method",
				ConstLabels: constLabels,
			},
			[]string{"outcome", "method"},
		),
		ordersCreated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name:        "orders_created_total",
				Help:        "Orders recorded in the ledger",
				ConstLabels: constLabels,
			},
		),
		authAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "auth_attempts_total",
				Help:        "Login and registration attempts by result",
				ConstLabels: constLabels,
			},
			[]string{"action", "result"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.checkoutOutcomes,
		m.ordersCreated,
		m.authAttempts,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordCheckout counts one checkout attempt; a placed order also counts as
// an order created.
func (m *Metrics) RecordCheckout(outcome, method string) {
	m.checkoutOutcomes.WithLabelValues(outcome, method).Inc()
	if outcome == "placed" || outcome == "cart_not_cleared" {
		m.ordersCreated.Inc()
	}
}

func (m *Metrics) RecordAuth(action string, ok bool) {
	result := "success"
	if !ok {
		result = "failure"
	}
	m.authAttempts.WithLabelValues(action, result).Inc()
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Middleware records request counts and latencies. It must wrap the
// ServeMux directly so the matched route pattern is visible afterwards.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		timer := StartTimer()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		endpoint := r.Pattern
		if endpoint == "" {
			endpoint = "unmatched"
		}
		m.httpRequests.WithLabelValues(r.Method, endpoint, strconv.Itoa(sw.status)).Inc()
		m.httpDuration.WithLabelValues(r.Method, endpoint).Observe(timer.Duration().Seconds())
	})
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
