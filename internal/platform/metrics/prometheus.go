package metrics

import (
	"net/http"
	"time"

	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/platform/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsManager holds the application's Prometheus collectors.
type MetricsManager struct {
	Registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec   // method, route, status
	HTTPRequestDuration *prometheus.HistogramVec // method, route

	ListingsCreatedTotal prometheus.Counter
	ListingsUpdatedTotal prometheus.Counter
	ListingsDeletedTotal prometheus.Counter
	ReviewsCreatedTotal  prometheus.Counter
	ReviewsDeletedTotal  prometheus.Counter

	SignupsTotal       prometheus.Counter
	LoginAttemptsTotal *prometheus.CounterVec // result
	GuardDenialsTotal  *prometheus.CounterVec // guard
}

// NewMetricsManager registers every collector on a private registry.
func NewMetricsManager(namespace string) *MetricsManager {
	registry := prometheus.NewRegistry()

	m := &MetricsManager{
		Registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of HTTP requests by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ListingsCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listings_created_total",
			Help:      "Total number of listings created.",
		}),
		ListingsUpdatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listings_updated_total",
			Help:      "Total number of listings updated.",
		}),
		ListingsDeletedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listings_deleted_total",
			Help:      "Total number of listings deleted.",
		}),
		ReviewsCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_created_total",
			Help:      "Total number of reviews created.",
		}),
		ReviewsDeletedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_deleted_total",
			Help:      "Total number of reviews deleted.",
		}),
		SignupsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signups_total",
			Help:      "Total number of successful signups.",
		}),
		LoginAttemptsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),
		GuardDenialsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guard_denials_total",
			Help:      "Requests turned away by an access guard.",
		}, []string{"guard"}),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ListingsCreatedTotal,
		m.ListingsUpdatedTotal,
		m.ListingsDeletedTotal,
		m.ReviewsCreatedTotal,
		m.ReviewsDeletedTotal,
		m.SignupsTotal,
		m.LoginAttemptsTotal,
		m.GuardDenialsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// ObserveRequest records one served HTTP request.
func (m *MetricsManager) ObserveRequest(method, route, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *MetricsManager) inc(c func(*MetricsManager) prometheus.Counter) {
	if m == nil {
		return
	}
	c(m).Inc()
}

func (m *MetricsManager) ListingCreated() {
	m.inc(func(m *MetricsManager) prometheus.Counter { return m.ListingsCreatedTotal })
}

func (m *MetricsManager) ListingUpdated() {
	m.inc(func(m *MetricsManager) prometheus.Counter { return m.ListingsUpdatedTotal })
}

func (m *MetricsManager) ListingDeleted() {
	m.inc(func(m *MetricsManager) prometheus.Counter { return m.ListingsDeletedTotal })
}

func (m *MetricsManager) ReviewCreated() {
	m.inc(func(m *MetricsManager) prometheus.Counter { return m.ReviewsCreatedTotal })
}

func (m *MetricsManager) ReviewDeleted() {
	m.inc(func(m *MetricsManager) prometheus.Counter { return m.ReviewsDeletedTotal })
}

func (m *MetricsManager) Signup() {
	m.inc(func(m *MetricsManager) prometheus.Counter { return m.SignupsTotal })
}

// GuardDenied counts a denial by the named guard.
func (m *MetricsManager) GuardDenied(guard string) {
	if m == nil {
		return
	}
	m.GuardDenialsTotal.WithLabelValues(guard).Inc()
}

// LoginAttempt counts a login attempt with its outcome.
func (m *MetricsManager) LoginAttempt(result string) {
	if m == nil {
		return
	}
	m.LoginAttemptsTotal.WithLabelValues(result).Inc()
}

// StartMetricsServer serves the registry on /metrics. It blocks.
func StartMetricsServer(port string, appLogger *logger.Logger, registry *prometheus.Registry) error {
	if port == "" {
		appLogger.Info("Prometheus metrics server port not configured, server will not start.")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	appLogger.Info("Prometheus metrics server starting", zap.String("port", port), zap.String("path", "/metrics"))

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return server.ListenAndServe()
}
