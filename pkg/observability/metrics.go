package observability

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the prometheus collectors for the service.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Entity operation metrics
	EntityOperationsTotal *prometheus.CounterVec
	EntityErrorsTotal     *prometheus.CounterVec

	// Database connection pool metrics
	DBConnectionsActive    prometheus.Gauge
	DBConnectionsIdle      prometheus.Gauge
	DBConnectionsWaitCount prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the given registry.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clientline_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "clientline_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		EntityOperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clientline_entity_operations_total",
				Help: "Total number of entity service operations",
			},
			[]string{"entity", "operation"},
		),
		EntityErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clientline_entity_errors_total",
				Help: "Total number of classified entity service errors",
			},
			[]string{"entity", "operation", "kind"},
		),
		DBConnectionsActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "clientline_db_connections_active",
				Help: "Number of connections currently in use",
			},
		),
		DBConnectionsIdle: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "clientline_db_connections_idle",
				Help: "Number of idle connections",
			},
		),
		DBConnectionsWaitCount: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "clientline_db_connections_wait_count",
				Help: "Total number of connections waited for",
			},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.EntityOperationsTotal,
		m.EntityErrorsTotal,
		m.DBConnectionsActive,
		m.DBConnectionsIdle,
		m.DBConnectionsWaitCount,
	)

	return m
}

// RecordHTTPRequest records a completed HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, durationSeconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(durationSeconds)
}

// RecordEntityOperation records an entity service operation and its outcome.
// kind is empty for successful operations.
func (m *Metrics) RecordEntityOperation(entity, operation, kind string) {
	m.EntityOperationsTotal.WithLabelValues(entity, operation).Inc()
	if kind != "" {
		m.EntityErrorsTotal.WithLabelValues(entity, operation, kind).Inc()
	}
}

// UpdateDBStats refreshes connection pool gauges from sql.DBStats.
func (m *Metrics) UpdateDBStats(stats sql.DBStats) {
	m.DBConnectionsActive.Set(float64(stats.InUse))
	m.DBConnectionsIdle.Set(float64(stats.Idle))
	m.DBConnectionsWaitCount.Set(float64(stats.WaitCount))
}
