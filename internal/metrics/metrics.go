package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Store Metrics
	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nexus_store_operations_total",
			Help: "Total number of store operations by outcome",
		},
		[]string{"operation", "status"},
	)

	LikeRateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nexus_like_rate_limited_total",
			Help: "Total number of like toggles rejected by the cooldown",
		},
	)

	AuditLogEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nexus_audit_log_entries",
			Help: "Number of entries currently retained in the audit log",
		},
	)

	// Persistence Metrics
	PersistOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nexus_persist_operations_total",
			Help: "Total number of persistence reads and writes",
		},
		[]string{"operation", "key", "status"},
	)

	PersistOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nexus_persist_duration_seconds",
			Help:    "Persistence operation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
		[]string{"operation"},
	)

	PersistBytesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nexus_persist_bytes_total",
			Help: "Total bytes read from or written to the key-value backend",
		},
		[]string{"operation"},
	)

	// Generation Metrics
	GenerationRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nexus_generation_requests_total",
			Help: "Total number of AI generation requests",
		},
		[]string{"kind", "status"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nexus_generation_duration_seconds",
			Help:    "AI generation latency in seconds",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10), // 250ms to ~2min
		},
		[]string{"kind"},
	)
)

// Status label values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// RecordStoreOperation records the outcome of a store operation
func RecordStoreOperation(operation, status string) {
	StoreOperationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordLikeRateLimited records a like toggle rejected by the cooldown
func RecordLikeRateLimited() {
	LikeRateLimitedTotal.Inc()
}

// UpdateAuditLogSize records the retained audit log length
func UpdateAuditLogSize(entries int) {
	AuditLogEntries.Set(float64(entries))
}

// RecordPersistOperation records a persistence read or write
func RecordPersistOperation(operation, key, status string, duration float64, bytes int) {
	PersistOperationsTotal.WithLabelValues(operation, key, status).Inc()
	PersistOperationDuration.WithLabelValues(operation).Observe(duration)
	PersistBytesTotal.WithLabelValues(operation).Add(float64(bytes))
}

// RecordGeneration records an AI generation request
func RecordGeneration(kind, status string, duration float64) {
	GenerationRequestsTotal.WithLabelValues(kind, status).Inc()
	GenerationDuration.WithLabelValues(kind).Observe(duration)
}
