package prometheus

import (
	"time"

	"github.com/Olocraft/propady/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthErrorsCounter   prometheus.CounterVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Domain operation metrics
	PropertyOperationsCounter     prometheus.CounterVec
	SearchRequestsCounter         prometheus.Counter
	SearchFailuresCounter         prometheus.Counter
	InvestmentOperationsCounter   prometheus.CounterVec
	CrowdfundingOperationsCounter prometheus.CounterVec
	UploadFailuresCounter         prometheus.Counter
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(cfg *config.Config) {
	// Use metric prefix from configuration
	prefix := cfg.Metrics.Prefix

	// HTTP request metrics
	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Authentication metrics
	AuthAttemptsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
	)

	AuthErrorsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"reason"},
	)

	// Database operation metrics
	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	// Property metrics
	PropertyOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_property_operations_total",
			Help: "Total number of property operations",
		},
		[]string{"operation"},
	)

	// Search metrics
	SearchRequestsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_search_requests_total",
			Help: "Total number of property searches",
		},
	)

	SearchFailuresCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_search_failures_total",
			Help: "Total number of property searches that degraded to an empty result",
		},
	)

	// Investment metrics
	InvestmentOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_investment_operations_total",
			Help: "Total number of investment operations",
		},
		[]string{"operation"},
	)

	// Crowdfunding metrics
	CrowdfundingOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_crowdfunding_operations_total",
			Help: "Total number of crowdfunding operations",
		},
		[]string{"operation"},
	)

	// Storage metrics
	UploadFailuresCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_upload_failures_total",
			Help: "Total number of failed object storage uploads",
		},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordAuthError increments the counter for authentication errors
func RecordAuthError(reason string) {
	AuthErrorsCounter.WithLabelValues(reason).Inc()
}

// RecordPropertyOperation increments the counter for property operations
func RecordPropertyOperation(operation string) {
	PropertyOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordInvestmentOperation increments the counter for investment operations
func RecordInvestmentOperation(operation string) {
	InvestmentOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordCrowdfundingOperation increments the counter for crowdfunding operations
func RecordCrowdfundingOperation(operation string) {
	CrowdfundingOperationsCounter.WithLabelValues(operation).Inc()
}
