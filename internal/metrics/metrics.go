package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP Metrics
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	HTTPRequestsInFlight  prometheus.Gauge
	HTTPResponseSizeBytes *prometheus.HistogramVec

	// Business Metrics
	TransactionsCreated      *prometheus.CounterVec
	TransactionErrors        *prometheus.CounterVec
	WebhookAttemptsTotal     *prometheus.CounterVec
	ConfirmationRetriesTotal *prometheus.CounterVec

	// Validation Metrics
	ValidationErrors   *prometheus.CounterVec
	ValidationDuration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		// HTTP Metrics
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payments_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "payments_http_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
		),
		HTTPResponseSizeBytes: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payments_http_response_size_bytes",
				Help:    "Size of HTTP responses in bytes",
				Buckets: []float64{100, 1000, 10_000, 100_000, 1_000_000},
			},
			[]string{"method", "path", "status_code"},
		),

		// Business Metrics
		TransactionsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_transactions_created_total",
				Help: "Total number of transactions dispatched",
			},
			[]string{"tx_type"},
		),
		TransactionErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_transaction_errors_total",
				Help: "Total number of transaction dispatch errors",
			},
			[]string{"tx_type", "error_type"},
		),
		WebhookAttemptsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_webhook_attempts_total",
				Help: "Total number of webhook confirmation attempts",
			},
			[]string{"tx_type", "source", "status"},
		),
		ConfirmationRetriesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_confirmation_retries_total",
				Help: "Total number of rescheduled confirmation jobs",
			},
			[]string{"tx_type"},
		),

		// Validation Metrics
		ValidationErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_validation_errors_total",
				Help: "Total number of request validation errors",
			},
			[]string{"field", "tag"},
		),
		ValidationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payments_validation_duration_seconds",
				Help:    "Duration of request validation in seconds",
				Buckets: []float64{0.0001, 0.001, 0.01, 0.1},
			},
			[]string{"endpoint"},
		),
	}
}

func (m *Metrics) RecordHTTPRequest(method, path, statusCode string, duration time.Duration, responseSize int) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration.Seconds())
	m.HTTPResponseSizeBytes.WithLabelValues(method, path, statusCode).Observe(float64(responseSize))
}

func (m *Metrics) RecordTransactionCreated(txType string) {
	m.TransactionsCreated.WithLabelValues(txType).Inc()
}

func (m *Metrics) RecordTransactionError(txType, errorType string) {
	m.TransactionErrors.WithLabelValues(txType, errorType).Inc()
}

func (m *Metrics) RecordWebhookAttempt(txType, source, status string) {
	m.WebhookAttemptsTotal.WithLabelValues(txType, source, status).Inc()
}

func (m *Metrics) RecordConfirmationRetry(txType string) {
	m.ConfirmationRetriesTotal.WithLabelValues(txType).Inc()
}

func (m *Metrics) RecordValidationError(field, tag string) {
	m.ValidationErrors.WithLabelValues(field, tag).Inc()
}

func (m *Metrics) RecordValidationDuration(endpoint string, duration time.Duration) {
	m.ValidationDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}
