package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "litle_transactions_total",
			Help: "Total number of Litle transactions by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	protocolFaultsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "litle_protocol_faults_total",
			Help: "Total number of responses rejected at the protocol level",
		},
	)

	correlationFaultsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "litle_correlation_faults_total",
			Help: "Total number of submitted transactions with no matching batch response",
		},
	)

	batchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "litle_batch_size",
			Help:    "Number of transactions per submitted batch",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	roundTripDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "litle_round_trip_duration_seconds",
			Help:    "Duration of gateway round trips in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"},
	)
)

// RecordTransaction records the outcome of a single classified transaction
func RecordTransaction(kind string, success bool) {
	outcome := "declined"
	if success {
		outcome = "approved"
	}
	transactionsTotal.WithLabelValues(kind, outcome).Inc()
}

// RecordProtocolFault records a document-level failure response
func RecordProtocolFault() {
	protocolFaultsTotal.Inc()
}

// RecordCorrelationFault records a submitted id that had no response
func RecordCorrelationFault() {
	correlationFaultsTotal.Inc()
}

// RecordBatchSize records the number of transactions in a batch submission
func RecordBatchSize(n int) {
	batchSize.Observe(float64(n))
}

// RecordRoundTrip records the duration of one submit/response exchange
func RecordRoundTrip(mode string, d time.Duration) {
	roundTripDuration.WithLabelValues(mode).Observe(d.Seconds())
}
