package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	priceRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "btcquery",
		Subsystem: "price_client",
		Name:      "operations_total",
		Help:      "Count of price API operations.",
	}, []string{"operation", "source", "status"})
	priceRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "btcquery",
		Subsystem: "price_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of price API operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "source", "status"})
)

// PriceClient tracks metrics for calls to a market data API.
type PriceClient struct {
	source string
}

// NewPriceClient constructs a metrics collector for one price source.
func NewPriceClient(source string) *PriceClient {
	if source == "" {
		source = "unknown"
	}
	return &PriceClient{source: source}
}

// Observe records a single price API call outcome and duration.
func (m PriceClient) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	priceRequestsTotal.WithLabelValues(operation, m.source, status).Inc()
	priceRequestDuration.WithLabelValues(operation, m.source, status).Observe(time.Since(started).Seconds())
}
