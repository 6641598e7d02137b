// Package prometheus exports ledger metrics to Prometheus.
package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector implements metrics.Collector for Prometheus.
type Collector struct {
	namespace string
	registry  *prometheus.Registry

	// Counters
	operations      *prometheus.CounterVec
	amounts         *prometheus.CounterVec
	droppedDeposits prometheus.Counter

	// Gauges
	accounts prometheus.Gauge

	// Histograms
	latency *prometheus.HistogramVec
}

// NewCollector creates a Prometheus collector with its own registry.
// All metrics share the given namespace.
func NewCollector(namespace string) (*Collector, error) {
	c := &Collector{
		namespace: namespace,
		registry:  prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Total number of ledger operations by operation and result",
			},
			[]string{"op", "result"},
		),
		amounts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "amount_total",
				Help:      "Total value moved by successful mutations per operation",
			},
			[]string{"op"},
		),
		droppedDeposits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dropped_deposits_total",
				Help:      "Total number of deposits silently discarded by inactive accounts",
			},
		),
		accounts: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "accounts",
				Help:      "Current number of accounts in the ledger",
			},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Ledger operation latency",
				Buckets:   prometheus.ExponentialBuckets(0.000001, 2, 15), // 1µs to ~16ms
			},
			[]string{"op"},
		),
	}

	collectors := []prometheus.Collector{
		c.operations,
		c.amounts,
		c.droppedDeposits,
		c.accounts,
		c.latency,
	}
	for _, collector := range collectors {
		if err := c.registry.Register(collector); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Handler returns an HTTP handler serving the collector's registry in
// Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// RecordOperation records one completed ledger operation.
func (c *Collector) RecordOperation(op string, result string, duration time.Duration) {
	c.operations.WithLabelValues(op, result).Inc()
	c.latency.WithLabelValues(op).Observe(duration.Seconds())
}

// RecordAmount records the value moved by a successful mutation.
func (c *Collector) RecordAmount(op string, amount float64) {
	c.amounts.WithLabelValues(op).Add(amount)
}

// RecordDroppedDeposit counts a deposit discarded by an inactive account.
func (c *Collector) RecordDroppedDeposit() {
	c.droppedDeposits.Inc()
}

// RecordAccounts records the current account count.
func (c *Collector) RecordAccounts(count int) {
	c.accounts.Set(float64(count))
}
