package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/carson-networks/ledger-server/internal/metrics"
)

// PrometheusCollector implements MetricsCollector for Prometheus.
type PrometheusCollector struct {
	namespace string

	operations        *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	queueDepth        prometheus.Gauge
}

var _ metrics.MetricsCollector = (*PrometheusCollector)(nil)

func NewPrometheusCollector(namespace string) *PrometheusCollector {
	return &PrometheusCollector{
		namespace: namespace,
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Total number of ledger operations per operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		operationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Ledger operation latency including time spent queued",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		queueDepth: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "queue_depth",
				Help:      "Number of actions waiting for a worker",
			},
		),
	}
}

// Register registers all metrics with the given Prometheus registerer.
func (pc *PrometheusCollector) Register(registerer prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		pc.operations,
		pc.operationDuration,
		pc.queueDepth,
	}

	for _, collector := range collectors {
		if err := registerer.Register(collector); err != nil {
			return err
		}
	}

	return nil
}

func (pc *PrometheusCollector) RecordOperation(operation string, outcome string, duration time.Duration) {
	pc.operations.WithLabelValues(operation, outcome).Inc()
	pc.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (pc *PrometheusCollector) RecordQueueDepth(depth int) {
	pc.queueDepth.Set(float64(depth))
}
