package mvbtree

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetricsCollector implements MetricsCollector by recording into
// Prometheus instrumentation: one operation-latency histogram labeled by op
// and status, plus counters and histograms for the tree-specific events.
type PrometheusMetricsCollector struct {
	opLatency      *prometheus.HistogramVec
	lookupHits     prometheus.Counter
	lookupMisses   prometheus.Counter
	insertRestarts prometheus.Histogram
	scanResults    prometheus.Histogram
	splits         *prometheus.CounterVec
	rootPromotions prometheus.Counter
}

// NewPrometheusMetricsCollector creates a collector and registers its
// metrics against reg. Pass prometheus.DefaultRegisterer to use the
// default global registry.
func NewPrometheusMetricsCollector(reg prometheus.Registerer) *PrometheusMetricsCollector {
	c := &PrometheusMetricsCollector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mvbtree_operation_latency_seconds",
			Help:    "Latency of tree operations",
			Buckets: prometheus.DefBuckets,
		}, []string{"op", "status"}),
		lookupHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mvbtree_lookup_hits_total",
			Help: "Total lookups that found a value",
		}),
		lookupMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mvbtree_lookup_misses_total",
			Help: "Total lookups that found nothing",
		}),
		insertRestarts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mvbtree_insert_restarts",
			Help:    "Number of conflict/split restarts per insert",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
		}),
		scanResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mvbtree_scan_results",
			Help:    "Number of entries returned per scan",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		splits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mvbtree_splits_total",
			Help: "Total node splits, by kind",
		}, []string{"kind"}),
		rootPromotions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mvbtree_root_promotions_total",
			Help: "Total times the tree grew a new root level",
		}),
	}

	reg.MustRegister(
		c.opLatency,
		c.lookupHits,
		c.lookupMisses,
		c.insertRestarts,
		c.scanResults,
		c.splits,
		c.rootPromotions,
	)

	return c
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordInsert implements MetricsCollector.
func (c *PrometheusMetricsCollector) RecordInsert(duration time.Duration, restarts int, err error) {
	c.opLatency.WithLabelValues("insert", status(err)).Observe(duration.Seconds())
	c.insertRestarts.Observe(float64(restarts))
}

// RecordLookup implements MetricsCollector.
func (c *PrometheusMetricsCollector) RecordLookup(duration time.Duration, hit bool, err error) {
	c.opLatency.WithLabelValues("lookup", status(err)).Observe(duration.Seconds())
	if hit {
		c.lookupHits.Inc()
		return
	}
	c.lookupMisses.Inc()
}

// RecordScan implements MetricsCollector.
func (c *PrometheusMetricsCollector) RecordScan(duration time.Duration, resultCount int, err error) {
	c.opLatency.WithLabelValues("scan", status(err)).Observe(duration.Seconds())
	c.scanResults.Observe(float64(resultCount))
}

// RecordSplit implements MetricsCollector.
func (c *PrometheusMetricsCollector) RecordSplit(kind string) {
	c.splits.WithLabelValues(kind).Inc()
}

// RecordRootPromotion implements MetricsCollector.
func (c *PrometheusMetricsCollector) RecordRootPromotion() {
	c.rootPromotions.Inc()
}
