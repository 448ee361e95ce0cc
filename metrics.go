package mvbtree

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    insertCounter prometheus.Counter
//	    insertRestarts prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordInsert(duration time.Duration, restarts int, err error) {
//	    p.insertCounter.Inc()
//	    p.insertRestarts.Observe(float64(restarts))
//	}
type MetricsCollector interface {
	// RecordInsert is called after each insert attempt loop completes.
	// restarts counts the number of try-lock conflicts or internal splits
	// encountered before the insert committed. err is nil if successful.
	RecordInsert(duration time.Duration, restarts int, err error)

	// RecordLookup is called after each lookup operation.
	RecordLookup(duration time.Duration, hit bool, err error)

	// RecordScan is called after each range scan operation.
	// resultCount is the number of entries actually returned.
	RecordScan(duration time.Duration, resultCount int, err error)

	// RecordSplit is called whenever a node splits. kind is "leaf" or "inner".
	RecordSplit(kind string)

	// RecordRootPromotion is called whenever the tree height increases.
	RecordRootPromotion()
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInsert(time.Duration, int, error)  {}
func (NoopMetricsCollector) RecordLookup(time.Duration, bool, error) {}
func (NoopMetricsCollector) RecordScan(time.Duration, int, error)    {}
func (NoopMetricsCollector) RecordSplit(string)                      {}
func (NoopMetricsCollector) RecordRootPromotion()                    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	InsertCount      atomic.Int64
	InsertErrors     atomic.Int64
	InsertTotalNanos atomic.Int64
	InsertRestarts   atomic.Int64
	LookupCount      atomic.Int64
	LookupHits       atomic.Int64
	LookupErrors     atomic.Int64
	LookupTotalNanos atomic.Int64
	ScanCount        atomic.Int64
	ScanResults      atomic.Int64
	ScanErrors       atomic.Int64
	ScanTotalNanos   atomic.Int64
	LeafSplits       atomic.Int64
	InnerSplits      atomic.Int64
	RootPromotions   atomic.Int64
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert(duration time.Duration, restarts int, err error) {
	b.InsertCount.Add(1)
	b.InsertTotalNanos.Add(duration.Nanoseconds())
	b.InsertRestarts.Add(int64(restarts))
	if err != nil {
		b.InsertErrors.Add(1)
	}
}

// RecordLookup implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLookup(duration time.Duration, hit bool, err error) {
	b.LookupCount.Add(1)
	b.LookupTotalNanos.Add(duration.Nanoseconds())
	if hit {
		b.LookupHits.Add(1)
	}
	if err != nil {
		b.LookupErrors.Add(1)
	}
}

// RecordScan implements MetricsCollector.
func (b *BasicMetricsCollector) RecordScan(duration time.Duration, resultCount int, err error) {
	b.ScanCount.Add(1)
	b.ScanTotalNanos.Add(duration.Nanoseconds())
	b.ScanResults.Add(int64(resultCount))
	if err != nil {
		b.ScanErrors.Add(1)
	}
}

// RecordSplit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSplit(kind string) {
	if kind == "leaf" {
		b.LeafSplits.Add(1)
		return
	}
	b.InnerSplits.Add(1)
}

// RecordRootPromotion implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRootPromotion() {
	b.RootPromotions.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		InsertCount:     b.InsertCount.Load(),
		InsertErrors:    b.InsertErrors.Load(),
		InsertAvgNanos:  b.getAvgInsertNanos(),
		InsertRestarts:  b.InsertRestarts.Load(),
		LookupCount:     b.LookupCount.Load(),
		LookupHits:      b.LookupHits.Load(),
		LookupErrors:    b.LookupErrors.Load(),
		LookupAvgNanos:  b.getAvgLookupNanos(),
		ScanCount:       b.ScanCount.Load(),
		ScanResults:     b.ScanResults.Load(),
		ScanErrors:      b.ScanErrors.Load(),
		ScanAvgNanos:    b.getAvgScanNanos(),
		LeafSplits:      b.LeafSplits.Load(),
		InnerSplits:     b.InnerSplits.Load(),
		RootPromotions:  b.RootPromotions.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgInsertNanos() int64 {
	count := b.InsertCount.Load()
	if count == 0 {
		return 0
	}
	return b.InsertTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgLookupNanos() int64 {
	count := b.LookupCount.Load()
	if count == 0 {
		return 0
	}
	return b.LookupTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgScanNanos() int64 {
	count := b.ScanCount.Load()
	if count == 0 {
		return 0
	}
	return b.ScanTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	InsertCount    int64
	InsertErrors   int64
	InsertAvgNanos int64
	InsertRestarts int64
	LookupCount    int64
	LookupHits     int64
	LookupErrors   int64
	LookupAvgNanos int64
	ScanCount      int64
	ScanResults    int64
	ScanErrors     int64
	ScanAvgNanos   int64
	LeafSplits     int64
	InnerSplits    int64
	RootPromotions int64
}
