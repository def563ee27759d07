package colorquant

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
//	    quantizeCounter   prometheus.Counter
//	    quantizeHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordQuantize(iterations int, duration time.Duration, err error) {
//	    p.quantizeCounter.Inc()
//	    p.quantizeHistogram.Observe(duration.Seconds())
//	}
type MetricsCollector interface {
	// RecordExtract is called after the distinct colour scan.
	// pixels is the number of scanned pixels, distinct the number of colours found.
	RecordExtract(pixels, distinct int, duration time.Duration, err error)

	// RecordBuild is called after the kd-tree has been built.
	RecordBuild(nodes int, duration time.Duration)

	// RecordIteration is called after each clustering pass.
	// pruned counts candidates eliminated by the filter, bulk counts whole
	// subtrees assigned in one step. Both are zero for brute-force passes.
	RecordIteration(moved, empty, pruned, bulk int)

	// RecordQuantize is called after each Quantize or QuantizePoints call.
	RecordQuantize(iterations int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordExtract(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordBuild(int, time.Duration)              {}
func (NoopMetricsCollector) RecordIteration(int, int, int, int)         {}
func (NoopMetricsCollector) RecordQuantize(int, time.Duration, error)   {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ExtractCount       atomic.Int64
	ExtractErrors      atomic.Int64
	ExtractPixels      atomic.Int64
	ExtractDistinct    atomic.Int64
	ExtractTotalNanos  atomic.Int64
	BuildCount         atomic.Int64
	BuildNodes         atomic.Int64
	BuildTotalNanos    atomic.Int64
	IterationCount     atomic.Int64
	IterationMoved     atomic.Int64
	IterationEmpty     atomic.Int64
	IterationPruned    atomic.Int64
	IterationBulk      atomic.Int64
	QuantizeCount      atomic.Int64
	QuantizeErrors     atomic.Int64
	QuantizeTotalNanos atomic.Int64
}

// RecordExtract implements MetricsCollector.
func (b *BasicMetricsCollector) RecordExtract(pixels, distinct int, duration time.Duration, err error) {
	b.ExtractCount.Add(1)
	b.ExtractTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ExtractErrors.Add(1)
		return
	}
	b.ExtractPixels.Add(int64(pixels))
	b.ExtractDistinct.Add(int64(distinct))
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(nodes int, duration time.Duration) {
	b.BuildCount.Add(1)
	b.BuildNodes.Add(int64(nodes))
	b.BuildTotalNanos.Add(duration.Nanoseconds())
}

// RecordIteration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIteration(moved, empty, pruned, bulk int) {
	b.IterationCount.Add(1)
	b.IterationMoved.Add(int64(moved))
	b.IterationEmpty.Add(int64(empty))
	b.IterationPruned.Add(int64(pruned))
	b.IterationBulk.Add(int64(bulk))
}

// RecordQuantize implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuantize(iterations int, duration time.Duration, err error) {
	b.QuantizeCount.Add(1)
	b.QuantizeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.QuantizeErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ExtractCount:     b.ExtractCount.Load(),
		ExtractErrors:    b.ExtractErrors.Load(),
		ExtractPixels:    b.ExtractPixels.Load(),
		ExtractDistinct:  b.ExtractDistinct.Load(),
		ExtractAvgNanos:  avg(b.ExtractTotalNanos.Load(), b.ExtractCount.Load()),
		BuildCount:       b.BuildCount.Load(),
		BuildNodes:       b.BuildNodes.Load(),
		BuildAvgNanos:    avg(b.BuildTotalNanos.Load(), b.BuildCount.Load()),
		IterationCount:   b.IterationCount.Load(),
		IterationMoved:   b.IterationMoved.Load(),
		IterationEmpty:   b.IterationEmpty.Load(),
		IterationPruned:  b.IterationPruned.Load(),
		IterationBulk:    b.IterationBulk.Load(),
		QuantizeCount:    b.QuantizeCount.Load(),
		QuantizeErrors:   b.QuantizeErrors.Load(),
		QuantizeAvgNanos: avg(b.QuantizeTotalNanos.Load(), b.QuantizeCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ExtractCount     int64
	ExtractErrors    int64
	ExtractPixels    int64
	ExtractDistinct  int64
	ExtractAvgNanos  int64
	BuildCount       int64
	BuildNodes       int64
	BuildAvgNanos    int64
	IterationCount   int64
	IterationMoved   int64
	IterationEmpty   int64
	IterationPruned  int64
	IterationBulk    int64
	QuantizeCount    int64
	QuantizeErrors   int64
	QuantizeAvgNanos int64
}
