package everybit

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordAlloc is called after each New.
	// bits is the requested size, err is nil if successful.
	RecordAlloc(bits uint64, offHeap bool, err error)

	// RecordRotate is called after each non-empty rotation.
	// length is the number of bits in the rotated range.
	RecordRotate(length uint64)

	// RecordExpect is called for each expectation evaluated by a test script.
	RecordExpect(passed bool)

	// RecordTier is called for each tier measured by a timed rotation run.
	RecordTier(tier int, elapsed time.Duration, exceeded bool)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAlloc(uint64, bool, error)     {}
func (NoopMetricsCollector) RecordRotate(uint64)                 {}
func (NoopMetricsCollector) RecordExpect(bool)                   {}
func (NoopMetricsCollector) RecordTier(int, time.Duration, bool) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AllocCount   atomic.Int64
	AllocErrors  atomic.Int64
	AllocOffHeap atomic.Int64
	AllocBits    atomic.Uint64
	RotateCount  atomic.Int64
	RotateBits   atomic.Uint64
	ExpectPassed atomic.Int64
	ExpectFailed atomic.Int64
	TierCount    atomic.Int64
	TierExceeded atomic.Int64
	TierNanos    atomic.Int64
	MaxTier      atomic.Int64
}

// RecordAlloc implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAlloc(bits uint64, offHeap bool, err error) {
	b.AllocCount.Add(1)
	if err != nil {
		b.AllocErrors.Add(1)
		return
	}
	b.AllocBits.Add(bits)
	if offHeap {
		b.AllocOffHeap.Add(1)
	}
}

// RecordRotate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRotate(length uint64) {
	b.RotateCount.Add(1)
	b.RotateBits.Add(length)
}

// RecordExpect implements MetricsCollector.
func (b *BasicMetricsCollector) RecordExpect(passed bool) {
	if passed {
		b.ExpectPassed.Add(1)
	} else {
		b.ExpectFailed.Add(1)
	}
}

// RecordTier implements MetricsCollector.
func (b *BasicMetricsCollector) RecordTier(tier int, elapsed time.Duration, exceeded bool) {
	b.TierCount.Add(1)
	b.TierNanos.Add(elapsed.Nanoseconds())
	if exceeded {
		b.TierExceeded.Add(1)
		return
	}
	for {
		cur := b.MaxTier.Load()
		if int64(tier) <= cur || b.MaxTier.CompareAndSwap(cur, int64(tier)) {
			return
		}
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AllocCount:   b.AllocCount.Load(),
		AllocErrors:  b.AllocErrors.Load(),
		AllocOffHeap: b.AllocOffHeap.Load(),
		AllocBits:    b.AllocBits.Load(),
		RotateCount:  b.RotateCount.Load(),
		RotateBits:   b.RotateBits.Load(),
		ExpectPassed: b.ExpectPassed.Load(),
		ExpectFailed: b.ExpectFailed.Load(),
		TierCount:    b.TierCount.Load(),
		TierExceeded: b.TierExceeded.Load(),
		TierAvgNanos: b.getAvgTierNanos(),
		MaxTier:      b.MaxTier.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgTierNanos() int64 {
	count := b.TierCount.Load()
	if count == 0 {
		return 0
	}
	return b.TierNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AllocCount   int64
	AllocErrors  int64
	AllocOffHeap int64
	AllocBits    uint64
	RotateCount  int64
	RotateBits   uint64
	ExpectPassed int64
	ExpectFailed int64
	TierCount    int64
	TierExceeded int64
	TierAvgNanos int64
	MaxTier      int64
}
