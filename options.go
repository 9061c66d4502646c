package everybit

import (
	"log/slog"

	"github.com/hupe1980/everybit/resource"
)

// DefaultOffHeapThreshold is the storage size in bytes from which New
// places the words in an anonymous memory mapping instead of the Go heap.
//
// Off-heap storage turns an out-of-memory condition into an ErrAllocation
// error; the Go runtime aborts the process instead.
const DefaultOffHeapThreshold = 1 << 20

type options struct {
	controller       *resource.Controller
	offHeapThreshold int
	logger           *Logger
	metricsCollector MetricsCollector
}

// Option configures New.
type Option func(*options)

// WithResourceController accounts the storage of every bit array against the
// memory budget of rc. New fails with ErrAllocation when the budget is exhausted;
// Free returns the memory.
//
// Pass nil to disable accounting.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

// WithOffHeapThreshold sets the storage size in bytes from which words are
// allocated off-heap. A negative value keeps all storage on the Go heap.
func WithOffHeapThreshold(bytes int) Option {
	return func(o *options) {
		o.offHeapThreshold = bytes
	}
}

// WithLogger configures structured logging of allocations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &everybit.BasicMetricsCollector{}
//	ba, _ := everybit.New(1024, everybit.WithMetricsCollector(metrics))
//	_ = ba.Rotate(0, 1024, 3)
//	stats := metrics.GetStats()
//	fmt.Printf("Rotations: %d, bits: %d\n", stats.RotateCount, stats.RotateBits)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		offHeapThreshold: DefaultOffHeapThreshold,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
