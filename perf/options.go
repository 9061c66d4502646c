package perf

import (
	"io"

	"github.com/hupe1980/everybit"
	"github.com/hupe1980/everybit/internal/ktiming"
	"github.com/hupe1980/everybit/resource"
)

type options struct {
	clock      ktiming.Clock
	seed       int64
	maxTiers   int
	progress   io.Writer
	logger     *everybit.Logger
	metrics    everybit.MetricsCollector
	controller *resource.Controller
	arrayOpts  []everybit.Option
}

// Option configures TimedRotation and WriteReport.
type Option func(*options)

// WithClock replaces the process CPU clock.
func WithClock(c ktiming.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithSeed changes the seed of the random array content.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithMaxTiers stops the run after n tiers.
func WithMaxTiers(n int) Option {
	return func(o *options) {
		o.maxTiers = n
	}
}

// WithProgress writes each tier as a text row to w as soon as it is measured.
// Write the header with WriteHeader first.
func WithProgress(w io.Writer) Option {
	return func(o *options) {
		o.progress = w
	}
}

// WithLogger configures structured logging of tiers.
// Pass nil to disable logging.
func WithLogger(logger *everybit.Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = everybit.NoopLogger()
		}
		o.logger = logger
	}
}

// WithMetricsCollector records every tier and the allocation and rotation
// of its array.
func WithMetricsCollector(mc everybit.MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = everybit.NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithResourceController accounts tier arrays against the memory budget of
// rc and throttles report writes with its IO limit.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

// WithBitArrayOptions passes extra options to every tier array.
func WithBitArrayOptions(opts ...everybit.Option) Option {
	return func(o *options) {
		o.arrayOpts = append(o.arrayOpts, opts...)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		clock:   ktiming.Default,
		seed:    DefaultSeed,
		logger:  everybit.NoopLogger(),
		metrics: everybit.NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	o.arrayOpts = append([]everybit.Option{
		everybit.WithResourceController(o.controller),
		everybit.WithLogger(o.logger),
		everybit.WithMetricsCollector(o.metrics),
	}, o.arrayOpts...)
	return o
}
