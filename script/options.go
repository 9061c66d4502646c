package script

import (
	"io"

	"github.com/hupe1980/everybit"
	"github.com/hupe1980/everybit/resource"
)

// AllCases selects every test case of a script.
const AllCases = -1

type options struct {
	selected   int
	verbose    io.Writer
	logger     *everybit.Logger
	metrics    everybit.MetricsCollector
	controller *resource.Controller
	arrayOpts  []everybit.Option
}

// Option configures loading and running scripts.
type Option func(*options)

// WithSelect runs only the commands of test case id. AllCases runs all of
// them, including commands before the first t line.
func WithSelect(id int) Option {
	return func(o *options) {
		o.selected = id
	}
}

// WithVerbose prints the array under test to w after every n and r command.
func WithVerbose(w io.Writer) Option {
	return func(o *options) {
		o.verbose = w
	}
}

// WithLogger configures structured logging of expectations and runs.
// Pass nil to disable logging.
func WithLogger(logger *everybit.Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = everybit.NoopLogger()
		}
		o.logger = logger
	}
}

// WithMetricsCollector records expectations and the allocations and
// rotations of every array under test.
func WithMetricsCollector(mc everybit.MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = everybit.NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithResourceController bounds script reads (IO limit), concurrent scripts
// in RunAll (worker slots) and array storage (memory budget).
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

// WithBitArrayOptions passes extra options to every array constructed by n.
func WithBitArrayOptions(opts ...everybit.Option) Option {
	return func(o *options) {
		o.arrayOpts = append(o.arrayOpts, opts...)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		selected: AllCases,
		logger:   everybit.NoopLogger(),
		metrics:  everybit.NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// bitArrayOptions returns the options for arrays under test: the shared
// controller, logger and metrics first, so explicit options win.
func (o options) bitArrayOptions() []everybit.Option {
	opts := []everybit.Option{
		everybit.WithResourceController(o.controller),
		everybit.WithLogger(o.logger),
		everybit.WithMetricsCollector(o.metrics),
	}
	return append(opts, o.arrayOpts...)
}
