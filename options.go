package mvbtree

import "log/slog"

type options struct {
	memoryLimitBytes int64
	backoffThreshold int
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Tree constructor behavior.
//
// Breaking changes are expected while mvbtree is pre-release.
type Option func(*options)

// WithMemoryLimit caps the total bytes the tree's node allocator may
// reserve for leaf and inner nodes. A limit of 0 (the default) means
// unlimited; further allocation attempts past a nonzero limit fail with
// ErrExhausted instead of growing the tree.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimitBytes = bytes
	}
}

// WithBackoffThreshold sets the number of spin rounds an insert attempt
// performs on a try-lock conflict before yielding the goroutine via
// runtime.Gosched. Lower values favor latency under low contention,
// higher values favor throughput under high contention.
func WithBackoffThreshold(threshold int) Option {
	return func(o *options) {
		if threshold > 0 {
			o.backoffThreshold = threshold
		}
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &mvbtree.BasicMetricsCollector{}
//	t := mvbtree.New[int, string](mvbtree.WithMetricsCollector(metrics))
//	// ... use t ...
//	stats := metrics.GetStats()
//	fmt.Printf("Inserts: %d, Avg latency: %dns\n", stats.InsertCount, stats.InsertAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := mvbtree.NewJSONLogger(slog.LevelInfo)
//	t := mvbtree.New[int, string](mvbtree.WithLogger(logger))
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

func applyOptions(optFns []Option) options {
	o := options{
		memoryLimitBytes: 0,
		backoffThreshold: 3,
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
