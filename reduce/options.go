// Package reduce: functional run configuration. Options only clamp the
// device's capability limits downward, useful for pinning a launch shape in
// tests or trading parallelism for determinism of the combine order; they can
// never raise a limit above what the device reports.
package reduce

// Option configures a single Run/RunWith invocation.
// Invalid values are recorded internally and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds per-run overrides of the launch planner's inputs.
type Options struct {
	// maxLanes, when > 0, caps lanes per cluster below the device capability.
	maxLanes int

	// maxClusters, when > 0, caps the cluster count below the device capability.
	maxClusters int

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with no overrides: the device capabilities
// alone decide the launch shape.
func DefaultOptions() Options {
	return Options{}
}

// WithMaxLanes caps lanes per cluster for this run. Values below 1 are an
// option violation; non-power-of-two values are floored to a power of two.
func WithMaxLanes(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = ErrOptionViolation
			return
		}
		o.maxLanes = n
	}
}

// WithMaxClusters caps the cluster count for this run. Values below 1 are an
// option violation; non-power-of-two values are floored to a power of two.
func WithMaxClusters(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = ErrOptionViolation
			return
		}
		o.maxClusters = n
	}
}
