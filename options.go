package packedgo

// options holds constructor configuration shared by all stores.
type options struct {
	logger          *Logger
	integrityChecks bool
}

// Option configures store construction behavior.
type Option func(*options)

// WithLogger configures structured logging. Without it the store is silent.
//
// The store never logs per-operation; the logger only receives
// construction-time debug output and slot-retirement warnings.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithIntegrityChecks makes every structural mutation (Insert, Remove,
// Clear) re-verify the store's internal invariants and panic on violation.
//
// The check walks the whole slot table and backing array, so enabling it
// turns O(1) mutations into O(n) ones. Intended for tests and debugging,
// similar in spirit to running with the race detector.
func WithIntegrityChecks(enabled bool) Option {
	return func(o *options) {
		o.integrityChecks = enabled
	}
}
