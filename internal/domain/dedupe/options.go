// Package dedupe defines the interface for request idempotency tracking.
package dedupe

// Option applies a configuration option to the in-memory deduper.
type Option func(*inMemoryDeduper)

// WithMaxSize bounds the number of IDs kept in memory. With maxSize > 0 the
// oldest ID is evicted once the bound is reached; maxSize <= 0 disables
// eviction entirely.
func WithMaxSize(maxSize int) Option {
	return func(d *inMemoryDeduper) {
		d.maxSize = maxSize
	}
}
