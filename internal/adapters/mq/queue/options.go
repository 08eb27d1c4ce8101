package queue

type config struct {
	capacity int
}

// Option applies a configuration option to the queue.
type Option func(*config)

// WithCapacity bounds the number of buffered requests. Values below 1 are
// ignored.
func WithCapacity(n int) Option {
	return func(c *config) {
		if n >= 1 {
			c.capacity = n
		}
	}
}
