package repository

type storeConfig struct {
	shardCount int
}

// Option applies a configuration option to the in-memory store.
type Option func(*storeConfig)

// WithShardCount sets the number of shards. Values below 1 are ignored.
func WithShardCount(n int) Option {
	return func(c *storeConfig) {
		if n >= 1 {
			c.shardCount = n
		}
	}
}
