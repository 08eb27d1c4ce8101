package app

import "github.com/neurotrack/progression/pkg/logger"

// Defaults used when no option overrides them.
const (
	defaultQueueSize        = 10_000
	defaultWorkerCount      = 4
	defaultDedupeSize       = 50_000
	defaultShardCount       = 16
	defaultHorizonMonths    = 90
	defaultIntervalMonths   = 6
	defaultMaxHorizonMonths = 240
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithQueueSize bounds the prediction request queue.
func WithQueueSize(n int) Option {
	return func(s *Service) {
		if n >= 1 {
			s.queueSize = n
		}
	}
}

// WithWorkerCount sets the number of pipeline workers.
func WithWorkerCount(n int) Option {
	return func(s *Service) {
		if n >= 1 {
			s.workerCount = n
		}
	}
}

// WithDedupeSize bounds the request deduplication cache.
func WithDedupeSize(n int) Option {
	return func(s *Service) {
		if n >= 1 {
			s.dedupeSize = n
		}
	}
}

// WithShardCount sets the number of document store shards.
func WithShardCount(n int) Option {
	return func(s *Service) {
		if n >= 1 {
			s.shardCount = n
		}
	}
}

// WithDefaultHorizon sets the horizon applied to requests that omit one.
func WithDefaultHorizon(months int) Option {
	return func(s *Service) {
		if months >= 1 {
			s.defaultHorizon = months
		}
	}
}

// WithDefaultInterval sets the interval applied to requests that omit one.
func WithDefaultInterval(months int) Option {
	return func(s *Service) {
		if months >= 1 {
			s.defaultInterval = months
		}
	}
}

// WithMaxHorizon caps the horizon a single request may ask for.
func WithMaxHorizon(months int) Option {
	return func(s *Service) {
		if months >= 1 {
			s.maxHorizon = months
		}
	}
}
