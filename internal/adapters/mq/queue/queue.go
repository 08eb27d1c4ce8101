// Package queue provides a bounded in-memory queue of prediction requests.
package queue

import (
	"sync"

	"github.com/neurotrack/progression/internal/domain/model"
	"github.com/neurotrack/progression/pkg/metrics"
)

const defaultCapacity = 1000

// Queue is a bounded FIFO of prediction requests backed by a channel.
// Enqueue never blocks; a full queue surfaces as ErrQueueFull so the HTTP
// layer can answer with backpressure instead of stalling.
type Queue struct {
	ch     chan model.PredictionRequest
	mu     sync.RWMutex
	closed bool
}

// New creates a queue with the configured capacity.
func New(opts ...Option) *Queue {
	cfg := config{capacity: defaultCapacity}
	for _, opt := range opts {
		opt(&cfg)
	}
	metrics.UpdateQueueCapacity(cfg.capacity)
	return &Queue{ch: make(chan model.PredictionRequest, cfg.capacity)}
}

// Enqueue adds a request without blocking. Returns ErrQueueFull when the
// queue is at capacity and ErrQueueClosed after Close.
func (q *Queue) Enqueue(req model.PredictionRequest) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		metrics.RecordQueueEnqueueError()
		return ErrQueueClosed
	}
	select {
	case q.ch <- req:
		metrics.RecordQueueEnqueue()
		q.publishGauges()
		return nil
	default:
		metrics.RecordQueueEnqueueError()
		return ErrQueueFull
	}
}

// Dequeue returns the receive channel. The channel closes after Close once
// drained.
func (q *Queue) Dequeue() <-chan model.PredictionRequest {
	return q.ch
}

// Len returns the number of buffered requests.
func (q *Queue) Len() int {
	return len(q.ch)
}

// Cap returns the queue capacity.
func (q *Queue) Cap() int {
	return cap(q.ch)
}

// IsClosed reports whether Close has been called.
func (q *Queue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

// Close stops accepting new requests and closes the underlying channel.
// Buffered requests remain receivable. Safe to call more than once.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.ch)
}

func (q *Queue) publishGauges() {
	size := len(q.ch)
	metrics.UpdateQueueSize(size)
	if c := cap(q.ch); c > 0 {
		metrics.UpdateQueueUtilization(float64(size) / float64(c))
	}
}
