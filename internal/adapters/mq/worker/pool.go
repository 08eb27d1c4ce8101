package worker

import (
	"context"
	"sync"

	"github.com/neurotrack/progression/internal/adapters/mq/queue"
	"github.com/neurotrack/progression/internal/adapters/repository"
	"github.com/neurotrack/progression/internal/domain/dedupe"
	"github.com/neurotrack/progression/pkg/logger"
	"github.com/neurotrack/progression/pkg/metrics"
)

const defaultWorkerCount = 4

// Pool runs a fixed set of workers over a shared queue.
type Pool struct {
	workers []*Worker
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	mu      sync.Mutex
	started bool
}

// NewPool creates a pool of count workers; count < 1 falls back to the
// default.
func NewPool(count int, q *queue.Queue, gen Generator, val Validator, store repository.Store,
	ded dedupe.Deduper, log logger.Logger) *Pool {
	if count < 1 {
		count = defaultWorkerCount
	}
	p := &Pool{workers: make([]*Worker, count)}
	for i := range p.workers {
		p.workers[i] = New(i, q, gen, val, store, ded, log.Named("worker"))
	}
	return p
}

// Start launches all workers. Calling Start twice is a no-op.
func (p *Pool) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	p.started = true

	ctx, p.cancel = context.WithCancel(ctx)
	metrics.UpdateWorkerCount(len(p.workers))
	for _, w := range p.workers {
		p.wg.Add(1)
		metrics.UpdateWorkerActiveCount(len(p.workers))
		go func(w *Worker) {
			defer p.wg.Done()
			w.Run(ctx)
		}(w)
	}
}

// Stop cancels the workers and waits for them to drain.
func (p *Pool) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	cancel := p.cancel
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
	metrics.UpdateWorkerActiveCount(0)
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return len(p.workers)
}
