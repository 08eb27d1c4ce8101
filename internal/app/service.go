// Package app wires the domain core and adapters into a running service.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/neurotrack/progression/internal/adapters/mq/queue"
	"github.com/neurotrack/progression/internal/adapters/mq/worker"
	"github.com/neurotrack/progression/internal/adapters/repository"
	"github.com/neurotrack/progression/internal/domain/constraint"
	"github.com/neurotrack/progression/internal/domain/dedupe"
	"github.com/neurotrack/progression/internal/domain/model"
	"github.com/neurotrack/progression/internal/domain/scores"
	"github.com/neurotrack/progression/internal/domain/trajectory"
	"github.com/neurotrack/progression/internal/domain/validate"
	"github.com/neurotrack/progression/internal/report"
	"github.com/neurotrack/progression/pkg/logger"
	"github.com/neurotrack/progression/pkg/metrics"
)

// Service owns the prediction pipeline: queue, workers, document store, and
// the synchronous enforcement/validation paths.
type Service struct {
	log logger.Logger

	queue     *queue.Queue
	pool      *worker.Pool
	deduper   dedupe.Deduper
	store     repository.Store
	generator *trajectory.Generator
	enforcer  *constraint.Enforcer
	validator *validate.Validator

	queueSize       int
	workerCount     int
	dedupeSize      int
	shardCount      int
	defaultHorizon  int
	defaultInterval int
	maxHorizon      int
}

// Stats is a point-in-time snapshot of the pipeline.
type Stats struct {
	QueueSize     int   `json:"queue_size"`
	QueueCapacity int   `json:"queue_capacity"`
	WorkerCount   int   `json:"worker_count"`
	DedupeSize    int64 `json:"dedupe_size"`
	DocumentCount int   `json:"document_count"`
}

// New assembles a Service from options.
func New(opts ...Option) *Service {
	s := &Service{
		queueSize:       defaultQueueSize,
		workerCount:     defaultWorkerCount,
		dedupeSize:      defaultDedupeSize,
		shardCount:      defaultShardCount,
		defaultHorizon:  defaultHorizonMonths,
		defaultInterval: defaultIntervalMonths,
		maxHorizon:      defaultMaxHorizonMonths,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Named("app")
	}

	s.queue = queue.New(queue.WithCapacity(s.queueSize))
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.store = repository.NewMemStore(repository.WithShardCount(s.shardCount))
	s.generator = trajectory.New()
	s.enforcer = constraint.New()
	s.validator = validate.New()
	s.pool = worker.NewPool(s.workerCount, s.queue, s.generator, s.validator, s.store, s.deduper, s.log)
	return s
}

// Start launches the worker pool.
func (s *Service) Start(ctx context.Context) {
	s.pool.Start(ctx)
	s.log.Info(ctx, "service started",
		logger.Int("workers", s.pool.Size()),
		logger.Int("queue_capacity", s.queue.Cap()))
}

// Stop closes the queue and waits for the workers to drain.
func (s *Service) Stop(ctx context.Context) {
	s.queue.Close()
	s.pool.Stop()
	s.log.Info(ctx, "service stopped")
}

// SeenAndRecord records a request id, reporting whether it was seen before.
func (s *Service) SeenAndRecord(ctx context.Context, requestID string) bool {
	return s.deduper.SeenAndRecord(ctx, requestID)
}

// Unrecord forgets a request id, allowing a retry to pass deduplication.
func (s *Service) Unrecord(ctx context.Context, requestID string) {
	s.deduper.Unrecord(ctx, requestID)
}

// Enqueue normalizes a request's projection parameters and places it on the
// queue. A zero horizon or interval takes the configured defaults; a horizon
// above the configured cap is rejected.
func (s *Service) Enqueue(_ context.Context, req model.PredictionRequest) error {
	if req.HorizonMonths <= 0 {
		req.HorizonMonths = s.defaultHorizon
	}
	if req.IntervalMonths <= 0 {
		req.IntervalMonths = s.defaultInterval
	}
	if req.HorizonMonths > s.maxHorizon {
		return fmt.Errorf("%w: %d > %d months", ErrHorizonTooLarge, req.HorizonMonths, s.maxHorizon)
	}
	return s.queue.Enqueue(req)
}

// Enforce runs constraint repair synchronously and validates the result.
func (s *Service) Enforce(_ context.Context, raw constraint.RawSequence) (scores.Sequence, validate.Report, error) {
	start := time.Now()
	fixed, err := s.enforcer.Enforce(raw)
	metrics.RecordEnforcementRun()
	metrics.RecordEnforcementLatency(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		return nil, validate.Report{}, err
	}
	rep := s.validator.Validate(fixed)
	metrics.RecordValidationRun()
	if !rep.AllValid {
		metrics.RecordValidationFailure()
	}
	return fixed, rep, nil
}

// ValidateSequence checks a sequence against the clinical invariants.
func (s *Service) ValidateSequence(seq scores.Sequence) validate.Report {
	rep := s.validator.Validate(seq)
	metrics.RecordValidationRun()
	if !rep.AllValid {
		metrics.RecordValidationFailure()
	}
	return rep
}

// Document returns the stored prediction document for a patient.
func (s *Service) Document(ctx context.Context, patientID string) (report.Document, error) {
	return s.store.Get(ctx, patientID)
}

// GetStats returns a snapshot of queue, worker, and store state.
func (s *Service) GetStats() Stats {
	return Stats{
		QueueSize:     s.queue.Len(),
		QueueCapacity: s.queue.Cap(),
		WorkerCount:   s.pool.Size(),
		DedupeSize:    s.deduper.Size(),
		DocumentCount: s.store.Count(),
	}
}
