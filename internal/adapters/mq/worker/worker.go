// Package worker runs the asynchronous prediction pipeline: it drains the
// request queue, generates and validates trajectories, and stores the
// resulting documents.
package worker

import (
	"context"
	"time"

	"github.com/neurotrack/progression/internal/adapters/mq/queue"
	"github.com/neurotrack/progression/internal/adapters/repository"
	"github.com/neurotrack/progression/internal/domain/dedupe"
	"github.com/neurotrack/progression/internal/domain/model"
	"github.com/neurotrack/progression/internal/domain/scores"
	"github.com/neurotrack/progression/internal/domain/validate"
	"github.com/neurotrack/progression/internal/report"
	"github.com/neurotrack/progression/pkg/logger"
	"github.com/neurotrack/progression/pkg/metrics"
)

// Generator synthesizes a score sequence from a baseline.
type Generator interface {
	Generate(baseline scores.Baseline, horizonMonths, intervalMonths int) (scores.Sequence, error)
}

// Validator checks a sequence against the clinical invariants.
type Validator interface {
	Validate(seq scores.Sequence) validate.Report
}

// Worker consumes prediction requests from the queue and runs them through
// the generate -> validate -> store pipeline.
type Worker struct {
	id        int
	queue     *queue.Queue
	generator Generator
	validator Validator
	store     repository.Store
	deduper   dedupe.Deduper
	log       logger.Logger
}

// New creates a worker. The deduper may be nil when idempotency rollback on
// failure is not wanted.
func New(id int, q *queue.Queue, gen Generator, val Validator, store repository.Store,
	ded dedupe.Deduper, log logger.Logger) *Worker {
	return &Worker{
		id:        id,
		queue:     q,
		generator: gen,
		validator: val,
		store:     store,
		deduper:   ded,
		log:       log,
	}
}

// Run drains the queue until it is closed or the context is canceled.
func (w *Worker) Run(ctx context.Context) {
	w.log.Debug(ctx, "worker started", logger.Int("worker_id", w.id))
	for {
		select {
		case <-ctx.Done():
			w.log.Debug(ctx, "worker stopping", logger.Int("worker_id", w.id))
			return
		case req, ok := <-w.queue.Dequeue():
			if !ok {
				w.log.Debug(ctx, "queue closed", logger.Int("worker_id", w.id))
				return
			}
			metrics.RecordQueueDequeue()
			metrics.UpdateQueueSize(w.queue.Len())
			w.process(ctx, req)
		}
	}
}

func (w *Worker) process(ctx context.Context, req model.PredictionRequest) {
	start := time.Now()

	genStart := time.Now()
	seq, err := w.generator.Generate(req.Baseline, req.HorizonMonths, req.IntervalMonths)
	metrics.RecordGenerationLatency(float64(time.Since(genStart).Microseconds()) / 1000.0)
	if err != nil {
		w.fail(ctx, req, "generation failed", err)
		return
	}

	rep := w.validator.Validate(seq)
	metrics.RecordValidationRun()
	if !rep.AllValid {
		// Advisory: the document is still stored, mirroring the upstream
		// behavior of posting predictions alongside their validation report.
		metrics.RecordValidationFailure()
		w.log.Warn(ctx, "generated sequence failed validation",
			logger.String("request_id", req.RequestID),
			logger.String("patient_id", req.PatientID))
	}

	doc := report.Build(req, seq, time.Now())
	if err := w.store.Put(ctx, doc); err != nil {
		w.fail(ctx, req, "store put failed", err)
		return
	}

	metrics.RecordPredictionGenerated()
	metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Microseconds()) / 1000.0)
	w.log.Debug(ctx, "prediction stored",
		logger.Int("worker_id", w.id),
		logger.String("request_id", req.RequestID),
		logger.String("patient_id", req.PatientID),
		logger.Int("timepoints", len(seq)))
}

// fail records a pipeline failure and releases the request id so the caller
// can retry with the same id.
func (w *Worker) fail(ctx context.Context, req model.PredictionRequest, msg string, err error) {
	metrics.RecordPredictionFailure()
	metrics.RecordWorkerError()
	metrics.RecordErrorByComponent("worker", msg)
	if w.deduper != nil {
		w.deduper.Unrecord(ctx, req.RequestID)
	}
	w.log.Error(ctx, msg,
		logger.Int("worker_id", w.id),
		logger.String("request_id", req.RequestID),
		logger.String("patient_id", req.PatientID),
		logger.Error(err))
}
