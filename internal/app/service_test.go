package app_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/neurotrack/progression/internal/adapters/repository"
	"github.com/neurotrack/progression/internal/app"
	"github.com/neurotrack/progression/internal/domain/constraint"
	"github.com/neurotrack/progression/internal/domain/model"
	"github.com/neurotrack/progression/internal/domain/scores"
	"github.com/neurotrack/progression/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.InitWithWriter(io.Discard)
}

func newService() *app.Service {
	return app.New(
		app.WithWorkerCount(2),
		app.WithQueueSize(100),
		app.WithDefaultHorizon(36),
		app.WithDefaultInterval(6),
		app.WithMaxHorizon(120),
	)
}

func request(id, patientID string, horizon int) model.PredictionRequest {
	return model.PredictionRequest{
		RequestID:      id,
		PatientID:      patientID,
		SessionDate:    "2025-06-01",
		Baseline:       scores.ResolveBaseline(nil, nil, nil, nil),
		HorizonMonths:  horizon,
		IntervalMonths: 6,
	}
}

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func TestService(t *testing.T) {
	Convey("Given a running service", t, func() {
		ctx := context.Background()
		svc := newService()
		svc.Start(ctx)
		defer svc.Stop(ctx)

		Convey("When a prediction request is enqueued", func() {
			So(svc.Enqueue(ctx, request("req-1", "patient-1", 60)), ShouldBeNil)

			Convey("Then a document eventually appears for the patient", func() {
				So(waitFor(func() bool {
					_, err := svc.Document(ctx, "patient-1")
					return err == nil
				}), ShouldBeTrue)

				doc, err := svc.Document(ctx, "patient-1")
				So(err, ShouldBeNil)
				So(doc.PatientID, ShouldEqual, "patient-1")
				So(len(doc.FuturePredictions), ShouldEqual, 10)
			})
		})

		Convey("When the request omits horizon and interval", func() {
			req := request("req-2", "patient-2", 0)
			req.IntervalMonths = 0
			So(svc.Enqueue(ctx, req), ShouldBeNil)

			Convey("Then the configured defaults apply", func() {
				So(waitFor(func() bool {
					_, err := svc.Document(ctx, "patient-2")
					return err == nil
				}), ShouldBeTrue)

				doc, err := svc.Document(ctx, "patient-2")
				So(err, ShouldBeNil)
				// 36-month default horizon at 6-month intervals
				So(len(doc.FuturePredictions), ShouldEqual, 6)
				So(doc.FuturePredictions[0].MonthsFromLastVisit, ShouldEqual, 6)
			})
		})

		Convey("When the horizon exceeds the configured maximum", func() {
			err := svc.Enqueue(ctx, request("req-3", "patient-3", 600))

			Convey("Then admission fails", func() {
				So(err, ShouldWrap, app.ErrHorizonTooLarge)
			})
		})

		Convey("When looking up a patient without a document", func() {
			_, err := svc.Document(ctx, "nobody")

			Convey("Then it returns the store's not-found error", func() {
				So(err, ShouldWrap, repository.ErrNotFound)
			})
		})

		Convey("When enforcing a raw sequence synchronously", func() {
			v1, v2, v3 := 40.0, 30.0, 50.0
			raw := constraint.RawSequence{
				{ADASCog: &v1}, {ADASCog: &v2}, {ADASCog: &v3},
			}
			fixed, rep, err := svc.Enforce(ctx, raw)

			Convey("Then the repaired sequence validates clean", func() {
				So(err, ShouldBeNil)
				So(fixed[1].ADASCog, ShouldEqual, 50)
				So(fixed[2].ADASCog, ShouldEqual, 70)
				So(rep.AllValid, ShouldBeTrue)
			})
		})

		Convey("When validating a sequence directly", func() {
			rep := svc.ValidateSequence(scores.Sequence{
				{MMSE: 20, CDRGlobal: 1, CDRSOB: 6, ADASCog: 25},
				{MMSE: 18, CDRGlobal: 1, CDRSOB: 7, ADASCog: 20},
			})

			Convey("Then the report flags the regression", func() {
				So(rep.ADASMonotonic, ShouldBeFalse)
				So(rep.AllValid, ShouldBeFalse)
			})
		})

		Convey("When requesting stats", func() {
			stats := svc.GetStats()

			Convey("Then the snapshot reflects the configuration", func() {
				So(stats.WorkerCount, ShouldEqual, 2)
				So(stats.QueueCapacity, ShouldEqual, 100)
				So(stats.QueueSize, ShouldBeGreaterThanOrEqualTo, 0)
			})
		})

		Convey("When recording request ids", func() {
			So(svc.SeenAndRecord(ctx, "dup-1"), ShouldBeFalse)
			So(svc.SeenAndRecord(ctx, "dup-1"), ShouldBeTrue)

			Convey("And unrecording releases them", func() {
				svc.Unrecord(ctx, "dup-1")
				So(svc.SeenAndRecord(ctx, "dup-1"), ShouldBeFalse)
			})
		})
	})
}
