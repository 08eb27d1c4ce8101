package repository_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/neurotrack/progression/internal/adapters/repository"
	"github.com/neurotrack/progression/internal/report"
	. "github.com/smartystreets/goconvey/convey"
)

func doc(patientID string) report.Document {
	return report.Document{
		PatientID:           patientID,
		PredictionTimestamp: "2025-06-02T10:30:00Z",
		HistoricalSessions:  []report.HistoricalSession{},
		FuturePredictions:   []report.FuturePrediction{},
	}
}

func TestMemStore(t *testing.T) {
	Convey("Given an in-memory document store", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()

		Convey("When storing and fetching a document", func() {
			So(store.Put(ctx, doc("patient-1")), ShouldBeNil)

			got, err := store.Get(ctx, "patient-1")
			So(err, ShouldBeNil)
			So(got.PatientID, ShouldEqual, "patient-1")
			So(store.Count(), ShouldEqual, 1)
		})

		Convey("When storing twice for the same patient", func() {
			first := doc("patient-1")
			So(store.Put(ctx, first), ShouldBeNil)

			second := doc("patient-1")
			second.PredictionTimestamp = "2025-07-01T00:00:00Z"
			So(store.Put(ctx, second), ShouldBeNil)

			Convey("Then the latest document wins and the count stays at one", func() {
				got, err := store.Get(ctx, "patient-1")
				So(err, ShouldBeNil)
				So(got.PredictionTimestamp, ShouldEqual, "2025-07-01T00:00:00Z")
				So(store.Count(), ShouldEqual, 1)
			})
		})

		Convey("When fetching an unknown patient", func() {
			_, err := store.Get(ctx, "nobody")

			Convey("Then it returns ErrNotFound", func() {
				So(err, ShouldWrap, repository.ErrNotFound)
			})
		})

		Convey("When the patient id is empty", func() {
			So(store.Put(ctx, doc("")), ShouldWrap, repository.ErrEmptyPatientID)
			_, err := store.Get(ctx, "")
			So(err, ShouldWrap, repository.ErrEmptyPatientID)
		})
	})
}

func TestMemStoreConcurrent(t *testing.T) {
	Convey("Given a store under concurrent writers", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore(repository.WithShardCount(4))

		const writers = 8
		const perWriter = 50

		var wg sync.WaitGroup
		for w := 0; w < writers; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				for i := 0; i < perWriter; i++ {
					_ = store.Put(ctx, doc(fmt.Sprintf("patient-%d-%d", w, i)))
				}
			}(w)
		}
		wg.Wait()

		Convey("Then every document is retrievable", func() {
			So(store.Count(), ShouldEqual, writers*perWriter)
			got, err := store.Get(ctx, "patient-3-17")
			So(err, ShouldBeNil)
			So(got.PatientID, ShouldEqual, "patient-3-17")
		})
	})
}
