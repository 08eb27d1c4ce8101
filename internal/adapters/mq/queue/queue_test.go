package queue_test

import (
	"testing"

	"github.com/neurotrack/progression/internal/adapters/mq/queue"
	"github.com/neurotrack/progression/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func req(id string) model.PredictionRequest {
	return model.PredictionRequest{RequestID: id, PatientID: "patient-" + id}
}

func TestQueue(t *testing.T) {
	Convey("Given a bounded queue", t, func() {
		q := queue.New(queue.WithCapacity(2))

		Convey("When enqueueing within capacity", func() {
			So(q.Enqueue(req("a")), ShouldBeNil)
			So(q.Enqueue(req("b")), ShouldBeNil)

			Convey("Then Len reflects the buffered requests", func() {
				So(q.Len(), ShouldEqual, 2)
				So(q.Cap(), ShouldEqual, 2)
			})

			Convey("Then requests dequeue in FIFO order", func() {
				first := <-q.Dequeue()
				second := <-q.Dequeue()
				So(first.RequestID, ShouldEqual, "a")
				So(second.RequestID, ShouldEqual, "b")
			})
		})

		Convey("When the queue is full", func() {
			So(q.Enqueue(req("a")), ShouldBeNil)
			So(q.Enqueue(req("b")), ShouldBeNil)

			Convey("Then Enqueue fails without blocking", func() {
				So(q.Enqueue(req("c")), ShouldWrap, queue.ErrQueueFull)
			})
		})

		Convey("When the queue is closed", func() {
			So(q.Enqueue(req("a")), ShouldBeNil)
			q.Close()

			Convey("Then new requests are rejected", func() {
				So(q.IsClosed(), ShouldBeTrue)
				So(q.Enqueue(req("b")), ShouldWrap, queue.ErrQueueClosed)
			})

			Convey("Then buffered requests remain receivable before the channel closes", func() {
				first, ok := <-q.Dequeue()
				So(ok, ShouldBeTrue)
				So(first.RequestID, ShouldEqual, "a")

				_, ok = <-q.Dequeue()
				So(ok, ShouldBeFalse)
			})

			Convey("Then closing again is safe", func() {
				So(q.Close, ShouldNotPanic)
			})
		})
	})
}
