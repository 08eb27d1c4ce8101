package dedupe_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/neurotrack/progression/internal/domain/dedupe"
	"github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	convey.Convey("Given an in-memory deduper", t, func() {
		ctx := context.Background()
		d := dedupe.NewInMemoryDeduper()

		convey.Convey("When recording a new id", func() {
			seen := d.SeenAndRecord(ctx, "req-1")

			convey.Convey("Then it reports unseen and tracks it", func() {
				convey.So(seen, convey.ShouldBeFalse)
				convey.So(d.Size(), convey.ShouldEqual, 1)
			})

			convey.Convey("And recording the same id again reports seen", func() {
				convey.So(d.SeenAndRecord(ctx, "req-1"), convey.ShouldBeTrue)
				convey.So(d.Size(), convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When unrecording an id", func() {
			d.SeenAndRecord(ctx, "req-2")
			d.Unrecord(ctx, "req-2")

			convey.Convey("Then the id can be recorded again", func() {
				convey.So(d.SeenAndRecord(ctx, "req-2"), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When unrecording an unknown id", func() {
			convey.Convey("Then nothing changes", func() {
				d.Unrecord(ctx, "never-seen")
				convey.So(d.Size(), convey.ShouldEqual, 0)
			})
		})
	})
}

func TestInMemoryDeduperEviction(t *testing.T) {
	convey.Convey("Given a deduper bounded to 3 ids", t, func() {
		ctx := context.Background()
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))

		convey.Convey("When recording more ids than the bound", func() {
			for i := 0; i < 5; i++ {
				d.SeenAndRecord(ctx, fmt.Sprintf("req-%d", i))
			}

			convey.Convey("Then the size stays at the bound", func() {
				convey.So(d.Size(), convey.ShouldEqual, 3)
			})

			convey.Convey("Then the oldest ids were evicted", func() {
				convey.So(d.SeenAndRecord(ctx, "req-0"), convey.ShouldBeFalse)
			})

			convey.Convey("Then the newest ids are still tracked", func() {
				convey.So(d.SeenAndRecord(ctx, "req-4"), convey.ShouldBeTrue)
			})
		})
	})
}
