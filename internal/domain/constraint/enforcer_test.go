package constraint_test

import (
	"testing"

	"github.com/neurotrack/progression/internal/domain/constraint"
	"github.com/neurotrack/progression/internal/domain/scores"
	. "github.com/smartystreets/goconvey/convey"
)

func ptr(v float64) *float64 { return &v }

func rawADAS(values ...float64) constraint.RawSequence {
	raw := make(constraint.RawSequence, len(values))
	for i, v := range values {
		raw[i] = constraint.RawPoint{ADASCog: ptr(v)}
	}
	return raw
}

func TestEnforce(t *testing.T) {
	Convey("Given a constraint enforcer", t, func() {
		enf := constraint.New()

		Convey("When repairing a sequence with an apparent improvement", func() {
			seq, err := enf.Enforce(rawADAS(40, 30, 50))
			So(err, ShouldBeNil)

			Convey("Then the decrease becomes a decline of equal magnitude", func() {
				So(seq[0].ADASCog, ShouldEqual, 40)
				So(seq[1].ADASCog, ShouldEqual, 50)
				So(seq[2].ADASCog, ShouldEqual, 70)
			})

			Convey("Then MMSE is rederived from the repaired ADAS-Cog", func() {
				So(seq[0].MMSE, ShouldAlmostEqual, 12.857142857142858, 1e-9)
				So(seq[1].MMSE, ShouldAlmostEqual, 8.571428571428573, 1e-9)
				So(seq[2].MMSE, ShouldEqual, 0)
			})

			Convey("Then CDR-SOB is rederived from the repaired ADAS-Cog", func() {
				So(seq[0].CDRSOB, ShouldAlmostEqual, 10.285714285714286, 1e-9)
				So(seq[1].CDRSOB, ShouldAlmostEqual, 12.857142857142858, 1e-9)
				So(seq[2].CDRSOB, ShouldEqual, 18)
			})

			Convey("Then CDR-Global follows the band table", func() {
				So(seq[0].CDRGlobal, ShouldEqual, 2)
				So(seq[1].CDRGlobal, ShouldEqual, 2)
				So(seq[2].CDRGlobal, ShouldEqual, 3)
			})
		})

		Convey("When the input already satisfies the constraints", func() {
			first, err := enf.Enforce(rawADAS(20, 25, 31))
			So(err, ShouldBeNil)

			Convey("Then re-enforcing the output is a no-op", func() {
				again, err := enf.Enforce(rawADAS(first[0].ADASCog, first[1].ADASCog, first[2].ADASCog))
				So(err, ShouldBeNil)
				So(again, ShouldResemble, first)
			})
		})

		Convey("When the first value is out of range", func() {
			seq, err := enf.Enforce(rawADAS(-5, 3))
			So(err, ShouldBeNil)

			Convey("Then the baseline is clipped before accumulation", func() {
				So(seq[0].ADASCog, ShouldEqual, 0)
				So(seq[1].ADASCog, ShouldEqual, 8)
			})
		})

		Convey("When accumulation overshoots the ceiling", func() {
			seq, err := enf.Enforce(rawADAS(60, 40, 60))
			So(err, ShouldBeNil)

			Convey("Then clipping happens once at the end", func() {
				// 60 -> 80 -> 100 before the final range pass
				So(seq[0].ADASCog, ShouldEqual, 60)
				So(seq[1].ADASCog, ShouldEqual, 70)
				So(seq[2].ADASCog, ShouldEqual, 70)
			})
		})

		Convey("When the input is empty", func() {
			_, err := enf.Enforce(constraint.RawSequence{})

			Convey("Then it returns ErrEmptySequence", func() {
				So(err, ShouldWrap, constraint.ErrEmptySequence)
			})
		})

		Convey("When a timepoint lacks ADAS-Cog", func() {
			raw := rawADAS(40, 45)
			raw[1].ADASCog = nil
			_, err := enf.Enforce(raw)

			Convey("Then it returns ErrMissingADAS naming the timepoint", func() {
				So(err, ShouldWrap, constraint.ErrMissingADAS)
				So(err.Error(), ShouldContainSubstring, "timepoint 1")
			})
		})

		Convey("When other fields are present in the raw input", func() {
			raw := constraint.RawSequence{
				{MMSE: ptr(29), CDRGlobal: ptr(0.5), CDRSOB: ptr(1), ADASCog: ptr(40)},
				{MMSE: ptr(2), CDRGlobal: ptr(3), CDRSOB: ptr(17), ADASCog: ptr(45)},
			}
			seq, err := enf.Enforce(raw)
			So(err, ShouldBeNil)

			Convey("Then they are ignored and overwritten from ADAS-Cog", func() {
				So(seq[0].MMSE, ShouldAlmostEqual, scores.MMSEFromADAS(40), 1e-9)
				So(seq[0].CDRGlobal, ShouldEqual, 2)
				So(seq[1].CDRSOB, ShouldAlmostEqual, scores.CDRSOBFromADAS(45), 1e-9)
			})
		})

		Convey("Then the output always validates clean", func() {
			seq, err := enf.Enforce(rawADAS(55, 12, 80, 3))
			So(err, ShouldBeNil)
			for i := 1; i < len(seq); i++ {
				So(seq[i].ADASCog, ShouldBeGreaterThanOrEqualTo, seq[i-1].ADASCog)
			}
			for _, sv := range seq {
				So(sv.ADASCog, ShouldBeLessThanOrEqualTo, scores.ADASCogMax)
				So(scores.IsCDRGlobalStage(sv.CDRGlobal), ShouldBeTrue)
			}
		})
	})
}
